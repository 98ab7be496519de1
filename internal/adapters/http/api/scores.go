package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MaryEddythe/tabulator/internal/app"
)

// ScoresHandler handles score submissions.
type ScoresHandler struct {
	deps Dependencies
}

// NewScoresHandler creates a new scores handler.
func NewScoresHandler(deps Dependencies) *ScoresHandler {
	return &ScoresHandler{deps: deps}
}

// HandlePostScore handles POST /scores requests.
func (h *ScoresHandler) HandlePostScore(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_score"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var sub app.Submission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		writeError(w, http.StatusBadRequest, WrapKind(op, ErrBadRequest, err))
		return
	}

	duplicate, err := h.deps.SubmitScore(r.Context(), sub)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrValidation), errors.Is(err, app.ErrInvalidCategory):
			writeError(w, http.StatusBadRequest, err)
		default:
			writeError(w, http.StatusInternalServerError, err)
		}
		return
	}

	writeJSON(w, http.StatusOK, statusResponse{
		Status:    "success",
		Message:   "Score submitted successfully",
		Duplicate: duplicate,
	})
}
