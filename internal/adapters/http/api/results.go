package api

import (
	"errors"
	"net/http"

	"github.com/MaryEddythe/tabulator/internal/app"
)

// ResultsHandler handles ranked result queries.
type ResultsHandler struct {
	deps Dependencies
}

// NewResultsHandler creates a new results handler.
func NewResultsHandler(deps Dependencies) *ResultsHandler {
	return &ResultsHandler{deps: deps}
}

// HandleGetResults handles GET /results?category=X requests.
func (h *ResultsHandler) HandleGetResults(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_results"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	category := r.URL.Query().Get("category")
	if category == "" {
		writeError(w, http.StatusBadRequest, NewKind(op, ErrBadRequest))
		return
	}

	results, err := h.deps.GetResults(r.Context(), category)
	if err != nil {
		if errors.Is(err, app.ErrInvalidCategory) {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, resultsResponse{Status: "success", Results: results})
}
