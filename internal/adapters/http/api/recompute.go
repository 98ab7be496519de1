package api

import "net/http"

// RecomputeHandler handles explicit overall rebuild requests.
type RecomputeHandler struct {
	deps Dependencies
}

// NewRecomputeHandler creates a new recompute handler.
func NewRecomputeHandler(deps Dependencies) *RecomputeHandler {
	return &RecomputeHandler{deps: deps}
}

// HandleRecompute handles POST /recompute requests. The rebuild runs
// synchronously so the caller knows the derived table is fresh on a
// success response.
func (h *RecomputeHandler) HandleRecompute(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	if err := h.deps.RecomputeOverall(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{
		Status:  "success",
		Message: "Overall scores calculated successfully",
	})
}
