package api

import "net/http"

// CandidatesHandler serves the contestant roster.
type CandidatesHandler struct {
	deps Dependencies
}

// NewCandidatesHandler creates a new candidates handler.
func NewCandidatesHandler(deps Dependencies) *CandidatesHandler {
	return &CandidatesHandler{deps: deps}
}

// HandleGetCandidates handles GET /candidates requests.
func (h *CandidatesHandler) HandleGetCandidates(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Candidates())
}
