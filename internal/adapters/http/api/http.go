// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/MaryEddythe/tabulator/internal/app"
	"github.com/MaryEddythe/tabulator/internal/config"
	"github.com/MaryEddythe/tabulator/internal/domain/model"
)

// Dependencies required by the HTTP handlers. An interface bundle keeps
// the handler layer loosely coupled to the service implementation.
type Dependencies interface {
	SubmitScore(ctx context.Context, sub app.Submission) (bool, error)
	GetResults(ctx context.Context, category string) ([]model.CandidateResult, error)
	RecomputeOverall(ctx context.Context) error
	Candidates() []config.Candidate
}

// StatsProvider exposes service statistics for monitoring.
type StatsProvider interface {
	GetStats() map[string]any
}

// Server wires HTTP routes for the tabulation API.
type Server struct {
	scoresHandler     *ScoresHandler
	resultsHandler    *ResultsHandler
	recomputeHandler  *RecomputeHandler
	categoriesHandler *CategoriesHandler
	candidatesHandler *CandidatesHandler
	statsHandler      *StatsHandler
	healthHandler     *HealthHandler
}

// NewServer creates an API server with all handlers.
func NewServer(deps Dependencies, stats StatsProvider) *Server {
	return &Server{
		scoresHandler:     NewScoresHandler(deps),
		resultsHandler:    NewResultsHandler(deps),
		recomputeHandler:  NewRecomputeHandler(deps),
		categoriesHandler: NewCategoriesHandler(),
		candidatesHandler: NewCandidatesHandler(deps),
		statsHandler:      NewStatsHandler(stats),
		healthHandler:     NewHealthHandler(),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/scores", MetricsMiddleware(s.scoresHandler.HandlePostScore, "scores"))
	mux.HandleFunc("/results", MetricsMiddleware(s.resultsHandler.HandleGetResults, "results"))
	mux.HandleFunc("/recompute", MetricsMiddleware(s.recomputeHandler.HandleRecompute, "recompute"))
	mux.HandleFunc("/categories", MetricsMiddleware(s.categoriesHandler.HandleGetCategories, "categories"))
	mux.HandleFunc("/candidates", MetricsMiddleware(s.candidatesHandler.HandleGetCandidates, "candidates"))
}

// statusResponse is the envelope shared by the mutating endpoints,
// mirroring the shape the judging UI polls for.
type statusResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message,omitempty"`
	Duplicate bool   `json:"duplicate,omitempty"`
}

// resultsResponse is the envelope for ranked query results.
type resultsResponse struct {
	Status  string                  `json:"status"`
	Results []model.CandidateResult `json:"results"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, statusResponse{Status: "error", Message: msg})
}
