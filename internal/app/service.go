// Package app provides the core service implementing score submission,
// ranked queries and the overall recompute, wired to the HTTP API.
package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/MaryEddythe/tabulator/internal/adapters/mq/queue"
	"github.com/MaryEddythe/tabulator/internal/adapters/mq/worker"
	"github.com/MaryEddythe/tabulator/internal/adapters/repository"
	"github.com/MaryEddythe/tabulator/internal/config"
	"github.com/MaryEddythe/tabulator/internal/domain/criteria"
	"github.com/MaryEddythe/tabulator/internal/domain/dedupe"
	"github.com/MaryEddythe/tabulator/internal/domain/model"
	"github.com/MaryEddythe/tabulator/internal/domain/tally"
	"github.com/MaryEddythe/tabulator/pkg/logger"
	"github.com/MaryEddythe/tabulator/pkg/metrics"
)

// Submission is one judge's scores for one candidate in one category.
type Submission struct {
	// SubmissionID is optional; when supplied, retries with the same ID
	// are acknowledged without appending a second row.
	SubmissionID    string             `json:"submissionId"`
	Category        string             `json:"category" validate:"required"`
	JudgeName       string             `json:"judgeName" validate:"required"`
	CandidateNumber string             `json:"candidateNumber" validate:"required"`
	TotalScore      float64            `json:"totalScore" validate:"gte=0,lte=100"`
	Scores          map[string]float64 `json:"scores" validate:"dive,gte=0,lte=100"`
}

// Service orchestrates the score store, the aggregation engine and the
// recompute pipeline.
type Service struct {
	mu sync.RWMutex

	store    repository.Store
	deduper  dedupe.Deduper
	requests queue.Queue
	worker   *worker.Worker
	validate *validator.Validate

	queueSize     int
	dedupeSize    int
	autoRecompute bool
	weights       tally.Weights
	roster        []config.Candidate

	started bool

	logger logger.Logger
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		queueSize:     1024,
		dedupeSize:    10_000,
		autoRecompute: true,
		weights:       tally.DefaultWeights(),
		roster:        config.DefaultRoster(),
		validate:      validator.New(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start initializes the store and the recompute pipeline.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.store = repository.NewMemoryStore(
		repository.WithHeaders(criteria.Headers()),
	)
	s.deduper = dedupe.NewInMemoryDeduper(
		dedupe.WithMaxSize(s.dedupeSize),
	)
	s.requests = queue.NewInMemoryQueue(
		queue.WithCapacity(s.queueSize),
	)
	s.worker = worker.New(s.requests, s)
	go s.worker.Run(ctx)

	s.started = true
	s.logger.Info(ctx, "tabulator service started",
		logger.Int("queueSize", s.queueSize),
		logger.Bool("autoRecompute", s.autoRecompute),
		logger.Int("candidates", len(s.roster)),
	)
	return nil
}

// Stop gracefully shuts the service down.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	ctx := context.Background()

	if s.requests != nil {
		_ = s.requests.Close()
	}
	if s.worker != nil {
		_ = s.worker.Shutdown(ctx)
	}
	if closer, ok := s.store.(interface{ Close() error }); ok {
		_ = closer.Close()
	}

	s.started = false
	s.logger.Info(ctx, "tabulator service stopped")
}

// SubmitScore validates and appends one submission. The returned
// duplicate flag is true when the submission ID was already processed;
// no new row is written in that case.
func (s *Service) SubmitScore(ctx context.Context, sub Submission) (duplicate bool, err error) {
	if err := s.validate.Struct(sub); err != nil {
		metrics.RecordSubmissionError("validation")
		return false, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	if !criteria.Valid(sub.Category) {
		metrics.RecordSubmissionError("invalid_category")
		return false, fmt.Errorf("%w: %q", ErrInvalidCategory, sub.Category)
	}

	if sub.SubmissionID != "" && s.deduper.SeenAndRecord(ctx, sub.SubmissionID) {
		s.logger.Debug(ctx, "duplicate submission ignored",
			logger.String("submissionID", sub.SubmissionID),
		)
		return true, nil
	}

	if err := s.appendSubmission(ctx, sub); err != nil {
		if sub.SubmissionID != "" {
			s.deduper.Unrecord(ctx, sub.SubmissionID)
		}
		metrics.RecordSubmissionError("storage")
		return false, err
	}

	metrics.RecordSubmission(sub.Category)
	s.logger.Info(ctx, "score submitted",
		logger.String("category", sub.Category),
		logger.String("judge", sub.JudgeName),
		logger.String("candidate", sub.CandidateNumber),
		logger.Float64("total", sub.TotalScore),
	)

	// Best effort: a dropped or failed recompute never fails the
	// submission that triggered it.
	if s.autoRecompute && criteria.IsSource(sub.Category) {
		s.EnqueueRecompute(ctx, "submission:"+sub.Category)
	}
	return false, nil
}

// appendSubmission writes the submission to its category table. Direct
// categories use the registry's column order. Submissions to the
// derived "overall" category are a legacy compatibility path: the
// declared scores are mapped onto the derived columns and appended,
// surviving until the next full rebuild.
func (s *Service) appendSubmission(ctx context.Context, sub Submission) error {
	if criteria.IsDerived(sub.Category) {
		s.logger.Warn(ctx, "legacy direct submission to derived category",
			logger.String("category", sub.Category),
			logger.String("judge", sub.JudgeName),
		)
		row := model.OverallRow{
			Timestamp:       time.Now(),
			CandidateNumber: sub.CandidateNumber,
			FinalScore:      sub.TotalScore,
			InterviewAvg:    sub.Scores["Intelligence (Q&A)"],
			SportsAvg:       sub.Scores["Sports Wear"],
			GownAvg:         sub.Scores["Gown"],
			AvgImpact:       sub.Scores["Overall Impact"],
		}
		return s.store.Append(ctx, sub.Category, model.EncodeOverallRow(row))
	}

	row := model.ScoreRow{
		Timestamp:       time.Now(),
		JudgeName:       sub.JudgeName,
		CandidateNumber: sub.CandidateNumber,
		DeclaredTotal:   sub.TotalScore,
		CriterionScores: sub.Scores,
	}
	cells := model.EncodeScoreRow(row, criteria.Criteria(sub.Category))
	return s.store.Append(ctx, sub.Category, cells)
}

// GetResults returns the ranked results for a category. Direct
// categories aggregate on the fly from raw rows. The overall ranking is
// recomputed from the source categories at query time, so readers never
// observe derived-table staleness.
func (s *Service) GetResults(ctx context.Context, category string) ([]model.CandidateResult, error) {
	if !criteria.Valid(category) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCategory, category)
	}

	if category == criteria.Overall {
		src, err := s.readSourceRows(ctx)
		if err != nil {
			return nil, err
		}
		return tally.OverallResults(tally.Overall(src, s.weights, time.Now())), nil
	}

	rows, err := s.readCategoryRows(ctx, category)
	if err != nil {
		return nil, err
	}
	return tally.Results(rows, criteria.Criteria(category)), nil
}

// RecomputeOverall performs a synchronous full rebuild of the derived
// overall table.
func (s *Service) RecomputeOverall(ctx context.Context) error {
	return s.RebuildOverall(ctx)
}

// RebuildOverall reads the source categories, derives the overall rows
// and publishes them atomically. It implements worker.Rebuilder.
func (s *Service) RebuildOverall(ctx context.Context) error {
	src, err := s.readSourceRows(ctx)
	if err != nil {
		return fmt.Errorf("read source categories: %w", err)
	}

	derived := tally.Overall(src, s.weights, time.Now())
	cells := make([][]string, len(derived))
	for i, row := range derived {
		cells[i] = model.EncodeOverallRow(row)
	}
	if err := s.store.ReplaceAll(ctx, criteria.Overall, cells); err != nil {
		return fmt.Errorf("publish overall table: %w", err)
	}

	s.logger.Info(ctx, "overall table rebuilt",
		logger.Int("candidates", len(derived)),
	)
	return nil
}

// EnqueueRecompute requests an asynchronous overall rebuild. Returns
// false when the request was dropped due to backpressure.
func (s *Service) EnqueueRecompute(ctx context.Context, reason string) bool {
	ok := s.requests.Enqueue(ctx, model.RecomputeRequest{
		RequestID:  uuid.NewString(),
		Reason:     reason,
		Category:   criteria.Overall,
		EnqueuedAt: time.Now(),
	})
	if !ok {
		s.logger.Warn(ctx, "recompute request dropped",
			logger.String("reason", reason),
		)
	}
	return ok
}

// Candidates returns the contestant roster.
func (s *Service) Candidates() []config.Candidate {
	out := make([]config.Candidate, len(s.roster))
	copy(out, s.roster)
	return out
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]any{
		"started":       s.started,
		"autoRecompute": s.autoRecompute,
		"queueSize":     s.queueSize,
	}
	if !s.started {
		return stats
	}

	stats["queueLength"] = s.requests.Len(ctx)
	stats["recomputing"] = s.worker.Recomputing()
	tables := make(map[string]int, len(criteria.All()))
	for _, category := range criteria.All() {
		tables[category] = s.store.Count(ctx, category)
	}
	stats["tableRows"] = tables
	return stats
}

// readCategoryRows reads and decodes one category's raw rows, skipping
// malformed rows instead of failing the read.
func (s *Service) readCategoryRows(ctx context.Context, category string) ([]model.ScoreRow, error) {
	raw, err := s.store.ReadAll(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", category, err)
	}

	crits := criteria.Criteria(category)
	rows := make([]model.ScoreRow, 0, len(raw))
	for i, cells := range raw {
		row, err := model.ParseScoreRow(cells, crits)
		if err != nil {
			if errors.Is(err, model.ErrMalformedRow) {
				metrics.RecordMalformedRow(category)
				s.logger.Warn(ctx, "skipping malformed row",
					logger.String("category", category),
					logger.Int("index", i),
					logger.Error(err),
				)
				continue
			}
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// readSourceRows collects the raw rows of every overall source
// category. An absent table simply contributes zero rows.
func (s *Service) readSourceRows(ctx context.Context) (map[string][]model.ScoreRow, error) {
	src := make(map[string][]model.ScoreRow, 3)
	for _, category := range criteria.Sources() {
		rows, err := s.readCategoryRows(ctx, category)
		if err != nil {
			return nil, err
		}
		src[category] = rows
	}
	return src, nil
}
