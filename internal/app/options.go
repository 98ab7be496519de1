package app

import (
	"github.com/MaryEddythe/tabulator/internal/config"
	"github.com/MaryEddythe/tabulator/internal/domain/tally"
	"github.com/MaryEddythe/tabulator/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithQueueSize bounds the recompute request queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize bounds the submission idempotency cache.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithAutoRecompute toggles the automatic overall rebuild after
// submissions to source categories.
func WithAutoRecompute(enabled bool) Option {
	return func(s *Service) {
		s.autoRecompute = enabled
	}
}

// WithOverallWeights sets the cross-category multipliers for the
// derived overall score.
func WithOverallWeights(w tally.Weights) Option {
	return func(s *Service) {
		if w.Interview > 0 || w.Sports > 0 || w.Gown > 0 || w.Impact > 0 {
			s.weights = w
		}
	}
}

// WithRoster sets the contestant roster.
func WithRoster(roster []config.Candidate) Option {
	return func(s *Service) {
		if len(roster) > 0 {
			s.roster = roster
		}
	}
}
