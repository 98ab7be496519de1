package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/MaryEddythe/tabulator/pkg/metrics"
)

// table holds a header plus data rows. Rows are immutable once stored;
// mutation happens only by appending or by swapping the whole slice.
type table struct {
	header []string
	rows   [][]string
}

// MemoryStore implements Store with in-memory per-category tables.
//
// A single RWMutex guards the table map. ReplaceAll builds the new row
// slice off-lock and publishes it with one pointer swap, so concurrent
// readers see either the old or the new table, never a partial rebuild.
type MemoryStore struct {
	mu      sync.RWMutex
	tables  map[string]*table
	headers map[string][]string
	closed  bool
}

// NewMemoryStore creates an empty store. Tables are created lazily on
// first write using the headers supplied via options.
func NewMemoryStore(opts ...Option) *MemoryStore {
	s := &MemoryStore{
		tables:  make(map[string]*table),
		headers: make(map[string][]string),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// getOrCreate returns the category's table, creating it with its header
// when absent. Caller must hold the write lock.
func (s *MemoryStore) getOrCreate(category string) (*table, error) {
	if t, ok := s.tables[category]; ok {
		return t, nil
	}
	header, ok := s.headers[category]
	if !ok {
		return nil, fmt.Errorf("no header configured for %q: %w", category, ErrUnknownTable)
	}
	t := &table{header: append([]string(nil), header...)}
	s.tables[category] = t
	return t, nil
}

// Append adds one data row to the category's table.
func (s *MemoryStore) Append(ctx context.Context, category string, cells []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}
	t, err := s.getOrCreate(category)
	if err != nil {
		return err
	}
	t.rows = append(t.rows, append([]string(nil), cells...))
	metrics.UpdateTableRows(category, len(t.rows))
	return nil
}

// ReadAll returns a copy of the category's data rows.
func (s *MemoryStore) ReadAll(ctx context.Context, category string) ([][]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}
	t, ok := s.tables[category]
	if !ok {
		return [][]string{}, nil
	}
	out := make([][]string, len(t.rows))
	for i, row := range t.rows {
		out[i] = append([]string(nil), row...)
	}
	return out, nil
}

// ReplaceAll atomically swaps the category's data rows.
func (s *MemoryStore) ReplaceAll(ctx context.Context, category string, rows [][]string) error {
	// Copy off-lock; only the swap itself happens under the lock.
	fresh := make([][]string, len(rows))
	for i, row := range rows {
		fresh[i] = append([]string(nil), row...)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}
	t, err := s.getOrCreate(category)
	if err != nil {
		return err
	}
	t.rows = fresh
	metrics.UpdateTableRows(category, len(t.rows))
	return nil
}

// ClearRows removes all data rows, preserving the header.
func (s *MemoryStore) ClearRows(ctx context.Context, category string) error {
	return s.ReplaceAll(ctx, category, nil)
}

// Count returns the number of data rows for a category.
func (s *MemoryStore) Count(ctx context.Context, category string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tables[category]
	if !ok {
		return 0
	}
	return len(t.rows)
}

// Close marks the store closed; subsequent operations fail with
// ErrStoreClosed.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
