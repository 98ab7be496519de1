// Package repository defines the tabular score store interface and
// errors. Tables mirror the spreadsheet layout: a header row followed
// by raw data rows of string cells.
package repository

import "context"

// Store provides read/write access to the per-category score tables.
// Implementations must treat Append as individually atomic and
// ReplaceAll as an atomic publish: readers never observe a partially
// rewritten table.
type Store interface {
	// Append adds one data row to the category's table, creating the
	// table with its header on first write.
	Append(ctx context.Context, category string, cells []string) error

	// ReadAll returns the data rows (header excluded) in insertion
	// order. An absent or header-only table yields an empty slice, not
	// an error.
	ReadAll(ctx context.Context, category string) ([][]string, error)

	// ReplaceAll atomically swaps the category's data rows for the
	// given set, preserving the header. Used by the derived-table
	// rebuild.
	ReplaceAll(ctx context.Context, category string, rows [][]string) error

	// ClearRows removes all data rows, preserving the header.
	ClearRows(ctx context.Context, category string) error

	// Count returns the number of data rows currently stored.
	Count(ctx context.Context, category string) int
}
