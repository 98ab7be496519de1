package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrUnknownTable = errors.New("unknown table")
	ErrStoreClosed  = errors.New("store closed")
)
