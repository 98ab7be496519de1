package model

import "errors"

// Sentinel kinds for row codec errors.
var (
	ErrMalformedRow = errors.New("malformed row")
)
