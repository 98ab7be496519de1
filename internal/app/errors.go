package app

import "errors"

// Sentinel kinds for service errors.
var (
	ErrValidation      = errors.New("invalid submission")
	ErrInvalidCategory = errors.New("invalid category")
)
