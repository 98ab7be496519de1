package config

import "errors"

// Sentinel error kinds for this package.
var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrLoadConfig    = errors.New("load config failed")
	ErrLoadRoster    = errors.New("load roster failed")
)
