package network

import "errors"

// Sentinel errors.
var (
	ErrInvalidTopology   = errors.New("invalid network topology")
	ErrDimensionMismatch = errors.New("vector width does not match network")
	ErrNoConnection      = errors.New("no such connection")
)
