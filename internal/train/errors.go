package train

import "errors"

// Sentinel errors.
var (
	ErrInvalidConfig = errors.New("invalid training config")
	ErrUntrainable   = errors.New("network has a layer that cannot be trained")
)
