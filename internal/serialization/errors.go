package serialization

import (
	"errors"
	"fmt"
)

// Sentinel errors. Every structural failure wraps ErrCorruptFile so callers
// can match the whole family with errors.Is.
var (
	ErrCorruptFile         = errors.New("corrupt network file")
	ErrIncompatibleVersion = errors.New("incompatible network file version")

	ErrInvalidMagic     = fmt.Errorf("%w: invalid magic bytes", ErrCorruptFile)
	ErrChecksumMismatch = fmt.Errorf("%w: checksum mismatch", ErrCorruptFile)
	ErrHeaderTooLarge   = fmt.Errorf("%w: header exceeds maximum size", ErrCorruptFile)
	ErrTruncated        = fmt.Errorf("%w: unexpected end of file", ErrCorruptFile)
	ErrTensorNotFound   = errors.New("tensor not found")
)

// ValidationError provides detailed information about validation failures.
type ValidationError struct {
	Type    string // Type of error (e.g., "offset_overlap", "out_of_bounds")
	Tensor  string // Primary tensor name involved
	Tensor2 string // Secondary tensor name (for overlap errors)
	Details string // Additional details
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Tensor2 != "" {
		return fmt.Sprintf("%s: tensors %q and %q: %s", e.Type, e.Tensor, e.Tensor2, e.Details)
	}
	if e.Tensor != "" {
		return fmt.Sprintf("%s: tensor %q: %s", e.Type, e.Tensor, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Details)
}

// Unwrap makes every validation failure match ErrCorruptFile.
func (e *ValidationError) Unwrap() error {
	return ErrCorruptFile
}
