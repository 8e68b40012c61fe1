package dataset

import (
	"errors"
	"fmt"
)

// Sentinel errors.
var (
	ErrEmptyDataset     = errors.New("training data set is empty")
	ErrMalformedData    = errors.New("malformed training data")
	ErrIncompatibleData = errors.New("training data sets have different widths")
)

// ParseError reports where a training data file stopped making sense.
type ParseError struct {
	Line int    // 1-based line number, 0 when the problem is end of input
	Msg  string // What was wrong
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("malformed training data: %s", e.Msg)
	}
	return fmt.Sprintf("malformed training data at line %d: %s", e.Line, e.Msg)
}

// Unwrap makes every parse failure match ErrMalformedData.
func (e *ParseError) Unwrap() error {
	return ErrMalformedData
}
