// Package loss measures output error during training and testing.
//
// Accumulator tracks the mean squared error and the bit-fail count over any
// number of output neurons. ErrorFunc shapes the difference between target
// and output before it is propagated backwards.
package loss

import (
	"fmt"
	"math"
)

// ErrorFunc transforms the output difference used for backpropagation.
type ErrorFunc uint8

// Supported error functions.
const (
	// ErrorLinear propagates the difference unchanged.
	ErrorLinear ErrorFunc = iota
	// ErrorTanh amplifies large differences: log((1+d)/(1-d)).
	ErrorTanh
)

// tanhLimit bounds |d| before the log, tanhClip is used beyond it.
const (
	tanhLimit = 0.9999999
	tanhClip  = 17.0
)

// DefaultBitFailLimit is the absolute difference above which an output
// counts as a failed bit.
const DefaultBitFailLimit = 0.35

var errorFuncNames = [...]string{
	ErrorLinear: "linear",
	ErrorTanh:   "tanh",
}

// String returns the function name.
func (e ErrorFunc) String() string {
	if int(e) < len(errorFuncNames) {
		return errorFuncNames[e]
	}
	return fmt.Sprintf("ErrorFunc(%d)", uint8(e))
}

// Valid reports whether e is a known error function.
func (e ErrorFunc) Valid() bool {
	return int(e) < len(errorFuncNames)
}

// MarshalText implements encoding.TextMarshaler.
func (e ErrorFunc) MarshalText() ([]byte, error) {
	if !e.Valid() {
		return nil, fmt.Errorf("unknown error function %d", uint8(e))
	}
	return []byte(e.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (e *ErrorFunc) UnmarshalText(text []byte) error {
	for i, name := range errorFuncNames {
		if name == string(text) {
			*e = ErrorFunc(i)
			return nil
		}
	}
	return fmt.Errorf("unknown error function %q", text)
}

// Apply transforms the difference d.
func (e ErrorFunc) Apply(d float64) float64 {
	if e != ErrorTanh {
		return d
	}
	switch {
	case d < -tanhLimit:
		return -tanhClip
	case d > tanhLimit:
		return tanhClip
	default:
		return math.Log((1 + d) / (1 - d))
	}
}

// Accumulator sums squared output differences and counts failed bits.
//
// The zero value is not usable; create one with NewAccumulator.
// An Accumulator is not safe for concurrent use.
type Accumulator struct {
	limit   float64
	sum     float64
	count   int
	bitFail int
}

// NewAccumulator creates an empty accumulator with the given bit-fail limit.
// A non-positive limit selects DefaultBitFailLimit.
func NewAccumulator(bitFailLimit float64) *Accumulator {
	if bitFailLimit <= 0 {
		bitFailLimit = DefaultBitFailLimit
	}
	return &Accumulator{limit: bitFailLimit}
}

// Add records the difference d = target - output of one output neuron and
// returns it as used for training.
//
// For symmetric activations the output span is twice as wide, so d is
// halved first; the halved value is what gets squared, counted and
// returned.
func (a *Accumulator) Add(d float64, symmetric bool) float64 {
	if symmetric {
		d /= 2
	}
	a.sum += d * d
	a.count++
	if math.Abs(d) >= a.limit {
		a.bitFail++
	}
	return d
}

// Merge adds the totals of other into a.
func (a *Accumulator) Merge(other *Accumulator) {
	a.sum += other.sum
	a.count += other.count
	a.bitFail += other.bitFail
}

// Reset clears the totals and keeps the limit.
func (a *Accumulator) Reset() {
	a.sum, a.count, a.bitFail = 0, 0, 0
}

// MSE returns the mean of the squared differences, or 0 when nothing was
// recorded.
func (a *Accumulator) MSE() float64 {
	if a.count == 0 {
		return 0
	}
	return a.sum / float64(a.count)
}

// BitFail returns the number of differences whose magnitude reached the
// bit-fail limit.
func (a *Accumulator) BitFail() int { return a.bitFail }

// Count returns the number of recorded differences.
func (a *Accumulator) Count() int { return a.count }
