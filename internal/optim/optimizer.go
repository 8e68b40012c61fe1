// Package optim implements the weight update rules used in training.
//
// This package provides:
//   - Optimizer interface: Base interface for all update rules
//   - SGD: Gradient descent with learning rate and momentum, used both per
//     example (incremental training) and per epoch (batch training)
//   - RPROP: Resilient propagation (iRPROP-)
//   - Quickprop: Fahlman's quickprop
//
// Optimizers work on flat float64 slices. A slope is the negative gradient
// of the error with respect to one weight, summed over the examples seen
// since the previous Step, so moving a weight along its slope lowers the
// error.
//
// Example usage:
//
//	opt := optim.NewRPROP(len(weights), optim.RPROPConfig{})
//
//	for epoch := range epochs {
//	    accumulateSlopes(slopes)
//	    opt.Step(weights, slopes, numExamples)
//	}
package optim

// Optimizer is the base interface for all update rules.
//
// All optimizers must implement:
//   - Step: Apply one update to the weights
//   - Reset: Forget per-weight state
//   - GetLR: Get current learning rate (for monitoring)
type Optimizer interface {
	// Step updates weights in place from slopes accumulated over numData
	// examples, then zeroes slopes for the next accumulation.
	//
	// weights and slopes must have the length the optimizer was created
	// with.
	Step(weights, slopes []float64, numData int)

	// Reset clears momentum, step sizes and previous slopes.
	Reset()

	// GetLR returns the learning rate, or 0 for rules that have none.
	GetLR() float64
}

// Weight bounds applied by the adaptive rules.
const (
	MaxWeight = 1500.0
	MinWeight = -1500.0
)

func clampWeight(w float64) float64 {
	if w > MaxWeight {
		return MaxWeight
	}
	if w < MinWeight {
		return MinWeight
	}
	return w
}

func checkLen(weights, slopes, state []float64) {
	if len(weights) != len(state) || len(slopes) != len(state) {
		panic("optim: weights and slopes must match the optimizer size")
	}
}
