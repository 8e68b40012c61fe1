// Package activation implements the fixed set of neuron activation functions.
//
// Every function is a closed enum value paired with its derivative, so the
// hot loops in forward and backward propagation switch on a small integer
// instead of calling through an interface.
//
// All functions take the scaled sum s = steepness × (weighted input sum).
// Derivative returns d(output)/d(weighted input sum), i.e. it already
// includes the steepness factor.
package activation

import (
	"fmt"
	"math"
)

// Func identifies an activation function.
type Func uint8

// Supported activation functions.
const (
	Linear               Func = iota // y = s
	Threshold                        // y = 0 if s < 0 else 1 (not trainable)
	ThresholdSymmetric               // y = -1 if s < 0 else 1 (not trainable)
	Sigmoid                          // y = 1 / (1 + exp(-2s)), range (0, 1)
	SigmoidSymmetric                 // y = tanh(s), range (-1, 1)
	Gaussian                         // y = exp(-s²), range (0, 1]
	GaussianSymmetric                // y = 2exp(-s²) - 1, range (-1, 1]
	Elliot                           // y = (s/2) / (1 + |s|) + 0.5, range (0, 1)
	ElliotSymmetric                  // y = s / (1 + |s|), range (-1, 1)
	LinearPiece                      // y = clamp(s, 0, 1)
	LinearPieceSymmetric             // y = clamp(s, -1, 1)
	SinSymmetric                     // y = sin(s)
	CosSymmetric                     // y = cos(s)
	Sin                              // y = sin(s)/2 + 0.5
	Cos                              // y = cos(s)/2 + 0.5
	ReLU                             // y = max(0, s)
	LeakyReLU                        // y = s if s > 0 else 0.01s

	numFuncs
)

// MaxSum bounds the scaled sum before it is fed to an activation, keeping
// exp() finite for very large weights.
const MaxSum = 150.0

// DefaultSteepness is the steepness assigned to new layers.
const DefaultSteepness = 0.5

var names = [numFuncs]string{
	Linear:               "linear",
	Threshold:            "threshold",
	ThresholdSymmetric:   "threshold_symmetric",
	Sigmoid:              "sigmoid",
	SigmoidSymmetric:     "sigmoid_symmetric",
	Gaussian:             "gaussian",
	GaussianSymmetric:    "gaussian_symmetric",
	Elliot:               "elliot",
	ElliotSymmetric:      "elliot_symmetric",
	LinearPiece:          "linear_piece",
	LinearPieceSymmetric: "linear_piece_symmetric",
	SinSymmetric:         "sin_symmetric",
	CosSymmetric:         "cos_symmetric",
	Sin:                  "sin",
	Cos:                  "cos",
	ReLU:                 "relu",
	LeakyReLU:            "leaky_relu",
}

// All returns every supported activation function in declaration order.
func All() []Func {
	all := make([]Func, 0, numFuncs)
	for f := Func(0); f < numFuncs; f++ {
		all = append(all, f)
	}
	return all
}

// Parse returns the activation function with the given name.
func Parse(name string) (Func, error) {
	for f, n := range names {
		if n == name {
			return Func(f), nil
		}
	}
	return 0, fmt.Errorf("unknown activation function %q", name)
}

// String returns the canonical name of the activation function.
func (f Func) String() string {
	if !f.Valid() {
		return fmt.Sprintf("activation(%d)", uint8(f))
	}
	return names[f]
}

// Valid reports whether f is one of the supported functions.
func (f Func) Valid() bool {
	return f < numFuncs
}

// Trainable reports whether f has a usable derivative.
//
// Step functions have a zero derivative almost everywhere, so gradient
// based training cannot move weights feeding them.
func (f Func) Trainable() bool {
	return f.Valid() && f != Threshold && f != ThresholdSymmetric
}

// Symmetric reports whether the output range of f is centred on zero.
func (f Func) Symmetric() bool {
	switch f {
	case ThresholdSymmetric, SigmoidSymmetric, GaussianSymmetric, ElliotSymmetric,
		LinearPieceSymmetric, SinSymmetric, CosSymmetric:
		return true
	default:
		return false
	}
}

// Range returns the bounds of the output of f. Unbounded sides are ±Inf.
func (f Func) Range() (lo, hi float64) {
	switch f {
	case Linear, LeakyReLU:
		return math.Inf(-1), math.Inf(1)
	case ReLU:
		return 0, math.Inf(1)
	case Threshold, Sigmoid, Gaussian, Elliot, LinearPiece, Sin, Cos:
		return 0, 1
	default:
		return -1, 1
	}
}

// MarshalText implements encoding.TextMarshaler.
func (f Func) MarshalText() ([]byte, error) {
	if !f.Valid() {
		return nil, fmt.Errorf("invalid activation function %d", uint8(f))
	}
	return []byte(names[f]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Func) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// Apply evaluates f at the scaled sum s.
func (f Func) Apply(s float64) float64 {
	switch f {
	case Linear:
		return s
	case Threshold:
		if s < 0 {
			return 0
		}
		return 1
	case ThresholdSymmetric:
		if s < 0 {
			return -1
		}
		return 1
	case Sigmoid:
		return 1 / (1 + math.Exp(-2*s))
	case SigmoidSymmetric:
		return 2/(1+math.Exp(-2*s)) - 1
	case Gaussian:
		return math.Exp(-s * s)
	case GaussianSymmetric:
		return 2*math.Exp(-s*s) - 1
	case Elliot:
		return (s/2)/(1+math.Abs(s)) + 0.5
	case ElliotSymmetric:
		return s / (1 + math.Abs(s))
	case LinearPiece:
		return clamp(s, 0, 1)
	case LinearPieceSymmetric:
		return clamp(s, -1, 1)
	case SinSymmetric:
		return math.Sin(s)
	case CosSymmetric:
		return math.Cos(s)
	case Sin:
		return math.Sin(s)/2 + 0.5
	case Cos:
		return math.Cos(s)/2 + 0.5
	case ReLU:
		return math.Max(0, s)
	case LeakyReLU:
		if s > 0 {
			return s
		}
		return 0.01 * s
	default:
		panic(fmt.Sprintf("activation: Apply on invalid function %d", uint8(f)))
	}
}

// Derivative returns the slope of the neuron output with respect to its
// unscaled weighted sum.
//
// Parameters:
//   - steepness: the layer steepness
//   - value: the neuron output, Apply(s)
//   - s: the scaled sum the output was computed from
//
// Sigmoid-like outputs are clipped away from their asymptotes first, so a
// saturated neuron still receives a small gradient.
func (f Func) Derivative(steepness, value, s float64) float64 {
	switch f {
	case Linear, LinearPiece, LinearPieceSymmetric:
		return steepness
	case Threshold, ThresholdSymmetric:
		return 0
	case Sigmoid:
		value = clamp(value, 0.01, 0.99)
		return 2 * steepness * value * (1 - value)
	case SigmoidSymmetric:
		value = clamp(value, -0.98, 0.98)
		return steepness * (1 - value*value)
	case Gaussian:
		return -2 * s * value * steepness
	case GaussianSymmetric:
		return -2 * s * (value + 1) * steepness
	case Elliot:
		d := 1 + math.Abs(s)
		return steepness / (2 * d * d)
	case ElliotSymmetric:
		d := 1 + math.Abs(s)
		return steepness / (d * d)
	case SinSymmetric:
		return steepness * math.Cos(s)
	case CosSymmetric:
		return -steepness * math.Sin(s)
	case Sin:
		return steepness * math.Cos(s) / 2
	case Cos:
		return -steepness * math.Sin(s) / 2
	case ReLU:
		if s > 0 {
			return steepness
		}
		return 0
	case LeakyReLU:
		if s > 0 {
			return steepness
		}
		return 0.01 * steepness
	default:
		panic(fmt.Sprintf("activation: Derivative on invalid function %d", uint8(f)))
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
