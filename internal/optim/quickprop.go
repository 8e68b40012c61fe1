package optim

// Quickprop implements Fahlman's quickprop.
//
// Each weight is moved towards the minimum of a parabola fitted through its
// current and previous slope. A small weight decay is folded into the
// slope, and growth per step is limited by Mu.
//
// Example:
//
//	qp := optim.NewQuickprop(len(weights), optim.QuickpropConfig{LR: 0.7})
type Quickprop struct {
	cfg        QuickpropConfig
	shrink     float64
	steps      []float64
	prevSlopes []float64
}

// QuickpropConfig holds configuration for Quickprop. Zero fields take
// defaults.
type QuickpropConfig struct {
	LR    float64 `yaml:"learning_rate"` // Learning rate (default: 0.7)
	Decay float64 `yaml:"decay"`         // Weight decay, negative (default: -0.0001)
	Mu    float64 `yaml:"mu"`            // Maximum growth factor (default: 1.75)
}

// Step limits.
const (
	quickpropMaxStep  = 1000.0
	quickpropMinDelta = 0.001
)

// NewQuickprop creates a Quickprop optimizer for n weights.
func NewQuickprop(n int, config QuickpropConfig) *Quickprop {
	if config.LR == 0 {
		config.LR = 0.7
	}
	if config.Decay == 0 {
		config.Decay = -0.0001
	}
	if config.Mu == 0 {
		config.Mu = 1.75
	}

	return &Quickprop{
		cfg:        config,
		shrink:     config.Mu / (1 + config.Mu),
		steps:      make([]float64, n),
		prevSlopes: make([]float64, n),
	}
}

// Step performs a single update.
func (q *Quickprop) Step(weights, slopes []float64, numData int) {
	checkLen(weights, slopes, q.steps)
	epsilon := q.cfg.LR / float64(max(numData, 1))

	for i := range weights {
		w := weights[i]
		prevStep := q.steps[i]
		prevSlope := q.prevSlopes[i]
		slope := slopes[i] + q.cfg.Decay*w

		var next float64
		switch {
		case prevStep > quickpropMinDelta:
			if slope > 0 {
				next += epsilon * slope
			}
			next += q.quadratic(prevStep, slope, prevSlope, slope > q.shrink*prevSlope)
		case prevStep < -quickpropMinDelta:
			if slope < 0 {
				next += epsilon * slope
			}
			next += q.quadratic(prevStep, slope, prevSlope, slope < q.shrink*prevSlope)
		default:
			next += epsilon * slope
		}

		next = min(max(next, -quickpropMaxStep), quickpropMaxStep)
		q.steps[i] = next
		weights[i] = clampWeight(w + next)
		q.prevSlopes[i] = slope
		slopes[i] = 0
	}
}

// quadratic returns the parabola step, or the maximum growth step when the
// parabola would overshoot or is degenerate.
func (q *Quickprop) quadratic(prevStep, slope, prevSlope float64, overshoot bool) float64 {
	if overshoot || prevSlope == slope {
		return q.cfg.Mu * prevStep
	}
	return prevStep * slope / (prevSlope - slope)
}

// Reset forgets previous steps and slopes.
func (q *Quickprop) Reset() {
	clear(q.steps)
	clear(q.prevSlopes)
}

// GetLR returns the learning rate.
func (q *Quickprop) GetLR() float64 {
	return q.cfg.LR
}
