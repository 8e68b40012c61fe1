package optim

import "math"

// RPROP implements resilient propagation (iRPROP-).
//
// Each weight keeps its own step size. The step grows while the slope keeps
// its sign and shrinks when the sign flips; only the sign of the slope
// decides the direction. After a sign flip the slope is forgotten, so the
// next epoch grows the step again. A zero slope leaves the weight alone.
//
// Example:
//
//	rprop := optim.NewRPROP(len(weights), optim.RPROPConfig{})
type RPROP struct {
	cfg        RPROPConfig
	steps      []float64
	prevSlopes []float64
}

// RPROPConfig holds configuration for RPROP. Zero fields take defaults.
type RPROPConfig struct {
	IncreaseFactor float64 `yaml:"increase_factor"` // Step growth (default: 1.2)
	DecreaseFactor float64 `yaml:"decrease_factor"` // Step shrink (default: 0.5)
	DeltaMin       float64 `yaml:"delta_min"`       // Smallest step (default: 0.0)
	DeltaMax       float64 `yaml:"delta_max"`       // Largest step (default: 50.0)
	DeltaZero      float64 `yaml:"delta_zero"`      // Initial step (default: 0.1)
}

// minStep keeps a collapsed step able to grow again.
const minStep = 0.0001

// DefaultRPROPConfig returns the standard RPROP parameters.
func DefaultRPROPConfig() RPROPConfig {
	return RPROPConfig{
		IncreaseFactor: 1.2,
		DecreaseFactor: 0.5,
		DeltaMin:       0.0,
		DeltaMax:       50.0,
		DeltaZero:      0.1,
	}
}

// NewRPROP creates an RPROP optimizer for n weights.
func NewRPROP(n int, config RPROPConfig) *RPROP {
	def := DefaultRPROPConfig()
	if config.IncreaseFactor == 0 {
		config.IncreaseFactor = def.IncreaseFactor
	}
	if config.DecreaseFactor == 0 {
		config.DecreaseFactor = def.DecreaseFactor
	}
	if config.DeltaMax == 0 {
		config.DeltaMax = def.DeltaMax
	}
	if config.DeltaZero == 0 {
		config.DeltaZero = def.DeltaZero
	}

	r := &RPROP{
		cfg:        config,
		steps:      make([]float64, n),
		prevSlopes: make([]float64, n),
	}
	r.Reset()
	return r
}

// Step performs a single update. numData is not used: RPROP only looks at
// slope signs.
func (r *RPROP) Step(weights, slopes []float64, _ int) {
	checkLen(weights, slopes, r.steps)

	for i, slope := range slopes {
		prevStep := math.Max(r.steps[i], minStep)
		var next float64
		if r.prevSlopes[i]*slope >= 0 {
			next = math.Min(prevStep*r.cfg.IncreaseFactor, r.cfg.DeltaMax)
		} else {
			next = math.Max(prevStep*r.cfg.DecreaseFactor, r.cfg.DeltaMin)
			slope = 0
		}

		switch {
		case slope < 0:
			weights[i] = clampWeight(weights[i] - next)
		case slope > 0:
			weights[i] = clampWeight(weights[i] + next)
		}

		r.steps[i] = next
		r.prevSlopes[i] = slope
		slopes[i] = 0
	}
}

// Reset restores the initial step sizes and forgets previous slopes.
func (r *RPROP) Reset() {
	for i := range r.steps {
		r.steps[i] = r.cfg.DeltaZero
	}
	clear(r.prevSlopes)
}

// GetLR returns 0: RPROP has no learning rate.
func (r *RPROP) GetLR() float64 {
	return 0
}
