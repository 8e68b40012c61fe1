package optim

// SGD implements gradient descent with optional momentum.
//
// Update rule:
//
//	step = (lr / numData) * slope + momentum * previous step
//	weight = weight + step
//
// Called after every example (numData = 1) this is incremental training;
// called once per epoch with the epoch's summed slopes it is batch
// training.
//
// Example:
//
//	sgd := optim.NewSGD(len(weights), optim.SGDConfig{
//	    LR:       0.7,
//	    Momentum: 0.9,
//	})
type SGD struct {
	lr       float64
	momentum float64
	steps    []float64
}

// SGDConfig holds configuration for SGD.
type SGDConfig struct {
	LR       float64 `yaml:"learning_rate"` // Learning rate (default: 0.7)
	Momentum float64 `yaml:"momentum"`      // Momentum factor (default: 0.0, range: [0, 1))
}

// NewSGD creates an SGD optimizer for n weights.
func NewSGD(n int, config SGDConfig) *SGD {
	if config.LR == 0 {
		config.LR = 0.7
	}

	return &SGD{
		lr:       config.LR,
		momentum: config.Momentum,
		steps:    make([]float64, n),
	}
}

// Step performs a single update.
func (s *SGD) Step(weights, slopes []float64, numData int) {
	checkLen(weights, slopes, s.steps)
	epsilon := s.lr / float64(max(numData, 1))

	if s.momentum == 0 {
		for i, slope := range slopes {
			weights[i] += epsilon * slope
			slopes[i] = 0
		}
		return
	}

	for i, slope := range slopes {
		step := epsilon*slope + s.momentum*s.steps[i]
		weights[i] += step
		s.steps[i] = step
		slopes[i] = 0
	}
}

// Reset clears the momentum state.
func (s *SGD) Reset() {
	clear(s.steps)
}

// GetLR returns the current learning rate.
func (s *SGD) GetLR() float64 {
	return s.lr
}

// SetLR updates the learning rate.
func (s *SGD) SetLR(lr float64) {
	s.lr = lr
}
