package network

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"
)

// Randomize sets every weight to a value drawn uniformly from [min, max)
// using a source seeded with seed. The same seed always gives the same
// weights.
func (n *Network) Randomize(min, max float64, seed uint64) error {
	if !(min < max) || math.IsInf(min, 0) || math.IsInf(max, 0) {
		return fmt.Errorf("invalid weight range [%v, %v)", min, max)
	}

	dist := distuv.Uniform{Min: min, Max: max, Src: rand.NewSource(seed)}
	weights := n.weights.Data()
	for i := range weights {
		weights[i] = dist.Rand()
	}
	return nil
}

// InitWidrowNguyen initializes the weights with the Widrow-Nguyen rule,
// using the value range of the training inputs.
//
// With s = (0.7 * hidden)^(1/inputs) / (largest - smallest), bias weights
// are drawn from [-s, s) and all other weights from [0, s).
//
// Returns an error when inputs is empty, a row has the wrong width, or
// every input value is the same.
func (n *Network) InitWidrowNguyen(inputs [][]float64, seed uint64) error {
	if len(inputs) == 0 {
		return fmt.Errorf("widrow-nguyen: no inputs")
	}
	smallest, largest := math.Inf(1), math.Inf(-1)
	for i, row := range inputs {
		if len(row) != n.NumInput() {
			return fmt.Errorf("%w: input %d has %d values, network expects %d",
				ErrDimensionMismatch, i, len(row), n.NumInput())
		}
		smallest = math.Min(smallest, floats.Min(row))
		largest = math.Max(largest, floats.Max(row))
	}
	if !(largest > smallest) {
		return fmt.Errorf("widrow-nguyen: input range is empty")
	}

	hidden := 0
	for l := 1; l < len(n.layers)-1; l++ {
		hidden += n.layers[l].Width
	}
	if hidden == 0 {
		hidden = 1
	}
	scale := math.Pow(0.7*float64(hidden), 1/float64(n.NumInput())) / (largest - smallest)

	src := rand.NewSource(seed)
	bias := distuv.Uniform{Min: -scale, Max: scale, Src: src}
	weight := distuv.Uniform{Min: 0, Max: scale, Src: src}
	arena := n.weights.Data()
	for l := 1; l < len(n.layers); l++ {
		info := n.layers[l]
		for i := 0; i < info.Width; i++ {
			row := arena[info.Offset+i*info.FanIn : info.Offset+(i+1)*info.FanIn]
			last := len(row) - 1
			for j := range row {
				if j == last {
					row[j] = bias.Rand()
				} else {
					row[j] = weight.Rand()
				}
			}
		}
	}
	return nil
}
