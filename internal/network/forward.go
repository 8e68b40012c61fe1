package network

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/fann/internal/activation"
)

// Trace holds the state of one forward pass.
//
// Values[l] holds the outputs of layer l. For every layer except the output
// layer it has one extra trailing entry fixed at 1, the bias input of the
// next layer. Sums[l] holds the scaled sums of layer l (nil for l == 0).
//
// A Trace belongs to one network shape and one goroutine; reuse it across
// Forward calls to avoid allocation.
type Trace struct {
	Values [][]float64
	Sums   [][]float64

	in  []*mat.VecDense // in[l] views Values[l-1] including its bias entry
	out []*mat.VecDense // out[l] views Sums[l]
}

// NewTrace allocates a Trace sized for n.
func (n *Network) NewTrace() *Trace {
	last := len(n.layers) - 1
	tr := &Trace{
		Values: make([][]float64, len(n.layers)),
		Sums:   make([][]float64, len(n.layers)),
		in:     make([]*mat.VecDense, len(n.layers)),
		out:    make([]*mat.VecDense, len(n.layers)),
	}
	for l, info := range n.layers {
		size := info.Width
		if l != last {
			size++
		}
		tr.Values[l] = make([]float64, size)
		if l != last {
			tr.Values[l][info.Width] = 1
		}
		if l > 0 {
			tr.Sums[l] = make([]float64, info.Width)
			tr.in[l] = mat.NewVecDense(len(tr.Values[l-1]), tr.Values[l-1])
			tr.out[l] = mat.NewVecDense(info.Width, tr.Sums[l])
		}
	}
	return tr
}

// Output returns the output-layer values of the last pass (zero-copy).
func (tr *Trace) Output() []float64 {
	return tr.Values[len(tr.Values)-1]
}

// Forward propagates input through the network, filling tr, and returns
// the output values (zero-copy into tr).
//
// input must have NumInput values and tr must come from NewTrace on a
// network of the same shape; Forward does not check either.
func (n *Network) Forward(input []float64, tr *Trace) []float64 {
	copy(tr.Values[0], input)

	for l := 1; l < len(n.layers); l++ {
		info := n.layers[l]
		tr.out[l].MulVec(n.views[l], tr.in[l])

		sums := tr.Sums[l]
		values := tr.Values[l]
		for i, sum := range sums {
			s := info.Steepness * sum
			if s > activation.MaxSum {
				s = activation.MaxSum
			} else if s < -activation.MaxSum {
				s = -activation.MaxSum
			}
			sums[i] = s
			values[i] = info.Activation.Apply(s)
		}
	}
	return tr.Output()
}

// Run computes the network outputs for input.
//
// Run does not change the network and allocates its own scratch space, so
// repeated calls with the same input return bit-identical results.
//
// Returns ErrDimensionMismatch when len(input) != NumInput().
func (n *Network) Run(input []float64) ([]float64, error) {
	if len(input) != n.NumInput() {
		return nil, fmt.Errorf("%w: input has %d values, network expects %d",
			ErrDimensionMismatch, len(input), n.NumInput())
	}
	out := n.Forward(input, n.NewTrace())
	return append([]float64(nil), out...), nil
}
