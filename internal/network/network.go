// Package network implements the layered feed-forward topology and its
// forward propagation.
//
// A Network keeps every weight in one flat arena. For each non-input layer l
// the arena holds a row-major block of Width(l) × (Width(l-1)+1) weights:
// one row per destination neuron, one column per source neuron of the
// previous layer, and a last column for the bias. Each block is also exposed
// as a gonum *mat.Dense view sharing that memory, so propagation is a matrix
// vector product per layer with no pointer chasing.
package network

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/fann/internal/activation"
	"github.com/born-ml/fann/internal/tensor"
)

// LayerSpec describes one layer for New.
//
// Activation and Steepness are ignored for the input layer. A zero
// Steepness selects activation.DefaultSteepness.
type LayerSpec struct {
	Width      int
	Activation activation.Func
	Steepness  float64
}

// LayerInfo describes one layer of an existing network.
type LayerInfo struct {
	Width      int
	Activation activation.Func // Linear for the input layer
	Steepness  float64         // 0 for the input layer
	Offset     int             // Start of the layer's weight block in the arena
	FanIn      int             // Width of the previous layer plus one bias column
}

// InitConfig controls the initial random weights.
type InitConfig struct {
	Seed      uint64  // Seed for the weight source
	WeightMin float64 // Lower bound (default: -0.1)
	WeightMax float64 // Upper bound (default: 0.1)
}

// Network is a fully connected multilayer perceptron.
//
// Run may be called concurrently. Anything that changes weights or layer
// settings must not run concurrently with any other method.
type Network struct {
	layers  []LayerInfo
	views   []*mat.Dense // views[l] is nil for l == 0
	weights *tensor.Buffer
}

// New creates a network with the given layers, input layer first, and
// random initial weights.
//
// Returns ErrInvalidTopology when there are fewer than two layers, a width
// is not positive, or a non-input layer has an unknown activation or an
// invalid steepness.
//
// Example:
//
//	net, err := network.New([]network.LayerSpec{
//	    {Width: 2},
//	    {Width: 3, Activation: activation.SigmoidSymmetric},
//	    {Width: 1, Activation: activation.Sigmoid},
//	}, network.InitConfig{Seed: 1})
func New(specs []LayerSpec, cfg InitConfig) (*Network, error) {
	n, err := build(specs)
	if err != nil {
		return nil, err
	}

	if cfg.WeightMin == 0 && cfg.WeightMax == 0 {
		cfg.WeightMin, cfg.WeightMax = -0.1, 0.1
	}
	if err := n.Randomize(cfg.WeightMin, cfg.WeightMax, cfg.Seed); err != nil {
		return nil, err
	}
	return n, nil
}

// NewStandard creates a network from layer widths, using hidden for every
// hidden layer and output for the output layer.
func NewStandard(widths []int, hidden, output activation.Func, cfg InitConfig) (*Network, error) {
	specs := make([]LayerSpec, len(widths))
	for i, w := range widths {
		specs[i] = LayerSpec{Width: w, Activation: hidden}
	}
	if len(specs) > 0 {
		specs[len(specs)-1].Activation = output
	}
	return New(specs, cfg)
}

// build validates specs and lays out a zero-weight network.
func build(specs []LayerSpec) (*Network, error) {
	if len(specs) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 layers, got %d", ErrInvalidTopology, len(specs))
	}

	layers := make([]LayerInfo, len(specs))
	total := 0
	for l, spec := range specs {
		if spec.Width <= 0 {
			return nil, fmt.Errorf("%w: layer %d has width %d", ErrInvalidTopology, l, spec.Width)
		}
		if l == 0 {
			layers[0] = LayerInfo{Width: spec.Width}
			continue
		}

		steepness := spec.Steepness
		if steepness == 0 {
			steepness = activation.DefaultSteepness
		}
		if err := validateLayer(l, spec.Activation, steepness); err != nil {
			return nil, err
		}

		fanIn := specs[l-1].Width + 1
		if fanIn <= 0 || spec.Width > (math.MaxInt-total)/fanIn {
			return nil, fmt.Errorf("%w: layer %d needs more weights than fit in memory", ErrInvalidTopology, l)
		}
		layers[l] = LayerInfo{
			Width:      spec.Width,
			Activation: spec.Activation,
			Steepness:  steepness,
			Offset:     total,
			FanIn:      fanIn,
		}
		total += spec.Width * fanIn
	}

	n := &Network{
		layers:  layers,
		weights: tensor.NewBuffer(total),
	}
	n.bindViews()
	return n, nil
}

func validateLayer(l int, f activation.Func, steepness float64) error {
	if !f.Valid() {
		return fmt.Errorf("%w: layer %d has unknown activation %d", ErrInvalidTopology, l, uint8(f))
	}
	if !(steepness > 0) || math.IsInf(steepness, 0) {
		return fmt.Errorf("%w: layer %d has steepness %v", ErrInvalidTopology, l, steepness)
	}
	return nil
}

func (n *Network) bindViews() {
	n.views = make([]*mat.Dense, len(n.layers))
	for l := 1; l < len(n.layers); l++ {
		info := n.layers[l]
		n.views[l] = n.weights.Matrix(info.Offset, info.Width, info.FanIn)
	}
}

// NumLayers returns the number of layers including input and output.
func (n *Network) NumLayers() int { return len(n.layers) }

// NumInput returns the width of the input layer.
func (n *Network) NumInput() int { return n.layers[0].Width }

// NumOutput returns the width of the output layer.
func (n *Network) NumOutput() int { return n.layers[len(n.layers)-1].Width }

// Layer returns the description of layer l.
func (n *Network) Layer(l int) LayerInfo { return n.layers[l] }

// Layers returns the description of every layer, input layer first.
func (n *Network) Layers() []LayerInfo {
	return append([]LayerInfo(nil), n.layers...)
}

// Widths returns the width of every layer.
func (n *Network) Widths() []int {
	widths := make([]int, len(n.layers))
	for i, l := range n.layers {
		widths[i] = l.Width
	}
	return widths
}

// Specs returns LayerSpecs that rebuild this topology.
func (n *Network) Specs() []LayerSpec {
	specs := make([]LayerSpec, len(n.layers))
	for i, l := range n.layers {
		specs[i] = LayerSpec{Width: l.Width, Activation: l.Activation, Steepness: l.Steepness}
	}
	return specs
}

// TotalConnections returns the number of weights, bias weights included.
func (n *Network) TotalConnections() int { return n.weights.Len() }

// LayerWeights returns the weight matrix of layer l (l >= 1) as a view into
// the arena: rows are neurons of l, columns are neurons of l-1 then bias.
func (n *Network) LayerWeights(l int) *mat.Dense {
	if l < 1 || l >= len(n.layers) {
		panic(fmt.Sprintf("network: layer %d has no weights", l))
	}
	return n.views[l]
}

// WeightArena returns the flat weight arena (zero-copy).
//
// Writing to it changes the network. The slice stays valid for the life
// of the network.
func (n *Network) WeightArena() []float64 {
	return n.weights.Data()
}

// Weights returns a copy of every weight in arena order.
func (n *Network) Weights() []float64 {
	return append([]float64(nil), n.weights.Data()...)
}

// SetWeights replaces every weight. w must be in arena order.
func (n *Network) SetWeights(w []float64) error {
	if err := n.weights.CopyFrom(w); err != nil {
		return fmt.Errorf("%w: %v", ErrDimensionMismatch, err)
	}
	return nil
}

// SetActivation changes the activation function of layer l (l >= 1).
func (n *Network) SetActivation(l int, f activation.Func) error {
	if l < 1 || l >= len(n.layers) {
		return fmt.Errorf("layer %d has no activation", l)
	}
	if err := validateLayer(l, f, n.layers[l].Steepness); err != nil {
		return err
	}
	n.layers[l].Activation = f
	return nil
}

// SetSteepness changes the steepness of layer l (l >= 1).
func (n *Network) SetSteepness(l int, steepness float64) error {
	if l < 1 || l >= len(n.layers) {
		return fmt.Errorf("layer %d has no steepness", l)
	}
	if err := validateLayer(l, n.layers[l].Activation, steepness); err != nil {
		return err
	}
	n.layers[l].Steepness = steepness
	return nil
}

// Clone returns an independent deep copy.
func (n *Network) Clone() *Network {
	c := &Network{
		layers:  append([]LayerInfo(nil), n.layers...),
		weights: n.weights.Clone(),
	}
	c.bindViews()
	return c
}

// Equal reports whether both networks have the same topology, activation
// settings and bit-identical weights.
func (n *Network) Equal(other *Network) bool {
	if other == nil || len(n.layers) != len(other.layers) {
		return false
	}
	for i := range n.layers {
		a, b := n.layers[i], other.layers[i]
		if a.Width != b.Width || a.Activation != b.Activation ||
			math.Float64bits(a.Steepness) != math.Float64bits(b.Steepness) {
			return false
		}
	}
	return n.weights.Equal(other.weights)
}
