// Package dataset implements the training data set: an ordered collection
// of (input, expected output) vector pairs sharing fixed widths.
//
// Examples are stored in two flat arenas, one for inputs and one for
// outputs, so iterating an epoch walks contiguous memory.
package dataset

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
)

// TrainingData is an ordered set of training examples.
//
// A TrainingData is not safe for concurrent mutation. Readers (Input,
// Output, Example) may run concurrently as long as nothing mutates it.
type TrainingData struct {
	numInput  int
	numOutput int
	inputs    []float64 // len = Len() * numInput
	outputs   []float64 // len = Len() * numOutput
}

// New builds a data set from parallel slices of input and output vectors.
//
// All input vectors must share one width and all output vectors another;
// the vectors are copied.
func New(inputs, outputs [][]float64) (*TrainingData, error) {
	if len(inputs) != len(outputs) {
		return nil, fmt.Errorf("%w: %d input vectors but %d output vectors", ErrMalformedData, len(inputs), len(outputs))
	}
	if len(inputs) == 0 {
		return Empty(0, 0), nil
	}

	d := Empty(len(inputs[0]), len(outputs[0]))
	for i := range inputs {
		if err := d.Append(inputs[i], outputs[i]); err != nil {
			return nil, fmt.Errorf("example %d: %w", i, err)
		}
	}
	return d, nil
}

// Empty returns a data set with no examples and the given widths.
//
// A set with a zero width stays empty: Append rejects every example.
func Empty(numInput, numOutput int) *TrainingData {
	return &TrainingData{numInput: numInput, numOutput: numOutput}
}

// Append adds a copy of one example to the end of the set.
//
// Returns ErrMalformedData when the example widths differ from the set's
// or when either width is zero.
func (d *TrainingData) Append(input, output []float64) error {
	if len(input) == 0 || len(output) == 0 {
		return fmt.Errorf("%w: example has widths %d/%d, both must be positive",
			ErrMalformedData, len(input), len(output))
	}
	if len(input) != d.numInput || len(output) != d.numOutput {
		return fmt.Errorf("%w: example has widths %d/%d, data set expects %d/%d",
			ErrMalformedData, len(input), len(output), d.numInput, d.numOutput)
	}
	d.inputs = append(d.inputs, input...)
	d.outputs = append(d.outputs, output...)
	return nil
}

// Len returns the number of examples.
func (d *TrainingData) Len() int {
	if d.numInput == 0 {
		return 0
	}
	return len(d.inputs) / d.numInput
}

// NumInput returns the width of every input vector.
func (d *TrainingData) NumInput() int { return d.numInput }

// NumOutput returns the width of every output vector.
func (d *TrainingData) NumOutput() int { return d.numOutput }

// Input returns the input vector of example i (zero-copy, do not append).
func (d *TrainingData) Input(i int) []float64 {
	off := i * d.numInput
	return d.inputs[off : off+d.numInput : off+d.numInput]
}

// Output returns the expected output vector of example i (zero-copy).
func (d *TrainingData) Output(i int) []float64 {
	off := i * d.numOutput
	return d.outputs[off : off+d.numOutput : off+d.numOutput]
}

// Example returns both vectors of example i.
func (d *TrainingData) Example(i int) (input, output []float64) {
	return d.Input(i), d.Output(i)
}

// Inputs returns copies of all input vectors.
func (d *TrainingData) Inputs() [][]float64 {
	out := make([][]float64, d.Len())
	for i := range out {
		out[i] = append([]float64(nil), d.Input(i)...)
	}
	return out
}

// Outputs returns copies of all output vectors.
func (d *TrainingData) Outputs() [][]float64 {
	out := make([][]float64, d.Len())
	for i := range out {
		out[i] = append([]float64(nil), d.Output(i)...)
	}
	return out
}

// Clone returns a deep copy.
func (d *TrainingData) Clone() *TrainingData {
	return &TrainingData{
		numInput:  d.numInput,
		numOutput: d.numOutput,
		inputs:    append([]float64(nil), d.inputs...),
		outputs:   append([]float64(nil), d.outputs...),
	}
}

// Equal reports whether both sets hold the same examples bit for bit.
func (d *TrainingData) Equal(other *TrainingData) bool {
	if other == nil || d.numInput != other.numInput || d.numOutput != other.numOutput {
		return false
	}
	return bitsEqual(d.inputs, other.inputs) && bitsEqual(d.outputs, other.outputs)
}

// Shuffle reorders the examples in place.
//
// The permutation depends only on seed and Len, so a run can be replayed.
func (d *TrainingData) Shuffle(seed uint64) {
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(d.Len(), d.swap)
}

// Subset returns a copy of length examples starting at pos.
func (d *TrainingData) Subset(pos, length int) (*TrainingData, error) {
	if pos < 0 || length < 0 || pos+length > d.Len() {
		return nil, fmt.Errorf("subset [%d, %d) out of range for %d examples", pos, pos+length, d.Len())
	}
	return &TrainingData{
		numInput:  d.numInput,
		numOutput: d.numOutput,
		inputs:    append([]float64(nil), d.inputs[pos*d.numInput:(pos+length)*d.numInput]...),
		outputs:   append([]float64(nil), d.outputs[pos*d.numOutput:(pos+length)*d.numOutput]...),
	}, nil
}

// Split divides the set into two disjoint sets.
//
// The first holds the first ⌊ratio × Len()⌋ examples and the second the
// rest; relative order is preserved in both. ratio must be in [0, 1].
func (d *TrainingData) Split(ratio float64) (first, second *TrainingData, err error) {
	if math.IsNaN(ratio) || ratio < 0 || ratio > 1 {
		return nil, nil, fmt.Errorf("split ratio %v outside [0, 1]", ratio)
	}

	n := d.Len()
	k := int(math.Floor(ratio * float64(n)))

	first, err = d.Subset(0, k)
	if err != nil {
		return nil, nil, err
	}
	second, err = d.Subset(k, n-k)
	if err != nil {
		return nil, nil, err
	}
	return first, second, nil
}

// Merge returns a new set holding the examples of a followed by those of b.
func Merge(a, b *TrainingData) (*TrainingData, error) {
	switch {
	case a.Len() == 0:
		return b.Clone(), nil
	case b.Len() == 0:
		return a.Clone(), nil
	case a.numInput != b.numInput || a.numOutput != b.numOutput:
		return nil, fmt.Errorf("%w: %d/%d vs %d/%d", ErrIncompatibleData, a.numInput, a.numOutput, b.numInput, b.numOutput)
	}

	merged := a.Clone()
	merged.inputs = append(merged.inputs, b.inputs...)
	merged.outputs = append(merged.outputs, b.outputs...)
	return merged, nil
}

func (d *TrainingData) swap(i, j int) {
	swapRows(d.inputs, d.numInput, i, j)
	swapRows(d.outputs, d.numOutput, i, j)
}

func swapRows(arena []float64, width, i, j int) {
	a := arena[i*width : (i+1)*width]
	b := arena[j*width : (j+1)*width]
	for k := range a {
		a[k], b[k] = b[k], a[k]
	}
}

func bitsEqual(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if math.Float64bits(a[i]) != math.Float64bits(b[i]) {
			return false
		}
	}
	return true
}
