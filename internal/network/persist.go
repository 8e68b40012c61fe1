package network

import (
	"fmt"
	"io"

	"github.com/born-ml/fann/internal/activation"
	"github.com/born-ml/fann/internal/serialization"
	"github.com/born-ml/fann/internal/tensor"
)

// tensorName returns the stored name of the weight block of layer l.
func tensorName(l int) string {
	return fmt.Sprintf("layer.%d.weight", l)
}

// encode splits the network into a header and one tensor per layer.
func (n *Network) encode() (serialization.Header, []serialization.Tensor) {
	header := serialization.Header{
		ModelType: serialization.ModelTypeMLP,
		Layers:    make([]serialization.LayerMeta, len(n.layers)),
	}
	tensors := make([]serialization.Tensor, 0, len(n.layers)-1)

	for l, info := range n.layers {
		header.Layers[l] = serialization.LayerMeta{Width: info.Width}
		if l == 0 {
			continue
		}
		header.Layers[l].Activation = info.Activation.String()
		header.Layers[l].Steepness = info.Steepness
		tensors = append(tensors, serialization.Tensor{
			Name:  tensorName(l),
			Shape: tensor.Shape{info.Width, info.FanIn},
			Data:  n.weights.Slice(info.Offset, info.Width*info.FanIn),
		})
	}
	return header, tensors
}

// Save writes the network to a file.
func (n *Network) Save(path string) error {
	header, tensors := n.encode()
	if err := serialization.Save(path, header, tensors); err != nil {
		return fmt.Errorf("failed to save network: %w", err)
	}
	return nil
}

// WriteTo writes the network in the binary network format to w.
func (n *Network) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	header, tensors := n.encode()
	if err := serialization.NewWriter(cw).WriteModel(header, tensors); err != nil {
		return cw.n, fmt.Errorf("failed to write network: %w", err)
	}
	return cw.n, nil
}

// Load reads a network from a file written by Save.
//
// Returns serialization.ErrIncompatibleVersion for an unknown format
// version and an error wrapping serialization.ErrCorruptFile for any other
// damage. No network is returned on failure.
func Load(path string) (*Network, error) {
	r, err := serialization.Open(path, serialization.ReaderOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to load network: %w", err)
	}
	return decode(r)
}

// Read reads a network written by WriteTo.
func Read(rd io.Reader) (*Network, error) {
	r, err := serialization.NewReader(rd, serialization.ReaderOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to read network: %w", err)
	}
	return decode(r)
}

func decode(r *serialization.Reader) (*Network, error) {
	header := r.Header()
	if header.ModelType != serialization.ModelTypeMLP {
		return nil, corrupt("unexpected model type %q", header.ModelType)
	}
	if len(header.Tensors) != len(header.Layers)-1 {
		return nil, corrupt("%d layers but %d tensors", len(header.Layers), len(header.Tensors))
	}

	specs := make([]LayerSpec, len(header.Layers))
	for l, meta := range header.Layers {
		specs[l].Width = meta.Width
		if l == 0 {
			continue
		}
		f, err := activation.Parse(meta.Activation)
		if err != nil {
			return nil, corrupt("layer %d: %v", l, err)
		}
		if !(meta.Steepness > 0) {
			return nil, corrupt("layer %d: steepness %v", l, meta.Steepness)
		}
		specs[l].Activation = f
		specs[l].Steepness = meta.Steepness
	}

	if err := checkLayout(r, specs); err != nil {
		return nil, err
	}

	n, err := build(specs)
	if err != nil {
		return nil, corrupt("%v", err)
	}

	for l := 1; l < len(n.layers); l++ {
		info := n.layers[l]
		t, err := r.Tensor(tensorName(l))
		if err != nil {
			return nil, corrupt("%v", err)
		}
		copy(n.weights.Slice(info.Offset, len(t.Data)), t.Data)
	}
	return n, nil
}

// checkLayout matches the layer widths against the stored tensor shapes
// before anything is allocated. Tensor shapes are already bounded by the
// data the reader holds, so widths that agree with them are safe to build.
func checkLayout(r *serialization.Reader, specs []LayerSpec) error {
	total := 0
	for l := 1; l < len(specs); l++ {
		meta, err := r.TensorInfo(tensorName(l))
		if err != nil {
			return corrupt("%v", err)
		}
		width, prev := specs[l].Width, specs[l-1].Width
		if width <= 0 || prev <= 0 {
			return corrupt("layer %d: widths %d and %d", l, prev, width)
		}
		shape := tensor.Shape(meta.Shape)
		if len(shape) != 2 || shape[0] != width || shape[1]-1 != prev {
			return corrupt("%s has shape %v, want [%d %d+1]", meta.Name, meta.Shape, width, prev)
		}
		total += shape.NumElements()
	}
	if total > r.NumValues() {
		return corrupt("layers need %d weights, file holds %d", total, r.NumValues())
	}
	return nil
}

func corrupt(format string, args ...any) error {
	return fmt.Errorf("%w: %s", serialization.ErrCorruptFile, fmt.Sprintf(format, args...))
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
