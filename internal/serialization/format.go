package serialization

import "github.com/born-ml/fann/internal/tensor"

// Format constants.
const (
	MagicBytes      = "FANN"
	FormatVersion   = 1    // v1: fixed 64-byte header with SHA-256 checksum
	HeaderAlignment = 64   // Align tensor data to 64 bytes
	FixedHeaderSize = 64   // Fixed header size (0x40 bytes)
	ChecksumSize    = 32   // SHA-256 checksum size (32 bytes)
	ChecksumOffset  = 0x20 // Checksum offset in the fixed header
	ElementSize     = 8    // float64
)

// DTypeFloat64 is the only tensor element type written by this package.
const DTypeFloat64 = "float64"

// ModelTypeMLP identifies a multilayer perceptron in Header.ModelType.
const ModelTypeMLP = "MultilayerPerceptron"

// Flags for the fixed header.
const (
	FlagHasMetadata uint32 = 1 << 0 // bit 0: custom metadata included
)

// Header represents the JSON header of a network file.
type Header struct {
	FormatVersion int               `json:"format_version"`     // Version of the file format
	Library       string            `json:"library"`            // Library version that wrote the file
	ModelType     string            `json:"model_type"`         // Type of model
	Layers        []LayerMeta       `json:"layers"`             // Layer layout, input layer first
	Tensors       []TensorMeta      `json:"tensors"`            // Tensor metadata
	Metadata      map[string]string `json:"metadata,omitempty"` // Custom metadata
}

// LayerMeta describes one layer of the persisted network.
type LayerMeta struct {
	Width      int     `json:"width"`
	Activation string  `json:"activation,omitempty"` // Empty for the input layer
	Steepness  float64 `json:"steepness,omitempty"`
}

// TensorMeta describes a tensor in the data section.
type TensorMeta struct {
	Name   string `json:"name"`   // Tensor name (e.g., "layer.1.weight")
	DType  string `json:"dtype"`  // Always "float64"
	Shape  []int  `json:"shape"`  // Tensor shape
	Offset int64  `json:"offset"` // Bytes from start of tensor data
	Size   int64  `json:"size"`   // Size in bytes
}

// Tensor is a named block of float64 values.
type Tensor struct {
	Name  string
	Shape tensor.Shape
	Data  []float64
}
