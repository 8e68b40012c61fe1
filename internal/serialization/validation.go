package serialization

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/born-ml/fann/internal/tensor"
)

// Validation limits for resource protection.
const (
	MaxHeaderSize    = 16 * 1024 * 1024 // 16MB - maximum header size
	MaxTensorCount   = 4096             // Maximum number of tensors in a file
	MaxTensorNameLen = 256              // Maximum tensor name length
	MaxLayerCount    = 4096             // Maximum number of layers in a header
)

// ValidateTensorOffsets checks tensor regions for overlap, gaps in size
// accounting and out-of-bounds access.
func ValidateTensorOffsets(tensors []TensorMeta, dataSize int64) error {
	if len(tensors) > MaxTensorCount {
		return &ValidationError{
			Type:    "too_many_tensors",
			Details: fmt.Sprintf("got %d, max %d", len(tensors), MaxTensorCount),
		}
	}

	sorted := make([]TensorMeta, len(tensors))
	copy(sorted, tensors)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Offset < sorted[j].Offset
	})

	for i, t := range sorted {
		if t.Offset < 0 || t.Size < 0 {
			return &ValidationError{
				Type:    "negative_offset",
				Tensor:  t.Name,
				Details: fmt.Sprintf("offset=%d, size=%d (negative values not allowed)", t.Offset, t.Size),
			}
		}

		if t.Offset%ElementSize != 0 {
			return &ValidationError{
				Type:    "misaligned_tensor",
				Tensor:  t.Name,
				Details: fmt.Sprintf("offset %d is not a multiple of %d", t.Offset, ElementSize),
			}
		}
		if t.Offset > dataSize || t.Size > dataSize-t.Offset {
			return &ValidationError{
				Type:    "out_of_bounds",
				Tensor:  t.Name,
				Details: fmt.Sprintf("offset %d + size %d > data_size %d", t.Offset, t.Size, dataSize),
			}
		}

		if i < len(sorted)-1 {
			next := sorted[i+1]
			if t.Offset+t.Size > next.Offset {
				return &ValidationError{
					Type:    "offset_overlap",
					Tensor:  t.Name,
					Tensor2: next.Name,
					Details: fmt.Sprintf("regions [%d-%d] and [%d-%d] overlap",
						t.Offset, t.Offset+t.Size, next.Offset, next.Offset+next.Size),
				}
			}
		}
	}

	return nil
}

// ValidateTensorMeta checks that a tensor's dtype, shape and byte size agree.
func ValidateTensorMeta(t TensorMeta) error {
	if t.DType != DTypeFloat64 {
		return &ValidationError{
			Type:    "unsupported_dtype",
			Tensor:  t.Name,
			Details: fmt.Sprintf("dtype %q (only %q is supported)", t.DType, DTypeFloat64),
		}
	}

	shape := tensor.Shape(t.Shape)
	if err := shape.Validate(); err != nil {
		return &ValidationError{
			Type:    "invalid_shape",
			Tensor:  t.Name,
			Details: err.Error(),
		}
	}

	if n := int64(shape.NumElements()); n > math.MaxInt64/ElementSize || t.Size != n*ElementSize {
		return &ValidationError{
			Type:    "size_mismatch",
			Tensor:  t.Name,
			Details: fmt.Sprintf("shape %v needs %d elements, header says %d bytes", t.Shape, shape.NumElements(), t.Size),
		}
	}

	return nil
}

// ValidateTensorName rejects empty, oversized or non-printable tensor names.
func ValidateTensorName(name string) error {
	if name == "" {
		return &ValidationError{
			Type:    "invalid_name",
			Details: "empty tensor name",
		}
	}

	if len(name) > MaxTensorNameLen {
		return &ValidationError{
			Type:    "name_too_long",
			Tensor:  name,
			Details: fmt.Sprintf("length %d > max %d", len(name), MaxTensorNameLen),
		}
	}

	if strings.ContainsAny(name, "\x00/\\") {
		return &ValidationError{
			Type:    "invalid_name",
			Tensor:  name,
			Details: "contains null byte or path separator",
		}
	}

	return nil
}

// ValidateHeader performs the structural checks shared by readers and writers.
func ValidateHeader(h *Header, dataSize int64) error {
	if len(h.Layers) > MaxLayerCount {
		return &ValidationError{
			Type:    "too_many_layers",
			Details: fmt.Sprintf("got %d, max %d", len(h.Layers), MaxLayerCount),
		}
	}

	seen := make(map[string]struct{}, len(h.Tensors))
	for _, t := range h.Tensors {
		if err := ValidateTensorName(t.Name); err != nil {
			return err
		}
		if _, dup := seen[t.Name]; dup {
			return &ValidationError{
				Type:    "duplicate_tensor",
				Tensor:  t.Name,
				Details: "tensor name appears more than once",
			}
		}
		seen[t.Name] = struct{}{}

		if err := ValidateTensorMeta(t); err != nil {
			return err
		}
	}

	return ValidateTensorOffsets(h.Tensors, dataSize)
}
