// Package tensor provides the fixed-size float64 storage shared by the
// network arena, training scratch space and the persistence codec.
package tensor

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Buffer is a fixed-size, contiguous array of float64 values.
//
// A Buffer never grows. Regions of it can be viewed as gonum matrices and
// vectors without copying, which lets a whole network live in one
// allocation while layer code still works with mat.Dense.
type Buffer struct {
	data []float64
}

// NewBuffer allocates a zero-filled buffer of n elements.
func NewBuffer(n int) *Buffer {
	if n < 0 {
		panic(fmt.Sprintf("tensor: negative buffer size %d", n))
	}
	return &Buffer{data: make([]float64, n)}
}

// FromSlice creates a buffer holding a copy of data.
func FromSlice(data []float64) *Buffer {
	b := NewBuffer(len(data))
	copy(b.data, data)
	return b
}

// Len returns the number of elements.
func (b *Buffer) Len() int {
	return len(b.data)
}

// Data returns the backing slice (zero-copy).
func (b *Buffer) Data() []float64 {
	return b.data
}

// Slice returns the n elements starting at off (zero-copy).
func (b *Buffer) Slice(off, n int) []float64 {
	b.checkRange(off, n)
	return b.data[off : off+n : off+n]
}

// Matrix returns a rows×cols row-major view starting at off.
//
// Writes through the returned matrix modify the buffer.
func (b *Buffer) Matrix(off, rows, cols int) *mat.Dense {
	return mat.NewDense(rows, cols, b.Slice(off, rows*cols))
}

// Vector returns an n-element vector view starting at off.
func (b *Buffer) Vector(off, n int) *mat.VecDense {
	return mat.NewVecDense(n, b.Slice(off, n))
}

// Zero sets every element to 0.
func (b *Buffer) Zero() {
	for i := range b.data {
		b.data[i] = 0
	}
}

// CopyFrom overwrites the buffer with src, which must have the same length.
func (b *Buffer) CopyFrom(src []float64) error {
	if len(src) != len(b.data) {
		return fmt.Errorf("length mismatch: buffer has %d elements, source has %d", len(b.data), len(src))
	}
	copy(b.data, src)
	return nil
}

// Clone returns a deep copy of the buffer.
func (b *Buffer) Clone() *Buffer {
	return FromSlice(b.data)
}

// Equal reports whether both buffers hold bit-identical values.
//
// NaN payloads compare by bit pattern, so a buffer is always equal to its clone.
func (b *Buffer) Equal(other *Buffer) bool {
	if other == nil || len(b.data) != len(other.data) {
		return false
	}
	for i, v := range b.data {
		if math.Float64bits(v) != math.Float64bits(other.data[i]) {
			return false
		}
	}
	return true
}

func (b *Buffer) checkRange(off, n int) {
	if off < 0 || n < 0 || off+n > len(b.data) {
		panic(fmt.Sprintf("tensor: range [%d, %d) out of bounds for buffer of length %d", off, off+n, len(b.data)))
	}
}
