package serialization

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
)

// LibraryVersion is recorded in every header written by this package.
const LibraryVersion = "fann-go/0.1.0"

// Writer writes networks in the binary network format.
type Writer struct {
	w io.Writer
}

// NewWriter creates a writer that emits one model to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// WriteModel writes header and tensors as a complete file.
//
// Tensor metadata in header is replaced by metadata computed from tensors,
// which are laid out in the order given.
func (w *Writer) WriteModel(header Header, tensors []Tensor) error {
	header.FormatVersion = FormatVersion
	if header.Library == "" {
		header.Library = LibraryVersion
	}

	var offset int64
	header.Tensors = make([]TensorMeta, 0, len(tensors))
	for _, t := range tensors {
		if t.Shape.NumElements() != len(t.Data) {
			return fmt.Errorf("tensor %q: shape %v does not match %d elements", t.Name, t.Shape, len(t.Data))
		}
		size := int64(len(t.Data)) * ElementSize
		header.Tensors = append(header.Tensors, TensorMeta{
			Name:   t.Name,
			DType:  DTypeFloat64,
			Shape:  []int(t.Shape.Clone()),
			Offset: offset,
			Size:   size,
		})
		offset += size
	}
	dataSize := offset

	if err := ValidateHeader(&header, dataSize); err != nil {
		return fmt.Errorf("invalid header: %w", err)
	}

	headerJSON, err := json.Marshal(header)
	if err != nil {
		return fmt.Errorf("failed to marshal header: %w", err)
	}
	if len(headerJSON) > MaxHeaderSize {
		return ErrHeaderTooLarge
	}

	sum := newChecksum(headerJSON)
	for _, t := range tensors {
		sum.addFloats(t.Data)
	}
	checksum := sum.sum()

	flags := uint32(0)
	if len(header.Metadata) > 0 {
		flags |= FlagHasMetadata
	}

	var fixed [FixedHeaderSize]byte
	copy(fixed[0:4], MagicBytes)
	binary.LittleEndian.PutUint32(fixed[4:8], FormatVersion)
	binary.LittleEndian.PutUint32(fixed[8:12], flags)
	binary.LittleEndian.PutUint64(fixed[16:24], uint64(len(headerJSON)))
	binary.LittleEndian.PutUint64(fixed[24:32], uint64(dataSize))
	copy(fixed[ChecksumOffset:ChecksumOffset+ChecksumSize], checksum[:])

	bw := bufio.NewWriter(w.w)

	if _, err := bw.Write(fixed[:]); err != nil {
		return fmt.Errorf("failed to write fixed header: %w", err)
	}

	if _, err := bw.Write(headerJSON); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	if padding := headerPadding(len(headerJSON)); padding > 0 {
		if _, err := bw.Write(make([]byte, padding)); err != nil {
			return fmt.Errorf("failed to write padding: %w", err)
		}
	}

	var buf [ElementSize]byte
	for _, t := range tensors {
		for _, v := range t.Data {
			binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
			if _, err := bw.Write(buf[:]); err != nil {
				return fmt.Errorf("failed to write tensor %s: %w", t.Name, err)
			}
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to flush: %w", err)
	}

	return nil
}

// Save writes a model to the file at path, replacing any existing file.
func Save(path string, header Header, tensors []Tensor) (err error) {
	//nolint:gosec // G304: File path comes from the caller, which is expected for model saving
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close file: %w", closeErr)
		}
	}()

	return NewWriter(file).WriteModel(header, tensors)
}

// headerPadding returns the zero bytes needed after the JSON header so that
// tensor data starts on a HeaderAlignment boundary.
func headerPadding(headerSize int) int {
	pos := FixedHeaderSize + headerSize
	return (HeaderAlignment - pos%HeaderAlignment) % HeaderAlignment
}
