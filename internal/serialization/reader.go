package serialization

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
)

// Reader holds one fully decoded and validated network file.
type Reader struct {
	header   Header
	flags    uint32
	version  uint32
	checksum [ChecksumSize]byte
	fixed    [FixedHeaderSize]byte
	data     []float64
}

// ReaderOptions configures the behavior of Reader.
type ReaderOptions struct {
	SkipChecksumValidation bool // Skip checksum validation (faster but less safe)
}

// Open reads and validates the network file at path.
func Open(path string, opts ReaderOptions) (*Reader, error) {
	//nolint:gosec // G304: File path comes from the caller, which is expected for model loading
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return NewReader(file, opts)
}

// NewReader decodes a network file from r.
//
// The whole file is consumed and validated before NewReader returns, so a
// non-nil Reader never exposes partial state.
func NewReader(r io.Reader, opts ReaderOptions) (*Reader, error) {
	br := bufio.NewReader(r)
	reader := &Reader{}

	if err := reader.parseFixedHeader(br); err != nil {
		return nil, err
	}

	headerSize := binary.LittleEndian.Uint64(reader.fixed[16:24])
	dataSize := binary.LittleEndian.Uint64(reader.fixed[24:32])

	if headerSize > MaxHeaderSize {
		return nil, ErrHeaderTooLarge
	}
	if dataSize%ElementSize != 0 {
		return nil, &ValidationError{
			Type:    "misaligned_data",
			Details: fmt.Sprintf("data size %d is not a multiple of %d", dataSize, ElementSize),
		}
	}

	headerJSON := make([]byte, headerSize)
	if _, err := io.ReadFull(br, headerJSON); err != nil {
		return nil, readError("header", err)
	}
	if err := json.Unmarshal(headerJSON, &reader.header); err != nil {
		return nil, fmt.Errorf("%w: failed to parse header JSON: %v", ErrCorruptFile, err)
	}
	if reader.header.FormatVersion != int(reader.version) {
		return nil, &ValidationError{
			Type:    "version_mismatch",
			Details: fmt.Sprintf("fixed header says %d, JSON header says %d", reader.version, reader.header.FormatVersion),
		}
	}

	//nolint:gosec // G115: headerSize is bounded by MaxHeaderSize
	if _, err := io.CopyN(io.Discard, br, int64(headerPadding(int(headerSize)))); err != nil {
		return nil, readError("padding", err)
	}

	//nolint:gosec // G115: sizes are validated against the header before use
	if err := ValidateHeader(&reader.header, int64(dataSize)); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	data, err := readFloats(br, dataSize/ElementSize)
	if err != nil {
		return nil, err
	}
	reader.data = data

	copy(reader.checksum[:], reader.fixed[ChecksumOffset:ChecksumOffset+ChecksumSize])
	if !opts.SkipChecksumValidation {
		sum := newChecksum(headerJSON)
		sum.addFloats(reader.data)
		if err := ValidateChecksum(sum.sum(), reader.checksum); err != nil {
			return nil, err
		}
	}

	return reader, nil
}

// Header returns the decoded JSON header.
func (r *Reader) Header() Header {
	return r.header
}

// Version returns the format version of the file.
func (r *Reader) Version() uint32 {
	return r.version
}

// Flags returns the fixed-header flags.
func (r *Reader) Flags() uint32 {
	return r.flags
}

// Metadata returns the custom metadata from the header.
func (r *Reader) Metadata() map[string]string {
	return r.header.Metadata
}

// NumValues returns the number of float64 values in the data section.
func (r *Reader) NumValues() int {
	return len(r.data)
}

// TensorNames returns the tensor names in file order.
func (r *Reader) TensorNames() []string {
	names := make([]string, len(r.header.Tensors))
	for i, t := range r.header.Tensors {
		names[i] = t.Name
	}
	return names
}

// TensorInfo returns the metadata for the named tensor.
func (r *Reader) TensorInfo(name string) (*TensorMeta, error) {
	for i := range r.header.Tensors {
		if r.header.Tensors[i].Name == name {
			meta := r.header.Tensors[i]
			return &meta, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrTensorNotFound, name)
}

// Tensor returns a copy of the named tensor.
func (r *Reader) Tensor(name string) (Tensor, error) {
	meta, err := r.TensorInfo(name)
	if err != nil {
		return Tensor{}, err
	}

	start := meta.Offset / ElementSize
	n := meta.Size / ElementSize
	data := make([]float64, n)
	copy(data, r.data[start:start+n])

	return Tensor{
		Name:  meta.Name,
		Shape: append([]int(nil), meta.Shape...),
		Data:  data,
	}, nil
}

func (r *Reader) parseFixedHeader(br *bufio.Reader) error {
	// Magic and version come first so an unknown version is reported even
	// when the rest of the fixed header has a different layout.
	var lead [8]byte
	if _, err := io.ReadFull(br, lead[:]); err != nil {
		return readError("magic bytes", err)
	}
	if string(lead[0:4]) != MagicBytes {
		return ErrInvalidMagic
	}

	r.version = binary.LittleEndian.Uint32(lead[4:8])
	if r.version != FormatVersion {
		return fmt.Errorf("%w: got %d, expected %d", ErrIncompatibleVersion, r.version, FormatVersion)
	}

	copy(r.fixed[:8], lead[:])
	if _, err := io.ReadFull(br, r.fixed[8:]); err != nil {
		return readError("fixed header", err)
	}
	r.flags = binary.LittleEndian.Uint32(r.fixed[8:12])

	return nil
}

func readFloats(br *bufio.Reader, n uint64) ([]float64, error) {
	// Grow as data arrives instead of trusting the declared size up front.
	data := make([]float64, 0, min(n, 1<<16))
	var buf [ElementSize]byte
	for i := uint64(0); i < n; i++ {
		if _, err := io.ReadFull(br, buf[:]); err != nil {
			return nil, readError("tensor data", err)
		}
		data = append(data, math.Float64frombits(binary.LittleEndian.Uint64(buf[:])))
	}
	return data, nil
}

func readError(what string, err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: reading %s", ErrTruncated, what)
	}
	return fmt.Errorf("failed to read %s: %w", what, err)
}
