package serialization

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testModel() (Header, []Tensor) {
	header := Header{
		ModelType: ModelTypeMLP,
		Layers: []LayerMeta{
			{Width: 2},
			{Width: 3, Activation: "sigmoid_symmetric", Steepness: 0.5},
			{Width: 1, Activation: "sigmoid", Steepness: 0.5},
		},
		Metadata: map[string]string{"epochs": "42"},
	}
	tensors := []Tensor{
		{Name: "layer.1.weight", Shape: []int{3, 3}, Data: []float64{0.1, -0.2, 0.3, 1e-300, math.Pi, -0, 7, 8, math.MaxFloat64}},
		{Name: "layer.2.weight", Shape: []int{1, 4}, Data: []float64{1.0 / 3, 2, 3, 4}},
	}
	return header, tensors
}

func encode(t *testing.T, header Header, tensors []Tensor) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, NewWriter(&buf).WriteModel(header, tensors))
	return buf.Bytes()
}

func TestRoundTrip(t *testing.T) {
	header, tensors := testModel()
	raw := encode(t, header, tensors)

	r, err := NewReader(bytes.NewReader(raw), ReaderOptions{})
	require.NoError(t, err)

	assert.Equal(t, uint32(FormatVersion), r.Version())
	assert.Equal(t, FlagHasMetadata, r.Flags()&FlagHasMetadata)
	assert.Equal(t, header.Layers, r.Header().Layers)
	assert.Equal(t, ModelTypeMLP, r.Header().ModelType)
	assert.Equal(t, LibraryVersion, r.Header().Library)
	assert.Equal(t, "42", r.Metadata()["epochs"])
	assert.Equal(t, []string{"layer.1.weight", "layer.2.weight"}, r.TensorNames())

	for _, want := range tensors {
		got, err := r.Tensor(want.Name)
		require.NoError(t, err)
		assert.Equal(t, want.Shape, got.Shape)
		require.Len(t, got.Data, len(want.Data))
		for i := range want.Data {
			assert.Equal(t, math.Float64bits(want.Data[i]), math.Float64bits(got.Data[i]), "%s[%d]", want.Name, i)
		}
	}

	_, err = r.Tensor("missing")
	require.ErrorIs(t, err, ErrTensorNotFound)
}

func TestDataIsAligned(t *testing.T) {
	header, tensors := testModel()
	raw := encode(t, header, tensors)

	headerSize := binary.LittleEndian.Uint64(raw[16:24])
	dataSize := binary.LittleEndian.Uint64(raw[24:32])
	dataStart := uint64(FixedHeaderSize) + headerSize + uint64(headerPadding(int(headerSize)))

	assert.Zero(t, dataStart%HeaderAlignment)
	assert.Equal(t, uint64(len(raw)), dataStart+dataSize)
}

func TestSaveOpen(t *testing.T) {
	header, tensors := testModel()
	path := filepath.Join(t.TempDir(), "net.fann")

	require.NoError(t, Save(path, header, tensors))

	r, err := Open(path, ReaderOptions{})
	require.NoError(t, err)
	assert.Len(t, r.Header().Tensors, 2)

	_, err = Open(filepath.Join(t.TempDir(), "missing.fann"), ReaderOptions{})
	require.Error(t, err)
}

func TestReaderRejectsUnknownVersion(t *testing.T) {
	header, tensors := testModel()
	raw := encode(t, header, tensors)
	binary.LittleEndian.PutUint32(raw[4:8], 99)

	_, err := NewReader(bytes.NewReader(raw), ReaderOptions{})
	require.ErrorIs(t, err, ErrIncompatibleVersion)
	assert.False(t, errors.Is(err, ErrCorruptFile))

	// Only magic and version present: still a version error, not truncation.
	_, err = NewReader(bytes.NewReader(raw[:8]), ReaderOptions{})
	require.ErrorIs(t, err, ErrIncompatibleVersion)
}

func TestReaderRejectsCorruptFiles(t *testing.T) {
	header, tensors := testModel()
	good := encode(t, header, tensors)

	tests := []struct {
		name   string
		mutate func([]byte) []byte
		opts   ReaderOptions
	}{
		{"empty", func(b []byte) []byte { return nil }, ReaderOptions{}},
		{"bad magic", func(b []byte) []byte { b[0] = 'X'; return b }, ReaderOptions{}},
		{"truncated fixed header", func(b []byte) []byte { return b[:20] }, ReaderOptions{}},
		{"truncated data", func(b []byte) []byte { return b[:len(b)-3] }, ReaderOptions{}},
		{"flipped weight bit", func(b []byte) []byte { b[len(b)-1] ^= 0x01; return b }, ReaderOptions{}},
		{"flipped header byte", func(b []byte) []byte { b[FixedHeaderSize+2] ^= 0x20; return b }, ReaderOptions{}},
		{"huge header size", func(b []byte) []byte {
			binary.LittleEndian.PutUint64(b[16:24], MaxHeaderSize+1)
			return b
		}, ReaderOptions{}},
		{"misaligned data size", func(b []byte) []byte {
			binary.LittleEndian.PutUint64(b[24:32], 13)
			return b
		}, ReaderOptions{SkipChecksumValidation: true}},
		{"data size too small for tensors", func(b []byte) []byte {
			binary.LittleEndian.PutUint64(b[24:32], 8)
			return b
		}, ReaderOptions{SkipChecksumValidation: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := tt.mutate(append([]byte(nil), good...))
			r, err := NewReader(bytes.NewReader(raw), tt.opts)
			require.ErrorIs(t, err, ErrCorruptFile)
			assert.Nil(t, r)
		})
	}
}

func TestSkipChecksumValidation(t *testing.T) {
	header, tensors := testModel()
	raw := encode(t, header, tensors)
	raw[ChecksumOffset] ^= 0xff

	_, err := NewReader(bytes.NewReader(raw), ReaderOptions{})
	require.ErrorIs(t, err, ErrChecksumMismatch)

	_, err = NewReader(bytes.NewReader(raw), ReaderOptions{SkipChecksumValidation: true})
	require.NoError(t, err)
}

func TestWriterRejectsInvalidTensors(t *testing.T) {
	header, _ := testModel()
	var buf bytes.Buffer

	err := NewWriter(&buf).WriteModel(header, []Tensor{{Name: "w", Shape: []int{2, 2}, Data: []float64{1}}})
	require.Error(t, err)

	err = NewWriter(&buf).WriteModel(header, []Tensor{
		{Name: "w", Shape: []int{1}, Data: []float64{1}},
		{Name: "w", Shape: []int{1}, Data: []float64{2}},
	})
	require.ErrorIs(t, err, ErrCorruptFile)

	err = NewWriter(&buf).WriteModel(header, []Tensor{{Name: "a/b", Shape: []int{1}, Data: []float64{1}}})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "invalid_name", verr.Type)
}

func TestValidateTensorOffsets(t *testing.T) {
	tests := []struct {
		name     string
		tensors  []TensorMeta
		dataSize int64
		wantType string
	}{
		{
			name:     "exact boundary",
			tensors:  []TensorMeta{{Name: "a", Offset: 0, Size: 16}, {Name: "b", Offset: 16, Size: 8}},
			dataSize: 24,
		},
		{
			name:     "overlap",
			tensors:  []TensorMeta{{Name: "a", Offset: 0, Size: 16}, {Name: "b", Offset: 8, Size: 8}},
			dataSize: 24,
			wantType: "offset_overlap",
		},
		{
			name:     "out of bounds",
			tensors:  []TensorMeta{{Name: "a", Offset: 8, Size: 24}},
			dataSize: 24,
			wantType: "out_of_bounds",
		},
		{
			name:     "negative",
			tensors:  []TensorMeta{{Name: "a", Offset: -8, Size: 8}},
			dataSize: 24,
			wantType: "negative_offset",
		},
		{
			name:     "offset overflow",
			tensors:  []TensorMeta{{Name: "a", Offset: math.MaxInt64 - 7, Size: 16}},
			dataSize: 24,
			wantType: "out_of_bounds",
		},
		{
			name:     "misaligned",
			tensors:  []TensorMeta{{Name: "a", Offset: 4, Size: 8}},
			dataSize: 24,
			wantType: "misaligned_tensor",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTensorOffsets(tt.tensors, tt.dataSize)
			if tt.wantType == "" {
				require.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantType, verr.Type)
			assert.ErrorIs(t, err, ErrCorruptFile)
		})
	}
}

func TestValidateTensorMetaOverflow(t *testing.T) {
	tests := []struct {
		name  string
		shape []int
		size  int64
	}{
		{"element count", []int{math.MaxInt / 4, 8}, 8},
		{"byte count", []int{math.MaxInt64 / 4}, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTensorMeta(TensorMeta{Name: "w", DType: DTypeFloat64, Shape: tt.shape, Size: tt.size})
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.ErrorIs(t, err, ErrCorruptFile)
		})
	}
}
