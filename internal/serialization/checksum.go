package serialization

import (
	"crypto/sha256"
	"encoding/binary"
	"hash"
	"math"
)

// checksum accumulates the SHA-256 of a header followed by tensor data.
type checksum struct {
	h   hash.Hash
	buf [ElementSize]byte
}

func newChecksum(headerJSON []byte) *checksum {
	c := &checksum{h: sha256.New()}
	c.h.Write(headerJSON)
	return c
}

func (c *checksum) addFloats(data []float64) {
	for _, v := range data {
		binary.LittleEndian.PutUint64(c.buf[:], math.Float64bits(v))
		c.h.Write(c.buf[:])
	}
}

func (c *checksum) sum() [ChecksumSize]byte {
	var out [ChecksumSize]byte
	copy(out[:], c.h.Sum(nil))
	return out
}

// ValidateChecksum compares computed checksum against stored checksum.
// Returns ErrChecksumMismatch if they don't match.
func ValidateChecksum(computed, stored [ChecksumSize]byte) error {
	if computed != stored {
		return ErrChecksumMismatch
	}
	return nil
}
