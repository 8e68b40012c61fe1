// Package serialization implements the binary file format used to persist
// trained networks.
//
//	Format Structure (version 1):
//	  0x00 [4 bytes: Magic "FANN"]
//	  0x04 [4 bytes: Version (uint32 LE)]
//	  0x08 [4 bytes: Flags (uint32 LE)]
//	  0x0C [4 bytes: Reserved, zero]
//	  0x10 [8 bytes: Header Size (uint64 LE)]
//	  0x18 [8 bytes: Data Size (uint64 LE)]
//	  0x20 [32 bytes: SHA-256 of header JSON followed by tensor data]
//	  0x40 [Header: JSON metadata]
//	       [Padding: zero bytes up to a 64-byte boundary]
//	       [Tensor data: float64 LE, in header order]
//
// The header records the layer layout (width, activation name, steepness)
// and one TensorMeta per tensor. Readers reject unknown versions with
// ErrIncompatibleVersion before looking at the rest of the file; every
// other structural problem is reported as ErrCorruptFile.
//
// Example usage:
//
//	w := serialization.NewWriter(f)
//	err := w.WriteModel(header, []serialization.Tensor{{Name: "layer.1.weight", Shape: shape, Data: data}})
//
//	r, err := serialization.NewReader(f, serialization.ReaderOptions{})
//	weights, err := r.Tensor("layer.1.weight")
package serialization
