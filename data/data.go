// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package data provides training sets: ordered input/output example pairs
// with fixed widths.
//
// # File Format
//
// Training files are plain text. The first line holds the number of
// examples, the input width and the output width. Each example follows as
// one line of inputs and one line of outputs:
//
//	4 2 1
//	0 0
//	0
//	0 1
//	1
//	1 0
//	1
//	1 1
//	0
//
// # Basic Usage
//
//	set, err := data.Load("xor.data")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	set.Shuffle(42)
//	trainSet, testSet, err := set.Split(0.8)
package data

import (
	"io"

	"github.com/born-ml/fann/internal/dataset"
)

// TrainingData is an ordered set of examples.
type TrainingData = dataset.TrainingData

// ColumnStats holds per-input-column mean and standard deviation.
type ColumnStats = dataset.ColumnStats

// ParseError reports where a training file is malformed.
type ParseError = dataset.ParseError

// Errors returned by this package.
var (
	ErrEmptyDataset     = dataset.ErrEmptyDataset
	ErrMalformedData    = dataset.ErrMalformedData
	ErrIncompatibleData = dataset.ErrIncompatibleData
)

// New creates a training set from matching rows of inputs and outputs.
// The rows are copied.
//
// Example:
//
//	set, err := data.New(
//	    [][]float64{{0, 0}, {0, 1}, {1, 0}, {1, 1}},
//	    [][]float64{{0}, {1}, {1}, {0}},
//	)
func New(inputs, outputs [][]float64) (*TrainingData, error) {
	return dataset.New(inputs, outputs)
}

// Empty creates a training set without examples.
func Empty(numInput, numOutput int) *TrainingData {
	return dataset.Empty(numInput, numOutput)
}

// Load reads a training file.
func Load(path string) (*TrainingData, error) {
	return dataset.Load(path)
}

// Read reads a training set in the text format.
func Read(r io.Reader) (*TrainingData, error) {
	return dataset.Read(r)
}

// Merge returns a new set holding the examples of a followed by those of b.
func Merge(a, b *TrainingData) (*TrainingData, error) {
	return dataset.Merge(a, b)
}
