// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package data_test

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/fann/data"
)

func TestSplitHalves(t *testing.T) {
	inputs := make([][]float64, 10)
	outputs := make([][]float64, 10)
	for i := range inputs {
		inputs[i] = []float64{float64(i)}
		outputs[i] = []float64{float64(-i)}
	}
	set, err := data.New(inputs, outputs)
	require.NoError(t, err)

	first, second, err := set.Split(0.5)
	require.NoError(t, err)
	assert.Equal(t, 5, first.Len())
	assert.Equal(t, 5, second.Len())

	joined, err := data.Merge(first, second)
	require.NoError(t, err)
	assert.True(t, set.Equal(joined))
}

func TestFileRoundTrip(t *testing.T) {
	set, err := data.Read(strings.NewReader("2 2 1\n0 1\n1\n1 1\n0\n"))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "set.data")
	require.NoError(t, set.Save(path))
	loaded, err := data.Load(path)
	require.NoError(t, err)
	assert.True(t, set.Equal(loaded))
}

func TestErrors(t *testing.T) {
	_, err := data.Read(strings.NewReader("2 2 1\n0 1\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, data.ErrMalformedData))

	var perr *data.ParseError
	assert.True(t, errors.As(err, &perr))

	assert.Zero(t, data.Empty(3, 1).Len())
}
