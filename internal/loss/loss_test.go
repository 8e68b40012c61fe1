package loss

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorFuncApply(t *testing.T) {
	assert.Equal(t, 0.3, ErrorLinear.Apply(0.3))
	assert.Equal(t, -2.0, ErrorLinear.Apply(-2))

	assert.Equal(t, 0.0, ErrorTanh.Apply(0))
	assert.InDelta(t, math.Log(3), ErrorTanh.Apply(0.5), 1e-15)
	assert.InDelta(t, -math.Log(3), ErrorTanh.Apply(-0.5), 1e-15)
	assert.Equal(t, 17.0, ErrorTanh.Apply(1))
	assert.Equal(t, -17.0, ErrorTanh.Apply(-5))

	// Tanh error grows faster than linear away from zero.
	assert.Greater(t, ErrorTanh.Apply(0.9), ErrorLinear.Apply(0.9))
}

func TestErrorFuncText(t *testing.T) {
	for _, e := range []ErrorFunc{ErrorLinear, ErrorTanh} {
		text, err := e.MarshalText()
		require.NoError(t, err)

		var back ErrorFunc
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, e, back)
	}

	var e ErrorFunc
	assert.Error(t, e.UnmarshalText([]byte("cubic")))
	_, err := ErrorFunc(9).MarshalText()
	assert.Error(t, err)
	assert.Equal(t, "ErrorFunc(9)", ErrorFunc(9).String())

	data, err := json.Marshal(map[string]ErrorFunc{"f": ErrorTanh})
	require.NoError(t, err)
	assert.JSONEq(t, `{"f":"tanh"}`, string(data))
}

func TestAccumulator(t *testing.T) {
	acc := NewAccumulator(0.35)
	assert.Equal(t, 0.0, acc.MSE())

	assert.Equal(t, 0.5, acc.Add(0.5, false))
	assert.Equal(t, -0.1, acc.Add(-0.1, false))
	assert.Equal(t, 0.4, acc.Add(0.8, true))
	assert.Equal(t, 0.1, acc.Add(0.2, true))

	assert.Equal(t, 4, acc.Count())
	assert.Equal(t, 2, acc.BitFail())
	assert.InDelta(t, (0.25+0.01+0.16+0.01)/4, acc.MSE(), 1e-15)

	acc.Reset()
	assert.Zero(t, acc.Count())
	assert.Zero(t, acc.BitFail())
	assert.Equal(t, 0.0, acc.MSE())
}

func TestAccumulatorMerge(t *testing.T) {
	a := NewAccumulator(0)
	b := NewAccumulator(0)
	whole := NewAccumulator(0)

	diffs := []float64{0.9, -0.2, 0.05, -0.6, 0.3}
	for i, d := range diffs {
		whole.Add(d, false)
		if i < 2 {
			a.Add(d, false)
		} else {
			b.Add(d, false)
		}
	}

	a.Merge(b)
	assert.Equal(t, whole.Count(), a.Count())
	assert.Equal(t, whole.BitFail(), a.BitFail())
	assert.InDelta(t, whole.MSE(), a.MSE(), 1e-15)
	assert.Equal(t, 2, a.BitFail())
}
