package train

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/fann/internal/loss"
)

func TestDefaultConfigValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, RPROP, cfg.Algorithm)
	assert.Equal(t, loss.ErrorTanh, cfg.ErrorFunc)
	assert.Equal(t, 0.35, cfg.BitFailLimit)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "train.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
algorithm: incremental
max_epochs: 5000
desired_error: 0.0001
learning_rate: 0.5
momentum: 0.9
order: shuffled
seed: 42
error_function: linear
stop_function: bit
workers: 4
rprop:
  delta_max: 10
`), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, Incremental, cfg.Algorithm)
	assert.Equal(t, 5000, cfg.MaxEpochs)
	assert.Equal(t, 0.0001, cfg.DesiredError)
	assert.Equal(t, 0.5, cfg.LearningRate)
	assert.Equal(t, 0.9, cfg.Momentum)
	assert.Equal(t, OrderShuffled, cfg.Order)
	assert.Equal(t, uint64(42), cfg.Seed)
	assert.Equal(t, loss.ErrorLinear, cfg.ErrorFunc)
	assert.Equal(t, StopBit, cfg.StopFunc)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, 10.0, cfg.RPROP.DeltaMax)

	// Untouched fields keep their defaults.
	assert.Equal(t, 1.2, cfg.RPROP.IncreaseFactor)
	assert.Equal(t, 0.35, cfg.BitFailLimit)
}

func TestParseConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown algorithm", "algorithm: genetic\n"},
		{"unknown order", "order: random\n"},
		{"unknown error function", "error_function: cubic\n"},
		{"bad type", "max_epochs: many\n"},
		{"invalid value", "momentum: 1.5\n"},
		{"negative epochs", "max_epochs: -3\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.yaml))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidConfig), "got %v", err)
		})
	}

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestEnumText(t *testing.T) {
	for _, a := range []Algorithm{Incremental, Batch, RPROP, Quickprop} {
		text, err := a.MarshalText()
		require.NoError(t, err)
		var back Algorithm
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, a, back)
	}
	assert.Equal(t, "Algorithm(7)", Algorithm(7).String())
	assert.Equal(t, "shuffled", OrderShuffled.String())
	assert.Equal(t, "bit", StopBit.String())
	assert.Equal(t, "callback", StopCallback.String())
}
