package train

import (
	"bytes"
	"errors"
	"log/slog"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/fann/internal/activation"
	"github.com/born-ml/fann/internal/dataset"
	"github.com/born-ml/fann/internal/loss"
	"github.com/born-ml/fann/internal/network"
)

func xorData(t *testing.T) *dataset.TrainingData {
	t.Helper()
	d, err := dataset.New(
		[][]float64{{0, 0}, {0, 1}, {1, 0}, {1, 1}},
		[][]float64{{0}, {1}, {1}, {0}},
	)
	require.NoError(t, err)
	return d
}

func orData(t *testing.T) *dataset.TrainingData {
	t.Helper()
	d, err := dataset.New(
		[][]float64{{0, 0}, {0, 1}, {1, 0}, {1, 1}},
		[][]float64{{0}, {1}, {1}, {1}},
	)
	require.NoError(t, err)
	return d
}

func newNet(t *testing.T, hidden int, seed uint64) *network.Network {
	t.Helper()
	net, err := network.NewStandard([]int{2, hidden, 1},
		activation.SigmoidSymmetric, activation.Sigmoid, network.InitConfig{Seed: seed})
	require.NoError(t, err)
	return net
}

func mean(xs []float64) float64 {
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func TestTrainXOR(t *testing.T) {
	data := xorData(t)
	cfg := DefaultConfig()
	cfg.MaxEpochs = 2000
	cfg.DesiredError = 0.01

	// A few seeds guard against the rare run that stalls in a local minimum.
	var report Report
	var net *network.Network
	for seed := uint64(1); seed <= 5; seed++ {
		net = newNet(t, 4, seed)
		var err error
		report, err = Train(net, data, cfg)
		require.NoError(t, err)
		if report.StopReason == StopDesiredError {
			break
		}
	}

	require.Equal(t, StopDesiredError, report.StopReason)
	assert.LessOrEqual(t, report.MSE, 0.01)
	assert.LessOrEqual(t, report.Epochs, cfg.MaxEpochs)
	require.Len(t, report.History, report.Epochs)
	assert.Equal(t, report.MSE, report.History[len(report.History)-1])

	q := max(1, len(report.History)/4)
	assert.Greater(t, mean(report.History[:q]), mean(report.History[len(report.History)-q:]),
		"MSE falls on average")

	mse, _, err := Test(net, data)
	require.NoError(t, err)
	assert.Less(t, mse, 0.05)
}

func TestTrainAlgorithms(t *testing.T) {
	tests := []struct {
		name string
		cfg  func(*Config)
	}{
		{"incremental", func(c *Config) { c.Algorithm = Incremental }},
		{"incremental momentum", func(c *Config) { c.Algorithm = Incremental; c.Momentum = 0.5 }},
		{"batch", func(c *Config) { c.Algorithm = Batch }},
		{"batch momentum", func(c *Config) { c.Algorithm = Batch; c.Momentum = 0.5 }},
		{"rprop", func(c *Config) { c.Algorithm = RPROP }},
		{"quickprop", func(c *Config) { c.Algorithm = Quickprop }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.MaxEpochs = 2000
			cfg.DesiredError = 0.01
			cfg.ErrorFunc = loss.ErrorLinear
			tt.cfg(&cfg)

			net := newNet(t, 4, 3)
			report, err := Train(net, orData(t), cfg)
			require.NoError(t, err)

			assert.Equal(t, StopDesiredError, report.StopReason)
			assert.LessOrEqual(t, report.MSE, 0.01)
			assert.Greater(t, report.History[0], report.MSE)
		})
	}
}

func TestTrainEmptyDataset(t *testing.T) {
	net := newNet(t, 3, 1)
	before := net.Clone()

	report, err := Train(net, dataset.Empty(2, 1), DefaultConfig())
	require.Error(t, err)
	assert.True(t, errors.Is(err, dataset.ErrEmptyDataset))
	assert.Zero(t, report.Epochs)
	assert.True(t, before.Equal(net), "weights must not change")

	_, err = Train(net, nil, DefaultConfig())
	assert.True(t, errors.Is(err, dataset.ErrEmptyDataset))

	_, _, err = Test(net, dataset.Empty(2, 1))
	assert.True(t, errors.Is(err, dataset.ErrEmptyDataset))
}

func TestTrainDimensionMismatch(t *testing.T) {
	net := newNet(t, 3, 1)
	before := net.Clone()

	wide, err := dataset.New([][]float64{{1, 2, 3}}, [][]float64{{1}})
	require.NoError(t, err)
	_, err = Train(net, wide, DefaultConfig())
	assert.True(t, errors.Is(err, network.ErrDimensionMismatch))

	twoOut, err := dataset.New([][]float64{{1, 2}}, [][]float64{{1, 0}})
	require.NoError(t, err)
	_, err = Train(net, twoOut, DefaultConfig())
	assert.True(t, errors.Is(err, network.ErrDimensionMismatch))

	_, _, err = Test(net, twoOut)
	assert.True(t, errors.Is(err, network.ErrDimensionMismatch))

	assert.True(t, before.Equal(net))
}

func TestTrainUntrainable(t *testing.T) {
	net, err := network.NewStandard([]int{2, 2, 1}, activation.Sigmoid, activation.Threshold, network.InitConfig{Seed: 1})
	require.NoError(t, err)
	before := net.Clone()

	_, err = Train(net, xorData(t), DefaultConfig())
	assert.True(t, errors.Is(err, ErrUntrainable))
	assert.True(t, before.Equal(net))
}

func TestTrainInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  func(*Config)
	}{
		{"zero epochs", func(c *Config) { c.MaxEpochs = 0 }},
		{"negative desired error", func(c *Config) { c.DesiredError = -1 }},
		{"nan desired error", func(c *Config) { c.DesiredError = math.NaN() }},
		{"zero learning rate", func(c *Config) { c.LearningRate = 0 }},
		{"momentum one", func(c *Config) { c.Momentum = 1 }},
		{"unknown algorithm", func(c *Config) { c.Algorithm = Algorithm(9) }},
		{"unknown order", func(c *Config) { c.Order = Order(9) }},
		{"unknown stop", func(c *Config) { c.StopFunc = StopFunc(9) }},
		{"unknown error function", func(c *Config) { c.ErrorFunc = loss.ErrorFunc(9) }},
		{"negative workers", func(c *Config) { c.Workers = -1 }},
		{"zero bit fail limit", func(c *Config) { c.BitFailLimit = 0 }},
		{"rprop range", func(c *Config) { c.RPROP.DeltaMin = 5; c.RPROP.DeltaMax = 1 }},
		{"positive decay", func(c *Config) { c.Quickprop.Decay = 0.1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.cfg(&cfg)

			net := newNet(t, 2, 1)
			before := net.Clone()
			_, err := Train(net, xorData(t), cfg)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidConfig), "got %v", err)
			assert.True(t, before.Equal(net))
		})
	}
}

func TestTrainMaxEpochs(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxEpochs = 3
	cfg.DesiredError = 0

	report, err := Train(newNet(t, 2, 1), xorData(t), cfg)
	require.NoError(t, err)
	assert.Equal(t, StopMaxEpochs, report.StopReason)
	assert.Equal(t, 3, report.Epochs)
	assert.Len(t, report.History, 3)
	assert.Equal(t, "max_epochs", report.StopReason.String())
}

func TestTrainCallback(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DesiredError = 0
	var seen []int
	cfg.Callback = func(epoch int, mse float64) bool {
		seen = append(seen, epoch)
		assert.False(t, math.IsNaN(mse))
		return epoch < 2
	}

	report, err := Train(newNet(t, 2, 1), xorData(t), cfg)
	require.NoError(t, err)
	assert.Equal(t, StopCallback, report.StopReason)
	assert.Equal(t, 2, report.Epochs)
	assert.Equal(t, []int{1, 2}, seen)
}

func TestTrainStopBit(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StopFunc = StopBit
	cfg.DesiredError = 0

	report, err := Train(newNet(t, 4, 2), orData(t), cfg)
	require.NoError(t, err)
	assert.Equal(t, StopDesiredError, report.StopReason)
	assert.Zero(t, report.BitFail)
}

func TestTrainShuffledReproducible(t *testing.T) {
	data := xorData(t)
	original := data.Clone()

	cfg := DefaultConfig()
	cfg.Algorithm = Incremental
	cfg.Order = OrderShuffled
	cfg.MaxEpochs = 50
	cfg.DesiredError = 0

	train := func(seed uint64) *network.Network {
		cfg.Seed = seed
		net := newNet(t, 3, 8)
		_, err := Train(net, data, cfg)
		require.NoError(t, err)
		return net
	}

	a, b, c := train(1), train(1), train(2)
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.True(t, original.Equal(data), "training must not reorder the dataset")
}

func TestTrainParallelBatch(t *testing.T) {
	inputs := make([][]float64, 40)
	outputs := make([][]float64, 40)
	for i := range inputs {
		x := float64(i)/20 - 1
		inputs[i] = []float64{x, x * x}
		outputs[i] = []float64{0.5 + 0.4*math.Sin(2*x)}
	}
	data, err := dataset.New(inputs, outputs)
	require.NoError(t, err)

	cfg := DefaultConfig()
	cfg.Algorithm = Batch
	cfg.MaxEpochs = 30
	cfg.DesiredError = 0

	run := func(workers int) (*network.Network, Report) {
		cfg.Workers = workers
		net := newNet(t, 5, 4)
		report, err := Train(net, data, cfg)
		require.NoError(t, err)
		return net, report
	}

	seq, seqReport := run(1)
	par, parReport := run(4)
	again, _ := run(4)

	assert.True(t, par.Equal(again), "same worker count gives identical weights")
	for i, w := range seq.Weights() {
		assert.InDelta(t, w, par.Weights()[i], 1e-9)
	}
	for i := range seqReport.History {
		assert.InDelta(t, seqReport.History[i], parReport.History[i], 1e-9)
	}
}

func TestTrainLogger(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.MaxEpochs = 4
	cfg.DesiredError = 0
	cfg.ReportEvery = 2
	cfg.Logger = slog.New(slog.NewJSONHandler(&buf, nil))

	_, err := Train(newNet(t, 2, 1), xorData(t), cfg)
	require.NoError(t, err)

	out := buf.String()
	assert.Equal(t, 2, strings.Count(out, `"msg":"epoch"`))
	assert.Equal(t, 1, strings.Count(out, `"msg":"training finished"`))
	assert.Contains(t, out, `"reason":"max_epochs"`)
	assert.NotContains(t, out, "training started", "debug records are below the default level")
}

// TestBackpropSlopes compares accumulated slopes with a finite-difference
// gradient of the example error.
func TestBackpropSlopes(t *testing.T) {
	for _, out := range []activation.Func{activation.Linear, activation.SigmoidSymmetric} {
		t.Run(out.String(), func(t *testing.T) {
			net, err := network.New([]network.LayerSpec{
				{Width: 3},
				{Width: 4, Activation: activation.SigmoidSymmetric, Steepness: 0.7},
				{Width: 3, Activation: activation.Elliot, Steepness: 1.1},
				{Width: 2, Activation: out},
			}, network.InitConfig{Seed: 5, WeightMin: -0.8, WeightMax: 0.8})
			require.NoError(t, err)

			input := []float64{0.3, -0.6, 0.9}
			target := []float64{0.2, -0.1}

			cfg := DefaultConfig()
			cfg.ErrorFunc = loss.ErrorLinear
			w := newWorker(net, cfg)
			w.backprop(net, input, target)

			// The accumulated slope is the negative gradient of sum(d^2)/2,
			// where d is the (halved, for symmetric outputs) difference.
			exampleError := func() float64 {
				o, err := net.Run(input)
				require.NoError(t, err)
				e := 0.0
				for i := range o {
					d := target[i] - o[i]
					if out.Symmetric() {
						d /= 2
						e += d * d
					} else {
						e += d * d / 2
					}
				}
				return e
			}

			weights := net.WeightArena()
			const h = 1e-6
			for i := range weights {
				orig := weights[i]
				weights[i] = orig + h
				up := exampleError()
				weights[i] = orig - h
				down := exampleError()
				weights[i] = orig

				grad := (up - down) / (2 * h)
				assert.InDelta(t, -grad, w.slopes[i], 1e-7, "weight %d", i)
			}
		})
	}
}

func TestTestMatchesRun(t *testing.T) {
	net := newNet(t, 3, 6)
	data := xorData(t)

	mse, bitFail, err := Test(net, data)
	require.NoError(t, err)

	acc := loss.NewAccumulator(0)
	for i := 0; i < data.Len(); i++ {
		in, target := data.Example(i)
		out, err := net.Run(in)
		require.NoError(t, err)
		acc.Add(target[0]-out[0], false)
	}
	assert.InDelta(t, acc.MSE(), mse, 1e-15)
	assert.Equal(t, acc.BitFail(), bitFail)

	_, strict, err := TestWithLimit(net, data, 0.01)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, strict, bitFail)
}
