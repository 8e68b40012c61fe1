// Package train fits network weights to a training set with
// backpropagation.
//
// Train runs whole epochs until the epoch budget is spent, the error
// reaches the desired level or a callback asks to stop. Epoch-wise
// algorithms (Batch, RPROP, Quickprop) can spread the slope accumulation
// of an epoch over several goroutines; each goroutine owns its slope buffer
// and the buffers are reduced in a fixed order, so a run is reproducible
// for a given worker count.
package train

import (
	"fmt"
	"log/slog"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/fann/internal/dataset"
	"github.com/born-ml/fann/internal/loss"
	"github.com/born-ml/fann/internal/network"
	"github.com/born-ml/fann/internal/optim"
	"github.com/born-ml/fann/internal/parallel"
)

// StopReason records why training ended.
type StopReason uint8

// Stop reasons.
const (
	StopMaxEpochs StopReason = iota
	StopDesiredError
	StopCallback
)

var stopReasonNames = [...]string{
	StopMaxEpochs:    "max_epochs",
	StopDesiredError: "desired_error",
	StopCallback:     "callback",
}

func (r StopReason) String() string { return enumString(stopReasonNames[:], uint8(r), "StopReason") }

// Report summarizes a training run.
type Report struct {
	Epochs     int        // Epochs run
	MSE        float64    // MSE of the last epoch
	BitFail    int        // Bit-fail count of the last epoch
	StopReason StopReason // Why training ended
	History    []float64  // MSE of every epoch, first epoch first
}

// Train adjusts the weights of net to fit data.
//
// Parameters:
//   - net: the network to train, modified in place
//   - data: training examples; not modified, shuffling permutes an index
//   - cfg: training settings, see DefaultConfig
//
// Every check runs before the first weight changes, so on error net is
// untouched. Returns dataset.ErrEmptyDataset for a dataset without examples,
// network.ErrDimensionMismatch when the dataset widths differ from the
// network, ErrUntrainable when a layer uses a threshold activation, and
// ErrInvalidConfig for bad settings.
//
// Example:
//
//	cfg := train.DefaultConfig()
//	cfg.MaxEpochs = 500
//	cfg.DesiredError = 0.01
//	report, err := train.Train(net, data, cfg)
func Train(net *network.Network, data *dataset.TrainingData, cfg Config) (Report, error) {
	if err := cfg.Validate(); err != nil {
		return Report{}, err
	}
	if err := checkCompatible(net, data); err != nil {
		return Report{}, err
	}
	for l := 1; l < net.NumLayers(); l++ {
		if f := net.Layer(l).Activation; !f.Trainable() {
			return Report{}, fmt.Errorf("%w: layer %d uses %s", ErrUntrainable, l, f)
		}
	}

	t := newTrainer(net, data, cfg)
	return t.run(), nil
}

// checkCompatible verifies that data is non-empty and matches net.
func checkCompatible(net *network.Network, data *dataset.TrainingData) error {
	if data == nil || data.Len() == 0 {
		return dataset.ErrEmptyDataset
	}
	if data.NumInput() != net.NumInput() || data.NumOutput() != net.NumOutput() {
		return fmt.Errorf("%w: dataset is %d->%d, network is %d->%d",
			network.ErrDimensionMismatch, data.NumInput(), data.NumOutput(), net.NumInput(), net.NumOutput())
	}
	return nil
}

type trainer struct {
	net     *network.Network
	data    *dataset.TrainingData
	cfg     Config
	opt     optim.Optimizer
	par     parallel.Config
	workers []*worker
	slopes  []float64 // reduced slopes for epoch-wise algorithms
	acc     *loss.Accumulator
	order   []int
	rng     *rand.Rand
	log     *slog.Logger
}

func newTrainer(net *network.Network, data *dataset.TrainingData, cfg Config) *trainer {
	n := net.TotalConnections()

	var opt optim.Optimizer
	switch cfg.Algorithm {
	case Incremental, Batch:
		opt = optim.NewSGD(n, optim.SGDConfig{LR: cfg.LearningRate, Momentum: cfg.Momentum})
	case RPROP:
		opt = optim.NewRPROP(n, cfg.RPROP)
	case Quickprop:
		qc := cfg.Quickprop
		if qc.LR == 0 {
			qc.LR = cfg.LearningRate
		}
		opt = optim.NewQuickprop(n, qc)
	}

	par := parallel.Config{Enabled: cfg.Workers > 1, NumWorkers: cfg.Workers, MinChunkSize: 1}
	if cfg.Algorithm == Incremental {
		par.Enabled = false
	}
	chunks := max(len(parallel.Chunks(data.Len(), par)), 1)

	t := &trainer{
		net:     net,
		data:    data,
		cfg:     cfg,
		opt:     opt,
		par:     par,
		workers: make([]*worker, chunks),
		slopes:  make([]float64, n),
		acc:     loss.NewAccumulator(cfg.BitFailLimit),
		order:   make([]int, data.Len()),
		log:     cfg.Logger,
	}
	for i := range t.workers {
		t.workers[i] = newWorker(net, cfg)
	}
	for i := range t.order {
		t.order[i] = i
	}
	if cfg.Order == OrderShuffled {
		t.rng = rand.New(rand.NewSource(cfg.Seed))
	}
	if t.log == nil {
		t.log = slog.New(slog.DiscardHandler)
	}
	return t
}

func (t *trainer) run() Report {
	report := Report{
		StopReason: StopMaxEpochs,
		History:    make([]float64, 0, t.cfg.MaxEpochs),
	}
	t.log.Debug("training started",
		"algorithm", t.cfg.Algorithm.String(),
		"max_epochs", t.cfg.MaxEpochs,
		"desired_error", t.cfg.DesiredError,
		"examples", t.data.Len(),
		"workers", len(t.workers))

	for epoch := 1; epoch <= t.cfg.MaxEpochs; epoch++ {
		if t.rng != nil {
			t.rng.Shuffle(len(t.order), func(i, j int) {
				t.order[i], t.order[j] = t.order[j], t.order[i]
			})
		}

		if t.cfg.Algorithm == Incremental {
			t.incrementalEpoch()
		} else {
			t.batchEpoch()
		}

		report.Epochs = epoch
		report.MSE = t.acc.MSE()
		report.BitFail = t.acc.BitFail()
		report.History = append(report.History, report.MSE)

		if t.cfg.ReportEvery > 0 && epoch%t.cfg.ReportEvery == 0 {
			t.log.Info("epoch", "epoch", epoch, "mse", report.MSE, "bit_fail", report.BitFail)
		}

		if t.reachedTarget(report) {
			report.StopReason = StopDesiredError
			break
		}
		if t.cfg.Callback != nil && !t.cfg.Callback(epoch, report.MSE) {
			report.StopReason = StopCallback
			break
		}
	}

	t.log.Info("training finished",
		"epochs", report.Epochs,
		"mse", report.MSE,
		"bit_fail", report.BitFail,
		"reason", report.StopReason.String())
	return report
}

func (t *trainer) reachedTarget(r Report) bool {
	if t.cfg.StopFunc == StopBit {
		return float64(r.BitFail) <= t.cfg.DesiredError
	}
	return r.MSE <= t.cfg.DesiredError
}

// incrementalEpoch updates the weights after each example.
func (t *trainer) incrementalEpoch() {
	w := t.workers[0]
	w.acc.Reset()
	weights := t.net.WeightArena()
	for _, idx := range t.order {
		input, target := t.data.Example(idx)
		w.backprop(t.net, input, target)
		t.opt.Step(weights, w.slopes, 1)
	}
	t.acc.Reset()
	t.acc.Merge(w.acc)
}

// batchEpoch accumulates slopes over the whole epoch, then updates once.
func (t *trainer) batchEpoch() {
	parallel.ForChunks(len(t.order), t.par, func(chunk int, r parallel.Range) {
		w := t.workers[chunk]
		w.acc.Reset()
		for _, idx := range t.order[r.Start:r.End] {
			input, target := t.data.Example(idx)
			w.backprop(t.net, input, target)
		}
	})

	t.acc.Reset()
	for _, w := range t.workers {
		floats.Add(t.slopes, w.slopes)
		clear(w.slopes)
		t.acc.Merge(w.acc)
	}
	t.opt.Step(t.net.WeightArena(), t.slopes, len(t.order))
}

// worker owns the scratch space of one goroutine.
type worker struct {
	cfg    Config
	trace  *network.Trace
	acc    *loss.Accumulator
	slopes []float64

	deltas    [][]float64
	deltaVecs []*mat.VecDense
	inVecs    []*mat.VecDense // inVecs[l] views the values feeding layer l
	slopeMats []*mat.Dense    // slopeMats[l] views the slopes of layer l
	back      []*mat.VecDense // back[l] receives W[l]^T * delta[l]
}

func newWorker(net *network.Network, cfg Config) *worker {
	layers := net.NumLayers()
	w := &worker{
		cfg:       cfg,
		trace:     net.NewTrace(),
		acc:       loss.NewAccumulator(cfg.BitFailLimit),
		slopes:    make([]float64, net.TotalConnections()),
		deltas:    make([][]float64, layers),
		deltaVecs: make([]*mat.VecDense, layers),
		inVecs:    make([]*mat.VecDense, layers),
		slopeMats: make([]*mat.Dense, layers),
		back:      make([]*mat.VecDense, layers),
	}
	for l := 1; l < layers; l++ {
		info := net.Layer(l)
		w.deltas[l] = make([]float64, info.Width)
		w.deltaVecs[l] = mat.NewVecDense(info.Width, w.deltas[l])
		prev := w.trace.Values[l-1]
		w.inVecs[l] = mat.NewVecDense(len(prev), prev)
		w.slopeMats[l] = mat.NewDense(info.Width, info.FanIn, w.slopes[info.Offset:info.Offset+info.Width*info.FanIn])
		w.back[l] = mat.NewVecDense(info.FanIn, nil)
	}
	return w
}

// backprop runs one example forward, records its error and adds its slopes
// to w.slopes.
func (w *worker) backprop(net *network.Network, input, target []float64) {
	tr := w.trace
	out := net.Forward(input, tr)
	last := net.NumLayers() - 1

	info := net.Layer(last)
	symmetric := info.Activation.Symmetric()
	for i, o := range out {
		diff := w.acc.Add(target[i]-o, symmetric)
		diff = w.cfg.ErrorFunc.Apply(diff)
		w.deltas[last][i] = diff * info.Activation.Derivative(info.Steepness, o, tr.Sums[last][i])
	}

	for l := last; l > 1; l-- {
		w.back[l].MulVec(net.LayerWeights(l).T(), w.deltaVecs[l])
		prev := net.Layer(l - 1)
		for j := range w.deltas[l-1] {
			d := prev.Activation.Derivative(prev.Steepness, tr.Values[l-1][j], tr.Sums[l-1][j])
			w.deltas[l-1][j] = w.back[l].AtVec(j) * d
		}
	}

	for l := 1; l <= last; l++ {
		w.slopeMats[l].RankOne(w.slopeMats[l], 1, w.deltaVecs[l], w.inVecs[l])
	}
}
