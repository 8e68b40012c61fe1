package train

import (
	"github.com/born-ml/fann/internal/dataset"
	"github.com/born-ml/fann/internal/loss"
	"github.com/born-ml/fann/internal/network"
)

// Test runs every example of data through net and returns the MSE and the
// bit-fail count (with the default bit-fail limit). net is not modified.
//
// Returns the same validation errors as Train for empty or mismatched data.
func Test(net *network.Network, data *dataset.TrainingData) (mse float64, bitFail int, err error) {
	return TestWithLimit(net, data, loss.DefaultBitFailLimit)
}

// TestWithLimit is Test with an explicit bit-fail limit.
func TestWithLimit(net *network.Network, data *dataset.TrainingData, bitFailLimit float64) (mse float64, bitFail int, err error) {
	if err := checkCompatible(net, data); err != nil {
		return 0, 0, err
	}

	acc := loss.NewAccumulator(bitFailLimit)
	tr := net.NewTrace()
	symmetric := net.Layer(net.NumLayers() - 1).Activation.Symmetric()
	for i := 0; i < data.Len(); i++ {
		input, target := data.Example(i)
		out := net.Forward(input, tr)
		for k, o := range out {
			acc.Add(target[k]-o, symmetric)
		}
	}
	return acc.MSE(), acc.BitFail(), nil
}
