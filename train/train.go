// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package train

import (
	"github.com/born-ml/fann/internal/dataset"
	"github.com/born-ml/fann/internal/loss"
	"github.com/born-ml/fann/internal/network"
	"github.com/born-ml/fann/internal/train"
)

// Config holds the settings of one training run.
type Config = train.Config

// Report summarizes a training run.
type Report = train.Report

// Algorithm selects the weight update rule.
type Algorithm = train.Algorithm

// Order selects the order examples are presented in.
type Order = train.Order

// StopFunc selects the quantity compared against Config.DesiredError.
type StopFunc = train.StopFunc

// StopReason records why training ended.
type StopReason = train.StopReason

// ErrorFunc transforms the output difference before backpropagation.
type ErrorFunc = loss.ErrorFunc

// Training algorithms.
const (
	AlgorithmIncremental = train.Incremental
	AlgorithmBatch       = train.Batch
	AlgorithmRPROP       = train.RPROP
	AlgorithmQuickprop   = train.Quickprop
)

// Example orders.
const (
	OrderSequential = train.OrderSequential
	OrderShuffled   = train.OrderShuffled
)

// Stop functions.
const (
	StopMSE = train.StopMSE
	StopBit = train.StopBit
)

// Stop reasons.
const (
	StopMaxEpochs    = train.StopMaxEpochs
	StopDesiredError = train.StopDesiredError
	StopCallback     = train.StopCallback
)

// Error functions.
const (
	ErrorLinear = loss.ErrorLinear
	ErrorTanh   = loss.ErrorTanh
)

// Errors returned by Train.
var (
	ErrInvalidConfig = train.ErrInvalidConfig
	ErrUntrainable   = train.ErrUntrainable
)

// DefaultConfig returns the standard training settings (RPROP, tanh error,
// 1000 epochs, desired MSE 0.001).
func DefaultConfig() Config {
	return train.DefaultConfig()
}

// LoadConfig reads a YAML training configuration on top of DefaultConfig.
func LoadConfig(path string) (Config, error) {
	return train.LoadConfig(path)
}

// Train adjusts the weights of net to fit set.
//
// On error the network is unchanged. Errors wrap data.ErrEmptyDataset,
// nn.ErrDimensionMismatch, ErrUntrainable or ErrInvalidConfig.
//
// Example:
//
//	report, err := train.Train(net, set, train.DefaultConfig())
//	fmt.Println(report.Epochs, report.MSE, report.StopReason)
func Train(net *network.Network, set *dataset.TrainingData, cfg Config) (Report, error) {
	return train.Train(net, set, cfg)
}

// Test returns the MSE and bit-fail count of net on set without changing
// the network.
func Test(net *network.Network, set *dataset.TrainingData) (mse float64, bitFail int, err error) {
	return train.Test(net, set)
}

// TestWithLimit is Test with an explicit bit-fail limit.
func TestWithLimit(net *network.Network, set *dataset.TrainingData, bitFailLimit float64) (mse float64, bitFail int, err error) {
	return train.TestWithLimit(net, set, bitFailLimit)
}

// ParseConfig decodes a YAML training configuration on top of DefaultConfig.
func ParseConfig(yamlData []byte) (Config, error) {
	return train.ParseConfig(yamlData)
}
