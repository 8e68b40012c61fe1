// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package train fits networks to training data.
//
// # Overview
//
// This package contains:
//   - Train: backpropagation over a training set until an error target or
//     epoch budget is reached
//   - Test: error of a network on a dataset
//   - Config: algorithm, stop policy and error function of one run
//
// The weight update rules themselves live in package optim.
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/fann/data"
//	    "github.com/born-ml/fann/nn"
//	    "github.com/born-ml/fann/train"
//	)
//
//	func main() {
//	    net, _ := nn.NewStandard([]int{2, 4, 1}, nn.SigmoidSymmetric, nn.Sigmoid, nn.InitConfig{Seed: 1})
//	    set, _ := data.Load("xor.data")
//
//	    cfg := train.DefaultConfig()
//	    cfg.MaxEpochs = 1000
//	    cfg.DesiredError = 0.001
//
//	    report, err := train.Train(net, set, cfg)
//	}
//
// # Algorithms
//
// Incremental updates after every example with learning rate and momentum:
//
//	cfg.Algorithm = train.AlgorithmIncremental
//	cfg.LearningRate = 0.7
//	cfg.Momentum = 0.9
//
// Batch, RPROP and Quickprop update once per epoch and can spread the
// epoch over several goroutines:
//
//	cfg.Algorithm = train.AlgorithmRPROP
//	cfg.Workers = runtime.NumCPU()
//
// # Configuration Files
//
// Settings can be read from YAML on top of DefaultConfig:
//
//	cfg, err := train.LoadConfig("train.yaml")
package train
