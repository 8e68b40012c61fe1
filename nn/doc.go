// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides multilayer perceptrons: fully connected feed-forward
// networks with per-layer activation functions.
//
// # Overview
//
// This package contains:
//   - Network: layered topology stored in one flat weight arena
//   - Activations: Linear, Sigmoid, SigmoidSymmetric, Gaussian, Elliot and more
//   - Weight initialization: seeded uniform and Widrow-Nguyen
//   - Persistence: versioned binary files with checksums
//
// # Basic Usage
//
//	import "github.com/born-ml/fann/nn"
//
//	func main() {
//	    net, err := nn.NewStandard([]int{2, 4, 1},
//	        nn.SigmoidSymmetric, nn.Sigmoid, nn.InitConfig{Seed: 1})
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    output, err := net.Run([]float64{1, 0})
//	}
//
// # Layers
//
// Each non-input layer has an activation function and a steepness. A neuron
// computes activation(steepness * (sum of weighted inputs + bias weight)):
//
//	net, err := nn.New([]nn.LayerSpec{
//	    {Width: 3},
//	    {Width: 8, Activation: nn.ElliotSymmetric, Steepness: 0.5},
//	    {Width: 2, Activation: nn.Linear, Steepness: 1},
//	}, nn.InitConfig{Seed: 7})
//
// # Saving and Loading
//
//	if err := net.Save("model.fann"); err != nil {
//	    log.Fatal(err)
//	}
//	loaded, err := nn.Load("model.fann")
//
// Load reports ErrIncompatibleVersion for files from an unknown format
// version and ErrCorruptFile for damaged files.
package nn
