// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides the weight update rules used in training.
//
// # Overview
//
// This package contains:
//   - SGD: gradient descent with learning rate and momentum
//   - RPROP: resilient propagation (iRPROP-) with per-weight step sizes
//   - Quickprop: Fahlman's parabola-fitting rule
//   - Optimizer: the interface a custom rule implements
//
// Package train drives these rules over a dataset. They can also be
// stepped directly on any weight slice:
//
//	weights := net.Weights()
//	rule := optim.NewRPROP(len(weights), optim.RPROPConfig{})
//	rule.Step(weights, slopes, 1)
//
// A slope is the negative error gradient, so each rule moves a weight along
// its slope.
package optim
