// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package optim

import "github.com/born-ml/fann/internal/optim"

// Optimizer is the common interface of the update rules.
type Optimizer = optim.Optimizer

// SGD is gradient descent with momentum.
type SGD = optim.SGD

// SGDConfig contains configuration for SGD.
type SGDConfig = optim.SGDConfig

// RPROP is resilient propagation (iRPROP-).
type RPROP = optim.RPROP

// RPROPConfig contains configuration for RPROP.
type RPROPConfig = optim.RPROPConfig

// Quickprop is Fahlman's quickprop.
type Quickprop = optim.Quickprop

// QuickpropConfig contains configuration for Quickprop.
type QuickpropConfig = optim.QuickpropConfig

// NewSGD creates an SGD optimizer for n weights.
//
// Example:
//
//	sgd := optim.NewSGD(net.TotalConnections(), optim.SGDConfig{
//	    LR:       0.7,
//	    Momentum: 0.9,
//	})
func NewSGD(n int, config SGDConfig) *SGD {
	return optim.NewSGD(n, config)
}

// NewRPROP creates an RPROP optimizer for n weights.
func NewRPROP(n int, config RPROPConfig) *RPROP {
	return optim.NewRPROP(n, config)
}

// NewQuickprop creates a Quickprop optimizer for n weights.
func NewQuickprop(n int, config QuickpropConfig) *Quickprop {
	return optim.NewQuickprop(n, config)
}
