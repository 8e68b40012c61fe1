// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"io"

	"github.com/born-ml/fann/internal/activation"
	"github.com/born-ml/fann/internal/network"
	"github.com/born-ml/fann/internal/serialization"
)

// Network is a fully connected multilayer perceptron.
type Network = network.Network

// LayerSpec describes one layer for New.
type LayerSpec = network.LayerSpec

// LayerInfo describes one layer of an existing network.
type LayerInfo = network.LayerInfo

// InitConfig controls the initial random weights.
type InitConfig = network.InitConfig

// Connection is one weighted edge between two neurons.
type Connection = network.Connection

// Trace holds the state of one forward pass.
type Trace = network.Trace

// Errors returned by this package.
var (
	ErrInvalidTopology     = network.ErrInvalidTopology
	ErrDimensionMismatch   = network.ErrDimensionMismatch
	ErrNoConnection        = network.ErrNoConnection
	ErrCorruptFile         = serialization.ErrCorruptFile
	ErrIncompatibleVersion = serialization.ErrIncompatibleVersion
)

// New creates a network with the given layers, input layer first.
//
// Example:
//
//	net, err := nn.New([]nn.LayerSpec{
//	    {Width: 2},
//	    {Width: 3, Activation: nn.SigmoidSymmetric},
//	    {Width: 1, Activation: nn.Sigmoid},
//	}, nn.InitConfig{Seed: 1})
func New(layers []LayerSpec, cfg InitConfig) (*Network, error) {
	return network.New(layers, cfg)
}

// NewStandard creates a network from layer widths with one activation for
// all hidden layers and one for the output layer.
//
// Example:
//
//	net, err := nn.NewStandard([]int{2, 4, 1}, nn.SigmoidSymmetric, nn.Sigmoid, nn.InitConfig{})
func NewStandard(widths []int, hidden, output Activation, cfg InitConfig) (*Network, error) {
	return network.NewStandard(widths, hidden, output, cfg)
}

// Load reads a network from a file written by Network.Save.
func Load(path string) (*Network, error) {
	return network.Load(path)
}

// Read reads a network written by Network.WriteTo.
func Read(r io.Reader) (*Network, error) {
	return network.Read(r)
}

// Activation is an activation function.
type Activation = activation.Func

// Activation functions.
const (
	Linear               = activation.Linear
	Threshold            = activation.Threshold
	ThresholdSymmetric   = activation.ThresholdSymmetric
	Sigmoid              = activation.Sigmoid
	SigmoidSymmetric     = activation.SigmoidSymmetric
	Gaussian             = activation.Gaussian
	GaussianSymmetric    = activation.GaussianSymmetric
	Elliot               = activation.Elliot
	ElliotSymmetric      = activation.ElliotSymmetric
	LinearPiece          = activation.LinearPiece
	LinearPieceSymmetric = activation.LinearPieceSymmetric
	SinSymmetric         = activation.SinSymmetric
	CosSymmetric         = activation.CosSymmetric
	Sin                  = activation.Sin
	Cos                  = activation.Cos
	ReLU                 = activation.ReLU
	LeakyReLU            = activation.LeakyReLU
)

// DefaultSteepness is used for layers created with a zero steepness.
const DefaultSteepness = activation.DefaultSteepness

// ParseActivation returns the activation function with the given name,
// such as "sigmoid_symmetric".
func ParseActivation(name string) (Activation, error) {
	return activation.Parse(name)
}

// Activations returns every activation function.
func Activations() []Activation {
	return activation.All()
}
