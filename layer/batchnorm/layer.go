// Package batchnorm implements batch normalization over the last (channel) axis
package batchnorm

import "math/rand"

import "github.com/pkg/errors"

import "github.com/neurlang/imagenn/layer"
import "github.com/neurlang/imagenn/tensor"

const (
	DefaultMomentum = 0.99
	DefaultEpsilon  = 1e-3
)

type BatchNormLayer struct {
	momentum, epsilon float64
	input             tensor.Shape
}

// New creates a batch normalization layer with the default momentum and epsilon
func New(input ...int) *BatchNormLayer {
	return NewWith(DefaultMomentum, DefaultEpsilon, input...)
}

// NewWith creates a batch normalization layer with the given moving average momentum and epsilon
func NewWith(momentum, epsilon float64, input ...int) *BatchNormLayer {
	o := new(BatchNormLayer)
	o.momentum = momentum
	o.epsilon = epsilon
	if len(input) > 0 {
		o.input = tensor.Shape(input).Clone()
	}
	return o
}

func (l *BatchNormLayer) Name() string {
	return "batch_normalization"
}

func (l *BatchNormLayer) InputShape() tensor.Shape {
	return l.input
}

// Lay turns the batch normalization layer into a combiner
func (l *BatchNormLayer) Lay(input tensor.Shape, _ *rand.Rand) (layer.Combiner, error) {
	if len(input) == 0 {
		return nil, errors.Wrap(tensor.ErrShapeMismatch, "batch normalization needs a channel axis")
	}
	o := new(BatchNorm)
	o.shape = input.Clone()
	o.channels = input[len(input)-1]
	o.momentum = l.momentum
	o.epsilon = l.epsilon
	o.gamma = layer.NewParam("gamma", o.channels)
	o.beta = layer.NewParam("beta", o.channels)
	o.movingMean = layer.NewState("moving_mean", o.channels)
	o.movingVariance = layer.NewState("moving_variance", o.channels)
	o.gamma.Value.Fill(1)
	o.movingVariance.Value.Fill(1)
	return o, nil
}
