// Package dense implements a fully connected layer and combiner
package dense

import "math/rand"

import "github.com/pkg/errors"

import "github.com/neurlang/imagenn/activation"
import "github.com/neurlang/imagenn/layer"
import "github.com/neurlang/imagenn/tensor"

type DenseLayer struct {
	units      int
	activation string
	input      tensor.Shape
}

// MustNew creates a new dense layer with units and activation, panicking on error
func MustNew(units int, act string, input ...int) *DenseLayer {
	o, err := New(units, act, input...)
	if err != nil {
		panic(err.Error())
	}
	return o
}

// New creates a new dense layer with units and activation. The optional input
// is the per-sample input shape of the first layer of a model, such as 784.
func New(units int, act string, input ...int) (o *DenseLayer, err error) {
	if units <= 0 {
		return nil, errors.Errorf("New Dense: units %d must be positive", units)
	}
	if _, err := activation.Get(act); err != nil {
		return nil, errors.Wrap(err, "New Dense")
	}
	o = new(DenseLayer)
	o.units = units
	o.activation = act
	if len(input) > 0 {
		o.input = tensor.Shape(input).Clone()
	}
	return
}

func (l *DenseLayer) Name() string {
	return "dense"
}

// Units is the output width
func (l *DenseLayer) Units() int {
	return l.units
}

// Activation is the activation name
func (l *DenseLayer) Activation() string {
	return l.activation
}

func (l *DenseLayer) InputShape() tensor.Shape {
	return l.input
}

// Lay turns dense layer into a combiner
func (l *DenseLayer) Lay(input tensor.Shape, r *rand.Rand) (layer.Combiner, error) {
	if len(input) != 1 {
		return nil, errors.Wrapf(tensor.ErrShapeMismatch, "dense expects a flat input, got %v", input)
	}
	act, err := activation.Get(l.activation)
	if err != nil {
		return nil, err
	}
	o := new(Dense)
	o.in = input[0]
	o.units = l.units
	o.act = act
	o.kernel = layer.NewParam("kernel", o.in, o.units)
	o.bias = layer.NewParam("bias", o.units)
	layer.GlorotUniform(o.kernel.Value, o.in, o.units, r)
	return o, nil
}
