// Package conv2d implements a 2D convolution layer and combiner
package conv2d

import "math/rand"

import "github.com/pkg/errors"

import "github.com/neurlang/imagenn/activation"
import "github.com/neurlang/imagenn/layer"
import "github.com/neurlang/imagenn/tensor"

// Conv2DLayer describes a channels-last convolution with square kernel, stride 1 and valid padding
type Conv2DLayer struct {
	filters, kernel int
	activation      string
	input           tensor.Shape
}

// MustNew creates a new Conv2D layer with filters, kernel size and activation
func MustNew(filters, kernel int, act string, input ...int) *Conv2DLayer {
	o, err := New(filters, kernel, act, input...)
	if err != nil {
		panic(err.Error())
	}
	return o
}

// New creates a new Conv2D layer with filters, kernel size and activation. The optional
// input is the (rows, cols, channels) shape of the first layer of a model.
func New(filters, kernel int, act string, input ...int) (o *Conv2DLayer, err error) {
	if filters <= 0 {
		return nil, errors.Errorf("New Conv2D: filters %d must be positive", filters)
	}
	if kernel <= 0 {
		return nil, errors.Errorf("New Conv2D: kernel size %d must be positive", kernel)
	}
	if len(input) != 0 && len(input) != 3 {
		return nil, errors.Wrapf(tensor.ErrShapeMismatch, "New Conv2D: input shape %v is not (rows, cols, channels)", input)
	}
	if _, err := activation.Get(act); err != nil {
		return nil, errors.Wrap(err, "New Conv2D")
	}
	o = new(Conv2DLayer)
	o.filters = filters
	o.kernel = kernel
	o.activation = act
	if len(input) > 0 {
		o.input = tensor.Shape(input).Clone()
	}
	return
}

func (l *Conv2DLayer) Name() string {
	return "conv2d"
}

func (l *Conv2DLayer) InputShape() tensor.Shape {
	return l.input
}

// Filters is the number of output channels
func (l *Conv2DLayer) Filters() int {
	return l.filters
}

// Kernel is the kernel side length
func (l *Conv2DLayer) Kernel() int {
	return l.kernel
}

// Activation is the activation name
func (l *Conv2DLayer) Activation() string {
	return l.activation
}

// Lay turns Conv2D layer into a combiner
func (l *Conv2DLayer) Lay(input tensor.Shape, r *rand.Rand) (layer.Combiner, error) {
	if len(input) != 3 {
		return nil, errors.Wrapf(tensor.ErrShapeMismatch, "conv2d expects (rows, cols, channels), got %v", input)
	}
	if input[0] < l.kernel || input[1] < l.kernel {
		return nil, errors.Wrapf(tensor.ErrShapeMismatch, "conv2d kernel %d is larger than input %v", l.kernel, input)
	}
	act, err := activation.Get(l.activation)
	if err != nil {
		return nil, err
	}
	var o Conv2D
	o.height, o.width, o.channels = input[0], input[1], input[2]
	o.size = l.kernel
	o.filters = l.filters
	o.outHeight = o.height - o.size + 1
	o.outWidth = o.width - o.size + 1
	o.act = act
	o.kernel = layer.NewParam("kernel", o.size, o.size, o.channels, o.filters)
	o.bias = layer.NewParam("bias", o.filters)
	area := o.size * o.size
	layer.GlorotUniform(o.kernel.Value, area*o.channels, area*o.filters, r)
	return &o, nil
}
