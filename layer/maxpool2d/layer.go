// Package maxpool2d implements 2D max pooling with the stride equal to the pool size
package maxpool2d

import "math/rand"

import "github.com/pkg/errors"

import "github.com/neurlang/imagenn/layer"
import "github.com/neurlang/imagenn/tensor"

type MaxPool2DLayer struct {
	size  int
	input tensor.Shape
}

// New creates a new MaxPool2D layer with pool size
func New(size int, input ...int) (o *MaxPool2DLayer, err error) {
	if size <= 0 {
		return nil, errors.Errorf("New MaxPool2D: pool size %d must be positive", size)
	}
	o = new(MaxPool2DLayer)
	o.size = size
	if len(input) > 0 {
		o.input = tensor.Shape(input).Clone()
	}
	return
}

// MustNew creates a new MaxPool2D layer with pool size
func MustNew(size int, input ...int) (o *MaxPool2DLayer) {
	o, err := New(size, input...)
	if err != nil {
		panic(err.Error())
	}
	return o
}

func (l *MaxPool2DLayer) Name() string {
	return "max_pooling2d"
}

func (l *MaxPool2DLayer) InputShape() tensor.Shape {
	return l.input
}

// Size is the pool side length
func (l *MaxPool2DLayer) Size() int {
	return l.size
}

// Lay turns MaxPool2D layer into a combiner
func (l *MaxPool2DLayer) Lay(input tensor.Shape, _ *rand.Rand) (layer.Combiner, error) {
	if len(input) != 3 {
		return nil, errors.Wrapf(tensor.ErrShapeMismatch, "max pooling expects (rows, cols, channels), got %v", input)
	}
	if input[0] < l.size || input[1] < l.size {
		return nil, errors.Wrapf(tensor.ErrShapeMismatch, "pool size %d is larger than input %v", l.size, input)
	}
	var o MaxPool2D
	o.height, o.width, o.channels = input[0], input[1], input[2]
	o.size = l.size
	o.outHeight = o.height / o.size
	o.outWidth = o.width / o.size
	return &o, nil
}
