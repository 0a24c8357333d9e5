// Package flatten implements the layer collapsing every per-sample axis into one
package flatten

import "math/rand"

import "github.com/neurlang/imagenn/layer"
import "github.com/neurlang/imagenn/tensor"

type FlattenLayer struct {
	input tensor.Shape
}

// New creates a flatten layer
func New(input ...int) *FlattenLayer {
	o := new(FlattenLayer)
	if len(input) > 0 {
		o.input = tensor.Shape(input).Clone()
	}
	return o
}

func (l *FlattenLayer) Name() string {
	return "flatten"
}

func (l *FlattenLayer) InputShape() tensor.Shape {
	return l.input
}

// Lay turns flatten layer into a combiner
func (l *FlattenLayer) Lay(input tensor.Shape, _ *rand.Rand) (layer.Combiner, error) {
	return &Flatten{input: input.Clone()}, nil
}

// Flatten reshapes [N, ...] into [N, prod(...)]
type Flatten struct {
	input tensor.Shape
}

func (f *Flatten) OutputShape() tensor.Shape {
	return tensor.Shape{f.input.Size()}
}

func (f *Flatten) Params() []*layer.Param {
	return nil
}

func (f *Flatten) Forward(in *tensor.Tensor, _ bool) *tensor.Tensor {
	out, err := in.Reshape(in.Len(), f.input.Size())
	if err != nil {
		panic(err.Error())
	}
	return out
}

func (f *Flatten) Backward(dout *tensor.Tensor) *tensor.Tensor {
	out, err := dout.Reshape(append(tensor.Shape{dout.Len()}, f.input...)...)
	if err != nil {
		panic(err.Error())
	}
	return out
}
