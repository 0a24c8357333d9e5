// Package activation implements the element-wise and softmax activations of dense and conv layers
package activation

import "math"

import "github.com/pkg/errors"

// ErrUnknownActivation is returned for activation names outside the supported set
var ErrUnknownActivation = errors.New("unknown activation")

// Activation is applied to the last axis of a layer output
type Activation interface {

	// Name is the identifier used in model definitions and weight files
	Name() string

	// Forward computes out from in. Both have the same length; width is the size of the last axis.
	Forward(out, in []float64, width int)

	// Backward computes the gradient w.r.t. the pre-activation from the output
	// and the gradient w.r.t. the output.
	Backward(dx, out, dout []float64, width int)
}

// Get resolves an activation name. The empty name is linear.
func Get(name string) (Activation, error) {
	switch name {
	case "", "linear":
		return Linear{}, nil
	case "relu":
		return Relu{}, nil
	case "softmax":
		return Softmax{}, nil
	case "sigmoid":
		return Sigmoid{}, nil
	case "tanh":
		return Tanh{}, nil
	}
	return nil, errors.Wrapf(ErrUnknownActivation, "%q", name)
}

// Linear is the identity
type Linear struct{}

func (Linear) Name() string { return "linear" }

func (Linear) Forward(out, in []float64, _ int) {
	copy(out, in)
}

func (Linear) Backward(dx, _, dout []float64, _ int) {
	copy(dx, dout)
}

// Relu is max(0, x)
type Relu struct{}

func (Relu) Name() string { return "relu" }

func (Relu) Forward(out, in []float64, _ int) {
	for i, v := range in {
		if v > 0 {
			out[i] = v
		} else {
			out[i] = 0
		}
	}
}

func (Relu) Backward(dx, out, dout []float64, _ int) {
	for i, v := range out {
		if v > 0 {
			dx[i] = dout[i]
		} else {
			dx[i] = 0
		}
	}
}

// Sigmoid is 1/(1+exp(-x))
type Sigmoid struct{}

func (Sigmoid) Name() string { return "sigmoid" }

func (Sigmoid) Forward(out, in []float64, _ int) {
	for i, v := range in {
		out[i] = 1 / (1 + math.Exp(-v))
	}
}

func (Sigmoid) Backward(dx, out, dout []float64, _ int) {
	for i, v := range out {
		dx[i] = dout[i] * v * (1 - v)
	}
}

// Tanh is the hyperbolic tangent
type Tanh struct{}

func (Tanh) Name() string { return "tanh" }

func (Tanh) Forward(out, in []float64, _ int) {
	for i, v := range in {
		out[i] = math.Tanh(v)
	}
}

func (Tanh) Backward(dx, out, dout []float64, _ int) {
	for i, v := range out {
		dx[i] = dout[i] * (1 - v*v)
	}
}

// Softmax normalizes each row of width values into a probability distribution
type Softmax struct{}

func (Softmax) Name() string { return "softmax" }

func (Softmax) Forward(out, in []float64, width int) {
	for row := 0; row+width <= len(in); row += width {
		x := in[row : row+width]
		y := out[row : row+width]
		max := math.Inf(-1)
		for _, v := range x {
			if v > max {
				max = v
			}
		}
		var sum float64
		for i, v := range x {
			y[i] = math.Exp(v - max)
			sum += y[i]
		}
		for i := range y {
			y[i] /= sum
		}
	}
}

// Backward applies the softmax Jacobian: dx_i = y_i * (dout_i - sum_j dout_j y_j)
func (Softmax) Backward(dx, out, dout []float64, width int) {
	for row := 0; row+width <= len(out); row += width {
		y := out[row : row+width]
		g := dout[row : row+width]
		var dot float64
		for i := range y {
			dot += g[i] * y[i]
		}
		for i := range y {
			dx[row+i] = y[i] * (g[i] - dot)
		}
	}
}
