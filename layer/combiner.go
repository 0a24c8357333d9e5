package layer

import "github.com/neurlang/imagenn/tensor"

// Combiner is the built, stateful form of a layer. It transforms a batch
// (axis 0 is the sample axis) and, after a training forward pass, propagates gradients back.
type Combiner interface {

	// OutputShape is the per-sample output shape
	OutputShape() tensor.Shape

	// Forward computes the batch output. In training mode the combiner keeps
	// what Backward needs and may update running statistics.
	Forward(in *tensor.Tensor, training bool) *tensor.Tensor

	// Backward takes the gradient w.r.t. the output of the last training Forward,
	// stores parameter gradients and returns the gradient w.r.t. the input.
	Backward(dout *tensor.Tensor) *tensor.Tensor

	// Params lists the parameters in a stable order
	Params() []*Param
}

// Param is a named weight array. Grad is nil for non-trainable state such as moving averages.
type Param struct {
	Name  string
	Value *tensor.Tensor
	Grad  *tensor.Tensor
}

// Trainable reports whether the optimizer updates the parameter
func (p *Param) Trainable() bool {
	return p.Grad != nil
}

// NewParam allocates a trainable parameter with a gradient of the same shape
func NewParam(name string, shape ...int) *Param {
	return &Param{Name: name, Value: tensor.Zeros(shape...), Grad: tensor.Zeros(shape...)}
}

// NewState allocates a non-trainable parameter
func NewState(name string, shape ...int) *Param {
	return &Param{Name: name, Value: tensor.Zeros(shape...)}
}

// CountParams sums the element counts of params
func CountParams(params []*Param) (trainable, fixed int) {
	for _, p := range params {
		if p.Trainable() {
			trainable += p.Value.Size()
		} else {
			fixed += p.Value.Size()
		}
	}
	return
}
