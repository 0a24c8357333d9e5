package dense

import "gonum.org/v1/gonum/mat"

import "github.com/neurlang/imagenn/activation"
import "github.com/neurlang/imagenn/layer"
import "github.com/neurlang/imagenn/tensor"

// Dense computes act(x·kernel + bias)
type Dense struct {
	in, units int
	act       activation.Activation

	kernel, bias *layer.Param

	// cached by the last training forward pass
	x, y *tensor.Tensor
}

func (d *Dense) OutputShape() tensor.Shape {
	return tensor.Shape{d.units}
}

func (d *Dense) Params() []*layer.Param {
	return []*layer.Param{d.kernel, d.bias}
}

func (d *Dense) Forward(in *tensor.Tensor, training bool) *tensor.Tensor {
	n := in.Len()
	out := tensor.Zeros(n, d.units)
	if n == 0 {
		return out
	}
	x := mat.NewDense(n, d.in, in.Data())
	w := mat.NewDense(d.in, d.units, d.kernel.Value.Data())
	z := mat.NewDense(n, d.units, out.Data())
	z.Mul(x, w)

	data := out.Data()
	bias := d.bias.Value.Data()
	for row := 0; row < n; row++ {
		for j, b := range bias {
			data[row*d.units+j] += b
		}
	}
	d.act.Forward(data, data, d.units)

	if training {
		d.x, d.y = in, out
	}
	return out
}

func (d *Dense) Backward(dout *tensor.Tensor) *tensor.Tensor {
	n := d.x.Len()
	dx := tensor.Zeros(n, d.in)
	if n == 0 {
		return dx
	}
	dzData := make([]float64, n*d.units)
	d.act.Backward(dzData, d.y.Data(), dout.Data(), d.units)

	x := mat.NewDense(n, d.in, d.x.Data())
	w := mat.NewDense(d.in, d.units, d.kernel.Value.Data())
	dz := mat.NewDense(n, d.units, dzData)

	dw := mat.NewDense(d.in, d.units, d.kernel.Grad.Data())
	dw.Mul(x.T(), dz)

	db := d.bias.Grad.Data()
	for j := range db {
		db[j] = 0
	}
	for row := 0; row < n; row++ {
		for j := range db {
			db[j] += dzData[row*d.units+j]
		}
	}

	dxm := mat.NewDense(n, d.in, dx.Data())
	dxm.Mul(dz, w.T())
	return dx
}
