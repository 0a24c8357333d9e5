package conv2d

import "gonum.org/v1/gonum/mat"

import "github.com/neurlang/imagenn/activation"
import "github.com/neurlang/imagenn/layer"
import "github.com/neurlang/imagenn/parallel"
import "github.com/neurlang/imagenn/tensor"

// Conv2D computes the convolution as one matrix product of the patch matrix
// (one row per output pixel) with the kernel viewed as (size*size*channels, filters).
type Conv2D struct {
	height, width, channels int
	size, filters           int
	outHeight, outWidth     int
	act                     activation.Activation

	kernel, bias *layer.Param

	// cached by the last training forward pass
	n    int
	cols []float64
	y    *tensor.Tensor
}

func (c *Conv2D) OutputShape() tensor.Shape {
	return tensor.Shape{c.outHeight, c.outWidth, c.filters}
}

func (c *Conv2D) Params() []*layer.Param {
	return []*layer.Param{c.kernel, c.bias}
}

func (c *Conv2D) patch() int {
	return c.size * c.size * c.channels
}

// im2col copies every kernel-sized window of sample n into its row of cols
func (c *Conv2D) im2col(cols, x []float64) {
	patch := c.patch()
	for i := 0; i < c.outHeight; i++ {
		for j := 0; j < c.outWidth; j++ {
			row := cols[(i*c.outWidth+j)*patch:]
			k := 0
			for a := 0; a < c.size; a++ {
				src := x[((i+a)*c.width+j)*c.channels:]
				k += copy(row[k:k+c.size*c.channels], src[:c.size*c.channels])
			}
		}
	}
}

// col2im adds the window gradients of one sample back onto its input gradient
func (c *Conv2D) col2im(dx, dcols []float64) {
	patch := c.patch()
	for i := 0; i < c.outHeight; i++ {
		for j := 0; j < c.outWidth; j++ {
			row := dcols[(i*c.outWidth+j)*patch:]
			k := 0
			for a := 0; a < c.size; a++ {
				dst := dx[((i+a)*c.width+j)*c.channels:]
				for b := 0; b < c.size*c.channels; b++ {
					dst[b] += row[k]
					k++
				}
			}
		}
	}
}

func (c *Conv2D) Forward(in *tensor.Tensor, training bool) *tensor.Tensor {
	n := in.Len()
	out := tensor.Zeros(n, c.outHeight, c.outWidth, c.filters)
	if n == 0 {
		return out
	}
	pixels := c.outHeight * c.outWidth
	patch := c.patch()
	cols := make([]float64, n*pixels*patch)
	parallel.Each(n, func(s int) {
		c.im2col(cols[s*pixels*patch:(s+1)*pixels*patch], in.Sample(s))
	})

	x := mat.NewDense(n*pixels, patch, cols)
	k := mat.NewDense(patch, c.filters, c.kernel.Value.Data())
	z := mat.NewDense(n*pixels, c.filters, out.Data())
	z.Mul(x, k)

	data := out.Data()
	bias := c.bias.Value.Data()
	for p := 0; p < n*pixels; p++ {
		for f, b := range bias {
			data[p*c.filters+f] += b
		}
	}
	c.act.Forward(data, data, c.filters)

	if training {
		c.n, c.cols, c.y = n, cols, out
	}
	return out
}

func (c *Conv2D) Backward(dout *tensor.Tensor) *tensor.Tensor {
	n := c.n
	dx := tensor.Zeros(n, c.height, c.width, c.channels)
	if n == 0 {
		return dx
	}
	pixels := c.outHeight * c.outWidth
	patch := c.patch()

	dzData := make([]float64, n*pixels*c.filters)
	c.act.Backward(dzData, c.y.Data(), dout.Data(), c.filters)
	dz := mat.NewDense(n*pixels, c.filters, dzData)

	x := mat.NewDense(n*pixels, patch, c.cols)
	dk := mat.NewDense(patch, c.filters, c.kernel.Grad.Data())
	dk.Mul(x.T(), dz)

	db := c.bias.Grad.Data()
	for f := range db {
		db[f] = 0
	}
	for p := 0; p < n*pixels; p++ {
		for f := range db {
			db[f] += dzData[p*c.filters+f]
		}
	}

	k := mat.NewDense(patch, c.filters, c.kernel.Value.Data())
	dcols := make([]float64, n*pixels*patch)
	dcm := mat.NewDense(n*pixels, patch, dcols)
	dcm.Mul(dz, k.T())

	parallel.Each(n, func(s int) {
		c.col2im(dx.Sample(s), dcols[s*pixels*patch:(s+1)*pixels*patch])
	})
	return dx
}
