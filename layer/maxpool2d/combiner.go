package maxpool2d

import "github.com/neurlang/imagenn/layer"
import "github.com/neurlang/imagenn/parallel"
import "github.com/neurlang/imagenn/tensor"

// MaxPool2D keeps the maximum of every non-overlapping size×size window per channel.
// Trailing rows and columns that do not fill a window are dropped.
type MaxPool2D struct {
	height, width, channels int
	size                    int
	outHeight, outWidth     int

	// flat input position of every output maximum, cached by a training forward pass
	argmax []int
	n      int
}

func (m *MaxPool2D) OutputShape() tensor.Shape {
	return tensor.Shape{m.outHeight, m.outWidth, m.channels}
}

func (m *MaxPool2D) Params() []*layer.Param {
	return nil
}

func (m *MaxPool2D) Forward(in *tensor.Tensor, training bool) *tensor.Tensor {
	n := in.Len()
	out := tensor.Zeros(n, m.outHeight, m.outWidth, m.channels)
	argmax := make([]int, out.Size())
	stride := out.SampleSize()

	parallel.Each(n, func(s int) {
		x := in.Sample(s)
		y := out.Sample(s)
		arg := argmax[s*stride : (s+1)*stride]
		for i := 0; i < m.outHeight; i++ {
			for j := 0; j < m.outWidth; j++ {
				for ch := 0; ch < m.channels; ch++ {
					best := -1
					for a := 0; a < m.size; a++ {
						for b := 0; b < m.size; b++ {
							pos := ((i*m.size+a)*m.width+(j*m.size+b))*m.channels + ch
							if best < 0 || x[pos] > x[best] {
								best = pos
							}
						}
					}
					o := (i*m.outWidth+j)*m.channels + ch
					y[o] = x[best]
					arg[o] = best
				}
			}
		}
	})

	if training {
		m.argmax, m.n = argmax, n
	}
	return out
}

func (m *MaxPool2D) Backward(dout *tensor.Tensor) *tensor.Tensor {
	dx := tensor.Zeros(m.n, m.height, m.width, m.channels)
	stride := dout.SampleSize()
	parallel.Each(m.n, func(s int) {
		d := dx.Sample(s)
		g := dout.Sample(s)
		for o, pos := range m.argmax[s*stride : (s+1)*stride] {
			d[pos] += g[o]
		}
	})
	return dx
}
