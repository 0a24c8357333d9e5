package batchnorm

import "math"

import "github.com/neurlang/imagenn/layer"
import "github.com/neurlang/imagenn/tensor"

// BatchNorm normalizes every channel with batch statistics while training and
// with the moving statistics otherwise.
type BatchNorm struct {
	shape             tensor.Shape
	channels          int
	momentum, epsilon float64

	gamma, beta                *layer.Param
	movingMean, movingVariance *layer.Param

	// cached by the last training forward pass
	xhat   []float64
	invStd []float64
	n      int
}

func (b *BatchNorm) OutputShape() tensor.Shape {
	return b.shape.Clone()
}

func (b *BatchNorm) Params() []*layer.Param {
	return []*layer.Param{b.gamma, b.beta, b.movingMean, b.movingVariance}
}

func (b *BatchNorm) Forward(in *tensor.Tensor, training bool) *tensor.Tensor {
	out := tensor.New(in.Shape())
	x := in.Data()
	y := out.Data()
	c := b.channels
	rows := len(x) / c
	gamma := b.gamma.Value.Data()
	beta := b.beta.Value.Data()

	if !training || rows == 0 {
		mean := b.movingMean.Value.Data()
		variance := b.movingVariance.Value.Data()
		for i, v := range x {
			ch := i % c
			y[i] = gamma[ch]*(v-mean[ch])/math.Sqrt(variance[ch]+b.epsilon) + beta[ch]
		}
		return out
	}

	mean := make([]float64, c)
	variance := make([]float64, c)
	for i, v := range x {
		mean[i%c] += v
	}
	for ch := range mean {
		mean[ch] /= float64(rows)
	}
	for i, v := range x {
		d := v - mean[i%c]
		variance[i%c] += d * d
	}
	invStd := make([]float64, c)
	for ch := range variance {
		variance[ch] /= float64(rows)
		invStd[ch] = 1 / math.Sqrt(variance[ch]+b.epsilon)
	}
	xhat := make([]float64, len(x))
	for i, v := range x {
		ch := i % c
		xhat[i] = (v - mean[ch]) * invStd[ch]
		y[i] = gamma[ch]*xhat[i] + beta[ch]
	}

	mm := b.movingMean.Value.Data()
	mv := b.movingVariance.Value.Data()
	for ch := 0; ch < c; ch++ {
		mm[ch] = mm[ch]*b.momentum + mean[ch]*(1-b.momentum)
		mv[ch] = mv[ch]*b.momentum + variance[ch]*(1-b.momentum)
	}

	b.xhat, b.invStd, b.n = xhat, invStd, in.Len()
	return out
}

func (b *BatchNorm) Backward(dout *tensor.Tensor) *tensor.Tensor {
	dx := tensor.New(dout.Shape())
	g := dout.Data()
	c := b.channels
	rows := float64(len(g) / c)
	gamma := b.gamma.Value.Data()
	dgamma := b.gamma.Grad.Data()
	dbeta := b.beta.Grad.Data()

	sum := make([]float64, c)
	sumXhat := make([]float64, c)
	for i, v := range g {
		ch := i % c
		sum[ch] += v
		sumXhat[ch] += v * b.xhat[i]
	}
	copy(dbeta, sum)
	copy(dgamma, sumXhat)

	d := dx.Data()
	for i, v := range g {
		ch := i % c
		d[i] = gamma[ch] * b.invStd[ch] / rows * (rows*v - sum[ch] - b.xhat[i]*sumXhat[ch])
	}
	return dx
}
