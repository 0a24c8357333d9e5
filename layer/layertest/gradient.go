// Package layertest checks combiner gradients against finite differences
package layertest

import "math/rand"
import "testing"

import "github.com/neurlang/imagenn/layer"
import "github.com/neurlang/imagenn/tensor"

const step = 1e-5

// CheckGradients compares the analytic input and parameter gradients of c at in
// with central differences of the objective sum(out * w) for a random w.
func CheckGradients(t *testing.T, c layer.Combiner, in *tensor.Tensor, tolerance float64) {
	t.Helper()
	r := rand.New(rand.NewSource(3))

	out := c.Forward(in, true)
	w := tensor.New(out.Shape())
	for i := range w.Data() {
		w.Data()[i] = r.Float64()*2 - 1
	}
	objective := func() float64 {
		o := c.Forward(in, true)
		var s float64
		for i, v := range o.Data() {
			s += v * w.Data()[i]
		}
		return s
	}

	c.Forward(in, true)
	dx := c.Backward(w)
	if !dx.Shape().Equal(in.Shape()) {
		t.Fatalf("input gradient shape %v, want %v", dx.Shape(), in.Shape())
	}
	// parameter gradients are overwritten by the next backward, keep a copy
	var grads []*tensor.Tensor
	for _, p := range c.Params() {
		if p.Trainable() {
			grads = append(grads, p.Grad.Clone())
		}
	}

	numeric := func(v []float64, i int) float64 {
		old := v[i]
		v[i] = old + step
		plus := objective()
		v[i] = old - step
		minus := objective()
		v[i] = old
		return (plus - minus) / (2 * step)
	}

	for i := range in.Data() {
		if d := numeric(in.Data(), i) - dx.Data()[i]; d > tolerance || d < -tolerance {
			t.Errorf("input gradient %d: analytic %g, numeric off by %g", i, dx.Data()[i], d)
		}
	}
	k := 0
	for _, p := range c.Params() {
		if !p.Trainable() {
			continue
		}
		for i := range p.Value.Data() {
			if d := numeric(p.Value.Data(), i) - grads[k].Data()[i]; d > tolerance || d < -tolerance {
				t.Errorf("%s gradient %d: analytic %g, numeric off by %g", p.Name, i, grads[k].Data()[i], d)
			}
		}
		k++
	}
}

// Random fills a new tensor of the given shape with U(-1, 1) values
func Random(seed int64, shape ...int) *tensor.Tensor {
	r := rand.New(rand.NewSource(seed))
	t := tensor.Zeros(shape...)
	for i := range t.Data() {
		t.Data()[i] = r.Float64()*2 - 1
	}
	return t
}
