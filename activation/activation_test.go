package activation

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	for _, name := range []string{"", "linear", "relu", "softmax", "sigmoid", "tanh"} {
		a, err := Get(name)
		require.NoError(t, err, name)
		if name != "" {
			assert.Equal(t, name, a.Name())
		}
	}
	_, err := Get("swish")
	assert.True(t, errors.Is(err, ErrUnknownActivation))
}

func TestSoftmaxRowsSumToOne(t *testing.T) {
	in := []float64{1, 2, 3, -1000, 0, 1000}
	out := make([]float64, len(in))
	Softmax{}.Forward(out, in, 3)
	for row := 0; row < 2; row++ {
		var sum float64
		for _, v := range out[row*3 : row*3+3] {
			assert.GreaterOrEqual(t, v, 0.0)
			sum += v
		}
		assert.InDelta(t, 1.0, sum, 1e-12)
	}
	assert.Greater(t, out[2], out[1])
}

// numerical gradient check of every activation
func TestBackwardMatchesFiniteDifference(t *testing.T) {
	in := []float64{0.3, -0.7, 1.1, 0.05, -0.2, 0.9}
	weights := []float64{0.5, -1, 2, 0.1, 0.3, -0.4}
	const width = 3
	const h = 1e-6

	objective := func(a Activation, x []float64) float64 {
		y := make([]float64, len(x))
		a.Forward(y, x, width)
		var s float64
		for i := range y {
			s += y[i] * weights[i]
		}
		return s
	}

	for _, a := range []Activation{Linear{}, Relu{}, Sigmoid{}, Tanh{}, Softmax{}} {
		out := make([]float64, len(in))
		a.Forward(out, in, width)
		dx := make([]float64, len(in))
		a.Backward(dx, out, weights, width)

		for i := range in {
			plus := append([]float64(nil), in...)
			minus := append([]float64(nil), in...)
			plus[i] += h
			minus[i] -= h
			numeric := (objective(a, plus) - objective(a, minus)) / (2 * h)
			assert.InDelta(t, numeric, dx[i], 1e-5, "%s index %d", a.Name(), i)
		}
	}
}
