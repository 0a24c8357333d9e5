package batchnorm

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neurlang/imagenn/layer/layertest"
	"github.com/neurlang/imagenn/tensor"
)

func TestTrainingNormalizesPerChannel(t *testing.T) {
	c, err := New().Lay(tensor.Shape{3, 3, 2}, nil)
	require.NoError(t, err)
	in := layertest.Random(4, 5, 3, 3, 2)
	for i := range in.Data() {
		if i%2 == 1 {
			in.Data()[i] = in.Data()[i]*10 + 50
		}
	}
	out := c.Forward(in, true)
	for ch := 0; ch < 2; ch++ {
		var sum, sq float64
		var n float64
		for i := ch; i < out.Size(); i += 2 {
			sum += out.Data()[i]
			n++
		}
		mean := sum / n
		for i := ch; i < out.Size(); i += 2 {
			sq += (out.Data()[i] - mean) * (out.Data()[i] - mean)
		}
		assert.InDelta(t, 0, mean, 1e-9)
		assert.InDelta(t, 1, math.Sqrt(sq/n), 1e-2)
	}

	// moving mean moved 1% of the way towards the batch mean
	mm := c.Params()[2].Value.Data()
	assert.InDelta(t, 0.5, mm[1], 0.05)
}

func TestInferenceUsesMovingStatistics(t *testing.T) {
	c, err := New().Lay(tensor.Shape{2}, nil)
	require.NoError(t, err)
	in := tensor.MustFromSlice([]float64{1, 2, 3, 4}, 2, 2)
	out := c.Forward(in, false)
	for i, v := range in.Data() {
		assert.InDelta(t, v/math.Sqrt(1+DefaultEpsilon), out.Data()[i], 1e-12)
	}
	// inference does not touch the moving statistics
	assert.Equal(t, []float64{0, 0}, c.Params()[2].Value.Data())
}

func TestGradients(t *testing.T) {
	c, err := New().Lay(tensor.Shape{2, 2, 3}, nil)
	require.NoError(t, err)
	copy(c.Params()[0].Value.Data(), []float64{0.5, 1.5, -1})
	layertest.CheckGradients(t, c, layertest.Random(2, 3, 2, 2, 3), 1e-5)
}
