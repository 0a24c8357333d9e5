package learning

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neurlang/imagenn/layer"
	"github.com/neurlang/imagenn/tensor"
)

func TestResolveIdentifiers(t *testing.T) {
	_, err := NewOptimizer("adam", HyperParameters{})
	assert.NoError(t, err)
	_, err = NewOptimizer("rmsprop", HyperParameters{})
	assert.True(t, errors.Is(err, ErrUnknownOptimizer))

	l, err := NewLoss("mse")
	require.NoError(t, err)
	assert.Equal(t, "mean_squared_error", l.Name())
	_, err = NewLoss("hinge")
	assert.True(t, errors.Is(err, ErrUnknownLoss))

	m, err := NewMetric("acc")
	require.NoError(t, err)
	assert.Equal(t, "accuracy", m.Name())
	_, err = NewMetric("auc")
	assert.True(t, errors.Is(err, ErrUnknownMetric))
}

func TestCrossentropy(t *testing.T) {
	pred := tensor.MustFromSlice([]float64{0.7, 0.2, 0.1, 0, 0, 1}, 2, 3)
	target := tensor.MustFromSlice([]float64{1, 0, 0, 1, 0, 0}, 2, 3)
	losses, grad := CategoricalCrossentropy{}.Compute(pred, target)
	assert.InDelta(t, -math.Log(0.7), losses[0], 1e-12)
	// a zero probability is clipped rather than infinite
	assert.InDelta(t, -math.Log(1e-7), losses[1], 1e-9)
	assert.InDelta(t, -1/0.7/2, grad.At(0, 0), 1e-12)
	assert.Zero(t, grad.At(0, 1))
}

func TestMeanSquaredError(t *testing.T) {
	pred := tensor.MustFromSlice([]float64{1, 3}, 1, 2)
	target := tensor.MustFromSlice([]float64{0, 1}, 1, 2)
	losses, grad := MeanSquaredError{}.Compute(pred, target)
	assert.InDelta(t, 2.5, losses[0], 1e-12)
	assert.Equal(t, []float64{1, 2}, grad.Data())
}

func TestAccuracy(t *testing.T) {
	pred := tensor.MustFromSlice([]float64{0.1, 0.8, 0.1, 0.5, 0.3, 0.2}, 2, 3)
	target := tensor.MustFromSlice([]float64{0, 1, 0, 0, 0, 1}, 2, 3)
	assert.Equal(t, []float64{1, 0}, Accuracy{}.Compute(pred, target))
	assert.Equal(t, []int{1, 0}, Argmax(pred))
}

// minimizing (w-3)^2 converges for both optimizers
func TestOptimizersDescend(t *testing.T) {
	for _, name := range []string{"adam", "sgd"} {
		opt, err := NewOptimizer(name, HyperParameters{LearningRate: 0.1, Momentum: 0.5})
		require.NoError(t, err)
		p := layer.NewParam("w", 1)
		for i := 0; i < 500; i++ {
			p.Grad.Data()[0] = 2 * (p.Value.Data()[0] - 3)
			opt.Step([]*layer.Param{p})
		}
		assert.InDelta(t, 3, p.Value.Data()[0], 5e-2, name)
	}
}

func TestOptimizerSkipsState(t *testing.T) {
	opt, err := NewOptimizer("adam", HyperParameters{})
	require.NoError(t, err)
	s := layer.NewState("moving_mean", 2)
	s.Value.Fill(4)
	opt.Step([]*layer.Param{s})
	assert.Equal(t, []float64{4, 4}, s.Value.Data())
}
