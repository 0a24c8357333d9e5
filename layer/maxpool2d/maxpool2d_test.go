package maxpool2d

import (
	"math/rand"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neurlang/imagenn/tensor"
)

func TestForwardBackward(t *testing.T) {
	c, err := MustNew(2).Lay(tensor.Shape{4, 5, 1}, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2, 2, 1}, c.OutputShape())

	in := tensor.MustFromSlice([]float64{
		1, 2, 0, 0, 9,
		3, 4, 0, 5, 9,
		0, 0, 7, 0, 9,
		-1, 6, 0, 0, 9,
	}, 1, 4, 5, 1)
	out := c.Forward(in, true)
	assert.Equal(t, []float64{4, 5, 6, 7}, out.Data())

	dx := c.Backward(tensor.MustFromSlice([]float64{1, 2, 3, 4}, 1, 2, 2, 1))
	want := []float64{
		0, 0, 0, 0, 0,
		0, 1, 0, 2, 0,
		0, 0, 4, 0, 0,
		0, 3, 0, 0, 0,
	}
	assert.Equal(t, want, dx.Data())
}

func TestChannelsPoolIndependently(t *testing.T) {
	c, err := MustNew(2).Lay(tensor.Shape{2, 2, 2}, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	in := tensor.MustFromSlice([]float64{1, 8, 2, 7, 3, 6, 4, 5}, 1, 2, 2, 2)
	assert.Equal(t, []float64{4, 8}, c.Forward(in, false).Data())
}

func TestLayValidates(t *testing.T) {
	_, err := New(0)
	assert.Error(t, err)
	_, err = MustNew(3).Lay(tensor.Shape{2, 2, 1}, nil)
	assert.True(t, errors.Is(err, tensor.ErrShapeMismatch))
	_, err = MustNew(2).Lay(tensor.Shape{10}, nil)
	assert.True(t, errors.Is(err, tensor.ErrShapeMismatch))
}
