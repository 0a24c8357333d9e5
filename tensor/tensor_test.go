package tensor

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReshape(t *testing.T) {
	x := Zeros(50, 28, 28, 1)

	flat, err := x.Reshape(50, 784)
	require.NoError(t, err)
	assert.Equal(t, Shape{50, 784}, flat.Shape())

	inferred, err := x.Reshape(-1, 784)
	require.NoError(t, err)
	assert.Equal(t, 50, inferred.Len())

	_, err = x.Reshape(50, 783)
	assert.True(t, errors.Is(err, ErrShapeMismatch))

	_, err = x.Reshape(-1, -1)
	assert.True(t, errors.Is(err, ErrShapeMismatch))

	// reshaped tensors share data
	flat.Data()[0] = 7
	assert.Equal(t, 7.0, x.At(0, 0, 0, 0))
}

func TestRowsCopies(t *testing.T) {
	x := MustFromSlice([]float64{1, 2, 3, 4, 5, 6}, 3, 2)
	r := x.Rows(1, 3)
	assert.Equal(t, Shape{2, 2}, r.Shape())
	assert.Equal(t, []float64{3, 4, 5, 6}, r.Data())

	r.Data()[0] = 100
	assert.Equal(t, 3.0, x.At(1, 0))

	clamped := x.Rows(2, 10)
	assert.Equal(t, 1, clamped.Len())
}

func TestGather(t *testing.T) {
	x := MustFromSlice([]float64{1, 2, 3, 4, 5, 6}, 3, 2)
	g := x.Gather([]int{2, 0})
	assert.Equal(t, []float64{5, 6, 1, 2}, g.Data())
}

func TestFromSliceRejectsWrongSize(t *testing.T) {
	_, err := FromSlice(make([]float64, 5), 2, 3)
	assert.True(t, errors.Is(err, ErrShapeMismatch))
}

func TestAtSetOffset(t *testing.T) {
	x := Zeros(2, 3, 4)
	x.Set(9, 1, 2, 3)
	assert.Equal(t, 9.0, x.Data()[len(x.Data())-1])
	assert.Equal(t, 9.0, x.At(1, 2, 3))
	assert.Panics(t, func() { x.At(2, 0, 0) })
	assert.Panics(t, func() { x.At(0, 0) })
}

func TestLabelsVector(t *testing.T) {
	y := Zeros(4)
	assert.Equal(t, 1, y.SampleSize())
	assert.Equal(t, []float64{0}, y.Sample(3))
}
