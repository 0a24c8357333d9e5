package datasets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neurlang/imagenn/tensor"
)

func sample() Set {
	x := tensor.MustFromSlice([]float64{0, 1, 2, 3, 4, 5}, 6, 1)
	return Set{X: x, Labels: []int{0, 3, 8, 3, 1, 8}}
}

func TestOneHot(t *testing.T) {
	y, err := OneHot([]int{2, 0}, 3)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 1, 1, 0, 0}, y.Data())

	_, err = OneHot([]int{3}, 3)
	assert.Error(t, err)
}

func TestFilterClasses(t *testing.T) {
	s := sample().FilterClasses([]int{0, 3, 8})
	assert.Equal(t, []int{0, 1, 2, 1, 2}, s.Labels)
	assert.Equal(t, []float64{0, 1, 2, 3, 5}, s.X.Data())
}

func TestTakeAndShuffle(t *testing.T) {
	s := sample()
	assert.Equal(t, 2, s.Take(2).Len())
	assert.Equal(t, 6, s.Take(100).Len())
	assert.Equal(t, 0, s.Take(-1).Len())

	sh := s.Shuffle(7)
	assert.ElementsMatch(t, s.Labels, sh.Labels)
	for i, v := range sh.X.Data() {
		// values equal their original position, so labels must follow
		assert.Equal(t, s.Labels[int(v)], sh.Labels[i])
	}
	assert.Equal(t, sh.Labels, s.Shuffle(7).Labels)
}

func TestReshape(t *testing.T) {
	s := Set{X: tensor.Zeros(3, 28, 28, 1), Labels: []int{0, 1, 2}}
	flat, err := s.Reshape(784)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{3, 784}, flat.X.Shape())
	_, err = s.Reshape(783)
	assert.Error(t, err)
}
