package synthetic

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/neurlang/imagenn/tensor"
)

func TestImages(t *testing.T) {
	s := Images(30, 28, 28, 3, 1)
	assert.Equal(t, tensor.Shape{30, 28, 28, 1}, s.X.Shape())
	assert.Len(t, s.Labels, 30)

	seen := map[int]bool{}
	for i, c := range s.Labels {
		seen[c] = true
		// the bright square lies in the band of its class
		img := s.X.Sample(i)
		var best, bestCol = 0.0, 0
		for p, v := range img {
			if v > best {
				best, bestCol = v, p%28
			}
		}
		assert.Equal(t, c, bestCol/9, "sample %d", i)
	}
	assert.Len(t, seen, 3)

	assert.True(t, s.X.Equal(Images(30, 28, 28, 3, 1).X))
}

func TestNarrowImagesEncodeBrightness(t *testing.T) {
	s := Images(20, 1, 2, 3, 1)
	assert.Equal(t, tensor.Shape{20, 1, 2, 1}, s.X.Shape())
	for i, c := range s.Labels {
		assert.GreaterOrEqual(t, c, 0)
		assert.Less(t, c, 3)
		for _, v := range s.X.Sample(i) {
			// brightness stays inside the third of [0, 1] owned by the class
			assert.GreaterOrEqual(t, v, float64(c)/3)
			assert.Less(t, v, float64(c+1)/3)
		}
	}
}
