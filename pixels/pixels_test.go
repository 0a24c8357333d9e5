package pixels

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neurlang/imagenn/layer/layertest"
	"github.com/neurlang/imagenn/tensor"
)

func TestSetChannelLeavesOtherIndices(t *testing.T) {
	a := layertest.Random(1, 8, 6, 3)
	before := a.Clone()

	require.NoError(t, SetChannel(a, 4, 3, 1, 0))
	for y := 0; y < 8; y++ {
		for x := 0; x < 6; x++ {
			for c := 0; c < 3; c++ {
				if y < 4 && x < 3 && c == 1 {
					assert.Equal(t, 0.0, a.At(y, x, c))
				} else {
					assert.Equal(t, before.At(y, x, c), a.At(y, x, c), "%d %d %d", y, x, c)
				}
			}
		}
	}
}

func TestSetChannelClampsAndRejects(t *testing.T) {
	a := tensor.Zeros(2, 2, 3)
	require.NoError(t, SetChannel(a, 10, 10, 2, 1))
	assert.Equal(t, 1.0, a.At(1, 1, 2))
	assert.Equal(t, 0.0, a.At(1, 1, 1))

	assert.True(t, errors.Is(SetChannel(a, 1, 1, 3, 1), ErrChannel))
	assert.True(t, errors.Is(SetChannel(a, 1, 1, -1, 1), ErrChannel))
	assert.True(t, errors.Is(SetChannel(tensor.Zeros(2, 2), 1, 1, 0, 1), tensor.ErrShapeMismatch))
}

func TestSaveLoadRoundTrip(t *testing.T) {
	a := tensor.Zeros(3, 4, 3)
	require.NoError(t, SetChannel(a, 2, 2, 0, 1))
	path := filepath.Join(t.TempDir(), "img.png")
	require.NoError(t, Save(a, path))

	b, err := Load(path)
	require.NoError(t, err)
	assert.True(t, a.Equal(b))

	_, err = Load(filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)
	assert.Error(t, Save(tensor.Zeros(2, 2, 2), path))
}

func TestGrayscale(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 56, 56))
	for y := 0; y < 56; y++ {
		for x := 0; x < 56; x++ {
			img.SetGray(x, y, color.Gray{Y: 255})
		}
	}
	path := filepath.Join(t.TempDir(), "white.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())

	g, err := Grayscale(path, 28, 28, false)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{28, 28, 1}, g.Shape())
	assert.InDelta(t, 1.0, g.At(14, 14, 0), 1e-3)

	inv, err := Grayscale(path, 28, 28, true)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, inv.At(14, 14, 0), 1e-3)

	_, err = Grayscale(path, 0, 28, false)
	assert.Error(t, err)
}
