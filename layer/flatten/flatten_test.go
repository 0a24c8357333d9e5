package flatten

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neurlang/imagenn/tensor"
)

func TestFlatten(t *testing.T) {
	c, err := New().Lay(tensor.Shape{26, 26, 5}, nil)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{3380}, c.OutputShape())

	in := tensor.Zeros(2, 26, 26, 5)
	in.Set(1, 1, 25, 25, 4)
	out := c.Forward(in, true)
	assert.Equal(t, tensor.Shape{2, 3380}, out.Shape())
	assert.Equal(t, 1.0, out.At(1, 3379))

	back := c.Backward(out)
	assert.True(t, back.Equal(in))
}
