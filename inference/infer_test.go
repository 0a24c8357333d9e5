package inference

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neurlang/imagenn/tensor"
)

// fixed returns the same rows whatever the input
type fixed struct {
	out *tensor.Tensor
}

func (f fixed) Predict(x *tensor.Tensor, _ int) (*tensor.Tensor, error) {
	return f.out.Rows(0, x.Len()), nil
}

func TestClassify(t *testing.T) {
	m := fixed{tensor.MustFromSlice([]float64{0.1, 0.7, 0.2, 0.6, 0.3, 0.1}, 2, 3)}
	p, err := Classify(m, tensor.Zeros(2, 4), []string{"cat", "dog", "car"})
	require.NoError(t, err)
	require.Len(t, p, 2)
	assert.Equal(t, 1, p[0].Class)
	assert.Equal(t, "dog", p[0].Label)
	assert.Equal(t, 0.7, p[0].Confidence)
	assert.Equal(t, 0.2, p[0].Scores["car"])
	assert.Equal(t, "cat", p[1].Label)

	p, err = Classify(m, tensor.Zeros(1, 4), nil)
	require.NoError(t, err)
	assert.Equal(t, 0.7, p[0].Scores["1"])
	assert.Empty(t, p[0].Label)

	_, err = Classify(m, tensor.Zeros(1, 4), []string{"a"})
	assert.True(t, errors.Is(err, tensor.ErrShapeMismatch))
}

func TestInfer(t *testing.T) {
	m := fixed{tensor.MustFromSlice([]float64{0.1, 0.2, 0.7}, 1, 3)}
	c, err := Infer(m, tensor.Zeros(4))
	require.NoError(t, err)
	assert.Equal(t, 2, c)
}
