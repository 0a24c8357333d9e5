package plot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neurlang/imagenn/net/sequential"
)

func history() *sequential.History {
	h := &sequential.History{}
	for i, loss := range []float64{1.1, 0.7, 0.5} {
		v := loss + 0.1
		h.Epochs = append(h.Epochs, sequential.Epoch{
			Epoch:      i + 1,
			Loss:       loss,
			Metrics:    map[string]float64{"accuracy": 1 - loss/2},
			ValLoss:    &v,
			ValMetrics: map[string]float64{"accuracy": 1 - v/2},
		})
	}
	return h
}

func TestLearningCurves(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "loss.png")
	require.NoError(t, LearningCurves(history(), path))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	path = filepath.Join(dir, "accuracy.png")
	require.NoError(t, LearningCurves(history(), path, "accuracy", "val_accuracy"))
}

func TestLearningCurvesRejects(t *testing.T) {
	dir := t.TempDir()
	assert.Error(t, LearningCurves(&sequential.History{}, filepath.Join(dir, "a.png")))
	assert.Error(t, LearningCurves(history(), filepath.Join(dir, "b.png"), "auc"))
}

func TestYLabel(t *testing.T) {
	assert.Equal(t, "Loss", ylabel([]string{"loss", "val_loss"}))
	assert.Equal(t, "Value", ylabel([]string{"loss", "accuracy"}))
}
