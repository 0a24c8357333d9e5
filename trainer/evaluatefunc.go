package trainer

import "math"
import "math/rand"

import "github.com/pkg/errors"
import "go.uber.org/zap"

import "github.com/neurlang/imagenn/net/sequential"
import "github.com/neurlang/imagenn/tensor"

// sampleSize calculates the statistically sufficient sample size
// for a given dataset size N and significance level (0–100).
func sampleSize(N int, significance byte) int {
	if significance >= 100 {
		return N
	}

	z := zScoreFromAlpha(100 - significance)

	// worst-case proportion
	p := 0.5
	e := float64(100-significance) * 0.01

	ss := math.Pow(z, 2) * p * (1 - p) / math.Pow(e, 2)

	// finite population correction
	corrected := ss * float64(N) / (float64(N) - 1 + ss)
	if int(corrected) > N {
		return N
	}
	return int(corrected)
}

// zScoreFromAlpha returns the Z-score for a given alpha level
// Common: 90% => 1.645, 95% => 1.96, 99% => 2.576
func zScoreFromAlpha(alpha byte) float64 {
	switch {
	case alpha <= 1:
		return 2.576
	case alpha <= 5:
		return 1.96
	case alpha <= 10:
		return 1.645
	default:
		return 1.96
	}
}

// NewEvaluateFunc returns a callback scoring the model on a random sample of a held
// out set after every epoch. The sample is just large enough for the significance
// level (95 means a 5% margin of error); 100 evaluates the whole set.
func NewEvaluateFunc(x, y *tensor.Tensor, significance byte, seed int64, l *zap.Logger) sequential.Callback {
	if l == nil {
		l = zap.NewNop()
	}
	r := rand.New(rand.NewSource(seed))
	return func(m *sequential.Model, e sequential.Epoch) error {
		n := sampleSize(x.Len(), significance)
		if n == 0 {
			return nil
		}
		index := r.Perm(x.Len())[:n]
		ev, err := m.Evaluate(x.Gather(index), y.Gather(index), 0)
		if err != nil {
			return err
		}
		fields := []zap.Field{zap.Int("epoch", e.Epoch), zap.Int("samples", n), zap.Float64("loss", ev.Loss)}
		for k, v := range ev.Metrics {
			fields = append(fields, zap.Float64(k, v))
		}
		l.Info("held out evaluation", fields...)
		return nil
	}
}

// NewCheckpointFunc returns a callback writing the model weights to path whenever
// the monitored value, such as "val_accuracy" or "val_loss", improves.
func NewCheckpointFunc(path, monitor string, l *zap.Logger) sequential.Callback {
	if l == nil {
		l = zap.NewNop()
	}
	var best float64
	var seen bool
	return func(m *sequential.Model, e sequential.Epoch) error {
		v, ok := value(e, monitor)
		if !ok {
			return errors.Errorf("checkpoint: %q is not in the epoch record", monitor)
		}
		if !better(monitor, v, best, !seen) {
			return nil
		}
		if err := m.SaveWeights(path); err != nil {
			return errors.Wrap(err, "checkpoint")
		}
		l.Info("checkpoint",
			zap.Int("epoch", e.Epoch),
			zap.Float64(monitor, v),
			zap.String("file", path),
		)
		best, seen = v, true
		return nil
	}
}
