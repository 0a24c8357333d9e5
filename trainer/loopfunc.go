package trainer

import "go.uber.org/zap"

import "github.com/neurlang/imagenn/net/sequential"

// NewEarlyStoppingFunc returns a callback ending Fit once the monitored value has
// not improved for patience epochs in a row.
func NewEarlyStoppingFunc(monitor string, patience int, l *zap.Logger) sequential.Callback {
	if l == nil {
		l = zap.NewNop()
	}
	if patience < 1 {
		patience = 1
	}
	var best float64
	var seen bool
	var stale int
	return func(_ *sequential.Model, e sequential.Epoch) error {
		v, ok := value(e, monitor)
		if !ok {
			return nil
		}
		if better(monitor, v, best, !seen) {
			best, seen, stale = v, true, 0
			return nil
		}
		stale++
		if stale >= patience {
			l.Info("local minimum, stopping",
				zap.Int("epoch", e.Epoch),
				zap.String("monitor", monitor),
				zap.Float64("best", best),
			)
			return sequential.ErrStopTraining
		}
		return nil
	}
}
