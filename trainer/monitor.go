package trainer

import "strings"

import "github.com/neurlang/imagenn/net/sequential"

// value reads the monitored quantity from an epoch record. When the run has no
// validation data a "val_" key falls back to the training value.
func value(e sequential.Epoch, monitor string) (float64, bool) {
	switch monitor {
	case "loss":
		return e.Loss, true
	case "val_loss":
		if e.ValLoss != nil {
			return *e.ValLoss, true
		}
		return e.Loss, true
	}
	if name, ok := strings.CutPrefix(monitor, "val_"); ok {
		if v, ok := e.ValMetrics[name]; ok {
			return v, true
		}
		monitor = name
	}
	v, ok := e.Metrics[monitor]
	return v, ok
}

// better reports whether v improves on best. Losses decrease, metrics increase.
func better(monitor string, v, best float64, first bool) bool {
	if first {
		return true
	}
	if strings.HasSuffix(monitor, "loss") {
		return v < best
	}
	return v > best
}
