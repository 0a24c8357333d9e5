package sequential

import "encoding/json"
import "os"
import "sort"

// Epoch is the record of one pass over the training data
type Epoch struct {
	Epoch      int                `json:"epoch"`
	Loss       float64            `json:"loss"`
	Metrics    map[string]float64 `json:"metrics,omitempty"`
	ValLoss    *float64           `json:"val_loss,omitempty"`
	ValMetrics map[string]float64 `json:"val_metrics,omitempty"`
}

// History is the per-epoch record returned by Fit
type History struct {
	RunID  string  `json:"run_id,omitempty"`
	Epochs []Epoch `json:"epochs"`
}

// Series returns the values of key per epoch. Keys are "loss", "val_loss", a metric
// name such as "accuracy", or a metric name prefixed with "val_". Epochs without the
// value are skipped.
func (h *History) Series(key string) (o []float64) {
	for _, e := range h.Epochs {
		switch {
		case key == "loss":
			o = append(o, e.Loss)
		case key == "val_loss":
			if e.ValLoss != nil {
				o = append(o, *e.ValLoss)
			}
		case len(key) > 4 && key[:4] == "val_":
			if v, ok := e.ValMetrics[key[4:]]; ok {
				o = append(o, v)
			}
		default:
			if v, ok := e.Metrics[key]; ok {
				o = append(o, v)
			}
		}
	}
	return
}

// Keys lists the series available in the history
func (h *History) Keys() []string {
	if len(h.Epochs) == 0 {
		return nil
	}
	e := h.Epochs[0]
	var metrics []string
	for k := range e.Metrics {
		metrics = append(metrics, k)
	}
	sort.Strings(metrics)
	o := []string{"loss"}
	o = append(o, metrics...)
	if e.ValLoss != nil {
		o = append(o, "val_loss")
		for _, k := range metrics {
			if _, ok := e.ValMetrics[k]; ok {
				o = append(o, "val_"+k)
			}
		}
	}
	return o
}

// Last returns the final epoch record
func (h *History) Last() (Epoch, bool) {
	if len(h.Epochs) == 0 {
		return Epoch{}, false
	}
	return h.Epochs[len(h.Epochs)-1], true
}

// WriteFile stores the history as JSON
func (h *History) WriteFile(name string) error {
	data, err := json.MarshalIndent(h, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(name, data, 0o644)
}

// ReadHistoryFile loads a history stored by WriteFile
func ReadHistoryFile(name string) (*History, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	var h History
	if err := json.Unmarshal(data, &h); err != nil {
		return nil, err
	}
	return &h, nil
}
