package learning

import "github.com/pkg/errors"
import "gonum.org/v1/gonum/floats"

import "github.com/neurlang/imagenn/tensor"

// ErrUnknownMetric is returned for metric names outside the supported set
var ErrUnknownMetric = errors.New("unknown metric")

// Metric scores every sample of a batch
type Metric interface {
	// Name is the history key, such as "accuracy"
	Name() string

	Compute(pred, target *tensor.Tensor) []float64
}

// NewMetric resolves a metric identifier
func NewMetric(name string) (Metric, error) {
	switch name {
	case "accuracy", "acc", "categorical_accuracy":
		return Accuracy{}, nil
	}
	return nil, errors.Wrapf(ErrUnknownMetric, "%q", name)
}

// Accuracy is 1 when the highest scoring class of pred is the highest scoring class of target
type Accuracy struct{}

func (Accuracy) Name() string { return "accuracy" }

func (Accuracy) Compute(pred, target *tensor.Tensor) []float64 {
	o := make([]float64, pred.Len())
	for s := range o {
		if floats.MaxIdx(pred.Sample(s)) == floats.MaxIdx(target.Sample(s)) {
			o[s] = 1
		}
	}
	return o
}

// Argmax returns the index of the highest value of every sample
func Argmax(t *tensor.Tensor) []int {
	o := make([]int, t.Len())
	for s := range o {
		o[s] = floats.MaxIdx(t.Sample(s))
	}
	return o
}
