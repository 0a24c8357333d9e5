package learning

import "math"

import "github.com/pkg/errors"

import "github.com/neurlang/imagenn/tensor"

// ErrUnknownLoss is returned for loss names outside the supported set
var ErrUnknownLoss = errors.New("unknown loss")

const clip = 1e-7

// Loss scores a batch of predictions against targets of the same shape
type Loss interface {
	Name() string

	// Compute returns the per-sample losses and the gradient of their mean w.r.t. pred
	Compute(pred, target *tensor.Tensor) (losses []float64, grad *tensor.Tensor)
}

// NewLoss resolves a loss identifier
func NewLoss(name string) (Loss, error) {
	switch name {
	case "categorical_crossentropy", "CategoricalCrossentropy":
		return CategoricalCrossentropy{}, nil
	case "mean_squared_error", "mse", "MeanSquaredError":
		return MeanSquaredError{}, nil
	}
	return nil, errors.Wrapf(ErrUnknownLoss, "%q", name)
}

// CategoricalCrossentropy is -sum(target * log(pred)) per sample, with pred clipped away from 0 and 1
type CategoricalCrossentropy struct{}

func (CategoricalCrossentropy) Name() string { return "categorical_crossentropy" }

func (CategoricalCrossentropy) Compute(pred, target *tensor.Tensor) ([]float64, *tensor.Tensor) {
	n := pred.Len()
	width := pred.SampleSize()
	losses := make([]float64, n)
	grad := tensor.New(pred.Shape())
	p := pred.Data()
	y := target.Data()
	g := grad.Data()
	for s := 0; s < n; s++ {
		for i := s * width; i < (s+1)*width; i++ {
			v := p[i]
			if v < clip {
				v = clip
			} else if v > 1-clip {
				v = 1 - clip
			}
			losses[s] -= y[i] * math.Log(v)
			g[i] = -y[i] / v / float64(n)
		}
	}
	return losses, grad
}

// MeanSquaredError is mean((pred - target)^2) per sample
type MeanSquaredError struct{}

func (MeanSquaredError) Name() string { return "mean_squared_error" }

func (MeanSquaredError) Compute(pred, target *tensor.Tensor) ([]float64, *tensor.Tensor) {
	n := pred.Len()
	width := pred.SampleSize()
	losses := make([]float64, n)
	grad := tensor.New(pred.Shape())
	p := pred.Data()
	y := target.Data()
	g := grad.Data()
	for s := 0; s < n; s++ {
		for i := s * width; i < (s+1)*width; i++ {
			d := p[i] - y[i]
			losses[s] += d * d / float64(width)
			g[i] = 2 * d / float64(width) / float64(n)
		}
	}
	return losses, grad
}
