// Package learning implements the optimizers, losses and metrics a model is compiled with
package learning

import "go.uber.org/zap"

// HyperParameters configure an optimizer. Zero fields take the defaults of the chosen optimizer.
type HyperParameters struct {
	LearningRate float64 `yaml:"learning_rate,omitempty" json:"learning_rate,omitempty"`

	Beta1   float64 `yaml:"beta_1,omitempty" json:"beta_1,omitempty"`   // adam first moment decay
	Beta2   float64 `yaml:"beta_2,omitempty" json:"beta_2,omitempty"`   // adam second moment decay
	Epsilon float64 `yaml:"epsilon,omitempty" json:"epsilon,omitempty"` // adam denominator fuzz

	Momentum float64 `yaml:"momentum,omitempty" json:"momentum,omitempty"` // sgd momentum

	l *zap.Logger
}

// SetLogger sets the logger receiving optimizer diagnostics
func (h *HyperParameters) SetLogger(l *zap.Logger) {
	h.l = l
}

func (h *HyperParameters) logger() *zap.Logger {
	if h.l == nil {
		return zap.NewNop()
	}
	return h.l
}

func (h HyperParameters) withDefaults(lr, beta1, beta2, eps float64) HyperParameters {
	if h.LearningRate == 0 {
		h.LearningRate = lr
	}
	if h.Beta1 == 0 {
		h.Beta1 = beta1
	}
	if h.Beta2 == 0 {
		h.Beta2 = beta2
	}
	if h.Epsilon == 0 {
		h.Epsilon = eps
	}
	return h
}
