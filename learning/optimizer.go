package learning

import "math"

import "github.com/pkg/errors"
import "go.uber.org/zap"

import "github.com/neurlang/imagenn/layer"

// ErrUnknownOptimizer is returned for optimizer names outside the supported set
var ErrUnknownOptimizer = errors.New("unknown optimizer")

// Optimizer updates trainable parameters in place from their gradients
type Optimizer interface {
	Name() string

	// Step applies one update to every trainable parameter of params
	Step(params []*layer.Param)
}

// NewOptimizer resolves an optimizer identifier such as "adam" or "sgd"
func NewOptimizer(name string, h HyperParameters) (Optimizer, error) {
	switch name {
	case "adam", "Adam":
		h = h.withDefaults(0.001, 0.9, 0.999, 1e-7)
		h.logger().Debug("optimizer", zap.String("name", "adam"), zap.Float64("learning_rate", h.LearningRate))
		return &Adam{h: h, m: map[*layer.Param][]float64{}, v: map[*layer.Param][]float64{}}, nil
	case "sgd", "SGD":
		h = h.withDefaults(0.01, 0, 0, 0)
		h.logger().Debug("optimizer", zap.String("name", "sgd"), zap.Float64("learning_rate", h.LearningRate))
		return &SGD{h: h, velocity: map[*layer.Param][]float64{}}, nil
	}
	return nil, errors.Wrapf(ErrUnknownOptimizer, "%q", name)
}

// Adam is the adaptive moment estimation optimizer
type Adam struct {
	h    HyperParameters
	t    int
	m, v map[*layer.Param][]float64
}

func (a *Adam) Name() string { return "adam" }

func (a *Adam) Step(params []*layer.Param) {
	a.t++
	lr := a.h.LearningRate * math.Sqrt(1-math.Pow(a.h.Beta2, float64(a.t))) / (1 - math.Pow(a.h.Beta1, float64(a.t)))
	for _, p := range params {
		if !p.Trainable() {
			continue
		}
		w := p.Value.Data()
		g := p.Grad.Data()
		m, ok := a.m[p]
		if !ok {
			m = make([]float64, len(w))
			a.m[p] = m
			a.v[p] = make([]float64, len(w))
		}
		v := a.v[p]
		for i := range w {
			m[i] = a.h.Beta1*m[i] + (1-a.h.Beta1)*g[i]
			v[i] = a.h.Beta2*v[i] + (1-a.h.Beta2)*g[i]*g[i]
			w[i] -= lr * m[i] / (math.Sqrt(v[i]) + a.h.Epsilon)
		}
	}
}

// SGD is stochastic gradient descent with optional momentum
type SGD struct {
	h        HyperParameters
	velocity map[*layer.Param][]float64
}

func (s *SGD) Name() string { return "sgd" }

func (s *SGD) Step(params []*layer.Param) {
	for _, p := range params {
		if !p.Trainable() {
			continue
		}
		w := p.Value.Data()
		g := p.Grad.Data()
		if s.h.Momentum == 0 {
			for i := range w {
				w[i] -= s.h.LearningRate * g[i]
			}
			continue
		}
		vel, ok := s.velocity[p]
		if !ok {
			vel = make([]float64, len(w))
			s.velocity[p] = vel
		}
		for i := range w {
			vel[i] = s.h.Momentum*vel[i] - s.h.LearningRate*g[i]
			w[i] += vel[i]
		}
	}
}
