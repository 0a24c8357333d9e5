// Package inference turns model outputs into class predictions
package inference

import "strconv"

import "github.com/pkg/errors"
import "gonum.org/v1/gonum/floats"

import "github.com/neurlang/imagenn/tensor"

// Model is the part of a trained network inference needs
type Model interface {
	Predict(x *tensor.Tensor, batchSize int) (*tensor.Tensor, error)
}

// Prediction is the outcome for one sample
type Prediction struct {
	Class      int                `json:"class"`
	Label      string             `json:"label,omitempty"`
	Confidence float64            `json:"confidence"`
	Scores     map[string]float64 `json:"scores"`
}

// Classify predicts every sample of x. Labels name the output units; when nil the
// unit index is used as its name.
func Classify(m Model, x *tensor.Tensor, labels []string) ([]Prediction, error) {
	out, err := m.Predict(x, 0)
	if err != nil {
		return nil, err
	}
	width := out.SampleSize()
	if labels != nil && len(labels) != width {
		return nil, errors.Wrapf(tensor.ErrShapeMismatch, "%d labels for %d outputs", len(labels), width)
	}
	o := make([]Prediction, out.Len())
	for s := range o {
		scores := out.Sample(s)
		best := floats.MaxIdx(scores)
		p := Prediction{Class: best, Confidence: scores[best], Scores: make(map[string]float64, width)}
		for i, v := range scores {
			p.Scores[name(labels, i)] = v
		}
		if labels != nil {
			p.Label = labels[best]
		}
		o[s] = p
	}
	return o, nil
}

// Infer returns the winning class of a single sample
func Infer(m Model, sample *tensor.Tensor) (int, error) {
	x, err := sample.Reshape(append([]int{1}, sample.Shape()...)...)
	if err != nil {
		return 0, err
	}
	p, err := Classify(m, x, nil)
	if err != nil {
		return 0, err
	}
	return p[0].Class, nil
}

func name(labels []string, i int) string {
	if labels != nil {
		return labels[i]
	}
	return strconv.Itoa(i)
}
