package sequential

import "github.com/neurlang/imagenn/tensor"

// Evaluation is the loss and metric values aggregated over all evaluated samples
type Evaluation struct {
	Loss    float64            `json:"loss"`
	Metrics map[string]float64 `json:"metrics"`
}

// Evaluate computes the loss and metrics of the model on x and one-hot labels y.
// It does not change the model.
func (m *Model) Evaluate(x, y *tensor.Tensor, batchSize int) (Evaluation, error) {
	if !m.Compiled() {
		return Evaluation{}, ErrNotCompiled
	}
	if err := m.checkInput(x); err != nil {
		return Evaluation{}, err
	}
	if err := m.checkTarget(x, y); err != nil {
		return Evaluation{}, err
	}
	if x.Len() == 0 {
		return Evaluation{}, ErrEmptyDataset
	}
	return m.evaluate(x, y, batchSize), nil
}

func (m *Model) evaluate(x, y *tensor.Tensor, batchSize int) Evaluation {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	n := x.Len()
	var lossSum float64
	metricSum := make([]float64, len(m.metrics))
	for start := 0; start < n; start += batchSize {
		end := start + batchSize
		if end > n {
			end = n
		}
		by := y.Rows(start, end)
		pred := m.forward(x.Rows(start, end), false)
		losses, _ := m.loss.Compute(pred, by)
		for _, v := range losses {
			lossSum += v
		}
		for i, mt := range m.metrics {
			for _, v := range mt.Compute(pred, by) {
				metricSum[i] += v
			}
		}
	}
	ev := Evaluation{Loss: lossSum / float64(n), Metrics: map[string]float64{}}
	for i, mt := range m.metrics {
		ev.Metrics[mt.Name()] = metricSum[i] / float64(n)
	}
	return ev
}

// Predict returns the model output for every sample of x
func (m *Model) Predict(x *tensor.Tensor, batchSize int) (*tensor.Tensor, error) {
	if !m.Compiled() {
		return nil, ErrNotCompiled
	}
	if err := m.checkInput(x); err != nil {
		return nil, err
	}
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	n := x.Len()
	out := tensor.New(append(tensor.Shape{n}, m.output...))
	stride := out.SampleSize()
	for start := 0; start < n; start += batchSize {
		end := start + batchSize
		if end > n {
			end = n
		}
		pred := m.forward(x.Rows(start, end), false)
		copy(out.Data()[start*stride:end*stride], pred.Data())
	}
	return out, nil
}
