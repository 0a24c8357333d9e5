package sequential

import "github.com/pkg/errors"
import "go.uber.org/zap"

import "github.com/neurlang/imagenn/tensor"

// DefaultBatchSize is used when FitOptions.BatchSize or an evaluation batch size is zero
const DefaultBatchSize = 32

// ErrStopTraining can be returned by a Callback to end Fit after the current epoch without error
var ErrStopTraining = errors.New("stop training")

// Callback runs after every epoch with the epoch record
type Callback func(m *Model, e Epoch) error

// FitOptions control Fit
type FitOptions struct {
	Epochs          int
	BatchSize       int
	ValidationSplit float64 // fraction of samples, taken from the end, held out for validation
	NoShuffle       bool    // keep the training order instead of shuffling every epoch
	RunID           string
	Callbacks       []Callback
}

// Fit trains the model on x and one-hot labels y
func (m *Model) Fit(x, y *tensor.Tensor, o FitOptions) (*History, error) {
	if !m.Compiled() {
		return nil, ErrNotCompiled
	}
	if err := m.checkInput(x); err != nil {
		return nil, err
	}
	if err := m.checkTarget(x, y); err != nil {
		return nil, err
	}
	if o.ValidationSplit < 0 || o.ValidationSplit >= 1 {
		return nil, errors.Errorf("validation split %g is outside [0, 1)", o.ValidationSplit)
	}
	if o.Epochs <= 0 {
		o.Epochs = 1
	}
	if o.BatchSize <= 0 {
		o.BatchSize = DefaultBatchSize
	}

	n := x.Len()
	split := int(float64(n) * (1 - o.ValidationSplit))
	if split <= 0 {
		return nil, errors.Wrapf(ErrEmptyDataset, "%d samples with validation split %g", n, o.ValidationSplit)
	}
	xTrain, yTrain := x.Rows(0, split), y.Rows(0, split)
	var xVal, yVal *tensor.Tensor
	if split < n {
		xVal, yVal = x.Rows(split, n), y.Rows(split, n)
	}

	log := m.logger().With(zap.String("run", o.RunID))
	log.Info("fit",
		zap.Int("train_samples", split),
		zap.Int("validation_samples", n-split),
		zap.Int("epochs", o.Epochs),
		zap.Int("batch_size", o.BatchSize),
	)

	h := &History{RunID: o.RunID}
	params := m.Params()
	for epoch := 0; epoch < o.Epochs; epoch++ {
		order := m.order(split, !o.NoShuffle)

		var lossSum float64
		metricSum := make([]float64, len(m.metrics))
		for start := 0; start < split; start += o.BatchSize {
			end := start + o.BatchSize
			if end > split {
				end = split
			}
			bx := xTrain.Gather(order[start:end])
			by := yTrain.Gather(order[start:end])

			pred := m.forward(bx, true)
			losses, grad := m.loss.Compute(pred, by)
			for _, v := range losses {
				lossSum += v
			}
			for i, mt := range m.metrics {
				for _, v := range mt.Compute(pred, by) {
					metricSum[i] += v
				}
			}
			m.backward(grad)
			m.optimizer.Step(params)
		}

		e := Epoch{Epoch: epoch + 1, Loss: lossSum / float64(split), Metrics: map[string]float64{}}
		for i, mt := range m.metrics {
			e.Metrics[mt.Name()] = metricSum[i] / float64(split)
		}
		if xVal != nil {
			ev := m.evaluate(xVal, yVal, o.BatchSize)
			e.ValLoss = &ev.Loss
			e.ValMetrics = ev.Metrics
		}
		h.Epochs = append(h.Epochs, e)

		fields := []zap.Field{zap.Int("epoch", e.Epoch), zap.Int("of", o.Epochs), zap.Float64("loss", e.Loss)}
		for k, v := range e.Metrics {
			fields = append(fields, zap.Float64(k, v))
		}
		if e.ValLoss != nil {
			fields = append(fields, zap.Float64("val_loss", *e.ValLoss))
			for k, v := range e.ValMetrics {
				fields = append(fields, zap.Float64("val_"+k, v))
			}
		}
		log.Info("epoch", fields...)

		for _, cb := range o.Callbacks {
			if err := cb(m, e); err != nil {
				if errors.Is(err, ErrStopTraining) {
					log.Info("training stopped", zap.Int("epoch", e.Epoch))
					return h, nil
				}
				return h, errors.Wrapf(err, "epoch %d callback", e.Epoch)
			}
		}
	}
	return h, nil
}

// order is the sample order of one epoch
func (m *Model) order(n int, shuffle bool) []int {
	o := make([]int, n)
	for i := range o {
		o[i] = i
	}
	if shuffle {
		m.rng.Shuffle(n, func(i, j int) { o[i], o[j] = o[j], o[i] })
	}
	return o
}
