// Package sequential implements a model made of a linear stack of layers
package sequential

import "fmt"
import "io"
import "math/rand"
import "text/tabwriter"

import "github.com/pkg/errors"
import "go.uber.org/zap"

import "github.com/neurlang/imagenn/hash"
import "github.com/neurlang/imagenn/layer"
import "github.com/neurlang/imagenn/learning"
import "github.com/neurlang/imagenn/tensor"

var (
	// ErrNotCompiled is returned by operations which need a compiled model
	ErrNotCompiled = errors.New("model is not compiled")

	// ErrCompiled is returned when the structure of a compiled model would change
	ErrCompiled = errors.New("model is already compiled")

	// ErrEmptyDataset is returned when there are no samples to train on
	ErrEmptyDataset = errors.New("empty dataset")

	// ErrShapeMismatch is tensor.ErrShapeMismatch, re-exported for callers of this package
	ErrShapeMismatch = tensor.ErrShapeMismatch
)

// Model is a sequential network: layers are appended, then the model is compiled,
// trained or loaded, and used for evaluation and prediction. A Model is not safe
// for concurrent use.
type Model struct {
	layers    []layer.Layer
	combiners []layer.Combiner
	names     []string

	input, output tensor.Shape

	hyper     learning.HyperParameters
	optimizer learning.Optimizer
	loss      learning.Loss
	metrics   []learning.Metric

	seed int64
	rng  *rand.Rand

	l *zap.Logger
}

// New creates a model from layers
func New(layers ...layer.Layer) *Model {
	m := &Model{seed: 1}
	m.layers = append(m.layers, layers...)
	return m
}

// SetLogger sets the logger receiving training progress
func (m *Model) SetLogger(l *zap.Logger) {
	m.l = l
	m.hyper.SetLogger(l)
}

func (m *Model) logger() *zap.Logger {
	if m.l == nil {
		return zap.NewNop()
	}
	return m.l
}

// SetSeed sets the seed of weight initialization and epoch shuffling. Call before Compile.
func (m *Model) SetSeed(seed int64) {
	m.seed = seed
}

// SetHyperParameters configures the optimizer chosen at Compile
func (m *Model) SetHyperParameters(h learning.HyperParameters) {
	h.SetLogger(m.l)
	m.hyper = h
}

// Add appends a layer. The structure is fixed once the model is compiled.
func (m *Model) Add(l layer.Layer) error {
	if m.Compiled() {
		return errors.Wrapf(ErrCompiled, "cannot add %s", l.Name())
	}
	m.layers = append(m.layers, l)
	return nil
}

// MustAdd is Add that panics on error
func (m *Model) MustAdd(l layer.Layer) {
	if err := m.Add(l); err != nil {
		panic(err.Error())
	}
}

// Len returns the number of layers
func (m *Model) Len() int {
	return len(m.layers)
}

// Compiled reports whether Compile succeeded
func (m *Model) Compiled() bool {
	return m.combiners != nil
}

// InputShape is the per-sample input shape, known after Compile
func (m *Model) InputShape() tensor.Shape {
	return m.input.Clone()
}

// OutputShape is the per-sample output shape, known after Compile
func (m *Model) OutputShape() tensor.Shape {
	return m.output.Clone()
}

// LayerName returns the unique name of layer n, such as "dense_1"
func (m *Model) LayerName(n int) string {
	return m.names[n]
}

// Compile binds an optimizer, a loss and metrics, infers every layer shape and
// initializes the weights.
func (m *Model) Compile(optimizer, loss string, metrics ...string) (err error) {
	if m.Compiled() {
		return ErrCompiled
	}
	if len(m.layers) == 0 {
		return errors.New("model has no layers")
	}
	first := m.layers[0].InputShape()
	if len(first) == 0 {
		return errors.Wrapf(ErrShapeMismatch, "first layer %s declares no input shape", m.layers[0].Name())
	}

	o, err := learning.NewOptimizer(optimizer, m.hyper)
	if err != nil {
		return err
	}
	lo, err := learning.NewLoss(loss)
	if err != nil {
		return err
	}
	var me []learning.Metric
	for _, name := range metrics {
		mt, err := learning.NewMetric(name)
		if err != nil {
			return err
		}
		me = append(me, mt)
	}

	var combiners = make([]layer.Combiner, 0, len(m.layers))
	var names = make([]string, 0, len(m.layers))
	var counts = make(map[string]int)
	shape := first.Clone()
	for i, l := range m.layers {
		if declared := l.InputShape(); i > 0 && len(declared) > 0 && !declared.Equal(shape) {
			return errors.Wrapf(ErrShapeMismatch, "layer %d (%s) declares input %v but receives %v", i, l.Name(), declared, shape)
		}
		r := rand.New(rand.NewSource(hash.Seed(m.seed, i)))
		c, err := l.Lay(shape, r)
		if err != nil {
			return errors.Wrapf(err, "layer %d (%s)", i, l.Name())
		}
		combiners = append(combiners, c)
		name := l.Name()
		if counts[name] > 0 {
			name = fmt.Sprintf("%s_%d", name, counts[name])
		}
		counts[l.Name()]++
		names = append(names, name)
		shape = c.OutputShape()
	}

	m.combiners = combiners
	m.names = names
	m.input = first.Clone()
	m.output = shape
	m.optimizer, m.loss, m.metrics = o, lo, me
	m.rng = rand.New(rand.NewSource(m.seed))

	trainable, fixed := m.CountParams()
	m.logger().Info("compiled",
		zap.String("optimizer", o.Name()),
		zap.String("loss", lo.Name()),
		zap.Strings("metrics", m.MetricNames()),
		zap.Int("trainable_params", trainable),
		zap.Int("non_trainable_params", fixed),
	)
	return nil
}

// MustCompile is Compile that panics on error
func (m *Model) MustCompile(optimizer, loss string, metrics ...string) {
	if err := m.Compile(optimizer, loss, metrics...); err != nil {
		panic(err.Error())
	}
}

// MetricNames lists the history keys of the compiled metrics
func (m *Model) MetricNames() (o []string) {
	for _, mt := range m.metrics {
		o = append(o, mt.Name())
	}
	return
}

// Params lists all parameters of all layers
func (m *Model) Params() (o []*layer.Param) {
	for _, c := range m.combiners {
		o = append(o, c.Params()...)
	}
	return
}

// CountParams counts trainable and non-trainable parameter values
func (m *Model) CountParams() (trainable, fixed int) {
	return layer.CountParams(m.Params())
}

// Summary writes the layer table with output shapes and parameter counts
func (m *Model) Summary(w io.Writer) error {
	if !m.Compiled() {
		return ErrNotCompiled
	}
	tw := tabwriter.NewWriter(w, 0, 4, 3, ' ', 0)
	fmt.Fprintln(tw, "Layer (type)\tOutput Shape\tParam #")
	for i, c := range m.combiners {
		t, f := layer.CountParams(c.Params())
		fmt.Fprintf(tw, "%s (%s)\t%s\t%d\n", m.names[i], m.layers[i].Name(), shapeString(c.OutputShape()), t+f)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	trainable, fixed := m.CountParams()
	_, err := fmt.Fprintf(w, "Total params: %d\nTrainable params: %d\nNon-trainable params: %d\n",
		trainable+fixed, trainable, fixed)
	return err
}

func shapeString(s tensor.Shape) string {
	o := "(None"
	for _, v := range s {
		o += fmt.Sprintf(", %d", v)
	}
	return o + ")"
}

// checkInput rejects arrays whose per-sample shape differs from the model input
func (m *Model) checkInput(x *tensor.Tensor) error {
	if x.Rank() == 0 || !tensor.Shape(x.Shape()[1:]).Equal(m.input) {
		return errors.Wrapf(ErrShapeMismatch, "model expects input (None, %v), got %v", m.input, x.Shape())
	}
	return nil
}

// checkTarget rejects labels whose shape differs from the model output or whose count differs from x
func (m *Model) checkTarget(x, y *tensor.Tensor) error {
	if y.Rank() == 0 || !tensor.Shape(y.Shape()[1:]).Equal(m.output) {
		return errors.Wrapf(ErrShapeMismatch, "model output is (None, %v), labels are %v", m.output, y.Shape())
	}
	if x.Len() != y.Len() {
		return errors.Wrapf(ErrShapeMismatch, "%d samples but %d labels", x.Len(), y.Len())
	}
	return nil
}

func (m *Model) forward(x *tensor.Tensor, training bool) *tensor.Tensor {
	for _, c := range m.combiners {
		x = c.Forward(x, training)
	}
	return x
}

func (m *Model) backward(grad *tensor.Tensor) {
	for i := len(m.combiners) - 1; i >= 0; i-- {
		grad = m.combiners[i].Backward(grad)
	}
}
