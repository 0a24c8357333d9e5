// Package config describes a model, its compilation and its training run in YAML
package config

import "io"
import "os"
import "sort"

import "github.com/pkg/errors"
import "go.uber.org/zap"
import "gopkg.in/yaml.v3"

import "github.com/neurlang/imagenn/layer"
import "github.com/neurlang/imagenn/layer/batchnorm"
import "github.com/neurlang/imagenn/layer/conv2d"
import "github.com/neurlang/imagenn/layer/dense"
import "github.com/neurlang/imagenn/layer/flatten"
import "github.com/neurlang/imagenn/layer/maxpool2d"
import "github.com/neurlang/imagenn/learning"
import "github.com/neurlang/imagenn/net/sequential"

// ErrUnknownLayer is returned for layer types outside the supported set
var ErrUnknownLayer = errors.New("unknown layer type")

// Layer is one entry of the layer stack. Which fields apply depends on Type.
type Layer struct {
	Type       string  `yaml:"type"`
	Units      int     `yaml:"units,omitempty"`
	Filters    int     `yaml:"filters,omitempty"`
	KernelSize int     `yaml:"kernel_size,omitempty"`
	PoolSize   int     `yaml:"pool_size,omitempty"`
	Activation string  `yaml:"activation,omitempty"`
	InputShape []int   `yaml:"input_shape,omitempty,flow"`
	Momentum   float64 `yaml:"momentum,omitempty"`
	Epsilon    float64 `yaml:"epsilon,omitempty"`
}

// Compile names the optimizer, loss and metrics
type Compile struct {
	Optimizer string   `yaml:"optimizer"`
	Loss      string   `yaml:"loss"`
	Metrics   []string `yaml:"metrics,omitempty,flow"`
}

// Fit holds the training loop settings
type Fit struct {
	Epochs          int     `yaml:"epochs"`
	BatchSize       int     `yaml:"batch_size,omitempty"`
	ValidationSplit float64 `yaml:"validation_split,omitempty"`
	NoShuffle       bool    `yaml:"no_shuffle,omitempty"`
}

// Data selects the samples a run uses
type Data struct {
	Classes []int `yaml:"classes,omitempty,flow"` // labels kept and renumbered 0..n-1
	Train   int   `yaml:"train,omitempty"`        // training samples, 0 keeps all
	Test    int   `yaml:"test,omitempty"`         // test samples, 0 keeps all
}

// Config is a complete run description
type Config struct {
	Name            string                   `yaml:"name,omitempty"`
	Seed            int64                    `yaml:"seed,omitempty"`
	Layers          []Layer                  `yaml:"layers"`
	Compile         Compile                  `yaml:"compile"`
	HyperParameters learning.HyperParameters `yaml:"hyperparameters,omitempty"`
	Fit             Fit                      `yaml:"fit"`
	Data            Data                     `yaml:"data,omitempty"`
}

// Load reads a YAML config file
func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	c, err := Read(file)
	if err != nil {
		return nil, errors.Wrapf(err, "config %s", path)
	}
	return c, nil
}

// Read decodes a YAML config. Unknown keys are rejected.
func Read(r io.Reader) (*Config, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var c Config
	if err := dec.Decode(&c); err != nil {
		return nil, errors.Wrap(err, "decode")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Write encodes the config as YAML
func (c *Config) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return err
	}
	return enc.Close()
}

// Validate checks the parts of the config a model can not check at compile time
func (c *Config) Validate() error {
	if len(c.Layers) == 0 {
		return errors.New("config has no layers")
	}
	if len(c.Layers[0].InputShape) == 0 {
		return errors.New("first layer needs an input_shape")
	}
	if c.Compile.Optimizer == "" || c.Compile.Loss == "" {
		return errors.New("compile needs an optimizer and a loss")
	}
	if c.Fit.ValidationSplit < 0 || c.Fit.ValidationSplit >= 1 {
		return errors.Errorf("validation_split %g is outside [0, 1)", c.Fit.ValidationSplit)
	}
	return nil
}

// NewLayer turns a layer entry into a layer description
func (l Layer) NewLayer() (layer.Layer, error) {
	switch l.Type {
	case "dense", "Dense":
		return dense.New(l.Units, l.Activation, l.InputShape...)
	case "conv2d", "Conv2D":
		return conv2d.New(l.Filters, l.KernelSize, l.Activation, l.InputShape...)
	case "max_pooling2d", "maxpool2d", "MaxPool2D":
		return maxpool2d.New(l.PoolSize, l.InputShape...)
	case "batch_normalization", "batchnorm", "BatchNormalization":
		momentum, epsilon := l.Momentum, l.Epsilon
		if momentum == 0 {
			momentum = batchnorm.DefaultMomentum
		}
		if epsilon == 0 {
			epsilon = batchnorm.DefaultEpsilon
		}
		return batchnorm.NewWith(momentum, epsilon, l.InputShape...), nil
	case "flatten", "Flatten":
		return flatten.New(l.InputShape...), nil
	}
	return nil, errors.Wrapf(ErrUnknownLayer, "%q", l.Type)
}

// Build creates and compiles the model described by the config
func (c *Config) Build(l *zap.Logger) (*sequential.Model, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	m := sequential.New()
	if l != nil {
		m.SetLogger(l)
	}
	if c.Seed != 0 {
		m.SetSeed(c.Seed)
	}
	m.SetHyperParameters(c.HyperParameters)
	for i, entry := range c.Layers {
		ly, err := entry.NewLayer()
		if err != nil {
			return nil, errors.Wrapf(err, "layer %d", i)
		}
		if err := m.Add(ly); err != nil {
			return nil, err
		}
	}
	if err := m.Compile(c.Compile.Optimizer, c.Compile.Loss, c.Compile.Metrics...); err != nil {
		return nil, err
	}
	return m, nil
}

// FitOptions converts the fit section for sequential.Model.Fit
func (c *Config) FitOptions(runID string, callbacks ...sequential.Callback) sequential.FitOptions {
	return sequential.FitOptions{
		Epochs:          c.Fit.Epochs,
		BatchSize:       c.Fit.BatchSize,
		ValidationSplit: c.Fit.ValidationSplit,
		NoShuffle:       c.Fit.NoShuffle,
		RunID:           runID,
		Callbacks:       callbacks,
	}
}

// Classes is the number of output classes the data section selects, or 0 when it keeps all
func (c *Config) Classes() int {
	return len(c.Data.Classes)
}

// Presets lists the built-in config names
func Presets() []string {
	o := make([]string, 0, len(presets))
	for k := range presets {
		o = append(o, k)
	}
	sort.Strings(o)
	return o
}

// Preset returns a copy of a built-in config
func Preset(name string) (*Config, error) {
	f, ok := presets[name]
	if !ok {
		return nil, errors.Errorf("unknown preset %q, have %v", name, Presets())
	}
	return f(), nil
}
