package commands

import (
	"math"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/neurlang/imagenn/config"
	"github.com/neurlang/imagenn/datasets"
	"github.com/neurlang/imagenn/datasets/mnist"
	"github.com/neurlang/imagenn/datasets/synthetic"
	"github.com/neurlang/imagenn/net/sequential"
	"github.com/neurlang/imagenn/tensor"
)

// modelFlags select the model definition
type modelFlags struct {
	preset string
	file   string
	seed   int64
}

func (f *modelFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.preset, "preset", "mlp", "built-in model: mlp, deep_cnn, pooling_cnn, batchnorm_cnn")
	cmd.Flags().StringVar(&f.file, "config", "", "YAML model config, overrides --preset")
	cmd.Flags().Int64Var(&f.seed, "seed", 0, "weight and shuffle seed (default from config)")
}

func (f *modelFlags) config() (*config.Config, error) {
	var c *config.Config
	var err error
	if f.file != "" {
		c, err = config.Load(f.file)
	} else {
		c, err = config.Preset(f.preset)
	}
	if err != nil {
		return nil, err
	}
	if f.seed != 0 {
		c.Seed = f.seed
	}
	return c, nil
}

func (f *modelFlags) build() (*config.Config, *sequential.Model, error) {
	c, err := f.config()
	if err != nil {
		return nil, nil, err
	}
	m, err := c.Build(logger)
	if err != nil {
		return nil, nil, err
	}
	return c, m, nil
}

// dataFlags select the dataset
type dataFlags struct {
	dir    string
	verify bool
}

func (f *dataFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.dir, "data", "", "directory with MNIST style IDX files (default: synthetic images)")
	cmd.Flags().BoolVar(&f.verify, "verify", false, "check sha256 of the gzipped MNIST files")
}

const (
	syntheticTrain = 500
	syntheticTest  = 100
)

// load returns the train or test split shaped for the model input, with one-hot labels
func (f *dataFlags) load(c *config.Config, m *sequential.Model, train bool) (x, y *tensor.Tensor, labels []int, err error) {
	classes := m.OutputShape().Size()
	limit := c.Data.Test
	if train {
		limit = c.Data.Train
	}

	var s datasets.Set
	if f.dir == "" {
		rows, cols := imageSize(m.InputShape())
		n := limit
		if n == 0 {
			n = syntheticTest
			if train {
				n = syntheticTrain
			}
		}
		seed := c.Seed
		if !train {
			seed++
		}
		s = synthetic.Images(n, rows, cols, classes, seed)
	} else {
		s, err = mnist.Load(f.dir, train, mnist.Options{Verify: f.verify})
		if err != nil {
			return nil, nil, nil, err
		}
		if len(c.Data.Classes) > 0 {
			s = s.FilterClasses(c.Data.Classes)
		}
		if limit > 0 {
			s = s.Take(limit)
		}
	}
	if s.Len() == 0 {
		return nil, nil, nil, errors.Wrap(sequential.ErrEmptyDataset, "no samples selected")
	}

	s, err = s.Reshape(m.InputShape()...)
	if err != nil {
		return nil, nil, nil, errors.Wrapf(err, "images do not fit the model input %v", m.InputShape())
	}
	y, err = datasets.OneHot(s.Labels, classes)
	if err != nil {
		return nil, nil, nil, err
	}
	return s.X, y, s.Labels, nil
}

// imageSize guesses the picture behind a model input: (rows, cols, channels) or a
// flattened square
func imageSize(input tensor.Shape) (rows, cols int) {
	if len(input) == 3 {
		return input[0], input[1]
	}
	side := int(math.Sqrt(float64(input.Size())))
	if side*side == input.Size() {
		return side, side
	}
	return 1, input.Size()
}
