package config

const (
	rows = 28
	cols = 28
)

func compile() Compile {
	return Compile{Optimizer: "adam", Loss: "categorical_crossentropy", Metrics: []string{"accuracy"}}
}

func threeClasses() Data {
	return Data{Classes: []int{0, 1, 2}, Train: 50, Test: 10}
}

var presets = map[string]func() *Config{
	// fully connected network on flattened images
	"mlp": func() *Config {
		return &Config{
			Name: "mlp",
			Layers: []Layer{
				{Type: "dense", Units: 10, Activation: "relu", InputShape: []int{rows * cols}},
				{Type: "dense", Units: 10, Activation: "relu"},
				{Type: "dense", Units: 3, Activation: "softmax"},
			},
			Compile: compile(),
			Fit:     Fit{Epochs: 3, ValidationSplit: 0.2},
			Data:    threeClasses(),
		}
	},
	"deep_cnn": func() *Config {
		return &Config{
			Name: "deep_cnn",
			Layers: []Layer{
				{Type: "conv2d", Filters: 15, KernelSize: 2, Activation: "relu", InputShape: []int{rows, cols, 1}},
				{Type: "conv2d", Filters: 5, KernelSize: 2, Activation: "relu"},
				{Type: "flatten"},
				{Type: "dense", Units: 3, Activation: "softmax"},
			},
			Compile: compile(),
			Fit:     Fit{Epochs: 3, BatchSize: 10, ValidationSplit: 0.2},
			Data:    threeClasses(),
		}
	},
	"pooling_cnn": func() *Config {
		return &Config{
			Name: "pooling_cnn",
			Layers: []Layer{
				{Type: "conv2d", Filters: 15, KernelSize: 2, Activation: "relu", InputShape: []int{rows, cols, 1}},
				{Type: "max_pooling2d", PoolSize: 2},
				{Type: "conv2d", Filters: 5, KernelSize: 2, Activation: "relu"},
				{Type: "flatten"},
				{Type: "dense", Units: 3, Activation: "softmax"},
			},
			Compile: compile(),
			Fit:     Fit{Epochs: 3, BatchSize: 10, ValidationSplit: 0.2},
			Data:    threeClasses(),
		}
	},
	"batchnorm_cnn": func() *Config {
		return &Config{
			Name: "batchnorm_cnn",
			Layers: []Layer{
				{Type: "conv2d", Filters: 15, KernelSize: 2, Activation: "relu", InputShape: []int{rows, cols, 1}},
				{Type: "batch_normalization"},
				{Type: "conv2d", Filters: 5, KernelSize: 2, Activation: "relu"},
				{Type: "flatten"},
				{Type: "dense", Units: 3, Activation: "softmax"},
			},
			Compile: compile(),
			Fit:     Fit{Epochs: 3, BatchSize: 10, ValidationSplit: 0.2},
			Data:    threeClasses(),
		}
	},
}
