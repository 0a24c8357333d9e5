// Package layer defines the layer description and combiner interfaces shared by all layer kinds
package layer

import "math"
import "math/rand"

import "github.com/neurlang/imagenn/tensor"

// Layer is the layer description which can be used for instantiating a combiner
type Layer interface {

	// Name is the kind of the layer, such as "dense" or "conv2d"
	Name() string

	// InputShape is the per-sample input shape declared on the layer, nil when it is inferred
	// from the previous layer
	InputShape() tensor.Shape

	// Lay creates a combiner for the per-sample input shape, initializing its weights from r
	Lay(input tensor.Shape, r *rand.Rand) (Combiner, error)
}

// GlorotUniform fills t with samples from U(-limit, limit), limit = sqrt(6 / (fanIn + fanOut))
func GlorotUniform(t *tensor.Tensor, fanIn, fanOut int, r *rand.Rand) {
	limit := math.Sqrt(6 / float64(fanIn+fanOut))
	data := t.Data()
	for i := range data {
		data[i] = (2*r.Float64() - 1) * limit
	}
}
