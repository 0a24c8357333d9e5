// Package synthetic generates small separable image classification datasets
package synthetic

import "math/rand"

import "github.com/neurlang/imagenn/datasets"
import "github.com/neurlang/imagenn/tensor"

// Images draws n grayscale (rows, cols, 1) images. The image of class c has a bright
// square in the c-th vertical band of the image over a dim noisy background. Images
// narrower than the class count encode the class as the brightness of the whole image.
func Images(n, rows, cols, classes int, seed int64) datasets.Set {
	r := rand.New(rand.NewSource(seed))
	x := tensor.Zeros(n, rows, cols, 1)
	labels := make([]int, n)
	if classes < 1 {
		classes = 1
	}
	band := cols / classes
	if band < 1 {
		for s := 0; s < n; s++ {
			c := r.Intn(classes)
			labels[s] = c
			level := (float64(c) + 0.5) / float64(classes)
			img := x.Sample(s)
			for i := range img {
				img[i] = level + (r.Float64()-0.5)*0.2/float64(classes)
			}
		}
		return datasets.Set{X: x, Labels: labels}
	}
	side := band / 2
	if side < 1 {
		side = 1
	}
	if side > rows {
		side = rows
	}
	for s := 0; s < n; s++ {
		img := x.Sample(s)
		for i := range img {
			img[i] = 0.1 * r.Float64()
		}
		c := r.Intn(classes)
		labels[s] = c
		top := r.Intn(rows - side + 1)
		left := c*band + r.Intn(band-side+1)
		for i := top; i < top+side; i++ {
			for j := left; j < left+side; j++ {
				img[i*cols+j] = 0.8 + 0.2*r.Float64()
			}
		}
	}
	return datasets.Set{X: x, Labels: labels}
}
