// Package datasets implements label encoding, class filtering and shuffling of image datasets
package datasets

import "math/rand"

import "github.com/pkg/errors"

import "github.com/neurlang/imagenn/tensor"

// Set is a batch of samples with integer class labels
type Set struct {
	X      *tensor.Tensor
	Labels []int
}

// Len is the number of samples
func (s Set) Len() int {
	return len(s.Labels)
}

// OneHot encodes labels as rows of a (len(labels), classes) tensor
func OneHot(labels []int, classes int) (*tensor.Tensor, error) {
	o := tensor.Zeros(len(labels), classes)
	for i, v := range labels {
		if v < 0 || v >= classes {
			return nil, errors.Errorf("label %d of sample %d is outside [0, %d)", v, i, classes)
		}
		o.Data()[i*classes+v] = 1
	}
	return o, nil
}

// Take keeps the first n samples
func (s Set) Take(n int) Set {
	if n > s.Len() {
		n = s.Len()
	}
	if n < 0 {
		n = 0
	}
	return Set{X: s.X.Rows(0, n), Labels: append([]int(nil), s.Labels[:n]...)}
}

// FilterClasses keeps the samples of the listed classes and renumbers them
// to their position in keep, so keep = {0, 3, 8} turns class 8 into class 2.
func (s Set) FilterClasses(keep []int) Set {
	var remap = make(map[int]int, len(keep))
	for i, c := range keep {
		remap[c] = i
	}
	var index, labels []int
	for i, v := range s.Labels {
		if c, ok := remap[v]; ok {
			index = append(index, i)
			labels = append(labels, c)
		}
	}
	return Set{X: s.X.Gather(index), Labels: labels}
}

// Shuffle returns the set in a random order given by seed
func (s Set) Shuffle(seed int64) Set {
	index := rand.New(rand.NewSource(seed)).Perm(s.Len())
	labels := make([]int, len(index))
	for i, k := range index {
		labels[i] = s.Labels[k]
	}
	return Set{X: s.X.Gather(index), Labels: labels}
}

// Reshape reshapes every sample, for example from (28, 28, 1) to 784
func (s Set) Reshape(sample ...int) (Set, error) {
	x, err := s.X.Reshape(append([]int{s.Len()}, sample...)...)
	if err != nil {
		return Set{}, err
	}
	return Set{X: x, Labels: s.Labels}, nil
}
