// Package tensor implements the dense row-major float64 arrays passed through the network
package tensor

import "fmt"

import "github.com/pkg/errors"

// ErrShapeMismatch is returned whenever two shapes which must agree do not
var ErrShapeMismatch = errors.New("shape mismatch")

// Shape is the list of axis sizes. Axis 0 is the sample axis for model inputs.
type Shape []int

// Size is the number of elements described by the shape. The empty shape is a scalar.
func (s Shape) Size() int {
	n := 1
	for _, v := range s {
		n *= v
	}
	return n
}

// Equal reports whether both shapes have identical axes
func (s Shape) Equal(o Shape) bool {
	if len(s) != len(o) {
		return false
	}
	for i := range s {
		if s[i] != o[i] {
			return false
		}
	}
	return true
}

// Clone copies the shape
func (s Shape) Clone() Shape {
	return append(Shape(nil), s...)
}

func (s Shape) String() string {
	return fmt.Sprint([]int(s))
}

// Tensor is a dense array in row-major order
type Tensor struct {
	shape Shape
	data  []float64
}

// Zeros allocates a zero filled tensor
func Zeros(shape ...int) *Tensor {
	s := Shape(shape).Clone()
	return &Tensor{shape: s, data: make([]float64, s.Size())}
}

// New allocates a zero filled tensor of shape s
func New(s Shape) *Tensor {
	return Zeros(s...)
}

// FromSlice wraps data (without copying) as a tensor of the given shape.
func FromSlice(data []float64, shape ...int) (*Tensor, error) {
	s := Shape(shape).Clone()
	if s.Size() != len(data) {
		return nil, errors.Wrapf(ErrShapeMismatch, "%d values cannot have shape %v", len(data), s)
	}
	return &Tensor{shape: s, data: data}, nil
}

// MustFromSlice is FromSlice that panics on error
func MustFromSlice(data []float64, shape ...int) *Tensor {
	t, err := FromSlice(data, shape...)
	if err != nil {
		panic(err.Error())
	}
	return t
}

// Shape returns a copy of the tensor shape
func (t *Tensor) Shape() Shape {
	return t.shape.Clone()
}

// Rank returns the number of axes
func (t *Tensor) Rank() int {
	return len(t.shape)
}

// Dim returns the size of axis n
func (t *Tensor) Dim(n int) int {
	return t.shape[n]
}

// Len returns the number of samples (size of axis 0)
func (t *Tensor) Len() int {
	if len(t.shape) == 0 {
		return 0
	}
	return t.shape[0]
}

// Size returns the number of elements
func (t *Tensor) Size() int {
	return len(t.data)
}

// Data exposes the backing slice. Writes are visible through the tensor.
func (t *Tensor) Data() []float64 {
	return t.data
}

// Offset computes the flat position of the index
func (t *Tensor) Offset(index ...int) int {
	if len(index) != len(t.shape) {
		panic(fmt.Sprintf("tensor: index %v has wrong rank for shape %v", index, t.shape))
	}
	var off int
	for i, v := range index {
		if v < 0 || v >= t.shape[i] {
			panic(fmt.Sprintf("tensor: index %v out of range for shape %v", index, t.shape))
		}
		off = off*t.shape[i] + v
	}
	return off
}

// At reads one element
func (t *Tensor) At(index ...int) float64 {
	return t.data[t.Offset(index...)]
}

// Set writes one element
func (t *Tensor) Set(v float64, index ...int) {
	t.data[t.Offset(index...)] = v
}

// Reshape returns a tensor sharing the data under a new shape. One axis may be -1
// and is inferred from the remaining ones.
func (t *Tensor) Reshape(shape ...int) (*Tensor, error) {
	s := Shape(shape).Clone()
	infer := -1
	known := 1
	for i, v := range s {
		if v == -1 {
			if infer != -1 {
				return nil, errors.Wrapf(ErrShapeMismatch, "more than one inferred axis in %v", s)
			}
			infer = i
			continue
		}
		known *= v
	}
	if infer != -1 {
		if known == 0 || len(t.data)%known != 0 {
			return nil, errors.Wrapf(ErrShapeMismatch, "cannot reshape %v into %v", t.shape, s)
		}
		s[infer] = len(t.data) / known
	}
	if s.Size() != len(t.data) {
		return nil, errors.Wrapf(ErrShapeMismatch, "cannot reshape %v into %v", t.shape, s)
	}
	return &Tensor{shape: s, data: t.data}, nil
}

// Rows copies samples [i, j) into a new tensor
func (t *Tensor) Rows(i, j int) *Tensor {
	if i < 0 {
		i = 0
	}
	if j > t.Len() {
		j = t.Len()
	}
	if j < i {
		j = i
	}
	stride := t.SampleSize()
	s := t.shape.Clone()
	s[0] = j - i
	data := make([]float64, (j-i)*stride)
	copy(data, t.data[i*stride:j*stride])
	return &Tensor{shape: s, data: data}
}

// Gather copies the listed samples, in order, into a new tensor
func (t *Tensor) Gather(index []int) *Tensor {
	stride := t.SampleSize()
	s := t.shape.Clone()
	s[0] = len(index)
	data := make([]float64, len(index)*stride)
	for n, k := range index {
		copy(data[n*stride:(n+1)*stride], t.data[k*stride:(k+1)*stride])
	}
	return &Tensor{shape: s, data: data}
}

// Sample returns the backing slice of sample n
func (t *Tensor) Sample(n int) []float64 {
	stride := t.SampleSize()
	return t.data[n*stride : (n+1)*stride]
}

// SampleSize is the number of elements of a single sample
func (t *Tensor) SampleSize() int {
	if len(t.shape) == 0 {
		return 1
	}
	return Shape(t.shape[1:]).Size()
}

// Clone deep copies the tensor
func (t *Tensor) Clone() *Tensor {
	return &Tensor{shape: t.shape.Clone(), data: append([]float64(nil), t.data...)}
}

// Fill sets all elements to v
func (t *Tensor) Fill(v float64) {
	for i := range t.data {
		t.data[i] = v
	}
}

// Equal reports whether both tensors have the same shape and values
func (t *Tensor) Equal(o *Tensor) bool {
	if !t.shape.Equal(o.shape) {
		return false
	}
	for i := range t.data {
		if t.data[i] != o.data[i] {
			return false
		}
	}
	return true
}
