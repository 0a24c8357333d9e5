package trainer

import "os"

import "github.com/pkg/errors"

import "github.com/neurlang/imagenn/net/sequential"

// Resume loads the weights stored at path into a compiled model when resume is set.
// A missing file is not an error: the run starts from fresh weights.
func Resume(m *sequential.Model, resume bool, path string) (loaded bool, err error) {
	if !resume || path == "" {
		return false, nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err := m.LoadWeights(path); err != nil {
		return false, err
	}
	return true, nil
}
