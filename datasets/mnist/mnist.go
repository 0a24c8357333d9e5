// Package mnist reads MNIST style IDX image and label files, optionally gzipped
package mnist

import "bytes"
import "compress/gzip"
import "crypto/sha256"
import "encoding/binary"
import "fmt"
import "io"
import "os"
import "path/filepath"

import "github.com/pkg/errors"
import "golang.org/x/sync/errgroup"

import "github.com/neurlang/imagenn/datasets"
import "github.com/neurlang/imagenn/tensor"

const (
	imagesMagic = 0x00000803
	labelsMagic = 0x00000801
)

const inferSetImg = "t10k-images-idx3-ubyte"
const inferSetVal = "t10k-labels-idx1-ubyte"
const trainSetImg = "train-images-idx3-ubyte"
const trainSetVal = "train-labels-idx1-ubyte"

// sha256 of the gzipped files of the canonical digit dataset
var digests = map[string]string{
	inferSetImg + ".gz": "8d422c7b0a1c1c79245a5bcf07fe86e33eeafee792b84584aec276f5a2dbc4e6",
	inferSetVal + ".gz": "f7ae60f92e00ec6debd23a6088c31dbd2371eca3ffa0defaefb259924204aec6",
	trainSetImg + ".gz": "440fcabf73cc546fa21475e81ea370265605f56be210a4024d2ca8f203523609",
	trainSetVal + ".gz": "3552534a0a558bbed6aed32b30c495cca23d567ec52cac8be1a0730e8010255c",
}

// Options control Load
type Options struct {
	// Verify checks the sha256 of the gzipped digit dataset files. Leave it off for
	// look-alike datasets such as Fashion-MNIST which reuse the file names.
	Verify bool
}

// Load reads the train or test split from dir. Images become (n, rows, cols, 1)
// tensors scaled to [0, 1].
func Load(dir string, train bool, o Options) (datasets.Set, error) {
	imgName, valName := inferSetImg, inferSetVal
	if train {
		imgName, valName = trainSetImg, trainSetVal
	}

	var images *tensor.Tensor
	var labels []int
	var g errgroup.Group
	g.Go(func() (err error) {
		data, err := read(dir, imgName, o.Verify)
		if err != nil {
			return err
		}
		images, err = ParseImages(data)
		return errors.Wrap(err, imgName)
	})
	g.Go(func() (err error) {
		data, err := read(dir, valName, o.Verify)
		if err != nil {
			return err
		}
		labels, err = ParseLabels(data)
		return errors.Wrap(err, valName)
	})
	if err := g.Wait(); err != nil {
		return datasets.Set{}, err
	}
	if images.Len() != len(labels) {
		return datasets.Set{}, errors.Wrapf(tensor.ErrShapeMismatch, "%d images but %d labels", images.Len(), len(labels))
	}
	return datasets.Set{X: images, Labels: labels}, nil
}

// read finds name or name.gz in dir and returns the uncompressed content
func read(dir, name string, verify bool) ([]byte, error) {
	path := filepath.Join(dir, name)
	if _, err := os.Stat(path); err == nil {
		return os.ReadFile(path)
	}
	gz := path + ".gz"
	raw, err := os.ReadFile(gz)
	if err != nil {
		return nil, errors.Wrapf(err, "neither %s nor %s.gz is readable", path, name)
	}
	if verify {
		if want, ok := digests[name+".gz"]; ok {
			if got := fmt.Sprintf("%x", sha256.Sum256(raw)); got != want {
				return nil, errors.Errorf("file hash for file '%s' is incorrect", gz)
			}
		}
	}
	r, err := gzip.NewReader(bytes.NewReader(raw))
	if err != nil {
		return nil, errors.Wrapf(err, "gzip file '%s'", gz)
	}
	defer r.Close()
	return io.ReadAll(r)
}

// ParseImages decodes an uncompressed IDX3 image file
func ParseImages(data []byte) (*tensor.Tensor, error) {
	if len(data) < 16 {
		return nil, errors.New("image file header is truncated")
	}
	if magic := binary.BigEndian.Uint32(data); magic != imagesMagic {
		return nil, errors.Errorf("bad image file magic %#x", magic)
	}
	n := int(binary.BigEndian.Uint32(data[4:]))
	rows := int(binary.BigEndian.Uint32(data[8:]))
	cols := int(binary.BigEndian.Uint32(data[12:]))
	pixels := data[16:]
	if len(pixels) != n*rows*cols {
		return nil, errors.Wrapf(tensor.ErrShapeMismatch, "header says %d×%d×%d pixels, file has %d", n, rows, cols, len(pixels))
	}
	t := tensor.Zeros(n, rows, cols, 1)
	for i, v := range pixels {
		t.Data()[i] = float64(v) / 255
	}
	return t, nil
}

// ParseLabels decodes an uncompressed IDX1 label file
func ParseLabels(data []byte) ([]int, error) {
	if len(data) < 8 {
		return nil, errors.New("label file header is truncated")
	}
	if magic := binary.BigEndian.Uint32(data); magic != labelsMagic {
		return nil, errors.Errorf("bad label file magic %#x", magic)
	}
	n := int(binary.BigEndian.Uint32(data[4:]))
	if len(data)-8 != n {
		return nil, errors.Errorf("header says %d labels, file has %d", n, len(data)-8)
	}
	labels := make([]int, n)
	for i, v := range data[8:] {
		labels[i] = int(v)
	}
	return labels, nil
}
