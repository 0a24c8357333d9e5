// Package pixels converts between image files and [rows, cols, channels] tensors
package pixels

import "image"
import "image/color"
import _ "image/jpeg"
import "image/png"
import "os"

import "github.com/nfnt/resize"
import "github.com/pkg/errors"

import "github.com/neurlang/imagenn/tensor"

// ErrChannel is returned for a channel index outside the image
var ErrChannel = errors.New("channel out of range")

// Load decodes a PNG or JPEG file into a [rows, cols, 3] tensor of RGB values in [0, 1]
func Load(path string) (*tensor.Tensor, error) {
	img, err := decode(path)
	if err != nil {
		return nil, err
	}
	return FromImage(img), nil
}

func decode(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s", path)
	}
	return img, nil
}

// FromImage converts img into a [rows, cols, 3] tensor
func FromImage(img image.Image) *tensor.Tensor {
	b := img.Bounds()
	rows, cols := b.Dy(), b.Dx()
	t := tensor.Zeros(rows, cols, 3)
	data := t.Data()
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			off := (y*cols + x) * 3
			data[off] = float64(r) / 65535
			data[off+1] = float64(g) / 65535
			data[off+2] = float64(bl) / 65535
		}
	}
	return t
}

// SetChannel writes v into channel ch of the top-left rows×cols block of a, in place.
// Rows and cols are clamped to the image; every other element is left untouched.
func SetChannel(a *tensor.Tensor, rows, cols, ch int, v float64) error {
	if a.Rank() != 3 {
		return errors.Wrapf(tensor.ErrShapeMismatch, "image must be (rows, cols, channels), got %v", a.Shape())
	}
	if ch < 0 || ch >= a.Dim(2) {
		return errors.Wrapf(ErrChannel, "channel %d of %d", ch, a.Dim(2))
	}
	rows = clamp(rows, a.Dim(0))
	cols = clamp(cols, a.Dim(1))
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			a.Set(v, y, x, ch)
		}
	}
	return nil
}

func clamp(v, max int) int {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}

// ToImage converts a [rows, cols, 1] or [rows, cols, 3] tensor with values in [0, 1] into an image
func ToImage(a *tensor.Tensor) (image.Image, error) {
	if a.Rank() != 3 || (a.Dim(2) != 1 && a.Dim(2) != 3) {
		return nil, errors.Wrapf(tensor.ErrShapeMismatch, "cannot show an image of shape %v", a.Shape())
	}
	rows, cols, chans := a.Dim(0), a.Dim(1), a.Dim(2)
	img := image.NewRGBA(image.Rect(0, 0, cols, rows))
	data := a.Data()
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			off := (y*cols + x) * chans
			c := color.RGBA{A: 255}
			c.R = level(data[off])
			c.G, c.B = c.R, c.R
			if chans == 3 {
				c.G = level(data[off+1])
				c.B = level(data[off+2])
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img, nil
}

func level(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	}
	return uint8(v*255 + 0.5)
}

// Save writes the image tensor to a PNG file
func Save(a *tensor.Tensor, path string) error {
	img, err := ToImage(a)
	if err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	err = png.Encode(file, img)
	if cerr := file.Close(); err == nil {
		err = cerr
	}
	return err
}

// Grayscale loads an image file, resizes it to width×height and returns a
// [height, width, 1] tensor of luminance in [0, 1], ready for a digit model.
// Invert flips dark-on-light pictures into the light-on-dark form of MNIST.
func Grayscale(path string, width, height int, invert bool) (*tensor.Tensor, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Errorf("bad target size %d×%d", width, height)
	}
	img, err := decode(path)
	if err != nil {
		return nil, err
	}
	resized := resize.Resize(uint(width), uint(height), img, resize.Lanczos3)
	b := resized.Bounds()
	t := tensor.Zeros(height, width, 1)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			g := color.Gray16Model.Convert(resized.At(b.Min.X+x, b.Min.Y+y)).(color.Gray16)
			v := float64(g.Y) / 65535
			if invert {
				v = 1 - v
			}
			t.Set(v, y, x, 0)
		}
	}
	return t, nil
}
