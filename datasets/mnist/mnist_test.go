package mnist

import (
	"bytes"
	"compress/gzip"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neurlang/imagenn/tensor"
)

func idxImages(n, rows, cols int) []byte {
	var b bytes.Buffer
	for _, v := range []uint32{imagesMagic, uint32(n), uint32(rows), uint32(cols)} {
		binary.Write(&b, binary.BigEndian, v)
	}
	for i := 0; i < n*rows*cols; i++ {
		b.WriteByte(byte(i % 256))
	}
	return b.Bytes()
}

func idxLabels(labels ...byte) []byte {
	var b bytes.Buffer
	binary.Write(&b, binary.BigEndian, uint32(labelsMagic))
	binary.Write(&b, binary.BigEndian, uint32(len(labels)))
	b.Write(labels)
	return b.Bytes()
}

func gz(t *testing.T, data []byte) []byte {
	var b bytes.Buffer
	w := gzip.NewWriter(&b)
	_, err := w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return b.Bytes()
}

func TestLoadPlainAndGzip(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, trainSetImg), idxImages(3, 2, 2), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, trainSetVal+".gz"), gz(t, idxLabels(4, 1, 9)), 0o644))

	s, err := Load(dir, true, Options{})
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{3, 2, 2, 1}, s.X.Shape())
	assert.Equal(t, []int{4, 1, 9}, s.Labels)
	assert.InDelta(t, 5.0/255, s.X.At(1, 0, 1, 0), 1e-12)
}

func TestLoadVerifiesDigest(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, inferSetImg+".gz"), gz(t, idxImages(1, 2, 2)), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, inferSetVal+".gz"), gz(t, idxLabels(0)), 0o644))

	_, err := Load(dir, false, Options{Verify: true})
	assert.ErrorContains(t, err, "incorrect")

	_, err = Load(dir, false, Options{})
	assert.NoError(t, err)
}

func TestLoadRejectsCountMismatch(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, inferSetImg), idxImages(2, 2, 2), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, inferSetVal), idxLabels(0), 0o644))
	_, err := Load(dir, false, Options{})
	assert.Error(t, err)

	_, err = Load(t.TempDir(), false, Options{})
	assert.Error(t, err)
}

func TestParseRejectsBadFiles(t *testing.T) {
	_, err := ParseImages([]byte{1, 2})
	assert.Error(t, err)
	_, err = ParseImages(idxLabels(1, 2))
	assert.Error(t, err)
	_, err = ParseLabels(idxImages(1, 1, 1))
	assert.Error(t, err)
	truncated := idxImages(2, 2, 2)
	_, err = ParseImages(truncated[:len(truncated)-1])
	assert.Error(t, err)
}
