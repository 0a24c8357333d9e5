package sequential

import "compress/lzw"
import "encoding/json"
import "io"
import "math"
import "os"
import "strconv"

import "github.com/pkg/errors"
import "go.uber.org/zap"

const weightsFormat = "imagenn-weights/1"

type weightsFile struct {
	Format string         `json:"format"`
	Layers []weightsLayer `json:"layers"`
}

type weightsLayer struct {
	Name   string         `json:"name"`
	Params []weightsParam `json:"params"`
}

type weightsParam struct {
	Name   string `json:"name"`
	Shape  []int  `json:"shape"`
	Values values `json:"values"`
}

// values encodes finite floats as JSON numbers and NaN, +Inf, -Inf as strings
type values []float64

func (v values) MarshalJSON() ([]byte, error) {
	o := make([]byte, 0, 2+len(v)*12)
	o = append(o, '[')
	for i, f := range v {
		if i > 0 {
			o = append(o, ',')
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			o = strconv.AppendQuote(o, strconv.FormatFloat(f, 'g', -1, 64))
			continue
		}
		o = strconv.AppendFloat(o, f, 'g', -1, 64)
	}
	return append(o, ']'), nil
}

func (v *values) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	o := make(values, len(raw))
	for i, r := range raw {
		text := string(r)
		if len(r) > 0 && r[0] == '"' {
			if err := json.Unmarshal(r, &text); err != nil {
				return err
			}
		}
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return errors.Wrapf(err, "weight value %d", i)
		}
		o[i] = f
	}
	*v = o
	return nil
}

// SaveWeights writes model weights to a lzw compressed JSON file
func (m *Model) SaveWeights(name string) error {
	file, err := os.Create(name)
	if err != nil {
		return err
	}
	err = m.WriteWeights(file)
	if cerr := file.Close(); err == nil {
		err = cerr
	}
	return err
}

// WriteWeights writes model weights to a writer. Only layers with parameters are stored.
func (m *Model) WriteWeights(w io.Writer) error {
	if !m.Compiled() {
		return ErrNotCompiled
	}
	doc := weightsFile{Format: weightsFormat}
	for i, c := range m.combiners {
		params := c.Params()
		if len(params) == 0 {
			continue
		}
		wl := weightsLayer{Name: m.names[i]}
		for _, p := range params {
			wl.Params = append(wl.Params, weightsParam{
				Name:   p.Name,
				Shape:  p.Value.Shape(),
				Values: p.Value.Data(),
			})
		}
		doc.Layers = append(doc.Layers, wl)
	}
	lw := lzw.NewWriter(w, lzw.LSB, 8)
	if err := json.NewEncoder(lw).Encode(doc); err != nil {
		lw.Close()
		return err
	}
	return lw.Close()
}

// LoadWeights reads model weights from a lzw compressed JSON file
func (m *Model) LoadWeights(name string) error {
	file, err := os.Open(name)
	if err != nil {
		return err
	}
	defer file.Close()
	if err := m.ReadWeights(file); err != nil {
		return errors.Wrapf(err, "weights %s", name)
	}
	m.logger().Info("weights loaded", zap.String("file", name))
	return nil
}

// ReadWeights replaces the model weights with the ones read from r. The stored layers
// and parameter shapes must match the model exactly; otherwise an error wrapping
// ErrShapeMismatch is returned and no weight is changed.
func (m *Model) ReadWeights(r io.Reader) error {
	if !m.Compiled() {
		return ErrNotCompiled
	}
	lr := lzw.NewReader(r, lzw.LSB, 8)
	defer lr.Close()
	var doc weightsFile
	if err := json.NewDecoder(lr).Decode(&doc); err != nil {
		return errors.Wrap(err, "decode weights")
	}
	if doc.Format != weightsFormat {
		return errors.Errorf("unsupported weights format %q", doc.Format)
	}

	var live [][]*weightsParam
	var targets [][]float64
	k := 0
	for i, c := range m.combiners {
		params := c.Params()
		if len(params) == 0 {
			continue
		}
		if k >= len(doc.Layers) {
			return errors.Wrapf(ErrShapeMismatch, "file has %d layers with weights, model has more", len(doc.Layers))
		}
		stored := doc.Layers[k]
		if len(stored.Params) != len(params) {
			return errors.Wrapf(ErrShapeMismatch, "layer %s: file has %d parameters, model has %d",
				m.names[i], len(stored.Params), len(params))
		}
		var row []*weightsParam
		for j, p := range params {
			sp := &stored.Params[j]
			if sp.Name != p.Name || !p.Value.Shape().Equal(sp.Shape) || len(sp.Values) != p.Value.Size() {
				return errors.Wrapf(ErrShapeMismatch, "layer %s: file has %s%v, model has %s%v",
					m.names[i], sp.Name, sp.Shape, p.Name, p.Value.Shape())
			}
			row = append(row, sp)
			targets = append(targets, p.Value.Data())
		}
		live = append(live, row)
		k++
	}
	if k != len(doc.Layers) {
		return errors.Wrapf(ErrShapeMismatch, "file has %d layers with weights, model has %d", len(doc.Layers), k)
	}

	// every shape checked, commit
	t := 0
	for _, row := range live {
		for _, sp := range row {
			copy(targets[t], sp.Values)
			t++
		}
	}
	return nil
}
