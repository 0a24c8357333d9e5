// Package plot renders training histories as learning curve images
package plot

import "github.com/pkg/errors"
import "gonum.org/v1/plot"
import "gonum.org/v1/plot/plotter"
import "gonum.org/v1/plot/plotutil"
import "gonum.org/v1/plot/vg"

import "github.com/neurlang/imagenn/net/sequential"

// Size of the rendered image
var (
	Width  = 6 * vg.Inch
	Height = 4 * vg.Inch
)

// LearningCurves plots the listed history series against the epoch number and saves
// the figure to path; the extension picks the format (png, svg, pdf). Without keys
// the loss and, when present, val_loss are drawn.
func LearningCurves(h *sequential.History, path string, keys ...string) error {
	if len(h.Epochs) == 0 {
		return errors.New("history has no epochs")
	}
	if len(keys) == 0 {
		keys = []string{"loss"}
		if len(h.Series("val_loss")) > 0 {
			keys = append(keys, "val_loss")
		}
	}

	p := plot.New()
	p.Title.Text = "Learning curves"
	p.X.Label.Text = "Epochs"
	p.Y.Label.Text = ylabel(keys)
	p.Legend.Top = true

	var lines []interface{}
	for _, key := range keys {
		series := h.Series(key)
		if len(series) == 0 {
			return errors.Errorf("history has no %q series, have %v", key, h.Keys())
		}
		pts := make(plotter.XYs, len(series))
		for i, v := range series {
			pts[i].X = float64(i + 1)
			pts[i].Y = v
		}
		lines = append(lines, key, pts)
	}
	if err := plotutil.AddLinePoints(p, lines...); err != nil {
		return err
	}
	return p.Save(Width, Height, path)
}

func ylabel(keys []string) string {
	for _, k := range keys {
		if k != "loss" && k != "val_loss" {
			return "Value"
		}
	}
	return "Loss"
}
