package commands

import (
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/neurlang/imagenn/inference"
	"github.com/neurlang/imagenn/net/sequential"
	"github.com/neurlang/imagenn/pixels"
	"github.com/neurlang/imagenn/tensor"
)

func predictCmd() *cobra.Command {
	var mf modelFlags
	var df dataFlags
	var weights string
	var count int
	var invert, asJSON bool
	var labels []string
	cmd := &cobra.Command{
		Use:   "predict [image...]",
		Short: "Classify image files, or the first test samples when none are given",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, m, err := mf.build()
			if err != nil {
				return err
			}
			if err := m.LoadWeights(weights); err != nil {
				return err
			}

			var x *tensor.Tensor
			var truth []int
			if len(args) > 0 {
				x, err = images(m, args, invert)
			} else {
				x, _, truth, err = df.load(c, m, false)
				if err == nil {
					x = x.Rows(0, count)
				}
			}
			if err != nil {
				return err
			}

			if labels == nil {
				out, err := m.Predict(x, 0)
				if err != nil {
					return err
				}
				return printScores(cmd, out, truth)
			}
			p, err := inference.Classify(m, x, labels)
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(p)
			}
			for i, v := range p {
				fmt.Fprintf(cmd.OutOrStdout(), "%d: %s (%.2f%%)\n", i, v.Label, v.Confidence*100)
			}
			return nil
		},
	}
	mf.register(cmd)
	df.register(cmd)
	cmd.Flags().StringVar(&weights, "weights", "weights.imagenn", "weight file to load")
	cmd.Flags().IntVarP(&count, "count", "n", 3, "test samples to predict")
	cmd.Flags().BoolVar(&invert, "invert", false, "invert image files, for dark digits on a light background")
	cmd.Flags().StringSliceVar(&labels, "labels", nil, "class names, one per output, to print classified labels")
	cmd.Flags().BoolVar(&asJSON, "json", false, "with --labels, print predictions as JSON")
	return cmd
}

// images loads image files as grayscale pictures of the model input size
func images(m *sequential.Model, paths []string, invert bool) (*tensor.Tensor, error) {
	input := m.InputShape()
	rows, cols := imageSize(input)
	x := tensor.New(append(tensor.Shape{len(paths)}, input...))
	for i, path := range paths {
		g, err := pixels.Grayscale(path, cols, rows, invert)
		if err != nil {
			return nil, err
		}
		if g.Size() != x.SampleSize() {
			return nil, errors.Wrapf(tensor.ErrShapeMismatch, "%s gives %v, model expects %v", path, g.Shape(), input)
		}
		copy(x.Sample(i), g.Data())
	}
	return x, nil
}

// printScores prints the raw output rows like model.predict
func printScores(cmd *cobra.Command, out *tensor.Tensor, truth []int) error {
	w := cmd.OutOrStdout()
	for s := 0; s < out.Len(); s++ {
		fmt.Fprint(w, "[")
		for i, v := range out.Sample(s) {
			if i > 0 {
				fmt.Fprint(w, " ")
			}
			fmt.Fprintf(w, "%.4f", v)
		}
		fmt.Fprint(w, "]")
		if s < len(truth) {
			fmt.Fprintf(w, " label %d", truth[s])
		}
		fmt.Fprintln(w)
	}
	return nil
}
