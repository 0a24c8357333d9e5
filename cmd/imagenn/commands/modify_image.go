package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/neurlang/imagenn/pixels"
)

func modifyImageCmd() *cobra.Command {
	var rows, cols int
	var values []float64
	cmd := &cobra.Command{
		Use:   "modify-image <in> <out.png>",
		Short: "Set channel c of the top-left rows×cols block to the c-th value",
		Long: `Loads a PNG or JPEG image, overwrites every channel of the top-left corner
with the given values and writes the result as PNG. The defaults paint a
10×10 pure red square.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := pixels.Load(args[0])
			if err != nil {
				return err
			}
			for ch, v := range values {
				if err := pixels.SetChannel(a, rows, cols, ch, v); err != nil {
					return err
				}
			}
			if err := pixels.Save(a, args[1]); err != nil {
				return err
			}
			logger.Info("image modified",
				zap.String("in", args[0]),
				zap.String("out", args[1]),
				zap.Stringer("shape", a.Shape()),
			)
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", args[1])
			return nil
		},
	}
	cmd.Flags().IntVar(&rows, "rows", 10, "rows of the block")
	cmd.Flags().IntVar(&cols, "cols", 10, "columns of the block")
	cmd.Flags().Float64SliceVar(&values, "values", []float64{1, 0, 0}, "value per channel, in channel order")
	return cmd
}
