package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/neurlang/imagenn/net/sequential"
	"github.com/neurlang/imagenn/plot"
)

func plotCmd() *cobra.Command {
	var out string
	var keys []string
	cmd := &cobra.Command{
		Use:   "plot <history.json>",
		Short: "Draw learning curves of a training history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := sequential.ReadHistoryFile(args[0])
			if err != nil {
				return err
			}
			if err := plot.LearningCurves(h, out, keys...); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "learning_curves.png", "image to write (png, svg or pdf)")
	cmd.Flags().StringSliceVar(&keys, "keys", nil, "series to plot (default loss and val_loss)")
	return cmd
}
