package commands

import (
	"github.com/spf13/cobra"
)

func evaluateCmd() *cobra.Command {
	var mf modelFlags
	var df dataFlags
	var weights string
	var batchSize int
	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Print loss and metrics of stored weights on the test set",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, m, err := mf.build()
			if err != nil {
				return err
			}
			if err := m.LoadWeights(weights); err != nil {
				return err
			}
			x, y, _, err := df.load(c, m, false)
			if err != nil {
				return err
			}
			if batchSize == 0 {
				batchSize = c.Fit.BatchSize
			}
			ev, err := m.Evaluate(x, y, batchSize)
			if err != nil {
				return err
			}
			printEvaluation(cmd, m, ev)
			return nil
		},
	}
	mf.register(cmd)
	df.register(cmd)
	cmd.Flags().StringVar(&weights, "weights", "weights.imagenn", "weight file to load")
	cmd.Flags().IntVar(&batchSize, "batch-size", 0, "evaluation batch size (default from config)")
	return cmd
}
