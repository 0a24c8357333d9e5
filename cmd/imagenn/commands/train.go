package commands

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/neurlang/imagenn/net/sequential"
	"github.com/neurlang/imagenn/plot"
	"github.com/neurlang/imagenn/trainer"
)

func trainCmd() *cobra.Command {
	var mf modelFlags
	var df dataFlags
	var weights, history, curves, monitor string
	var epochs, batchSize, patience int
	var validationSplit float64
	var resume bool
	var significance uint8

	cmd := &cobra.Command{
		Use:   "train",
		Short: "Fit a model and store its weights, history and learning curves",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := mf.config()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("epochs") {
				c.Fit.Epochs = epochs
			}
			if cmd.Flags().Changed("batch-size") {
				c.Fit.BatchSize = batchSize
			}
			if cmd.Flags().Changed("validation-split") {
				c.Fit.ValidationSplit = validationSplit
			}
			m, err := c.Build(logger)
			if err != nil {
				return err
			}
			if _, err := trainer.Resume(m, resume, weights); err != nil {
				return err
			}

			x, y, _, err := df.load(c, m, true)
			if err != nil {
				return err
			}
			xt, yt, _, err := df.load(c, m, false)
			if err != nil {
				return err
			}

			runID := uuid.New().String()
			log := logger.With(zap.String("run", runID))

			var callbacks []sequential.Callback
			if monitor != "" {
				callbacks = append(callbacks, trainer.NewCheckpointFunc(weights, monitor, log))
			}
			if patience > 0 {
				watch := monitor
				if watch == "" {
					watch = "loss"
				}
				callbacks = append(callbacks, trainer.NewEarlyStoppingFunc(watch, patience, log))
			}
			if significance > 0 {
				callbacks = append(callbacks, trainer.NewEvaluateFunc(xt, yt, significance, c.Seed, log))
			}

			h, err := m.Fit(x, y, c.FitOptions(runID, callbacks...))
			if err != nil {
				return err
			}
			if monitor == "" {
				if err := m.SaveWeights(weights); err != nil {
					return err
				}
			}
			if history != "" {
				if err := h.WriteFile(history); err != nil {
					return err
				}
			}
			if curves != "" {
				if err := plot.LearningCurves(h, curves); err != nil {
					return err
				}
			}

			ev, err := m.Evaluate(xt, yt, c.Fit.BatchSize)
			if err != nil {
				return err
			}
			log.Info("test", zap.Float64("loss", ev.Loss), zap.Any("metrics", ev.Metrics))
			fmt.Fprintf(cmd.OutOrStdout(), "run %s\n", runID)
			printEvaluation(cmd, m, ev)
			return nil
		},
	}
	mf.register(cmd)
	df.register(cmd)
	cmd.Flags().StringVar(&weights, "weights", "weights.imagenn", "weight file to write")
	cmd.Flags().StringVar(&history, "history", "history.json", "history file to write, empty to skip")
	cmd.Flags().StringVar(&curves, "plot", "learning_curves.png", "learning curve image to write, empty to skip")
	cmd.Flags().StringVar(&monitor, "checkpoint", "", "save weights only when this value improves, such as val_loss")
	cmd.Flags().IntVar(&patience, "patience", 0, "stop after this many epochs without improvement of --checkpoint (or loss)")
	cmd.Flags().BoolVar(&resume, "resume", false, "start from the weights in --weights when the file exists")
	cmd.Flags().IntVar(&epochs, "epochs", 0, "override the configured epochs")
	cmd.Flags().IntVar(&batchSize, "batch-size", 0, "override the configured batch size")
	cmd.Flags().Float64Var(&validationSplit, "validation-split", 0, "override the configured validation split")
	cmd.Flags().Uint8Var(&significance, "sample-test", 0, "score a test sample after every epoch at this significance (1-100)")
	return cmd
}

func printEvaluation(cmd *cobra.Command, m *sequential.Model, ev sequential.Evaluation) {
	fmt.Fprintf(cmd.OutOrStdout(), "loss: %.4f", ev.Loss)
	for _, k := range m.MetricNames() {
		fmt.Fprintf(cmd.OutOrStdout(), " - %s: %.4f", k, ev.Metrics[k])
	}
	fmt.Fprintln(cmd.OutOrStdout())
}
