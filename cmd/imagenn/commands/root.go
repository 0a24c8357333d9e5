package commands

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/neurlang/imagenn/internal/logging"
	"github.com/neurlang/imagenn/parallel"
)

var (
	debug   bool
	threads int
	logger  = zap.NewNop()
)

func Execute() error {
	return rootCmd().Execute()
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "imagenn",
		Short:        "Small image classification networks: train, evaluate, predict, plot",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := logging.New(debug)
			if err != nil {
				return err
			}
			logger = l
			if threads > 0 {
				parallel.SetThreads(threads)
			}
			logging.Machine(logger)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}

	root.PersistentFlags().BoolVar(&debug, "debug", false, "human readable debug logging")
	root.PersistentFlags().IntVar(&threads, "threads", 0, "goroutines per layer (default: logical cores)")

	root.AddCommand(
		modifyImageCmd(),
		trainCmd(),
		evaluateCmd(),
		predictCmd(),
		plotCmd(),
		summaryCmd(),
		presetCmd(),
	)
	return root
}
