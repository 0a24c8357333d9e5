package commands

import (
	"github.com/spf13/cobra"
)

func summaryCmd() *cobra.Command {
	var mf modelFlags
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print the layers, output shapes and parameter counts of a model",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, m, err := mf.build()
			if err != nil {
				return err
			}
			return m.Summary(cmd.OutOrStdout())
		},
	}
	mf.register(cmd)
	return cmd
}
