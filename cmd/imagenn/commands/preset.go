package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/neurlang/imagenn/config"
)

func presetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preset [name]",
		Short: "List the built-in models, or print one as a YAML config",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				for _, name := range config.Presets() {
					fmt.Fprintln(cmd.OutOrStdout(), name)
				}
				return nil
			}
			c, err := config.Preset(args[0])
			if err != nil {
				return err
			}
			return c.Write(cmd.OutOrStdout())
		},
	}
	return cmd
}
