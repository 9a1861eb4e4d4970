package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <mod-list>",
		Short: "Sync again whenever the mod list changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Watch(cmd.Context(), args[0], syncOptions(cmd))
		},
	}

	addSyncFlags(cmd)

	return cmd
}
