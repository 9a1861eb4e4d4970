package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/modlock/internal/app"
)

func (c *CLI) newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean <file>",
		Short: "Remove downloaded files the lock file no longer references",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dryRun, _ := cmd.Flags().GetBool("dry-run")
			return c.app.Clean(cmd.Context(), args[0], app.CleanOptions{DryRun: dryRun})
		},
	}

	cmd.Flags().BoolP("dry-run", "n", false, "Only list the files that would be removed")

	return cmd
}
