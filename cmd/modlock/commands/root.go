// Package commands implements the CLI commands for modlock.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/modlock/internal/app"
	"go.trai.ch/modlock/internal/build"
	"go.trai.ch/modlock/internal/core/domain"
)

// CLI represents the command line interface for modlock.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Sync(ctx context.Context, listPath string, opts app.SyncOptions) error
	Restore(ctx context.Context, lockPath string, opts app.SyncOptions) error
	Clean(ctx context.Context, path string, opts app.CleanOptions) error
	Watch(ctx context.Context, listPath string, opts app.SyncOptions) error
	SetLogJSON(enabled bool)
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	c := &CLI{app: a}

	rootCmd := &cobra.Command{
		Use:   "modlock <file>",
		Short: "Download mods and pin them in a lock file",
		Long: "Resolves every mod in a mod list, downloads it and records the exact files in <file>.lock.\n" +
			"Passing a .lock file downloads exactly what it records.",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if jsonLogs, _ := cmd.Flags().GetBool("log-json"); jsonLogs {
				c.app.SetLogJSON(true)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := syncOptions(cmd)
			if domain.IsLockPath(args[0]) {
				return c.app.Restore(cmd.Context(), args[0], opts)
			}
			return c.app.Sync(cmd.Context(), args[0], opts)
		},
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().Bool("log-json", false, "Write log lines as JSON")
	addSyncFlags(rootCmd)

	c.rootCmd = rootCmd

	rootCmd.AddCommand(c.newCleanCmd())
	rootCmd.AddCommand(c.newWatchCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

func addSyncFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("update", "u", false, "Resolve every mod again instead of reusing locked files")
	cmd.Flags().IntP("jobs", "j", 0, "Number of mods processed at once (0 uses the configured value)")
	cmd.Flags().String("output", "", "Progress display: auto, bar or linear")
}

func syncOptions(cmd *cobra.Command) app.SyncOptions {
	update, _ := cmd.Flags().GetBool("update")
	jobs, _ := cmd.Flags().GetInt("jobs")
	output, _ := cmd.Flags().GetString("output")
	return app.SyncOptions{Update: update, Jobs: jobs, OutputMode: output}
}
