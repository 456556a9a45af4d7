// Package commands implements the CLI commands for the redo build tool.
package commands

import (
	"context"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"go.trai.ch/redo/internal/app"
	"go.trai.ch/redo/internal/build"
	"go.trai.ch/redo/internal/core/domain"
)

// CLI represents the command line interface for one redo mode.
type CLI struct {
	app     *app.App
	mode    domain.Mode
	rootCmd *cobra.Command
}

// New creates a new CLI instance for the given app and mode.
func New(a *app.App, mode domain.Mode) *CLI {
	c := &CLI{
		app:  a,
		mode: mode,
	}

	rootCmd := &cobra.Command{
		Use:           mode.String() + " [targets...]",
		Short:         short(mode),
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
		Args:          cobra.ArbitraryArgs,
		RunE:          c.run,
	}

	// -v belongs to --verbose, so --version has no shorthand.
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log every staleness decision")
	rootCmd.Flags().Bool("version", false, "Print the application version")

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c.rootCmd = rootCmd
	return c
}

func short(mode domain.Mode) string {
	switch mode {
	case domain.ModeIfChange:
		return "Rebuild targets if outdated and record them as dependencies"
	case domain.ModeIfCreate:
		return "Record that the current build depends on files not existing"
	default:
		return "Rebuild targets unconditionally"
	}
}

func (c *CLI) run(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return domain.ErrNoTargetsSpecified
	}
	return c.app.Run(cmd.Context(), c.mode, args)
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput redirects help and version output. Used for testing.
func (c *CLI) SetOutput(w io.Writer) {
	c.rootCmd.SetOut(w)
}

// Usage returns the usage text of the root command.
func (c *CLI) Usage() string {
	return c.rootCmd.UsageString()
}

// SetVerboseHook sets up a PersistentPreRun function that calls fn when the
// verbose flag is set.
func (c *CLI) SetVerboseHook(fn func()) {
	c.rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		verbose, err := cmd.Flags().GetBool("verbose")
		if err != nil {
			return err
		}
		if verbose {
			fn()
		}
		return nil
	}
}

// EnableDebug lowers the level of loggers that support it to debug.
func EnableDebug(logger any) {
	if l, ok := logger.(interface{ SetLevel(slog.Level) }); ok {
		l.SetLevel(slog.LevelDebug)
	}
}
