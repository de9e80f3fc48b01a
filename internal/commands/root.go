package commands

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/equity/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	var logLevel string
	var logJSON bool

	rootCmd := &cobra.Command{
		Use:     "equity",
		Short:   "Statement of changes in equity from a plain-text ledger",
		Version: buildinfo.Current().String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(cmd, logLevel, logJSON)
		},
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "log as JSON instead of text")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newReportCommand())
	rootCmd.AddCommand(newOverrideCommand())
	rootCmd.AddCommand(newEntryCommand())
	rootCmd.AddCommand(newImportCommand())
	rootCmd.AddCommand(newServeCommand())

	return rootCmd
}

// setupLogging installs the default slog logger on the command's stderr.
func setupLogging(cmd *cobra.Command, level string, asJSON bool) error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", level, err)
	}
	opts := &slog.HandlerOptions{Level: lvl}

	var handler slog.Handler = slog.NewTextHandler(cmd.ErrOrStderr(), opts)
	if asJSON {
		handler = slog.NewJSONHandler(cmd.ErrOrStderr(), opts)
	}
	slog.SetDefault(slog.New(handler))
	return nil
}
