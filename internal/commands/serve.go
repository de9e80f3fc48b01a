package commands

import (
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/equity/internal/config"
	"github.com/cleared-dev/equity/internal/equity"
	"github.com/cleared-dev/equity/internal/server"
)

func newServeCommand() *cobra.Command {
	var repoDir string
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the statement API over HTTP",
		Long: "Serve the statement API. Inside a project the configured catalog, currency\n" +
			"and address are used; otherwise the defaults.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default("", "")
			engine := equity.NewEngine(nil, equity.WithLogger(slog.Default()))
			if p, err := openProject(repoDir); err == nil {
				cfg = p.cfg
				engine = p.engine()
			} else {
				slog.Info("no project loaded, using defaults", "error", err)
			}
			if addr == "" {
				addr = cfg.Server.Addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return server.New(engine, cfg.Company.Name, slog.Default()).Run(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&repoDir, "repo", ".", "repository directory")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from equity.yaml)")

	return cmd
}

