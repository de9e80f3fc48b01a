package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/equity/internal/accounts"
	"github.com/cleared-dev/equity/internal/config"
	"github.com/cleared-dev/equity/internal/gitops"
	"github.com/cleared-dev/equity/internal/journal"
	"github.com/cleared-dev/equity/internal/overrides"
)

func newInitCommand() *cobra.Command {
	var name string
	var currency string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new equity project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			hash, err := runInit(absDir, name, currency)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized equity project at %s (%s)\n", absDir, hash)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "company name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&currency, "currency", "ARS", "ISO 4217 reporting currency")

	return cmd
}

func runInit(dir, name, currency string) (string, error) {
	for _, d := range []string{"logs", filepath.Join("import", "processed")} {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return "", fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	cfg := config.Default(name, currency)
	if err := cfg.Validate(); err != nil {
		return "", err
	}
	if err := config.Save(config.Path(dir), cfg); err != nil {
		return "", fmt.Errorf("writing config: %w", err)
	}

	if err := accounts.NewService(accounts.DefaultChart()).Save(dir); err != nil {
		return "", fmt.Errorf("writing chart of accounts: %w", err)
	}
	if err := journal.Init(dir); err != nil {
		return "", err
	}
	if err := overrides.Init(dir); err != nil {
		return "", err
	}

	for _, keep := range []string{filepath.Join("logs", ".gitkeep"), filepath.Join("import", ".gitkeep")} {
		if err := os.WriteFile(filepath.Join(dir, keep), []byte{}, 0o644); err != nil {
			return "", fmt.Errorf("writing %s: %w", keep, err)
		}
	}
	if err := gitops.WriteIgnore(dir, "exports/", "import/processed/"); err != nil {
		return "", err
	}

	if err := gitops.Init(dir); err != nil {
		return "", fmt.Errorf("git init: %w", err)
	}
	author := gitops.Author{Name: cfg.Git.AuthorName, Email: cfg.Git.AuthorEmail}
	hash, err := gitops.Commit(dir, "init: Initialize "+name, author)
	if err != nil {
		return "", fmt.Errorf("initial commit: %w", err)
	}
	return hash, nil
}
