package commands

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/equity/internal/importer"
	"github.com/cleared-dev/equity/internal/journal"
)

func newImportCommand() *cobra.Command {
	var repoDir string
	var format string
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Append journal exports waiting in import/ to the journal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			registry := importer.DefaultRegistry()
			parser := registry.Get(format)
			if parser == nil {
				return fmt.Errorf("unknown format %q (available: %s)", format, strings.Join(registry.Formats(), ", "))
			}

			p, err := openProject(repoDir)
			if err != nil {
				return err
			}
			files, err := importer.Scan(p.root)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing to import.")
				return nil
			}

			svc := p.journal()
			total := 0
			for _, file := range files {
				entries, err := importer.ParseFile(parser, file.Path, p.chart)
				if err != nil {
					return err
				}
				if dryRun {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: %d entries (dry run)\n", file.Name, len(entries))
					continue
				}
				for _, entry := range entries {
					id, err := svc.Append(entry)
					if err != nil {
						return fmt.Errorf("%s: %w", file.Name, err)
					}
					slog.Debug("imported entry", "file", file.Name, "id", id)
				}
				if err := importer.MarkProcessed(p.root, file.Name); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %d entries\n", file.Name, len(entries))
				total += len(entries)
			}

			if total > 0 {
				msg := fmt.Sprintf("import: %d entries from %d file(s)", total, len(files))
				if _, err := p.commit(msg, p.relPath(journal.Path(p.root))); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&repoDir, "repo", ".", "repository directory")
	cmd.Flags().StringVar(&format, "format", "libro-diario", "export format")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "parse without writing")

	return cmd
}
