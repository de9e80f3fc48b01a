package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/equity/internal/equity"
	"github.com/cleared-dev/equity/internal/overrides"
)

func newOverrideCommand() *cobra.Command {
	var repoDir string

	cmd := &cobra.Command{
		Use:   "override",
		Short: "Manage manual cell overrides",
	}
	cmd.PersistentFlags().StringVar(&repoDir, "repo", ".", "repository directory")

	var note string
	setCmd := &cobra.Command{
		Use:   "set <row:column> <amount>",
		Short: "Replace a cell's computed amount",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, key, err := openOverride(repoDir, args[0])
			if err != nil {
				return err
			}
			amount, err := decimal.NewFromString(args[1])
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", args[1], err)
			}
			rec, err := p.overrides().Set(key, amount, note)
			if err != nil {
				return err
			}
			if _, err := p.commit(fmt.Sprintf("override: set %s = %s", key, amount), p.overridePaths()...); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", rec.Key, p.cfg.Formatter().Format(rec.Amount))
			return nil
		},
	}
	setCmd.Flags().StringVar(&note, "note", "", "reason for the override")

	clearCmd := &cobra.Command{
		Use:   "clear <row:column>",
		Short: "Remove an override, restoring the computed amount",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, key, err := openOverride(repoDir, args[0])
			if err != nil {
				return err
			}
			if err := p.overrides().Clear(key); err != nil {
				return err
			}
			if _, err := p.commit("override: clear "+key.String(), p.overridePaths()...); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared %s\n", key)
			return nil
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List stored overrides",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openProject(repoDir)
			if err != nil {
				return err
			}
			recs, err := p.overrides().Records()
			if err != nil {
				return err
			}
			if len(recs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No overrides.")
				return nil
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ROW\tCOLUMN\tAMOUNT\tUPDATED\tNOTE")
			for _, r := range recs {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
					r.Key.RowID, r.Key.ColumnID, r.Amount.StringFixed(2), r.UpdatedAt.Format("2006-01-02"), r.Note)
			}
			return tw.Flush()
		},
	}

	cmd.AddCommand(setCmd, clearCmd, listCmd)
	return cmd
}

func openOverride(repoDir, rawKey string) (*project, equity.OverrideKey, error) {
	key, err := equity.ParseOverrideKey(rawKey)
	if err != nil {
		return nil, equity.OverrideKey{}, err
	}
	p, err := openProject(repoDir)
	if err != nil {
		return nil, equity.OverrideKey{}, err
	}
	return p, key, nil
}

func (p *project) overridePaths() []string {
	return []string{p.relPath(overrides.Path(p.root)), p.relPath(overrides.AuditPath(p.root))}
}
