package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/equity/internal/journal"
	"github.com/cleared-dev/equity/internal/model"
)

func newEntryCommand() *cobra.Command {
	var repoDir string

	cmd := &cobra.Command{
		Use:   "entry",
		Short: "Record and check journal entries",
	}
	cmd.PersistentFlags().StringVar(&repoDir, "repo", ".", "repository directory")

	var (
		date    string
		memo    string
		debits  []string
		credits []string
		closing bool
	)
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Append a balanced entry to the journal",
		Example: "  equity entry add --date 2025-03-15 --memo \"Aporte\" \\\n" +
			"    --debit banco=12500 --credit aportes_irrevocables=12500",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openProject(repoDir)
			if err != nil {
				return err
			}
			d, err := time.Parse(model.DateFormat, date)
			if err != nil {
				return fmt.Errorf("invalid --date %q: %w", date, err)
			}
			entry := model.JournalEntry{Date: d, Memo: memo, IsClosingEntry: closing}
			for _, spec := range debits {
				line, err := parseLineFlag(spec, true)
				if err != nil {
					return err
				}
				entry.Lines = append(entry.Lines, line)
			}
			for _, spec := range credits {
				line, err := parseLineFlag(spec, false)
				if err != nil {
					return err
				}
				entry.Lines = append(entry.Lines, line)
			}

			id, err := p.journal().Append(entry)
			if err != nil {
				return err
			}
			if _, err := p.commit("entry: "+id+" "+memo, p.relPath(journal.Path(p.root))); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Recorded %s\n", id)
			return nil
		},
	}
	addCmd.Flags().StringVar(&date, "date", "", "entry date (YYYY-MM-DD)")
	addCmd.Flags().StringVar(&memo, "memo", "", "entry description")
	addCmd.Flags().StringArrayVar(&debits, "debit", nil, "debit line as account_id=amount (repeatable)")
	addCmd.Flags().StringArrayVar(&credits, "credit", nil, "credit line as account_id=amount (repeatable)")
	addCmd.Flags().BoolVar(&closing, "closing", false, "mark as a period closing entry")
	_ = addCmd.MarkFlagRequired("date")

	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Report structural problems in the journal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openProject(repoDir)
			if err != nil {
				return err
			}
			entries, err := p.journal().Load()
			if err != nil {
				return err
			}
			issues := journal.Validate(entries, p.chart)
			for _, issue := range issues {
				fmt.Fprintln(cmd.OutOrStdout(), issue.Error())
			}
			if len(issues) > 0 {
				return fmt.Errorf("%d journal issue(s)", len(issues))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d entries OK\n", len(entries))
			return nil
		},
	}

	cmd.AddCommand(addCmd, checkCmd)
	return cmd
}

// parseLineFlag parses "account_id=amount".
func parseLineFlag(spec string, debit bool) (model.EntryLine, error) {
	acct, raw, ok := strings.Cut(spec, "=")
	if !ok || acct == "" {
		return model.EntryLine{}, fmt.Errorf("invalid line %q, want account_id=amount", spec)
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return model.EntryLine{}, fmt.Errorf("invalid amount in %q: %w", spec, err)
	}
	if debit {
		return model.EntryLine{AccountID: acct, Debit: amount}, nil
	}
	return model.EntryLine{AccountID: acct, Credit: amount}, nil
}
