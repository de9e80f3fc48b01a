package commands

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/equity/internal/equity"
	"github.com/cleared-dev/equity/internal/journal"
	"github.com/cleared-dev/equity/internal/model"
	"github.com/cleared-dev/equity/internal/render"
)

// Report output formats.
const (
	formatMarkdown = "markdown"
	formatTerminal = "terminal"
	formatJSON     = "json"
	formatHTML     = "html"
)

type reportOptions struct {
	repoDir        string
	from, to       string
	year           int
	externalResult string
	externalEquity string
	format         string
	width          int
}

func newReportCommand() *cobra.Command {
	var opts reportOptions

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Compute the statement of changes in equity",
		Long: "Compute the statement of changes in equity for a period. Without --from/--to\n" +
			"the fiscal year starting in --year (default: current year) is used.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.repoDir, "repo", ".", "repository directory")
	cmd.Flags().StringVar(&opts.from, "from", "", "period start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.to, "to", "", "period end (YYYY-MM-DD)")
	cmd.Flags().IntVar(&opts.year, "year", time.Now().Year(), "fiscal year, when --from/--to are not given")
	cmd.Flags().StringVar(&opts.externalResult, "external-result", "", "net result from the income statement")
	cmd.Flags().StringVar(&opts.externalEquity, "external-equity", "", "total equity from the balance sheet")
	cmd.Flags().StringVar(&opts.format, "format", formatMarkdown, "output format (markdown, terminal, json, html)")
	cmd.Flags().IntVar(&opts.width, "width", 120, "word wrap width for terminal output")
	cmd.MarkFlagsRequiredTogether("from", "to")

	return cmd
}

func runReport(w io.Writer, opts reportOptions) error {
	switch opts.format {
	case formatMarkdown, formatTerminal, formatJSON, formatHTML:
	default:
		return fmt.Errorf("unsupported format %q", opts.format)
	}

	p, err := openProject(opts.repoDir)
	if err != nil {
		return err
	}

	period, err := reportPeriod(p, opts)
	if err != nil {
		return err
	}
	externalResult, err := optionalAmount("external-result", opts.externalResult)
	if err != nil {
		return err
	}
	externalEquity, err := optionalAmount("external-equity", opts.externalEquity)
	if err != nil {
		return err
	}

	entries, err := p.journal().Load()
	if err != nil {
		return err
	}
	for _, issue := range journal.Validate(entries, p.chart) {
		slog.Warn("journal issue", "entry", issue.EntryID, "issue", issue.Description)
	}

	ov, err := p.overrides().Load()
	if err != nil {
		return err
	}

	res := p.engine().Compute(equity.Input{
		Accounts:              p.chart.All(),
		Entries:               entries,
		Period:                period,
		Overrides:             ov,
		ExternalCurrentResult: externalResult,
		ExternalEquityTotal:   externalEquity,
	})
	for _, warning := range res.Reconciliation.Warnings {
		slog.Warn("reconciliation", "warning", warning)
	}

	if opts.format == formatJSON {
		return render.JSON(w, res)
	}

	md := render.Markdown(res, render.Options{Company: p.cfg.Company.Name, Formatter: p.cfg.Formatter()})
	out := md
	switch opts.format {
	case formatTerminal:
		out, err = render.Terminal(md, opts.width)
	case formatHTML:
		out, err = render.HTML(md)
	}
	if err != nil {
		return fmt.Errorf("rendering: %w", err)
	}
	_, err = io.WriteString(w, out)
	return err
}

func reportPeriod(p *project, opts reportOptions) (model.Period, error) {
	if opts.from != "" {
		return model.ParsePeriod(opts.from, opts.to)
	}
	return p.cfg.FiscalYear(opts.year)
}

func optionalAmount(flag, s string) (*decimal.Decimal, error) {
	if s == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s %q: %w", flag, s, err)
	}
	return &d, nil
}
