// Package render turns a computed equity statement into markdown, terminal,
// HTML or JSON output.
package render

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/equity/internal/equity"
)

// Title heads every rendered statement.
const Title = "Estado de evolución del patrimonio neto"

// OverrideMark follows manually entered cells.
const OverrideMark = `\*`

// indent is a non-breaking space pair; table cells trim ordinary spaces.
const indent = "\u00a0\u00a0"

// Options controls markdown rendering.
type Options struct {
	Company   string
	Formatter equity.Formatter
}

// Markdown renders the statement matrix and its reconciliation.
func Markdown(res equity.Result, opts Options) string {
	f := opts.Formatter
	if f == nil {
		f = equity.NewCurrencyFormatter(equity.DefaultCurrency)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", Title)
	if opts.Company != "" {
		fmt.Fprintf(&b, "**%s**\n\n", escape(opts.Company))
	}
	fmt.Fprintf(&b, "Período: %s\n\n", res.Period.Label)

	writeMatrix(&b, res, f)
	if res.Overrides.Len() > 0 {
		fmt.Fprintf(&b, "%s Importe ingresado manualmente.\n\n", OverrideMark)
	}
	writeReconciliation(&b, res, f)
	return b.String()
}

func writeMatrix(b *strings.Builder, res equity.Result, f equity.Formatter) {
	b.WriteString("| Concepto |")
	for _, col := range res.Columns {
		fmt.Fprintf(b, " %s |", escape(col.ShortLabel))
	}
	b.WriteString(" Total |\n|---|")
	for range res.Columns {
		b.WriteString("---:|")
	}
	b.WriteString("---:|\n")

	for _, row := range res.Rows {
		label := strings.Repeat(indent, row.Indent) + escape(row.Label)
		if row.IsHeader || row.IsTotal {
			label = "**" + label + "**"
		}
		fmt.Fprintf(b, "| %s |", label)
		if row.IsHeader {
			b.WriteString(strings.Repeat(" |", len(res.Columns)+1))
			b.WriteString("\n")
			continue
		}
		for _, col := range res.Columns {
			cell := row.Cell(col.ID)
			fmt.Fprintf(b, " %s |", amount(f, cell.Amount, row.IsTotal, cell.IsOverridden))
		}
		fmt.Fprintf(b, " %s |\n", amount(f, row.Total, row.IsTotal, false))
	}
	b.WriteString("\n")
}

func amount(f equity.Formatter, v decimal.Decimal, bold, overridden bool) string {
	s := "-"
	if !v.IsZero() {
		s = f.Format(v)
	}
	if overridden {
		s += " " + OverrideMark
	}
	if bold {
		s = "**" + s + "**"
	}
	return s
}

func writeReconciliation(b *strings.Builder, res equity.Result, f equity.Formatter) {
	rec := res.Reconciliation
	b.WriteString("## Conciliación\n\n")
	fmt.Fprintf(b, "- Patrimonio neto al cierre: %s\n", f.Format(res.ClosingEquityTotal))
	fmt.Fprintf(b, "- Variación neta del ejercicio: %s\n", f.Format(res.NetVariation))
	b.WriteString("- Balance general: ")
	b.WriteString(status(res.ExternalEquityTotal, rec.MatchesBalance, rec.BalanceDiff, f))
	b.WriteString("\n- Estado de resultados: ")
	b.WriteString(status(res.CurrentResultFromExternalSource, rec.MatchesER, rec.ERDiff, f))
	b.WriteString("\n")

	if len(rec.Warnings) > 0 {
		b.WriteString("\n")
		for _, w := range rec.Warnings {
			fmt.Fprintf(b, "> **Warning:** %s\n>\n", escape(w))
		}
	}
}

func status(external *decimal.Decimal, matches bool, diff decimal.Decimal, f equity.Formatter) string {
	switch {
	case external == nil:
		return "no informado"
	case matches:
		return fmt.Sprintf("coincide (%s)", f.Format(*external))
	default:
		return fmt.Sprintf("no coincide, diferencia %s", f.Format(diff))
	}
}

var escaper = strings.NewReplacer("|", `\|`, "*", `\*`, "_", `\_`)

func escape(s string) string {
	return escaper.Replace(s)
}
