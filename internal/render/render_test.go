package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/cleared-dev/equity/internal/equity"
	"github.com/cleared-dev/equity/internal/model"
)

var usd = equity.NewCurrencyFormatter("USD")

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func amt(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func sampleResult(t *testing.T, overrides equity.Overrides, externalEquity *decimal.Decimal) equity.Result {
	t.Helper()
	accounts := []model.Account{
		{ID: "caja", Code: "1.1.01.001", Name: "Caja", Kind: model.KindAsset, NormalSide: model.SideDebit},
		{ID: "capital", Code: "3.1.01.001", Name: "Capital suscripto", Kind: model.KindEquity, NormalSide: model.SideCredit},
		{ID: "irrevocables", Code: "3.1.03.001", Name: "Aportes irrevocables", Kind: model.KindEquity, NormalSide: model.SideCredit},
	}
	entries := []model.JournalEntry{
		{ID: "2024-01-001", Date: day(2024, 1, 2), Memo: "Constitución", Lines: []model.EntryLine{
			{AccountID: "caja", Debit: decimal.NewFromInt(1000)},
			{AccountID: "capital", Credit: decimal.NewFromInt(1000)},
		}},
		{ID: "2025-02-001", Date: day(2025, 2, 1), Memo: "Aporte", Lines: []model.EntryLine{
			{AccountID: "caja", Debit: decimal.NewFromInt(250)},
			{AccountID: "irrevocables", Credit: decimal.NewFromInt(250)},
		}},
	}
	return equity.NewEngine(nil, equity.WithFormatter(usd)).Compute(equity.Input{
		Accounts:            accounts,
		Entries:             entries,
		Period:              model.FiscalYear(2025, time.January, 1),
		Overrides:           overrides,
		ExternalEquityTotal: externalEquity,
	})
}

func parse(md string) ast.Node {
	p := goldmark.New(goldmark.WithExtensions(extension.Table)).Parser()
	return p.Parse(text.NewReader([]byte(md)))
}

func countKind(root ast.Node, kind ast.NodeKind) int {
	n := 0
	_ = ast.Walk(root, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering && node.Kind() == kind {
			n++
		}
		return ast.WalkContinue, nil
	})
	return n
}

func TestMarkdown_Table(t *testing.T) {
	res := sampleResult(t, nil, nil)
	md := Markdown(res, Options{Company: "Demo SA", Formatter: usd})

	root := parse(md)
	assert.Equal(t, 1, countKind(root, east.KindTable))
	assert.Equal(t, 1, countKind(root, east.KindTableHeader))
	assert.Equal(t, len(equity.Layout()), countKind(root, east.KindTableRow))

	assert.Contains(t, md, "# "+Title)
	assert.Contains(t, md, "**Demo SA**")
	assert.Contains(t, md, "Período: 01/01/2025 al 31/12/2025")
	assert.Contains(t, md, "| Saldos al inicio del ejercicio | $1,000.00 |")
	assert.Contains(t, md, "**$1,250.00**")
	assert.Contains(t, md, indent+"Aportes de los propietarios")
	assert.NotContains(t, md, "Importe ingresado manualmente")
}

func TestMarkdown_Overrides(t *testing.T) {
	o := equity.Overrides{}
	o.Set(equity.OverrideKey{RowID: equity.RowInflationAdjustment, ColumnID: "ajuste_capital"}, decimal.NewFromInt(75))
	md := Markdown(sampleResult(t, o, nil), Options{Formatter: usd})

	assert.Contains(t, md, "$75.00 "+OverrideMark)
	assert.Contains(t, md, OverrideMark+" Importe ingresado manualmente.")
}

func TestMarkdown_Reconciliation(t *testing.T) {
	md := Markdown(sampleResult(t, nil, nil), Options{Formatter: usd})
	assert.Contains(t, md, "- Balance general: no informado")
	assert.Contains(t, md, "- Estado de resultados: no informado")
	assert.NotContains(t, md, "Warning")

	md = Markdown(sampleResult(t, nil, amt("1250")), Options{Formatter: usd})
	assert.Contains(t, md, "- Balance general: coincide ($1,250.00)")

	md = Markdown(sampleResult(t, nil, amt("1300")), Options{Formatter: usd})
	assert.Contains(t, md, "- Balance general: no coincide, diferencia -$50.00")
	assert.Contains(t, md, "> **Warning:** Balance sheet mismatch")
}

func TestMarkdown_DefaultFormatter(t *testing.T) {
	md := Markdown(sampleResult(t, nil, nil), Options{})
	assert.Contains(t, md, equity.NewCurrencyFormatter(equity.DefaultCurrency).Format(decimal.NewFromInt(1000)))
}

func TestEscape(t *testing.T) {
	assert.Equal(t, `a\|b \*c\* d\_e`, escape("a|b *c* d_e"))
}

func TestHTML(t *testing.T) {
	html, err := HTML(Markdown(sampleResult(t, nil, nil), Options{Formatter: usd}))
	require.NoError(t, err)
	assert.Contains(t, html, "<table>")
	assert.Contains(t, html, "<h1>"+Title+"</h1>")
	assert.Equal(t, len(equity.Layout())+1, strings.Count(html, "<tr>"))
}

func TestTerminal(t *testing.T) {
	out, err := Terminal(Markdown(sampleResult(t, nil, nil), Options{Formatter: usd}), 200)
	require.NoError(t, err)
	assert.Contains(t, out, "Conciliación")
	assert.Contains(t, out, "Período")
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, sampleResult(t, nil, amt("1250"))))

	var got struct {
		ClosingEquityTotal string `json:"closingEquityTotal"`
		Rows               []struct {
			ID string `json:"id"`
		} `json:"rows"`
		Reconciliation struct {
			MatchesBalance bool     `json:"matchesBalance"`
			Warnings       []string `json:"warnings"`
		} `json:"reconciliation"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "1250", got.ClosingEquityTotal)
	assert.Len(t, got.Rows, len(equity.Layout()))
	assert.True(t, got.Reconciliation.MatchesBalance)
	assert.NotNil(t, got.Reconciliation.Warnings)
}
