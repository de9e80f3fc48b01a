package commands_test

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reportJSON struct {
	OpeningEquityTotal decimal.Decimal `json:"openingEquityTotal"`
	ClosingEquityTotal decimal.Decimal `json:"closingEquityTotal"`
	NetVariation       decimal.Decimal `json:"netVariation"`
	Reconciliation     struct {
		Warnings []string `json:"warnings"`
	} `json:"reconciliation"`
}

func TestReport_JSON(t *testing.T) {
	dir := initProject(t, true)

	stdout, stderr, err := runEquitySplit(t, "report", "--repo", dir, "--year", "2025", "--format", "json")
	require.NoError(t, err, stderr)

	var res reportJSON
	require.NoError(t, json.Unmarshal([]byte(stdout), &res))
	assert.Equal(t, "130000", res.OpeningEquityTotal.String())
	assert.Equal(t, "188000", res.ClosingEquityTotal.String())
	assert.Equal(t, "58000", res.NetVariation.String())
	assert.Empty(t, res.Reconciliation.Warnings)
}

func TestReport_ExplicitPeriod(t *testing.T) {
	dir := initProject(t, true)

	stdout, stderr, err := runEquitySplit(t, "report", "--repo", dir,
		"--from", "2024-01-01", "--to", "2024-12-31", "--format", "json")
	require.NoError(t, err, stderr)

	var res reportJSON
	require.NoError(t, json.Unmarshal([]byte(stdout), &res))
	assert.True(t, res.OpeningEquityTotal.IsZero())
	assert.Equal(t, "130000", res.ClosingEquityTotal.String())
}

func TestReport_Markdown(t *testing.T) {
	dir := initProject(t, true)

	stdout, _, err := runEquitySplit(t, "report", "--repo", dir, "--year", "2025")
	require.NoError(t, err)
	assert.Contains(t, stdout, "# Estado de evolución del patrimonio neto")
	assert.Contains(t, stdout, "**Test SA**")
	assert.Contains(t, stdout, "Período: 01/01/2025 al 31/12/2025")
	assert.Contains(t, stdout, "Balance general: no informado")
}

func TestReport_ReconciliationWarnings(t *testing.T) {
	dir := initProject(t, true)

	stdout, stderr, err := runEquitySplit(t, "report", "--repo", dir, "--year", "2025",
		"--external-result", "50000", "--external-equity", "190000")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Estado de resultados: coincide")
	assert.Contains(t, stdout, "Balance general: no coincide")
	assert.Contains(t, stderr, "reconciliation")
}

func TestReport_HTML(t *testing.T) {
	dir := initProject(t, true)

	stdout, _, err := runEquitySplit(t, "report", "--repo", dir, "--year", "2025", "--format", "html")
	require.NoError(t, err)
	assert.Contains(t, stdout, "<table>")
	assert.Contains(t, stdout, "<h1>")
}

func TestReport_Terminal(t *testing.T) {
	dir := initProject(t, true)

	stdout, _, err := runEquitySplit(t, "report", "--repo", dir, "--year", "2025", "--format", "terminal")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Estado de evolución del patrimonio neto")
}

func TestReport_Errors(t *testing.T) {
	dir := initProject(t, true)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"bad format", []string{"--format", "pdf"}, "unsupported format"},
		{"bad external", []string{"--external-result", "abc"}, "invalid --external-result"},
		{"inverted period", []string{"--from", "2025-12-31", "--to", "2025-01-01"}, "before start"},
		{"from without to", []string{"--from", "2025-01-01"}, "must all be set"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"report", "--repo", dir}, tt.args...)
			out, err := runEquity(t, args...)
			require.Error(t, err)
			assert.Contains(t, out, tt.want)
		})
	}
}

func TestReport_NotAProject(t *testing.T) {
	out, err := runEquity(t, "report", "--repo", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, out, "reading config")
}

func TestReport_DebugLogging(t *testing.T) {
	dir := initProject(t, true)

	stdout, stderr, err := runEquitySplit(t, "report", "--repo", dir, "--year", "2025", "--log-level", "debug")
	require.NoError(t, err)
	assert.NotEmpty(t, stdout)
	assert.Contains(t, stderr, "level=DEBUG")
	assert.Contains(t, stderr, "equity statement computed")
}

func TestReport_JSONLogs(t *testing.T) {
	dir := initProject(t, true)

	_, stderr, err := runEquitySplit(t, "report", "--repo", dir, "--year", "2025",
		"--external-equity", "1", "--log-json")
	require.NoError(t, err)
	assert.Contains(t, stderr, `"msg":"reconciliation"`)
}
