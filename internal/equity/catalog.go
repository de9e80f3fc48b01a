package equity

import (
	"fmt"
	"strings"

	"github.com/cleared-dev/equity/internal/apperrors"
)

// EquityPrefix identifies equity accounts by code.
const EquityPrefix = "3."

// Group is a display grouping of columns.
type Group string

const (
	GroupContributions Group = "contributions"
	GroupReserves      Group = "reserves"
	GroupEarnings      Group = "earnings"
)

// Column is one reporting column of the statement.
type Column struct {
	ID         string   `json:"id" yaml:"id"`
	Label      string   `json:"label" yaml:"label"`
	ShortLabel string   `json:"shortLabel" yaml:"short_label"`
	Prefixes   []string `json:"accountCodePrefixes" yaml:"prefixes"`
	Group      Group    `json:"group" yaml:"group"`
}

// Matches reports whether code starts with any of the column's prefixes.
func (c Column) Matches(code string) bool {
	return hasAnyPrefix(code, c.Prefixes)
}

// SignalPrefixes are the account code prefixes the classifier inspects.
type SignalPrefixes struct {
	AREA             []string `yaml:"area"`
	Distributions    []string `yaml:"distributions"`
	Reserves         []string `yaml:"reserves"`
	RetainedEarnings []string `yaml:"retained_earnings"`
	CurrentResult    []string `yaml:"current_result"`
	PaidInCapital    []string `yaml:"paid_in_capital"`
	Cash             []string `yaml:"cash"`
	Income           []string `yaml:"income"`
	Expense          []string `yaml:"expense"`
}

// Catalog maps equity account codes to columns. It is immutable once built.
type Catalog struct {
	columns             []Column
	signals             SignalPrefixes
	currentResultColumn string
}

// NewCatalog validates columns and signals and returns a Catalog.
//
// Column ids must be unique and prefixes must be mutually exclusive across
// columns: no prefix may equal or be a prefix of another column's prefix, so
// first-match lookup never depends on catalog order. The current-result
// prefixes must resolve to a column.
func NewCatalog(columns []Column, signals SignalPrefixes) (*Catalog, error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("%w: catalog has no columns", apperrors.ErrValidation)
	}

	seen := make(map[string]bool, len(columns))
	for _, col := range columns {
		if col.ID == "" {
			return nil, fmt.Errorf("%w: column %q has no id", apperrors.ErrValidation, col.Label)
		}
		if seen[col.ID] {
			return nil, fmt.Errorf("%w: duplicate column id %q", apperrors.ErrValidation, col.ID)
		}
		seen[col.ID] = true
		if len(col.Prefixes) == 0 {
			return nil, fmt.Errorf("%w: column %q has no prefixes", apperrors.ErrValidation, col.ID)
		}
		for _, p := range col.Prefixes {
			if !strings.HasPrefix(p, EquityPrefix) {
				return nil, fmt.Errorf("%w: column %q prefix %q is not an equity code", apperrors.ErrValidation, col.ID, p)
			}
		}
	}

	for i, a := range columns {
		for _, b := range columns[i+1:] {
			for _, pa := range a.Prefixes {
				for _, pb := range b.Prefixes {
					if strings.HasPrefix(pa, pb) || strings.HasPrefix(pb, pa) {
						return nil, fmt.Errorf("%w: prefix %q of column %q overlaps prefix %q of column %q",
							apperrors.ErrValidation, pa, a.ID, pb, b.ID)
					}
				}
			}
		}
	}

	cols := make([]Column, len(columns))
	for i, col := range columns {
		col.Prefixes = append([]string(nil), col.Prefixes...)
		cols[i] = col
	}
	c := &Catalog{columns: cols, signals: signals}

	for _, p := range signals.CurrentResult {
		if col, ok := c.ColumnFor(p); ok {
			c.currentResultColumn = col.ID
			break
		}
	}
	if c.currentResultColumn == "" {
		return nil, fmt.Errorf("%w: current-result prefixes %v map to no column", apperrors.ErrValidation, signals.CurrentResult)
	}
	return c, nil
}

// DefaultColumns returns the eight columns of the Argentine statement.
func DefaultColumns() []Column {
	return []Column{
		{ID: "capital_social", Label: "Capital suscripto", ShortLabel: "Capital", Prefixes: []string{"3.1.01", "3.1.05"}, Group: GroupContributions},
		{ID: "ajuste_capital", Label: "Ajuste de capital", ShortLabel: "Aj. capital", Prefixes: []string{"3.1.02"}, Group: GroupContributions},
		{ID: "aportes_irrevocables", Label: "Aportes irrevocables", ShortLabel: "Ap. irrev.", Prefixes: []string{"3.1.03"}, Group: GroupContributions},
		{ID: "prima_emision", Label: "Primas de emisión", ShortLabel: "Primas", Prefixes: []string{"3.1.04"}, Group: GroupContributions},
		{ID: "reserva_legal", Label: "Reserva legal", ShortLabel: "Res. legal", Prefixes: []string{"3.2.01"}, Group: GroupReserves},
		{ID: "otras_reservas", Label: "Otras reservas", ShortLabel: "Otras res.", Prefixes: []string{"3.2.02", "3.2.03", "3.2.04"}, Group: GroupReserves},
		{ID: "resultados_no_asignados", Label: "Resultados no asignados", ShortLabel: "RNA", Prefixes: []string{"3.3.01", "3.3.03", "3.3.04"}, Group: GroupEarnings},
		{ID: "resultado_ejercicio", Label: "Resultado del ejercicio", ShortLabel: "Res. ejerc.", Prefixes: []string{"3.3.02"}, Group: GroupEarnings},
	}
}

// DefaultSignals returns the classifier prefixes of the Argentine chart.
// Distributions include dividends payable (2.1.06) on the liability side.
func DefaultSignals() SignalPrefixes {
	return SignalPrefixes{
		AREA:             []string{"3.3.03"},
		Distributions:    []string{"3.3.04", "2.1.06"},
		Reserves:         []string{"3.2"},
		RetainedEarnings: []string{"3.3.01"},
		CurrentResult:    []string{"3.3.02"},
		PaidInCapital:    []string{"3.1"},
		Cash:             []string{"1.1.01"},
		Income:           []string{"4."},
		Expense:          []string{"5."},
	}
}

// DefaultCatalog returns the validated default catalog.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(DefaultColumns(), DefaultSignals())
	if err != nil {
		panic(fmt.Sprintf("default catalog is invalid: %v", err))
	}
	return c
}

// Columns returns a copy of the catalog columns in display order.
func (c *Catalog) Columns() []Column {
	out := make([]Column, len(c.columns))
	copy(out, c.columns)
	return out
}

// Signals returns the classifier prefixes.
func (c *Catalog) Signals() SignalPrefixes {
	return c.signals
}

// CurrentResultColumn returns the id of the column that holds the period result.
func (c *Catalog) CurrentResultColumn() string {
	return c.currentResultColumn
}

// HasColumn reports whether id names a catalog column.
func (c *Catalog) HasColumn(id string) bool {
	for _, col := range c.columns {
		if col.ID == id {
			return true
		}
	}
	return false
}

// ColumnFor returns the first column whose prefixes match code.
func (c *Catalog) ColumnFor(code string) (Column, bool) {
	for _, col := range c.columns {
		if col.Matches(code) {
			return col, true
		}
	}
	return Column{}, false
}

// IsEquityAccount reports whether code belongs to an equity account.
func IsEquityAccount(code string) bool {
	return strings.HasPrefix(code, EquityPrefix)
}

func hasAnyPrefix(code string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(code, p) {
			return true
		}
	}
	return false
}
