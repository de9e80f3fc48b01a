package equity

import (
	"github.com/shopspring/decimal"
)

// RowType identifies what a matrix row represents.
type RowType string

const (
	RowTypeOpening             RowType = "OPENING_BALANCE"
	RowTypeInflationAdjustment RowType = "INFLATION_ADJUSTMENT"
	RowTypeAREA                RowType = "AREA"
	RowTypeAdjustedOpening     RowType = "ADJUSTED_OPENING_BALANCE"
	RowTypeHeader              RowType = "HEADER"
	RowTypeOwnerContributions  RowType = "OWNER_CONTRIBUTIONS"
	RowTypeCapitalizations     RowType = "CAPITALIZATIONS"
	RowTypeReserves            RowType = "RESERVES"
	RowTypeDistributions       RowType = "DISTRIBUTIONS"
	RowTypeCurrentResult       RowType = "CURRENT_RESULT"
	RowTypeOtherMovements      RowType = "OTHER_MOVEMENTS"
	RowTypeTotalVariations     RowType = "TOTAL_VARIATIONS"
	RowTypeClosing             RowType = "CLOSING_BALANCE"
)

// Row ids, used as the first half of override keys.
const (
	RowOpening             = "opening"
	RowInflationAdjustment = "inflation_adjustment"
	RowAREA                = "area"
	RowAdjustedOpening     = "adjusted_opening"
	RowVariationsHeader    = "variations_header"
	RowOwnerContributions  = "owner_contributions"
	RowCapitalizations     = "capitalizations"
	RowReserves            = "reserves"
	RowDistributions       = "distributions"
	RowCurrentResult       = "current_result"
	RowOtherMovements      = "other_movements"
	RowTotalVariations     = "total_variations"
	RowClosing             = "closing"
)

// RowKind distinguishes how a row's cells are produced.
type RowKind string

const (
	KindSource  RowKind = "source"
	KindDerived RowKind = "derived"
	KindHeader  RowKind = "header"
)

// Cell is one (row, column) amount of the matrix. Breakdown lists the lines
// behind the amount and is empty when the cell is overridden.
type Cell struct {
	Amount       decimal.Decimal `json:"amount"`
	IsOverridden bool            `json:"isOverridden"`
	Breakdown    []CellBreakdown `json:"breakdown,omitempty"`
}

// Row is a built matrix row. Header rows carry no cells.
type Row struct {
	ID       string          `json:"id"`
	Type     RowType         `json:"type"`
	Kind     RowKind         `json:"kind"`
	Label    string          `json:"label"`
	Cells    map[string]Cell `json:"cells,omitempty"`
	Total    decimal.Decimal `json:"total"`
	IsHeader bool            `json:"isHeader,omitempty"`
	IsTotal  bool            `json:"isTotal,omitempty"`
	Indent   int             `json:"indent,omitempty"`
}

// Cell returns the cell for column id, zero if absent.
func (r Row) Cell(columnID string) Cell {
	if c, ok := r.Cells[columnID]; ok {
		return c
	}
	return Cell{Amount: decimal.Zero}
}

// RowSpec declares a row of the layout. It is one of SourceRow, DerivedRow or HeaderRow.
type RowSpec interface {
	rowID() string
}

// SourceRow is aggregated from balances or classified movements.
type SourceRow struct {
	ID     string
	Type   RowType
	Label  string
	Indent int
}

// DerivedRow sums the same-column cells of earlier rows.
type DerivedRow struct {
	ID      string
	Type    RowType
	Label   string
	Sources []string
	IsTotal bool
}

// HeaderRow is a label-only grouping row.
type HeaderRow struct {
	ID    string
	Label string
}

func (s SourceRow) rowID() string  { return s.ID }
func (d DerivedRow) rowID() string { return d.ID }
func (h HeaderRow) rowID() string  { return h.ID }

// Layout returns the rows of the statement in presentation order.
func Layout() []RowSpec {
	return []RowSpec{
		SourceRow{ID: RowOpening, Type: RowTypeOpening, Label: "Saldos al inicio del ejercicio"},
		SourceRow{ID: RowInflationAdjustment, Type: RowTypeInflationAdjustment, Label: "Ajuste por inflación", Indent: 1},
		SourceRow{ID: RowAREA, Type: RowTypeAREA, Label: "Ajuste de resultados de ejercicios anteriores (AREA)", Indent: 1},
		DerivedRow{
			ID:      RowAdjustedOpening,
			Type:    RowTypeAdjustedOpening,
			Label:   "Saldos al inicio ajustados",
			Sources: []string{RowOpening, RowInflationAdjustment, RowAREA},
			IsTotal: true,
		},
		HeaderRow{ID: RowVariationsHeader, Label: "Variaciones del ejercicio"},
		SourceRow{ID: RowOwnerContributions, Type: RowTypeOwnerContributions, Label: "Aportes de los propietarios", Indent: 1},
		SourceRow{ID: RowCapitalizations, Type: RowTypeCapitalizations, Label: "Capitalizaciones", Indent: 1},
		SourceRow{ID: RowReserves, Type: RowTypeReserves, Label: "Constitución de reservas", Indent: 1},
		SourceRow{ID: RowDistributions, Type: RowTypeDistributions, Label: "Distribución de resultados", Indent: 1},
		SourceRow{ID: RowCurrentResult, Type: RowTypeCurrentResult, Label: "Resultado del ejercicio", Indent: 1},
		SourceRow{ID: RowOtherMovements, Type: RowTypeOtherMovements, Label: "Otros movimientos", Indent: 1},
		DerivedRow{
			ID:    RowTotalVariations,
			Type:  RowTypeTotalVariations,
			Label: "Total de variaciones del ejercicio",
			Sources: []string{
				RowOwnerContributions, RowCapitalizations, RowReserves,
				RowDistributions, RowCurrentResult, RowOtherMovements,
			},
			IsTotal: true,
		},
		DerivedRow{
			ID:      RowClosing,
			Type:    RowTypeClosing,
			Label:   "Saldos al cierre del ejercicio",
			Sources: []string{RowAdjustedOpening, RowTotalVariations},
			IsTotal: true,
		},
	}
}

// RowIDs returns the ids of the rows in layout that accept overrides.
func RowIDs(layout []RowSpec) []string {
	var ids []string
	for _, spec := range layout {
		if _, ok := spec.(HeaderRow); ok {
			continue
		}
		ids = append(ids, spec.rowID())
	}
	return ids
}
