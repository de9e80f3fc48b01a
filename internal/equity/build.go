package equity

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// BuildInput carries everything the builder aggregates.
type BuildInput struct {
	Opening               map[string]ColumnBalance
	LedgerClosing         map[string]ColumnBalance
	Movements             []ClassifiedMovement
	Overrides             Overrides
	ExternalCurrentResult *decimal.Decimal
}

// Build assembles the statement rows in Layout order.
func (c *Catalog) Build(in BuildInput) []Row {
	return c.BuildLayout(Layout(), in)
}

// BuildLayout assembles rows for an arbitrary layout. It never fails: a
// derived row whose source has not been built treats that source as zero.
func (c *Catalog) BuildLayout(layout []RowSpec, in BuildInput) []Row {
	rows := make([]Row, 0, len(layout))
	built := make(map[string]Row, len(layout))

	for _, spec := range layout {
		var row Row
		switch s := spec.(type) {
		case HeaderRow:
			row = Row{ID: s.ID, Type: RowTypeHeader, Kind: KindHeader, Label: s.Label, Total: decimal.Zero, IsHeader: true}
		case SourceRow:
			row = c.sourceRow(s, in)
		case DerivedRow:
			row = c.derivedRow(s, built, in)
		default:
			continue
		}
		rows = append(rows, row)
		built[row.ID] = row
	}
	return rows
}

// ValidateLayout reports derived rows that reference a row not declared
// before them, and duplicate row ids.
func ValidateLayout(layout []RowSpec) error {
	declared := make(map[string]bool, len(layout))
	for _, spec := range layout {
		id := spec.rowID()
		if declared[id] {
			return fmt.Errorf("duplicate row id %q", id)
		}
		if d, ok := spec.(DerivedRow); ok {
			for _, src := range d.Sources {
				if !declared[src] {
					return fmt.Errorf("derived row %q references %q before it is declared", id, src)
				}
			}
		}
		declared[id] = true
	}
	return nil
}

func (c *Catalog) sourceRow(s SourceRow, in BuildInput) Row {
	var natural map[string]Cell
	switch s.Type {
	case RowTypeOpening:
		natural = cellsFromBalances(in.Opening)
	case RowTypeInflationAdjustment:
		natural = map[string]Cell{}
	case RowTypeCurrentResult:
		natural = c.currentResultCells(in)
	default:
		natural = aggregateMovements(in.Movements, s.Type, func(MovementLine) bool { return true })
	}
	return c.finishRow(Row{ID: s.ID, Type: s.Type, Kind: KindSource, Label: s.Label, Indent: s.Indent}, natural, in.Overrides)
}

// currentResultCells fills only the current-result column. An external figure
// wins over movements unless that cell is overridden.
func (c *Catalog) currentResultCells(in BuildInput) map[string]Cell {
	col := c.currentResultColumn
	if _, overridden := in.Overrides.Get(RowCurrentResult, col); !overridden && in.ExternalCurrentResult != nil {
		return map[string]Cell{col: {Amount: *in.ExternalCurrentResult}}
	}
	cells := aggregateMovements(in.Movements, RowTypeCurrentResult, func(l MovementLine) bool {
		return hasAnyPrefix(l.Account.Code, c.signals.CurrentResult)
	})
	out := make(map[string]Cell, 1)
	if cell, ok := cells[col]; ok {
		out[col] = cell
	}
	return out
}

func (c *Catalog) derivedRow(d DerivedRow, built map[string]Row, in BuildInput) Row {
	natural := make(map[string]Cell, len(c.columns))
	for _, col := range c.columns {
		sum := decimal.Zero
		for _, src := range d.Sources {
			if r, ok := built[src]; ok {
				sum = sum.Add(r.Cell(col.ID).Amount)
			}
		}
		cell := Cell{Amount: sum}
		if d.ID == RowClosing {
			if b, ok := in.LedgerClosing[col.ID]; ok {
				cell.Breakdown = b.Breakdown
			}
		}
		natural[col.ID] = cell
	}
	return c.finishRow(Row{ID: d.ID, Type: d.Type, Kind: KindDerived, Label: d.Label, IsTotal: d.IsTotal}, natural, in.Overrides)
}

// finishRow lays natural cells over every catalog column, applies overrides
// and computes the total.
func (c *Catalog) finishRow(row Row, natural map[string]Cell, overrides Overrides) Row {
	row.Cells = make(map[string]Cell, len(c.columns))
	row.Total = decimal.Zero
	for _, col := range c.columns {
		cell, ok := natural[col.ID]
		if !ok {
			cell = Cell{Amount: decimal.Zero}
		}
		if v, ok := overrides.Get(row.ID, col.ID); ok {
			cell.Amount = v
			cell.IsOverridden = true
			cell.Breakdown = nil
		}
		row.Cells[col.ID] = cell
		row.Total = row.Total.Add(cell.Amount)
	}
	return row
}

func cellsFromBalances(balances map[string]ColumnBalance) map[string]Cell {
	cells := make(map[string]Cell, len(balances))
	for id, b := range balances {
		cells[id] = Cell{Amount: b.Balance, Breakdown: b.Breakdown}
	}
	return cells
}

func aggregateMovements(movements []ClassifiedMovement, rowType RowType, include func(MovementLine) bool) map[string]Cell {
	cells := make(map[string]Cell)
	for _, m := range movements {
		if m.Classification.RowType != rowType {
			continue
		}
		for _, l := range m.Lines {
			if l.ColumnID == "" || !include(l) {
				continue
			}
			cell, ok := cells[l.ColumnID]
			if !ok {
				cell.Amount = decimal.Zero
			}
			cell.Amount = cell.Amount.Add(l.Amount)
			cell.Breakdown = append(cell.Breakdown, breakdownFor(m.Entry, l.Account, l.Amount))
			cells[l.ColumnID] = cell
		}
	}
	return cells
}

// FindRow returns the row with the given id.
func FindRow(rows []Row, id string) (Row, bool) {
	for _, r := range rows {
		if r.ID == id {
			return r, true
		}
	}
	return Row{}, false
}
