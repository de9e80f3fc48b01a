package equity

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/equity/internal/model"
)

func buildFixture() BuildInput {
	c := DefaultCatalog()
	accts := accountsByID()
	opening := c.Accumulate([]model.JournalEntry{
		entry("o1", date(2024, 3, 1), "constitución", dr("cash", "10000"), cr("capital", "10000")),
		entry("o2", date(2024, 12, 31), "refundición 2024", dr("sales", "2500"), cr("retained", "2500")),
	}, accts)
	movements := c.Classify([]model.JournalEntry{
		entry("m1", date(2025, 2, 1), "aporte", dr("cash", "3000"), cr("irrevocables", "3000")),
		entry("m2", date(2025, 4, 30), "reserva legal", dr("retained", "125"), cr("legal_reserve", "125")),
		entry("m3", date(2025, 5, 15), "dividendos", dr("dividends", "1000"), cr("dividends_payable", "1000")),
		entry("m4", date(2025, 6, 1), "AREA", dr("area", "200"), cr("receivables", "200")),
		entry("m5", date(2025, 12, 31), "refundición", dr("sales", "4000"), cr("fees", "1500"), cr("current_result", "2500")),
		entry("m6", date(2025, 8, 1), "honorarios", dr("current_result", "100"), cr("cash", "100")),
	}, accts)
	return BuildInput{Opening: opening, Movements: movements, Overrides: Overrides{}}
}

func rowByID(t *testing.T, rows []Row, id string) Row {
	t.Helper()
	r, ok := FindRow(rows, id)
	require.True(t, ok, "row %s missing", id)
	return r
}

func sumCells(r Row) decimal.Decimal {
	s := decimal.Zero
	for _, c := range r.Cells {
		s = s.Add(c.Amount)
	}
	return s
}

func TestBuild_Order(t *testing.T) {
	rows := DefaultCatalog().Build(buildFixture())
	var ids []string
	for _, r := range rows {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []string{
		RowOpening, RowInflationAdjustment, RowAREA, RowAdjustedOpening, RowVariationsHeader,
		RowOwnerContributions, RowCapitalizations, RowReserves, RowDistributions,
		RowCurrentResult, RowOtherMovements, RowTotalVariations, RowClosing,
	}, ids)

	header := rowByID(t, rows, RowVariationsHeader)
	assert.True(t, header.IsHeader)
	assert.Empty(t, header.Cells)
	assert.True(t, header.Total.IsZero())
}

func TestBuild_Aggregates(t *testing.T) {
	rows := DefaultCatalog().Build(buildFixture())

	opening := rowByID(t, rows, RowOpening)
	assert.Equal(t, "10000", opening.Cell("capital_social").Amount.String())
	assert.Equal(t, "2500", opening.Cell("resultados_no_asignados").Amount.String())
	assert.Equal(t, "12500", opening.Total.String())
	assert.Len(t, opening.Cell("capital_social").Breakdown, 1)

	assert.True(t, rowByID(t, rows, RowInflationAdjustment).Total.IsZero())
	assert.Equal(t, "-200", rowByID(t, rows, RowAREA).Cell("resultados_no_asignados").Amount.String())
	assert.Equal(t, "3000", rowByID(t, rows, RowOwnerContributions).Cell("aportes_irrevocables").Amount.String())

	reserves := rowByID(t, rows, RowReserves)
	assert.Equal(t, "125", reserves.Cell("reserva_legal").Amount.String())
	assert.Equal(t, "-125", reserves.Cell("resultados_no_asignados").Amount.String())
	assert.True(t, reserves.Total.IsZero())

	assert.Equal(t, "-1000", rowByID(t, rows, RowDistributions).Total.String())
	assert.Equal(t, "2500", rowByID(t, rows, RowCurrentResult).Cell("resultado_ejercicio").Amount.String())
	assert.Equal(t, "-100", rowByID(t, rows, RowOtherMovements).Cell("resultado_ejercicio").Amount.String())

	for _, r := range rows {
		assert.True(t, r.Total.Equal(sumCells(r)), "row %s total", r.ID)
	}
}

func TestBuild_DerivedRows(t *testing.T) {
	rows := DefaultCatalog().Build(buildFixture())
	adjusted := rowByID(t, rows, RowAdjustedOpening)
	variations := rowByID(t, rows, RowTotalVariations)
	closing := rowByID(t, rows, RowClosing)

	assert.Equal(t, "12300", adjusted.Total.String())
	assert.Equal(t, "4400", variations.Total.String())
	assert.Equal(t, "16700", closing.Total.String())
	assert.True(t, closing.Total.Equal(adjusted.Total.Add(variations.Total)))
	assert.Equal(t, KindDerived, closing.Kind)
	assert.True(t, closing.IsTotal)
}

func TestBuild_DerivedConsistency(t *testing.T) {
	in := buildFixture()
	in.Overrides.Set(OverrideKey{RowID: RowInflationAdjustment, ColumnID: "capital_social"}, dec("450.75"))
	in.Overrides.Set(OverrideKey{RowID: RowDistributions, ColumnID: "resultados_no_asignados"}, dec("-800"))

	c := DefaultCatalog()
	rows := c.Build(in)
	for _, spec := range Layout() {
		d, ok := spec.(DerivedRow)
		if !ok {
			continue
		}
		row := rowByID(t, rows, d.ID)
		for _, col := range c.Columns() {
			want := decimal.Zero
			for _, src := range d.Sources {
				want = want.Add(rowByID(t, rows, src).Cell(col.ID).Amount)
			}
			assert.True(t, want.Equal(row.Cell(col.ID).Amount), "%s/%s: want %s got %s", d.ID, col.ID, want, row.Cell(col.ID).Amount)
		}
	}

	assert.Equal(t, "10450.75", rowByID(t, rows, RowAdjustedOpening).Cell("capital_social").Amount.String())
	closing := rowByID(t, rows, RowClosing)
	assert.True(t, closing.Total.Equal(rowByID(t, rows, RowAdjustedOpening).Total.Add(rowByID(t, rows, RowTotalVariations).Total)))
}

func TestBuild_OverrideMasking(t *testing.T) {
	c := DefaultCatalog()
	in := buildFixture()
	key := OverrideKey{RowID: RowReserves, ColumnID: "reserva_legal"}
	in.Overrides.Set(key, dec("999"))

	rows := c.Build(in)
	cell := rowByID(t, rows, RowReserves).Cell("reserva_legal")
	assert.Equal(t, "999", cell.Amount.String())
	assert.True(t, cell.IsOverridden)
	assert.False(t, rowByID(t, rows, RowReserves).Cell("resultados_no_asignados").IsOverridden)

	in.Overrides.Delete(key)
	rows = c.Build(in)
	cell = rowByID(t, rows, RowReserves).Cell("reserva_legal")
	assert.Equal(t, "125", cell.Amount.String())
	assert.False(t, cell.IsOverridden)
}

func TestBuild_OverrideOnDerivedRowMasks(t *testing.T) {
	c := DefaultCatalog()
	in := buildFixture()
	in.Overrides.Set(OverrideKey{RowID: RowAdjustedOpening, ColumnID: "capital_social"}, dec("1"))

	rows := c.Build(in)
	adjusted := rowByID(t, rows, RowAdjustedOpening)
	assert.Equal(t, "1", adjusted.Cell("capital_social").Amount.String())
	assert.True(t, adjusted.Cell("capital_social").IsOverridden)
	// The masked value flows into the closing row.
	assert.Equal(t, "1", rowByID(t, rows, RowClosing).Cell("capital_social").Amount.String())
}

func TestBuild_CurrentResultExternal(t *testing.T) {
	c := DefaultCatalog()
	in := buildFixture()
	in.ExternalCurrentResult = decPtr("2600.40")

	rows := c.Build(in)
	cr := rowByID(t, rows, RowCurrentResult)
	cell := cr.Cell("resultado_ejercicio")
	assert.Equal(t, "2600.4", cell.Amount.String())
	assert.False(t, cell.IsOverridden)
	assert.Empty(t, cell.Breakdown)
	assert.Equal(t, "2600.4", cr.Total.String())
}

func TestBuild_CurrentResultOverrideBeatsExternal(t *testing.T) {
	c := DefaultCatalog()
	in := buildFixture()
	in.ExternalCurrentResult = decPtr("2600")
	in.Overrides.Set(OverrideKey{RowID: RowCurrentResult, ColumnID: "resultado_ejercicio"}, dec("3000"))

	cell := rowByID(t, c.Build(in), RowCurrentResult).Cell("resultado_ejercicio")
	assert.Equal(t, "3000", cell.Amount.String())
	assert.True(t, cell.IsOverridden)
}

func TestBuild_CurrentResultOnlyOwnColumn(t *testing.T) {
	c := DefaultCatalog()
	accts := accountsByID()
	// A flagged closing entry that also moves retained earnings: only the
	// current-result column of the row is populated.
	e := entry("m", date(2025, 12, 31), "cierre",
		dr("sales", "1000"), cr("current_result", "900"), cr("retained", "100"))
	e.IsClosingEntry = true
	in := BuildInput{Movements: c.Classify([]model.JournalEntry{e}, accts), Overrides: Overrides{}}
	require.Equal(t, RowTypeCurrentResult, in.Movements[0].Classification.RowType)

	cr := rowByID(t, c.Build(in), RowCurrentResult)
	assert.Equal(t, "900", cr.Cell("resultado_ejercicio").Amount.String())
	assert.True(t, cr.Cell("resultados_no_asignados").Amount.IsZero())
	assert.Equal(t, "900", cr.Total.String())
	require.Len(t, cr.Cell("resultado_ejercicio").Breakdown, 1)
	assert.Equal(t, "m", cr.Cell("resultado_ejercicio").Breakdown[0].EntryID)
}

func TestBuild_ClosingBreakdownFromLedger(t *testing.T) {
	c := DefaultCatalog()
	in := buildFixture()
	in.LedgerClosing = c.Accumulate([]model.JournalEntry{
		entry("o1", date(2024, 3, 1), "constitución", dr("cash", "10000"), cr("capital", "10000")),
	}, accountsByID())

	closing := rowByID(t, c.Build(in), RowClosing)
	require.Len(t, closing.Cell("capital_social").Breakdown, 1)
	assert.Equal(t, "o1", closing.Cell("capital_social").Breakdown[0].EntryID)
}

func TestBuild_OverriddenCellDropsBreakdown(t *testing.T) {
	c := DefaultCatalog()
	in := buildFixture()
	in.LedgerClosing = c.Accumulate([]model.JournalEntry{
		entry("o1", date(2024, 3, 1), "constitución", dr("cash", "10000"), cr("capital", "10000")),
	}, accountsByID())
	in.Overrides = Overrides{}
	in.Overrides.Set(OverrideKey{RowID: RowClosing, ColumnID: "capital_social"}, decimal.RequireFromString("12345"))
	in.Overrides.Set(OverrideKey{RowID: RowOpening, ColumnID: "capital_social"}, decimal.RequireFromString("1"))

	rows := c.Build(in)
	for _, id := range []string{RowClosing, RowOpening} {
		cell := rowByID(t, rows, id).Cell("capital_social")
		assert.True(t, cell.IsOverridden, id)
		assert.Empty(t, cell.Breakdown, id)
	}
}

func TestBuild_EmptyInput(t *testing.T) {
	c := DefaultCatalog()
	rows := c.Build(BuildInput{})
	require.Len(t, rows, len(Layout()))
	for _, r := range rows {
		assert.True(t, r.Total.IsZero(), "row %s", r.ID)
		if !r.IsHeader {
			assert.Len(t, r.Cells, 8, "row %s", r.ID)
		}
	}
}

func TestValidateLayout(t *testing.T) {
	require.NoError(t, ValidateLayout(Layout()))

	bad := []RowSpec{
		DerivedRow{ID: "sum", Sources: []string{"later"}},
		SourceRow{ID: "later", Type: RowTypeOtherMovements},
	}
	assert.Error(t, ValidateLayout(bad))

	dup := []RowSpec{
		SourceRow{ID: "x", Type: RowTypeOtherMovements},
		HeaderRow{ID: "x"},
	}
	assert.Error(t, ValidateLayout(dup))
}

func TestBuildLayout_MissingSourceIsZero(t *testing.T) {
	c := DefaultCatalog()
	in := buildFixture()
	layout := []RowSpec{
		DerivedRow{ID: "sum", Type: RowTypeTotalVariations, Sources: []string{RowOwnerContributions}},
		SourceRow{ID: RowOwnerContributions, Type: RowTypeOwnerContributions},
	}
	rows := c.BuildLayout(layout, in)
	require.Len(t, rows, 2)
	assert.True(t, rows[0].Total.IsZero())
	assert.Equal(t, "3000", rows[1].Total.String())
}

func TestRowIDs(t *testing.T) {
	ids := RowIDs(Layout())
	assert.Len(t, ids, 12)
	assert.NotContains(t, ids, RowVariationsHeader)
}
