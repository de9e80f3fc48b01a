package equity

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/equity/internal/apperrors"
)

// OverrideKey addresses one cell of the matrix.
type OverrideKey struct {
	RowID    string
	ColumnID string
}

// String returns the "row:column" form of the key.
func (k OverrideKey) String() string {
	return k.RowID + ":" + k.ColumnID
}

// ParseOverrideKey parses "row:column".
func ParseOverrideKey(s string) (OverrideKey, error) {
	row, col, ok := strings.Cut(s, ":")
	if !ok || row == "" || col == "" || strings.Contains(col, ":") {
		return OverrideKey{}, fmt.Errorf("%w: %q, want row:column", apperrors.ErrInvalidOverrideKey, s)
	}
	return OverrideKey{RowID: row, ColumnID: col}, nil
}

// Overrides holds manual cell values by row id, then column id.
type Overrides map[string]map[string]decimal.Decimal

// OverridesFromKeys converts a "row:column" keyed map.
func OverridesFromKeys(m map[string]decimal.Decimal) (Overrides, error) {
	o := make(Overrides, len(m))
	for k, v := range m {
		key, err := ParseOverrideKey(k)
		if err != nil {
			return nil, err
		}
		o.Set(key, v)
	}
	return o, nil
}

// Get returns the override for a cell, if any.
func (o Overrides) Get(rowID, columnID string) (decimal.Decimal, bool) {
	cols, ok := o[rowID]
	if !ok {
		return decimal.Decimal{}, false
	}
	v, ok := cols[columnID]
	return v, ok
}

// Set registers an override. o must be non-nil.
func (o Overrides) Set(key OverrideKey, amount decimal.Decimal) {
	cols, ok := o[key.RowID]
	if !ok {
		cols = make(map[string]decimal.Decimal)
		o[key.RowID] = cols
	}
	cols[key.ColumnID] = amount
}

// Delete removes an override, reverting the cell to its aggregate.
func (o Overrides) Delete(key OverrideKey) {
	cols, ok := o[key.RowID]
	if !ok {
		return
	}
	delete(cols, key.ColumnID)
	if len(cols) == 0 {
		delete(o, key.RowID)
	}
}

// Len returns the number of overridden cells.
func (o Overrides) Len() int {
	n := 0
	for _, cols := range o {
		n += len(cols)
	}
	return n
}

// Keys returns all keys sorted by row, then column.
func (o Overrides) Keys() []OverrideKey {
	keys := make([]OverrideKey, 0, o.Len())
	for row, cols := range o {
		for col := range cols {
			keys = append(keys, OverrideKey{RowID: row, ColumnID: col})
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].RowID != keys[j].RowID {
			return keys[i].RowID < keys[j].RowID
		}
		return keys[i].ColumnID < keys[j].ColumnID
	})
	return keys
}

// Clone returns a deep copy.
func (o Overrides) Clone() Overrides {
	c := make(Overrides, len(o))
	for row, cols := range o {
		inner := make(map[string]decimal.Decimal, len(cols))
		for col, v := range cols {
			inner[col] = v
		}
		c[row] = inner
	}
	return c
}

// Validate checks that every key names a row of layout and a catalog column.
func (o Overrides) Validate(c *Catalog, layout []RowSpec) error {
	rows := make(map[string]bool)
	for _, id := range RowIDs(layout) {
		rows[id] = true
	}
	for _, k := range o.Keys() {
		if !rows[k.RowID] {
			return fmt.Errorf("%w: unknown row %q in %q", apperrors.ErrInvalidOverrideKey, k.RowID, k)
		}
		if !c.HasColumn(k.ColumnID) {
			return fmt.Errorf("%w: unknown column %q in %q", apperrors.ErrInvalidOverrideKey, k.ColumnID, k)
		}
	}
	return nil
}
