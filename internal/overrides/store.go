// Package overrides persists manual cell values of the equity statement and
// keeps an audit trail of every change.
package overrides

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/equity/internal/apperrors"
	"github.com/cleared-dev/equity/internal/equity"
)

// Header is the CSV header for overrides.csv.
const Header = "row_id,column_id,amount,updated_at,note"

const (
	numFields    = 5
	colRowID     = 0
	colColumnID  = 1
	colAmount    = 2
	colUpdatedAt = 3
	colNote      = 4
)

// Record is one persisted override.
type Record struct {
	Key       equity.OverrideKey
	Amount    decimal.Decimal
	UpdatedAt time.Time
	Note      string
}

// Path returns the overrides file path under a repo root.
func Path(repoRoot string) string {
	return filepath.Join(repoRoot, "overrides", "overrides.csv")
}

// Store reads and rewrites overrides/overrides.csv.
type Store struct {
	repoRoot string
	catalog  *equity.Catalog
	now      func() time.Time
}

// NewStore creates a Store. Keys are validated against catalog and the
// statement layout.
func NewStore(repoRoot string, catalog *equity.Catalog) *Store {
	return &Store{repoRoot: repoRoot, catalog: catalog, now: time.Now}
}

// Records returns all stored overrides in key order. A missing file yields none.
func (s *Store) Records() ([]Record, error) {
	f, err := os.Open(Path(s.repoRoot))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening overrides: %w", err)
	}
	defer f.Close()

	recs, err := ReadRecords(f)
	if err != nil {
		return nil, fmt.Errorf("reading overrides: %w", err)
	}
	return recs, nil
}

// Load returns the stored overrides as the engine's map.
func (s *Store) Load() (equity.Overrides, error) {
	recs, err := s.Records()
	if err != nil {
		return nil, err
	}
	o := make(equity.Overrides)
	for _, r := range recs {
		o.Set(r.Key, r.Amount)
	}
	return o, nil
}

// Set stores or replaces the override for key.
func (s *Store) Set(key equity.OverrideKey, amount decimal.Decimal, note string) (Record, error) {
	if err := s.validateKey(key); err != nil {
		return Record{}, err
	}
	recs, err := s.Records()
	if err != nil {
		return Record{}, err
	}

	rec := Record{Key: key, Amount: amount, UpdatedAt: s.now().UTC().Truncate(time.Second), Note: note}
	replaced := false
	for i := range recs {
		if recs[i].Key == key {
			recs[i] = rec
			replaced = true
		}
	}
	if !replaced {
		recs = append(recs, rec)
	}

	if err := s.write(recs); err != nil {
		return Record{}, err
	}
	if err := AppendAudit(s.repoRoot, []AuditEntry{{Timestamp: rec.UpdatedAt, Action: ActionSet, Key: key, Amount: amount, Note: note}}); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// Clear removes the override for key, reverting the cell to its aggregate.
func (s *Store) Clear(key equity.OverrideKey) error {
	recs, err := s.Records()
	if err != nil {
		return err
	}

	kept := recs[:0]
	var removed *Record
	for _, r := range recs {
		if r.Key == key {
			removed = &r
			continue
		}
		kept = append(kept, r)
	}
	if removed == nil {
		return fmt.Errorf("%w: no override for %s", apperrors.ErrNotFound, key)
	}

	if err := s.write(kept); err != nil {
		return err
	}
	return AppendAudit(s.repoRoot, []AuditEntry{{
		Timestamp: s.now().UTC().Truncate(time.Second),
		Action:    ActionClear,
		Key:       key,
		Amount:    removed.Amount,
	}})
}

func (s *Store) validateKey(key equity.OverrideKey) error {
	o := equity.Overrides{}
	o.Set(key, decimal.Zero)
	return o.Validate(s.catalog, equity.Layout())
}

func (s *Store) write(recs []Record) error {
	path := Path(s.repoRoot)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating overrides dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating overrides file: %w", err)
	}
	defer f.Close()

	if err := WriteRecords(f, recs); err != nil {
		return fmt.Errorf("writing overrides: %w", err)
	}
	return nil
}

// Init creates an empty overrides file with just the header.
func Init(repoRoot string) error {
	return NewStore(repoRoot, nil).write(nil)
}

// ReadRecords reads overrides.csv.
func ReadRecords(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading overrides CSV: %w", err)
	}
	if len(records) <= 1 {
		return nil, nil
	}

	recs := make([]Record, 0, len(records)-1)
	for i, row := range records[1:] {
		rec, err := UnmarshalRecord(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

// WriteRecords writes overrides.csv sorted by key.
func WriteRecords(w io.Writer, recs []Record) error {
	byKey := make(equity.Overrides, len(recs))
	index := make(map[equity.OverrideKey]Record, len(recs))
	for _, r := range recs {
		byKey.Set(r.Key, r.Amount)
		index[r.Key] = r
	}

	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, k := range byKey.Keys() {
		if err := cw.Write(MarshalRecord(index[k])); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// MarshalRecord converts a Record to a CSV row.
func MarshalRecord(r Record) []string {
	row := make([]string, numFields)
	row[colRowID] = r.Key.RowID
	row[colColumnID] = r.Key.ColumnID
	row[colAmount] = r.Amount.String()
	if !r.UpdatedAt.IsZero() {
		row[colUpdatedAt] = r.UpdatedAt.UTC().Format(time.RFC3339)
	}
	row[colNote] = r.Note
	return row
}

// UnmarshalRecord converts a CSV row to a Record.
func UnmarshalRecord(record []string) (Record, error) {
	if len(record) != numFields {
		return Record{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}
	key, err := equity.ParseOverrideKey(record[colRowID] + ":" + record[colColumnID])
	if err != nil {
		return Record{}, err
	}
	amount, err := decimal.NewFromString(record[colAmount])
	if err != nil {
		return Record{}, fmt.Errorf("parsing amount %q: %w", record[colAmount], err)
	}

	var updated time.Time
	if record[colUpdatedAt] != "" {
		updated, err = time.Parse(time.RFC3339, record[colUpdatedAt])
		if err != nil {
			return Record{}, fmt.Errorf("parsing updated_at %q: %w", record[colUpdatedAt], err)
		}
	}
	return Record{Key: key, Amount: amount, UpdatedAt: updated, Note: record[colNote]}, nil
}
