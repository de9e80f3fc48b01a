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

	"github.com/cleared-dev/equity/internal/equity"
)

// Audit actions.
const (
	ActionSet   = "set"
	ActionClear = "clear"
)

// AuditEntry is one row in the override log.
type AuditEntry struct {
	Timestamp time.Time
	Action    string
	Key       equity.OverrideKey
	Amount    decimal.Decimal // previous value for clear
	Note      string
}

// AuditHeader is the CSV header for override-log.csv.
const AuditHeader = "timestamp,action,row_id,column_id,amount,note"

const (
	auditFields  = 6
	colTimestamp = 0
	colAction    = 1
	colAuditRow  = 2
	colAuditCol  = 3
	colAuditAmt  = 4
	colAuditNote = 5
)

// AuditPath returns the override log path under a repo root.
func AuditPath(repoRoot string) string {
	return filepath.Join(repoRoot, "logs", "override-log.csv")
}

// MarshalAuditEntry converts an AuditEntry to a CSV row.
func MarshalAuditEntry(e AuditEntry) []string {
	row := make([]string, auditFields)
	row[colTimestamp] = e.Timestamp.UTC().Format(time.RFC3339)
	row[colAction] = e.Action
	row[colAuditRow] = e.Key.RowID
	row[colAuditCol] = e.Key.ColumnID
	row[colAuditAmt] = e.Amount.String()
	row[colAuditNote] = e.Note
	return row
}

// UnmarshalAuditEntry converts a CSV row to an AuditEntry.
func UnmarshalAuditEntry(record []string) (AuditEntry, error) {
	if len(record) != auditFields {
		return AuditEntry{}, fmt.Errorf("expected %d fields, got %d", auditFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colTimestamp])
	if err != nil {
		return AuditEntry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTimestamp], err)
	}
	amount, err := decimal.NewFromString(record[colAuditAmt])
	if err != nil {
		return AuditEntry{}, fmt.Errorf("parsing amount %q: %w", record[colAuditAmt], err)
	}

	return AuditEntry{
		Timestamp: ts,
		Action:    record[colAction],
		Key:       equity.OverrideKey{RowID: record[colAuditRow], ColumnID: record[colAuditCol]},
		Amount:    amount,
		Note:      record[colAuditNote],
	}, nil
}

// AppendAudit writes entries to the override log, creating the file and header if needed.
func AppendAudit(repoRoot string, entries []AuditEntry) error {
	path := AuditPath(repoRoot)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating logs dir: %w", err)
	}

	needsHeader := false
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening override log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	defer cw.Flush()

	if needsHeader {
		if err := cw.Write(strings.Split(AuditHeader, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	for i, e := range entries {
		if err := cw.Write(MarshalAuditEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}
	return cw.Error()
}

// ReadAudit returns all entries from the override log. A missing file yields none.
func ReadAudit(repoRoot string) ([]AuditEntry, error) {
	f, err := os.Open(AuditPath(repoRoot))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening override log: %w", err)
	}
	defer f.Close()

	return readAuditEntries(f)
}

func readAuditEntries(r io.Reader) ([]AuditEntry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = auditFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading override log CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var entries []AuditEntry
	for i, rec := range records[1:] {
		e, err := UnmarshalAuditEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
