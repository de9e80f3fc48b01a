package journal

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/equity/internal/id"
	"github.com/cleared-dev/equity/internal/model"
)

// Header is the CSV header for journal.csv.
const Header = "line_id,date,account_id,memo,debit,credit,closing"

const (
	numFields  = 7
	colLineID  = 0
	colDate    = 1
	colAcctID  = 2
	colMemo    = 3
	colDebit   = 4
	colCredit  = 5
	colClosing = 6
)

// Line is one row of journal.csv. Lines sharing an entry group form one
// journal entry.
type Line struct {
	ID        string
	Date      time.Time
	AccountID string
	Memo      string
	Debit     decimal.Decimal
	Credit    decimal.Decimal
	Closing   bool
}

// EntryGroup returns the entry ID this line belongs to.
func (l Line) EntryGroup() string {
	return id.EntryGroup(l.ID)
}

// ReadLines reads all lines from a journal.csv reader.
func ReadLines(r io.Reader) ([]Line, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading journal CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	// Skip header row.
	var lines []Line
	for i, rec := range records[1:] {
		line, err := UnmarshalLine(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// WriteLines writes lines to a journal.csv writer (including header).
func WriteLines(w io.Writer, lines []Line) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, line := range lines {
		if err := cw.Write(MarshalLine(line)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// AppendLines appends lines to an existing journal.csv writer (no header).
func AppendLines(w io.Writer, lines []Line) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	for i, line := range lines {
		if err := cw.Write(MarshalLine(line)); err != nil {
			return fmt.Errorf("writing row %d: %w", i, err)
		}
	}
	return cw.Error()
}

// MarshalLine converts a Line to a CSV row.
func MarshalLine(line Line) []string {
	row := make([]string, numFields)
	row[colLineID] = line.ID
	row[colDate] = line.Date.Format(model.DateFormat)
	row[colAcctID] = line.AccountID
	row[colMemo] = line.Memo

	if !line.Debit.IsZero() {
		row[colDebit] = line.Debit.StringFixed(2)
	}
	if !line.Credit.IsZero() {
		row[colCredit] = line.Credit.StringFixed(2)
	}
	if line.Closing {
		row[colClosing] = "true"
	}
	return row
}

// UnmarshalLine converts a CSV row to a Line.
func UnmarshalLine(record []string) (Line, error) {
	if len(record) != numFields {
		return Line{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	date, err := time.Parse(model.DateFormat, record[colDate])
	if err != nil {
		return Line{}, fmt.Errorf("parsing date %q: %w", record[colDate], err)
	}

	var debit, credit decimal.Decimal

	if record[colDebit] != "" {
		debit, err = decimal.NewFromString(record[colDebit])
		if err != nil {
			return Line{}, fmt.Errorf("parsing debit %q: %w", record[colDebit], err)
		}
	}

	if record[colCredit] != "" {
		credit, err = decimal.NewFromString(record[colCredit])
		if err != nil {
			return Line{}, fmt.Errorf("parsing credit %q: %w", record[colCredit], err)
		}
	}

	var closing bool
	if record[colClosing] != "" {
		closing, err = strconv.ParseBool(record[colClosing])
		if err != nil {
			return Line{}, fmt.Errorf("parsing closing %q: %w", record[colClosing], err)
		}
	}

	return Line{
		ID:        record[colLineID],
		Date:      date,
		AccountID: record[colAcctID],
		Memo:      record[colMemo],
		Debit:     debit,
		Credit:    credit,
		Closing:   closing,
	}, nil
}

// Group assembles lines into journal entries in order of first appearance.
// An entry takes its date and memo from its first line and is a closing
// entry if any of its lines is flagged.
func Group(lines []Line) []model.JournalEntry {
	index := make(map[string]int)
	var entries []model.JournalEntry
	for _, l := range lines {
		g := l.EntryGroup()
		i, ok := index[g]
		if !ok {
			i = len(entries)
			index[g] = i
			entries = append(entries, model.JournalEntry{ID: g, Date: l.Date, Memo: l.Memo})
		}
		e := &entries[i]
		e.Lines = append(e.Lines, model.EntryLine{AccountID: l.AccountID, Debit: l.Debit, Credit: l.Credit})
		if l.Closing {
			e.IsClosingEntry = true
		}
	}
	return entries
}

// Flatten expands an entry into CSV lines, assigning line IDs from entry.ID.
func Flatten(entry model.JournalEntry) []Line {
	lines := make([]Line, len(entry.Lines))
	for i, el := range entry.Lines {
		lines[i] = Line{
			ID:        id.LineID(entry.ID, i),
			Date:      entry.Date,
			AccountID: el.AccountID,
			Memo:      entry.Memo,
			Debit:     el.Debit,
			Credit:    el.Credit,
			Closing:   entry.IsClosingEntry,
		}
	}
	return lines
}
