package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/equity/internal/model"
)

// LibroDiarioParser reads the "libro diario" export common to Argentine
// accounting packages: one row per line, entries keyed by asiento number,
// dates as DD/MM/YYYY and amounts with "." thousands and "," decimals.
//
//	asiento;fecha;cuenta;detalle;debe;haber;cierre
type LibroDiarioParser struct{}

const (
	diarioDateFormat = "02/01/2006"
	diarioNumFields  = 7
	diarioColEntry   = 0
	diarioColDate    = 1
	diarioColCode    = 2
	diarioColMemo    = 3
	diarioColDebit   = 4
	diarioColCredit  = 5
	diarioColClosing = 6
)

func (p *LibroDiarioParser) Format() string { return "libro-diario" }

// Parse groups rows by asiento in first-appearance order. The entry date and
// memo come from its first row; a "S" in cierre marks a closing entry.
func (p *LibroDiarioParser) Parse(r io.Reader, chart CodeLookup) ([]model.JournalEntry, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = diarioNumFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading libro diario: %w", err)
	}
	if len(records) <= 1 {
		return nil, nil
	}

	var entries []model.JournalEntry
	index := make(map[string]int)
	for i, rec := range records[1:] {
		row := i + 2
		num := strings.TrimSpace(rec[diarioColEntry])
		if num == "" {
			return nil, fmt.Errorf("row %d: missing asiento", row)
		}

		line, err := parseDiarioLine(rec, chart)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}

		pos, ok := index[num]
		if !ok {
			date, err := time.Parse(diarioDateFormat, strings.TrimSpace(rec[diarioColDate]))
			if err != nil {
				return nil, fmt.Errorf("row %d: parsing date %q: %w", row, rec[diarioColDate], err)
			}
			entries = append(entries, model.JournalEntry{
				Date: date,
				Memo: strings.TrimSpace(rec[diarioColMemo]),
			})
			pos = len(entries) - 1
			index[num] = pos
		}
		entries[pos].Lines = append(entries[pos].Lines, line)
		if strings.EqualFold(strings.TrimSpace(rec[diarioColClosing]), "S") {
			entries[pos].IsClosingEntry = true
		}
	}
	return entries, nil
}

func parseDiarioLine(rec []string, chart CodeLookup) (model.EntryLine, error) {
	code := strings.TrimSpace(rec[diarioColCode])
	acct, ok := chart.ByCode(code)
	if !ok {
		return model.EntryLine{}, fmt.Errorf("unknown account code %q", code)
	}
	debit, err := parseLocalAmount(rec[diarioColDebit])
	if err != nil {
		return model.EntryLine{}, fmt.Errorf("parsing debe: %w", err)
	}
	credit, err := parseLocalAmount(rec[diarioColCredit])
	if err != nil {
		return model.EntryLine{}, fmt.Errorf("parsing haber: %w", err)
	}
	return model.EntryLine{AccountID: acct.ID, Debit: debit, Credit: credit}, nil
}

// parseLocalAmount parses "1.234,56". Blank is zero.
func parseLocalAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	normalized := strings.ReplaceAll(s, ".", "")
	normalized = strings.Replace(normalized, ",", ".", 1)
	d, err := decimal.NewFromString(normalized)
	if err != nil {
		return decimal.Zero, fmt.Errorf("amount %q: %w", s, err)
	}
	return d, nil
}
