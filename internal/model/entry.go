package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateFormat is the calendar date layout used in ledger files and the API.
const DateFormat = "2006-01-02"

// EntryLine is one side of a journal entry against a single account.
type EntryLine struct {
	AccountID string          `json:"accountId"`
	Debit     decimal.Decimal `json:"debit"`  // zero if credit side
	Credit    decimal.Decimal `json:"credit"` // zero if debit side
}

// JournalEntry is a posted double-entry transaction.
type JournalEntry struct {
	ID             string      `json:"id"`
	Date           time.Time   `json:"date"`
	Memo           string      `json:"memo"`
	Lines          []EntryLine `json:"lines"`
	IsClosingEntry bool        `json:"isClosingEntry,omitempty"`
}

// Totals returns the sum of debits and credits across all lines.
func (e JournalEntry) Totals() (debit, credit decimal.Decimal) {
	debit, credit = decimal.Zero, decimal.Zero
	for _, l := range e.Lines {
		debit = debit.Add(l.Debit)
		credit = credit.Add(l.Credit)
	}
	return debit, credit
}
