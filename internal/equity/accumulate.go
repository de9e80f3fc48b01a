package equity

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/equity/internal/model"
)

// CellBreakdown is one ledger line contributing to a cell, kept for drill-down.
type CellBreakdown struct {
	EntryID     string          `json:"entryId"`
	Date        time.Time       `json:"date"`
	Memo        string          `json:"memo"`
	Amount      decimal.Decimal `json:"amount"`
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
}

// ColumnBalance is the signed running balance of one column.
type ColumnBalance struct {
	ColumnID  string          `json:"columnId"`
	Balance   decimal.Decimal `json:"balance"`
	Breakdown []CellBreakdown `json:"breakdown"`
}

// SignedMovement returns credit minus debit, inverted for contra accounts.
func SignedMovement(acct model.Account, line model.EntryLine) decimal.Decimal {
	net := line.Credit.Sub(line.Debit)
	if acct.IsContra {
		return net.Neg()
	}
	return net
}

// Accumulate computes per-column balances over entries. Every catalog column
// is present in the result, at zero when nothing maps to it. Lines on unknown
// accounts, non-equity accounts or codes outside the catalog are skipped.
func (c *Catalog) Accumulate(entries []model.JournalEntry, accounts map[string]model.Account) map[string]ColumnBalance {
	balances := make(map[string]*ColumnBalance, len(c.columns))
	for _, col := range c.columns {
		balances[col.ID] = &ColumnBalance{ColumnID: col.ID, Balance: decimal.Zero}
	}

	for _, e := range sortByDate(entries) {
		for _, line := range e.Lines {
			acct, ok := accounts[line.AccountID]
			if !ok || !IsEquityAccount(acct.Code) {
				continue
			}
			col, ok := c.ColumnFor(acct.Code)
			if !ok {
				continue
			}
			amount := SignedMovement(acct, line)
			b := balances[col.ID]
			b.Balance = b.Balance.Add(amount)
			b.Breakdown = append(b.Breakdown, breakdownFor(e, acct, amount))
		}
	}

	out := make(map[string]ColumnBalance, len(balances))
	for id, b := range balances {
		out[id] = *b
	}
	return out
}

// Total sums the balances of all columns.
func Total(balances map[string]ColumnBalance) decimal.Decimal {
	sum := decimal.Zero
	for _, b := range balances {
		sum = sum.Add(b.Balance)
	}
	return sum
}

func breakdownFor(e model.JournalEntry, acct model.Account, amount decimal.Decimal) CellBreakdown {
	return CellBreakdown{
		EntryID:     e.ID,
		Date:        e.Date,
		Memo:        e.Memo,
		Amount:      amount,
		AccountCode: acct.Code,
		AccountName: acct.Name,
	}
}

// sortByDate returns a date-ordered copy; entries on the same date keep their input order.
func sortByDate(entries []model.JournalEntry) []model.JournalEntry {
	sorted := slices.Clone(entries)
	slices.SortStableFunc(sorted, func(a, b model.JournalEntry) int {
		return a.Date.Compare(b.Date)
	})
	return sorted
}
