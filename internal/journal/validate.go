package journal

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/equity/internal/model"
)

// Checks reported by Validate.
const (
	CheckBalanced = iota + 1
	CheckOneSide
	CheckKnownAccount
	CheckNonNegative
	CheckTwoDecimals
	CheckMinLines
	CheckPostable
	CheckUniqueID
)

// ValidationIssue describes a single structural problem in the ledger.
type ValidationIssue struct {
	Check       int
	EntryID     string
	Description string
}

func (e ValidationIssue) Error() string {
	return fmt.Sprintf("check %d [%s]: %s", e.Check, e.EntryID, e.Description)
}

// AccountLookup resolves account IDs against the chart of accounts.
type AccountLookup interface {
	Get(id string) (model.Account, bool)
}

var hundred = decimal.NewFromInt(100)

// Validate checks entries for structural problems. The equity engine tolerates
// all of them, so callers report issues rather than reject the ledger.
func Validate(entries []model.JournalEntry, accounts AccountLookup) []ValidationIssue {
	var issues []ValidationIssue
	add := func(check int, entryID, format string, args ...any) {
		issues = append(issues, ValidationIssue{Check: check, EntryID: entryID, Description: fmt.Sprintf(format, args...)})
	}

	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		if seen[e.ID] {
			add(CheckUniqueID, e.ID, "duplicate entry ID")
		}
		seen[e.ID] = true

		if len(e.Lines) < 2 {
			add(CheckMinLines, e.ID, "entry has %d line(s), want at least 2", len(e.Lines))
		}

		debit, credit := e.Totals()
		if !debit.Equal(credit) {
			add(CheckBalanced, e.ID, "debits (%s) != credits (%s)", debit.StringFixed(2), credit.StringFixed(2))
		}

		for i, l := range e.Lines {
			if l.Debit.IsNegative() || l.Credit.IsNegative() {
				add(CheckNonNegative, e.ID, "line %d has a negative amount", i+1)
			}
			if l.Debit.IsZero() == l.Credit.IsZero() {
				add(CheckOneSide, e.ID, "line %d must have exactly one of debit or credit", i+1)
			}
			if !hasTwoDecimals(l.Debit) || !hasTwoDecimals(l.Credit) {
				add(CheckTwoDecimals, e.ID, "line %d has more than 2 decimal places", i+1)
			}

			acct, ok := accounts.Get(l.AccountID)
			if !ok {
				add(CheckKnownAccount, e.ID, "unknown account %q", l.AccountID)
				continue
			}
			if acct.IsHeader {
				add(CheckPostable, e.ID, "account %q (%s) is a header account", l.AccountID, acct.Code)
			}
		}
	}
	return issues
}

func hasTwoDecimals(d decimal.Decimal) bool {
	scaled := d.Mul(hundred)
	return scaled.Equal(scaled.Floor())
}
