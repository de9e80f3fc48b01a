package equity

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Tolerance is the absolute difference, in currency units, below which two
// figures are considered equal.
var Tolerance = decimal.New(1, -2)

// Reconciliation compares the statement with the balance sheet and the
// income statement.
type Reconciliation struct {
	MatchesBalance bool            `json:"matchesBalance"`
	BalanceDiff    decimal.Decimal `json:"balanceDiff"`
	MatchesER      bool            `json:"matchesER"`
	ERDiff         decimal.Decimal `json:"erDiff"`
	Warnings       []string        `json:"warnings"`
}

// ReconcileInput holds the computed figures and their external counterparts.
// A nil external figure skips that comparison.
type ReconcileInput struct {
	ClosingTotal         decimal.Decimal
	ExternalEquityTotal  *decimal.Decimal
	CurrentResult        *decimal.Decimal
	ExternalIncomeResult *decimal.Decimal
}

// Reconcile compares computed against external figures. Differences are
// computed minus external; a difference of Tolerance or more is a mismatch
// and adds a warning.
func Reconcile(in ReconcileInput, f Formatter) Reconciliation {
	rec := Reconciliation{
		MatchesBalance: true,
		BalanceDiff:    decimal.Zero,
		MatchesER:      true,
		ERDiff:         decimal.Zero,
		Warnings:       []string{},
	}

	if in.ExternalEquityTotal != nil {
		rec.BalanceDiff = in.ClosingTotal.Sub(*in.ExternalEquityTotal)
		if rec.BalanceDiff.Abs().GreaterThanOrEqual(Tolerance) {
			rec.MatchesBalance = false
			rec.Warnings = append(rec.Warnings, fmt.Sprintf(
				"Balance sheet mismatch: closing equity in this statement is %s but the balance sheet reports %s (difference %s).",
				f.Format(in.ClosingTotal), f.Format(*in.ExternalEquityTotal), f.Format(rec.BalanceDiff)))
		}
	}

	if in.ExternalIncomeResult != nil {
		computed := decimal.Zero
		if in.CurrentResult != nil {
			computed = *in.CurrentResult
		}
		rec.ERDiff = computed.Sub(*in.ExternalIncomeResult)
		if rec.ERDiff.Abs().GreaterThanOrEqual(Tolerance) {
			rec.MatchesER = false
			rec.Warnings = append(rec.Warnings, fmt.Sprintf(
				"Income statement mismatch: the period result in this statement is %s but the income statement reports %s (difference %s).",
				f.Format(computed), f.Format(*in.ExternalIncomeResult), f.Format(rec.ERDiff)))
		}
	}

	return rec
}
