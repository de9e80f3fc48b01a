package equity

import (
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/equity/internal/model"
)

// Classification is the movement row assigned to an entry and the audit reason.
type Classification struct {
	RowType RowType `json:"rowType"`
	Reason  string  `json:"reason"`
}

// EntrySignals are the facts about an entry that the rule cascade inspects.
type EntrySignals struct {
	TouchesAREA             bool `json:"touchesArea"`
	TouchesDistributions    bool `json:"touchesDistributions"`
	TouchesReserves         bool `json:"touchesReserves"`
	TouchesRetainedEarnings bool `json:"touchesRetainedEarnings"`
	TouchesCurrentResult    bool `json:"touchesCurrentResult"`
	TouchesPaidInCapital    bool `json:"touchesPaidInCapital"`
	TouchesCash             bool `json:"touchesCash"`
	HasNonEquityLines       bool `json:"hasNonEquityLines"`
	IsClosing               bool `json:"isClosing"`

	NetEquityMovement decimal.Decimal `json:"netEquityMovement"`
}

// MovementLine is a signed equity line of a classified entry. ColumnID is
// empty when the account code matches no catalog column.
type MovementLine struct {
	Account  model.Account   `json:"account"`
	ColumnID string          `json:"columnId,omitempty"`
	Amount   decimal.Decimal `json:"amount"`
}

// ClassifiedMovement is an in-period entry with its equity lines and row.
type ClassifiedMovement struct {
	Entry          model.JournalEntry `json:"entry"`
	Lines          []MovementLine     `json:"lines"`
	Signals        EntrySignals       `json:"signals"`
	Classification Classification     `json:"classification"`
}

// Rule is one step of the classification cascade.
type Rule struct {
	Name    string
	Matches func(EntrySignals) bool
	RowType RowType
	Reason  string
}

// Reasons recorded alongside each rule.
const (
	ReasonAREA              = "prior-period adjustment (AREA account)"
	ReasonDistribution      = "distribution of earnings (dividends account)"
	ReasonReserveAllocation = "internal reclassification from retained earnings to reserves"
	ReasonCapitalization    = "internal reclassification into paid-in capital"
	ReasonInternal          = "internal equity reclassification"
	ReasonOwnerContribution = "owner contribution settled in cash"
	ReasonCashWithdrawal    = "cash withdrawal against retained earnings"
	ReasonClosing           = "closing/refundición entry"
	ReasonResultApplication = "application of the period result"
	ReasonOtherMovement     = "other equity movement"
)

// Rules returns the classification cascade. Order is significant: the first
// matching rule wins, and the last rule matches every entry.
func Rules() []Rule {
	internal := func(s EntrySignals) bool { return !s.HasNonEquityLines }
	return []Rule{
		{
			Name:    "area",
			Matches: func(s EntrySignals) bool { return s.TouchesAREA },
			RowType: RowTypeAREA,
			Reason:  ReasonAREA,
		},
		{
			Name:    "distributions",
			Matches: func(s EntrySignals) bool { return s.TouchesDistributions },
			RowType: RowTypeDistributions,
			Reason:  ReasonDistribution,
		},
		{
			Name: "internal-reserves",
			Matches: func(s EntrySignals) bool {
				return internal(s) && s.TouchesReserves && s.TouchesRetainedEarnings
			},
			RowType: RowTypeReserves,
			Reason:  ReasonReserveAllocation,
		},
		{
			Name:    "internal-capital",
			Matches: func(s EntrySignals) bool { return internal(s) && s.TouchesPaidInCapital },
			RowType: RowTypeCapitalizations,
			Reason:  ReasonCapitalization,
		},
		{
			Name:    "internal-other",
			Matches: internal,
			RowType: RowTypeCapitalizations,
			Reason:  ReasonInternal,
		},
		{
			Name:    "owner-contribution",
			Matches: func(s EntrySignals) bool { return s.TouchesCash && s.TouchesPaidInCapital },
			RowType: RowTypeOwnerContributions,
			Reason:  ReasonOwnerContribution,
		},
		{
			// Only the net of all equity lines is inspected, not which account
			// moved, so a compound entry can land here on its larger leg.
			Name: "cash-withdrawal",
			Matches: func(s EntrySignals) bool {
				return s.TouchesCash &&
					(s.TouchesRetainedEarnings || s.TouchesDistributions) &&
					s.NetEquityMovement.IsNegative()
			},
			RowType: RowTypeDistributions,
			Reason:  ReasonCashWithdrawal,
		},
		{
			Name:    "closing",
			Matches: func(s EntrySignals) bool { return s.TouchesCurrentResult && s.IsClosing },
			RowType: RowTypeCurrentResult,
			Reason:  ReasonClosing,
		},
		{
			Name:    "result-application",
			Matches: func(s EntrySignals) bool { return s.TouchesCurrentResult },
			RowType: RowTypeOtherMovements,
			Reason:  ReasonResultApplication,
		},
		{
			Name:    "fallback",
			Matches: func(EntrySignals) bool { return true },
			RowType: RowTypeOtherMovements,
			Reason:  ReasonOtherMovement,
		},
	}
}

// Evaluate runs rules in order and returns the first match. If nothing
// matches, the entry falls into other movements.
func Evaluate(rules []Rule, s EntrySignals) Classification {
	for _, r := range rules {
		if r.Matches(s) {
			return Classification{RowType: r.RowType, Reason: r.Reason}
		}
	}
	return Classification{RowType: RowTypeOtherMovements, Reason: ReasonOtherMovement}
}

// Classify assigns a movement row to every entry that has at least one equity
// line. Entries without equity lines are dropped.
func (c *Catalog) Classify(entries []model.JournalEntry, accounts map[string]model.Account) []ClassifiedMovement {
	rules := Rules()
	var out []ClassifiedMovement
	for _, e := range sortByDate(entries) {
		lines, signals := c.inspect(e, accounts)
		if len(lines) == 0 {
			continue
		}
		out = append(out, ClassifiedMovement{
			Entry:          e,
			Lines:          lines,
			Signals:        signals,
			Classification: Evaluate(rules, signals),
		})
	}
	return out
}

// inspect collects the signed equity lines of e and derives its signals.
// Lines on unknown accounts are ignored entirely.
func (c *Catalog) inspect(e model.JournalEntry, accounts map[string]model.Account) ([]MovementLine, EntrySignals) {
	sig := EntrySignals{NetEquityMovement: decimal.Zero}
	var lines []MovementLine
	onlyResultAccounts := true

	for _, line := range e.Lines {
		acct, ok := accounts[line.AccountID]
		if !ok {
			continue
		}
		code := acct.Code

		sig.TouchesAREA = sig.TouchesAREA || hasAnyPrefix(code, c.signals.AREA)
		sig.TouchesDistributions = sig.TouchesDistributions || hasAnyPrefix(code, c.signals.Distributions)
		sig.TouchesReserves = sig.TouchesReserves || hasAnyPrefix(code, c.signals.Reserves)
		sig.TouchesRetainedEarnings = sig.TouchesRetainedEarnings || hasAnyPrefix(code, c.signals.RetainedEarnings)
		sig.TouchesCurrentResult = sig.TouchesCurrentResult || hasAnyPrefix(code, c.signals.CurrentResult)
		sig.TouchesPaidInCapital = sig.TouchesPaidInCapital || hasAnyPrefix(code, c.signals.PaidInCapital)
		sig.TouchesCash = sig.TouchesCash || hasAnyPrefix(code, c.signals.Cash)

		if !IsEquityAccount(code) {
			sig.HasNonEquityLines = true
			if !hasAnyPrefix(code, c.signals.Income) && !hasAnyPrefix(code, c.signals.Expense) {
				onlyResultAccounts = false
			}
			continue
		}

		amount := SignedMovement(acct, line)
		ml := MovementLine{Account: acct, Amount: amount}
		if col, ok := c.ColumnFor(code); ok {
			ml.ColumnID = col.ID
		}
		lines = append(lines, ml)
		sig.NetEquityMovement = sig.NetEquityMovement.Add(amount)
	}

	sig.IsClosing = sig.TouchesCurrentResult && onlyResultAccounts
	return lines, sig
}
