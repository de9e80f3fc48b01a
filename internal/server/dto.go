package server

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/equity/internal/equity"
	"github.com/cleared-dev/equity/internal/model"
)

// AccountRequest is one chart-of-accounts entry.
type AccountRequest struct {
	ID         string            `json:"id" binding:"required"`
	Code       string            `json:"code" binding:"required"`
	Name       string            `json:"name"`
	Kind       model.AccountKind `json:"kind" binding:"required,oneof=asset liability equity income expense"`
	NormalSide model.Side        `json:"normalSide" binding:"omitempty,oneof=debit credit"`
	IsContra   bool              `json:"isContra"`
	IsHeader   bool              `json:"isHeader"`
	ParentID   string            `json:"parentId"`
	Level      int               `json:"level"`
}

// EntryLineRequest is one side of a journal entry.
type EntryLineRequest struct {
	AccountID string          `json:"accountId" binding:"required"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
}

// EntryRequest is a posted journal entry.
type EntryRequest struct {
	ID             string             `json:"id" binding:"required"`
	Date           string             `json:"date" binding:"required,datetime=2006-01-02"`
	Memo           string             `json:"memo"`
	Lines          []EntryLineRequest `json:"lines" binding:"required,min=1,dive"`
	IsClosingEntry bool               `json:"isClosingEntry"`
}

// StatementRequest is the body of POST /api/v1/equity-statement.
type StatementRequest struct {
	Accounts              []AccountRequest           `json:"accounts" binding:"required,min=1,dive"`
	Entries               []EntryRequest             `json:"entries" binding:"dive"`
	PeriodStart           string                     `json:"periodStart" binding:"required,datetime=2006-01-02"`
	PeriodEnd             string                     `json:"periodEnd" binding:"required,datetime=2006-01-02"`
	Overrides             map[string]decimal.Decimal `json:"overrides"` // "row:column" -> amount
	ExternalCurrentResult *decimal.Decimal           `json:"externalCurrentResult"`
	ExternalEquityTotal   *decimal.Decimal           `json:"externalEquityTotal"`
}

// ToInput converts the request into engine input.
func (r StatementRequest) ToInput() (equity.Input, error) {
	period, err := model.ParsePeriod(r.PeriodStart, r.PeriodEnd)
	if err != nil {
		return equity.Input{}, err
	}
	overrides, err := equity.OverridesFromKeys(r.Overrides)
	if err != nil {
		return equity.Input{}, err
	}

	accounts := make([]model.Account, len(r.Accounts))
	for i, a := range r.Accounts {
		accounts[i] = model.Account{
			ID:         a.ID,
			Code:       a.Code,
			Name:       a.Name,
			Kind:       a.Kind,
			NormalSide: a.NormalSide,
			IsContra:   a.IsContra,
			IsHeader:   a.IsHeader,
			ParentID:   a.ParentID,
			Level:      a.Level,
		}
	}

	entries := make([]model.JournalEntry, len(r.Entries))
	for i, e := range r.Entries {
		date, err := time.Parse(model.DateFormat, e.Date)
		if err != nil {
			return equity.Input{}, fmt.Errorf("entry %s: parsing date: %w", e.ID, err)
		}
		lines := make([]model.EntryLine, len(e.Lines))
		for j, l := range e.Lines {
			lines[j] = model.EntryLine{AccountID: l.AccountID, Debit: l.Debit, Credit: l.Credit}
		}
		entries[i] = model.JournalEntry{ID: e.ID, Date: date, Memo: e.Memo, Lines: lines, IsClosingEntry: e.IsClosingEntry}
	}

	return equity.Input{
		Accounts:              accounts,
		Entries:               entries,
		Period:                period,
		Overrides:             overrides,
		ExternalCurrentResult: r.ExternalCurrentResult,
		ExternalEquityTotal:   r.ExternalEquityTotal,
	}, nil
}

// CatalogResponse describes the statement shape.
type CatalogResponse struct {
	Columns []equity.Column `json:"columns"`
	RowIDs  []string        `json:"rowIds"`
}
