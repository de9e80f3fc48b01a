package model

// AccountKind classifies accounts in the chart of accounts.
type AccountKind string

const (
	KindAsset     AccountKind = "asset"
	KindLiability AccountKind = "liability"
	KindEquity    AccountKind = "equity"
	KindIncome    AccountKind = "income"
	KindExpense   AccountKind = "expense"
)

// Side is the normal balance side of an account.
type Side string

const (
	SideDebit  Side = "debit"
	SideCredit Side = "credit"
)

// Account represents a row in chart-of-accounts.csv.
type Account struct {
	ID         string      `json:"id"`
	Code       string      `json:"code"` // dot-separated, e.g. "3.1.01"
	Name       string      `json:"name"`
	Kind       AccountKind `json:"kind"`
	NormalSide Side        `json:"normalSide"`
	IsContra   bool        `json:"isContra"`
	IsHeader   bool        `json:"isHeader"`
	ParentID   string      `json:"parentId,omitempty"` // "" = top-level
	Level      int         `json:"level"`
}
