package equity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/equity/internal/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func testAccounts() []model.Account {
	return []model.Account{
		{ID: "cash", Code: "1.1.01.001", Name: "Caja", Kind: model.KindAsset, NormalSide: model.SideDebit},
		{ID: "receivables", Code: "1.1.03.001", Name: "Deudores por ventas", Kind: model.KindAsset, NormalSide: model.SideDebit},
		{ID: "dividends_payable", Code: "2.1.06.001", Name: "Dividendos a pagar", Kind: model.KindLiability, NormalSide: model.SideCredit},
		{ID: "capital", Code: "3.1.01.001", Name: "Capital social", Kind: model.KindEquity, NormalSide: model.SideCredit},
		{ID: "irrevocables", Code: "3.1.03.001", Name: "Aportes irrevocables", Kind: model.KindEquity, NormalSide: model.SideCredit},
		{ID: "treasury", Code: "3.1.05.001", Name: "Acciones propias en cartera", Kind: model.KindEquity, NormalSide: model.SideDebit, IsContra: true},
		{ID: "legal_reserve", Code: "3.2.01.001", Name: "Reserva legal", Kind: model.KindEquity, NormalSide: model.SideCredit},
		{ID: "other_reserve", Code: "3.2.02.001", Name: "Reserva facultativa", Kind: model.KindEquity, NormalSide: model.SideCredit},
		{ID: "retained", Code: "3.3.01.001", Name: "Resultados no asignados", Kind: model.KindEquity, NormalSide: model.SideCredit},
		{ID: "current_result", Code: "3.3.02.001", Name: "Resultado del ejercicio", Kind: model.KindEquity, NormalSide: model.SideCredit},
		{ID: "area", Code: "3.3.03.001", Name: "AREA", Kind: model.KindEquity, NormalSide: model.SideCredit},
		{ID: "dividends", Code: "3.3.04.001", Name: "Dividendos", Kind: model.KindEquity, NormalSide: model.SideDebit},
		{ID: "unmapped_equity", Code: "3.9.01.001", Name: "Cuenta sin columna", Kind: model.KindEquity, NormalSide: model.SideCredit},
		{ID: "sales", Code: "4.1.01.001", Name: "Ventas", Kind: model.KindIncome, NormalSide: model.SideCredit},
		{ID: "fees", Code: "5.1.01.001", Name: "Honorarios", Kind: model.KindExpense, NormalSide: model.SideDebit},
	}
}

func accountsByID() map[string]model.Account {
	m := make(map[string]model.Account)
	for _, a := range testAccounts() {
		m[a.ID] = a
	}
	return m
}

func entry(id string, d time.Time, memo string, lines ...model.EntryLine) model.JournalEntry {
	return model.JournalEntry{ID: id, Date: d, Memo: memo, Lines: lines}
}

func dr(accountID, amount string) model.EntryLine {
	return model.EntryLine{AccountID: accountID, Debit: dec(amount)}
}

func cr(accountID, amount string) model.EntryLine {
	return model.EntryLine{AccountID: accountID, Credit: dec(amount)}
}

// usd formats with the US separators so assertions do not depend on the default locale.
var usd = NewCurrencyFormatter("USD")
