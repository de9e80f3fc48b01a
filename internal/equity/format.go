package equity

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Formatter renders an amount for people to read.
type Formatter interface {
	Format(amount decimal.Decimal) string
}

// CurrencyFormatter formats amounts with two decimals using a currency's
// separators and symbol ("$1.234,56" for ARS).
type CurrencyFormatter struct {
	code      string
	formatter *money.Formatter
}

// DefaultCurrency is the currency used when none is configured.
const DefaultCurrency = "ARS"

// NewCurrencyFormatter returns a formatter for an ISO 4217 code. Unknown
// codes fall back to go-money's generic currency.
func NewCurrencyFormatter(code string) CurrencyFormatter {
	if code == "" {
		code = DefaultCurrency
	}
	// money.New never yields a nil currency, unlike money.GetCurrency.
	cur := money.New(0, code).Currency()
	return CurrencyFormatter{
		code:      cur.Code,
		formatter: money.NewFormatter(2, cur.Decimal, cur.Thousand, cur.Grapheme, cur.Template),
	}
}

// Code returns the currency code.
func (f CurrencyFormatter) Code() string {
	return f.code
}

// Format implements Formatter.
func (f CurrencyFormatter) Format(amount decimal.Decimal) string {
	return f.formatter.Format(amount.Round(2).Shift(2).IntPart())
}
