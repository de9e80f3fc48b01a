package equity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCurrencyFormatter(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1234.56", "$1,234.56"},
		{"-20", "-$20.00"},
		{"0", "$0.00"},
		{"0.005", "$0.01"},
		{"1000000", "$1,000,000.00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, usd.Format(dec(tt.in)), "format %s", tt.in)
	}
	assert.Equal(t, "USD", usd.Code())
}

func TestCurrencyFormatter_DefaultCode(t *testing.T) {
	f := NewCurrencyFormatter("")
	assert.Equal(t, DefaultCurrency, f.Code())
	assert.NotEmpty(t, f.Format(dec("1")))
}
