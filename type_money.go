package networth

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is used to render amounts when none is configured.
const DefaultCurrency = "USD"

// FormatMoney renders an amount in the given ISO currency, using the
// currency's own symbol, separators and number of fraction digits, e.g.
// "$1,234.50" or "-$20.00". An unknown currency code renders the amount
// with two decimals followed by the code.
func FormatMoney(amount decimal.Decimal, currency string) string {
	cur := money.GetCurrency(currency)
	if cur == nil {
		if currency == "" {
			return amount.StringFixed(2)
		}
		return amount.StringFixed(2) + " " + currency
	}
	minor := amount.Shift(int32(cur.Fraction)).Round(0)
	return money.New(minor.IntPart(), cur.Code).Display()
}

// SignedMoney is like FormatMoney but always prints the sign, and "-" for
// a zero amount.
func SignedMoney(amount decimal.Decimal, currency string) string {
	if amount.IsZero() {
		return "-"
	}
	if amount.IsPositive() {
		return "+" + FormatMoney(amount, currency)
	}
	return FormatMoney(amount, currency)
}

// FormatFloatMoney renders a float amount, as found in chart points.
func FormatFloatMoney(amount float64, currency string) string {
	return FormatMoney(decimal.NewFromFloat(amount), currency)
}
