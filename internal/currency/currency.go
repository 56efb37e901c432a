// Package currency converts base-currency amounts into a display currency.
//
// Stored amounts are always in the base currency; conversion happens only at
// render time against a fixed rate table and never mutates stored values.
package currency

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Base is the currency every amount is stored in.
const Base = "AED"

// ErrUnknownCurrency is returned for codes outside the fixed table. The
// table is exhaustive, so hitting this is a programming error and callers
// should fail fast rather than default.
var ErrUnknownCurrency = errors.New("unknown currency code")

// rates maps a display currency to its multiplier against the base.
var rates = map[string]decimal.Decimal{
	"AED": decimal.NewFromInt(1),
	"USD": decimal.RequireFromString("0.27"),
	"EUR": decimal.RequireFromString("0.25"),
	"GBP": decimal.RequireFromString("0.22"),
	"INR": decimal.RequireFromString("22.75"),
	"AUD": decimal.RequireFromString("0.41"),
}

var symbols = map[string]string{
	"AED": "AED ",
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"INR": "₹",
	"AUD": "A$",
}

// Codes lists the supported display currencies in selector order.
func Codes() []string {
	return []string{"AED", "USD", "EUR", "GBP", "INR", "AUD"}
}

// Rate returns the multiplier against the base currency.
func Rate(code string) (decimal.Decimal, error) {
	r, ok := rates[code]
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("%w: %q", ErrUnknownCurrency, code)
	}
	return r, nil
}

// Convert turns a base-currency amount into the target currency, rounded to
// two decimal places.
func Convert(amount decimal.Decimal, code string) (decimal.Decimal, error) {
	r, err := Rate(code)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return amount.Mul(r).Round(2), nil
}

// Format converts and renders an amount with the target currency's symbol
// and exactly two fractional digits.
func Format(amount decimal.Decimal, code string) (string, error) {
	converted, err := Convert(amount, code)
	if err != nil {
		return "", err
	}
	sym, ok := symbols[code]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownCurrency, code)
	}
	if converted.IsNegative() {
		return "-" + sym + converted.Neg().StringFixed(2), nil
	}
	return sym + converted.StringFixed(2), nil
}
