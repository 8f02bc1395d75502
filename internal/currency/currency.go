// Package currency formats decimal amounts for display. It is presentation
// only: all arithmetic happens on raw decimals before anything is formatted.
package currency

import (
	"strings"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// Currency is the closed set of display currencies.
type Currency string

const (
	EUR Currency = "EUR"
	USD Currency = "USD"
)

// ErrUnknownCurrency is returned by Parse for anything outside the enum.
var ErrUnknownCurrency = errors.New("unknown currency")

// Parse validates a currency code. The empty string defaults to EUR, the
// store's home currency.
func Parse(s string) (Currency, error) {
	switch strings.ToUpper(s) {
	case "", string(EUR):
		return EUR, nil
	case string(USD):
		return USD, nil
	default:
		return "", errors.Wrap(ErrUnknownCurrency, s)
	}
}

// Format renders an amount with the currency's conventional symbol, grouping
// and decimal separator, rounded to 2 places (half away from zero).
//
//	EUR: 1.234,56 €   (Spanish convention, trailing symbol)
//	USD: $1,234.56    (leading symbol)
func Format(amount decimal.Decimal, c Currency) string {
	fixed := amount.Round(2).StringFixed(2)

	neg := strings.HasPrefix(fixed, "-")
	fixed = strings.TrimPrefix(fixed, "-")

	intPart, fracPart, _ := strings.Cut(fixed, ".")

	switch c {
	case USD:
		s := "$" + groupThousands(intPart, ",") + "." + fracPart
		if neg {
			s = "-" + s
		}
		return s
	default: // EUR
		s := groupThousands(intPart, ".") + "," + fracPart + " €"
		if neg {
			s = "-" + s
		}
		return s
	}
}

// groupThousands inserts sep every three digits, right to left.
func groupThousands(digits, sep string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteString(sep)
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
