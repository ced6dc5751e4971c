// Package money converts between major-unit decimal amounts and integer cents.
package money

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidAmount = errors.New("invalid money amount")

	hundred = decimal.NewFromInt(100)
	// maxDollars keeps the cent value well inside int64.
	maxDollars = decimal.New(9, 16)
)

// Input bounds. Arithmetic on a decimal rescales to its exponent, so
// an exponent like -2000000000 must never reach ToCents.
const (
	maxInputLen = 64
	minExponent = -20
	maxExponent = 18
)

// Parse reads a user-entered decimal amount such as "125.50".
func Parse(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > maxInputLen {
		return decimal.Zero, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", ErrInvalidAmount, err)
	}
	if exp := d.Exponent(); exp < minExponent || exp > maxExponent {
		return decimal.Zero, fmt.Errorf("%w: exponent %d out of range", ErrInvalidAmount, exp)
	}
	return d, nil
}

// ToCents converts dollars to cents, rounding half away from zero.
func ToCents(dollars decimal.Decimal) (int64, error) {
	if dollars.Abs().GreaterThan(maxDollars) {
		return 0, fmt.Errorf("%w: too large", ErrInvalidAmount)
	}
	return dollars.Mul(hundred).Round(0).IntPart(), nil
}

// FromCents converts cents back to dollars with two decimal places.
func FromCents(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}

// Format renders cents as a US dollar string, e.g. "$1,234.56".
func Format(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	whole := fmt.Sprintf("%d", cents/100)
	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return fmt.Sprintf("%s$%s.%02d", sign, b.String(), cents%100)
}
