// Package core provides money parsing and handling utilities.
//
// Amounts are kept as integer cents everywhere; decimal strings coming from
// forms are parsed once at the edge with ParseDecimalToCents.
package core

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var maxCents = decimal.NewFromInt(math.MaxInt64)

// ParseDecimalToCents converts a decimal string to cents with half-up rounding.
//
// Only the dot separator is accepted. Signed, zero, malformed, and
// out-of-range values return ErrInvalidAmount.
//
// Examples:
//
//	ParseDecimalToCents("12.34") -> 1234, nil
//	ParseDecimalToCents("12.345") -> 1235, nil
func ParseDecimalToCents(s string) (int64, error) {
	cents, err := parseCents(s)
	if err != nil || cents == 0 {
		return 0, ErrInvalidAmount
	}
	return cents, nil
}

// ParseNonNegativeCents is ParseDecimalToCents allowing zero, for revenue
// figures where an idle month is valid.
func ParseNonNegativeCents(s string) (int64, error) {
	return parseCents(s)
}

func parseCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return 0, ErrInvalidAmount
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	cents := d.Shift(2).Round(0)
	if cents.IsNegative() || cents.GreaterThan(maxCents) {
		return 0, ErrInvalidAmount
	}
	return cents.IntPart(), nil
}

// Dollars returns the amount as a float for display and chart scaling.
// Use Cents for arithmetic.
func (m Money) Dollars() float64 {
	return float64(m.Cents) / 100.0
}

// Decimal returns the amount as a two-place decimal string ("12.30"), the
// format expected by number inputs.
func (m Money) Decimal() string {
	return decimal.New(m.Cents, -2).StringFixed(2)
}

// String formats the amount as US currency, e.g. "$1,234.56".
func (m Money) String() string {
	return FormatDollars(m.Cents)
}

// FormatDollars formats cents as a dollar string with thousands separators.
func FormatDollars(cents int64) string {
	neg := cents < 0
	if neg {
		cents = -cents
	}
	whole := strconv.FormatInt(cents/100, 10)
	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	rem := strconv.FormatInt(cents%100, 10)
	if len(rem) == 1 {
		rem = "0" + rem
	}
	s := "$" + b.String() + "." + rem
	if neg {
		return "-" + s
	}
	return s
}
