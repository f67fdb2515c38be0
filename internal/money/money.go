// Package money converts between integer cents, display strings and
// decimal whole currency units.
package money

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

const symbol = "$"

// MaxCents is the largest price the service stores: NUMERIC(14,2) holds at
// most 999999999999.99 units.
const MaxCents int64 = 99999999999999

var ErrOutOfRange = errors.New("amount out of range")

var (
	minCents = decimal.NewFromInt(math.MinInt64)
	maxCents = decimal.NewFromInt(math.MaxInt64)
)

// CentsToDisplay formats cents as "$X.XX". Negative values clamp to zero.
func CentsToDisplay(cents int64) string {
	if cents < 0 {
		cents = 0
	}
	return symbol + decimal.New(cents, -2).StringFixed(2)
}

// DisplayToCents keeps only the ASCII digits of text and reads them as a
// number of cents, so "12.50" and "1,250" both give 1250. Empty input, input
// without digits and values that overflow int64 give 0.
func DisplayToCents(text string) int64 {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, text)
	if digits == "" {
		return 0
	}
	cents, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0
	}
	return cents
}

// CentsToUnits converts cents to whole currency units (cents / 100).
func CentsToUnits(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}

// UnitsToCents converts whole units to cents, rounding half away from zero.
// Amounts that do not fit in int64 cents return ErrOutOfRange.
func UnitsToCents(units decimal.Decimal) (int64, error) {
	cents := units.Shift(2).Round(0)
	if cents.LessThan(minCents) || cents.GreaterThan(maxCents) {
		return 0, fmt.Errorf("%s units: %w", units.String(), ErrOutOfRange)
	}
	return cents.IntPart(), nil
}

// MulCents returns cents*qty, or ErrOutOfRange if the product overflows.
func MulCents(cents int64, qty int) (int64, error) {
	q := int64(qty)
	if cents == 0 || q == 0 {
		return 0, nil
	}
	v := cents * q
	if v/q != cents || (cents == -1 && q == math.MinInt64) || (q == -1 && cents == math.MinInt64) {
		return 0, fmt.Errorf("%d x %d cents: %w", cents, qty, ErrOutOfRange)
	}
	return v, nil
}

// AddCents returns a+b, or ErrOutOfRange if the sum overflows.
func AddCents(a, b int64) (int64, error) {
	if (b > 0 && a > math.MaxInt64-b) || (b < 0 && a < math.MinInt64-b) {
		return 0, fmt.Errorf("%d + %d cents: %w", a, b, ErrOutOfRange)
	}
	return a + b, nil
}
