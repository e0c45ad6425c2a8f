package invoice

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	intPrefix     = regexp.MustCompile(`^[+-]?\d+`)
	decimalPrefix = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)
)

// CoerceQuantity reads the leading integer of s. Anything that does not start
// with a number, and any negative value, becomes 0.
func CoerceQuantity(s string) int64 {
	m := intPrefix.FindString(strings.TrimSpace(s))
	if m == "" {
		return 0
	}

	n, err := strconv.ParseInt(m, 10, 64)
	if err != nil || n < 0 {
		return 0
	}

	return n
}

// CoercePrice reads the leading decimal number of s. Anything that does not
// start with a number, and any negative value, becomes 0.
func CoercePrice(s string) decimal.Decimal {
	m := decimalPrefix.FindString(strings.TrimSpace(s))
	if m == "" {
		return decimal.Zero
	}

	d, err := decimal.NewFromString(m)
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}

	return d
}
