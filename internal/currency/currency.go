package currency

import (
	"math/big"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Prefix is written before every displayed amount.
const Prefix = "Rp "

var printer = message.NewPrinter(language.Indonesian)

// Format renders an amount for display, e.g. 125000 -> "Rp 125.000".
// Fractions keep up to three digits, matching id-ID locale output.
func Format(d decimal.Decimal) string {
	return Prefix + Number(d)
}

// Number renders d with id-ID grouping and no currency prefix.
func Number(d decimal.Decimal) string {
	d = d.Round(3)

	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}

	whole := d.Truncate(0)
	out := grouped(whole.BigInt())

	if frac := d.Sub(whole); !frac.IsZero() {
		out += "," + strings.TrimPrefix(frac.String(), "0.")
	}

	return sign + out
}

// grouped writes a non-negative integer with "." thousands separators.
// Values past int64 are grouped by hand since the printer only takes int64.
func grouped(n *big.Int) string {
	if n.IsInt64() {
		return printer.Sprintf("%d", n.Int64())
	}

	digits := n.String()

	var b strings.Builder

	for i, c := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}

		b.WriteRune(c)
	}

	return b.String()
}

// FormatDate renders a date the way id-ID short dates read: 2/1/2024.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	return t.Format("2/1/2006")
}
