// Package money parses and formats Brazilian-style monetary amounts.
//
// Amounts are decimal.Decimal values kept at two decimal places. Input uses
// the pt-BR convention: dot groups thousands and comma separates decimals,
// so "1.000,50" is one thousand and fifty cents.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Places is the number of decimal places every amount is rounded to.
const Places = 2

// ParseLocale parses a numeric token such as "1.000,00", "200,50" or "85".
// Trailing separators left over by a sentence ("400." or "10,") are
// ignored. The second result is false when the token is not a number or is
// not positive.
func ParseLocale(token string) (decimal.Decimal, bool) {
	s := strings.TrimSpace(token)
	s = strings.TrimRight(s, ".,")
	if s == "" {
		return decimal.Zero, false
	}
	s = strings.ReplaceAll(s, ".", "")
	if strings.Count(s, ",") > 1 {
		return decimal.Zero, false
	}
	s = strings.Replace(s, ",", ".", 1)
	d, err := decimal.NewFromString(s)
	if err != nil || !d.IsPositive() {
		return decimal.Zero, false
	}
	return Round(d), true
}

// Round rounds half away from zero to Places.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(Places)
}

// Within reports whether a and b differ by at most tolerance.
func Within(a, b, tolerance decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(tolerance)
}

// Format renders d as "R$ 1.234,56", straight from its decimal digits so
// large amounts keep every digit.
func Format(d decimal.Decimal) string {
	s := d.StringFixed(Places)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	whole, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	b.WriteString("R$ ")
	b.WriteString(sign)
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	b.WriteByte(',')
	b.WriteString(frac)
	return b.String()
}
