package expense

import (
	"regexp"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/NgigiN/carteira/internal/money"
)

const (
	MinInstallments = 2
	MaxInstallments = 48
)

// InstallmentTolerance is how far count*amount may drift from the total
// before a quoted per-installment value is discarded.
var InstallmentTolerance = decimal.NewFromInt(1)

// timesMark is the "x" of "4x" or "4x de 100", or a "×". An "x" glued to
// a word or hyphen ("x-burguer", "4x100") is not one.
const timesMark = `(?:x(?:[^\w-]|$)|×)`

var (
	// Checked in order; a count outside the accepted range moves on to the
	// next pattern.
	installmentCountRes = []*regexp.Regexp{
		regexp.MustCompile(`\b(\d+)\s*` + timesMark),
		regexp.MustCompile(`\bem\s*(\d+)\s*(?:(?:vezes|parcelas)\b|` + timesMark + `)`),
		regexp.MustCompile(`\b(\d+)\s*parcelas?\b`),
		regexp.MustCompile(`\bparcelad[oa]\s*(?:em\s*)?(\d+)`),
		regexp.MustCompile(`\bdividid[oa]\s*(?:em\s*)?(\d+)`),
	}
	installmentValueRe = regexp.MustCompile(`\b(?:de|cada)\s*(?:r\$\s*)?(\d[\d.,]*)`)

	// installmentPhraseRe matches a count phrase together with the
	// per-installment value quoted right after it ("10x de 300",
	// "dividido em 3 de 500").
	installmentPhraseRe = regexp.MustCompile(
		`(?:\b(?:parcelad[oa]|dividid[oa])\s*(?:em\s*)?\d+(?:\s*(?:` + timesMark + `|(?:vezes|parcelas?)\b))?` +
			`|\b\d+\s*(?:` + timesMark + `|(?:vezes|parcelas?)\b))` +
			`(?:\s*(?:de|cada)\s*(?:r\$\s*)?\d[\d.,]*(?:\s*mil\b)?)?`)
)

// detectInstallments returns nil when the text carries no usable plan.
func detectInstallments(text string, total decimal.Decimal) *InstallmentPlan {
	count, ok := installmentCount(text)
	if !ok {
		return nil
	}
	return &InstallmentPlan{
		Count:  count,
		Amount: installmentAmount(text, total, count),
	}
}

func installmentCount(text string) (int, bool) {
	for _, re := range installmentCountRes {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if n >= MinInstallments && n <= MaxInstallments {
			return n, true
		}
	}
	return 0, false
}

// installmentAmount prefers a value quoted with "de"/"cada" when it agrees
// with total/count, and otherwise divides the total.
func installmentAmount(text string, total decimal.Decimal, count int) decimal.Decimal {
	n := decimal.NewFromInt(int64(count))
	for _, m := range installmentValueRe.FindAllStringSubmatch(text, -1) {
		v, ok := money.ParseLocale(m[1])
		if !ok {
			continue
		}
		if money.Within(v.Mul(n), total, InstallmentTolerance) {
			return v
		}
	}
	return money.Round(total.Div(n))
}
