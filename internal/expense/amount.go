package expense

import (
	"regexp"

	"github.com/shopspring/decimal"

	"github.com/NgigiN/carteira/internal/money"
)

var thousand = decimal.NewFromInt(1000)

// amountStage finds a candidate total in folded text.
type amountStage struct {
	name string
	find func(text string) (decimal.Decimal, bool)
}

var (
	currencyPrefixRe = regexp.MustCompile(`r\$\s*(\d[\d.,]*)(\s*mil\b)?`)
	currencySuffixRe = regexp.MustCompile(`(\d[\d.,]*)(\s*mil)?\s*(?:(?:reais|real|brl)\b|r\$)`)
	intentVerbRe     = regexp.MustCompile(`\b(?:no valor de|no total de|totalizando|custou|custa|paguei|gastei|comprei|valor|total|por|de)\s*(?:r\$\s*)?(\d[\d.,]*)(\s*mil\b)?`)
	thousandsRe      = regexp.MustCompile(`\b(\d+)\s*mil\b`)
	numberRe         = regexp.MustCompile(`\d[\d.,]*`)
)

// amountStages run in order; the first stage that yields a positive value
// decides the total. Within a stage the largest candidate wins.
var amountStages = []amountStage{
	{name: "currency", find: func(text string) (decimal.Decimal, bool) {
		best, ok := largestMatch(currencyPrefixRe, text)
		if d, found := largestMatch(currencySuffixRe, text); found && (!ok || d.GreaterThan(best)) {
			best, ok = d, true
		}
		return best, ok
	}},
	{name: "intent verb", find: func(text string) (decimal.Decimal, bool) {
		// "10x de 300" quotes an installment, not the total.
		return largestMatch(intentVerbRe, installmentPhraseRe.ReplaceAllString(text, " "))
	}},
	{name: "thousands", find: func(text string) (decimal.Decimal, bool) {
		return largestMatch(thousandsRe, text, thousand)
	}},
	{name: "largest number", find: func(text string) (decimal.Decimal, bool) {
		var best decimal.Decimal
		found := false
		for _, token := range numberRe.FindAllString(text, -1) {
			if d, ok := money.ParseLocale(token); ok && (!found || d.GreaterThan(best)) {
				best, found = d, true
			}
		}
		return best, found
	}},
}

func extractAmount(text string) (decimal.Decimal, bool) {
	for _, stage := range amountStages {
		if d, ok := stage.find(text); ok {
			return d, true
		}
	}
	return decimal.Zero, false
}

// largestMatch parses group 1 of every match of re. A non-empty group 2
// (a trailing "mil") multiplies the value by a thousand; so does the
// optional multiplier argument.
func largestMatch(re *regexp.Regexp, text string, multiplier ...decimal.Decimal) (decimal.Decimal, bool) {
	var best decimal.Decimal
	found := false
	for _, m := range re.FindAllStringSubmatch(text, -1) {
		d, ok := money.ParseLocale(m[1])
		if !ok {
			continue
		}
		if len(m) > 2 && m[2] != "" {
			d = d.Mul(thousand)
		}
		for _, factor := range multiplier {
			d = d.Mul(factor)
		}
		if !found || d.GreaterThan(best) {
			best, found = d, true
		}
	}
	return best, found
}
