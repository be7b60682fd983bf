package expense

import (
	"regexp"
	"strings"
)

type methodRule struct {
	method PaymentMethod
	match  func(text string) bool
}

var (
	debitCardRe = regexp.MustCompile(`\bcart(?:ao|oes)\s+(?:de\s+)?debito\b`)
	creditRe    = regexp.MustCompile(`\b(?:credito|cart(?:ao|oes)|fatura|cc)\b`)
	pixRe       = regexp.MustCompile(`\bpix\b`)
	debitRe     = regexp.MustCompile(`\bdebito\b`)
	cashRe      = regexp.MustCompile(`\b(?:dinheiro|especie|cash)\b`)
	billRe      = regexp.MustCompile(`\bboleto\b`)

	installmentHintRes = []*regexp.Regexp{
		regexp.MustCompile(`\b\d+\s*` + timesMark),
		regexp.MustCompile(`\bem\s*\d+\s*(?:(?:vezes|parcelas)\b|` + timesMark + `)`),
		regexp.MustCompile(`parcel`),
		regexp.MustCompile(`dividid`),
	}
)

// methodRules are checked in order. Credit card mentions win outright,
// a "cartão de débito" phrase is not a credit card mention.
var methodRules = []methodRule{
	{MethodCredit, func(text string) bool {
		return creditRe.MatchString(debitCardRe.ReplaceAllString(text, " "))
	}},
	{MethodPixInstallment, func(text string) bool {
		return strings.Contains(text, "pix parcelado") ||
			(pixRe.MatchString(text) && hasInstallmentHints(text))
	}},
	{MethodPix, pixRe.MatchString},
	{MethodDebit, debitRe.MatchString},
	{MethodCash, cashRe.MatchString},
	{MethodBill, billRe.MatchString},
}

// detectPaymentMethod falls back to pix when nothing matches.
func detectPaymentMethod(text string) PaymentMethod {
	for _, rule := range methodRules {
		if rule.match(text) {
			return rule.method
		}
	}
	return MethodPix
}

func hasInstallmentHints(text string) bool {
	for _, re := range installmentHintRes {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}
