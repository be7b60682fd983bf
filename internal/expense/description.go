package expense

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/NgigiN/carteira/internal/money"
)

// DefaultDescription labels an expense whose message had nothing left
// after the payment details were stripped.
const DefaultDescription = "Compra registrada via chat"

const (
	connector  = `(?:no|na|nos|nas|pelo|pela|via|com|de|do|da|em)`
	perUnit    = `(?:\s*(?:de|cada)\s*(?:r\$\s*)?\d[\d.,]*)?`
	amountWord = `\d[\d.,]*`
)

// descriptionStrips run against the original message, in order.
var descriptionStrips = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:\b` + connector + `\s+)?\bcart(?:ão|ao|ões|oes)(?:\s+de)?(?:\s+(?:cr[ée]dito|d[ée]bito))?\b`),
	regexp.MustCompile(`(?i)(?:\b` + connector + `\s+)?\b(?:pix(?:\s+parcelado)?|cr[ée]dito|d[ée]bito|dinheiro|esp[ée]cie|boleto|fatura)\b`),
	regexp.MustCompile(`(?i)(?:\bparcelad[oa]\s*)?(?:\bem\s*)?\b\d+\s*` + timesMark + perUnit),
	regexp.MustCompile(`(?i)\bem\s*\d+\s*(?:vezes|parcelas)` + perUnit),
	regexp.MustCompile(`(?i)\b\d+\s*parcelas?` + perUnit),
	regexp.MustCompile(`(?i)\b(?:parcelad[oa]|dividid[oa])(?:\s*em\s*\d+)?`),
	regexp.MustCompile(`(?i)r\$\s*` + amountWord + `(?:\s*mil\b)?`),
	regexp.MustCompile(`(?i)\b` + amountWord + `(?:\s*mil)?\s*(?:reais|real)\b`),
	regexp.MustCompile(`(?i)\b\d+\s*mil\b`),
	regexp.MustCompile(`(?i)\b(?:de|por|cada)\s*` + amountWord),
	regexp.MustCompile(`(?i)\b(?:paguei|gastei|comprei|custou|custa|totalizando)\s*` + amountWord),
	regexp.MustCompile(`(?i)\b(?:no valor de|no total de|paguei|gastei|comprei|fiz|custou|custa|totalizando)\b`),
	regexp.MustCompile(`(?i)\b(?:todo\s+m[eê]s|mensal)`),
}

var (
	standaloneNumberRe = regexp.MustCompile(`\b\d[\d.,]*`)
	leadingConnector   = regexp.MustCompile(`(?i)^(?:` + connector + `|e|por)(?:\s+|$)`)
	trailingConnector  = regexp.MustCompile(`(?i)(?:^|\s+)(?:` + connector + `|e|por|um|uma|o|a)$`)
)

// extractDescription strips payment, amount and installment wording from
// message and returns what is left, capitalized.
func extractDescription(message string, total decimal.Decimal) string {
	desc := message
	for _, re := range descriptionStrips {
		desc = re.ReplaceAllString(desc, " ")
	}
	// A bare number picked up by the fallback amount stage.
	desc = standaloneNumberRe.ReplaceAllStringFunc(desc, func(token string) string {
		if d, ok := money.ParseLocale(token); ok && d.Equal(total) {
			return " "
		}
		return token
	})

	desc = strings.Join(strings.Fields(desc), " ")
	for {
		trimmed := strings.Trim(desc, " ,.;:-!?")
		trimmed = leadingConnector.ReplaceAllString(trimmed, "")
		trimmed = strings.TrimSpace(trailingConnector.ReplaceAllString(trimmed, ""))
		if trimmed == desc {
			break
		}
		desc = trimmed
	}

	if desc == "" {
		return DefaultDescription
	}
	return capitalize(desc)
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}
