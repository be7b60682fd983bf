// Package textnorm normalizes chat text before keyword matching.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold lowercases s, strips diacritics and collapses whitespace, so
// "Cartão  de CRÉDITO" becomes "cartao de credito". Symbols such as "×"
// and "$" are kept.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.Join(strings.Fields(strings.ToLower(folded)), " ")
}

// HasWordPrefix reports whether text starts with word followed by end of
// text or a non-letter, non-digit rune. "oi" matches "oi, tudo bem" but not
// "oito reais".
func HasWordPrefix(text, word string) bool {
	if !strings.HasPrefix(text, word) {
		return false
	}
	rest := text[len(word):]
	if rest == "" {
		return true
	}
	r := []rune(rest)[0]
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}
