// Package intent decides what a chat message is asking for before any
// expense parsing happens.
package intent

import (
	"strings"

	"github.com/NgigiN/carteira/internal/expense"
	"github.com/NgigiN/carteira/internal/textnorm"
)

type Kind int

const (
	Unrecognized Kind = iota
	Greeting
	Query
	Expense
)

func (k Kind) String() string {
	switch k {
	case Greeting:
		return "greeting"
	case Query:
		return "query"
	case Expense:
		return "expense"
	default:
		return "unrecognized"
	}
}

type QueryKind int

const (
	MonthSummary QueryKind = iota
	OpenInstallments
)

func (q QueryKind) String() string {
	if q == OpenInstallments {
		return "open_installments"
	}
	return "month_summary"
}

// Result is the classification of one message. Query is set only for
// Query results and Expense only for Expense results.
type Result struct {
	Kind    Kind
	Query   QueryKind
	Expense *expense.ParsedExpense
}

// Folded forms; a greeting must be the whole message or its first word(s).
var greetings = []string{
	"oi", "ola", "hey", "eae", "e ai", "bom dia", "boa tarde", "boa noite",
	"hello", "hi", "ajuda", "help", "como funciona", "o que", "como usar",
	"menu", "inicio", "opcoes",
}

var queries = []string{
	"quanto gastei", "meu extrato", "meus gastos", "resumo", "saldo",
	"quanto devo", "minhas parcelas", "parcelas abertas", "parcelas em aberto",
}

// Classify routes message to greeting, query, expense or unrecognized. It
// depends on the message alone.
func Classify(message string) Result {
	text := textnorm.Fold(message)

	if IsGreeting(text) {
		return Result{Kind: Greeting}
	}
	if IsQuery(text) {
		q := MonthSummary
		if strings.Contains(text, "parcela") {
			q = OpenInstallments
		}
		return Result{Kind: Query, Query: q}
	}

	parsed, err := expense.Parse(message)
	if err != nil {
		return Result{Kind: Unrecognized}
	}
	return Result{Kind: Expense, Expense: parsed}
}

// IsGreeting expects folded text.
func IsGreeting(text string) bool {
	for _, g := range greetings {
		if textnorm.HasWordPrefix(text, g) {
			return true
		}
	}
	return false
}

// IsQuery expects folded text.
func IsQuery(text string) bool {
	for _, q := range queries {
		if strings.Contains(text, q) {
			return true
		}
	}
	return false
}
