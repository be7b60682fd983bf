// Package expense turns a free-form Portuguese sentence describing a
// purchase into a ParsedExpense.
//
// Each attribute is extracted by its own stage. Only the amount is
// mandatory: the payment method, installment plan, category and
// description all fall back to defaults.
package expense

import (
	"errors"

	"github.com/NgigiN/carteira/internal/textnorm"
)

// ErrAmountNotFound is returned when no positive monetary value can be
// read from the message.
var ErrAmountNotFound = errors.New("no monetary amount found in message")

// Parse reads an expense out of message. It is a pure function of its
// input and safe for concurrent use.
func Parse(message string) (*ParsedExpense, error) {
	text := textnorm.Fold(message)

	total, ok := extractAmount(text)
	if !ok {
		return nil, ErrAmountNotFound
	}

	return &ParsedExpense{
		Description:  extractDescription(message, total),
		TotalAmount:  total,
		Method:       detectPaymentMethod(text),
		Category:     detectCategory(text),
		Installments: detectInstallments(text, total),
	}, nil
}
