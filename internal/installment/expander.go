// Package installment turns a parsed expense into the ledger records it
// produces: one at-once record, or one record per installment.
package installment

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/now"

	"github.com/NgigiN/carteira/internal/expense"
	"github.com/NgigiN/carteira/internal/ledger"
)

// Expander builds ledger records. NewID generates plan parent ids.
type Expander struct {
	NewID func() string
}

func NewExpander() *Expander {
	return &Expander{NewID: uuid.NewString}
}

// Expand returns the records for p dated from at. Without an installment
// plan it returns a single record for the full amount and no installment
// metadata. With a plan of N installments it returns N records sharing a
// parent id, record i due i-1 calendar months after at, only the first one
// paid.
func (e *Expander) Expand(p expense.ParsedExpense, at time.Time) []ledger.Record {
	base := ledger.Record{
		Type:          ledger.Expense,
		Category:      p.Category.String(),
		PaymentMethod: p.Method.String(),
		Source:        ledger.SourceChat,
	}

	if !p.HasInstallments() {
		r := base
		r.Amount = p.TotalAmount
		r.Description = p.Description
		r.Date = at
		return []ledger.Record{r}
	}

	plan := p.Installments
	parentID := e.newID()
	records := make([]ledger.Record, plan.Count)
	for i := range records {
		due := AddMonths(at, i)
		r := base
		r.Amount = plan.Amount
		r.Description = fmt.Sprintf("%s (%d/%d)", p.Description, i+1, plan.Count)
		r.Date = due
		r.TotalAmount = p.TotalAmount
		r.ParentID = parentID
		r.Installment = &ledger.Installment{
			Number:  i + 1,
			Total:   plan.Count,
			Amount:  plan.Amount,
			DueDate: due,
			Paid:    i == 0,
		}
		records[i] = r
	}
	return records
}

func (e *Expander) newID() string {
	if e.NewID == nil {
		return uuid.NewString()
	}
	return e.NewID()
}

// AddMonths moves t by n calendar months keeping the day of month, or the
// last day of the target month when it is shorter (Jan 31 + 1 = Feb 28/29).
func AddMonths(t time.Time, n int) time.Time {
	first := now.With(t).BeginningOfMonth().AddDate(0, n, 0)
	day := t.Day()
	if last := now.With(first).EndOfMonth().Day(); day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}
