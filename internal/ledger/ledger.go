// Package ledger defines the transaction records produced from chat
// messages and the store contracts that persist and query them.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type Type string

const (
	Income  Type = "income"
	Expense Type = "expense"
)

type Source string

const (
	SourceChat   Source = "chat"
	SourceManual Source = "manual"
)

var (
	ErrEmptyBatch    = errors.New("no records to append")
	ErrInvalidRecord = errors.New("invalid record")
)

// Installment is the slice of a plan a single record stands for.
type Installment struct {
	Number  int
	Total   int
	Amount  decimal.Decimal
	DueDate time.Time
	Paid    bool
}

// Record is one ledger entry. Records created from an installment plan
// share a ParentID, carry the plan's TotalAmount and have a non-nil
// Installment; an at-once purchase has neither.
type Record struct {
	ID            string
	Owner         string
	Type          Type
	Amount        decimal.Decimal
	Category      string
	Description   string
	Date          time.Time
	PaymentMethod string
	Source        Source
	TotalAmount   decimal.Decimal
	ParentID      string
	Installment   *Installment
}

func (r Record) IsInstallment() bool {
	return r.Installment != nil && r.Installment.Total > 1
}

func (r Record) Validate() error {
	if r.Type != Income && r.Type != Expense {
		return fmt.Errorf("%w: unknown type %q", ErrInvalidRecord, r.Type)
	}
	if !r.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidRecord)
	}
	if r.Description == "" {
		return fmt.Errorf("%w: empty description", ErrInvalidRecord)
	}
	if r.Date.IsZero() {
		return fmt.Errorf("%w: zero date", ErrInvalidRecord)
	}
	if r.Installment != nil && r.ParentID == "" {
		return fmt.Errorf("%w: installment without parent id", ErrInvalidRecord)
	}
	return nil
}

// Filter narrows a List call. Zero fields match everything; From is
// inclusive and To exclusive.
type Filter struct {
	Owner            string
	From             time.Time
	To               time.Time
	Type             Type
	Category         string
	PaymentMethod    string
	Source           Source
	ParentID         string
	InstallmentsOnly bool
}

// Match reports whether r passes the filter.
func (f Filter) Match(r Record) bool {
	switch {
	case f.Owner != "" && r.Owner != f.Owner:
		return false
	case !f.From.IsZero() && r.Date.Before(f.From):
		return false
	case !f.To.IsZero() && !r.Date.Before(f.To):
		return false
	case f.Type != "" && r.Type != f.Type:
		return false
	case f.Category != "" && r.Category != f.Category:
		return false
	case f.PaymentMethod != "" && r.PaymentMethod != f.PaymentMethod:
		return false
	case f.Source != "" && r.Source != f.Source:
		return false
	case f.ParentID != "" && r.ParentID != f.ParentID:
		return false
	case f.InstallmentsOnly && !r.IsInstallment():
		return false
	}
	return true
}

// Sink accepts records and assigns their IDs. Records passed in one call
// form one logical batch.
type Sink interface {
	Append(ctx context.Context, records ...Record) ([]string, error)
}

// Query lists records ordered by date.
type Query interface {
	List(ctx context.Context, filter Filter) ([]Record, error)
}

type Store interface {
	Sink
	Query
}
