// Package summary aggregates ledger records for the chat query path.
package summary

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"time"

	"github.com/jinzhu/now"
	"github.com/shopspring/decimal"

	"github.com/NgigiN/carteira/internal/ledger"
)

// Amount is a total for one grouping key (a category or payment method).
type Amount struct {
	Key   string
	Total decimal.Decimal
}

type Month struct {
	Start        time.Time
	Income       decimal.Decimal
	Expenses     decimal.Decimal
	ChatExpenses decimal.Decimal
	ChatCount    int
	ByCategory   []Amount
	ByMethod     []Amount
}

func (m Month) Balance() decimal.Decimal {
	return m.Income.Sub(m.Expenses)
}

// OpenPlan is an installment plan with installments still to come.
type OpenPlan struct {
	ParentID          string
	Description       string
	Count             int
	InstallmentAmount decimal.Decimal
	TotalAmount       decimal.Decimal
	Remaining         int
}

type Service struct {
	query ledger.Query
}

func NewService(q ledger.Query) *Service {
	return &Service{query: q}
}

// Month totals the owner's records dated in the calendar month of at.
func (s *Service) Month(ctx context.Context, owner string, at time.Time) (Month, error) {
	start := now.With(at).BeginningOfMonth()
	records, err := s.query.List(ctx, ledger.Filter{
		Owner: owner,
		From:  start,
		To:    start.AddDate(0, 1, 0),
	})
	if err != nil {
		return Month{}, fmt.Errorf("list month records: %w", err)
	}

	m := Month{Start: start}
	byCategory := map[string]decimal.Decimal{}
	byMethod := map[string]decimal.Decimal{}
	for _, r := range records {
		if r.Type == ledger.Income {
			m.Income = m.Income.Add(r.Amount)
			continue
		}
		m.Expenses = m.Expenses.Add(r.Amount)
		byCategory[r.Category] = byCategory[r.Category].Add(r.Amount)
		if r.PaymentMethod != "" {
			byMethod[r.PaymentMethod] = byMethod[r.PaymentMethod].Add(r.Amount)
		}
		if r.Source == ledger.SourceChat {
			m.ChatExpenses = m.ChatExpenses.Add(r.Amount)
			m.ChatCount++
		}
	}
	m.ByCategory = sortedAmounts(byCategory)
	m.ByMethod = sortedAmounts(byMethod)
	return m, nil
}

var installmentSuffix = regexp.MustCompile(`\s*\(\d+/\d+\)$`)

// OpenInstallments groups the owner's installment records by plan and
// counts the installments dated at or after at. Fully elapsed plans are
// left out. Plans come back in the order their first installment was made.
func (s *Service) OpenInstallments(ctx context.Context, owner string, at time.Time) ([]OpenPlan, error) {
	records, err := s.query.List(ctx, ledger.Filter{Owner: owner, InstallmentsOnly: true})
	if err != nil {
		return nil, fmt.Errorf("list installment records: %w", err)
	}

	var order []string
	plans := map[string]*OpenPlan{}
	for _, r := range records {
		key := r.ParentID
		if key == "" {
			key = r.ID
		}
		p, ok := plans[key]
		if !ok {
			p = &OpenPlan{
				ParentID:          key,
				Description:       installmentSuffix.ReplaceAllString(r.Description, ""),
				Count:             r.Installment.Total,
				InstallmentAmount: r.Amount,
				TotalAmount:       r.TotalAmount,
			}
			plans[key] = p
			order = append(order, key)
		}
		if !r.Date.Before(at) {
			p.Remaining++
		}
	}

	var open []OpenPlan
	for _, key := range order {
		if p := plans[key]; p.Remaining > 0 {
			open = append(open, *p)
		}
	}
	return open, nil
}

func sortedAmounts(totals map[string]decimal.Decimal) []Amount {
	out := make([]Amount, 0, len(totals))
	for k, v := range totals {
		out = append(out, Amount{Key: k, Total: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Total.Cmp(out[j].Total); c != 0 {
			return c > 0
		}
		return out[i].Key < out[j].Key
	})
	return out
}
