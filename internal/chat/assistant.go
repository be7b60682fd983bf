// Package chat answers one user message at a time: it classifies the
// message, records parsed expenses in the ledger and renders the reply.
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/NgigiN/carteira/internal/expense"
	"github.com/NgigiN/carteira/internal/installment"
	"github.com/NgigiN/carteira/internal/intent"
	"github.com/NgigiN/carteira/internal/ledger"
	"github.com/NgigiN/carteira/internal/logger"
	"github.com/NgigiN/carteira/internal/reply"
	"github.com/NgigiN/carteira/internal/summary"
)

var ErrEmptyOwner = errors.New("owner is required")

type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in Location, or local time when nil.
type SystemClock struct {
	Location *time.Location
}

func (c SystemClock) Now() time.Time {
	if c.Location == nil {
		return time.Now()
	}
	return time.Now().In(c.Location)
}

// Response is what the assistant did with a message. Expense and Records
// are set only when an expense was recorded.
type Response struct {
	Intent  intent.Result
	Text    string
	Expense *expense.ParsedExpense
	Records []ledger.Record
}

type Assistant struct {
	store    ledger.Store
	expander *installment.Expander
	summary  *summary.Service
	clock    Clock
	log      zerolog.Logger
}

func NewAssistant(store ledger.Store, clock Clock, log zerolog.Logger) *Assistant {
	return &Assistant{
		store:    store,
		expander: installment.NewExpander(),
		summary:  summary.NewService(store),
		clock:    clock,
		log:      logger.Component(log, "assistant"),
	}
}

// Handle answers text sent by owner. Errors are returned only when the
// ledger fails; unrecognized messages get guidance text instead.
func (a *Assistant) Handle(ctx context.Context, owner, text string) (Response, error) {
	if owner == "" {
		return Response{}, ErrEmptyOwner
	}
	res := intent.Classify(text)
	log := a.log.With().Str("owner", owner).Stringer("intent", res.Kind).Logger()

	switch res.Kind {
	case intent.Greeting:
		return Response{Intent: res, Text: reply.Help()}, nil
	case intent.Query:
		out, err := a.answerQuery(ctx, owner, res.Query)
		if err != nil {
			log.Error().Err(err).Stringer("query", res.Query).Msg("query failed")
			return Response{Intent: res}, err
		}
		return Response{Intent: res, Text: out}, nil
	case intent.Expense:
		records, err := a.record(ctx, owner, *res.Expense)
		if err != nil {
			log.Error().Err(err).Msg("recording expense failed")
			return Response{Intent: res}, err
		}
		log.Info().
			Str("amount", res.Expense.TotalAmount.StringFixed(2)).
			Stringer("method", res.Expense.Method).
			Int("records", len(records)).
			Msg("expense recorded")
		return Response{
			Intent:  res,
			Text:    reply.Confirmation(*res.Expense),
			Expense: res.Expense,
			Records: records,
		}, nil
	default:
		log.Debug().Str("text", text).Msg("message not understood")
		return Response{Intent: res, Text: reply.Confusion()}, nil
	}
}

// Summary renders the month summary for owner.
func (a *Assistant) Summary(ctx context.Context, owner string) (string, error) {
	return a.answerQuery(ctx, owner, intent.MonthSummary)
}

// Installments renders owner's open installment plans.
func (a *Assistant) Installments(ctx context.Context, owner string) (string, error) {
	return a.answerQuery(ctx, owner, intent.OpenInstallments)
}

// IsBatch reports whether text holds more than one non-empty line and
// every one of them reads as an expense.
func IsBatch(text string) bool {
	lines := batchLines(text)
	if len(lines) < 2 {
		return false
	}
	for _, l := range lines {
		if intent.Classify(l).Kind != intent.Expense {
			return false
		}
	}
	return true
}

// HandleBatch records each non-empty line of text as its own expense and
// reports per-line outcomes. A failing line does not stop the others.
func (a *Assistant) HandleBatch(ctx context.Context, owner, text string) (string, error) {
	if owner == "" {
		return "", ErrEmptyOwner
	}
	var results []reply.BatchLine
	for i, line := range batchLines(text) {
		r := reply.BatchLine{Line: i + 1, Text: line}
		parsed, err := expense.Parse(line)
		if err == nil {
			_, err = a.record(ctx, owner, *parsed)
		}
		if err != nil {
			a.log.Warn().Err(err).Str("owner", owner).Int("line", i+1).Msg("batch line failed")
		}
		r.Err = err
		results = append(results, r)
	}
	return reply.Batch(results), nil
}

func (a *Assistant) record(ctx context.Context, owner string, p expense.ParsedExpense) ([]ledger.Record, error) {
	records := a.expander.Expand(p, a.clock.Now())
	for i := range records {
		records[i].Owner = owner
	}
	ids, err := a.store.Append(ctx, records...)
	if err != nil {
		return nil, fmt.Errorf("append expense records: %w", err)
	}
	for i := range records {
		records[i].ID = ids[i]
	}
	return records, nil
}

func (a *Assistant) answerQuery(ctx context.Context, owner string, q intent.QueryKind) (string, error) {
	now := a.clock.Now()
	if q == intent.OpenInstallments {
		plans, err := a.summary.OpenInstallments(ctx, owner, now)
		if err != nil {
			return "", err
		}
		return reply.OpenInstallments(plans), nil
	}
	m, err := a.summary.Month(ctx, owner, now)
	if err != nil {
		return "", err
	}
	return reply.MonthSummary(m), nil
}

func batchLines(text string) []string {
	var lines []string
	for _, l := range strings.Split(text, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}
