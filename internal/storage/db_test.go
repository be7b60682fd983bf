package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NgigiN/carteira/internal/expense"
	"github.com/NgigiN/carteira/internal/installment"
	"github.com/NgigiN/carteira/internal/ledger"
	"github.com/NgigiN/carteira/internal/summary"
)

func newTestDB(t *testing.T) *Database {
	t.Helper()
	db, err := NewDatabase(filepath.Join(t.TempDir(), "ledger.db"), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func expand(t *testing.T, owner, msg string, at time.Time) []ledger.Record {
	t.Helper()
	p, err := expense.Parse(msg)
	require.NoError(t, err)
	records := installment.NewExpander().Expand(*p, at)
	for i := range records {
		records[i].Owner = owner
	}
	return records
}

func TestAppendAndList(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	at := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

	ids, err := db.Append(ctx, expand(t, "u1", "Comprei um tênis de R$ 400 no cartão em 4x", at)...)
	require.NoError(t, err)
	require.Len(t, ids, 4)
	_, err = db.Append(ctx, expand(t, "u1", "Paguei 85,50 reais de pix no mercado", at)...)
	require.NoError(t, err)

	all, err := db.List(ctx, ledger.Filter{Owner: "u1"})
	require.NoError(t, err)
	require.Len(t, all, 5)

	first := all[0]
	assert.Contains(t, ids, first.ID)
	assert.True(t, at.Equal(first.Date), "date %s", first.Date)
	require.NotNil(t, first.Installment)
	assert.Equal(t, 1, first.Installment.Number)
	assert.Equal(t, 4, first.Installment.Total)
	assert.True(t, first.Installment.Paid)
	assert.True(t, at.Equal(first.Installment.DueDate))
	assert.True(t, decimal.NewFromInt(400).Equal(first.TotalAmount))
	assert.Equal(t, ledger.SourceChat, first.Source)

	last := all[4]
	assert.Equal(t, "Um tênis (4/4)", last.Description)
	assert.True(t, time.Date(2024, 4, 15, 10, 0, 0, 0, time.UTC).Equal(last.Date))

	var pix ledger.Record
	for _, r := range all {
		if r.PaymentMethod == "pix" {
			pix = r
		}
	}
	assert.Nil(t, pix.Installment)
	assert.True(t, decimal.RequireFromString("85.5").Equal(pix.Amount), "amount %s", pix.Amount)
}

func TestListFilters(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	jan := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

	for _, batch := range [][]ledger.Record{
		expand(t, "u1", "Comprei um tênis de R$ 400 no cartão em 4x", jan),
		expand(t, "u1", "Gastei 50 reais de dinheiro no almoço", jan),
		expand(t, "u2", "Paguei 85 reais de pix no mercado", jan),
	} {
		_, err := db.Append(ctx, batch...)
		require.NoError(t, err)
	}

	tests := []struct {
		name   string
		filter ledger.Filter
		want   int
	}{
		{"owner", ledger.Filter{Owner: "u1"}, 5},
		{"month window", ledger.Filter{Owner: "u1", From: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), To: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)}, 2},
		{"from is inclusive", ledger.Filter{From: jan}, 6},
		{"to is exclusive", ledger.Filter{To: jan}, 0},
		{"installments only", ledger.Filter{InstallmentsOnly: true}, 4},
		{"method", ledger.Filter{PaymentMethod: "dinheiro"}, 1},
		{"category", ledger.Filter{Category: "alimentacao"}, 2},
		{"type", ledger.Filter{Type: ledger.Income}, 0},
		{"source", ledger.Filter{Source: ledger.SourceChat}, 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := db.List(ctx, tt.filter)
			require.NoError(t, err)
			assert.Len(t, got, tt.want)
			for _, r := range got {
				assert.True(t, tt.filter.Match(r), "record %+v escapes filter", r)
			}
		})
	}

	plans, err := db.List(ctx, ledger.Filter{InstallmentsOnly: true})
	require.NoError(t, err)
	byParent, err := db.List(ctx, ledger.Filter{ParentID: plans[0].ParentID})
	require.NoError(t, err)
	assert.Len(t, byParent, 4)
}

func TestAppendIsAtomic(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	records := expand(t, "u1", "Comprei um tênis de R$ 400 no cartão em 4x", time.Now())
	records[2].Amount = decimal.Zero

	_, err := db.Append(ctx, records...)
	require.ErrorIs(t, err, ledger.ErrInvalidRecord)

	_, err = db.Append(ctx)
	require.ErrorIs(t, err, ledger.ErrEmptyBatch)

	got, err := db.List(ctx, ledger.Filter{})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDatabaseBacksSummary(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	jan := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	_, err := db.Append(ctx, expand(t, "u1", "Comprei um tênis de R$ 400 no cartão em 4x", jan)...)
	require.NoError(t, err)

	svc := summary.NewService(db)
	m, err := svc.Month(ctx, "u1", jan)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(100).Equal(m.Expenses))

	plans, err := svc.OpenInstallments(ctx, "u1", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.Equal(t, 2, plans[0].Remaining)
	assert.Equal(t, "Um tênis", plans[0].Description)
}
