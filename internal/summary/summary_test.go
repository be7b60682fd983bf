package summary

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NgigiN/carteira/internal/expense"
	"github.com/NgigiN/carteira/internal/installment"
	"github.com/NgigiN/carteira/internal/ledger"
)

func seed(t *testing.T, store *ledger.MemoryStore, owner, msg string, at time.Time) {
	t.Helper()
	p, err := expense.Parse(msg)
	require.NoError(t, err)
	records := installment.NewExpander().Expand(*p, at)
	for i := range records {
		records[i].Owner = owner
	}
	_, err = store.Append(context.Background(), records...)
	require.NoError(t, err)
}

func TestMonth(t *testing.T) {
	ctx := context.Background()
	store := ledger.NewMemoryStore()
	jan := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

	seed(t, store, "u1", "Paguei 85 reais de pix no mercado", jan)
	seed(t, store, "u1", "Comprei um tênis de R$ 400 no cartão em 4x", jan)
	seed(t, store, "u1", "Gastei 20 reais no uber", jan.AddDate(0, -1, 0))
	seed(t, store, "u2", "Paguei 999 reais no aluguel", jan)
	_, err := store.Append(ctx, ledger.Record{
		Owner:       "u1",
		Type:        ledger.Income,
		Amount:      decimal.NewFromInt(3000),
		Category:    "salario",
		Description: "Salário",
		Date:        time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
		Source:      ledger.SourceManual,
	})
	require.NoError(t, err)

	m, err := NewService(store).Month(ctx, "u1", jan)
	require.NoError(t, err)

	assert.True(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Equal(m.Start))
	assert.True(t, decimal.NewFromInt(3000).Equal(m.Income))
	// 85 at once plus the January installment of the sneakers.
	assert.True(t, decimal.NewFromInt(185).Equal(m.Expenses), "expenses %s", m.Expenses)
	assert.True(t, decimal.NewFromInt(185).Equal(m.ChatExpenses))
	assert.Equal(t, 2, m.ChatCount)
	assert.True(t, decimal.NewFromInt(2815).Equal(m.Balance()))

	require.Len(t, m.ByCategory, 2)
	assert.Equal(t, "compras", m.ByCategory[0].Key)
	assert.Equal(t, "alimentacao", m.ByCategory[1].Key)
	require.Len(t, m.ByMethod, 2)
	assert.Equal(t, "credito", m.ByMethod[0].Key)
}

func TestOpenInstallments(t *testing.T) {
	ctx := context.Background()
	store := ledger.NewMemoryStore()
	jan := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

	seed(t, store, "u1", "Comprei um tênis de R$ 400 no cartão em 4x", jan)
	seed(t, store, "u1", "Comprei um fone de R$ 100 no cartão em 2x", jan.AddDate(0, -3, 0))
	seed(t, store, "u1", "Paguei 85 reais de pix no mercado", jan)

	plans, err := NewService(store).OpenInstallments(ctx, "u1", time.Date(2024, 2, 20, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, plans, 1, "the elapsed plan and the at-once purchase are left out")

	p := plans[0]
	assert.Equal(t, "Um tênis", p.Description)
	assert.Equal(t, 4, p.Count)
	assert.Equal(t, 2, p.Remaining)
	assert.True(t, decimal.NewFromInt(100).Equal(p.InstallmentAmount))
	assert.True(t, decimal.NewFromInt(400).Equal(p.TotalAmount))
	assert.NotEmpty(t, p.ParentID)
}

func TestOpenInstallments_None(t *testing.T) {
	plans, err := NewService(ledger.NewMemoryStore()).OpenInstallments(context.Background(), "u1", time.Now())
	require.NoError(t, err)
	assert.Empty(t, plans)
}

type failingQuery struct{}

func (failingQuery) List(context.Context, ledger.Filter) ([]ledger.Record, error) {
	return nil, errors.New("disk on fire")
}

func TestServiceWrapsQueryErrors(t *testing.T) {
	svc := NewService(failingQuery{})
	_, err := svc.Month(context.Background(), "u1", time.Now())
	assert.ErrorContains(t, err, "list month records")
	_, err = svc.OpenInstallments(context.Background(), "u1", time.Now())
	assert.ErrorContains(t, err, "list installment records")
}
