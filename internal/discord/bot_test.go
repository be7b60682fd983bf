package discord

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NgigiN/carteira/internal/chat"
	"github.com/NgigiN/carteira/internal/ledger"
)

type fixedClock time.Time

func (c fixedClock) Now() time.Time { return time.Time(c) }

func newTestBot(store ledger.Store) *Bot {
	clock := fixedClock(time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC))
	return &Bot{
		assistant: chat.NewAssistant(store, clock, zerolog.Nop()),
		startTime: time.Now(),
		log:       zerolog.Nop(),
	}
}

func TestRespond(t *testing.T) {
	ctx := context.Background()
	store := ledger.NewMemoryStore()
	b := newTestBot(store)

	assert.Empty(t, b.respond(ctx, "u1", "   "))
	assert.Contains(t, b.respond(ctx, "u1", "oi"), "Exemplos")
	assert.Contains(t, b.respond(ctx, "u1", "Comprei um tênis de R$ 400 no cartão em 4x"), "Gasto registrado")
	assert.Equal(t, 4, store.Len())

	assert.Contains(t, b.respond(ctx, "u1", "!parcelas"), "4 restantes")
	assert.Contains(t, b.respond(ctx, "u1", "!RESUMO"), "Janeiro de 2024")
	assert.Contains(t, b.respond(ctx, "u1", "!summary"), "Compras")
	assert.Contains(t, b.respond(ctx, "u1", "!ajuda"), "Exemplos")
	assert.Contains(t, b.respond(ctx, "u1", "!foo"), "Comando desconhecido")

	batch := b.respond(ctx, "u1", "Almoço 35\nUber 20 reais no pix")
	assert.Contains(t, batch, "**Registrados:** 2")
	assert.Equal(t, 6, store.Len())

	assert.Contains(t, b.respond(ctx, "u1", "comprei umas coisas"), "não consegui entender")
}

type downStore struct{ *ledger.MemoryStore }

func (downStore) List(context.Context, ledger.Filter) ([]ledger.Record, error) {
	return nil, assert.AnError
}

func TestRespond_StoreFailure(t *testing.T) {
	b := newTestBot(downStore{ledger.NewMemoryStore()})
	assert.Equal(t, failureText, b.respond(context.Background(), "u1", "!resumo"))
	assert.Equal(t, failureText, b.respond(context.Background(), "u1", "minhas parcelas"))
}

func TestSplitMessage(t *testing.T) {
	assert.Equal(t, []string{"curta"}, splitMessage("curta", 10))
	assert.Empty(t, splitMessage("", 10))

	parts := splitMessage("linha um\nlinha dois\nlinha três", 20)
	assert.Equal(t, []string{"linha um\nlinha dois", "linha três"}, parts)

	long := strings.Repeat("ção", 10)
	parts = splitMessage(long, 7)
	assert.Equal(t, long, strings.Join(parts, ""))
	for _, p := range parts {
		assert.LessOrEqual(t, len(p), 7)
		assert.True(t, utf8.ValidString(p), "part %q", p)
	}
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name      string
		session   *discordgo.Session
		code      int
		status    string
		connected bool
	}{
		{"no session", nil, http.StatusServiceUnavailable, "unhealthy", false},
		{"not ready", &discordgo.Session{}, http.StatusServiceUnavailable, "unhealthy", false},
		{"ready", &discordgo.Session{DataReady: true}, http.StatusOK, "healthy", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newTestBot(ledger.NewMemoryStore())
			b.session = tt.session

			rec := httptest.NewRecorder()
			b.healthMux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tt.code, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			var got healthStatus
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
			assert.Equal(t, tt.status, got.Status)
			assert.Equal(t, tt.connected, got.DiscordConnected)
			assert.NotEmpty(t, got.Timestamp)
		})
	}
}
