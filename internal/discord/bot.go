package discord

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"

	"github.com/NgigiN/carteira/internal/chat"
	"github.com/NgigiN/carteira/internal/config"
	"github.com/NgigiN/carteira/internal/logger"
	"github.com/NgigiN/carteira/internal/reply"
)

// Discord rejects messages longer than this.
const maxMessageLen = 2000

const failureText = "⚠️ Não consegui acessar seus registros agora. Tente novamente em instantes."

type Bot struct {
	session    *discordgo.Session
	assistant  *chat.Assistant
	channelID  string
	startTime  time.Time
	healthAddr string
	health     *http.Server
	log        zerolog.Logger
}

func NewBot(cfg *config.Config, assistant *chat.Assistant, log zerolog.Logger) (*Bot, error) {
	session, err := discordgo.New("Bot " + cfg.DiscordBotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	bot := &Bot{
		session:    session,
		assistant:  assistant,
		channelID:  cfg.DiscordChannelID,
		startTime:  time.Now(),
		healthAddr: cfg.HealthAddr,
		log:        logger.Component(log, "discord"),
	}

	session.AddHandler(bot.handleMessage)
	session.Identify.Intents = discordgo.IntentGuildMessages | discordgo.IntentMessageContent

	return bot, nil
}

func (b *Bot) Start() error {
	if b.healthAddr != "" {
		b.health = &http.Server{
			Addr:              b.healthAddr,
			Handler:           b.healthMux(),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			if err := b.health.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				b.log.Error().Err(err).Str("addr", b.healthAddr).Msg("health server stopped")
			}
		}()
	}

	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}
	b.log.Info().Str("channel", b.channelID).Msg("connected to Discord")
	return nil
}

func (b *Bot) Stop(ctx context.Context) {
	if b.health != nil {
		if err := b.health.Shutdown(ctx); err != nil {
			b.log.Warn().Err(err).Msg("health server shutdown")
		}
	}
	if err := b.session.Close(); err != nil {
		b.log.Warn().Err(err).Msg("discord session close")
	}
}

func (b *Bot) handleMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot || (s.State.User != nil && m.Author.ID == s.State.User.ID) {
		return // bot's messages
	}
	if m.ChannelID != b.channelID {
		return // specific to the channel
	}

	log := b.log.With().Str("message_id", m.ID).Str("author", m.Author.ID).Logger()
	ctx := logger.WithContext(context.Background(), log)

	text := b.respond(ctx, m.Author.ID, m.Content)
	if text == "" {
		return
	}
	for _, part := range splitMessage(text, maxMessageLen) {
		if _, err := s.ChannelMessageSend(m.ChannelID, part); err != nil {
			log.Error().Err(err).Msg("failed to send reply")
			return
		}
	}
}

// respond computes the reply for one message from owner. An empty result
// means nothing should be sent.
func (b *Bot) respond(ctx context.Context, owner, content string) string {
	log := logger.FromContext(ctx)
	content = strings.TrimSpace(content)
	if content == "" {
		return ""
	}

	if strings.HasPrefix(content, "!") {
		text, err := b.handleCommand(ctx, owner, content)
		if err != nil {
			log.Error().Err(err).Str("command", content).Msg("command failed")
			return failureText
		}
		return text
	}

	if chat.IsBatch(content) {
		text, err := b.assistant.HandleBatch(ctx, owner, content)
		if err != nil {
			log.Error().Err(err).Msg("batch failed")
			return failureText
		}
		return text
	}

	resp, err := b.assistant.Handle(ctx, owner, content)
	if err != nil {
		log.Error().Err(err).Stringer("intent", resp.Intent.Kind).Msg("message failed")
		return failureText
	}
	return resp.Text
}

func (b *Bot) handleCommand(ctx context.Context, owner, content string) (string, error) {
	args := strings.Fields(strings.ToLower(content))
	switch args[0] {
	case "!resumo", "!summary":
		return b.assistant.Summary(ctx, owner)
	case "!parcelas", "!installments":
		return b.assistant.Installments(ctx, owner)
	case "!ajuda", "!help":
		return reply.Help(), nil
	default:
		return fmt.Sprintf("Comando desconhecido: %s\nUse: !resumo, !parcelas, !ajuda", args[0]), nil
	}
}

// splitMessage cuts text into chunks of at most limit bytes, preferring
// line breaks and never splitting a rune.
func splitMessage(text string, limit int) []string {
	var parts []string
	for len(text) > limit {
		cut := strings.LastIndex(text[:limit], "\n")
		if cut <= 0 {
			cut = limit
			for cut > 0 && !isRuneStart(text[cut]) {
				cut--
			}
		}
		parts = append(parts, text[:cut])
		text = strings.TrimLeft(text[cut:], "\n")
	}
	if text != "" {
		parts = append(parts, text)
	}
	return parts
}

func isRuneStart(b byte) bool { return b&0xC0 != 0x80 }
