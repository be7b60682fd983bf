package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/NgigiN/carteira/internal/chat"
	"github.com/NgigiN/carteira/internal/config"
	"github.com/NgigiN/carteira/internal/discord"
	"github.com/NgigiN/carteira/internal/storage"
)

func (a *app) botCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bot",
		Short: "Run the Discord bot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runBot(cmd.Context())
		},
	}
	cmd.Flags().String("health-addr", "", "health endpoint address, empty to disable (env HEALTH_ADDR)")
	_ = a.v.BindPFlag(config.KeyHealthAddr, cmd.Flags().Lookup("health-addr"))
	return cmd
}

func (a *app) runBot(ctx context.Context) error {
	if err := a.cfg.ValidateDiscord(); err != nil {
		return err
	}

	db, err := storage.NewDatabase(a.cfg.DBPath, a.log)
	if err != nil {
		return fmt.Errorf("failed to initialize the database: %w", err)
	}
	defer db.Close()

	assistant := chat.NewAssistant(db, chat.SystemClock{Location: a.cfg.Location}, a.log)
	bot, err := discord.NewBot(a.cfg, assistant, a.log)
	if err != nil {
		return fmt.Errorf("failed to initialize the discord bot: %w", err)
	}
	if err := bot.Start(); err != nil {
		return fmt.Errorf("failed to start bot: %w", err)
	}

	a.log.Info().Str("db", a.cfg.DBPath).Str("health", a.cfg.HealthAddr).Msg("bot is running")
	<-ctx.Done()

	shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	bot.Stop(shutdown)
	a.log.Info().Msg("bot stopped")
	return nil
}
