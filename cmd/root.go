package main

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/NgigiN/carteira/internal/config"
	"github.com/NgigiN/carteira/internal/logger"
)

// app carries what every subcommand needs once flags and environment
// have been resolved.
type app struct {
	v   *viper.Viper
	cfg *config.Config
	log zerolog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}
	config.SetDefaults(a.v)

	root := &cobra.Command{
		Use:   "carteira",
		Short: "Registro de gastos por conversa",
		Long: `carteira reads pt-BR chat messages such as
"Comprei um tênis de R$ 400 no cartão em 4x", records the expense
(split into monthly installments when needed) and answers summaries.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(a.v)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.log = logger.New(cfg.LogLevel)
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.String("db", "", "SQLite database path (env DB_PATH)")
	flags.String("log-level", "", "log level: debug, info, warn, error (env LOG_LEVEL)")
	flags.String("timezone", "", "IANA time zone for record dates (env TIMEZONE)")
	_ = a.v.BindPFlag(config.KeyDBPath, flags.Lookup("db"))
	_ = a.v.BindPFlag(config.KeyLogLevel, flags.Lookup("log-level"))
	_ = a.v.BindPFlag(config.KeyTimezone, flags.Lookup("timezone"))

	root.AddCommand(a.botCmd())
	root.AddCommand(a.parseCmd())
	root.AddCommand(a.summaryCmd())
	return root
}
