package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

const (
	KeyDiscordBotToken  = "discord_bot_token"
	KeyDiscordChannelID = "discord_channel_id"
	KeyDBPath           = "db_path"
	KeyHealthAddr       = "health_addr"
	KeyLogLevel         = "log_level"
	KeyTimezone         = "timezone"
)

var ErrInvalid = errors.New("invalid configuration")

type Config struct {
	// Discord
	DiscordBotToken  string
	DiscordChannelID string

	// Storage
	DBPath string

	// Health server
	HealthAddr string

	LogLevel string
	Timezone string
	Location *time.Location
}

// SetDefaults registers defaults and environment lookup on v. Keys map to
// upper-case environment variables (db_path reads DB_PATH).
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyDBPath, "transaction.db")
	v.SetDefault(KeyHealthAddr, ":8080")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyTimezone, "America/Sao_Paulo")
	v.AutomaticEnv()
}

// Load reads the configuration from v and validates the settings every
// command needs. Discord settings are checked by ValidateDiscord.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		DiscordBotToken:  strings.TrimSpace(v.GetString(KeyDiscordBotToken)),
		DiscordChannelID: strings.TrimSpace(v.GetString(KeyDiscordChannelID)),
		DBPath:           v.GetString(KeyDBPath),
		HealthAddr:       v.GetString(KeyHealthAddr),
		LogLevel:         v.GetString(KeyLogLevel),
		Timezone:         v.GetString(KeyTimezone),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the shared settings and resolves Location. Every problem
// is reported at once.
func (c *Config) Validate() error {
	var problems []string

	if c.DBPath == "" {
		problems = append(problems, "database path cannot be empty")
	}
	if c.HealthAddr != "" && !strings.Contains(c.HealthAddr, ":") {
		problems = append(problems, fmt.Sprintf("invalid health address '%s': expected host:port", c.HealthAddr))
	}
	if lvl, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel)); err != nil || lvl == zerolog.NoLevel {
		problems = append(problems, fmt.Sprintf("invalid log level '%s'", c.LogLevel))
	}
	if loc, err := time.LoadLocation(c.Timezone); err != nil {
		problems = append(problems, fmt.Sprintf("invalid timezone '%s': %v", c.Timezone, err))
	} else {
		c.Location = loc
	}

	return joinProblems(problems)
}

// ValidateDiscord checks the settings the bot needs to connect.
func (c *Config) ValidateDiscord() error {
	var problems []string
	if c.DiscordBotToken == "" {
		problems = append(problems, "bot token is not set (DISCORD_BOT_TOKEN)")
	}
	if c.DiscordChannelID == "" {
		problems = append(problems, "channel ID is not set (DISCORD_CHANNEL_ID)")
	}
	return joinProblems(problems)
}

func joinProblems(problems []string) error {
	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("%w:\n- %s", ErrInvalid, strings.Join(problems, "\n- "))
}
