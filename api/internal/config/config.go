// Package config loads all settings from the environment.
package config

import (
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	MoltbookAPIBase string `env:"MOLTBOOK_API_BASE"`
	MoltbookAPIKey  string `env:"MOLTBOOK_API_KEY,required"`
	AgentName       string `env:"AGENT_NAME" envDefault:"clawofaron"`

	// DATABASE_URL wins; otherwise a DSN is assembled from the POSTGRES_*
	// variables below.
	DatabaseURL      string `env:"DATABASE_URL"`
	PostgresUser     string `env:"POSTGRES_USER" envDefault:"moltmemory"`
	PostgresPassword string `env:"POSTGRES_PASSWORD"`
	PostgresHost     string `env:"PGHOST" envDefault:"db"`
	PostgresPort     string `env:"PGPORT" envDefault:"5432"`
	PostgresDB       string `env:"POSTGRES_DB" envDefault:"moltmemory"`

	// Reply composer: "gemini", "gpt" or empty to disable replying.
	ComposeEngine string `env:"COMPOSE_ENGINE"`
	GeminiAPIKey  string `env:"GEMINI_API_KEY"`
	GeminiModel   string `env:"GEMINI_MODEL" envDefault:"gemini-2.5-flash"`
	OpenAIAPIKey  string `env:"OPENAI_API_KEY"`
	OpenAIModel   string `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`

	// Operator notifications; empty token disables them.
	TelegramBotToken string `env:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID   int64  `env:"TELEGRAM_CHAT_ID"`

	WatchPosts   []string      `env:"CAMPAIGN_WATCH_POSTS" envSeparator:","`
	Submolts     []string      `env:"CAMPAIGN_SUBMOLTS" envSeparator:","`
	SpreadFile   string        `env:"CAMPAIGN_SPREAD_FILE"`
	PostCooldown time.Duration `env:"POST_COOLDOWN" envDefault:"35s"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &cfg, nil
}

// DSN returns DATABASE_URL when set, otherwise a postgres URL assembled from
// the POSTGRES_* settings.
func (c *Config) DSN() string {
	if v := strings.TrimSpace(c.DatabaseURL); v != "" {
		return v
	}
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.PostgresUser, c.PostgresPassword),
		Host:     net.JoinHostPort(c.PostgresHost, c.PostgresPort),
		Path:     "/" + c.PostgresDB,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}
