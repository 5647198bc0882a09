package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"

	"social-post-bot/pkg/apperr"
)

const defaultModel = "gemini-1.5-pro"

// Config keeps runtime settings for the bot.
type Config struct {
	TelegramToken string
	GeminiAPIKey  string
	GeminiModel   string
	DatabaseURL   string
	LogLevel      string
	Timezone      string
}

// Load reads configuration from environment variables. Both secrets are
// required; everything else has a sane default.
func Load() (Config, error) {
	v := viper.New()
	v.SetDefault("gemini_model", defaultModel)
	v.SetDefault("database_url", "social_post_bot.db")
	v.SetDefault("log_level", "info")
	v.SetDefault("timezone", "Local")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := Config{
		TelegramToken: strings.TrimSpace(v.GetString("telegram_token")),
		GeminiAPIKey:  strings.TrimSpace(v.GetString("gemini_api_key")),
		GeminiModel:   strings.TrimSpace(v.GetString("gemini_model")),
		DatabaseURL:   strings.TrimSpace(v.GetString("database_url")),
		LogLevel:      strings.TrimSpace(v.GetString("log_level")),
		Timezone:      strings.TrimSpace(v.GetString("timezone")),
	}

	if cfg.TelegramToken == "" {
		return cfg, apperr.Startup("TELEGRAM_TOKEN is required", nil)
	}
	if cfg.GeminiAPIKey == "" {
		return cfg, apperr.Startup("GEMINI_API_KEY is required", nil)
	}
	if cfg.GeminiModel == "" {
		cfg.GeminiModel = defaultModel
	}

	return cfg, nil
}

// Location resolves the configured time zone used for day boundaries.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" || strings.EqualFold(c.Timezone, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, apperr.Startup("invalid TIMEZONE "+c.Timezone, err)
	}
	return loc, nil
}
