// Package config reads the bot's settings from the environment, after
// loading a .env file if one is present.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/hammamikhairi/mealbot/internal/logger"
)

// Model providers.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderNone   = "none"
)

// Config holds every setting. Zero values mean "not configured".
type Config struct {
	TelegramToken string
	WebhookURL    string
	Port          int

	ModelProvider string
	GeminiKey     string
	GeminiModel   string
	GPTEndpoint   string
	GPTKey        string
	GPTModel      string
	RecipeTimeout time.Duration
	YouTubeKey    string
	RedisURL      string
	SessionDB     string
	SessionTTL    time.Duration
	LogLevel      logger.Level
	LogLevelRaw   string
}

// Load reads .env (if present) and the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from getenv. Malformed values are collected and
// returned together.
func FromEnv(getenv func(string) string) (Config, error) {
	get := func(k string) string { return strings.TrimSpace(getenv(k)) }

	c := Config{
		TelegramToken: get("TELEGRAM_BOT_TOKEN"),
		WebhookURL:    strings.TrimRight(get("WEBHOOK_URL"), "/"),
		GeminiKey:     get("GEMINI_API_KEY"),
		GeminiModel:   get("GEMINI_MODEL"),
		GPTEndpoint:   get("GPT_CHAT_ENDPOINT"),
		GPTKey:        get("GPT_CHAT_KEY"),
		GPTModel:      get("GPT_MODEL"),
		YouTubeKey:    get("YOUTUBE_API_KEY"),
		RedisURL:      get("REDIS_URL"),
		SessionDB:     get("SESSION_DB"),
		LogLevelRaw:   get("LOG_LEVEL"),
	}

	var errs []error

	c.Port = 3000
	if v := get("PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil || p <= 0 || p > 65535 {
			errs = append(errs, fmt.Errorf("PORT: invalid value %q", v))
		} else {
			c.Port = p
		}
	}

	c.SessionTTL = duration(get("SESSION_TTL"), time.Hour, "SESSION_TTL", &errs)
	c.RecipeTimeout = duration(get("RECIPE_TIMEOUT"), 45*time.Second, "RECIPE_TIMEOUT", &errs)

	level, ok := logger.ParseLevel(c.LogLevelRaw)
	if !ok {
		errs = append(errs, fmt.Errorf("LOG_LEVEL: unknown level %q", c.LogLevelRaw))
	}
	c.LogLevel = level

	c.ModelProvider = strings.ToLower(get("MODEL_PROVIDER"))
	switch c.ModelProvider {
	case "":
		c.ModelProvider = c.defaultProvider()
	case ProviderGemini, ProviderOpenAI, ProviderNone:
	default:
		errs = append(errs, fmt.Errorf("MODEL_PROVIDER: unknown provider %q", c.ModelProvider))
		c.ModelProvider = c.defaultProvider()
	}

	if err := errors.Join(errs...); err != nil {
		return c, fmt.Errorf("config: %w", err)
	}
	return c, nil
}

func (c Config) defaultProvider() string {
	switch {
	case c.GeminiKey != "":
		return ProviderGemini
	case c.GPTKey != "" && c.GPTEndpoint != "":
		return ProviderOpenAI
	default:
		return ProviderNone
	}
}

func duration(v string, def time.Duration, name string, errs *[]error) time.Duration {
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		*errs = append(*errs, fmt.Errorf("%s: invalid duration %q", name, v))
		return def
	}
	return d
}

// Webhook reports whether updates should arrive by webhook instead of
// long polling.
func (c Config) Webhook() bool { return c.WebhookURL != "" }

// Validate checks the settings the Telegram transport cannot run without.
func (c Config) Validate() error {
	if c.TelegramToken == "" {
		return errors.New("config: TELEGRAM_BOT_TOKEN is required")
	}
	return nil
}
