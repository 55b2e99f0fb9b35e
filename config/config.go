package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	TelegramToken    string `yaml:"telegram_token"`
	BotUsername      string `yaml:"bot_username"`
	LogPath          string `yaml:"log_path"`
	PollTimeoutSec   int    `yaml:"poll_timeout_secs"`
	FetchTimeoutSec  int    `yaml:"fetch_timeout_secs"`
	MaxPageBytes     int64  `yaml:"max_page_bytes"`
	MaxDocumentBytes int64  `yaml:"max_document_bytes"`
	UserAgent        string `yaml:"user_agent"`
	LogLevel         string `yaml:"log_level"`
	Debug            bool   `yaml:"debug"`
}

func Defaults() Config {
	return Config{
		LogPath:          "./message_logs.csv",
		PollTimeoutSec:   60,
		FetchTimeoutSec:  0,
		MaxPageBytes:     10 << 20,
		MaxDocumentBytes: 20 << 20,
		UserAgent:        "Mozilla/5.0 (compatible; WebioBot/1.0)",
		LogLevel:         "info",
	}
}

func Load() (Config, error) {
	// A missing .env is fine.
	_ = godotenv.Load()
	return LoadFromEnv(os.Getenv)
}

func LoadFromEnv(getenv func(string) string) (Config, error) {
	path := getenv("WEBIO_BOT_CONFIG")
	if path == "" {
		path = "./config.yaml"
	}

	cfg, err := LoadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		cfg, err = Defaults(), nil
	}
	if err != nil {
		return Config{}, err
	}

	if v := getenv("WEBIO_BOT_TOKEN"); v != "" {
		cfg.TelegramToken = v
	}
	if v := getenv("WEBIO_BOT_USERNAME"); v != "" {
		cfg.BotUsername = v
	}
	if v := getenv("WEBIO_BOT_LOG"); v != "" {
		cfg.LogPath = v
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func LoadFile(path string) (Config, error) {
	cfg := Defaults()

	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config yaml: %w", err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.TelegramToken == "" {
		errs = append(errs, errors.New("telegram_token is required"))
	}
	if strings.ContainsAny(c.BotUsername, " \t\n") {
		errs = append(errs, errors.New("bot_username must not contain whitespace"))
	}
	if c.LogPath == "" {
		errs = append(errs, errors.New("log_path is required"))
	}
	if c.PollTimeoutSec <= 0 {
		errs = append(errs, errors.New("poll_timeout_secs must be > 0"))
	}
	if c.FetchTimeoutSec < 0 {
		errs = append(errs, errors.New("fetch_timeout_secs must be >= 0"))
	}
	if c.MaxPageBytes <= 0 {
		errs = append(errs, errors.New("max_page_bytes must be > 0"))
	}
	if c.MaxDocumentBytes <= 0 {
		errs = append(errs, errors.New("max_document_bytes must be > 0"))
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// MentionTag is the literal tag that activates the bot in group chats. When
// bot_username is unset the bot's own username is used.
func (c Config) MentionTag(self string) string {
	name := c.BotUsername
	if name == "" {
		name = self
	}
	if name == "" {
		return ""
	}
	if !strings.HasPrefix(name, "@") {
		name = "@" + name
	}
	return name
}

func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown level %q", s)
}
