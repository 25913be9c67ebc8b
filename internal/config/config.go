package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"

	"ReboundScout/internal/model"
)

// Data source kinds.
const (
	SourceMock  = "mock"
	SourceYahoo = "yahoo"
	SourceREST  = "rest"
)

// DefaultEnvFiles are loaded, when present, before environment overrides apply.
// Variables already set in the process environment win.
var DefaultEnvFiles = []string{".env.local", ".env"}

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	DataSource struct {
		Kind         string `yaml:"kind"`
		BaseURL      string `yaml:"base_url"`
		APIKey       string `yaml:"api_key"`
		LookbackDays int    `yaml:"lookback_days"`
	} `yaml:"data_source"`
	Screener struct {
		Workers int `yaml:"workers"`
	} `yaml:"screener"`
	Schedule struct {
		ScreenCron string `yaml:"screen_cron"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"` // "text" or "json"
	} `yaml:"log"`
	Universe []model.Ticker `yaml:"universe"`
	Proxy    string         `yaml:"proxy"`
}

// DefaultUniverse is screened when neither the config file nor the store lists tickers.
var DefaultUniverse = []model.Ticker{
	{Symbol: "AAPL", Name: "Apple Inc.", Market: model.MarketUS},
	{Symbol: "NVDA", Name: "NVIDIA Corp.", Market: model.MarketUS},
	{Symbol: "TSLA", Name: "Tesla Inc.", Market: model.MarketUS},
	{Symbol: "MSFT", Name: "Microsoft Corp.", Market: model.MarketUS},
	{Symbol: "2330.TW", Name: "TSMC", Market: model.MarketTWSE},
	{Symbol: "2317.TW", Name: "Hon Hai", Market: model.MarketTWSE},
	{Symbol: "BTCUSDT", Name: "Bitcoin", Market: model.MarketCrypto},
	{Symbol: "ETHUSDT", Name: "Ethereum", Market: model.MarketCrypto},
}

// Load reads config from a YAML file, then .env files, then applies environment
// variable overrides and defaults. A missing file is not an error.
func Load(path string, envFiles ...string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("DATA_SOURCE"); v != "" {
		cfg.DataSource.Kind = v
	}
	if v := os.Getenv("DATA_BASE_URL"); v != "" {
		cfg.DataSource.BaseURL = v
	}
	if v := os.Getenv("DATA_API_KEY"); v != "" {
		cfg.DataSource.APIKey = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("SCREEN_CRON"); v != "" {
		cfg.Schedule.ScreenCron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("SCREENER_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Screener.Workers = n
		}
	}

	// Defaults
	if cfg.DataSource.Kind == "" {
		cfg.DataSource.Kind = SourceMock
	}
	if cfg.DataSource.LookbackDays == 0 {
		cfg.DataSource.LookbackDays = 200
	}
	if cfg.Screener.Workers == 0 {
		cfg.Screener.Workers = 4
	}
	if cfg.Schedule.ScreenCron == "" {
		cfg.Schedule.ScreenCron = "0 30 22 * * 1-5"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/rebound_scout.db"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
	if len(cfg.Universe) == 0 {
		cfg.Universe = append([]model.Ticker(nil), DefaultUniverse...)
	}
	for i := range cfg.Universe {
		cfg.Universe[i].Active = true
	}

	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	switch c.DataSource.Kind {
	case SourceMock, SourceYahoo:
	case SourceREST:
		if c.DataSource.BaseURL == "" {
			return fmt.Errorf("data_source.base_url is required for the rest source")
		}
	default:
		return fmt.Errorf("data_source.kind %q is not one of mock, yahoo, rest", c.DataSource.Kind)
	}
	if c.DataSource.LookbackDays < 20 {
		return fmt.Errorf("data_source.lookback_days must be at least 20")
	}
	if c.Screener.Workers <= 0 {
		return fmt.Errorf("screener.workers must be positive")
	}
	if (c.Telegram.BotToken == "") != (c.Telegram.ChatID == "") {
		return fmt.Errorf("telegram.bot_token and telegram.chat_id must be set together")
	}
	if _, err := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow).
		Parse(c.Schedule.ScreenCron); err != nil {
		return fmt.Errorf("schedule.screen_cron: %w", err)
	}
	for _, t := range c.Universe {
		if t.Symbol == "" {
			return fmt.Errorf("universe entries need a symbol")
		}
	}
	return nil
}

// TelegramEnabled reports whether Telegram credentials are configured.
func (c *Config) TelegramEnabled() bool {
	return c.Telegram.BotToken != "" && c.Telegram.ChatID != ""
}
