package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ReboundScout/internal/model"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, SourceMock, cfg.DataSource.Kind)
	assert.Equal(t, 200, cfg.DataSource.LookbackDays)
	assert.Equal(t, 4, cfg.Screener.Workers)
	assert.Equal(t, "0 30 22 * * 1-5", cfg.Schedule.ScreenCron)
	assert.Equal(t, "data/rebound_scout.db", cfg.Database.SQLitePath)
	assert.Len(t, cfg.Universe, len(DefaultUniverse))
	assert.True(t, cfg.Universe[0].Active)
	assert.False(t, DefaultUniverse[0].Active, "defaults are copied, not mutated")
	assert.False(t, cfg.TelegramEnabled())
	assert.NoError(t, cfg.Validate())
}

func TestLoad_FileAndEnvOverrides(t *testing.T) {
	path := writeFile(t, "config.yaml", `
data_source:
  kind: rest
  base_url: http://bars.local
  lookback_days: 120
screener:
  workers: 2
universe:
  - symbol: 2330.TW
    name: TSMC
    market: TW_SE
`)
	t.Setenv("SCREENER_WORKERS", "8")
	t.Setenv("SQLITE_PATH", "/tmp/x.db")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, SourceREST, cfg.DataSource.Kind)
	assert.Equal(t, "http://bars.local", cfg.DataSource.BaseURL)
	assert.Equal(t, 120, cfg.DataSource.LookbackDays)
	assert.Equal(t, 8, cfg.Screener.Workers)
	assert.Equal(t, "/tmp/x.db", cfg.Database.SQLitePath)
	require.Len(t, cfg.Universe, 1)
	assert.Equal(t, model.MarketTWSE, cfg.Universe[0].Market)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_EnvFile(t *testing.T) {
	envFile := writeFile(t, ".env.local", "TELEGRAM_BOT_TOKEN=abc\nTELEGRAM_CHAT_ID=99\n")
	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	t.Setenv("TELEGRAM_CHAT_ID", "")
	os.Unsetenv("TELEGRAM_BOT_TOKEN")
	os.Unsetenv("TELEGRAM_CHAT_ID")

	cfg, err := Load("", envFile, filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)
	assert.Equal(t, "abc", cfg.Telegram.BotToken)
	assert.Equal(t, "99", cfg.Telegram.ChatID)
	assert.True(t, cfg.TelegramEnabled())
}

func TestLoad_BadYAML(t *testing.T) {
	_, err := Load(writeFile(t, "config.yaml", "data_source: [unclosed"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"unknown source", func(c *Config) { c.DataSource.Kind = "ftp" }, "data_source.kind"},
		{"rest without url", func(c *Config) { c.DataSource.Kind = SourceREST }, "base_url"},
		{"short lookback", func(c *Config) { c.DataSource.LookbackDays = 10 }, "lookback_days"},
		{"no workers", func(c *Config) { c.Screener.Workers = -1 }, "workers"},
		{"half telegram", func(c *Config) { c.Telegram.BotToken = "x" }, "telegram"},
		{"bad cron", func(c *Config) { c.Schedule.ScreenCron = "every day" }, "screen_cron"},
		{"blank symbol", func(c *Config) { c.Universe = []model.Ticker{{Name: "?"}} }, "symbol"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load("")
			require.NoError(t, err)
			tt.mutate(cfg)
			err = cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}
