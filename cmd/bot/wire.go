package main

import (
	"os"
	"path/filepath"

	"ReboundScout/internal/collector"
	"ReboundScout/internal/config"
	"ReboundScout/internal/notifier"
	"ReboundScout/internal/recorder"
	"ReboundScout/internal/screener"
)

func newFetcher(c *config.Config) collector.Fetcher {
	switch c.DataSource.Kind {
	case config.SourceYahoo:
		return collector.NewYahooFetcher(c.Proxy)
	case config.SourceREST:
		return collector.NewRESTFetcher(c.DataSource.BaseURL, c.DataSource.APIKey, c.Proxy)
	default:
		return collector.NewMockFetcher()
	}
}

// openRecorder falls back to the no-op recorder when SQLite cannot be opened.
func openRecorder(c *config.Config) recorder.Recorder {
	if c.Database.SQLitePath == "" {
		return recorder.NewNoopRecorder()
	}
	if dir := filepath.Dir(c.Database.SQLitePath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.WithError(err).Warn("create database directory")
		}
	}
	rec, err := recorder.NewSQLiteRecorder(c.Database.SQLitePath)
	if err != nil {
		log.WithError(err).Warn("init sqlite recorder failed, using noop")
		return recorder.NewNoopRecorder()
	}
	return rec
}

func newScreener(c *config.Config, rec recorder.Recorder) *screener.Screener {
	fetcher := newFetcher(c)
	log.Infof("data source: %s", fetcher.Name())
	return screener.NewScreener(collector.NewCollector(fetcher, c.DataSource.LookbackDays), rec, c.Screener.Workers)
}

func newNotifier(c *config.Config) *notifier.TelegramNotifier {
	if !c.TelegramEnabled() {
		return nil
	}
	return notifier.NewTelegramNotifier(c.Telegram.BotToken, c.Telegram.ChatID, c.Proxy)
}
