package recorder

import (
	"time"

	"ReboundScout/internal/model"
)

// RunRecord summarises one batch screen.
type RunRecord struct {
	ID         string
	StartedAt  time.Time
	FinishedAt time.Time
	Source     string // data source name, e.g. "yahoo"
	Total      int
	Matched    int
	Failed     int
}

// Recorder persists the ticker universe and screen results.
type Recorder interface {
	UpsertTickers(tickers []model.Ticker) error
	ActiveTickers() ([]model.Ticker, error)
	// RecordAnalysis upserts the row keyed by (ticker, date). A row recorded with no
	// tags clears any tags an earlier run that day wrote.
	RecordAnalysis(a *model.DailyAnalysis) error
	RecordRun(run *RunRecord) error
	// MatchesOn returns the rows for date carrying at least one strategy tag.
	MatchesOn(date string) ([]model.DailyAnalysis, error)
	Close() error
}
