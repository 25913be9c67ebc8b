package collector

import (
	"context"
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"

	"ReboundScout/internal/model"
)

var log = logrus.WithField("component", "collector")

// DefaultLookback is how many daily bars a screen pulls per symbol.
const DefaultLookback = 200

// Collector fetches and cleans daily series for the screener.
type Collector struct {
	Fetcher  Fetcher
	Lookback int
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, lookback int) *Collector {
	if lookback <= 0 {
		lookback = DefaultLookback
	}
	return &Collector{Fetcher: fetcher, Lookback: lookback}
}

// Collect fetches the daily series for symbol, oldest first, without unusable bars.
func (c *Collector) Collect(ctx context.Context, symbol string) ([]model.OHLCV, error) {
	bars, err := c.Fetcher.FetchDailyBars(ctx, symbol, c.Lookback)
	if err != nil {
		return nil, fmt.Errorf("fetch daily bars for %s: %w", symbol, err)
	}

	clean := bars[:0:0]
	for _, b := range bars {
		if b.High <= 0 || b.Low <= 0 || b.Close <= 0 || b.High < b.Low {
			continue
		}
		clean = append(clean, b)
	}
	if dropped := len(bars) - len(clean); dropped > 0 {
		log.WithField("symbol", symbol).Warnf("dropped %d malformed bars", dropped)
	}
	if !sort.SliceIsSorted(clean, func(i, j int) bool { return clean[i].Time.Before(clean[j].Time) }) {
		sort.SliceStable(clean, func(i, j int) bool { return clean[i].Time.Before(clean[j].Time) })
	}
	return clean, nil
}
