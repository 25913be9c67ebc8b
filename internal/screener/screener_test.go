package screener

import (
	"context"
	"errors"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ReboundScout/internal/collector"
	"ReboundScout/internal/model"
	"ReboundScout/internal/recorder"
)

var screenDay = time.Date(2025, 3, 14, 22, 30, 0, 0, time.UTC)

// mapFetcher serves canned series per symbol.
type mapFetcher struct {
	bars  map[string][]model.OHLCV
	errs  map[string]error
	calls atomic.Int32
}

func (m *mapFetcher) Name() string { return "map" }

func (m *mapFetcher) FetchDailyBars(ctx context.Context, symbol string, _ int) ([]model.OHLCV, error) {
	m.calls.Add(1)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := m.errs[symbol]; err != nil {
		return nil, err
	}
	return m.bars[symbol], nil
}

func patterned(t *testing.T, symbol string) []model.OHLCV {
	t.Helper()
	m := collector.NewMockFetcher(symbol)
	m.Now = func() time.Time { return screenDay }
	bars, err := m.FetchDailyBars(context.Background(), symbol, 0)
	require.NoError(t, err)
	return bars
}

func shortSeries(n int) []model.OHLCV {
	bars := make([]model.OHLCV, n)
	for i := range bars {
		p := 50 + float64(i)
		bars[i] = model.OHLCV{Time: screenDay.AddDate(0, 0, i-n), Open: p, High: p + 1, Low: p - 1, Close: p, Volume: 10}
	}
	return bars
}

func newTestScreener(t *testing.T, f collector.Fetcher, rec recorder.Recorder) *Screener {
	s := NewScreener(collector.NewCollector(f, 0), rec, 3)
	s.Now = func() time.Time { return screenDay }
	return s
}

func universe(symbols ...string) []model.Ticker {
	out := make([]model.Ticker, len(symbols))
	for i, s := range symbols {
		out[i] = model.Ticker{Symbol: s, Market: model.MarketUS, Active: true}
	}
	return out
}

func TestScreener_Run(t *testing.T) {
	f := &mapFetcher{
		bars: map[string][]model.OHLCV{
			"AAPL":    patterned(t, "AAPL"),
			"2330.TW": patterned(t, "2330.TW"),
			"TSLA":    shortSeries(10),
			"MSFT":    shortSeries(40),
		},
		errs: map[string]error{"DOWN": errors.New("upstream 503")},
	}
	rec, err := recorder.NewSQLiteRecorder(filepath.Join(t.TempDir(), "scout.db"))
	require.NoError(t, err)
	defer rec.Close()

	s := newTestScreener(t, f, rec)
	report, err := s.Run(context.Background(), universe("TSLA", "AAPL", "DOWN", "2330.TW", "MSFT"))
	require.NoError(t, err)

	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, "2025-03-14", report.Date)
	assert.Equal(t, "map", report.Source)
	require.Len(t, report.Outcomes, 5)

	var order []string
	for _, o := range report.Outcomes {
		order = append(order, o.Ticker.Symbol)
	}
	assert.Equal(t, []string{"2330.TW", "AAPL", "DOWN", "MSFT", "TSLA"}, order)

	matched := report.Matched()
	require.Len(t, matched, 2)
	assert.Equal(t, "2330.TW", matched[0].Ticker.Symbol)
	assert.Equal(t, []string{model.TagBrokenBottom}, matched[0].Analysis.StrategyTags)
	assert.Equal(t, 89.5, matched[0].Analysis.SupportPrice)
	assert.Equal(t, 91.0, matched[0].Analysis.ClosePrice)

	failed := report.Failed()
	require.Len(t, failed, 1)
	assert.Equal(t, "DOWN", failed[0].Ticker.Symbol)
	assert.Contains(t, failed[0].Error, "upstream 503")
	assert.Nil(t, failed[0].Analysis)

	tsla := report.Outcomes[4]
	assert.False(t, tsla.Result.Matched)
	assert.Contains(t, tsla.Result.Reasons[0], "Not enough data")
	assert.Empty(t, tsla.Analysis.StrategyTags)
	assert.InDelta(t, (59.0-58.0)/58.0*100, tsla.Analysis.ChangePercent, 1e-9)

	rows, err := rec.MatchesOn("2025-03-14")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "2330.TW", rows[0].Ticker)
	assert.Equal(t, "AAPL", rows[1].Ticker)
}

func TestScreener_RunCancelled(t *testing.T) {
	f := &mapFetcher{bars: map[string][]model.OHLCV{"AAPL": patterned(t, "AAPL")}}
	s := newTestScreener(t, f, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := s.Run(ctx, universe("AAPL", "NVDA"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestScreener_EmptyUniverse(t *testing.T) {
	s := newTestScreener(t, &mapFetcher{}, nil)
	report, err := s.Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, report.Outcomes)
	assert.Empty(t, report.Matched())
}

func TestScreener_Universe(t *testing.T) {
	fallback := universe("AAPL", "NVDA")

	s := newTestScreener(t, &mapFetcher{}, nil)
	got, err := s.Universe(fallback)
	require.NoError(t, err)
	assert.Equal(t, fallback, got)

	rec, err := recorder.NewSQLiteRecorder(filepath.Join(t.TempDir(), "scout.db"))
	require.NoError(t, err)
	defer rec.Close()
	require.NoError(t, rec.UpsertTickers(universe("BTCUSDT")))

	s = newTestScreener(t, &mapFetcher{}, rec)
	got, err = s.Universe(fallback)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "BTCUSDT", got[0].Symbol)
}

func TestScreener_Screen(t *testing.T) {
	f := &mapFetcher{bars: map[string][]model.OHLCV{"AAPL": patterned(t, "AAPL")}}
	s := newTestScreener(t, f, nil)

	res, bars, err := s.Screen(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.True(t, res.Matched)
	assert.Len(t, bars, 80)
	assert.Equal(t, int32(1), f.calls.Load())
}
