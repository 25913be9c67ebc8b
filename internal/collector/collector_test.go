package collector

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ReboundScout/internal/model"
	"ReboundScout/internal/strategy"
)

var fixedNow = func() time.Time { return time.Date(2025, 3, 14, 15, 0, 0, 0, time.UTC) }

type stubFetcher struct {
	bars []model.OHLCV
	err  error
}

func (s *stubFetcher) Name() string { return "stub" }

func (s *stubFetcher) FetchDailyBars(_ context.Context, _ string, _ int) ([]model.OHLCV, error) {
	return s.bars, s.err
}

func TestMockFetcher_PatternedSymbolsMatch(t *testing.T) {
	m := NewMockFetcher()
	m.Now = fixedNow

	for _, sym := range DefaultPatterned {
		bars, err := m.FetchDailyBars(context.Background(), sym, DefaultLookback)
		require.NoError(t, err)
		require.Len(t, bars, 80)

		res := strategy.Analyze(sym, bars)
		assert.True(t, res.Matched, "%s: %v", sym, res.Reasons)
		require.NotNil(t, res.Debug)
		assert.Equal(t, 89.5, res.Debug.Support)
		assert.Equal(t, 84.5, res.Debug.FakeBreakout)
		assert.Equal(t, 100.5, res.Debug.Rebound)
		assert.Equal(t, 91.0, res.Debug.CurrentPrice)
	}
}

func TestMockFetcher_Deterministic(t *testing.T) {
	m := NewMockFetcher()
	m.Now = fixedNow

	a, err := m.FetchDailyBars(context.Background(), "NVDA", DefaultLookback)
	require.NoError(t, err)
	b, err := m.FetchDailyBars(context.Background(), "NVDA", DefaultLookback)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Len(t, a, 100)

	other, err := m.FetchDailyBars(context.Background(), "TSLA", DefaultLookback)
	require.NoError(t, err)
	assert.NotEqual(t, a[len(a)-1].Close, other[len(other)-1].Close)

	for i := 1; i < len(a); i++ {
		assert.True(t, a[i-1].Time.Before(a[i].Time))
	}
}

func TestMockFetcher_TrimsAndHonoursContext(t *testing.T) {
	m := NewMockFetcher("XYZ")
	m.Now = fixedNow

	bars, err := m.FetchDailyBars(context.Background(), "XYZ", 30)
	require.NoError(t, err)
	assert.Len(t, bars, 30)
	assert.Equal(t, 91.0, bars[len(bars)-1].Close)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = m.FetchDailyBars(ctx, "XYZ", 30)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCollector_Collect(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2025, 1, d, 0, 0, 0, 0, time.UTC) }
	stub := &stubFetcher{bars: []model.OHLCV{
		{Time: day(3), High: 11, Low: 9, Close: 10},
		{Time: day(1), High: 11, Low: 9, Close: 10},
		{Time: day(2), High: 0, Low: 0, Close: 0},
		{Time: day(4), High: 9, Low: 11, Close: 10},
		{Time: day(2), High: 12, Low: 10, Close: 11},
	}}
	c := NewCollector(stub, 0)
	assert.Equal(t, DefaultLookback, c.Lookback)

	bars, err := c.Collect(context.Background(), "ABC")
	require.NoError(t, err)
	require.Len(t, bars, 3)
	assert.Equal(t, day(1), bars[0].Time)
	assert.Equal(t, day(2), bars[1].Time)
	assert.Equal(t, day(3), bars[2].Time)
}

func TestCollector_WrapsFetchError(t *testing.T) {
	boom := errors.New("boom")
	c := NewCollector(&stubFetcher{err: boom}, 10)

	_, err := c.Collect(context.Background(), "ABC")
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "ABC")
}
