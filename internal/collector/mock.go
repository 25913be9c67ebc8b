package collector

import (
	"context"
	"time"

	"ReboundScout/internal/model"
)

// DefaultPatterned lists the symbols the mock source draws a 2B setup for.
var DefaultPatterned = []string{"2330.TW", "AAPL", "2317.TW"}

// MockFetcher returns deterministic per-symbol bars for development and testing.
// Symbols in Patterned get a constructed 2B shape; the rest get a random walk seeded
// from the symbol, so repeated runs see the same series.
type MockFetcher struct {
	Patterned map[string]bool
	Now       func() time.Time
}

// NewMockFetcher creates a mock source that patterns the given symbols.
func NewMockFetcher(patterned ...string) *MockFetcher {
	if len(patterned) == 0 {
		patterned = DefaultPatterned
	}
	m := &MockFetcher{Patterned: make(map[string]bool, len(patterned)), Now: time.Now}
	for _, s := range patterned {
		m.Patterned[s] = true
	}
	return m
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyBars(ctx context.Context, symbol string, days int) ([]model.OHLCV, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	now := time.Now
	if m.Now != nil {
		now = m.Now
	}
	y, mo, d := now().Date()
	start := time.Date(y, mo, d, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -200)

	var bars []model.OHLCV
	if m.Patterned[symbol] {
		bars = patternedBars(symbol, start)
	} else {
		bars = randomWalkBars(symbol, start)
	}
	if days > 0 && len(bars) > days {
		bars = bars[len(bars)-days:]
	}
	return bars, nil
}

// lcg is the small linear congruential generator behind the mock series.
type lcg struct{ seed uint32 }

func newLCG(symbol string) *lcg {
	var h uint32
	for _, r := range symbol {
		h = h*31 + uint32(r)
	}
	return &lcg{seed: h % 233280}
}

func (g *lcg) next() float64 {
	g.seed = (g.seed*9301 + 49297) % 233280
	return float64(g.seed) / 233280
}

// patternedBars emits 50 noise bars and then P0 110 -> P1 90 -> P2 105 -> P3 85 ->
// P4 100 -> a close of 91, back inside the retest band of P1.
func patternedBars(symbol string, start time.Time) []model.OHLCV {
	rnd := newLCG(symbol)
	bars := make([]model.OHLCV, 0, 80)
	day := start

	price := 100.0
	for i := 0; i < 50; i++ {
		price += rnd.next() - 0.5
		day = day.AddDate(0, 0, 1)
		bars = append(bars, model.OHLCV{
			Time: day, Open: price, High: price + 1, Low: price - 1, Close: price,
			Volume: 500 + rnd.next()*500,
		})
	}

	points := []float64{110, 90, 105, 85, 100, 91}
	const steps = 5
	for i := 0; i < len(points)-1; i++ {
		from, to := points[i], points[i+1]
		for j := 0; j <= steps; j++ {
			p := from + (to-from)*float64(j)/steps
			day = day.AddDate(0, 0, 1)
			bars = append(bars, model.OHLCV{
				Time: day, Open: p, High: p + 0.5, Low: p - 0.5, Close: p, Volume: 1000,
			})
		}
	}
	return bars
}

func randomWalkBars(symbol string, start time.Time) []model.OHLCV {
	rnd := newLCG(symbol)
	bars := make([]model.OHLCV, 0, 100)
	day := start

	price := 100.0
	for i := 0; i < 100; i++ {
		price += (rnd.next() - 0.5) * 5
		day = day.AddDate(0, 0, 1)
		bars = append(bars, model.OHLCV{
			Time: day, Open: price, High: price + 1, Low: price - 1, Close: price, Volume: 500,
		})
	}
	return bars
}
