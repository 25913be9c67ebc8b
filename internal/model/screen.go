package model

import "time"

// TagBrokenBottom marks a ticker whose daily series matched the 2B pattern.
const TagBrokenBottom = "BROKEN_BOTTOM"

// DebugInfo carries the evidence behind a match.
type DebugInfo struct {
	Pivots       []Pivot `json:"pivots"`
	CurrentPrice float64 `json:"currentPrice"`
	Support      float64 `json:"p1_support"`
	FakeBreakout float64 `json:"p3_fake_breakout"`
	Rebound      float64 `json:"p4_rebound"`
}

// ScreenResult is the verdict for one symbol.
type ScreenResult struct {
	Symbol  string     `json:"symbol"`
	Matched bool       `json:"matched"`
	Reasons []string   `json:"reason"`
	Debug   *DebugInfo `json:"debugInfo,omitempty"`
}

// Tags returns the strategy tags a result contributes to the daily record.
func (r ScreenResult) Tags() []string {
	if r.Matched {
		return []string{TagBrokenBottom}
	}
	return []string{}
}

// SupportOverlay is a horizontal chart line at the support level.
type SupportOverlay struct {
	Price float64   `json:"price"`
	From  time.Time `json:"from"`
	To    time.Time `json:"to"`
}

// DailyAnalysis is the per-ticker, per-day record written by the screener.
type DailyAnalysis struct {
	Ticker        string     `json:"ticker"`
	Market        MarketType `json:"market"`
	Date          string     `json:"date"` // YYYY-MM-DD
	ClosePrice    float64    `json:"close_price"`
	ChangePercent float64    `json:"change_percent"`
	Volume        float64    `json:"volume"`
	StrategyTags  []string   `json:"strategy_tags"`
	SupportPrice  float64    `json:"support_price,omitempty"`
}

// ScreenOutcome is what a batch screen learned about one ticker.
type ScreenOutcome struct {
	Ticker   Ticker         `json:"ticker"`
	Result   ScreenResult   `json:"result"`
	Analysis *DailyAnalysis `json:"analysis,omitempty"`
	Error    string         `json:"error,omitempty"`
}

// ScreenReport is the outcome of one batch screen, ordered by symbol.
type ScreenReport struct {
	RunID      string          `json:"run_id"`
	Date       string          `json:"date"`
	Source     string          `json:"source"`
	StartedAt  time.Time       `json:"started_at"`
	FinishedAt time.Time       `json:"finished_at"`
	Outcomes   []ScreenOutcome `json:"outcomes"`
}

// Matched returns the outcomes whose series matched.
func (r *ScreenReport) Matched() []ScreenOutcome {
	var out []ScreenOutcome
	for _, o := range r.Outcomes {
		if o.Error == "" && o.Result.Matched {
			out = append(out, o)
		}
	}
	return out
}

// Failed returns the outcomes that could not be fetched or recorded.
func (r *ScreenReport) Failed() []ScreenOutcome {
	var out []ScreenOutcome
	for _, o := range r.Outcomes {
		if o.Error != "" {
			out = append(out, o)
		}
	}
	return out
}
