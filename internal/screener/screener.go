package screener

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"ReboundScout/internal/calculator"
	"ReboundScout/internal/collector"
	"ReboundScout/internal/model"
	"ReboundScout/internal/recorder"
	"ReboundScout/internal/strategy"
)

var log = logrus.WithField("component", "screener")

// DefaultWorkers bounds how many symbols are fetched and analysed at once.
const DefaultWorkers = 4

// Screener runs the 2B screen over a ticker universe and records the results.
type Screener struct {
	Collector *collector.Collector
	Recorder  recorder.Recorder
	Workers   int
	Now       func() time.Time
}

// NewScreener creates a Screener. A nil recorder disables persistence.
func NewScreener(col *collector.Collector, rec recorder.Recorder, workers int) *Screener {
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &Screener{Collector: col, Recorder: rec, Workers: workers, Now: time.Now}
}

// Universe returns the active tickers in the store, or fallback when the store has none.
func (s *Screener) Universe(fallback []model.Ticker) ([]model.Ticker, error) {
	tickers, err := s.Recorder.ActiveTickers()
	if err != nil {
		return nil, fmt.Errorf("load active tickers: %w", err)
	}
	if len(tickers) == 0 {
		return fallback, nil
	}
	return tickers, nil
}

// Run screens every ticker concurrently. A symbol that fails to fetch or record is
// reported in its outcome and does not stop the batch; cancelling ctx does.
func (s *Screener) Run(ctx context.Context, tickers []model.Ticker) (*model.ScreenReport, error) {
	started := s.Now()
	report := &model.ScreenReport{
		RunID:     uuid.NewString(),
		Date:      started.UTC().Format("2006-01-02"),
		Source:    s.Collector.Fetcher.Name(),
		StartedAt: started,
		Outcomes:  make([]model.ScreenOutcome, len(tickers)),
	}
	logger := log.WithField("run", report.RunID)
	logger.Infof("screening %d tickers with %s data", len(tickers), report.Source)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.Workers)
	for i, t := range tickers {
		i, t := i, t
		g.Go(func() error {
			out, err := s.screen(gctx, t, report.Date)
			report.Outcomes[i] = out
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("screen run %s: %w", report.RunID, err)
	}

	sort.Slice(report.Outcomes, func(i, j int) bool {
		return report.Outcomes[i].Ticker.Symbol < report.Outcomes[j].Ticker.Symbol
	})
	report.FinishedAt = s.Now()

	matched, failed := len(report.Matched()), len(report.Failed())
	if err := s.Recorder.RecordRun(&recorder.RunRecord{
		ID:         report.RunID,
		StartedAt:  report.StartedAt,
		FinishedAt: report.FinishedAt,
		Source:     report.Source,
		Total:      len(tickers),
		Matched:    matched,
		Failed:     failed,
	}); err != nil {
		logger.WithError(err).Error("record screen run")
	}

	logger.Infof("screen complete: %d matched, %d failed, %d total", matched, failed, len(tickers))
	return report, nil
}

// Screen fetches and analyses a single symbol without recording it.
func (s *Screener) Screen(ctx context.Context, symbol string) (model.ScreenResult, []model.OHLCV, error) {
	bars, err := s.Collector.Collect(ctx, symbol)
	if err != nil {
		return model.ScreenResult{}, nil, err
	}
	return strategy.Analyze(symbol, bars), bars, nil
}

// screen handles one ticker of a batch. Only context errors are returned.
func (s *Screener) screen(ctx context.Context, t model.Ticker, date string) (model.ScreenOutcome, error) {
	out := model.ScreenOutcome{Ticker: t}
	logger := log.WithField("symbol", t.Symbol)

	bars, err := s.Collector.Collect(ctx, t.Symbol)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			return out, ctxErr
		}
		logger.WithError(err).Warn("collect failed")
		out.Error = err.Error()
		out.Result = model.ScreenResult{Symbol: t.Symbol, Reasons: []string{}}
		return out, nil
	}

	out.Result = strategy.Analyze(t.Symbol, bars)
	if out.Result.Matched {
		logger.Infof("MATCH: fits 2B pattern, support %g", out.Result.Debug.Support)
	} else {
		logger.Debugf("no match: %v", out.Result.Reasons)
	}

	last, err := calculator.LastBar(bars)
	if err != nil {
		// Nothing to key a daily row on.
		return out, nil
	}
	change, err := calculator.ChangePercent(bars)
	if err != nil {
		logger.WithError(err).Debug("change percent unavailable")
	}

	a := &model.DailyAnalysis{
		Ticker:        t.Symbol,
		Market:        t.Market,
		Date:          date,
		ClosePrice:    last.Close,
		ChangePercent: change,
		Volume:        last.Volume,
		StrategyTags:  out.Result.Tags(),
	}
	if out.Result.Matched {
		a.SupportPrice = out.Result.Debug.Support
	}
	out.Analysis = a

	if err := s.Recorder.RecordAnalysis(a); err != nil {
		logger.WithError(err).Error("record analysis failed")
		out.Error = fmt.Sprintf("record analysis: %v", err)
	}
	return out, nil
}
