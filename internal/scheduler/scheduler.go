package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"ReboundScout/internal/model"
	"ReboundScout/internal/notifier"
	"ReboundScout/internal/recorder"
	"ReboundScout/internal/screener"
)

var log = logrus.WithField("component", "scheduler")

// Sender delivers formatted reports. *notifier.TelegramNotifier satisfies it.
type Sender interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

// Scheduler manages the cron-driven screen.
type Scheduler struct {
	Cron     *cron.Cron
	Screener *screener.Screener
	Recorder recorder.Recorder
	Notifier Sender // nil disables notifications
	Universe []model.Ticker
	Ctx      context.Context

	running atomic.Bool
}

// NewScheduler creates a new Scheduler. universe is the fallback ticker list used when
// the store holds no active tickers.
func NewScheduler(ctx context.Context, sc *screener.Screener, rec recorder.Recorder, n Sender, universe []model.Ticker) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Screener: sc,
		Recorder: rec,
		Notifier: n,
		Universe: universe,
		Ctx:      ctx,
	}
}

// Register installs the screen job on the given cron spec (with seconds field).
func (s *Scheduler) Register(screenCron string) error {
	if _, err := s.Cron.AddFunc(screenCron, s.screenTask); err != nil {
		return fmt.Errorf("register screen task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Info("scheduler started")
}

// Stop stops the cron scheduler and waits for a running screen to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Info("scheduler stopped")
}

// RunNow executes the screen immediately (manual trigger / RUN_ON_START).
func (s *Scheduler) RunNow() (*model.ScreenReport, error) {
	return s.runScreen()
}

func (s *Scheduler) screenTask() {
	if _, err := s.runScreen(); err != nil {
		log.WithError(err).Error("scheduled screen failed")
	}
}

// ErrBusy is returned when a screen is requested while one is already running.
var ErrBusy = errors.New("a screen is already running")

func (s *Scheduler) runScreen() (*model.ScreenReport, error) {
	if !s.running.CompareAndSwap(false, true) {
		log.Warn("screen already running, skipping")
		return nil, ErrBusy
	}
	defer s.running.Store(false)

	log.Info("running screen task")
	tickers, err := s.Screener.Universe(s.Universe)
	if err != nil {
		s.trySend(fmt.Sprintf("❌ screen failed to load tickers: %v", err))
		return nil, err
	}

	report, err := s.Screener.Run(s.Ctx, tickers)
	if err != nil {
		s.trySend(fmt.Sprintf("❌ screen failed: %v", err))
		return nil, err
	}

	s.trySend(notifier.FormatScreenReport(report))
	return report, nil
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(_ context.Context, command string) string {
	switch command {
	case "/screen":
		if _, err := s.runScreen(); err != nil {
			return fmt.Sprintf("screen not run: %v", err)
		}
		return ""
	case "/matches":
		date := time.Now().UTC().Format("2006-01-02")
		rows, err := s.Recorder.MatchesOn(date)
		if err != nil {
			return fmt.Sprintf("load matches: %v", err)
		}
		return notifier.FormatMatches(date, rows)
	default:
		return "Available commands:\n• /screen run the 2B screen now\n• /matches today's matches"
	}
}

func (s *Scheduler) trySend(text string) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.WithError(err).Error("send notification")
	}
}
