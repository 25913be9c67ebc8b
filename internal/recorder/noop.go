package recorder

import "ReboundScout/internal/model"

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) UpsertTickers(_ []model.Ticker) error { return nil }
func (n *NoopRecorder) ActiveTickers() ([]model.Ticker, error) { return nil, nil }
func (n *NoopRecorder) RecordAnalysis(_ *model.DailyAnalysis) error { return nil }
func (n *NoopRecorder) RecordRun(_ *RunRecord) error { return nil }
func (n *NoopRecorder) MatchesOn(_ string) ([]model.DailyAnalysis, error) { return nil, nil }
func (n *NoopRecorder) Close() error { return nil }
