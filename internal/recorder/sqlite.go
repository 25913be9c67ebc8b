package recorder

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	"ReboundScout/internal/model"
)

var log = logrus.WithField("component", "recorder")

// SQLiteRecorder persists tickers and screen results to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so dashboards can read while a screen is writing.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Infof("sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS tickers (
			symbol          TEXT PRIMARY KEY,
			name            TEXT,
			market          TEXT,
			sector          TEXT,
			is_active       INTEGER NOT NULL DEFAULT 1,
			last_updated_at INTEGER NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS daily_analysis (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			ticker         TEXT NOT NULL,
			market         TEXT,
			date           TEXT NOT NULL,
			close_price    REAL,
			change_percent REAL,
			volume         REAL,
			strategy_tags  TEXT NOT NULL DEFAULT '[]',
			support_price  REAL,
			created_at     INTEGER NOT NULL,
			UNIQUE(ticker, date)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_analysis_date ON daily_analysis(date)`,

		`CREATE TABLE IF NOT EXISTS screen_runs (
			id          TEXT PRIMARY KEY,
			started_at  INTEGER NOT NULL,
			finished_at INTEGER NOT NULL,
			source      TEXT,
			total       INTEGER,
			matched     INTEGER,
			failed      INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_started ON screen_runs(started_at)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) UpsertTickers(tickers []model.Ticker) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().Unix()
	for _, t := range tickers {
		if _, err := tx.Exec(`INSERT INTO tickers
			(symbol, name, market, sector, is_active, last_updated_at)
			VALUES (?,?,?,?,?,?)
			ON CONFLICT(symbol) DO UPDATE SET
				name = excluded.name,
				market = excluded.market,
				sector = excluded.sector,
				is_active = excluded.is_active,
				last_updated_at = excluded.last_updated_at`,
			t.Symbol, t.Name, string(t.Market), t.Sector, t.Active, now,
		); err != nil {
			return fmt.Errorf("upsert ticker %s: %w", t.Symbol, err)
		}
	}
	return tx.Commit()
}

func (r *SQLiteRecorder) ActiveTickers() ([]model.Ticker, error) {
	rows, err := r.db.Query(`SELECT symbol, name, market, sector, last_updated_at
		FROM tickers WHERE is_active = 1 ORDER BY symbol`)
	if err != nil {
		return nil, fmt.Errorf("query tickers: %w", err)
	}
	defer rows.Close()

	var out []model.Ticker
	for rows.Next() {
		var (
			t       model.Ticker
			market  string
			updated int64
		)
		if err := rows.Scan(&t.Symbol, &t.Name, &market, &t.Sector, &updated); err != nil {
			return nil, fmt.Errorf("scan ticker: %w", err)
		}
		t.Market = model.MarketType(market)
		t.Active = true
		t.UpdatedAt = time.Unix(updated, 0)
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *SQLiteRecorder) RecordAnalysis(a *model.DailyAnalysis) error {
	tags := a.StrategyTags
	if tags == nil {
		tags = []string{}
	}
	tagJSON, err := json.Marshal(tags)
	if err != nil {
		return fmt.Errorf("marshal tags: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	_, err = r.db.Exec(`INSERT INTO daily_analysis
		(ticker, market, date, close_price, change_percent, volume, strategy_tags, support_price, created_at)
		VALUES (?,?,?,?,?,?,?,?,?)
		ON CONFLICT(ticker, date) DO UPDATE SET
			market = excluded.market,
			close_price = excluded.close_price,
			change_percent = excluded.change_percent,
			volume = excluded.volume,
			strategy_tags = excluded.strategy_tags,
			support_price = excluded.support_price`,
		a.Ticker, string(a.Market), a.Date, a.ClosePrice, a.ChangePercent, a.Volume,
		string(tagJSON), a.SupportPrice, time.Now().Unix(),
	)
	return err
}

func (r *SQLiteRecorder) RecordRun(run *RunRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO screen_runs
		(id, started_at, finished_at, source, total, matched, failed)
		VALUES (?,?,?,?,?,?,?)`,
		run.ID, run.StartedAt.Unix(), run.FinishedAt.Unix(), run.Source,
		run.Total, run.Matched, run.Failed,
	)
	return err
}

func (r *SQLiteRecorder) MatchesOn(date string) ([]model.DailyAnalysis, error) {
	rows, err := r.db.Query(`SELECT ticker, market, date, close_price, change_percent, volume, strategy_tags, support_price
		FROM daily_analysis WHERE date = ? AND strategy_tags != '[]' ORDER BY ticker`, date)
	if err != nil {
		return nil, fmt.Errorf("query matches: %w", err)
	}
	defer rows.Close()

	var out []model.DailyAnalysis
	for rows.Next() {
		var (
			a       model.DailyAnalysis
			market  string
			tagJSON string
		)
		if err := rows.Scan(&a.Ticker, &market, &a.Date, &a.ClosePrice, &a.ChangePercent,
			&a.Volume, &tagJSON, &a.SupportPrice); err != nil {
			return nil, fmt.Errorf("scan analysis: %w", err)
		}
		a.Market = model.MarketType(market)
		if err := json.Unmarshal([]byte(tagJSON), &a.StrategyTags); err != nil {
			return nil, fmt.Errorf("decode tags for %s: %w", a.Ticker, err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *SQLiteRecorder) Close() error {
	log.Info("closing sqlite recorder")
	return r.db.Close()
}
