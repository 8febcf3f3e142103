package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"SignalDesk/internal/domain/models"
	domrepo "SignalDesk/internal/domain/repository"
	pkgch "SignalDesk/pkg/clickhouse"
	applogger "SignalDesk/pkg/logger"
)

const tradesTable = "signaldesk.backtest_trades"

var tradesSchema = []string{
	`CREATE DATABASE IF NOT EXISTS signaldesk`,
	`CREATE TABLE IF NOT EXISTS ` + tradesTable + ` (
        run_id        String,
        strategy      LowCardinality(String),
        signal        LowCardinality(String),
        score         Int32,
        entry_time    DateTime64(3, 'UTC'),
        entry_price   Float64,
        exit_time     DateTime64(3, 'UTC'),
        exit_price    Float64,
        exit_reason   LowCardinality(String),
        shares        Int32,
        pnl           Float64,
        pnl_percent   Float64,
        hold_minutes  Int32,
        session_phase LowCardinality(String),
        day_of_week   Int8
    ) ENGINE = MergeTree()
    ORDER BY (run_id, entry_time)`,
}

// CHTradeLedger persists backtest trade rows in ClickHouse keyed by run ID.
type CHTradeLedger struct {
	db *sql.DB
	l  *applogger.Logger
}

func NewCHTradeLedger(ch *pkgch.Client, l *applogger.Logger) domrepo.TradeLedger {
	return &CHTradeLedger{db: ch.DB(), l: l}
}

func (s *CHTradeLedger) Init(ctx context.Context) error {
	for _, stmt := range tradesSchema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("trade ledger schema: %w", err)
		}
	}
	return nil
}

func (s *CHTradeLedger) StoreRun(ctx context.Context, runID string, trades []models.Trade) error {
	if len(trades) == 0 {
		return nil
	}
	start := time.Now()

	const chunkSize = 1000
	for begin := 0; begin < len(trades); begin += chunkSize {
		end := begin + chunkSize
		if end > len(trades) {
			end = len(trades)
		}
		chunk := trades[begin:end]

		values := make([]string, 0, len(chunk))
		args := make([]interface{}, 0, len(chunk)*15)
		for _, t := range chunk {
			values = append(values, "(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")
			args = append(args,
				runID,
				t.Strategy,
				t.Signal,
				int32(t.Score),
				t.EntryTime,
				t.EntryPrice,
				t.ExitTime,
				t.ExitPrice,
				string(t.ExitReason),
				int32(t.Shares),
				t.PnL,
				t.PnLPercent,
				int32(t.HoldMinutes),
				string(t.SessionPhase),
				int8(t.DayOfWeek),
			)
		}
		q := fmt.Sprintf(
			"INSERT INTO %s (run_id, strategy, signal, score, entry_time, entry_price, exit_time, exit_price, exit_reason, shares, pnl, pnl_percent, hold_minutes, session_phase, day_of_week) VALUES %s",
			tradesTable, strings.Join(values, ","),
		)
		if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
			s.l.Error("clickhouse store run failed",
				applogger.String("run_id", runID),
				applogger.Int("rows", len(chunk)),
				applogger.Error(err),
			)
			return fmt.Errorf("store run %s: %w", runID, err)
		}
	}

	s.l.Info("clickhouse store run ok",
		applogger.String("run_id", runID),
		applogger.Int("rows", len(trades)),
		applogger.Duration("duration_ms", time.Since(start)),
	)
	return nil
}

func (s *CHTradeLedger) QueryRun(ctx context.Context, runID string, limit int, from, to time.Time) ([]models.Trade, error) {
	if limit <= 0 {
		limit = 1000
	}
	var (
		preds = "run_id = ?"
		args  = []interface{}{runID}
	)
	if !from.IsZero() {
		preds += " AND entry_time >= ?"
		args = append(args, from)
	}
	if !to.IsZero() {
		preds += " AND entry_time <= ?"
		args = append(args, to)
	}
	args = append(args, limit)
	q := fmt.Sprintf(`
        SELECT strategy, signal, score, entry_time, entry_price, exit_time, exit_price, exit_reason, shares, pnl, pnl_percent, hold_minutes, session_phase, day_of_week
        FROM %s
        WHERE %s
        ORDER BY entry_time ASC
        LIMIT ?`, tradesTable, preds)
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query run %s: %w", runID, err)
	}
	defer rows.Close()

	out := make([]models.Trade, 0, limit)
	for rows.Next() {
		var (
			t       models.Trade
			score   int32
			shares  int32
			hold    int32
			reason  string
			phase   string
			weekday int8
		)
		if err := rows.Scan(&t.Strategy, &t.Signal, &score, &t.EntryTime, &t.EntryPrice, &t.ExitTime, &t.ExitPrice, &reason, &shares, &t.PnL, &t.PnLPercent, &hold, &phase, &weekday); err != nil {
			return nil, fmt.Errorf("scan trade: %w", err)
		}
		t.Score = int(score)
		t.Shares = int(shares)
		t.HoldMinutes = int(hold)
		t.ExitReason = models.ExitReason(reason)
		t.SessionPhase = models.SessionPhase(phase)
		t.DayOfWeek = time.Weekday(weekday)
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *CHTradeLedger) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *CHTradeLedger) Close() error {
	return nil // pool managed by pkg client
}
