package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"SignalDesk/internal/backtest"
	"SignalDesk/internal/domain/models"
	domrepo "SignalDesk/internal/domain/repository"
	applogger "SignalDesk/pkg/logger"
)

type fakeLedger struct {
	stored   map[string][]models.Trade
	lastFrom time.Time
	lastTo   time.Time
}

func (f *fakeLedger) Init(context.Context) error { return nil }

func (f *fakeLedger) StoreRun(_ context.Context, runID string, trades []models.Trade) error {
	if f.stored == nil {
		f.stored = map[string][]models.Trade{}
	}
	f.stored[runID] = trades
	return nil
}

func (f *fakeLedger) QueryRun(_ context.Context, runID string, limit int, from, to time.Time) ([]models.Trade, error) {
	f.lastFrom, f.lastTo = from, to
	rows := f.stored[runID]
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

func (f *fakeLedger) Health(context.Context) error { return nil }

func (f *fakeLedger) Close() error { return nil }

func testBacktester(data *fakeData, ledger domrepo.TradeLedger) *BacktestUseCase {
	l, _ := applogger.New(&applogger.Config{Level: "error", Format: "console", Output: "stdout"})
	engine := backtest.NewEngine(zerolog.Nop())
	return NewBacktestUseCase(data, ledger, newFakeMetrics(), engine, l)
}

func TestBacktestRunAssignsRunID(t *testing.T) {
	data := &fakeData{candles: dailyHistory(120)}
	uc := testBacktester(data, &fakeLedger{})

	summary, err := uc.Run(context.Background(), &models.BacktestRequest{Symbol: "SPY", Days: 120, Interval: "1d"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.RunID == "" {
		t.Fatal("summary missing run id")
	}
}

func TestBacktestTradesPassesTimeBounds(t *testing.T) {
	ledger := &fakeLedger{stored: map[string][]models.Trade{
		"run-1": {{Strategy: "SPY"}, {Strategy: "SPY"}},
	}}
	uc := testBacktester(&fakeData{candles: dailyHistory(30)}, ledger)

	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	rows, err := uc.Trades(context.Background(), "run-1", 1, from, to)
	if err != nil {
		t.Fatalf("Trades: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("limit not applied, got %d rows", len(rows))
	}
	if !ledger.lastFrom.Equal(from) || !ledger.lastTo.Equal(to) {
		t.Fatalf("bounds not forwarded: %v .. %v", ledger.lastFrom, ledger.lastTo)
	}
}

func TestBacktestTradesRequiresRunID(t *testing.T) {
	uc := testBacktester(&fakeData{candles: dailyHistory(30)}, &fakeLedger{})
	if _, err := uc.Trades(context.Background(), "", 10, time.Time{}, time.Time{}); err == nil {
		t.Fatal("expected error for empty run id")
	}
}
