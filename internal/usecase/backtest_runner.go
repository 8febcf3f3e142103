package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"SignalDesk/internal/backtest"
	"SignalDesk/internal/domain/models"
	domrepo "SignalDesk/internal/domain/repository"
	applogger "SignalDesk/pkg/logger"
)

// BacktestUseCase runs the simulator over fetched history and persists
// the trade ledger keyed by a fresh run ID.
type BacktestUseCase struct {
	data    domrepo.MarketData
	ledger  domrepo.TradeLedger
	metrics domrepo.Metrics
	engine  *backtest.Engine
	l       *applogger.Logger
}

func NewBacktestUseCase(
	data domrepo.MarketData,
	ledger domrepo.TradeLedger,
	metrics domrepo.Metrics,
	engine *backtest.Engine,
	l *applogger.Logger,
) *BacktestUseCase {
	return &BacktestUseCase{
		data:    data,
		ledger:  ledger,
		metrics: metrics,
		engine:  engine,
		l:       l,
	}
}

// Run fetches history per the request, replays it through the engine,
// and stores the ledger. The summary comes back with its run ID set.
func (uc *BacktestUseCase) Run(ctx context.Context, req *models.BacktestRequest) (*models.BacktestSummary, error) {
	if req.Symbol == "" {
		return nil, fmt.Errorf("symbol required")
	}
	tf := domrepo.NormalizeTimeframe(req.Interval)
	start := time.Now()

	candles, err := uc.data.History(ctx, req.Symbol, tf, req.Days)
	if err != nil {
		uc.metrics.RecordError("history")
		return nil, fmt.Errorf("history %s: %w", req.Symbol, err)
	}

	mkt, err := uc.data.Context(ctx)
	if err != nil {
		mkt = models.MarketContext{}
	}

	summary, err := uc.engine.Run(backtest.Params{
		Symbol:    req.Symbol,
		Interval:  tf,
		MinScore:  req.MinScore,
		RiskSized: req.RiskSized,
		Account:   req.Account,
		RiskPct:   req.RiskPct,
		Market:    mkt,
	}, candles)
	if err != nil {
		uc.metrics.RecordError("backtest")
		return nil, fmt.Errorf("backtest %s: %w", req.Symbol, err)
	}

	summary.RunID = uuid.NewString()
	if uc.ledger != nil && len(summary.Trades) > 0 {
		if err := uc.ledger.StoreRun(ctx, summary.RunID, summary.Trades); err != nil {
			uc.metrics.RecordError("ledger_store")
			uc.l.Warn("trade ledger store failed",
				applogger.String("run_id", summary.RunID),
				applogger.Error(err),
			)
		}
	}

	uc.metrics.RecordBacktest(req.Symbol, time.Since(start).Seconds())
	return summary, nil
}

// Trades returns the stored ledger rows for a prior run, optionally
// restricted to entries inside [from, to]. Zero bounds mean unbounded.
func (uc *BacktestUseCase) Trades(ctx context.Context, runID string, limit int, from, to time.Time) ([]models.Trade, error) {
	if runID == "" {
		return nil, fmt.Errorf("run id required")
	}
	if uc.ledger == nil {
		return nil, fmt.Errorf("trade ledger not configured")
	}
	return uc.ledger.QueryRun(ctx, runID, limit, from, to)
}
