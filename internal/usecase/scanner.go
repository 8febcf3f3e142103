package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"SignalDesk/internal/domain/models"
	domrepo "SignalDesk/internal/domain/repository"
	"SignalDesk/internal/indicator"
	"SignalDesk/internal/sizing"
	"SignalDesk/internal/strategy"
	applogger "SignalDesk/pkg/logger"
)

// batchConcurrency bounds how many symbols a batch scan works in parallel.
const batchConcurrency = 5

// ScannerUseCase runs the multi-timeframe scan: history per timeframe,
// snapshot, scorer set, then one consensus Decision per symbol.
type ScannerUseCase struct {
	data     domrepo.MarketData
	store    domrepo.DecisionStore
	alerts   domrepo.AlertPublisher
	metrics  domrepo.Metrics
	selector *strategy.Selector
	l        *applogger.Logger

	// AlertMinScore gates publishing: only decisions at or above it go out.
	alertMinScore int
}

func NewScannerUseCase(
	data domrepo.MarketData,
	store domrepo.DecisionStore,
	alerts domrepo.AlertPublisher,
	metrics domrepo.Metrics,
	selector *strategy.Selector,
	alertMinScore int,
	l *applogger.Logger,
) *ScannerUseCase {
	if alertMinScore <= 0 {
		alertMinScore = 70
	}
	return &ScannerUseCase{
		data:          data,
		store:         store,
		alerts:        alerts,
		metrics:       metrics,
		selector:      selector,
		alertMinScore: alertMinScore,
		l:             l,
	}
}

// Scan evaluates one symbol across all scan timeframes and persists the
// resulting Decision. A timeframe that fails to produce a snapshot just
// contributes the neutral placeholder.
func (uc *ScannerUseCase) Scan(ctx context.Context, symbol string) (*models.Decision, error) {
	if symbol == "" {
		return nil, fmt.Errorf("symbol required")
	}
	start := time.Now()

	mkt, err := uc.data.Context(ctx)
	if err != nil {
		uc.metrics.RecordError("market_context")
		uc.l.Warn("market context unavailable, scanning without it",
			applogger.String("symbol", symbol),
			applogger.Error(err),
		)
		mkt = models.MarketContext{}
	}

	daily, err := uc.data.History(ctx, symbol, domrepo.TF1d, 0)
	if err != nil {
		uc.metrics.RecordError("history")
		return nil, fmt.Errorf("daily history %s: %w", symbol, err)
	}
	dailyBull, dailyBear := indicator.DailyTrend(daily)

	type tfResult struct {
		tf     domrepo.Timeframe
		ranked []models.Signal
	}
	results := make(chan tfResult, len(domrepo.ScanTimeframes))
	var wg sync.WaitGroup
	for _, tf := range domrepo.ScanTimeframes {
		wg.Add(1)
		go func(tf domrepo.Timeframe) {
			defer wg.Done()
			ranked := uc.scanTimeframe(ctx, symbol, tf, daily, dailyBull, dailyBear, mkt)
			results <- tfResult{tf: tf, ranked: ranked}
		}(tf)
	}
	wg.Wait()
	close(results)

	ranked := make(map[domrepo.Timeframe][]models.Signal, len(domrepo.ScanTimeframes))
	for r := range results {
		ranked[r.tf] = r.ranked
	}

	decision := strategy.Aggregate(symbol, ranked, time.Now().UTC())
	decision.KeyLevels = indicator.KeyLevels(daily)

	if err := uc.store.Save(ctx, &decision); err != nil {
		uc.metrics.RecordError("decision_save")
		return nil, fmt.Errorf("save decision %s: %w", symbol, err)
	}

	if uc.alerts != nil && decision.FinalScore >= uc.alertMinScore && decision.BestStrategy.IsBullish() {
		if err := uc.alerts.Publish(ctx, &decision); err != nil {
			uc.metrics.RecordError("alert_publish")
			uc.l.Warn("alert publish failed",
				applogger.String("symbol", symbol),
				applogger.Error(err),
			)
		}
	}

	uc.metrics.RecordScan(symbol, time.Since(start).Seconds())
	uc.metrics.RecordTopScore(symbol, decision.FinalScore)
	uc.l.Info("scan complete",
		applogger.String("symbol", symbol),
		applogger.String("finalSignal", decision.FinalSignal),
		applogger.Int("finalScore", decision.FinalScore),
		applogger.Duration("duration_ms", time.Since(start)),
	)
	return &decision, nil
}

func (uc *ScannerUseCase) scanTimeframe(
	ctx context.Context,
	symbol string,
	tf domrepo.Timeframe,
	daily []models.Candle,
	dailyBull, dailyBear bool,
	mkt models.MarketContext,
) []models.Signal {
	candles := daily
	if tf != domrepo.TF1d {
		var err error
		candles, err = uc.data.History(ctx, symbol, tf, 0)
		if err != nil {
			uc.metrics.RecordError("history")
			uc.l.Warn("history fetch failed",
				applogger.String("symbol", symbol),
				applogger.String("tf", string(tf)),
				applogger.Error(err),
			)
			return nil
		}
	}

	snap, err := indicator.Compute(symbol, tf, candles)
	if err != nil {
		uc.metrics.RecordError("snapshot")
		uc.l.Warn("snapshot failed",
			applogger.String("symbol", symbol),
			applogger.String("tf", string(tf)),
			applogger.Error(err),
		)
		return nil
	}
	snap.DailyBullish = dailyBull
	snap.DailyBearish = dailyBear

	return uc.selector.Evaluate(strategy.ScorersFor(string(tf)), snap, mkt)
}

// BatchResult pairs a symbol with its scan outcome.
type BatchResult struct {
	Symbol   string           `json:"symbol"`
	Decision *models.Decision `json:"decision,omitempty"`
	Error    string           `json:"error,omitempty"`
}

// BatchScan scans symbols with bounded concurrency and returns results
// in input order.
func (uc *ScannerUseCase) BatchScan(ctx context.Context, symbols []string) []BatchResult {
	results := make([]BatchResult, len(symbols))
	sem := make(chan struct{}, batchConcurrency)
	var wg sync.WaitGroup

	for i, symbol := range symbols {
		wg.Add(1)
		go func(i int, symbol string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			res := BatchResult{Symbol: symbol}
			d, err := uc.Scan(ctx, symbol)
			if err != nil {
				res.Error = err.Error()
			} else {
				res.Decision = d
			}
			results[i] = res
		}(i, symbol)
	}
	wg.Wait()
	return results
}

// Latest returns the persisted Decision for a symbol.
func (uc *ScannerUseCase) Latest(ctx context.Context, symbol string) (*models.Decision, error) {
	return uc.store.Get(ctx, symbol)
}

// TradeSetup builds the structure-plus-ATR entry plan for a symbol off its
// daily history, sized against the given account.
func (uc *ScannerUseCase) TradeSetup(ctx context.Context, symbol, side string, account, riskPct float64) (*sizing.TradeSetup, error) {
	if symbol == "" {
		return nil, fmt.Errorf("symbol required")
	}
	daily, err := uc.data.History(ctx, symbol, domrepo.TF1d, 0)
	if err != nil {
		uc.metrics.RecordError("history")
		return nil, fmt.Errorf("daily history %s: %w", symbol, err)
	}
	if len(daily) == 0 {
		return nil, fmt.Errorf("no candles for %s", symbol)
	}

	entry := daily[len(daily)-1].Close
	setup := sizing.BuildTradeSetup(entry, side, daily, account, riskPct)
	if setup == nil {
		return nil, fmt.Errorf("insufficient history for %s trade setup", symbol)
	}
	return setup, nil
}
