package usecase

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"SignalDesk/internal/domain/models"
	domrepo "SignalDesk/internal/domain/repository"
	"SignalDesk/internal/strategy"
	applogger "SignalDesk/pkg/logger"
)

type fakeData struct {
	candles  []models.Candle
	histErr  map[domrepo.Timeframe]error
	mkt      models.MarketContext
	mktErr   error
	mu       sync.Mutex
	requests []domrepo.Timeframe
}

func (f *fakeData) History(_ context.Context, _ string, tf domrepo.Timeframe, _ int) ([]models.Candle, error) {
	f.mu.Lock()
	f.requests = append(f.requests, tf)
	f.mu.Unlock()
	if err, ok := f.histErr[tf]; ok {
		return nil, err
	}
	return f.candles, nil
}

func (f *fakeData) Context(context.Context) (models.MarketContext, error) {
	return f.mkt, f.mktErr
}

type fakeStore struct {
	mu    sync.Mutex
	saved map[string]*models.Decision
}

func newFakeStore() *fakeStore {
	return &fakeStore{saved: make(map[string]*models.Decision)}
}

func (f *fakeStore) Save(_ context.Context, d *models.Decision) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saved[d.Symbol] = d
	return nil
}

func (f *fakeStore) Get(_ context.Context, symbol string) (*models.Decision, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.saved[symbol]
	if !ok {
		return nil, fmt.Errorf("no decision for %s", symbol)
	}
	return d, nil
}

func (f *fakeStore) Close() error { return nil }

type fakeAlerts struct {
	mu        sync.Mutex
	published []string
}

func (f *fakeAlerts) Publish(_ context.Context, d *models.Decision) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.published = append(f.published, d.Symbol)
	return nil
}

func (f *fakeAlerts) Close() error { return nil }

type fakeMetrics struct {
	mu     sync.Mutex
	errors map[string]int
	scans  int
}

func newFakeMetrics() *fakeMetrics {
	return &fakeMetrics{errors: make(map[string]int)}
}

func (f *fakeMetrics) RecordScan(string, float64) {
	f.mu.Lock()
	f.scans++
	f.mu.Unlock()
}

func (f *fakeMetrics) RecordError(kind string) {
	f.mu.Lock()
	f.errors[kind]++
	f.mu.Unlock()
}

func (f *fakeMetrics) RecordTopScore(string, int) {}

func (f *fakeMetrics) RecordBacktest(string, float64) {}

func dailyHistory(n int) []models.Candle {
	ts := time.Date(2023, 1, 2, 21, 0, 0, 0, time.UTC)
	candles := make([]models.Candle, n)
	price := 100.0
	for i := range candles {
		candles[i] = models.Candle{
			Timestamp: ts,
			Open:      price,
			High:      price + 1,
			Low:       price - 1,
			Close:     price + 0.5,
			Volume:    2_000_000,
		}
		price += 0.5
		ts = ts.AddDate(0, 0, 1)
	}
	return candles
}

func testScanner(data *fakeData, store *fakeStore, alerts *fakeAlerts, metrics *fakeMetrics) *ScannerUseCase {
	l, _ := applogger.New(&applogger.Config{Level: "error", Format: "console", Output: "stdout"})
	sel := strategy.NewSelector(zerolog.Nop())
	return NewScannerUseCase(data, store, alerts, metrics, sel, 70, l)
}

func TestScanPersistsDecision(t *testing.T) {
	data := &fakeData{candles: dailyHistory(260)}
	store := newFakeStore()
	metrics := newFakeMetrics()
	uc := testScanner(data, store, nil, metrics)

	d, err := uc.Scan(context.Background(), "SPY")
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if d.Symbol != "SPY" {
		t.Errorf("symbol = %q, want SPY", d.Symbol)
	}
	if d.FinalScore < 0 || d.FinalScore > 100 {
		t.Errorf("final score %d out of range", d.FinalScore)
	}
	if _, err := store.Get(context.Background(), "SPY"); err != nil {
		t.Errorf("decision not persisted: %v", err)
	}
	if d.KeyLevels == nil || d.KeyLevels.Pivots.P == 0 {
		t.Error("decision missing key levels from daily history")
	}
	if metrics.scans != 1 {
		t.Errorf("scans recorded = %d, want 1", metrics.scans)
	}
}

func TestScanRequiresSymbol(t *testing.T) {
	uc := testScanner(&fakeData{candles: dailyHistory(260)}, newFakeStore(), nil, newFakeMetrics())
	if _, err := uc.Scan(context.Background(), ""); err == nil {
		t.Fatal("expected error for empty symbol")
	}
}

func TestScanFailsWithoutDailyHistory(t *testing.T) {
	data := &fakeData{
		candles: dailyHistory(260),
		histErr: map[domrepo.Timeframe]error{domrepo.TF1d: fmt.Errorf("upstream down")},
	}
	metrics := newFakeMetrics()
	uc := testScanner(data, newFakeStore(), nil, metrics)

	if _, err := uc.Scan(context.Background(), "SPY"); err == nil {
		t.Fatal("expected error when daily history is unavailable")
	}
	if metrics.errors["history"] == 0 {
		t.Error("history error not recorded")
	}
}

func TestScanSurvivesIntradayHistoryFailure(t *testing.T) {
	data := &fakeData{
		candles: dailyHistory(260),
		histErr: map[domrepo.Timeframe]error{
			domrepo.TF15m: fmt.Errorf("rate limited"),
			domrepo.TF1h:  fmt.Errorf("rate limited"),
		},
	}
	uc := testScanner(data, newFakeStore(), nil, newFakeMetrics())

	d, err := uc.Scan(context.Background(), "SPY")
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	// Missing intraday timeframes degrade to neutral placeholders, the
	// daily leg still contributes.
	if len(d.Timeframes) != len(domrepo.ScanTimeframes) {
		t.Errorf("timeframes = %d, want %d", len(d.Timeframes), len(domrepo.ScanTimeframes))
	}
}

func TestScanAlertGateHoldsForLowScores(t *testing.T) {
	// A flat series scores weakly everywhere, so nothing may reach the
	// alert publisher.
	flat := dailyHistory(260)
	for i := range flat {
		flat[i].Open, flat[i].High, flat[i].Low, flat[i].Close = 100, 100.5, 99.5, 100
	}
	data := &fakeData{candles: flat}
	alerts := &fakeAlerts{}
	uc := testScanner(data, newFakeStore(), alerts, newFakeMetrics())

	if _, err := uc.Scan(context.Background(), "SPY"); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(alerts.published) != 0 {
		t.Errorf("published %d alerts for a flat tape, want 0", len(alerts.published))
	}
}

func TestBatchScanPreservesOrder(t *testing.T) {
	data := &fakeData{candles: dailyHistory(260)}
	uc := testScanner(data, newFakeStore(), nil, newFakeMetrics())

	symbols := []string{"SPY", "QQQ", "AAPL", "NVDA", "TSLA", "AMD", "MSFT"}
	results := uc.BatchScan(context.Background(), symbols)
	if len(results) != len(symbols) {
		t.Fatalf("results = %d, want %d", len(results), len(symbols))
	}
	for i, res := range results {
		if res.Symbol != symbols[i] {
			t.Errorf("results[%d] = %q, want %q", i, res.Symbol, symbols[i])
		}
		if res.Error != "" {
			t.Errorf("%s: unexpected error %q", res.Symbol, res.Error)
		}
	}
}

func TestTradeSetupFromDailyHistory(t *testing.T) {
	data := &fakeData{candles: dailyHistory(260)}
	uc := testScanner(data, newFakeStore(), nil, newFakeMetrics())

	setup, err := uc.TradeSetup(context.Background(), "SPY", "BUY", 100_000, 0.01)
	if err != nil {
		t.Fatalf("TradeSetup: %v", err)
	}
	last := data.candles[len(data.candles)-1].Close
	if setup.EntryPrice != last {
		t.Errorf("entry = %v, want last close %v", setup.EntryPrice, last)
	}
	if setup.StopLoss >= setup.EntryPrice {
		t.Errorf("long stop %v not below entry %v", setup.StopLoss, setup.EntryPrice)
	}
	if setup.Shares <= 0 {
		t.Errorf("shares = %d, want > 0", setup.Shares)
	}
}

func TestTradeSetupInsufficientHistory(t *testing.T) {
	data := &fakeData{candles: dailyHistory(5)}
	uc := testScanner(data, newFakeStore(), nil, newFakeMetrics())
	if _, err := uc.TradeSetup(context.Background(), "SPY", "BUY", 100_000, 0.01); err == nil {
		t.Fatal("expected error for short history")
	}
}

func TestLatestDelegatesToStore(t *testing.T) {
	store := newFakeStore()
	uc := testScanner(&fakeData{candles: dailyHistory(260)}, store, nil, newFakeMetrics())

	if _, err := uc.Latest(context.Background(), "SPY"); err == nil {
		t.Fatal("expected miss before any scan")
	}
	if _, err := uc.Scan(context.Background(), "SPY"); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if _, err := uc.Latest(context.Background(), "SPY"); err != nil {
		t.Errorf("Latest after scan: %v", err)
	}
}
