package sizing

import (
	"testing"
	"time"

	"SignalDesk/internal/domain/models"
)

func TestKellySizeCapBoundary(t *testing.T) {
	// p=0.6, b=2.0: raw f = (2*0.6 - 0.4)/2 = 0.4, half-Kelly = 0.2,
	// which lands exactly on the cap.
	alloc := KellySize(0.60, 2.0, 100000)

	if alloc.Type != AllocHalfKelly {
		t.Fatalf("type = %q, want %q", alloc.Type, AllocHalfKelly)
	}
	if alloc.Percentage != 20 {
		t.Fatalf("percentage = %v, want 20", alloc.Percentage)
	}
	if alloc.Amount != 20000 {
		t.Fatalf("amount = %v, want 20000", alloc.Amount)
	}
}

func TestKellySizeCapsAggressiveEdge(t *testing.T) {
	// p=0.8, b=3.0: half-Kelly = 0.366..., well past the cap.
	alloc := KellySize(0.80, 3.0, 50000)

	if alloc.Percentage != 20 {
		t.Fatalf("percentage = %v, want capped 20", alloc.Percentage)
	}
	if alloc.Amount != 10000 {
		t.Fatalf("amount = %v, want 10000", alloc.Amount)
	}
}

func TestKellySizeNegativeEdge(t *testing.T) {
	// p=0.4, b=1.0: raw f = (0.4 - 0.6)/1 = -0.2, no trade.
	alloc := KellySize(0.40, 1.0, 100000)

	if alloc.Type != AllocNoTrade {
		t.Fatalf("type = %q, want %q", alloc.Type, AllocNoTrade)
	}
	if alloc.Percentage != 0 || alloc.Amount != 0 {
		t.Fatalf("allocation = %+v, want zero", alloc)
	}
}

func TestKellySizeZeroOdds(t *testing.T) {
	alloc := KellySize(0.60, 0, 100000)
	if alloc.Type != AllocNoTrade {
		t.Fatalf("type = %q, want NO TRADE on zero odds", alloc.Type)
	}
}

func setupCandles(n int, base float64) []models.Candle {
	start := time.Date(2024, 2, 1, 14, 30, 0, 0, time.UTC)
	candles := make([]models.Candle, n)
	for i := range candles {
		px := base + float64(i%5)
		candles[i] = models.Candle{
			Timestamp: start.Add(time.Duration(i) * 15 * time.Minute),
			Open:      px,
			High:      px + 2,
			Low:       px - 2,
			Close:     px + 1,
			Volume:    1_000_000,
		}
	}
	return candles
}

func TestBuildTradeSetupLong(t *testing.T) {
	candles := setupCandles(60, 100)
	setup := BuildTradeSetup(105, "BUY", candles, 100000, 0.01)
	if setup == nil {
		t.Fatal("expected a setup with 60 candles of history")
	}

	if setup.StopLoss >= setup.EntryPrice {
		t.Fatalf("long stop %v not below entry %v", setup.StopLoss, setup.EntryPrice)
	}
	if setup.RiskAmount != 1000 {
		t.Fatalf("riskAmount = %v, want 1%% of 100k", setup.RiskAmount)
	}
	wantShares := int(setup.RiskAmount / setup.RiskPerShare)
	if diff := setup.Shares - wantShares; diff < -1 || diff > 0 {
		t.Fatalf("shares = %d, want ~%d (risk/riskPerShare)", setup.Shares, wantShares)
	}

	r := setup.RiskPerShare
	if got, want := setup.Target1-setup.EntryPrice, 2*r; !close2(got, want) {
		t.Fatalf("target1 distance = %v, want 2R = %v", got, want)
	}
	if got, want := setup.Target3-setup.EntryPrice, 5*r; !close2(got, want) {
		t.Fatalf("target3 distance = %v, want 5R = %v", got, want)
	}
	if setup.Kelly.Type != AllocHalfKelly {
		t.Fatalf("kelly type = %q, want %q", setup.Kelly.Type, AllocHalfKelly)
	}
}

func TestBuildTradeSetupShortMirrors(t *testing.T) {
	candles := setupCandles(60, 100)
	setup := BuildTradeSetup(100, "SELL", candles, 100000, 0.01)
	if setup == nil {
		t.Fatal("expected a setup")
	}
	if setup.StopLoss <= setup.EntryPrice {
		t.Fatalf("short stop %v not above entry %v", setup.StopLoss, setup.EntryPrice)
	}
	if setup.Target1 >= setup.EntryPrice {
		t.Fatalf("short target1 %v not below entry %v", setup.Target1, setup.EntryPrice)
	}
}

func TestBuildTradeSetupInsufficientHistory(t *testing.T) {
	if setup := BuildTradeSetup(100, "BUY", setupCandles(10, 100), 100000, 0.01); setup != nil {
		t.Fatalf("got %+v, want nil with 10 candles", setup)
	}
}

func close2(a, b float64) bool {
	d := a - b
	return d > -0.02 && d < 0.02
}
