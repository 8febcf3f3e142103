package strategy

import (
	"testing"
	"time"

	"SignalDesk/internal/domain/models"
)

func bullishSnapshot() *models.IndicatorSnapshot {
	return &models.IndicatorSnapshot{
		Symbol:       "SPY",
		Timeframe:    "1d",
		Timestamp:    time.Date(2024, 3, 4, 20, 0, 0, 0, time.UTC),
		CurrentPrice: 510,
		SMA20:        500,
		SMA50:        495,
		SMA200:       470,
		EMA8:         508,
		EMA21:        504,
		EMA55:        498,
		RSI:          58,
		ADX:          27,
		Stochastic:   &models.StochasticPair{K: 62, D: 55},
		Bollinger:    &models.BollingerBands{Upper: 515, Middle: 505, Lower: 495, Width: 0.04},
		ATR:          4.2,
		RelVolume:    1.8,
		VWAP:         506,
	}
}

func TestInstitutionalTrendScoresAllCriteria(t *testing.T) {
	sig := InstitutionalTrend{}.Evaluate(bullishSnapshot(), models.MarketContext{})
	if sig.Score != 100 {
		t.Fatalf("score = %d, want 100", sig.Score)
	}
	if sig.Signal != models.SignalStrongBuy {
		t.Fatalf("signal = %q, want %q", sig.Signal, models.SignalStrongBuy)
	}
	if sig.Plan == nil {
		t.Fatal("expected a trade plan on a full-score signal")
	}
	if sig.Plan.StopLoss >= sig.Plan.EntryZone || sig.Plan.Target <= sig.Plan.EntryZone {
		t.Fatalf("malformed long plan: %+v", sig.Plan)
	}
}

func TestInstitutionalTrendLabelMonotonic(t *testing.T) {
	rank := map[string]int{
		models.SignalWait:      0,
		models.SignalWatch:     1,
		models.SignalBuy:       2,
		models.SignalStrongBuy: 3,
	}

	// Degrade one criterion at a time and check labels never strengthen
	// as the score falls.
	snaps := []*models.IndicatorSnapshot{bullishSnapshot(), bullishSnapshot(), bullishSnapshot(), bullishSnapshot()}
	snaps[1].RSI = 80        // momentum criterion fails
	snaps[2].RSI = 80        // momentum and VWAP fail
	snaps[2].VWAP = 520
	snaps[3].RSI = 80        // all three fail
	snaps[3].VWAP = 520
	snaps[3].SMA200 = 530

	prevScore, prevRank := 101, 4
	for i, snap := range snaps {
		sig := InstitutionalTrend{}.Evaluate(snap, models.MarketContext{})
		if sig.Score > prevScore {
			t.Fatalf("case %d: score rose from %d to %d while criteria degraded", i, prevScore, sig.Score)
		}
		r, ok := rank[sig.Signal]
		if !ok {
			t.Fatalf("case %d: unexpected label %q", i, sig.Signal)
		}
		if r > prevRank {
			t.Fatalf("case %d: label strengthened to %q as score fell", i, sig.Signal)
		}
		prevScore, prevRank = sig.Score, r
	}
}

func TestScorersNeutralOnMissingData(t *testing.T) {
	empty := &models.IndicatorSnapshot{Symbol: "SPY", Timeframe: "15m"}
	all := append(IntradayScorers(), SwingScorers()...)
	for _, sc := range all {
		sig := sc.Evaluate(empty, models.MarketContext{})
		if sig.Score != 0 {
			t.Errorf("%s: score = %d on empty snapshot, want 0", sc.ID(), sig.Score)
		}
		if sig.Signal != models.SignalNeutral {
			t.Errorf("%s: signal = %q on empty snapshot, want NEUTRAL", sc.ID(), sig.Signal)
		}
		if len(sig.Criteria) == 0 {
			t.Errorf("%s: neutral signal carries no explanatory criterion", sc.ID())
		}
	}
}

func TestScorersScoreWithinBounds(t *testing.T) {
	snap := bullishSnapshot()
	mkt := models.MarketContext{VIX: 28, GEX: -1.4e9, ZeroGamma: 515, VIXSMA10: 24, VIXRSI5: 78}
	all := append(IntradayScorers(), SwingScorers()...)
	for _, sc := range all {
		sig := sc.Evaluate(snap, mkt)
		if sig.Score < 0 || sig.Score > 100 {
			t.Errorf("%s: score %d out of [0,100]", sc.ID(), sig.Score)
		}
	}
}

func TestScorerDeterminism(t *testing.T) {
	snap := bullishSnapshot()
	mkt := models.MarketContext{VIX: 28}
	for _, sc := range SwingScorers() {
		a := sc.Evaluate(snap, mkt)
		b := sc.Evaluate(snap, mkt)
		if a.Score != b.Score || a.Signal != b.Signal {
			t.Errorf("%s: repeated evaluation diverged: %d/%q vs %d/%q",
				sc.ID(), a.Score, a.Signal, b.Score, b.Signal)
		}
	}
}
