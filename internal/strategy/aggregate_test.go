package strategy

import (
	"testing"
	"time"

	"SignalDesk/internal/domain/models"
	"SignalDesk/internal/domain/repository"
)

func plannedSignal(id string, score int, label string, entry, stop, target float64) models.Signal {
	return models.Signal{
		ID:     id,
		Name:   id,
		Score:  score,
		Signal: label,
		Plan:   &models.TradePlan{EntryZone: entry, StopLoss: stop, Target: target, RiskReward: 2},
	}
}

func TestAggregateWeightedScore(t *testing.T) {
	at := time.Date(2024, 3, 4, 20, 0, 0, 0, time.UTC)
	ranked := map[repository.Timeframe][]models.Signal{
		repository.TF1d:  {plannedSignal("d", 90, models.SignalStrongBuy, 510, 498, 530)},
		repository.TF1h:  {plannedSignal("h", 80, models.SignalBuy, 509, 502, 524)},
		repository.TF15m: {plannedSignal("m", 70, models.SignalBuy, 508, 504, 518)},
	}

	dec := Aggregate("SPY", ranked, at)

	if dec.FinalScore != 83 {
		t.Fatalf("finalScore = %d, want 83 (0.5*90 + 0.3*80 + 0.2*70)", dec.FinalScore)
	}
	if dec.FinalSignal != DecisionBuy {
		t.Fatalf("finalSignal = %q, want %q (3 bullish but score < 85)", dec.FinalSignal, DecisionBuy)
	}
	if dec.BestStrategy.ID != "d" {
		t.Fatalf("bestStrategy = %q, want the 1d signal", dec.BestStrategy.ID)
	}
	if !dec.Timestamp.Equal(at) {
		t.Fatalf("timestamp = %v, want %v", dec.Timestamp, at)
	}
}

func TestAggregateCombinedPlan(t *testing.T) {
	ranked := map[repository.Timeframe][]models.Signal{
		repository.TF1d:  {plannedSignal("d", 92, models.SignalStrongBuy, 510, 498, 530)},
		repository.TF1h:  {plannedSignal("h", 88, models.SignalStrongBuy, 509, 502, 524)},
		repository.TF15m: {plannedSignal("m", 85, models.SignalBuy, 508, 504, 518)},
	}

	dec := Aggregate("SPY", ranked, time.Now())

	if dec.FinalSignal != DecisionStrongBuy {
		t.Fatalf("finalSignal = %q, want %q", dec.FinalSignal, DecisionStrongBuy)
	}
	if dec.EntryPrice != 508 {
		t.Fatalf("entry = %v, want shortest timeframe's 508", dec.EntryPrice)
	}
	if dec.StopLoss != 498 {
		t.Fatalf("stop = %v, want minimum stop 498", dec.StopLoss)
	}
	wantTarget := (530.0 + 524.0 + 518.0) / 3
	if dec.TargetPrice != wantTarget {
		t.Fatalf("target = %v, want mean %v", dec.TargetPrice, wantTarget)
	}
}

func TestAggregateHoldWhenNothingBullish(t *testing.T) {
	ranked := map[repository.Timeframe][]models.Signal{
		repository.TF1d: {{ID: "d", Name: "d", Score: 95, Signal: models.SignalSell}},
		// 1h and 15m produced nothing at all.
	}

	dec := Aggregate("SPY", ranked, time.Now())

	if dec.FinalSignal != DecisionHold {
		t.Fatalf("finalSignal = %q, want HOLD with zero bullish timeframes", dec.FinalSignal)
	}
	if len(dec.Timeframes) != 3 {
		t.Fatalf("got %d timeframe rows, want 3 including placeholders", len(dec.Timeframes))
	}
	for _, tf := range dec.Timeframes {
		if tf.Timeframe != string(repository.TF1d) && tf.Score != 0 {
			t.Fatalf("placeholder timeframe %s has score %d, want 0", tf.Timeframe, tf.Score)
		}
	}
}

func TestAggregateWatchOnSingleBullish(t *testing.T) {
	ranked := map[repository.Timeframe][]models.Signal{
		repository.TF1d: {plannedSignal("d", 90, models.SignalStrongBuy, 510, 498, 530)},
	}

	dec := Aggregate("SPY", ranked, time.Now())

	// 90*0.5 = 45 blended, one bullish timeframe.
	if dec.FinalScore != 45 {
		t.Fatalf("finalScore = %d, want 45", dec.FinalScore)
	}
	if dec.FinalSignal != DecisionWatch {
		t.Fatalf("finalSignal = %q, want %q", dec.FinalSignal, DecisionWatch)
	}
	if dec.EntryPrice != 510 {
		t.Fatalf("entry = %v, want fallback to the only plan's 510", dec.EntryPrice)
	}
}

func TestAggregateEmptyScanKeepsPlaceholderStrategy(t *testing.T) {
	dec := Aggregate("SPY", nil, time.Now())

	if dec.FinalSignal != DecisionHold {
		t.Fatalf("finalSignal = %q, want HOLD for an empty scan", dec.FinalSignal)
	}
	if dec.BestStrategy.ID == "" || dec.BestStrategy.Name == "" {
		t.Fatalf("bestStrategy = %+v, want the named neutral placeholder", dec.BestStrategy)
	}
	if dec.BestStrategy.Signal != models.SignalNeutral {
		t.Fatalf("bestStrategy label = %q, want %q", dec.BestStrategy.Signal, models.SignalNeutral)
	}
}
