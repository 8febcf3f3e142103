package strategy

import (
	"math"
	"time"

	"SignalDesk/internal/domain/models"
	"SignalDesk/internal/domain/repository"
)

// Decision labels emitted by the aggregator.
const (
	DecisionStrongBuy = "STRONG BUY"
	DecisionBuy       = "BUY"
	DecisionWatch     = "WATCH"
	DecisionHold      = "HOLD"
)

// Aggregate blends the top-ranked Signal of each timeframe into one
// consensus Decision. It is a pure function of its inputs; at is the
// recorded scan timestamp. A timeframe with no surviving signals
// contributes a zero-score neutral placeholder.
func Aggregate(symbol string, ranked map[repository.Timeframe][]models.Signal, at time.Time) models.Decision {
	best := make(map[repository.Timeframe]models.Signal, len(repository.ScanTimeframes))
	for _, tf := range repository.ScanTimeframes {
		if sig, ok := Best(ranked[tf]); ok {
			best[tf] = sig
		} else {
			best[tf] = models.NeutralSignal("none", "No Signal", "no actionable strategy on this timeframe")
		}
	}

	var (
		weighted     float64
		bullishCount int
	)
	// Seed from the first timeframe so an all-neutral scan still carries a
	// named placeholder instead of a zero-value Signal.
	bestOverall := best[repository.ScanTimeframes[0]]
	timeframes := make([]models.TimeframeResult, 0, len(repository.ScanTimeframes))
	for _, tf := range repository.ScanTimeframes {
		sig := best[tf]
		weighted += repository.ConsensusWeights[tf] * float64(sig.Score)
		if sig.IsBullish() {
			bullishCount++
		}
		if sig.Score > bestOverall.Score {
			bestOverall = sig
		}
		timeframes = append(timeframes, models.TimeframeResult{
			Timeframe: string(tf),
			Signal:    sig.Signal,
			Score:     sig.Score,
			Strategy:  sig.Name,
		})
	}
	finalScore := int(math.Round(weighted))

	finalSignal := DecisionHold
	switch {
	case bullishCount >= 3 && finalScore >= 85:
		finalSignal = DecisionStrongBuy
	case bullishCount >= 2 && finalScore >= 70:
		finalSignal = DecisionBuy
	case bullishCount >= 1 && finalScore >= 40:
		finalSignal = DecisionWatch
	}

	entry, stop, target := combinePlans(best)

	return models.Decision{
		Symbol:       symbol,
		Timestamp:    at,
		FinalSignal:  finalSignal,
		FinalScore:   finalScore,
		EntryPrice:   entry,
		StopLoss:     stop,
		TargetPrice:  target,
		Timeframes:   timeframes,
		BestStrategy: bestOverall,
	}
}

// combinePlans merges per-timeframe trade plans: entry from the
// shortest timeframe that has one, the minimum of the per-timeframe
// stops, and the mean of the defined targets.
func combinePlans(best map[repository.Timeframe]models.Signal) (entry, stop, target float64) {
	var (
		targetSum float64
		targetN   int
	)
	for _, tf := range repository.ScanTimeframes {
		plan := best[tf].Plan
		if plan == nil {
			continue
		}
		if entry == 0 && plan.EntryZone > 0 {
			entry = plan.EntryZone
		}
		if plan.StopLoss > 0 && (stop == 0 || plan.StopLoss < stop) {
			stop = plan.StopLoss
		}
		if plan.Target > 0 {
			targetSum += plan.Target
			targetN++
		}
	}
	if targetN > 0 {
		target = targetSum / float64(targetN)
	}
	return entry, stop, target
}
