// Package strategy contains the signal scorers, the per-timeframe selector,
// and the multi-timeframe aggregator. Every scorer is a pure function of the
// snapshot and market context: no clock reads, no randomness, no state.
package strategy

import (
	"fmt"

	"SignalDesk/internal/domain/models"
)

// Scorer grades one indicator snapshot into a Signal. Implementations must
// never panic on missing data; they return a neutral zero-score signal with
// an explanatory criterion instead.
type Scorer interface {
	ID() string
	Name() string
	Evaluate(snap *models.IndicatorSnapshot, mkt models.MarketContext) models.Signal
}

// Thresholds shared by the classic three-criterion scorers.
const (
	scoreStrongBuy = 90
	scoreBuy       = 67
	scoreWatch     = 34
)

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// longPlan builds a long-side trade plan risking riskPct of price with the
// given reward multiple.
func longPlan(price, riskPct, rewardMult float64) *models.TradePlan {
	risk := price * riskPct
	return &models.TradePlan{
		EntryZone:  price,
		StopLoss:   price - risk,
		Target:     price + risk*rewardMult,
		RiskReward: rewardMult,
	}
}

func fmtPrice(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

func fmtVs(a, b float64) string {
	return fmt.Sprintf("$%.2f vs $%.2f", a, b)
}

func fmtPct(ratio float64) string {
	return fmt.Sprintf("%.1f%%", ratio*100)
}

func fmtRatio(v float64) string {
	return fmt.Sprintf("%.2fx", v)
}

func fmtVal(v float64) string {
	return fmt.Sprintf("%.1f", v)
}
