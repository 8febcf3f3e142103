package strategy

import (
	"math"

	"SignalDesk/internal/domain/models"
)

// VWAPMeanReversion catches the snapback to the institutional benchmark:
// price stretched from VWAP, RSI at an extreme, sitting on a Bollinger band,
// with the larger trend still up.
type VWAPMeanReversion struct{}

func (VWAPMeanReversion) ID() string   { return "vwap-mean-reversion" }
func (VWAPMeanReversion) Name() string { return "VWAP Mean Reversion" }

func (s VWAPMeanReversion) Evaluate(snap *models.IndicatorSnapshot, _ models.MarketContext) models.Signal {
	if !snap.HasCore() || !models.Finite(snap.VWAP, snap.RSI, snap.SMA200) || snap.Bollinger == nil {
		return models.NeutralSignal(s.ID(), s.Name(), "missing VWAP/RSI/Bollinger/SMA200 inputs")
	}

	var criteria []models.Criterion
	score := 0

	deviation := math.Abs(snap.CurrentPrice-snap.VWAP) / snap.VWAP
	deviates := deviation > 0.02
	criteria = append(criteria, models.Criterion{
		Name:        "VWAP Deviation",
		Description: "Price > 2% from VWAP (reversion zone)",
		Met:         deviates,
		Value:       fmtPct(deviation),
	})
	if deviates {
		score += 25
	}

	rsiExtreme := snap.RSI < 30 || snap.RSI > 70
	criteria = append(criteria, models.Criterion{
		Name:        "RSI Extreme",
		Description: "RSI in oversold/overbought zone",
		Met:         rsiExtreme,
		Value:       fmtVal(snap.RSI),
	})
	if rsiExtreme {
		score += 25
	}

	atBand := snap.CurrentPrice <= snap.Bollinger.Lower || snap.CurrentPrice >= snap.Bollinger.Upper
	criteria = append(criteria, models.Criterion{
		Name:        "At Key Level",
		Description: "Price at Bollinger band extremes",
		Met:         atBand,
		Value:       fmtVs(snap.Bollinger.Lower, snap.Bollinger.Upper),
	})
	if atBand {
		score += 25
	}

	trendContext := snap.CurrentPrice > snap.SMA200
	criteria = append(criteria, models.Criterion{
		Name:        "Trend Context",
		Description: "Above 200 SMA (buying dip in uptrend)",
		Met:         trendContext,
		Value:       fmtVs(snap.CurrentPrice, snap.SMA200),
	})
	if trendContext {
		score += 25
	}

	score = clampScore(score)
	signal := models.SignalWait
	switch {
	case score >= 90:
		signal = models.SignalStrongBuy
	case score >= 75:
		signal = models.SignalBuy
	case score >= 50:
		signal = models.SignalWatch
	}

	// Stop sits at VWAP, target is a 1.5x reversion of the stretch.
	dev := math.Abs(snap.CurrentPrice - snap.VWAP)
	plan := &models.TradePlan{
		EntryZone:  snap.CurrentPrice,
		StopLoss:   snap.CurrentPrice - dev,
		Target:     snap.CurrentPrice + dev*1.5,
		RiskReward: 1.5,
	}

	return models.Signal{
		ID:       s.ID(),
		Name:     s.Name(),
		Type:     "Mean Reversion",
		Score:    score,
		Signal:   signal,
		Plan:     plan,
		Criteria: criteria,
	}
}
