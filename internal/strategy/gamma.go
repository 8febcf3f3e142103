package strategy

import (
	"math"

	"SignalDesk/internal/domain/models"
)

// GammaExposure reads dealer positioning. Positive net gamma dampens moves
// (mean reversion), negative net gamma amplifies them (volatility). A high
// score here flags a volatile regime, not a directional buy.
type GammaExposure struct{}

func (GammaExposure) ID() string   { return "gamma-exposure" }
func (GammaExposure) Name() string { return "Gamma Exposure (GEX)" }

func (s GammaExposure) Evaluate(snap *models.IndicatorSnapshot, mkt models.MarketContext) models.Signal {
	if !snap.HasCore() {
		return models.NeutralSignal(s.ID(), s.Name(), "missing price input")
	}
	if mkt.GEX == 0 && mkt.ZeroGamma == 0 {
		return models.NeutralSignal(s.ID(), s.Name(), "no gamma exposure data available")
	}

	var criteria []models.Criterion
	score := 0

	negative := mkt.GEX < 0
	criteria = append(criteria, models.Criterion{
		Name:        "Negative GEX Regime",
		Description: "Dealers are short gamma (accelerates volatility)",
		Met:         negative,
		Value:       fmtVal(mkt.GEX) + "B",
	})
	if negative {
		score += 50
	}

	belowFlip := mkt.ZeroGamma > 0 && snap.CurrentPrice < mkt.ZeroGamma
	criteria = append(criteria, models.Criterion{
		Name:        "Below Flip Point",
		Description: "Price is in bearish gamma territory",
		Met:         belowFlip,
		Value:       fmtVs(snap.CurrentPrice, mkt.ZeroGamma),
	})
	if belowFlip {
		score += 25
	}

	significant := math.Abs(mkt.GEX) > 1
	criteria = append(criteria, models.Criterion{
		Name:        "Significant Exposure",
		Description: "|GEX| > $1B indicates heavy dealer positioning",
		Met:         significant,
		Value:       fmtVal(math.Abs(mkt.GEX)) + "B",
	})
	if significant {
		score += 25
	}

	signal := models.SignalNeutral
	typ := "Mean Reversion"
	if mkt.GEX > 1 {
		signal = "LOW VOLATILITY"
	} else if mkt.GEX < -1 {
		signal = "HIGH VOLATILITY"
		typ = "Trend/Breakout"
	}

	var plan *models.TradePlan
	if mkt.ZeroGamma > 0 && mkt.ZeroGamma != snap.CurrentPrice {
		// Symmetric plan around the gamma flip level.
		plan = &models.TradePlan{
			EntryZone:  snap.CurrentPrice,
			StopLoss:   mkt.ZeroGamma,
			Target:     snap.CurrentPrice + (snap.CurrentPrice - mkt.ZeroGamma),
			RiskReward: 1.0,
		}
	}

	return models.Signal{
		ID:       s.ID(),
		Name:     s.Name(),
		Type:     typ,
		Score:    clampScore(score),
		Signal:   signal,
		Plan:     plan,
		Criteria: criteria,
	}
}
