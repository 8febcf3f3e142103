package strategy

import "SignalDesk/internal/domain/models"

// EMAMomentumConfluence stacks four complementary checks: short-term EMA
// trend, healthy RSI, volume confirmation, and VWAP support.
type EMAMomentumConfluence struct{}

func (EMAMomentumConfluence) ID() string   { return "ema-momentum-confluence" }
func (EMAMomentumConfluence) Name() string { return "EMA Momentum Confluence" }

func (s EMAMomentumConfluence) Evaluate(snap *models.IndicatorSnapshot, _ models.MarketContext) models.Signal {
	if !snap.HasCore() || !models.Finite(snap.EMA8, snap.EMA21, snap.RSI, snap.RelVolume, snap.VWAP) {
		return models.NeutralSignal(s.ID(), s.Name(), "missing EMA/RSI/volume/VWAP inputs")
	}

	var criteria []models.Criterion
	score := 0

	emaUptrend := snap.EMA8 > snap.EMA21
	criteria = append(criteria, models.Criterion{
		Name:        "EMA Crossover",
		Description: "EMA 8 above EMA 21 confirms short-term momentum",
		Met:         emaUptrend,
		Value:       fmtVs(snap.EMA8, snap.EMA21),
	})
	if emaUptrend {
		score += 25
	}

	rsiHealthy := snap.RSI >= 40 && snap.RSI <= 60
	criteria = append(criteria, models.Criterion{
		Name:        "Healthy RSI",
		Description: "RSI 40-60 shows momentum without overextension",
		Met:         rsiHealthy,
		Value:       fmtVal(snap.RSI),
	})
	if rsiHealthy {
		score += 25
	}

	volumeConfirm := snap.RelVolume > 1.5
	criteria = append(criteria, models.Criterion{
		Name:        "Volume Confirmation",
		Description: "Volume > 1.5x average validates the move",
		Met:         volumeConfirm,
		Value:       fmtRatio(snap.RelVolume),
	})
	if volumeConfirm {
		score += 25
	}

	aboveVWAP := snap.CurrentPrice > snap.VWAP
	criteria = append(criteria, models.Criterion{
		Name:        "Above VWAP",
		Description: "Trading above institutional average",
		Met:         aboveVWAP,
		Value:       fmtVs(snap.CurrentPrice, snap.VWAP),
	})
	if aboveVWAP {
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

	return models.Signal{
		ID:       s.ID(),
		Name:     s.Name(),
		Type:     "Trend + Momentum",
		Score:    score,
		Signal:   signal,
		Plan:     longPlan(snap.CurrentPrice, 0.02, 2.0),
		Criteria: criteria,
	}
}
