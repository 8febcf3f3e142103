package strategy

import "SignalDesk/internal/domain/models"

// VolatilitySqueeze looks for contracting Bollinger bands with directional
// energy building and volume confirming, the setup that precedes expansion.
type VolatilitySqueeze struct{}

func (VolatilitySqueeze) ID() string   { return "volatility-squeeze" }
func (VolatilitySqueeze) Name() string { return "Volatility Squeeze" }

const (
	squeezeBandWidth = 0.10
	squeezeADX       = 20.0
	squeezeRelVol    = 1.5
)

func (s VolatilitySqueeze) Evaluate(snap *models.IndicatorSnapshot, _ models.MarketContext) models.Signal {
	if !snap.HasCore() || snap.Bollinger == nil || !models.Finite(snap.ADX, snap.RelVolume) {
		return models.NeutralSignal(s.ID(), s.Name(), "missing Bollinger/ADX/volume inputs")
	}

	var criteria []models.Criterion
	score := 0

	tight := snap.Bollinger.Width < squeezeBandWidth
	criteria = append(criteria, models.Criterion{
		Name:        "Bands Contracting",
		Description: "Bollinger band width < 10% (squeeze forming)",
		Met:         tight,
		Value:       fmtPct(snap.Bollinger.Width),
	})
	if tight {
		score += 34
	}

	adxReady := snap.ADX > squeezeADX
	criteria = append(criteria, models.Criterion{
		Name:        "ADX Energy",
		Description: "ADX > 20 indicates directional energy building",
		Met:         adxReady,
		Value:       fmtVal(snap.ADX),
	})
	if adxReady {
		score += 33
	}

	volSpike := snap.RelVolume > squeezeRelVol
	criteria = append(criteria, models.Criterion{
		Name:        "Volume Surge",
		Description: "Relative volume > 150% of average",
		Met:         volSpike,
		Value:       fmtRatio(snap.RelVolume),
	})
	if volSpike {
		score += 33
	}

	score = clampScore(score)
	signal := "NO SIGNAL"
	switch {
	case score >= scoreStrongBuy:
		signal = models.SignalBuy
	case score >= scoreBuy:
		signal = "BUY WATCH"
	case score >= scoreWatch:
		signal = models.SignalWatch
	}

	return models.Signal{
		ID:       s.ID(),
		Name:     s.Name(),
		Type:     "Breakout",
		Score:    score,
		Signal:   signal,
		Plan:     longPlan(snap.CurrentPrice, 0.025, 2.0),
		Criteria: criteria,
	}
}
