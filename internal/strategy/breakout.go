package strategy

import "SignalDesk/internal/domain/models"

// VolatilityBreakout pairs a Bollinger squeeze with ADX conviction, a
// stochastic cross in an extreme zone, and a 2x volume surge.
type VolatilityBreakout struct{}

func (VolatilityBreakout) ID() string   { return "volatility-breakout-enhanced" }
func (VolatilityBreakout) Name() string { return "Volatility Breakout Enhanced" }

func (s VolatilityBreakout) Evaluate(snap *models.IndicatorSnapshot, _ models.MarketContext) models.Signal {
	if !snap.HasCore() || snap.Bollinger == nil || !models.Finite(snap.ADX, snap.RelVolume) {
		return models.NeutralSignal(s.ID(), s.Name(), "missing Bollinger/ADX/volume inputs")
	}

	var criteria []models.Criterion
	score := 0

	squeeze := snap.Bollinger.Width < 0.10
	criteria = append(criteria, models.Criterion{
		Name:        "BB Squeeze",
		Description: "Bollinger bands contracting < 10%",
		Met:         squeeze,
		Value:       fmtPct(snap.Bollinger.Width),
	})
	if squeeze {
		score += 25
	}

	adxStrong := snap.ADX > 25
	criteria = append(criteria, models.Criterion{
		Name:        "Strong ADX",
		Description: "ADX > 25 shows directional conviction",
		Met:         adxStrong,
		Value:       fmtVal(snap.ADX),
	})
	if adxStrong {
		score += 25
	}

	stochCross := false
	stochValue := "N/A"
	if st := snap.Stochastic; st != nil {
		stochCross = (st.K < 20 && st.K > st.D) || (st.K > 80 && st.K < st.D)
		stochValue = "K: " + fmtVal(st.K) + " D: " + fmtVal(st.D)
	}
	criteria = append(criteria, models.Criterion{
		Name:        "Stochastic Signal",
		Description: "Stochastic crossing in oversold/overbought zone",
		Met:         stochCross,
		Value:       stochValue,
	})
	if stochCross {
		score += 25
	}

	volumeSurge := snap.RelVolume > 2.0
	criteria = append(criteria, models.Criterion{
		Name:        "Volume Breakout",
		Description: "Volume surge > 200% confirms breakout",
		Met:         volumeSurge,
		Value:       fmtRatio(snap.RelVolume),
	})
	if volumeSurge {
		score += 25
	}

	score = clampScore(score)
	signal := "NO SIGNAL"
	switch {
	case score >= 90:
		signal = models.SignalBreakout
	case score >= 75:
		signal = models.SignalBuy
	case score >= 50:
		signal = models.SignalWatch
	}

	return models.Signal{
		ID:       s.ID(),
		Name:     s.Name(),
		Type:     "Breakout + Volume",
		Score:    score,
		Signal:   signal,
		Plan:     longPlan(snap.CurrentPrice, 0.03, 2.5),
		Criteria: criteria,
	}
}
