package strategy

import "SignalDesk/internal/domain/models"

// InstitutionalTrend follows the big money: price above the 200 SMA and the
// session VWAP with RSI in the bullish zone.
type InstitutionalTrend struct{}

func (InstitutionalTrend) ID() string   { return "institutional-trend" }
func (InstitutionalTrend) Name() string { return "Institutional Trend" }

func (s InstitutionalTrend) Evaluate(snap *models.IndicatorSnapshot, _ models.MarketContext) models.Signal {
	if !snap.HasCore() || !models.Finite(snap.SMA200, snap.VWAP, snap.RSI) {
		return models.NeutralSignal(s.ID(), s.Name(), "missing SMA200/VWAP/RSI inputs")
	}

	var criteria []models.Criterion
	score := 0

	aboveSMA200 := snap.CurrentPrice > snap.SMA200
	criteria = append(criteria, models.Criterion{
		Name:        "Above 200 SMA",
		Description: "Price confirms long-term uptrend",
		Met:         aboveSMA200,
		Value:       fmtVs(snap.CurrentPrice, snap.SMA200),
	})
	if aboveSMA200 {
		score += 33
	}

	aboveVWAP := snap.CurrentPrice > snap.VWAP
	criteria = append(criteria, models.Criterion{
		Name:        "Above VWAP",
		Description: "Trading above institutional average price",
		Met:         aboveVWAP,
		Value:       fmtVs(snap.CurrentPrice, snap.VWAP),
	})
	if aboveVWAP {
		score += 34
	}

	rsiBullish := snap.RSI >= 50 && snap.RSI <= 70
	criteria = append(criteria, models.Criterion{
		Name:        "RSI Bullish Zone",
		Description: "Momentum strong but not overbought (50-70)",
		Met:         rsiBullish,
		Value:       fmtVal(snap.RSI),
	})
	if rsiBullish {
		score += 33
	}

	score = clampScore(score)
	signal := models.SignalWait
	switch {
	case score >= scoreStrongBuy:
		signal = models.SignalStrongBuy
	case score >= scoreBuy:
		signal = models.SignalBuy
	case score >= scoreWatch:
		signal = models.SignalWatch
	}

	return models.Signal{
		ID:       s.ID(),
		Name:     s.Name(),
		Type:     "Trend Following",
		Score:    score,
		Signal:   signal,
		Plan:     longPlan(snap.CurrentPrice, 0.02, 2.0),
		Criteria: criteria,
	}
}
