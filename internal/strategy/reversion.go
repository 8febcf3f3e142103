package strategy

import "SignalDesk/internal/domain/models"

// PanicReversion buys irrational fear: VIX spiking, RSI oversold, but the
// long-term trend still intact.
type PanicReversion struct{}

func (PanicReversion) ID() string   { return "panic-reversion" }
func (PanicReversion) Name() string { return "Panic Reversion" }

const vixHighFear = 25.0

func (s PanicReversion) Evaluate(snap *models.IndicatorSnapshot, mkt models.MarketContext) models.Signal {
	if !snap.HasCore() || !models.Finite(snap.RSI, snap.SMA200) {
		return models.NeutralSignal(s.ID(), s.Name(), "missing RSI/SMA200 inputs")
	}

	var criteria []models.Criterion
	score := 0

	marketFear := mkt.VIX > vixHighFear
	criteria = append(criteria, models.Criterion{
		Name:        "Market Fear",
		Description: "VIX > 25 indicates elevated fear",
		Met:         marketFear,
		Value:       fmtVal(mkt.VIX),
	})
	if marketFear {
		score += 34
	}

	oversold := snap.RSI < 30
	criteria = append(criteria, models.Criterion{
		Name:        "RSI Oversold",
		Description: "RSI < 30 indicates oversold conditions",
		Met:         oversold,
		Value:       fmtVal(snap.RSI),
	})
	if oversold {
		score += 33
	}

	trendIntact := snap.CurrentPrice > snap.SMA200
	criteria = append(criteria, models.Criterion{
		Name:        "Trend Intact",
		Description: "Price above 200 SMA, a dip in a bull market",
		Met:         trendIntact,
		Value:       fmtVs(snap.CurrentPrice, snap.SMA200),
	})
	if trendIntact {
		score += 33
	}

	score = clampScore(score)
	signal := "NO SIGNAL"
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
		Type:     "Contrarian",
		Score:    score,
		Signal:   signal,
		Plan:     longPlan(snap.CurrentPrice, 0.03, 2.0),
		Criteria: criteria,
	}
}
