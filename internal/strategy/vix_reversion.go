package strategy

import "SignalDesk/internal/domain/models"

// VIXReversion is a contrarian market call: buys when the VIX is extended
// high (fear), sells when it is extended low (complacency). It reads the
// derived VIX stats from MarketContext, not the symbol's own candles.
type VIXReversion struct{}

func (VIXReversion) ID() string   { return "vix-reversion" }
func (VIXReversion) Name() string { return "VIX Reversion (Connors)" }

func (s VIXReversion) Evaluate(_ *models.IndicatorSnapshot, mkt models.MarketContext) models.Signal {
	if mkt.VIX == 0 || mkt.VIXSMA10 == 0 {
		return models.NeutralSignal(s.ID(), s.Name(), "no VIX history available")
	}

	var criteria []models.Criterion
	score := 0

	deviation := (mkt.VIX - mkt.VIXSMA10) / mkt.VIXSMA10
	stretchedHigh := deviation > 0.10
	stretchedLow := deviation < -0.10
	criteria = append(criteria, models.Criterion{
		Name:        "SMA Deviation",
		Description: "VIX 10%+ away from its 10-SMA marks an extreme",
		Met:         stretchedHigh || stretchedLow,
		Value:       fmtPct(deviation),
	})
	if stretchedHigh || stretchedLow {
		score += 40
	}

	rsiHigh := mkt.VIXRSI5 > 70
	rsiLow := mkt.VIXRSI5 > 0 && mkt.VIXRSI5 < 30
	criteria = append(criteria, models.Criterion{
		Name:        "VIX RSI Extreme",
		Description: "VIX RSI(5) overbought/oversold flags a turn",
		Met:         rsiHigh || rsiLow,
		Value:       fmtVal(mkt.VIXRSI5),
	})
	if rsiHigh || rsiLow {
		score += 30
	}

	// High VIX extremes mean buy the market; low extremes mean sell it.
	signal := models.SignalNeutral
	if score >= 60 {
		if stretchedHigh || rsiHigh {
			signal = models.SignalBuy
		} else if stretchedLow || rsiLow {
			signal = models.SignalSell
		}
	}

	return models.Signal{
		ID:       s.ID(),
		Name:     s.Name(),
		Type:     "Contrarian",
		Score:    clampScore(score),
		Signal:   signal,
		Criteria: criteria,
	}
}
