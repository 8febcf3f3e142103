package strategy

import (
	"math"

	"SignalDesk/internal/domain/models"
)

// VWAPBounce trades defended tests of the session VWAP: price near the
// level, a volume spike, and the short-term trend deciding direction.
type VWAPBounce struct{}

func (VWAPBounce) ID() string   { return "vwap-bounce" }
func (VWAPBounce) Name() string { return "VWAP Bounce" }

func (s VWAPBounce) Evaluate(snap *models.IndicatorSnapshot, _ models.MarketContext) models.Signal {
	if !snap.HasCore() || !models.Finite(snap.VWAP, snap.SMA20, snap.RelVolume) {
		return models.NeutralSignal(s.ID(), s.Name(), "missing VWAP/SMA20/volume inputs")
	}

	var criteria []models.Criterion
	score := 0

	dist := math.Abs(snap.CurrentPrice-snap.VWAP) / snap.VWAP
	nearVWAP := dist < 0.005
	criteria = append(criteria, models.Criterion{
		Name:        "Near VWAP",
		Description: "Price is within 0.5% of VWAP",
		Met:         nearVWAP,
		Value:       fmtPct(dist),
	})
	if nearVWAP {
		score += 30
	}

	volSpike := snap.RelVolume > 1.5
	criteria = append(criteria, models.Criterion{
		Name:        "Volume Spike",
		Description: "Volume is spiking > 1.5x average",
		Met:         volSpike,
		Value:       fmtRatio(snap.RelVolume),
	})
	if volSpike {
		score += 20
	}

	trendUp := snap.CurrentPrice > snap.SMA20
	criteria = append(criteria, models.Criterion{
		Name:        "Trend Alignment",
		Description: "Price above SMA20",
		Met:         trendUp,
		Value:       fmtVs(snap.CurrentPrice, snap.SMA20),
	})
	if trendUp {
		score += 20
	}

	signal := models.SignalNeutral
	if nearVWAP && volSpike {
		score += 30
		if trendUp {
			signal = models.SignalBuy
		} else {
			signal = models.SignalSell
		}
	}

	var plan *models.TradePlan
	if signal == models.SignalBuy {
		plan = &models.TradePlan{
			EntryZone:  snap.VWAP,
			StopLoss:   snap.VWAP * 0.99,
			Target:     snap.VWAP * 1.02,
			RiskReward: 2.0,
		}
	} else if signal == models.SignalSell {
		plan = &models.TradePlan{
			EntryZone:  snap.VWAP,
			StopLoss:   snap.VWAP * 1.01,
			Target:     snap.VWAP * 0.98,
			RiskReward: 2.0,
		}
	}

	return models.Signal{
		ID:       s.ID(),
		Name:     s.Name(),
		Type:     "Reversion",
		Score:    clampScore(score),
		Signal:   signal,
		Plan:     plan,
		Criteria: criteria,
	}
}
