package strategy

import (
	"math"

	"SignalDesk/internal/domain/models"
)

// GoldenSetup aligns the daily trend with an intraday pullback to VWAP and
// waits for a volume trigger before acting.
type GoldenSetup struct{}

func (GoldenSetup) ID() string   { return "golden-setup" }
func (GoldenSetup) Name() string { return "The Golden Setup" }

func (s GoldenSetup) Evaluate(snap *models.IndicatorSnapshot, mkt models.MarketContext) models.Signal {
	if !snap.HasCore() || !models.Finite(snap.VWAP, snap.RSI) {
		return models.NeutralSignal(s.ID(), s.Name(), "missing VWAP/RSI inputs")
	}

	var criteria []models.Criterion
	score := 0
	price := snap.CurrentPrice
	bullish, bearish := snap.DailyBullish, snap.DailyBearish

	aligned := bullish || bearish
	alignValue := models.SignalNeutral
	if bullish {
		alignValue = "BULLISH"
	} else if bearish {
		alignValue = "BEARISH"
	}
	criteria = append(criteria, models.Criterion{
		Name:        "Daily Trend Alignment",
		Description: "Daily close versus SMA20 sets the bias",
		Met:         aligned,
		Value:       alignValue,
	})
	if aligned {
		score += 30
	}

	dist := math.Abs(price-snap.VWAP) / snap.VWAP
	nearVWAP := dist < 0.008
	criteria = append(criteria, models.Criterion{
		Name:        "VWAP Interaction",
		Description: "Price is testing VWAP",
		Met:         nearVWAP,
		Value:       fmtPct(dist),
	})
	if nearVWAP {
		score += 20
	}

	volTrigger := snap.RelVolume > 1.5
	criteria = append(criteria, models.Criterion{
		Name:        "Volume Trigger",
		Description: "RVOL > 1.5 indicates institutional activity",
		Met:         volTrigger,
		Value:       fmtRatio(snap.RelVolume),
	})
	if volTrigger {
		score += 20
	}

	momentum := (bullish && snap.RSI > 40 && snap.RSI < 75) ||
		(bearish && snap.RSI < 60 && snap.RSI > 25)
	criteria = append(criteria, models.Criterion{
		Name:        "Momentum Health",
		Description: "RSI supports the directional bias",
		Met:         momentum,
		Value:       fmtVal(snap.RSI),
	})
	if momentum {
		score += 10
	}

	gexAligned := (bullish && mkt.GEX > 0 && nearVWAP) || (bearish && mkt.GEX < 0)
	criteria = append(criteria, models.Criterion{
		Name:        "GEX Regime",
		Description: "Dealer gamma supports the play",
		Met:         gexAligned,
		Value:       fmtVal(mkt.GEX) + "B",
	})
	if gexAligned {
		score += 20
	}

	if snap.SessionPhase == models.PhaseLunch {
		criteria = append(criteria, models.Criterion{
			Name:        "Session Window",
			Description: "Lunch chop degrades pullback entries",
			Met:         false,
			Value:       string(snap.SessionPhase),
		})
		score -= 10
	}

	score = clampScore(score)
	signal := models.SignalNeutral
	switch {
	case score >= 80 && bullish && price > snap.VWAP:
		signal = models.SignalGoldenLong
	case score >= 80 && bearish && price < snap.VWAP:
		signal = "GOLDEN SHORT"
	case score >= 50:
		signal = models.SignalWatch
	}

	var plan *models.TradePlan
	if signal == models.SignalGoldenLong {
		stop := snap.VWAP * 0.99
		plan = &models.TradePlan{
			EntryZone:  snap.VWAP,
			StopLoss:   stop,
			Target:     price + (price-stop)*2,
			RiskReward: 2.0,
		}
	} else if signal == "GOLDEN SHORT" {
		stop := snap.VWAP * 1.01
		plan = &models.TradePlan{
			EntryZone:  snap.VWAP,
			StopLoss:   stop,
			Target:     price - (stop-price)*2,
			RiskReward: 2.0,
		}
	}

	return models.Signal{
		ID:       s.ID(),
		Name:     s.Name(),
		Type:     "Trend Following",
		Score:    score,
		Signal:   signal,
		Plan:     plan,
		Criteria: criteria,
	}
}
