package strategy

import (
	"math"

	"SignalDesk/internal/domain/models"
)

// SwingPullback enters on pullbacks to the 20 SMA inside an established
// trend (price > SMA50 > SMA200 or the mirror image).
type SwingPullback struct{}

func (SwingPullback) ID() string   { return "swing-pullback" }
func (SwingPullback) Name() string { return "Swing Trend Pullback" }

func (s SwingPullback) Evaluate(snap *models.IndicatorSnapshot, _ models.MarketContext) models.Signal {
	if !snap.HasCore() || !models.Finite(snap.SMA20, snap.SMA50, snap.SMA200, snap.RSI) {
		return models.NeutralSignal(s.ID(), s.Name(), "insufficient data for swing analysis (need 200+ periods)")
	}

	price := snap.CurrentPrice
	uptrend := price > snap.SMA50 && snap.SMA50 > snap.SMA200
	downtrend := price < snap.SMA50 && snap.SMA50 < snap.SMA200
	if !uptrend && !downtrend {
		return models.Signal{
			ID:     s.ID(),
			Name:   s.Name(),
			Type:   "Swing",
			Score:  0,
			Signal: models.SignalNeutral,
			Criteria: []models.Criterion{
				{Name: "Trend Check", Description: "No clear trend detected", Met: false},
			},
		}
	}

	var criteria []models.Criterion
	score := 0

	dist := math.Abs(price-snap.SMA20) / snap.SMA20
	nearSMA20 := dist < 0.02
	criteria = append(criteria, models.Criterion{
		Name:        "Pullback to SMA20",
		Description: "Price pulled back to key support/resistance",
		Met:         nearSMA20,
		Value:       fmtPct(dist),
	})
	if nearSMA20 {
		score += 40
	}

	momentumReset := snap.RSI > 40 && snap.RSI < 60
	criteria = append(criteria, models.Criterion{
		Name:        "Momentum Reset",
		Description: "RSI cooled off, ready for next leg",
		Met:         momentumReset,
		Value:       fmtVal(snap.RSI),
	})
	if momentumReset {
		score += 30
	}

	strongTrend := snap.ADX > 25
	criteria = append(criteria, models.Criterion{
		Name:        "Strong Trend",
		Description: "ADX confirms strong trend",
		Met:         strongTrend,
		Value:       fmtVal(snap.ADX),
	})
	if strongTrend {
		score += 30
	}

	score = clampScore(score)
	signal := models.SignalNeutral
	if score >= 70 {
		if uptrend {
			signal = "SWING BUY"
		} else {
			signal = "SWING SELL"
		}
	}

	var plan *models.TradePlan
	if signal == "SWING BUY" {
		risk := price - snap.SMA50
		plan = &models.TradePlan{
			EntryZone:  snap.SMA20,
			StopLoss:   snap.SMA50, // wide stop for swing
			Target:     price + risk*2,
			RiskReward: 2.0,
		}
	} else if signal == "SWING SELL" {
		risk := snap.SMA50 - price
		plan = &models.TradePlan{
			EntryZone:  snap.SMA20,
			StopLoss:   snap.SMA50,
			Target:     price - risk*2,
			RiskReward: 2.0,
		}
	}

	return models.Signal{
		ID:       s.ID(),
		Name:     s.Name(),
		Type:     "Swing",
		Score:    score,
		Signal:   signal,
		Plan:     plan,
		Criteria: criteria,
	}
}
