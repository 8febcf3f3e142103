package strategy

import "SignalDesk/internal/domain/models"

// OrderBlockRetest buys pullbacks into the most recent bullish order
// block, a high-volume down candle whose high was later reclaimed.
type OrderBlockRetest struct{}

func (OrderBlockRetest) ID() string   { return "order-block-retest" }
func (OrderBlockRetest) Name() string { return "Order Block Retest" }

func (s OrderBlockRetest) Evaluate(snap *models.IndicatorSnapshot, _ models.MarketContext) models.Signal {
	if !snap.HasCore() || snap.OrderBlock == nil {
		return models.NeutralSignal(s.ID(), s.Name(), "no order block identified")
	}

	ob := snap.OrderBlock
	price := snap.CurrentPrice

	var criteria []models.Criterion
	score := 0

	inZone := price >= ob.Low && price <= ob.High*1.003
	criteria = append(criteria, models.Criterion{
		Name:        "In Block Zone",
		Description: "Price retesting the order block range",
		Met:         inZone,
		Value:       fmtVs(ob.Low, ob.High),
	})
	if inZone {
		score += 40
	}

	trendOK := snap.SMA50 > 0 && price > snap.SMA50
	criteria = append(criteria, models.Criterion{
		Name:        "Trend Alignment",
		Description: "Price above SMA50 keeps the retest with trend",
		Met:         trendOK,
		Value:       fmtVs(price, snap.SMA50),
	})
	if trendOK {
		score += 30
	}

	vwapOK := snap.VWAP > 0 && price > snap.VWAP
	criteria = append(criteria, models.Criterion{
		Name:        "Above VWAP",
		Description: "Buyers in control intraday",
		Met:         vwapOK,
		Value:       fmtVs(price, snap.VWAP),
	})
	if vwapOK {
		score += 15
	}

	rsiOK := snap.RSI > 0 && snap.RSI > 40 && snap.RSI < 65
	criteria = append(criteria, models.Criterion{
		Name:        "RSI Health",
		Description: "Momentum reset without breaking down",
		Met:         rsiOK,
		Value:       fmtVal(snap.RSI),
	})
	if rsiOK {
		score += 15
	}

	score = clampScore(score)
	signal := models.SignalNeutral
	switch {
	case score >= 70:
		signal = models.SignalBuy
	case score >= 40:
		signal = models.SignalWatch
	}

	var plan *models.TradePlan
	if signal == models.SignalBuy && ob.Low < price {
		stop := ob.Low * 0.998
		risk := price - stop
		if risk > 0 {
			plan = &models.TradePlan{
				EntryZone:  price,
				StopLoss:   stop,
				Target:     price + risk*2,
				RiskReward: 2.0,
			}
		}
	}

	return models.Signal{
		ID:       s.ID(),
		Name:     s.Name(),
		Type:     "Smart Money",
		Score:    score,
		Signal:   signal,
		Plan:     plan,
		Criteria: criteria,
	}
}
