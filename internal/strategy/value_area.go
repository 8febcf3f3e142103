package strategy

import "SignalDesk/internal/domain/models"

// ValueAreaPlay fades rejections at the volume-profile value area edges:
// acceptance back inside the area targets the point of control.
type ValueAreaPlay struct{}

func (ValueAreaPlay) ID() string   { return "value-area-play" }
func (ValueAreaPlay) Name() string { return "Value Area Play" }

func (s ValueAreaPlay) Evaluate(snap *models.IndicatorSnapshot, _ models.MarketContext) models.Signal {
	if !snap.HasCore() || snap.ValueArea == nil || snap.ValueArea.POC == 0 {
		return models.NeutralSignal(s.ID(), s.Name(), "no volume profile available")
	}

	va := snap.ValueArea
	price := snap.CurrentPrice

	var criteria []models.Criterion
	score := 0

	nearVAL := price >= va.Low && price <= va.Low*1.005
	criteria = append(criteria, models.Criterion{
		Name:        "At Value Area Low",
		Description: "Price testing the lower value-area boundary",
		Met:         nearVAL,
		Value:       fmtVs(price, va.Low),
	})
	if nearVAL {
		score += 40
	}

	belowPOC := price < va.POC
	criteria = append(criteria, models.Criterion{
		Name:        "Room to POC",
		Description: "Point of control sits above as a magnet",
		Met:         belowPOC,
		Value:       fmtVs(price, va.POC),
	})
	if belowPOC {
		score += 20
	}

	insideArea := price >= va.Low && price <= va.High
	criteria = append(criteria, models.Criterion{
		Name:        "Inside Value",
		Description: "Price accepted inside the value area",
		Met:         insideArea,
		Value:       fmtVs(va.Low, va.High),
	})
	if insideArea {
		score += 20
	}

	volConfirm := snap.RelVolume > 1.2
	criteria = append(criteria, models.Criterion{
		Name:        "Volume Confirmation",
		Description: "Relative volume > 1.2 validates the test",
		Met:         volConfirm,
		Value:       fmtRatio(snap.RelVolume),
	})
	if volConfirm {
		score += 20
	}

	score = clampScore(score)
	signal := models.SignalNeutral
	switch {
	case score >= 80:
		signal = models.SignalBuy
	case score >= 50:
		signal = models.SignalWatch
	}

	var plan *models.TradePlan
	if signal == models.SignalBuy && va.POC > price && price > va.Low {
		risk := price - va.Low
		reward := va.POC - price
		rr := reward / risk
		if rr >= 1.5 {
			plan = &models.TradePlan{
				EntryZone:  price,
				StopLoss:   va.Low,
				Target:     va.POC,
				RiskReward: rr,
			}
		}
	}
	if plan == nil && signal == models.SignalBuy {
		plan = longPlan(price, 0.01, 2.0)
	}

	return models.Signal{
		ID:       s.ID(),
		Name:     s.Name(),
		Type:     "Auction",
		Score:    score,
		Signal:   signal,
		Plan:     plan,
		Criteria: criteria,
	}
}
