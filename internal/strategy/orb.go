package strategy

import "SignalDesk/internal/domain/models"

// OpeningRangeBreakout trades the break of the first 30 minutes of the
// session. The lunch window gets a penalty: breakouts during the chop fail
// far more often.
type OpeningRangeBreakout struct{}

func (OpeningRangeBreakout) ID() string   { return "orb-strategy" }
func (OpeningRangeBreakout) Name() string { return "Opening Range Breakout" }

func (s OpeningRangeBreakout) Evaluate(snap *models.IndicatorSnapshot, _ models.MarketContext) models.Signal {
	if !snap.HasCore() {
		return models.NeutralSignal(s.ID(), s.Name(), "missing price input")
	}
	or := snap.OpeningRange
	if or == nil || or.Low <= 0 {
		return models.NeutralSignal(s.ID(), s.Name(), "waiting for the opening range to form")
	}

	var criteria []models.Criterion
	score := 0
	price := snap.CurrentPrice

	brokeAbove := price > or.High
	criteria = append(criteria, models.Criterion{
		Name:        "Breakout Above",
		Description: "Price broke above the opening range high",
		Met:         brokeAbove,
		Value:       fmtVs(price, or.High),
	})
	if brokeAbove {
		score += 40
	}

	brokeBelow := price < or.Low
	criteria = append(criteria, models.Criterion{
		Name:        "Breakdown Below",
		Description: "Price broke below the opening range low",
		Met:         brokeBelow,
		Value:       fmtVs(price, or.Low),
	})
	if brokeBelow {
		score += 40
	}

	volConfirm := snap.RelVolume > 1.2
	criteria = append(criteria, models.Criterion{
		Name:        "Volume Confirmation",
		Description: "Relative volume > 1.2",
		Met:         volConfirm,
		Value:       fmtRatio(snap.RelVolume),
	})
	if volConfirm {
		score += 20
	}

	rangePct := or.Range / or.Low
	goodRange := rangePct > 0.002
	criteria = append(criteria, models.Criterion{
		Name:        "Range Quality",
		Description: "Opening range > 0.2% of price",
		Met:         goodRange,
		Value:       fmtPct(rangePct),
	})
	if goodRange {
		score += 10
	}

	if snap.SessionPhase == models.PhaseLunch {
		criteria = append(criteria, models.Criterion{
			Name:        "Session Window",
			Description: "Lunch chop penalizes breakout follow-through",
			Met:         false,
			Value:       string(snap.SessionPhase),
		})
		score -= 10
	}

	signal := models.SignalNeutral
	switch {
	case brokeAbove && volConfirm:
		signal = models.SignalBuy
	case brokeBelow && volConfirm:
		signal = models.SignalSell
	case brokeAbove || brokeBelow:
		signal = models.SignalWatch
	}

	var plan *models.TradePlan
	if signal == models.SignalBuy {
		plan = &models.TradePlan{
			EntryZone:  or.High,
			StopLoss:   or.Low,
			Target:     or.High + or.Range*2,
			RiskReward: 2.0,
		}
	} else if signal == models.SignalSell {
		plan = &models.TradePlan{
			EntryZone:  or.Low,
			StopLoss:   or.High,
			Target:     or.Low - or.Range*2,
			RiskReward: 2.0,
		}
	}

	return models.Signal{
		ID:       s.ID(),
		Name:     s.Name(),
		Type:     "Breakout",
		Score:    clampScore(score),
		Signal:   signal,
		Plan:     plan,
		Criteria: criteria,
	}
}
