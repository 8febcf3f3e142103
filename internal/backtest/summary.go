package backtest

import (
	"SignalDesk/internal/domain/models"
)

// cappedProfitFactor stands in for "no losing trades" so the summary
// stays JSON-encodable instead of carrying +Inf.
const cappedProfitFactor = 999

// Summarize folds a trade ledger into the aggregate statistics and the
// per-session, per-strategy, and per-weekday breakdown tables.
func Summarize(symbol, interval string, trades []models.Trade) *models.BacktestSummary {
	s := &models.BacktestSummary{
		Symbol:      symbol,
		Interval:    interval,
		BySession:   make(map[models.SessionPhase]models.BreakdownRow),
		ByStrategy:  make(map[string]models.BreakdownRow),
		ByDayOfWeek: make(map[string]models.BreakdownRow),
		Trades:      trades,
	}
	if len(trades) == 0 {
		return s
	}

	var holdSum int
	for _, t := range trades {
		s.TotalPnL += t.PnL
		holdSum += t.HoldMinutes
		if t.Win() {
			s.Wins++
			s.GrossProfit += t.PnL
		} else {
			s.Losses++
			s.GrossLoss += -t.PnL
		}

		addRow(s.BySession, t.SessionPhase, t)
		addRow(s.ByStrategy, t.Strategy, t)
		addRow(s.ByDayOfWeek, t.DayOfWeek.String(), t)
	}

	n := float64(len(trades))
	s.TotalTrades = len(trades)
	s.WinRate = float64(s.Wins) / n
	s.AvgHoldMinutes = float64(holdSum) / n
	if s.Wins > 0 {
		s.AvgWin = s.GrossProfit / float64(s.Wins)
	}
	if s.Losses > 0 {
		s.AvgLoss = s.GrossLoss / float64(s.Losses)
	}
	switch {
	case s.GrossLoss > 0:
		s.ProfitFactor = s.GrossProfit / s.GrossLoss
	case s.GrossProfit > 0:
		s.ProfitFactor = cappedProfitFactor
	}
	s.Expectancy = s.WinRate*s.AvgWin - (1-s.WinRate)*s.AvgLoss

	return s
}

func addRow[K comparable](m map[K]models.BreakdownRow, key K, t models.Trade) {
	row := m[key]
	row.Trades++
	row.PnL += t.PnL
	if t.Win() {
		row.Wins++
	} else {
		row.Losses++
	}
	row.WinRate = float64(row.Wins) / float64(row.Trades)
	m[key] = row
}
