// Package backtest replays a historical candle series through the
// strategy scorers bar-by-bar and produces an immutable trade ledger
// with summary statistics. The engine is pure: no I/O, no clock reads,
// no randomness, so identical inputs always produce identical ledgers.
package backtest

import (
	"math"
	"time"

	"github.com/rs/zerolog"

	"SignalDesk/internal/domain/models"
	"SignalDesk/internal/domain/repository"
	"SignalDesk/internal/indicator"
	"SignalDesk/internal/session"
	"SignalDesk/internal/strategy"
)

// Params configures one backtest run.
type Params struct {
	Symbol   string
	Interval repository.Timeframe
	MinScore int

	// RiskSized switches from one-share unit sizing to risking RiskPct
	// of the running balance per trade.
	RiskSized bool
	Account   float64
	RiskPct   float64

	// Market is reused for every bar; per-bar market context replay is
	// out of scope for the simulator.
	Market models.MarketContext

	// Scorers overrides the interval's default scorer set when non-nil.
	Scorers []strategy.Scorer
}

// positionValueCap limits a risk-sized position to this fraction of the
// running balance.
const positionValueCap = 0.95

// Engine replays candles through a scorer set.
type Engine struct {
	selector *strategy.Selector
	log      zerolog.Logger
}

func NewEngine(log zerolog.Logger) *Engine {
	return &Engine{
		selector: strategy.NewSelector(log),
		log:      log.With().Str("component", "backtest").Logger(),
	}
}

// Run simulates the candle series and returns the summarized ledger.
// Candles must be ascending by timestamp; fewer than the indicator
// warm-up window is an error.
func (e *Engine) Run(params Params, candles []models.Candle) (*models.BacktestSummary, error) {
	if len(candles) < indicator.MinBars {
		return nil, indicator.ErrInsufficientData
	}
	if err := models.ValidateSeries(candles); err != nil {
		return nil, err
	}

	scorers := params.Scorers
	if scorers == nil {
		scorers = strategy.ScorersFor(string(params.Interval))
	}

	var (
		trades  []models.Trade
		open    *models.SimulatedPosition
		balance = params.Account
	)
	if balance <= 0 {
		balance = 100000
	}

	for i := indicator.MinBars; i < len(candles); i++ {
		bar := candles[i]

		// Exits first, but never on the entry bar: the signal was
		// computed on data through that bar, so fills begin at i+1.
		if open != nil && i > open.EntryIndex {
			if trade, closed := e.checkExit(open, bar, repository.Intraday(params.Interval)); closed {
				balance += trade.PnL
				trades = append(trades, trade)
				open = nil
			}
		}

		if open != nil {
			continue
		}

		// Snapshot sees only data up to and including bar i.
		snap, err := indicator.Compute(params.Symbol, params.Interval, candles[:i+1])
		if err != nil {
			continue
		}

		ranked := e.selector.Evaluate(scorers, snap, params.Market)
		top, ok := strategy.Best(ranked)
		if !ok || top.Score < params.MinScore || top.Plan == nil || !top.IsBullish() {
			continue
		}

		open = e.openPosition(top, bar, i, balance, params)
	}

	if open != nil {
		last := candles[len(candles)-1]
		trade := closeTrade(open, last.Timestamp, last.Close, models.ExitEndOfData)
		balance += trade.PnL
		trades = append(trades, trade)
	}

	summary := Summarize(params.Symbol, string(params.Interval), trades)
	e.log.Info().
		Str("symbol", params.Symbol).
		Str("interval", string(params.Interval)).
		Int("bars", len(candles)).
		Int("trades", summary.TotalTrades).
		Float64("winRate", summary.WinRate).
		Msg("backtest run complete")
	return summary, nil
}

func (e *Engine) openPosition(sig models.Signal, bar models.Candle, idx int, balance float64, params Params) *models.SimulatedPosition {
	entry := bar.Close
	stop := sig.Plan.StopLoss
	if stop <= 0 || stop >= entry {
		stop = entry * 0.98
	}
	target := sig.Plan.Target
	if target <= entry {
		target = entry * 1.02
	}

	shares := 1
	if params.RiskSized {
		riskPct := params.RiskPct
		if riskPct <= 0 {
			riskPct = 0.01
		}
		riskAmount := balance * riskPct
		shares = int(math.Floor(riskAmount / (entry - stop)))
		if maxShares := int(math.Floor(balance * positionValueCap / entry)); shares > maxShares {
			shares = maxShares
		}
		if shares < 1 {
			return nil
		}
	}

	return &models.SimulatedPosition{
		Strategy:     sig.ID,
		Signal:       sig.Signal,
		Score:        sig.Score,
		EntryTime:    bar.Timestamp,
		EntryPrice:   entry,
		EntryIndex:   idx,
		Shares:       shares,
		StopLoss:     stop,
		Target:       target,
		SessionPhase: session.Phase(bar.Timestamp),
	}
}

// checkExit applies the exit rules in priority order: stop loss, then
// target, then (for intraday intervals) the end-of-session cutoff.
// Stop and target fill at their own price (worst-case intrabar
// assumption); when both could trigger on one bar the stop wins.
func (e *Engine) checkExit(pos *models.SimulatedPosition, bar models.Candle, intraday bool) (models.Trade, bool) {
	switch {
	case bar.Low <= pos.StopLoss:
		return closeTrade(pos, bar.Timestamp, pos.StopLoss, models.ExitStopLoss), true
	case bar.High >= pos.Target:
		return closeTrade(pos, bar.Timestamp, pos.Target, models.ExitTarget), true
	case intraday && session.PastEODCutoff(bar.Timestamp):
		return closeTrade(pos, bar.Timestamp, bar.Close, models.ExitEOD), true
	default:
		return models.Trade{}, false
	}
}

func closeTrade(pos *models.SimulatedPosition, at time.Time, exitPrice float64, reason models.ExitReason) models.Trade {
	pnlPerShare := exitPrice - pos.EntryPrice
	pnl := pnlPerShare * float64(pos.Shares)
	return models.Trade{
		Strategy:     pos.Strategy,
		Signal:       pos.Signal,
		Score:        pos.Score,
		EntryTime:    pos.EntryTime,
		EntryPrice:   pos.EntryPrice,
		ExitTime:     at,
		ExitPrice:    exitPrice,
		ExitReason:   reason,
		Shares:       pos.Shares,
		PnL:          pnl,
		PnLPercent:   pnlPerShare / pos.EntryPrice * 100,
		HoldMinutes:  int(at.Sub(pos.EntryTime).Minutes()),
		SessionPhase: pos.SessionPhase,
		DayOfWeek:    pos.EntryTime.Weekday(),
	}
}
