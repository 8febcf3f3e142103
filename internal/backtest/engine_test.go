package backtest

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"SignalDesk/internal/domain/models"
	"SignalDesk/internal/domain/repository"
	"SignalDesk/internal/indicator"
	"SignalDesk/internal/strategy"
)

// alwaysBuy fires a fixed long signal with the given stop/target offsets
// from the snapshot price.
type alwaysBuy struct {
	stopPct   float64
	targetPct float64
}

func (alwaysBuy) ID() string   { return "always-buy" }
func (alwaysBuy) Name() string { return "Always Buy" }

func (s alwaysBuy) Evaluate(snap *models.IndicatorSnapshot, _ models.MarketContext) models.Signal {
	px := snap.CurrentPrice
	return models.Signal{
		ID:     "always-buy",
		Name:   "Always Buy",
		Score:  80,
		Signal: models.SignalBuy,
		Plan: &models.TradePlan{
			EntryZone:  px,
			StopLoss:   px * (1 - s.stopPct),
			Target:     px * (1 + s.targetPct),
			RiskReward: s.targetPct / s.stopPct,
		},
	}
}

// flatSeries builds n candles inside regular hours with constant price.
// Bars advance 15 minutes, rolling to the next day's open at the EOD
// cutoff so intraday positions survive across bars.
func flatSeries(n int, price float64) []models.Candle {
	et, _ := time.LoadLocation("America/New_York")
	ts := time.Date(2024, 3, 4, 9, 30, 0, 0, et) // a Monday
	candles := make([]models.Candle, n)
	for i := range candles {
		candles[i] = models.Candle{
			Timestamp: ts,
			Open:      price,
			High:      price + 0.5,
			Low:       price - 0.5,
			Close:     price,
			Volume:    1_000_000,
		}
		ts = ts.Add(15 * time.Minute)
		if ts.Hour() >= 15 {
			ts = time.Date(ts.Year(), ts.Month(), ts.Day()+1, 9, 30, 0, 0, et)
		}
	}
	return candles
}

func runParams(sc strategy.Scorer) Params {
	return Params{
		Symbol:   "TEST",
		Interval: repository.TF15m,
		MinScore: 60,
		Scorers:  []strategy.Scorer{sc},
	}
}

func TestRunInsufficientData(t *testing.T) {
	e := NewEngine(zerolog.Nop())
	_, err := e.Run(runParams(alwaysBuy{0.02, 0.04}), flatSeries(20, 100))
	if !errors.Is(err, indicator.ErrInsufficientData) {
		t.Fatalf("err = %v, want ErrInsufficientData", err)
	}
}

func TestRunDeterministic(t *testing.T) {
	e := NewEngine(zerolog.Nop())
	candles := flatSeries(120, 100)
	// Force stop hits: bars range 0.5 below close, stop only 0.3 away.
	params := runParams(alwaysBuy{stopPct: 0.003, targetPct: 0.04})

	first, err := e.Run(params, candles)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	second, err := e.Run(params, candles)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Fatal("identical inputs produced different summaries")
	}
	if first.TotalTrades == 0 {
		t.Fatal("expected trades from the always-buy scorer")
	}
}

func TestStopCheckedBeforeTarget(t *testing.T) {
	e := NewEngine(zerolog.Nop())
	// Bars are wide enough (±0.5) to breach both a 0.3% stop and a
	// 0.4% target on the same bar.
	candles := flatSeries(120, 100)
	params := runParams(alwaysBuy{stopPct: 0.003, targetPct: 0.004})

	summary, err := e.Run(params, candles)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if summary.TotalTrades == 0 {
		t.Fatal("expected trades")
	}
	for _, trade := range summary.Trades {
		if trade.ExitReason == models.ExitTarget {
			t.Fatalf("trade exited at TARGET on a bar that also breached the stop: %+v", trade)
		}
	}
}

func TestNoEntryOnSignalBar(t *testing.T) {
	e := NewEngine(zerolog.Nop())
	candles := flatSeries(120, 100)
	params := runParams(alwaysBuy{stopPct: 0.003, targetPct: 0.04})

	summary, err := e.Run(params, candles)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	for _, trade := range summary.Trades {
		if !trade.ExitTime.After(trade.EntryTime) {
			t.Fatalf("trade exited on its entry bar: entry %v exit %v", trade.EntryTime, trade.ExitTime)
		}
	}
}

func TestSinglePositionAndLedgerBalance(t *testing.T) {
	e := NewEngine(zerolog.Nop())
	candles := flatSeries(150, 100)
	params := runParams(alwaysBuy{stopPct: 0.003, targetPct: 0.04})

	summary, err := e.Run(params, candles)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	// Every opened position closed: no overlapping holds in the ledger.
	for i := 1; i < len(summary.Trades); i++ {
		prev, cur := summary.Trades[i-1], summary.Trades[i]
		if cur.EntryTime.Before(prev.ExitTime) {
			t.Fatalf("trade %d entered at %v before trade %d exited at %v",
				i, cur.EntryTime, i-1, prev.ExitTime)
		}
	}
	if summary.Wins+summary.Losses != summary.TotalTrades {
		t.Fatalf("wins %d + losses %d != total %d", summary.Wins, summary.Losses, summary.TotalTrades)
	}
}

func TestEndOfDataForceClose(t *testing.T) {
	e := NewEngine(zerolog.Nop())
	// Stop and target far away so nothing exits before data runs out.
	// Keep the series short enough that only one entry can happen before
	// the first EOD cutoff would fire.
	candles := flatSeries(60, 100)
	params := runParams(alwaysBuy{stopPct: 0.5, targetPct: 0.5})

	summary, err := e.Run(params, candles)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if summary.TotalTrades == 0 {
		t.Fatal("expected at least the force-closed trade")
	}
	last := summary.Trades[len(summary.Trades)-1]
	if last.ExitReason != models.ExitEndOfData && last.ExitReason != models.ExitEOD {
		t.Fatalf("last exit reason = %s, want END_OF_DATA or EOD", last.ExitReason)
	}
}

func TestRiskSizedSharesRespectBalance(t *testing.T) {
	e := NewEngine(zerolog.Nop())
	candles := flatSeries(120, 100)
	params := runParams(alwaysBuy{stopPct: 0.003, targetPct: 0.04})
	params.RiskSized = true
	params.Account = 100000
	params.RiskPct = 0.01

	summary, err := e.Run(params, candles)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if summary.TotalTrades == 0 {
		t.Fatal("expected trades")
	}
	for _, trade := range summary.Trades {
		if trade.Shares < 1 {
			t.Fatalf("risk-sized trade with %d shares", trade.Shares)
		}
		if value := float64(trade.Shares) * trade.EntryPrice; value > params.Account {
			t.Fatalf("position value %v exceeds starting account %v", value, params.Account)
		}
	}
}

func TestSummarizeBreakdowns(t *testing.T) {
	et, _ := time.LoadLocation("America/New_York")
	mon := time.Date(2024, 3, 4, 10, 0, 0, 0, et)
	trades := []models.Trade{
		{Strategy: "a", PnL: 100, HoldMinutes: 30, SessionPhase: models.PhaseMorning, DayOfWeek: mon.Weekday(), EntryTime: mon, ExitTime: mon.Add(30 * time.Minute)},
		{Strategy: "a", PnL: -50, HoldMinutes: 60, SessionPhase: models.PhaseMorning, DayOfWeek: mon.Weekday(), EntryTime: mon, ExitTime: mon.Add(time.Hour)},
		{Strategy: "b", PnL: 200, HoldMinutes: 90, SessionPhase: models.PhaseAfternoon, DayOfWeek: mon.Weekday(), EntryTime: mon, ExitTime: mon.Add(90 * time.Minute)},
	}

	s := Summarize("SPY", "15m", trades)

	if s.TotalTrades != 3 || s.Wins != 2 || s.Losses != 1 {
		t.Fatalf("counts: %d/%d/%d", s.TotalTrades, s.Wins, s.Losses)
	}
	if s.GrossProfit != 300 || s.GrossLoss != 50 {
		t.Fatalf("gross: +%v/-%v", s.GrossProfit, s.GrossLoss)
	}
	if s.ProfitFactor != 6 {
		t.Fatalf("profitFactor = %v, want 6", s.ProfitFactor)
	}
	wantExpectancy := (2.0/3.0)*150 - (1.0/3.0)*50
	if diff := s.Expectancy - wantExpectancy; diff < -1e-9 || diff > 1e-9 {
		t.Fatalf("expectancy = %v, want %v", s.Expectancy, wantExpectancy)
	}

	if row := s.ByStrategy["a"]; row.Trades != 2 || row.Wins != 1 || row.PnL != 50 {
		t.Fatalf("byStrategy[a] = %+v", row)
	}
	if row := s.BySession[models.PhaseMorning]; row.Trades != 2 {
		t.Fatalf("bySession[morning] = %+v", row)
	}
	if row := s.ByDayOfWeek["Monday"]; row.Trades != 3 {
		t.Fatalf("byDayOfWeek[Monday] = %+v", row)
	}
}

func TestSummarizeEmptyLedger(t *testing.T) {
	s := Summarize("SPY", "15m", nil)
	if s.TotalTrades != 0 || s.ProfitFactor != 0 || s.WinRate != 0 {
		t.Fatalf("empty ledger summary not zeroed: %+v", s)
	}
}

func TestAllWinsCapsProfitFactor(t *testing.T) {
	trades := []models.Trade{{Strategy: "a", PnL: 10}}
	if s := Summarize("SPY", "15m", trades); s.ProfitFactor != cappedProfitFactor {
		t.Fatalf("profitFactor = %v, want %v", s.ProfitFactor, cappedProfitFactor)
	}
}
