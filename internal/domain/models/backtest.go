package models

import "time"

// ExitReason records why a simulated position was closed.
type ExitReason string

const (
	ExitStopLoss  ExitReason = "STOP_LOSS"
	ExitTarget    ExitReason = "TARGET"
	ExitEOD       ExitReason = "EOD"
	ExitEndOfData ExitReason = "END_OF_DATA"
)

// SimulatedPosition is the single open position a backtest run may hold.
type SimulatedPosition struct {
	Strategy     string
	Signal       string
	Score        int
	EntryTime    time.Time
	EntryPrice   float64
	EntryIndex   int
	Shares       int
	StopLoss     float64
	Target       float64
	SessionPhase SessionPhase
}

// Trade is the immutable record of a closed simulated position.
type Trade struct {
	Strategy     string       `json:"strategy"`
	Signal       string       `json:"signal"`
	Score        int          `json:"score"`
	EntryTime    time.Time    `json:"entryTime"`
	EntryPrice   float64      `json:"entryPrice"`
	ExitTime     time.Time    `json:"exitTime"`
	ExitPrice    float64      `json:"exitPrice"`
	ExitReason   ExitReason   `json:"exitReason"`
	Shares       int          `json:"shares"`
	PnL          float64      `json:"pnl"`
	PnLPercent   float64      `json:"pnlPercent"`
	HoldMinutes  int          `json:"holdMinutes"`
	SessionPhase SessionPhase `json:"sessionPhase"`
	DayOfWeek    time.Weekday `json:"dayOfWeek"`
}

// Win reports whether the trade closed with positive PnL.
func (t Trade) Win() bool { return t.PnL > 0 }

// BreakdownRow aggregates trades sharing one grouping key.
type BreakdownRow struct {
	Trades  int     `json:"trades"`
	Wins    int     `json:"wins"`
	Losses  int     `json:"losses"`
	WinRate float64 `json:"winRate"`
	PnL     float64 `json:"pnl"`
}

// BacktestSummary aggregates a full trade ledger.
type BacktestSummary struct {
	RunID    string `json:"runId,omitempty"`
	Symbol   string `json:"symbol"`
	Interval string `json:"interval"`

	TotalTrades    int     `json:"totalTrades"`
	Wins           int     `json:"wins"`
	Losses         int     `json:"losses"`
	WinRate        float64 `json:"winRate"`
	GrossProfit    float64 `json:"grossProfit"`
	GrossLoss      float64 `json:"grossLoss"`
	TotalPnL       float64 `json:"totalPnL"`
	ProfitFactor   float64 `json:"profitFactor"`
	Expectancy     float64 `json:"expectancy"`
	AvgWin         float64 `json:"avgWin"`
	AvgLoss        float64 `json:"avgLoss"`
	AvgHoldMinutes float64 `json:"avgHoldMinutes"`

	BySession   map[SessionPhase]BreakdownRow `json:"bySession"`
	ByStrategy  map[string]BreakdownRow       `json:"byStrategy"`
	ByDayOfWeek map[string]BreakdownRow       `json:"byDayOfWeek"`

	Trades []Trade `json:"trades"`
}
