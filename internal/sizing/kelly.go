// Package sizing converts risk parameters into share counts and
// bankroll allocations. Everything here is pure and deterministic.
package sizing

import (
	"math"

	"SignalDesk/internal/domain/models"
	"SignalDesk/internal/indicator"
)

// MaxAllocation caps the Kelly recommendation regardless of how
// favorable the edge looks.
const MaxAllocation = 0.20

// Allocation type labels.
const (
	AllocHalfKelly = "Half-Kelly"
	AllocNoTrade   = "NO TRADE"
)

// KellyAllocation is the fractional-Kelly bankroll recommendation.
type KellyAllocation struct {
	Percentage float64 `json:"percentage"` // 0..100
	Amount     float64 `json:"amount"`
	Type       string  `json:"type"`
}

// KellySize computes the half-Kelly allocation for an assumed win
// probability and reward:risk ratio. A non-positive edge yields a zero
// "NO TRADE" allocation; a positive one is capped at MaxAllocation.
func KellySize(winRate, riskReward, bankroll float64) KellyAllocation {
	if riskReward <= 0 {
		return KellyAllocation{Type: AllocNoTrade}
	}

	// f = (b*p - q) / b, then half-Kelly to damp variance.
	b := riskReward
	p := winRate
	q := 1 - p
	half := ((b*p - q) / b) * 0.5

	if half <= 0 {
		return KellyAllocation{Type: AllocNoTrade}
	}

	safe := math.Min(half, MaxAllocation)
	return KellyAllocation{
		Percentage: round2(safe * 100),
		Amount:     round2(bankroll * safe),
		Type:       AllocHalfKelly,
	}
}

// TradeSetup is a fully sized trade proposal built from market
// structure and volatility.
type TradeSetup struct {
	EntryPrice   float64         `json:"entryPrice"`
	Side         string          `json:"side"`
	StopLoss     float64         `json:"stopLoss"`
	RiskPerShare float64         `json:"riskPerShare"`
	Shares       int             `json:"shares"`
	RiskAmount   float64         `json:"riskAmount"`
	Target1      float64         `json:"target1"` // 2R
	Target2      float64         `json:"target2"` // 3R
	Target3      float64         `json:"target3"` // 5R runner
	ATR          float64         `json:"atr"`
	SwingPoint   float64         `json:"swingPoint"`
	Kelly        KellyAllocation `json:"kellyRecommendation"`
}

const (
	setupLookback  = 20
	atrStopMult    = 2.0
	structureBuf   = 0.5
	assumedWinRate = 0.60
	assumedRR      = 2.0
)

// BuildTradeSetup sizes a trade at entryPrice for the given side
// ("BUY" or "SELL") from recent candles. The stop is the wider of a
// structure stop (swing point buffered by half an ATR) and a 2-ATR
// floor; shares are whatever riskPerTrade of the account buys at that
// stop distance. Returns nil when there is not enough history.
func BuildTradeSetup(entryPrice float64, side string, candles []models.Candle, accountSize, riskPerTrade float64) *TradeSetup {
	if len(candles) < setupLookback {
		return nil
	}

	atr := indicator.ATR(models.Highs(candles), models.Lows(candles), models.Closes(candles), 14)
	if atr <= 0 {
		return nil
	}

	swingLow := math.Inf(1)
	swingHigh := math.Inf(-1)
	for _, c := range candles[len(candles)-setupLookback:] {
		swingLow = math.Min(swingLow, c.Low)
		swingHigh = math.Max(swingHigh, c.High)
	}

	var stop, swing float64
	if side == "BUY" {
		structureStop := swingLow - atr*structureBuf
		atrFloor := entryPrice - atr*atrStopMult
		stop = math.Min(structureStop, atrFloor)
		swing = swingLow
	} else {
		structureStop := swingHigh + atr*structureBuf
		atrFloor := entryPrice + atr*atrStopMult
		stop = math.Max(structureStop, atrFloor)
		swing = swingHigh
	}

	riskPerShare := math.Abs(entryPrice - stop)
	if riskPerShare <= 0 {
		return nil
	}
	riskAmount := accountSize * riskPerTrade
	shares := int(math.Floor(riskAmount / riskPerShare))

	dir := 1.0
	if side != "BUY" {
		dir = -1
	}

	return &TradeSetup{
		EntryPrice:   entryPrice,
		Side:         side,
		StopLoss:     round2(stop),
		RiskPerShare: round2(riskPerShare),
		Shares:       shares,
		RiskAmount:   riskAmount,
		Target1:      round2(entryPrice + dir*riskPerShare*2),
		Target2:      round2(entryPrice + dir*riskPerShare*3),
		Target3:      round2(entryPrice + dir*riskPerShare*5),
		ATR:          round2(atr),
		SwingPoint:   swing,
		Kelly:        KellySize(assumedWinRate, assumedRR, accountSize),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
