package models

import "strings"

// Signal labels. Each scorer picks from its own subset; cross-scorer ordering
// is by score, not label.
const (
	SignalNeutral    = "NEUTRAL"
	SignalWait       = "WAIT"
	SignalWatch      = "WATCH"
	SignalBuy        = "BUY"
	SignalStrongBuy  = "STRONG BUY"
	SignalSell       = "SELL"
	SignalHold       = "HOLD"
	SignalBreakout   = "BREAKOUT ALERT"
	SignalGoldenLong = "GOLDEN LONG"
)

// Criterion is one named boolean check inside a scorer, kept for
// explainability. It never drives control flow outside its scorer.
type Criterion struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Met         bool   `json:"met"`
	Value       string `json:"value,omitempty"`
}

// TradePlan is the entry/stop/target proposal attached to an actionable
// signal.
type TradePlan struct {
	EntryZone  float64 `json:"entryZone"`
	StopLoss   float64 `json:"stopLoss"`
	Target     float64 `json:"target"`
	RiskReward float64 `json:"riskReward"`
}

// Signal is the graded output of one strategy scorer. Created fresh on every
// evaluation and never mutated.
type Signal struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Type     string      `json:"type,omitempty"`
	Score    int         `json:"score"` // 0..100
	Signal   string      `json:"signal"`
	Plan     *TradePlan  `json:"tradePlan,omitempty"`
	Criteria []Criterion `json:"criteria"`
}

// NeutralSignal builds the zero-score placeholder a scorer returns when its
// inputs are missing or malformed.
func NeutralSignal(id, name, reason string) Signal {
	return Signal{
		ID:     id,
		Name:   name,
		Score:  0,
		Signal: SignalNeutral,
		Criteria: []Criterion{
			{Name: "Data Check", Description: reason, Met: false},
		},
	}
}

// bullishTokens is the fixed vocabulary rule used by the aggregator: a signal
// counts as bullish when its label contains one of these.
var bullishTokens = []string{"BUY", "LONG", "BREAKOUT"}

// IsBullish reports whether the signal label reads long-side.
func (s Signal) IsBullish() bool {
	for _, tok := range bullishTokens {
		if strings.Contains(s.Signal, tok) {
			return true
		}
	}
	return false
}

// Actionable reports whether the engine may act on the signal. Short-side
// labels are scored for display but never traded: the execution path has no
// short accounting, so SELL variants stay informational.
func (s Signal) Actionable() bool {
	return s.IsBullish() && s.Plan != nil
}
