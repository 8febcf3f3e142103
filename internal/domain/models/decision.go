package models

import "time"

// TimeframeResult is the per-timeframe slice of a Decision.
type TimeframeResult struct {
	Timeframe string `json:"timeframe"`
	Signal    string `json:"signal"`
	Score     int    `json:"score"`
	Strategy  string `json:"strategy"`
}

// Decision is the aggregator's consensus call for one symbol across
// timeframes. At most one live Decision exists per symbol; a later scan
// overwrites the earlier one.
type Decision struct {
	Symbol      string    `json:"symbol"`
	Timestamp   time.Time `json:"timestamp"`
	FinalSignal string    `json:"finalSignal"`
	FinalScore  int       `json:"finalScore"`

	EntryPrice  float64 `json:"entryPrice,omitempty"`
	StopLoss    float64 `json:"stopLoss,omitempty"`
	TargetPrice float64 `json:"targetPrice,omitempty"`

	Timeframes   []TimeframeResult `json:"timeframes"`
	BestStrategy Signal            `json:"bestStrategy"`

	// KeyLevels come from the daily window, so the fib retracements span
	// the 52-week range.
	KeyLevels *KeyLevels `json:"keyLevels,omitempty"`
}
