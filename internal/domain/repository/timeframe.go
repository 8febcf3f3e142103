package repository

// Timeframe is the candle bucket granularity a scan runs on.
type Timeframe string

const (
	TF15m Timeframe = "15m"
	TF1h  Timeframe = "1h"
	TF1d  Timeframe = "1d"
)

// ScanTimeframes lists the timeframes a multi-timeframe scan covers,
// shortest first.
var ScanTimeframes = []Timeframe{TF15m, TF1h, TF1d}

// ConsensusWeights are the fixed convex weights the aggregator blends
// per-timeframe best scores with. The longest timeframe carries the most
// weight.
var ConsensusWeights = map[Timeframe]float64{
	TF1d:  0.5,
	TF1h:  0.3,
	TF15m: 0.2,
}

// IsValidTimeframe returns true if tf is a supported timeframe.
func IsValidTimeframe(tf Timeframe) bool {
	switch tf {
	case TF15m, TF1h, TF1d:
		return true
	default:
		return false
	}
}

// DefaultTimeframe returns the default scan timeframe.
func DefaultTimeframe() Timeframe { return TF1d }

// NormalizeTimeframe converts a raw string to a valid timeframe (or default).
func NormalizeTimeframe(s string) Timeframe {
	if s == "" {
		return DefaultTimeframe()
	}
	tf := Timeframe(s)
	if IsValidTimeframe(tf) {
		return tf
	}
	return DefaultTimeframe()
}

// LookbackDays is how much history each timeframe needs for a full
// indicator set.
func LookbackDays(tf Timeframe) int {
	switch tf {
	case TF15m:
		return 5
	case TF1h:
		return 30
	default:
		return 365
	}
}

// Intraday reports whether the timeframe uses the intraday scorer set.
func Intraday(tf Timeframe) bool {
	return tf == TF15m || tf == TF1h
}
