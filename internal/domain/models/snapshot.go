package models

import (
	"math"
	"time"
)

// SessionPhase labels the part of the US equity session a bar falls into.
type SessionPhase string

const (
	PhaseClosed    SessionPhase = "CLOSED"
	PhasePreMarket SessionPhase = "PRE_MARKET"
	PhaseOpening   SessionPhase = "OPENING_DRIVE"
	PhaseMorning   SessionPhase = "MORNING_TREND"
	PhaseLunch     SessionPhase = "LUNCH_CHOP"
	PhaseAfternoon SessionPhase = "AFTERNOON_SESSION"
	PhasePowerHour SessionPhase = "POWER_HOUR"
	PhasePost      SessionPhase = "POST_MARKET"
)

// BollingerBands holds one Bollinger reading plus the normalized band width.
type BollingerBands struct {
	Upper  float64 `json:"upper"`
	Middle float64 `json:"middle"`
	Lower  float64 `json:"lower"`
	Width  float64 `json:"width"` // (upper-lower)/middle
}

// StochasticPair is the %K/%D oscillator pair.
type StochasticPair struct {
	K float64 `json:"k"`
	D float64 `json:"d"`
}

// ValueArea is the volume-profile value area for the lookback window.
type ValueArea struct {
	POC  float64 `json:"poc"` // point of control
	High float64 `json:"vah"`
	Low  float64 `json:"val"`
}

// KeltnerChannel is the EMA/ATR channel used by squeeze detection.
type KeltnerChannel struct {
	Upper  float64 `json:"upper"`
	Middle float64 `json:"middle"`
	Lower  float64 `json:"lower"`
}

// PriceZone is a price band, e.g. an order-block region.
type PriceZone struct {
	High float64 `json:"high"`
	Low  float64 `json:"low"`
}

// OpeningRange is the high/low of the first 30 minutes of the session.
type OpeningRange struct {
	High  float64 `json:"high"`
	Low   float64 `json:"low"`
	Range float64 `json:"range"`
}

// IndicatorSnapshot is the immutable, per (symbol, timeframe, timestamp)
// indicator record every scorer consumes. A zero-valued optional field means
// "not available"; scorers must degrade to a neutral signal rather than fail.
type IndicatorSnapshot struct {
	Symbol    string    `json:"symbol"`
	Timeframe string    `json:"timeframe"`
	Timestamp time.Time `json:"timestamp"`

	CurrentPrice float64 `json:"currentPrice"`

	// Moving averages.
	SMA20  float64 `json:"sma20"`
	SMA50  float64 `json:"sma50"`
	SMA200 float64 `json:"sma200"`
	EMA8   float64 `json:"ema8"`
	EMA21  float64 `json:"ema21"`
	EMA55  float64 `json:"ema55"`

	// Oscillators.
	RSI        float64         `json:"rsi"`
	ADX        float64         `json:"adx"`
	Stochastic *StochasticPair `json:"stochastic,omitempty"`

	// Volatility.
	Bollinger *BollingerBands `json:"bollinger,omitempty"`
	ATR       float64         `json:"atr"`
	Keltner   *KeltnerChannel `json:"keltner,omitempty"`

	// Volume.
	RelVolume float64    `json:"relVolume"` // current vs 20-bar average
	VWAP      float64    `json:"vwap"`
	ValueArea *ValueArea `json:"valueArea,omitempty"`
	KeyLevels *KeyLevels `json:"keyLevels,omitempty"`

	// Session extras consumed by intraday scorers.
	SessionPhase SessionPhase  `json:"sessionPhase,omitempty"`
	OpeningRange *OpeningRange `json:"openingRange,omitempty"`
	OrderBlock   *PriceZone    `json:"orderBlock,omitempty"`

	// Higher-timeframe context for the golden setup.
	DailyBullish bool `json:"dailyBullish"`
	DailyBearish bool `json:"dailyBearish"`
}

// HasCore reports whether the fields every scorer family relies on are
// present and finite.
func (s *IndicatorSnapshot) HasCore() bool {
	if s == nil {
		return false
	}
	return finite(s.CurrentPrice) && s.CurrentPrice > 0
}

// Finite reports whether all listed values are finite (not NaN/Inf) and
// non-zero. Indicator fields use zero as their "missing" marker.
func Finite(values ...float64) bool {
	for _, v := range values {
		if !finite(v) || v == 0 {
			return false
		}
	}
	return true
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// MarketContext carries market-wide state not derivable from one symbol's
// candles. All fields are optional; scorers default when absent.
type MarketContext struct {
	VIX       float64 `json:"vix,omitempty"`
	GEX       float64 `json:"gex,omitempty"` // net dealer gamma, billions of dollars
	ZeroGamma float64 `json:"zeroGamma,omitempty"`

	// Derived VIX series stats supplied by the data collaborator for the
	// VIX reversion scorer.
	VIXSMA10 float64 `json:"vixSma10,omitempty"`
	VIXRSI5  float64 `json:"vixRsi5,omitempty"`
}
