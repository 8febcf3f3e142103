package models

import (
	"fmt"
	"math"
	"time"
)

// Candle represents one OHLCV record for a fixed time bucket.
type Candle struct {
	Timestamp time.Time `json:"timestamp"`
	Open      float64   `json:"open"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	Close     float64   `json:"close"`
	Volume    float64   `json:"volume"`
}

// ValidateSeries checks that candles are ascending by time, contain no
// duplicate timestamps, and have finite closes. Upstream feeds occasionally
// emit null closes for the in-progress bar; those must be filtered before
// the series reaches the engine.
func ValidateSeries(candles []Candle) error {
	for i, c := range candles {
		if math.IsNaN(c.Close) || math.IsInf(c.Close, 0) {
			return fmt.Errorf("candle %d (%s): non-finite close", i, c.Timestamp.Format(time.RFC3339))
		}
		if i == 0 {
			continue
		}
		if !candles[i-1].Timestamp.Before(c.Timestamp) {
			return fmt.Errorf("candle %d (%s): timestamps not strictly ascending", i, c.Timestamp.Format(time.RFC3339))
		}
	}
	return nil
}

// Closes extracts the close series.
func Closes(candles []Candle) []float64 {
	out := make([]float64, len(candles))
	for i, c := range candles {
		out[i] = c.Close
	}
	return out
}

// Highs extracts the high series.
func Highs(candles []Candle) []float64 {
	out := make([]float64, len(candles))
	for i, c := range candles {
		out[i] = c.High
	}
	return out
}

// Lows extracts the low series.
func Lows(candles []Candle) []float64 {
	out := make([]float64, len(candles))
	for i, c := range candles {
		out[i] = c.Low
	}
	return out
}

// Volumes extracts the volume series.
func Volumes(candles []Candle) []float64 {
	out := make([]float64, len(candles))
	for i, c := range candles {
		out[i] = c.Volume
	}
	return out
}
