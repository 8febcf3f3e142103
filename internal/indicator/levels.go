package indicator

import (
	"SignalDesk/internal/domain/models"
)

// KeyLevels derives the reference price map from a candle window: prior-bar
// OHLC, standard pivots, and Fibonacci retracements of the window range.
// Needs at least two candles; returns nil otherwise.
func KeyLevels(candles []models.Candle) *models.KeyLevels {
	if len(candles) < 2 {
		return nil
	}
	last := candles[len(candles)-1]
	prev := candles[len(candles)-2]

	p := (prev.High + prev.Low + prev.Close) / 3
	barRange := prev.High - prev.Low

	hi, lo := candles[0].High, candles[0].Low
	for _, c := range candles[1:] {
		if c.High > hi {
			hi = c.High
		}
		if c.Low < lo {
			lo = c.Low
		}
	}
	span := hi - lo

	return &models.KeyLevels{
		PrevOpen:  prev.Open,
		PrevHigh:  prev.High,
		PrevLow:   prev.Low,
		PrevClose: prev.Close,
		CurrOpen:  last.Open,
		Pivots: models.PivotLevels{
			P:  p,
			R1: 2*p - prev.Low,
			S1: 2*p - prev.High,
			R2: p + barRange,
			S2: p - barRange,
		},
		Fibs: models.FibLevels{
			High:   hi,
			Low:    lo,
			Fib236: hi - span*0.236,
			Fib382: hi - span*0.382,
			Fib500: hi - span*0.500,
			Fib618: hi - span*0.618,
			Fib786: hi - span*0.786,
		},
	}
}
