package indicator

import (
	"errors"
	"fmt"

	"SignalDesk/internal/domain/models"
	"SignalDesk/internal/domain/repository"
	"SignalDesk/internal/session"
)

// ErrInsufficientData is returned when the candle window is too short for a
// meaningful snapshot.
var ErrInsufficientData = errors.New("insufficient candle history")

// MinBars is the warm-up window: the snapshot needs at least this many
// candles before any scorer runs. Longer indicators (SMA200) simply stay
// zero until enough history accumulates and the scorers that need them
// no-op.
const MinBars = 50

const (
	rsiPeriod    = 14
	adxPeriod    = 14
	atrPeriod    = 14
	stochPeriod  = 14
	stochSignal  = 3
	bbPeriod     = 20
	bbStdDev     = 2.0
	volAvgPeriod = 20
	keltnerMult  = 1.5
	obLookback   = 30
)

// Compute builds an IndicatorSnapshot from the candle window. The snapshot
// reflects only the supplied candles; callers control look-ahead by slicing.
func Compute(symbol string, tf repository.Timeframe, candles []models.Candle) (*models.IndicatorSnapshot, error) {
	if len(candles) < MinBars {
		return nil, fmt.Errorf("%w: have %d candles, need %d", ErrInsufficientData, len(candles), MinBars)
	}
	if err := models.ValidateSeries(candles); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInsufficientData, err)
	}

	closes := models.Closes(candles)
	highs := models.Highs(candles)
	lows := models.Lows(candles)
	volumes := models.Volumes(candles)
	last := candles[len(candles)-1]

	snap := &models.IndicatorSnapshot{
		Symbol:       symbol,
		Timeframe:    string(tf),
		Timestamp:    last.Timestamp,
		CurrentPrice: last.Close,

		SMA20:  SMA(closes, 20),
		SMA50:  SMA(closes, 50),
		SMA200: SMA(closes, 200),
		EMA8:   EMA(closes, 8),
		EMA21:  EMA(closes, 21),
		EMA55:  EMA(closes, 55),

		RSI: RSI(closes, rsiPeriod),
		ADX: ADX(highs, lows, closes, adxPeriod),
		ATR: ATR(highs, lows, closes, atrPeriod),

		RelVolume: relVolume(volumes),
		VWAP:      vwap(candles),

		SessionPhase: session.Phase(last.Timestamp),
	}

	if k, d, ok := Stochastic(highs, lows, closes, stochPeriod, stochSignal); ok {
		snap.Stochastic = &models.StochasticPair{K: k, D: d}
	}

	if mid := SMA(closes, bbPeriod); mid > 0 {
		sd := StdDev(closes, bbPeriod)
		bb := &models.BollingerBands{
			Upper:  mid + bbStdDev*sd,
			Middle: mid,
			Lower:  mid - bbStdDev*sd,
		}
		bb.Width = (bb.Upper - bb.Lower) / mid
		snap.Bollinger = bb
	}

	if ema20 := EMA(closes, 20); ema20 > 0 && snap.ATR > 0 {
		snap.Keltner = &models.KeltnerChannel{
			Upper:  ema20 + keltnerMult*snap.ATR,
			Middle: ema20,
			Lower:  ema20 - keltnerMult*snap.ATR,
		}
	}

	snap.ValueArea = VolumeProfile(candles)
	snap.OrderBlock = OrderBlock(candles, obLookback)
	snap.KeyLevels = KeyLevels(candles)
	if repository.Intraday(tf) {
		snap.OpeningRange = session.OpeningRange(candles)
	}

	return snap, nil
}

// relVolume compares the last bar's volume to the trailing average.
func relVolume(volumes []float64) float64 {
	if len(volumes) == 0 {
		return 0
	}
	n := volAvgPeriod
	if len(volumes) < n {
		n = len(volumes)
	}
	avg := SMA(volumes, n)
	if avg == 0 {
		return 0
	}
	return volumes[len(volumes)-1] / avg
}

// vwap is the volume weighted average price over the current ET session,
// falling back to the whole window when no bar falls in the session (daily
// candles).
func vwap(candles []models.Candle) float64 {
	last := candles[len(candles)-1].Timestamp

	pv, vol := 0.0, 0.0
	for _, c := range candles {
		if !session.SameETDay(c.Timestamp, last) {
			continue
		}
		typical := (c.High + c.Low + c.Close) / 3
		pv += typical * c.Volume
		vol += c.Volume
	}
	if vol == 0 {
		for _, c := range candles {
			typical := (c.High + c.Low + c.Close) / 3
			pv += typical * c.Volume
			vol += c.Volume
		}
	}
	if vol == 0 {
		return 0
	}
	return pv / vol
}

// DailyTrend classifies a daily window as bullish/bearish by the close
// versus SMA20 rule used for multi-timeframe alignment.
func DailyTrend(daily []models.Candle) (bullish, bearish bool) {
	if len(daily) < 21 {
		return false, false
	}
	closes := models.Closes(daily)
	sma20 := SMA(closes, 20)
	last := closes[len(closes)-1]
	return last > sma20, last < sma20
}
