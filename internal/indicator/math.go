// Package indicator computes an IndicatorSnapshot from a candle window.
// The kernels are deliberately dependency-free so that identical inputs
// always produce identical snapshots.
package indicator

import "math"

// SMA returns the simple moving average of the last period values, or 0
// when the series is too short.
func SMA(values []float64, period int) float64 {
	if period <= 0 || len(values) < period {
		return 0
	}
	sum := 0.0
	for _, v := range values[len(values)-period:] {
		sum += v
	}
	return sum / float64(period)
}

// EMA returns the exponential moving average seeded with an SMA over the
// first period values.
func EMA(values []float64, period int) float64 {
	if period <= 0 || len(values) < period {
		return 0
	}
	k := 2.0 / float64(period+1)
	ema := 0.0
	for _, v := range values[:period] {
		ema += v
	}
	ema /= float64(period)
	for _, v := range values[period:] {
		ema = v*k + ema*(1-k)
	}
	return ema
}

// RSI returns the Wilder-smoothed relative strength index.
func RSI(closes []float64, period int) float64 {
	if period <= 0 || len(closes) < period+1 {
		return 0
	}
	avgGain, avgLoss := 0.0, 0.0
	for i := 1; i <= period; i++ {
		d := closes[i] - closes[i-1]
		if d > 0 {
			avgGain += d
		} else {
			avgLoss -= d
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)
	for i := period + 1; i < len(closes); i++ {
		d := closes[i] - closes[i-1]
		gain, loss := 0.0, 0.0
		if d > 0 {
			gain = d
		} else {
			loss = -d
		}
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
	}
	if avgLoss == 0 {
		return 100
	}
	rs := avgGain / avgLoss
	return 100 - 100/(1+rs)
}

// trueRanges returns the TR series starting at index 1.
func trueRanges(highs, lows, closes []float64) []float64 {
	if len(highs) < 2 {
		return nil
	}
	tr := make([]float64, len(highs)-1)
	for i := 1; i < len(highs); i++ {
		hl := highs[i] - lows[i]
		hc := math.Abs(highs[i] - closes[i-1])
		lc := math.Abs(lows[i] - closes[i-1])
		tr[i-1] = math.Max(hl, math.Max(hc, lc))
	}
	return tr
}

// ATR returns the Wilder-smoothed average true range.
func ATR(highs, lows, closes []float64, period int) float64 {
	tr := trueRanges(highs, lows, closes)
	if period <= 0 || len(tr) < period {
		return 0
	}
	atr := 0.0
	for _, v := range tr[:period] {
		atr += v
	}
	atr /= float64(period)
	for _, v := range tr[period:] {
		atr = (atr*float64(period-1) + v) / float64(period)
	}
	return atr
}

// ADX returns the Wilder average directional index.
func ADX(highs, lows, closes []float64, period int) float64 {
	n := len(highs)
	if period <= 0 || n < 2*period+1 {
		return 0
	}

	plusDM := make([]float64, n-1)
	minusDM := make([]float64, n-1)
	for i := 1; i < n; i++ {
		up := highs[i] - highs[i-1]
		down := lows[i-1] - lows[i]
		if up > down && up > 0 {
			plusDM[i-1] = up
		}
		if down > up && down > 0 {
			minusDM[i-1] = down
		}
	}
	tr := trueRanges(highs, lows, closes)

	wilder := func(xs []float64) []float64 {
		out := make([]float64, 0, len(xs)-period+1)
		sum := 0.0
		for _, v := range xs[:period] {
			sum += v
		}
		out = append(out, sum)
		for _, v := range xs[period:] {
			sum = sum - sum/float64(period) + v
			out = append(out, sum)
		}
		return out
	}

	trS := wilder(tr)
	plusS := wilder(plusDM)
	minusS := wilder(minusDM)

	dx := make([]float64, len(trS))
	for i := range trS {
		if trS[i] == 0 {
			continue
		}
		pdi := 100 * plusS[i] / trS[i]
		mdi := 100 * minusS[i] / trS[i]
		if pdi+mdi > 0 {
			dx[i] = 100 * math.Abs(pdi-mdi) / (pdi + mdi)
		}
	}
	if len(dx) < period {
		return 0
	}
	adx := 0.0
	for _, v := range dx[:period] {
		adx += v
	}
	adx /= float64(period)
	for _, v := range dx[period:] {
		adx = (adx*float64(period-1) + v) / float64(period)
	}
	return adx
}

// Stochastic returns the fast %K and its signal %D (SMA of the last
// signalPeriod %K values).
func Stochastic(highs, lows, closes []float64, period, signalPeriod int) (k, d float64, ok bool) {
	if period <= 0 || len(closes) < period+signalPeriod-1 {
		return 0, 0, false
	}
	kAt := func(end int) float64 {
		hi, lo := highs[end], lows[end]
		for i := end - period + 1; i <= end; i++ {
			hi = math.Max(hi, highs[i])
			lo = math.Min(lo, lows[i])
		}
		if hi == lo {
			return 50
		}
		return 100 * (closes[end] - lo) / (hi - lo)
	}
	last := len(closes) - 1
	k = kAt(last)
	sum := 0.0
	for i := 0; i < signalPeriod; i++ {
		sum += kAt(last - i)
	}
	return k, sum / float64(signalPeriod), true
}

// StdDev returns the population standard deviation of the last period
// values.
func StdDev(values []float64, period int) float64 {
	if period <= 0 || len(values) < period {
		return 0
	}
	mean := SMA(values, period)
	sum := 0.0
	for _, v := range values[len(values)-period:] {
		d := v - mean
		sum += d * d
	}
	return math.Sqrt(sum / float64(period))
}
