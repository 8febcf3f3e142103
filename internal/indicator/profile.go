package indicator

import "SignalDesk/internal/domain/models"

const (
	profileLookback = 50
	profileBuckets  = 24
	valueAreaShare  = 0.70
)

// VolumeProfile distributes traded volume over price buckets for the last
// profileLookback candles and derives the point of control plus the 70%
// value area around it.
func VolumeProfile(candles []models.Candle) *models.ValueArea {
	if len(candles) == 0 {
		return nil
	}
	window := candles
	if len(window) > profileLookback {
		window = window[len(window)-profileLookback:]
	}

	minPrice, maxPrice := window[0].Low, window[0].High
	total := 0.0
	for _, c := range window {
		if c.Low < minPrice {
			minPrice = c.Low
		}
		if c.High > maxPrice {
			maxPrice = c.High
		}
		total += c.Volume
	}
	if maxPrice <= minPrice || total == 0 {
		return nil
	}

	step := (maxPrice - minPrice) / profileBuckets
	buckets := make([]float64, profileBuckets)
	for _, c := range window {
		idx := int((c.Close - minPrice) / step)
		if idx >= profileBuckets {
			idx = profileBuckets - 1
		}
		if idx < 0 {
			idx = 0
		}
		buckets[idx] += c.Volume
	}

	poc := 0
	for i, v := range buckets {
		if v > buckets[poc] {
			poc = i
		}
	}

	// Expand around the POC until the value area covers 70% of volume.
	lo, hi := poc, poc
	covered := buckets[poc]
	for covered < total*valueAreaShare && (lo > 0 || hi < profileBuckets-1) {
		below, above := -1.0, -1.0
		if lo > 0 {
			below = buckets[lo-1]
		}
		if hi < profileBuckets-1 {
			above = buckets[hi+1]
		}
		if above >= below {
			hi++
			covered += above
		} else {
			lo--
			covered += below
		}
	}

	center := func(i int) float64 { return minPrice + float64(i)*step + step/2 }
	return &models.ValueArea{
		POC:  center(poc),
		High: center(hi) + step/2,
		Low:  center(lo) - step/2,
	}
}

// OrderBlock finds the most recent high-volume down candle that preceded a
// close above its high, the zone institutional buyers defended. Returns nil
// when no such candle exists in the last lookback bars.
func OrderBlock(candles []models.Candle, lookback int) *models.PriceZone {
	if len(candles) < 3 {
		return nil
	}
	start := len(candles) - lookback
	if start < 1 {
		start = 1
	}
	avgVol := 0.0
	for _, c := range candles[start:] {
		avgVol += c.Volume
	}
	avgVol /= float64(len(candles) - start)

	for i := len(candles) - 2; i >= start; i-- {
		c := candles[i]
		if c.Close >= c.Open || c.Volume < avgVol*1.2 {
			continue
		}
		// Confirmed when a later close clears the candidate's high.
		for j := i + 1; j < len(candles); j++ {
			if candles[j].Close > c.High {
				return &models.PriceZone{High: c.High, Low: c.Low}
			}
		}
	}
	return nil
}
