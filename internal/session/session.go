// Package session maps timestamps onto US equity session phases and
// extracts the opening range. All arithmetic is done in Eastern Time.
package session

import (
	"time"

	"SignalDesk/internal/domain/models"
)

var eastern = mustLoad("America/New_York")

func mustLoad(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic("session: load location " + name + ": " + err.Error())
	}
	return loc
}

const (
	// EODCutoffHour is the ET hour after which the simulator closes any
	// open intraday position at the bar's close.
	EODCutoffHour = 15
)

// minuteOfDay converts t to ET minutes since midnight.
func minuteOfDay(t time.Time) int {
	et := t.In(eastern)
	return et.Hour()*60 + et.Minute()
}

// Phase returns the session phase a timestamp falls into.
func Phase(t time.Time) models.SessionPhase {
	et := t.In(eastern)
	if wd := et.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return models.PhaseClosed
	}

	m := minuteOfDay(t)
	switch {
	case m < 4*60:
		return models.PhaseClosed
	case m < 9*60+30:
		return models.PhasePreMarket
	case m < 10*60:
		return models.PhaseOpening
	case m < 12*60:
		return models.PhaseMorning
	case m < 13*60+30:
		return models.PhaseLunch
	case m < 15*60:
		return models.PhaseAfternoon
	case m < 16*60:
		return models.PhasePowerHour
	case m < 20*60:
		return models.PhasePost
	default:
		return models.PhaseClosed
	}
}

// IsMarketOpen reports whether t falls within regular trading hours.
func IsMarketOpen(t time.Time) bool {
	switch Phase(t) {
	case models.PhaseOpening, models.PhaseMorning, models.PhaseLunch,
		models.PhaseAfternoon, models.PhasePowerHour:
		return true
	default:
		return false
	}
}

// PastEODCutoff reports whether t is at or past the intraday exit cutoff.
func PastEODCutoff(t time.Time) bool {
	return t.In(eastern).Hour() >= EODCutoffHour
}

// SameETDay reports whether a and b fall on the same Eastern calendar day.
func SameETDay(a, b time.Time) bool {
	ae, be := a.In(eastern), b.In(eastern)
	return ae.Year() == be.Year() && ae.YearDay() == be.YearDay()
}

// OpeningRange computes the high/low of the 09:30-10:00 ET window of the
// last session present in candles. Returns nil when no candle falls inside
// the window.
func OpeningRange(candles []models.Candle) *models.OpeningRange {
	if len(candles) == 0 {
		return nil
	}
	last := candles[len(candles)-1].Timestamp

	high, low := 0.0, 0.0
	found := false
	for _, c := range candles {
		if !SameETDay(c.Timestamp, last) {
			continue
		}
		m := minuteOfDay(c.Timestamp)
		if m < 9*60+30 || m >= 10*60 {
			continue
		}
		if !found || c.High > high {
			high = c.High
		}
		if !found || c.Low < low {
			low = c.Low
		}
		found = true
	}
	if !found {
		return nil
	}
	return &models.OpeningRange{High: high, Low: low, Range: high - low}
}
