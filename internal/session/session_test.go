package session

import (
	"testing"
	"time"

	"SignalDesk/internal/domain/models"
)

func et(hour, min int) time.Time {
	// Wednesday 2024-06-12, no DST edge.
	return time.Date(2024, 6, 12, hour, min, 0, 0, eastern)
}

func TestPhase(t *testing.T) {
	cases := []struct {
		at   time.Time
		want models.SessionPhase
	}{
		{et(3, 59), models.PhaseClosed},
		{et(8, 0), models.PhasePreMarket},
		{et(9, 30), models.PhaseOpening},
		{et(9, 59), models.PhaseOpening},
		{et(10, 0), models.PhaseMorning},
		{et(12, 30), models.PhaseLunch},
		{et(14, 0), models.PhaseAfternoon},
		{et(15, 30), models.PhasePowerHour},
		{et(16, 30), models.PhasePost},
		{et(21, 0), models.PhaseClosed},
	}
	for _, c := range cases {
		if got := Phase(c.at); got != c.want {
			t.Fatalf("Phase(%v) = %s, want %s", c.at, got, c.want)
		}
	}
}

func TestPhaseWeekend(t *testing.T) {
	sat := time.Date(2024, 6, 15, 10, 30, 0, 0, eastern)
	if got := Phase(sat); got != models.PhaseClosed {
		t.Fatalf("expected CLOSED on Saturday, got %s", got)
	}
}

func TestPastEODCutoff(t *testing.T) {
	if PastEODCutoff(et(14, 59)) {
		t.Fatalf("14:59 should not be past cutoff")
	}
	if !PastEODCutoff(et(15, 0)) {
		t.Fatalf("15:00 should be past cutoff")
	}
}

func TestOpeningRange(t *testing.T) {
	mk := func(hour, min int, high, low float64) models.Candle {
		return models.Candle{Timestamp: et(hour, min), High: high, Low: low, Close: (high + low) / 2}
	}
	candles := []models.Candle{
		mk(9, 30, 101, 99),
		mk(9, 45, 103, 100),
		mk(10, 0, 110, 90), // outside the window
		mk(10, 15, 104, 102),
	}
	or := OpeningRange(candles)
	if or == nil {
		t.Fatalf("expected opening range")
	}
	if or.High != 103 || or.Low != 99 {
		t.Fatalf("unexpected range %+v", or)
	}
}

func TestOpeningRangeMissing(t *testing.T) {
	candles := []models.Candle{{Timestamp: et(11, 0), High: 1, Low: 1}}
	if or := OpeningRange(candles); or != nil {
		t.Fatalf("expected nil, got %+v", or)
	}
}
