package indicator

import (
	"math"
	"testing"
	"time"

	"SignalDesk/internal/domain/models"
)

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestKeyLevelsPivotsAndFibs(t *testing.T) {
	ts := time.Date(2024, 3, 4, 21, 0, 0, 0, time.UTC)
	candles := []models.Candle{
		{Timestamp: ts, Open: 95, High: 120, Low: 90, Close: 100, Volume: 1},
		{Timestamp: ts.AddDate(0, 0, 1), Open: 101, High: 110, Low: 100, Close: 108, Volume: 1},
		{Timestamp: ts.AddDate(0, 0, 2), Open: 109, High: 112, Low: 106, Close: 111, Volume: 1},
	}

	kl := KeyLevels(candles)
	if kl == nil {
		t.Fatal("KeyLevels returned nil for a 3-bar window")
	}

	if kl.PrevHigh != 110 || kl.PrevLow != 100 || kl.PrevClose != 108 || kl.PrevOpen != 101 {
		t.Fatalf("prior-bar OHLC = %+v", kl)
	}
	if kl.CurrOpen != 109 {
		t.Errorf("currOpen = %v, want 109", kl.CurrOpen)
	}

	// P = (110+100+108)/3, R1 = 2P-L, S1 = 2P-H, R2/S2 offset by the range.
	p := (110.0 + 100.0 + 108.0) / 3
	if !approx(kl.Pivots.P, p) {
		t.Errorf("pivot = %v, want %v", kl.Pivots.P, p)
	}
	if !approx(kl.Pivots.R1, 2*p-100) || !approx(kl.Pivots.S1, 2*p-110) {
		t.Errorf("r1/s1 = %v/%v", kl.Pivots.R1, kl.Pivots.S1)
	}
	if !approx(kl.Pivots.R2, p+10) || !approx(kl.Pivots.S2, p-10) {
		t.Errorf("r2/s2 = %v/%v", kl.Pivots.R2, kl.Pivots.S2)
	}

	// Retracements measure down from the window high over the full range.
	if kl.Fibs.High != 120 || kl.Fibs.Low != 90 {
		t.Fatalf("range = %v..%v, want 90..120", kl.Fibs.Low, kl.Fibs.High)
	}
	if !approx(kl.Fibs.Fib500, 105) {
		t.Errorf("fib500 = %v, want 105", kl.Fibs.Fib500)
	}
	if !approx(kl.Fibs.Fib236, 120-30*0.236) {
		t.Errorf("fib236 = %v", kl.Fibs.Fib236)
	}
	if kl.Fibs.Fib786 >= kl.Fibs.Fib618 || kl.Fibs.Fib618 >= kl.Fibs.Fib382 {
		t.Error("fib levels not descending from the high")
	}
}

func TestKeyLevelsNeedTwoBars(t *testing.T) {
	if kl := KeyLevels(nil); kl != nil {
		t.Fatalf("KeyLevels(nil) = %+v, want nil", kl)
	}
	one := []models.Candle{{Open: 1, High: 2, Low: 1, Close: 2}}
	if kl := KeyLevels(one); kl != nil {
		t.Fatalf("KeyLevels(1 bar) = %+v, want nil", kl)
	}
}
