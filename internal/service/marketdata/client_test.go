package marketdata

import (
	"testing"
	"time"
)

func TestChartRangeSnapsToIntervalBuckets(t *testing.T) {
	now := time.Date(2024, 3, 1, 14, 37, 22, 0, time.UTC)

	from, to := chartRange(now, 5, "15m")
	if got := time.Unix(to, 0).UTC(); got.Minute() != 30 || got.Second() != 0 {
		t.Fatalf("15m window end not on a quarter-hour boundary: %v", got)
	}
	if got := time.Unix(from, 0).UTC(); got.Minute()%15 != 0 {
		t.Fatalf("15m window start not aligned: %v", got)
	}

	from, to = chartRange(now, 30, "1h")
	start, end := time.Unix(from, 0).UTC(), time.Unix(to, 0).UTC()
	if end.Minute() != 0 || start.Minute() != 0 {
		t.Fatalf("1h window not aligned: %v .. %v", start, end)
	}
	if days := end.Sub(start).Hours() / 24; days != 30 {
		t.Fatalf("lookback span = %v days, want 30", days)
	}
}

func TestChartRangeStableWithinBar(t *testing.T) {
	early := time.Date(2024, 3, 1, 10, 16, 0, 0, time.UTC)
	late := time.Date(2024, 3, 1, 10, 29, 59, 0, time.UTC)

	f1, t1 := chartRange(early, 5, "15m")
	f2, t2 := chartRange(late, 5, "15m")
	if f1 != f2 || t1 != t2 {
		t.Fatalf("windows diverged within one bar: (%d,%d) vs (%d,%d)", f1, t1, f2, t2)
	}
}
