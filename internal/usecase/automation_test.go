package usecase

import (
	"context"
	"testing"
	"time"
)

// frozenClock always reports the same instant.
type frozenClock struct{ at time.Time }

func (c frozenClock) Now() time.Time { return c.at }

func testAutomation(watchlist []string) *AutomationUseCase {
	uc := testScanner(&fakeData{candles: dailyHistory(260)}, newFakeStore(), nil, newFakeMetrics())
	// A Saturday, so the immediate first cycle skips instead of scanning.
	clock := frozenClock{at: time.Date(2024, 3, 2, 15, 0, 0, 0, time.UTC)}
	return NewAutomationUseCase(uc, clock, watchlist, uc.l)
}

func TestAutomationStartRejectsEmptyWatchlist(t *testing.T) {
	uc := testAutomation(nil)
	if err := uc.Start(context.Background(), 15); err == nil {
		t.Fatal("expected error for empty watchlist")
	}
}

func TestAutomationDoubleStart(t *testing.T) {
	uc := testAutomation([]string{"SPY"})
	if err := uc.Start(context.Background(), 15); err != nil {
		t.Fatalf("first Start: %v", err)
	}
	defer uc.Stop()
	if err := uc.Start(context.Background(), 15); err == nil {
		t.Fatal("expected error for second Start while running")
	}
}

func TestAutomationStopIsIdempotent(t *testing.T) {
	uc := testAutomation([]string{"SPY"})
	uc.Stop() // not running yet

	if err := uc.Start(context.Background(), 5); err != nil {
		t.Fatalf("Start: %v", err)
	}
	uc.Stop()
	uc.Stop()

	st := uc.Status()
	if st.Running {
		t.Error("still running after Stop")
	}
	if st.IntervalMinutes != 5 {
		t.Errorf("interval = %d, want 5", st.IntervalMinutes)
	}
}

func TestAutomationStatusSnapshot(t *testing.T) {
	uc := testAutomation([]string{"SPY", "QQQ"})
	st := uc.Status()
	if st.Running {
		t.Error("running before Start")
	}
	if len(st.Watchlist) != 2 {
		t.Fatalf("watchlist = %v", st.Watchlist)
	}

	// Mutating the returned slice must not touch the scheduler's copy.
	st.Watchlist[0] = "XXX"
	if uc.Status().Watchlist[0] != "SPY" {
		t.Error("Status leaked internal watchlist slice")
	}
}

func TestAutomationSetWatchlist(t *testing.T) {
	uc := testAutomation([]string{"SPY"})
	uc.SetWatchlist([]string{"AAPL", "NVDA", "TSLA"})
	st := uc.Status()
	if len(st.Watchlist) != 3 || st.Watchlist[0] != "AAPL" {
		t.Errorf("watchlist = %v", st.Watchlist)
	}
}

func TestAutomationDefaultInterval(t *testing.T) {
	uc := testAutomation([]string{"SPY"})
	if err := uc.Start(context.Background(), 0); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer uc.Stop()
	if got := uc.Status().IntervalMinutes; got != 15 {
		t.Errorf("interval = %d, want default 15", got)
	}
}
