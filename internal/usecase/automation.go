package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	domrepo "SignalDesk/internal/domain/repository"
	"SignalDesk/internal/session"
	applogger "SignalDesk/pkg/logger"
)

// activityLogSize bounds the rolling activity log exposed from Status.
const activityLogSize = 50

// ActivityEntry is one line of the scheduler's rolling log.
type ActivityEntry struct {
	At      time.Time `json:"at"`
	Symbol  string    `json:"symbol,omitempty"`
	Message string    `json:"message"`
}

// AutomationStatus is the externally observable scheduler state.
type AutomationStatus struct {
	Running         bool            `json:"running"`
	IntervalMinutes int             `json:"intervalMinutes"`
	Watchlist       []string        `json:"watchlist"`
	LastCycleAt     time.Time       `json:"lastCycleAt,omitempty"`
	CyclesRun       int             `json:"cyclesRun"`
	Activity        []ActivityEntry `json:"activity"`
}

// realClock satisfies the Clock dependency with wall time.
type realClock struct{}

func (realClock) Now() time.Time { return time.Now().UTC() }

// SystemClock returns a wall-clock Clock.
func SystemClock() domrepo.Clock { return realClock{} }

// AutomationUseCase is the periodic scan scheduler. All dependencies
// are injected; there is no shared global state.
type AutomationUseCase struct {
	scanner *ScannerUseCase
	clock   domrepo.Clock
	l       *applogger.Logger

	mu        sync.Mutex
	running   bool
	cancel    context.CancelFunc
	interval  time.Duration
	watchlist []string
	lastCycle time.Time
	cycles    int
	activity  []ActivityEntry
}

func NewAutomationUseCase(scanner *ScannerUseCase, clock domrepo.Clock, watchlist []string, l *applogger.Logger) *AutomationUseCase {
	if clock == nil {
		clock = SystemClock()
	}
	return &AutomationUseCase{
		scanner:   scanner,
		clock:     clock,
		watchlist: watchlist,
		l:         l,
	}
}

// Start launches the scan loop. A second Start while running is an error.
func (uc *AutomationUseCase) Start(ctx context.Context, intervalMinutes int) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.running {
		return fmt.Errorf("automation already running")
	}
	if intervalMinutes <= 0 {
		intervalMinutes = 15
	}
	if len(uc.watchlist) == 0 {
		return fmt.Errorf("watchlist empty")
	}

	loopCtx, cancel := context.WithCancel(ctx)
	uc.cancel = cancel
	uc.running = true
	uc.interval = time.Duration(intervalMinutes) * time.Minute
	uc.logActivity("", fmt.Sprintf("automation started, interval %dm", intervalMinutes))

	go uc.loop(loopCtx)
	return nil
}

// Stop halts the loop; safe to call when not running.
func (uc *AutomationUseCase) Stop() {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if !uc.running {
		return
	}
	uc.cancel()
	uc.running = false
	uc.logActivity("", "automation stopped")
}

// Status snapshots the scheduler state.
func (uc *AutomationUseCase) Status() AutomationStatus {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	activity := make([]ActivityEntry, len(uc.activity))
	copy(activity, uc.activity)
	watchlist := make([]string, len(uc.watchlist))
	copy(watchlist, uc.watchlist)
	return AutomationStatus{
		Running:         uc.running,
		IntervalMinutes: int(uc.interval.Minutes()),
		Watchlist:       watchlist,
		LastCycleAt:     uc.lastCycle,
		CyclesRun:       uc.cycles,
		Activity:        activity,
	}
}

// SetWatchlist replaces the scanned symbol set.
func (uc *AutomationUseCase) SetWatchlist(symbols []string) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.watchlist = append(uc.watchlist[:0:0], symbols...)
}

func (uc *AutomationUseCase) loop(ctx context.Context) {
	// First cycle fires immediately, like the interval timer had already
	// elapsed once.
	uc.runCycle(ctx)

	ticker := time.NewTicker(uc.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			uc.runCycle(ctx)
		}
	}
}

func (uc *AutomationUseCase) runCycle(ctx context.Context) {
	now := uc.clock.Now()
	if !session.IsMarketOpen(now) {
		uc.mu.Lock()
		uc.logActivity("", "market closed, cycle skipped")
		uc.mu.Unlock()
		return
	}

	uc.mu.Lock()
	symbols := make([]string, len(uc.watchlist))
	copy(symbols, uc.watchlist)
	uc.mu.Unlock()

	uc.l.Info("automation cycle starting", applogger.Int("symbols", len(symbols)))
	results := uc.scanner.BatchScan(ctx, symbols)

	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.lastCycle = now
	uc.cycles++
	for _, res := range results {
		switch {
		case res.Error != "":
			uc.logActivity(res.Symbol, "scan failed: "+res.Error)
		case res.Decision != nil && res.Decision.BestStrategy.Actionable():
			uc.logActivity(res.Symbol, fmt.Sprintf("%s (%d) via %s",
				res.Decision.FinalSignal, res.Decision.FinalScore, res.Decision.BestStrategy.Name))
		}
	}
	uc.logActivity("", fmt.Sprintf("cycle complete, %d symbols", len(symbols)))
}

// logActivity appends to the rolling log; callers hold uc.mu except
// during construction.
func (uc *AutomationUseCase) logActivity(symbol, msg string) {
	entry := ActivityEntry{At: uc.clock.Now(), Symbol: symbol, Message: msg}
	uc.activity = append(uc.activity, entry)
	if len(uc.activity) > activityLogSize {
		uc.activity = uc.activity[len(uc.activity)-activityLogSize:]
	}
}
