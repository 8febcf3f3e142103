package repository

import (
	"context"
	"errors"
	"time"

	"SignalDesk/internal/domain/models"
)

// ErrUpstream marks failures of the external data feed, as opposed to
// bad input or local faults. Handlers map it to a gateway status.
var ErrUpstream = errors.New("market data upstream error")

// MarketData fetches candle history and market context from the upstream
// data provider. Implementations own retries and timeouts; the engine never
// performs I/O itself.
type MarketData interface {
	History(ctx context.Context, symbol string, tf Timeframe, days int) ([]models.Candle, error)
	Context(ctx context.Context) (models.MarketContext, error)
}

// QuoteStream delivers live quote updates for watched symbols.
type QuoteStream interface {
	Connect(ctx context.Context) error
	Subscribe(ctx context.Context, symbols []string) error
	Read(ctx context.Context) (<-chan models.Quote, <-chan error)
	Close() error
	IsConnected() bool
}

// DecisionStore keeps at most one live Decision per symbol; Save overwrites.
type DecisionStore interface {
	Save(ctx context.Context, d *models.Decision) error
	Get(ctx context.Context, symbol string) (*models.Decision, error)
	Close() error
}

// TradeLedger persists backtest trade rows keyed by run ID.
type TradeLedger interface {
	Init(ctx context.Context) error
	StoreRun(ctx context.Context, runID string, trades []models.Trade) error
	QueryRun(ctx context.Context, runID string, limit int, from, to time.Time) ([]models.Trade, error)
	Health(ctx context.Context) error
	Close() error
}

// AlertPublisher pushes high-score decisions to downstream consumers.
type AlertPublisher interface {
	Publish(ctx context.Context, d *models.Decision) error
	Close() error
}

// Metrics records operational counters for the scanner and backtester.
type Metrics interface {
	RecordScan(symbol string, durSeconds float64)
	RecordError(kind string)
	RecordTopScore(symbol string, score int)
	RecordBacktest(symbol string, durSeconds float64)
}

// Clock abstracts wall-clock reads so automation is testable; the scoring
// and simulation core never reads it.
type Clock interface {
	Now() time.Time
}
