package strategy

import (
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"SignalDesk/internal/domain/models"
)

// IntradayScorers returns the scorer set evaluated on intraday
// timeframes (15m, 1h).
func IntradayScorers() []Scorer {
	return []Scorer{
		OpeningRangeBreakout{},
		VWAPBounce{},
		GoldenSetup{},
		VolatilitySqueeze{},
		VolatilityBreakout{},
		VWAPMeanReversion{},
		ValueAreaPlay{},
		OrderBlockRetest{},
		GammaExposure{},
	}
}

// SwingScorers returns the scorer set evaluated on the daily timeframe.
func SwingScorers() []Scorer {
	return []Scorer{
		InstitutionalTrend{},
		VolatilitySqueeze{},
		PanicReversion{},
		EMAMomentumConfluence{},
		SwingPullback{},
		VIXReversion{},
		GammaExposure{},
	}
}

// ScorersFor maps a timeframe onto its scorer set.
func ScorersFor(timeframe string) []Scorer {
	if timeframe == "1d" {
		return SwingScorers()
	}
	return IntradayScorers()
}

// Selector runs a scorer set over one snapshot and ranks the results.
type Selector struct {
	log zerolog.Logger
}

func NewSelector(log zerolog.Logger) *Selector {
	return &Selector{log: log.With().Str("component", "selector").Logger()}
}

// Evaluate scores the snapshot with every scorer, drops non-positive
// scores, and returns the rest sorted by score descending. Ties keep
// registration order. A panicking scorer contributes a zero signal
// instead of taking the scan down.
func (sel *Selector) Evaluate(scorers []Scorer, snap *models.IndicatorSnapshot, mkt models.MarketContext) []models.Signal {
	results := make([]models.Signal, 0, len(scorers))
	for _, sc := range scorers {
		sig := sel.evaluateOne(sc, snap, mkt)
		if sig.Score <= 0 {
			continue
		}
		results = append(results, sig)
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results
}

func (sel *Selector) evaluateOne(sc Scorer, snap *models.IndicatorSnapshot, mkt models.MarketContext) (sig models.Signal) {
	defer func() {
		if r := recover(); r != nil {
			sel.log.Error().
				Str("scorer", sc.ID()).
				Str("symbol", snap.Symbol).
				Str("timeframe", snap.Timeframe).
				Interface("panic", r).
				Msg("scorer panicked, neutralizing")
			sig = models.NeutralSignal(sc.ID(), sc.Name(), fmt.Sprintf("scorer panicked: %v", r))
		}
	}()
	return sc.Evaluate(snap, mkt)
}

// Best returns the highest-scoring signal of an already-ranked slice.
func Best(ranked []models.Signal) (models.Signal, bool) {
	if len(ranked) == 0 {
		return models.Signal{}, false
	}
	return ranked[0], true
}
