package strategy

import (
	"sort"
	"testing"

	"github.com/rs/zerolog"

	"SignalDesk/internal/domain/models"
)

type stubScorer struct {
	id    string
	score int
	panic bool
}

func (s stubScorer) ID() string   { return s.id }
func (s stubScorer) Name() string { return s.id }

func (s stubScorer) Evaluate(_ *models.IndicatorSnapshot, _ models.MarketContext) models.Signal {
	if s.panic {
		panic("boom")
	}
	return models.Signal{ID: s.id, Name: s.id, Score: s.score, Signal: models.SignalBuy}
}

func TestSelectorSortsAndFilters(t *testing.T) {
	sel := NewSelector(zerolog.Nop())
	scorers := []Scorer{
		stubScorer{id: "low", score: 20},
		stubScorer{id: "zero", score: 0},
		stubScorer{id: "high", score: 90},
		stubScorer{id: "negative", score: -5},
		stubScorer{id: "mid", score: 55},
	}

	ranked := sel.Evaluate(scorers, bullishSnapshot(), models.MarketContext{})

	if len(ranked) != 3 {
		t.Fatalf("got %d signals, want 3 (zero/negative dropped)", len(ranked))
	}
	if !sort.SliceIsSorted(ranked, func(i, j int) bool { return ranked[i].Score > ranked[j].Score }) {
		t.Fatalf("signals not sorted descending: %+v", ranked)
	}
	if ranked[0].ID != "high" || ranked[2].ID != "low" {
		t.Fatalf("unexpected order: %s..%s", ranked[0].ID, ranked[2].ID)
	}
}

func TestSelectorStableOnTies(t *testing.T) {
	sel := NewSelector(zerolog.Nop())
	scorers := []Scorer{
		stubScorer{id: "first", score: 50},
		stubScorer{id: "second", score: 50},
		stubScorer{id: "third", score: 50},
	}

	ranked := sel.Evaluate(scorers, bullishSnapshot(), models.MarketContext{})

	want := []string{"first", "second", "third"}
	for i, id := range want {
		if ranked[i].ID != id {
			t.Fatalf("tie order broken at %d: got %s, want %s", i, ranked[i].ID, id)
		}
	}
}

func TestSelectorRecoversPanickingScorer(t *testing.T) {
	sel := NewSelector(zerolog.Nop())
	scorers := []Scorer{
		stubScorer{id: "ok", score: 60},
		stubScorer{id: "bad", panic: true},
		stubScorer{id: "also-ok", score: 40},
	}

	ranked := sel.Evaluate(scorers, bullishSnapshot(), models.MarketContext{})

	if len(ranked) != 2 {
		t.Fatalf("got %d signals, want 2 (panicking scorer neutralized)", len(ranked))
	}
	for _, sig := range ranked {
		if sig.ID == "bad" {
			t.Fatal("panicking scorer leaked a non-zero signal")
		}
	}
}

func TestBestEmpty(t *testing.T) {
	if _, ok := Best(nil); ok {
		t.Fatal("Best(nil) reported a signal")
	}
}
