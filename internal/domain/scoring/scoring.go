package scoring

import (
	"github.com/okian/rumble/internal/domain/model"
	"github.com/okian/rumble/internal/domain/outcome"
)

// Option applies a configuration option to the Calculator.
type Option func(*Calculator)

// WithWeights overlays configured category weights onto the default rule
// table. Unrecognized keys and negative weights are ignored.
func WithWeights(weights map[string]int) Option {
	return func(c *Calculator) {
		c.rules.merge(weights)
	}
}

// Calculator scores validated payloads against extracted outcomes. It holds
// no mutable state and is safe for concurrent use.
type Calculator struct {
	rules Rules
}

// New creates a Calculator with configuration options.
func New(opts ...Option) *Calculator {
	c := &Calculator{rules: DefaultRules()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Result is the computed total plus its per-category decomposition. Every
// category keeps an entry even at zero so "0 pts" renders distinctly from
// "not applicable".
type Result struct {
	Total     int
	Breakdown map[string]int
}

// Score computes the point total and breakdown for one payload against one
// outcome. The payload is assumed validated; the function is pure and
// idempotent.
func (c *Calculator) Score(p model.PickPayload, o outcome.Outcome) Result {
	breakdown := make(map[string]int, len(Categories()))
	for _, key := range Categories() {
		breakdown[key] = 0
	}

	breakdown[CategoryEntrants] = c.scoreEntrants(p.Rumble.EntrantIDs, o)
	breakdown[CategoryFinalFour] = c.scoreFinalFour(p.Rumble.FinalFour, o)

	if o.WinnerID != "" && p.Rumble.WinnerID == o.WinnerID {
		breakdown[CategoryWinner] = c.rules[CategoryWinner]
	}
	if o.EntryOneID != "" && p.Rumble.EntryOneID == o.EntryOneID {
		breakdown[CategoryEntryOne] = c.rules[CategoryEntryOne]
	}
	if o.EntryTwoID != "" && p.Rumble.EntryTwoID == o.EntryTwoID {
		breakdown[CategoryEntryTwo] = c.rules[CategoryEntryTwo]
	}
	if o.EntryThirtyID != "" && p.Rumble.EntryThirtyID == o.EntryThirtyID {
		breakdown[CategoryEntryThirty] = c.rules[CategoryEntryThirty]
	}
	if p.Rumble.MostEliminationsID != "" && o.EliminationLeaders[p.Rumble.MostEliminationsID] {
		// Ties all count: any picked co-leader earns full credit.
		breakdown[CategoryMostEliminations] = c.rules[CategoryMostEliminations]
	}

	for _, mp := range p.Matches {
		fact, ok := o.Matches[mp.MatchID]
		if !ok {
			continue
		}
		if mp.SideID == fact.WinnerSideID {
			breakdown[CategoryMatchWinner] += c.rules[CategoryMatchWinner]
		}
		if fact.ParticipantCount <= 2 {
			// Finish detail for two-participant matches is implied by the
			// winner pick granularity; no separate credit.
			continue
		}
		if fact.Finish != model.FinishUnset && mp.Finish == fact.Finish {
			breakdown[CategoryMatchFinishMethod] += c.rules[CategoryMatchFinishMethod]
		}
		if fact.FinishWinnerID != "" && mp.FinishWinnerID == fact.FinishWinnerID {
			breakdown[CategoryMatchFinishWinner] += c.rules[CategoryMatchFinishWinner]
		}
		if fact.FinishLoserID != "" && mp.FinishLoserID == fact.FinishLoserID {
			breakdown[CategoryMatchFinishLoser] += c.rules[CategoryMatchFinishLoser]
		}
	}

	total := 0
	for _, pts := range breakdown {
		total += pts
	}
	return Result{Total: total, Breakdown: breakdown}
}

// scoreEntrants counts predicted entrants present in the actual entry set.
func (c *Calculator) scoreEntrants(predicted []string, o outcome.Outcome) int {
	hits := 0
	for _, id := range predicted {
		if o.ActualEntrants[id] {
			hits++
		}
	}
	return hits * c.rules[CategoryEntrants]
}

// scoreFinalFour counts predicted ids in the actual final-four set;
// membership only, not position.
func (c *Calculator) scoreFinalFour(predicted []string, o outcome.Outcome) int {
	actual := membership(o.FinalFour)
	hits := 0
	for _, id := range predicted {
		if actual[id] {
			hits++
		}
	}
	return hits * c.rules[CategoryFinalFour]
}

func membership(ids []string) map[string]bool {
	m := make(map[string]bool, len(ids))
	for _, id := range ids {
		m[id] = true
	}
	return m
}
