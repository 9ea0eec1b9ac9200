// Package scoring computes a point total and per-category breakdown from a
// validated pick payload and an extracted outcome.
package scoring

// Scoring category keys. Which categories exist is fixed; their weights
// come from configuration.
const (
	CategoryEntrants          = "entrants"
	CategoryFinalFour         = "final_four"
	CategoryWinner            = "winner"
	CategoryEntryOne          = "entry_1"
	CategoryEntryTwo          = "entry_2"
	CategoryEntryThirty       = "entry_30"
	CategoryMostEliminations  = "most_eliminations"
	CategoryMatchWinner       = "match_winner"
	CategoryMatchFinishMethod = "match_finish_method"
	CategoryMatchFinishWinner = "match_finish_winner"
	CategoryMatchFinishLoser  = "match_finish_loser"
)

// Categories lists every scoring category in breakdown order.
func Categories() []string {
	return []string{
		CategoryEntrants,
		CategoryFinalFour,
		CategoryWinner,
		CategoryEntryOne,
		CategoryEntryTwo,
		CategoryEntryThirty,
		CategoryMostEliminations,
		CategoryMatchWinner,
		CategoryMatchFinishMethod,
		CategoryMatchFinishWinner,
		CategoryMatchFinishLoser,
	}
}

// Rules maps category keys to non-negative point weights.
type Rules map[string]int

// DefaultRules returns the stock rule table.
func DefaultRules() Rules {
	return Rules{
		CategoryEntrants:          1,
		CategoryFinalFour:         4,
		CategoryWinner:            12,
		CategoryEntryOne:          5,
		CategoryEntryTwo:          5,
		CategoryEntryThirty:       5,
		CategoryMostEliminations:  8,
		CategoryMatchWinner:       5,
		CategoryMatchFinishMethod: 2,
		CategoryMatchFinishWinner: 2,
		CategoryMatchFinishLoser:  2,
	}
}

// merge overlays recognized, non-negative weights onto the rule table.
func (r Rules) merge(overrides map[string]int) {
	for _, key := range Categories() {
		w, ok := overrides[key]
		if !ok || w < 0 {
			continue
		}
		r[key] = w
	}
}
