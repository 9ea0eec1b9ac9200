// Package outcome derives the actual-result facts used for scoring from an
// event's recorded progress.
package outcome

import (
	"math"
	"sort"

	"github.com/okian/rumble/internal/domain/model"
)

// Entry positions with dedicated scoring categories.
const (
	entryPositionOne    = 1
	entryPositionTwo    = 2
	entryPositionThirty = 30
)

// finalFourSize is how many of the longest-surviving entrants count.
const finalFourSize = 4

// Outcome is the set of facts scoring compares picks against. Undefined
// facts stay zero: a zero WinnerID, for example, means no winner category
// signal rather than a wrong guess.
type Outcome struct {
	HasData bool

	// ActualEntrants holds every entrant id with an Entry recorded.
	ActualEntrants map[string]bool

	// FinalFour lists entrant ids by latest elimination, descending. A
	// still-active entrant sorts latest of all.
	FinalFour []string

	// WinnerID is set only when exactly one entry is still active.
	WinnerID string

	EntryOneID    string
	EntryTwoID    string
	EntryThirtyID string

	// EliminationLeaders holds every entrant tied at the maximum credited
	// elimination count.
	EliminationLeaders map[string]bool

	// Matches holds facts for every match with a recorded winner.
	Matches map[string]MatchOutcome
}

// MatchOutcome carries the recorded result facts for one match.
type MatchOutcome struct {
	WinnerSideID     string
	WinnerEntrantID  string
	Finish           model.FinishMethod
	FinishWinnerID   string
	FinishLoserID    string
	ParticipantCount int
}

// Extract computes the outcome facts from the event's entries and matches.
// It is a pure function; callers re-run it whenever scoring is requested.
func Extract(entries []model.Entry, matches []model.Match) Outcome {
	o := Outcome{
		HasData:            len(entries) > 0,
		ActualEntrants:     make(map[string]bool, len(entries)),
		EliminationLeaders: make(map[string]bool),
		Matches:            make(map[string]MatchOutcome, len(matches)),
	}
	for _, e := range entries {
		o.ActualEntrants[e.EntrantID] = true
	}

	o.FinalFour = finalFour(entries)
	o.WinnerID = winner(entries)

	for _, e := range entries {
		switch e.Number {
		case entryPositionOne:
			o.EntryOneID = e.EntrantID
		case entryPositionTwo:
			o.EntryTwoID = e.EntrantID
		case entryPositionThirty:
			o.EntryThirtyID = e.EntrantID
		}
	}

	if len(entries) > 0 {
		maxElims := entries[0].Eliminations
		for _, e := range entries[1:] {
			if e.Eliminations > maxElims {
				maxElims = e.Eliminations
			}
		}
		for _, e := range entries {
			if e.Eliminations == maxElims {
				o.EliminationLeaders[e.EntrantID] = true
			}
		}
	}

	for _, m := range matches {
		if m.WinnerSideID == "" {
			// No recorded winner, no scoring signal for this match.
			continue
		}
		o.Matches[m.ID] = MatchOutcome{
			WinnerSideID:     m.WinnerSideID,
			WinnerEntrantID:  m.WinnerEntrantID,
			Finish:           m.Finish,
			FinishWinnerID:   m.FinishWinnerID,
			FinishLoserID:    m.FinishLoserID,
			ParticipantCount: m.ParticipantCount(),
		}
	}

	return o
}

// elimKey orders entries by elimination time. Active entries use a sentinel
// later than any real timestamp.
func elimKey(e model.Entry) int64 {
	if e.EliminatedAt == nil {
		return math.MaxInt64
	}
	return e.EliminatedAt.UnixNano()
}

// finalFour returns up to four entrant ids ordered latest elimination
// first. Ties keep input order; that indeterminacy is accepted.
func finalFour(entries []model.Entry) []string {
	sorted := make([]model.Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return elimKey(sorted[i]) > elimKey(sorted[j])
	})

	n := finalFourSize
	if len(sorted) < n {
		n = len(sorted)
	}
	ids := make([]string, 0, n)
	for _, e := range sorted[:n] {
		ids = append(ids, e.EntrantID)
	}
	return ids
}

// winner is defined only when exactly one entry remains active.
func winner(entries []model.Entry) string {
	id := ""
	active := 0
	for _, e := range entries {
		if e.Active() {
			active++
			id = e.EntrantID
		}
	}
	if active != 1 {
		return ""
	}
	return id
}
