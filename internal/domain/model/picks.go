package model

import "time"

// RumblePick holds one participant's predictions for the battle-royal
// segment. The narrower picks (final four, winner, position picks,
// elimination leader) must reference ids present in EntrantIDs; the picks
// validator clears any that no longer do.
type RumblePick struct {
	EntrantIDs         []string // predicted field, up to 30
	FinalFour          []string // up to 4, subset of EntrantIDs
	WinnerID           string   // "" = no pick
	EntryOneID         string   // predicted #1 entrant
	EntryTwoID         string   // predicted #2 entrant
	EntryThirtyID      string   // predicted #30 entrant
	MostEliminationsID string   // predicted elimination leader
}

// MatchPick holds one participant's prediction for a single card match.
// Finish sub-picks are only meaningful for matches with more than two total
// participants.
type MatchPick struct {
	MatchID        string
	SideID         string // predicted winning side
	Finish         FinishMethod
	FinishWinnerID string
	FinishLoserID  string
}

// PickPayload is one participant's full prediction set for an event.
// Immutable once the event locks.
type PickPayload struct {
	ParticipantID string
	EventID       string
	Rumble        RumblePick
	Matches       []MatchPick
	UpdatedAt     time.Time
}

// MatchPickFor returns the pick for the given match, if present.
func (p PickPayload) MatchPickFor(matchID string) (MatchPick, bool) {
	for _, mp := range p.Matches {
		if mp.MatchID == matchID {
			return mp, true
		}
	}
	return MatchPick{}, false
}

// Score is the computed output for one (participant, event) pair. At most
// one Score exists per pair; recomputation overwrites.
type Score struct {
	ParticipantID string
	EventID       string
	Points        int
	Breakdown     map[string]int // category key -> points, zero entries retained
	HasData       bool           // false until the event has any Entry recorded
	ComputedAt    time.Time
}

// RecalcJob asks the worker pool to recompute one participant's score for
// one event.
type RecalcJob struct {
	EventID       string
	ParticipantID string
}

// Key identifies the (participant, event) pair the job targets.
func (j RecalcJob) Key() string {
	return j.EventID + "/" + j.ParticipantID
}
