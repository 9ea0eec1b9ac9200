package model

import "time"

// Entry is one contestant's participation record in an event's battle-royal
// segment. At most one Entry exists per (event, entrant) pair.
type Entry struct {
	EntrantID    string
	Number       int        // numeric entry position, 0 until assigned
	EliminatedAt *time.Time // nil while still active
	Eliminations int        // eliminations credited to this entrant
	EliminatedBy string     // entrant id credited with the elimination, "" if none
}

// Active reports whether the entrant has not been eliminated yet.
func (e Entry) Active() bool {
	return e.EliminatedAt == nil
}

// FinishMethod is how a match ended.
type FinishMethod string

const (
	FinishUnset            FinishMethod = ""
	FinishPinfall          FinishMethod = "pinfall"
	FinishSubmission       FinishMethod = "submission"
	FinishDisqualification FinishMethod = "disqualification"
)

// Valid reports whether the finish method is one of the recognized values.
func (f FinishMethod) Valid() bool {
	switch f {
	case FinishUnset, FinishPinfall, FinishSubmission, FinishDisqualification:
		return true
	}
	return false
}

// MatchFormat is the structure of a card match.
type MatchFormat string

const (
	FormatSingles      MatchFormat = "singles"
	FormatTag          MatchFormat = "tag"
	FormatTripleThreat MatchFormat = "triple_threat"
	FormatFatalFourWay MatchFormat = "fatal_four_way"
	FormatMulti        MatchFormat = "multi"
)

// MatchSide is one competing faction within a match.
type MatchSide struct {
	ID         string
	Name       string
	EntrantIDs []string
}

// MatchStatus tracks a match through its lifecycle.
type MatchStatus string

const (
	MatchPending  MatchStatus = "pending"
	MatchFinished MatchStatus = "finished"
)

// Match is a non-battle-royal card match belonging to an event. Result
// fields stay zero until the match concludes.
type Match struct {
	ID     string
	Name   string
	Kind   string // card label, e.g. "championship", "undercard"
	Format MatchFormat
	Status MatchStatus
	Sides  []MatchSide

	// Result fields, recorded once concluded.
	WinnerSideID    string
	WinnerEntrantID string
	Finish          FinishMethod
	FinishWinnerID  string
	FinishLoserID   string
}

// Side returns the side with the given id, if present.
func (m Match) Side(id string) (MatchSide, bool) {
	for _, s := range m.Sides {
		if s.ID == id {
			return s, true
		}
	}
	return MatchSide{}, false
}

// ParticipantCount is the total number of entrants across all sides.
func (m Match) ParticipantCount() int {
	n := 0
	for _, s := range m.Sides {
		n += len(s.EntrantIDs)
	}
	return n
}

// Participants returns every entrant id across all sides.
func (m Match) Participants() []string {
	ids := make([]string, 0, m.ParticipantCount())
	for _, s := range m.Sides {
		ids = append(ids, s.EntrantIDs...)
	}
	return ids
}
