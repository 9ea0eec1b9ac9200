// Package repository defines the record-store interfaces the engine
// collaborates with, plus an in-memory implementation.
package repository

import (
	"context"
	"time"

	"github.com/okian/rumble/internal/domain/model"
)

// RosterStore reads entrant rows. Roster administration happens elsewhere;
// the engine only filters and canonicalizes what it reads.
type RosterStore interface {
	// Entrants returns rows matching the gender and roster year. Zero
	// values match everything.
	Entrants(ctx context.Context, gender model.Gender, year int) ([]model.Entrant, error)

	// UpsertEntrants inserts or replaces entrant rows by id.
	UpsertEntrants(ctx context.Context, entrants []model.Entrant) error
}

// ProgressStore holds events plus their entry and match records. Entries
// and results are mutated by the operational console's write path and read
// back whenever scoring runs.
type ProgressStore interface {
	CreateEvent(ctx context.Context, ev model.Event) error
	Event(ctx context.Context, eventID string) (model.Event, error)
	Events(ctx context.Context) ([]model.Event, error)

	// AddEntry records one contestant entering the battle royal. At most
	// one entry per (event, entrant) pair.
	AddEntry(ctx context.Context, eventID string, entry model.Entry) error

	// RecordElimination marks an entrant eliminated at the given time and
	// credits the eliminator, if any.
	RecordElimination(ctx context.Context, eventID, entrantID string, at time.Time, byEntrantID string) error

	// Entries returns the event's entry records in recording order.
	Entries(ctx context.Context, eventID string) ([]model.Entry, error)

	UpsertMatch(ctx context.Context, eventID string, match model.Match) error

	// RecordMatchResult stores the concluded match's winner and finish
	// facts.
	RecordMatchResult(ctx context.Context, eventID, matchID string, result MatchResult) error

	Matches(ctx context.Context, eventID string) ([]model.Match, error)
}

// MatchResult carries the recorded conclusion of a match.
type MatchResult struct {
	WinnerSideID    string
	WinnerEntrantID string
	Finish          model.FinishMethod
	FinishWinnerID  string
	FinishLoserID   string
}

// PickStore holds one payload per (participant, event) pair.
type PickStore interface {
	UpsertPick(ctx context.Context, payload model.PickPayload) error
	Pick(ctx context.Context, eventID, participantID string) (model.PickPayload, error)

	// PicksByEvent returns the event's payloads in first-submission order.
	PicksByEvent(ctx context.Context, eventID string) ([]model.PickPayload, error)
}

// ScoreStore holds one score row per (participant, event) pair with
// overwrite-on-recompute semantics.
type ScoreStore interface {
	UpsertScore(ctx context.Context, score model.Score) error
	Score(ctx context.Context, eventID, participantID string) (model.Score, error)

	// ScoresByEvent returns the event's score rows in first-write order,
	// which is the stable tie order the leaderboard preserves.
	ScoresByEvent(ctx context.Context, eventID string) ([]model.Score, error)
}
