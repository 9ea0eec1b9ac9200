package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/okian/rumble/internal/domain/model"
	"github.com/okian/rumble/pkg/metrics"
)

// MemStore is an in-memory implementation of all four store interfaces,
// guarded by a single RWMutex. Upserts are keyed so concurrent recompute
// writers follow last-write-wins per (participant, event) pair.
type MemStore struct {
	mu sync.RWMutex

	entrants     map[string]model.Entrant
	entrantOrder []string

	events  map[string]model.Event
	entries map[string][]model.Entry // eventID -> entries in recording order
	matches map[string][]model.Match // eventID -> matches in card order

	picks     map[string]model.PickPayload // eventID/participantID
	pickOrder map[string][]string          // eventID -> participant ids, first-submission order

	scores     map[string]model.Score // eventID/participantID
	scoreOrder map[string][]string    // eventID -> participant ids, first-write order

	now func() time.Time
}

var (
	_ RosterStore   = (*MemStore)(nil)
	_ ProgressStore = (*MemStore)(nil)
	_ PickStore     = (*MemStore)(nil)
	_ ScoreStore    = (*MemStore)(nil)
)

// NewMemStore creates an empty in-memory store with configuration options.
func NewMemStore(opts ...Option) *MemStore {
	s := &MemStore{
		entrants:   make(map[string]model.Entrant),
		events:     make(map[string]model.Event),
		entries:    make(map[string][]model.Entry),
		matches:    make(map[string][]model.Match),
		picks:      make(map[string]model.PickPayload),
		pickOrder:  make(map[string][]string),
		scores:     make(map[string]model.Score),
		scoreOrder: make(map[string][]string),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func key(eventID, participantID string) string {
	return eventID + "/" + participantID
}

// Entrants returns entrant rows matching the gender and year filters in
// insertion order.
func (s *MemStore) Entrants(_ context.Context, gender model.Gender, year int) ([]model.Entrant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Entrant, 0, len(s.entrantOrder))
	for _, id := range s.entrantOrder {
		e := s.entrants[id]
		if gender != "" && e.Gender != gender {
			continue
		}
		if year != 0 && e.Year != 0 && e.Year != year {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (s *MemStore) UpsertEntrants(_ context.Context, entrants []model.Entrant) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range entrants {
		if _, ok := s.entrants[e.ID]; !ok {
			s.entrantOrder = append(s.entrantOrder, e.ID)
		}
		s.entrants[e.ID] = e
	}
	return nil
}

func (s *MemStore) CreateEvent(_ context.Context, ev model.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.events[ev.ID]; ok {
		return fmt.Errorf("%w: %s", ErrEventExists, ev.ID)
	}
	s.events[ev.ID] = ev
	metrics.UpdateTrackedEvents(len(s.events))
	return nil
}

func (s *MemStore) Event(_ context.Context, eventID string) (model.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ev, ok := s.events[eventID]
	if !ok {
		return model.Event{}, fmt.Errorf("%w: %s", ErrEventNotFound, eventID)
	}
	return ev, nil
}

func (s *MemStore) Events(_ context.Context) ([]model.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Event, 0, len(s.events))
	for _, ev := range s.events {
		out = append(out, ev)
	}
	return out, nil
}

func (s *MemStore) AddEntry(_ context.Context, eventID string, entry model.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.events[eventID]; !ok {
		return fmt.Errorf("%w: %s", ErrEventNotFound, eventID)
	}
	for _, existing := range s.entries[eventID] {
		if existing.EntrantID == entry.EntrantID {
			return fmt.Errorf("%w: %s", ErrDuplicateEntry, entry.EntrantID)
		}
	}
	s.entries[eventID] = append(s.entries[eventID], entry)
	return nil
}

func (s *MemStore) RecordElimination(_ context.Context, eventID, entrantID string, at time.Time, byEntrantID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.events[eventID]; !ok {
		return fmt.Errorf("%w: %s", ErrEventNotFound, eventID)
	}
	entries := s.entries[eventID]
	idx := -1
	for i, e := range entries {
		if e.EntrantID == entrantID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrEntryNotFound, entrantID)
	}
	when := at
	entries[idx].EliminatedAt = &when
	entries[idx].EliminatedBy = byEntrantID
	if byEntrantID != "" {
		for i, e := range entries {
			if e.EntrantID == byEntrantID {
				entries[i].Eliminations++
				break
			}
		}
	}
	return nil
}

func (s *MemStore) Entries(_ context.Context, eventID string) ([]model.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.events[eventID]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrEventNotFound, eventID)
	}
	out := make([]model.Entry, len(s.entries[eventID]))
	copy(out, s.entries[eventID])
	return out, nil
}

func (s *MemStore) UpsertMatch(_ context.Context, eventID string, match model.Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.events[eventID]; !ok {
		return fmt.Errorf("%w: %s", ErrEventNotFound, eventID)
	}
	for i, existing := range s.matches[eventID] {
		if existing.ID == match.ID {
			s.matches[eventID][i] = match
			return nil
		}
	}
	s.matches[eventID] = append(s.matches[eventID], match)
	return nil
}

func (s *MemStore) RecordMatchResult(_ context.Context, eventID, matchID string, result MatchResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.events[eventID]; !ok {
		return fmt.Errorf("%w: %s", ErrEventNotFound, eventID)
	}
	for i, m := range s.matches[eventID] {
		if m.ID != matchID {
			continue
		}
		m.WinnerSideID = result.WinnerSideID
		m.WinnerEntrantID = result.WinnerEntrantID
		m.Finish = result.Finish
		m.FinishWinnerID = result.FinishWinnerID
		m.FinishLoserID = result.FinishLoserID
		m.Status = model.MatchFinished
		s.matches[eventID][i] = m
		return nil
	}
	return fmt.Errorf("%w: %s", ErrMatchNotFound, matchID)
}

func (s *MemStore) Matches(_ context.Context, eventID string) ([]model.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.events[eventID]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrEventNotFound, eventID)
	}
	out := make([]model.Match, len(s.matches[eventID]))
	copy(out, s.matches[eventID])
	return out, nil
}

func (s *MemStore) UpsertPick(_ context.Context, payload model.PickPayload) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := key(payload.EventID, payload.ParticipantID)
	if _, ok := s.picks[k]; !ok {
		s.pickOrder[payload.EventID] = append(s.pickOrder[payload.EventID], payload.ParticipantID)
	}
	payload.UpdatedAt = s.now()
	s.picks[k] = payload
	metrics.UpdateTrackedPicks(len(s.picks))
	return nil
}

func (s *MemStore) Pick(_ context.Context, eventID, participantID string) (model.PickPayload, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.picks[key(eventID, participantID)]
	if !ok {
		return model.PickPayload{}, fmt.Errorf("%w: %s/%s", ErrPickNotFound, eventID, participantID)
	}
	return p, nil
}

func (s *MemStore) PicksByEvent(_ context.Context, eventID string) ([]model.PickPayload, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	order := s.pickOrder[eventID]
	out := make([]model.PickPayload, 0, len(order))
	for _, pid := range order {
		out = append(out, s.picks[key(eventID, pid)])
	}
	return out, nil
}

func (s *MemStore) UpsertScore(_ context.Context, score model.Score) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := key(score.EventID, score.ParticipantID)
	if _, ok := s.scores[k]; !ok {
		s.scoreOrder[score.EventID] = append(s.scoreOrder[score.EventID], score.ParticipantID)
	}
	s.scores[k] = score
	metrics.UpdateTrackedScores(len(s.scores))
	return nil
}

func (s *MemStore) Score(_ context.Context, eventID, participantID string) (model.Score, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sc, ok := s.scores[key(eventID, participantID)]
	if !ok {
		return model.Score{}, fmt.Errorf("%w: %s/%s", ErrScoreNotFound, eventID, participantID)
	}
	return sc, nil
}

func (s *MemStore) ScoresByEvent(_ context.Context, eventID string) ([]model.Score, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	order := s.scoreOrder[eventID]
	out := make([]model.Score, 0, len(order))
	for _, pid := range order {
		out = append(out, s.scores[key(eventID, pid)])
	}
	return out, nil
}
