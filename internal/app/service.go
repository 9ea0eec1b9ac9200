// Package app provides the orchestration service wiring the pure scoring
// engine to its collaborator stores, the recalculation queue, and the HTTP
// layer.
package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/okian/rumble/internal/adapters/mq/queue"
	"github.com/okian/rumble/internal/adapters/mq/worker"
	"github.com/okian/rumble/internal/adapters/repository"
	"github.com/okian/rumble/internal/domain/dedupe"
	"github.com/okian/rumble/internal/domain/lock"
	"github.com/okian/rumble/internal/domain/model"
	"github.com/okian/rumble/internal/domain/picks"
	"github.com/okian/rumble/internal/domain/ranking"
	"github.com/okian/rumble/internal/domain/roster"
	"github.com/okian/rumble/internal/domain/scoring"
	"github.com/okian/rumble/pkg/logger"
	"github.com/okian/rumble/pkg/metrics"
)

// Service implements the API dependencies for the pick'em system.
type Service struct {
	mu sync.RWMutex

	// Core components
	store   *repository.MemStore
	tracker dedupe.Tracker
	jobs    queue.Queue
	calc    *scoring.Calculator
	canon   *roster.Canonicalizer
	pool    *worker.Pool

	// Configuration
	workerCount      int
	queueSize        int
	dedupeSize       int
	primaryPromotion string
	pointWeights     map[string]int

	now func() time.Time

	// State
	started bool

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of recalculation workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize bounds the recalculation job queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize caps the in-flight recalculation tracker.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithPrimaryPromotion sets the promotion preferred on duplicate-name ties.
func WithPrimaryPromotion(label string) Option {
	return func(s *Service) {
		if label != "" {
			s.primaryPromotion = label
		}
	}
}

// WithPointWeights overlays the scoring rule table.
func WithPointWeights(weights map[string]int) Option {
	return func(s *Service) {
		s.pointWeights = weights
	}
}

// WithClock overrides the wall clock used for lock decisions. Tests use
// this to step time across an event's start.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount:      0, // pool picks a CPU-based default
		queueSize:        10_000,
		dedupeSize:       50_000,
		primaryPromotion: roster.DefaultPrimaryPromotion,
		now:              time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.store = repository.NewMemStore()
	s.tracker = dedupe.NewInMemoryTracker(dedupe.WithMaxSize(s.dedupeSize))
	s.jobs = queue.NewInMemoryQueue(queue.WithCapacity(s.queueSize))
	s.calc = scoring.New(scoring.WithWeights(s.pointWeights))
	s.canon = roster.New(roster.WithPrimaryPromotion(s.primaryPromotion))

	s.pool = worker.NewPool(s.workerCount, s.jobs, s.store, s.store, s.store, s.calc, s.tracker)
	s.pool.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "pick'em service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
	)
	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	if s.pool != nil {
		s.pool.Stop()
	}
	if s.jobs != nil {
		_ = s.jobs.Close()
	}
	s.started = false
	s.logger.Info(context.Background(), "pick'em service stopped")
}

// SubmitPicks validates and stores one participant's payload, then queues a
// recalculation. The submission is refused once the event locks; rule
// violations reject without a partial write.
func (s *Service) SubmitPicks(ctx context.Context, payload model.PickPayload) (model.PickPayload, error) {
	ev, err := s.store.Event(ctx, payload.EventID)
	if err != nil {
		return model.PickPayload{}, err
	}
	if lock.Locked(ev.StartTime, s.now()) {
		metrics.RecordPickLocked()
		return model.PickPayload{}, fmt.Errorf("%w: %s", ErrEventLocked, ev.ID)
	}

	eligible, err := s.eligibleByID(ctx, ev)
	if err != nil {
		return model.PickPayload{}, err
	}
	matchSet, err := s.matchesByID(ctx, ev.ID)
	if err != nil {
		return model.PickPayload{}, err
	}

	normalized, err := picks.Validate(payload, eligible, matchSet)
	if err != nil {
		metrics.RecordPickRejected()
		return model.PickPayload{}, err
	}

	if err := s.store.UpsertPick(ctx, normalized); err != nil {
		return model.PickPayload{}, err
	}
	metrics.RecordPickAccepted()
	s.Recalculate(ctx, normalized.EventID, normalized.ParticipantID)
	return normalized, nil
}

// Picks returns one participant's stored payload.
func (s *Service) Picks(ctx context.Context, eventID, participantID string) (model.PickPayload, error) {
	return s.store.Pick(ctx, eventID, participantID)
}

// Locked reports whether the event's picks are frozen.
func (s *Service) Locked(ctx context.Context, eventID string) (bool, error) {
	ev, err := s.store.Event(ctx, eventID)
	if err != nil {
		return false, err
	}
	return lock.Locked(ev.StartTime, s.now()), nil
}

// EligibleRoster returns the event's canonicalized eligible entrants in
// first-seen order, one row per real contestant.
func (s *Service) EligibleRoster(ctx context.Context, eventID string) ([]model.Entrant, error) {
	ev, err := s.store.Event(ctx, eventID)
	if err != nil {
		return nil, err
	}
	rows, err := s.store.Entrants(ctx, ev.Gender, ev.Year)
	if err != nil {
		return nil, err
	}
	return s.canon.CanonicalList(roster.Eligible(rows, ev.Gender, ev.Year)), nil
}

// Recalculate queues a score recomputation for one (participant, event)
// pair. Duplicate requests collapse only while the pair's job is still
// waiting in the queue; once a worker picks it up, a new request queues a
// fresh job so the stored score always converges on the latest inputs.
func (s *Service) Recalculate(ctx context.Context, eventID, participantID string) bool {
	job := model.RecalcJob{EventID: eventID, ParticipantID: participantID}
	if s.tracker.SeenAndRecord(ctx, job.Key()) {
		metrics.RecordRecalcDuplicate()
		return false
	}
	if !s.jobs.Enqueue(ctx, job) {
		s.tracker.Unrecord(ctx, job.Key())
		s.logger.Warn(ctx, "recalculation queue full",
			logger.String("event", eventID),
			logger.String("participant", participantID),
		)
		return false
	}
	return true
}

// RecalculateEvent queues a recomputation for every stored payload of the
// event. Jobs are independent per participant.
func (s *Service) RecalculateEvent(ctx context.Context, eventID string) (int, error) {
	payloads, err := s.store.PicksByEvent(ctx, eventID)
	if err != nil {
		return 0, err
	}
	queued := 0
	for _, p := range payloads {
		if s.Recalculate(ctx, eventID, p.ParticipantID) {
			queued++
		}
	}
	return queued, nil
}

// Leaderboard returns the event's ranked rows, truncated to limit when
// limit > 0.
func (s *Service) Leaderboard(ctx context.Context, eventID string, limit int) ([]ranking.Row, error) {
	scores, err := s.store.ScoresByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	rows := ranking.Leaderboard(scores)
	if limit > 0 && limit < len(rows) {
		rows = rows[:limit]
	}
	return rows, nil
}

// Rank reports one participant's leaderboard row, or ErrNotRanked until a
// score row exists.
func (s *Service) Rank(ctx context.Context, eventID, participantID string) (ranking.Row, error) {
	scores, err := s.store.ScoresByEvent(ctx, eventID)
	if err != nil {
		return ranking.Row{}, err
	}
	row, ok := ranking.Rank(scores, participantID)
	if !ok {
		return ranking.Row{}, fmt.Errorf("%w: %s/%s", ErrNotRanked, eventID, participantID)
	}
	return row, nil
}

// ScoreDetail returns the stored score row with its breakdown.
func (s *Service) ScoreDetail(ctx context.Context, eventID, participantID string) (model.Score, error) {
	return s.store.Score(ctx, eventID, participantID)
}

// UpsertEntrants stores roster rows (roster administration write path).
func (s *Service) UpsertEntrants(ctx context.Context, entrants []model.Entrant) error {
	for i := range entrants {
		if entrants[i].ID == "" {
			entrants[i].ID = uuid.NewString()
		}
	}
	return s.store.UpsertEntrants(ctx, entrants)
}

// CreateEvent stores a new event, assigning an id when absent.
func (s *Service) CreateEvent(ctx context.Context, ev model.Event) (model.Event, error) {
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	if ev.Status == "" {
		ev.Status = model.EventScheduled
	}
	if err := s.store.CreateEvent(ctx, ev); err != nil {
		return model.Event{}, err
	}
	return ev, nil
}

// AddEntry records a battle-royal entry and re-scores the event.
func (s *Service) AddEntry(ctx context.Context, eventID string, entry model.Entry) error {
	if err := s.store.AddEntry(ctx, eventID, entry); err != nil {
		return err
	}
	_, err := s.RecalculateEvent(ctx, eventID)
	return err
}

// RecordElimination marks an entrant eliminated and re-scores the event.
func (s *Service) RecordElimination(ctx context.Context, eventID, entrantID string, at time.Time, byEntrantID string) error {
	if err := s.store.RecordElimination(ctx, eventID, entrantID, at, byEntrantID); err != nil {
		return err
	}
	_, err := s.RecalculateEvent(ctx, eventID)
	return err
}

// UpsertMatch stores a card match, assigning ids where absent.
func (s *Service) UpsertMatch(ctx context.Context, eventID string, match model.Match) (model.Match, error) {
	if match.ID == "" {
		match.ID = uuid.NewString()
	}
	for i := range match.Sides {
		if match.Sides[i].ID == "" {
			match.Sides[i].ID = uuid.NewString()
		}
	}
	if match.Status == "" {
		match.Status = model.MatchPending
	}
	if err := s.store.UpsertMatch(ctx, eventID, match); err != nil {
		return model.Match{}, err
	}
	return match, nil
}

// RecordMatchResult stores a match conclusion and re-scores the event.
func (s *Service) RecordMatchResult(ctx context.Context, eventID, matchID string, result repository.MatchResult) error {
	if err := s.store.RecordMatchResult(ctx, eventID, matchID, result); err != nil {
		return err
	}
	_, err := s.RecalculateEvent(ctx, eventID)
	return err
}

// Matches returns the event's card.
func (s *Service) Matches(ctx context.Context, eventID string) ([]model.Match, error) {
	return s.store.Matches(ctx, eventID)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":     s.started,
		"workerCount": s.workerCount,
		"queueSize":   s.queueSize,
	}
	if s.started {
		stats["queueLength"] = s.jobs.Len(ctx)
		stats["inFlightRecalcs"] = s.tracker.Size()
	}
	return stats
}

func (s *Service) eligibleByID(ctx context.Context, ev model.Event) (map[string]model.Entrant, error) {
	rows, err := s.store.Entrants(ctx, ev.Gender, ev.Year)
	if err != nil {
		return nil, err
	}
	canonical := s.canon.CanonicalList(roster.Eligible(rows, ev.Gender, ev.Year))
	byID := make(map[string]model.Entrant, len(canonical))
	for _, e := range canonical {
		byID[e.ID] = e
	}
	return byID, nil
}

func (s *Service) matchesByID(ctx context.Context, eventID string) (map[string]model.Match, error) {
	rows, err := s.store.Matches(ctx, eventID)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]model.Match, len(rows))
	for _, m := range rows {
		byID[m.ID] = m
	}
	return byID, nil
}
