// Package worker runs the asynchronous score recalculation pool. Each job
// recomputes one (participant, event) score row; jobs for different
// participants are independent, so the pool fans them out freely.
package worker

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"time"

	"github.com/okian/rumble/internal/domain/model"
	"github.com/okian/rumble/internal/domain/outcome"
	"github.com/okian/rumble/internal/domain/scoring"
	"github.com/okian/rumble/pkg/logger"
	"github.com/okian/rumble/pkg/metrics"
)

// Worker defaults.
const (
	defaultWorkerMultiplier = 2 // multiplier for runtime.NumCPU()
	workerShutdownTimeout   = 5 * time.Second
)

// Job is what workers read off the queue.
type Job = model.RecalcJob

// PickSource reads the payload a job scores.
type PickSource interface {
	Pick(ctx context.Context, eventID, participantID string) (model.PickPayload, error)
}

// ProgressSource reads the event progress an outcome is extracted from.
type ProgressSource interface {
	Entries(ctx context.Context, eventID string) ([]model.Entry, error)
	Matches(ctx context.Context, eventID string) ([]model.Match, error)
}

// ScoreSink upserts the computed score row, keyed on (participant, event).
type ScoreSink interface {
	UpsertScore(ctx context.Context, score model.Score) error
}

// Calculator scores a payload against an outcome.
type Calculator interface {
	Score(p model.PickPayload, o outcome.Outcome) scoring.Result
}

// Releaser frees a job's in-flight key. Workers release at dequeue time,
// before reading inputs, so a request landing mid-recompute queues a fresh
// job instead of collapsing against the one already running.
type Releaser interface {
	Unrecord(ctx context.Context, key string)
}

// JobQueue defines how workers receive jobs.
type JobQueue interface {
	Dequeue(ctx context.Context) <-chan Job
}

// Worker processes recalculation jobs until stopped.
type Worker struct {
	queue    JobQueue
	picks    PickSource
	progress ProgressSource
	scores   ScoreSink
	calc     Calculator
	releaser Releaser
	name     string

	shutdown chan struct{}
	done     chan struct{}

	logger logger.Logger
}

// NewWorker creates a worker with configuration options.
func NewWorker(q JobQueue, picks PickSource, progress ProgressSource, scores ScoreSink, calc Calculator, releaser Releaser, opts ...Option) *Worker {
	w := &Worker{
		queue:    q,
		picks:    picks,
		progress: progress,
		scores:   scores,
		calc:     calc,
		releaser: releaser,
		name:     "worker",
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
		logger:   logger.Get().Named("worker"),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run starts the worker loop.
func (w *Worker) Run(ctx context.Context) {
	defer close(w.done)

	jobs := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case job, ok := <-jobs:
			if !ok {
				return
			}
			if err := w.process(ctx, job); err != nil {
				w.logger.Error(ctx, "recalculation failed",
					logger.String("event", job.EventID),
					logger.String("participant", job.ParticipantID),
					logger.Error(err),
				)
			}
		}
	}
}

// Shutdown stops the worker, waiting for the in-flight job.
func (w *Worker) Shutdown(ctx context.Context) error {
	close(w.shutdown)
	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// process recomputes one score row: read inputs, extract outcome, score,
// overwrite. The in-flight key is released up front, before the inputs are
// read; a submission that races this recompute therefore enqueues its own
// job against the newer state rather than being dropped.
func (w *Worker) process(ctx context.Context, job Job) error {
	if w.releaser != nil {
		w.releaser.Unrecord(ctx, job.Key())
	}

	start := time.Now()
	defer func() {
		metrics.RecordWorkerProcessingLatency(float64(time.Since(start).Milliseconds()))
	}()

	payload, err := w.picks.Pick(ctx, job.EventID, job.ParticipantID)
	if err != nil {
		metrics.RecordWorkerError()
		return fmt.Errorf("load pick: %w", err)
	}
	entries, err := w.progress.Entries(ctx, job.EventID)
	if err != nil {
		metrics.RecordWorkerError()
		return fmt.Errorf("load entries: %w", err)
	}
	matches, err := w.progress.Matches(ctx, job.EventID)
	if err != nil {
		metrics.RecordWorkerError()
		return fmt.Errorf("load matches: %w", err)
	}

	scoreStart := time.Now()
	facts := outcome.Extract(entries, matches)
	result := w.calc.Score(payload, facts)
	metrics.RecordScoringLatency(float64(time.Since(scoreStart).Milliseconds()))

	score := model.Score{
		ParticipantID: job.ParticipantID,
		EventID:       job.EventID,
		Points:        result.Total,
		Breakdown:     result.Breakdown,
		HasData:       facts.HasData,
		ComputedAt:    time.Now(),
	}
	if err := w.scores.UpsertScore(ctx, score); err != nil {
		metrics.RecordWorkerError()
		metrics.RecordScoringError()
		return fmt.Errorf("upsert score: %w", err)
	}
	metrics.RecordScoreComputed()
	return nil
}

// Pool manages a set of workers sharing one queue.
type Pool struct {
	workers []*Worker
	logger  logger.Logger
}

// NewPool creates workerCount workers wired to the same queue and stores.
func NewPool(workerCount int, q JobQueue, picks PickSource, progress ProgressSource, scores ScoreSink, calc Calculator, releaser Releaser) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU() * defaultWorkerMultiplier
	}

	p := &Pool{
		workers: make([]*Worker, workerCount),
		logger:  logger.Get().Named("worker-pool"),
	}
	for i := range p.workers {
		p.workers[i] = NewWorker(q, picks, progress, scores, calc, releaser,
			WithName("worker-"+strconv.Itoa(i)),
		)
	}
	metrics.UpdateWorkerCount(workerCount)
	return p
}

// Start launches every worker.
func (p *Pool) Start(ctx context.Context) {
	for _, w := range p.workers {
		go w.Run(ctx)
	}
}

// Stop signals all workers and waits briefly for each.
func (p *Pool) Stop() {
	for _, w := range p.workers {
		close(w.shutdown)
	}
	for _, w := range p.workers {
		select {
		case <-w.done:
		case <-time.After(workerShutdownTimeout):
		}
	}
}
