// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/okian/rumble/internal/adapters/repository"
	"github.com/okian/rumble/internal/app"
	"github.com/okian/rumble/internal/domain/model"
	"github.com/okian/rumble/internal/domain/picks"
	"github.com/okian/rumble/internal/domain/ranking"
)

// Dependencies required by HTTP handlers. An interface bundle keeps the
// handler layer loosely coupled to the service implementation.
type Dependencies interface {
	SubmitPicks(ctx context.Context, payload model.PickPayload) (model.PickPayload, error)
	Picks(ctx context.Context, eventID, participantID string) (model.PickPayload, error)
	Locked(ctx context.Context, eventID string) (bool, error)

	EligibleRoster(ctx context.Context, eventID string) ([]model.Entrant, error)
	UpsertEntrants(ctx context.Context, entrants []model.Entrant) error

	CreateEvent(ctx context.Context, ev model.Event) (model.Event, error)
	AddEntry(ctx context.Context, eventID string, entry model.Entry) error
	RecordElimination(ctx context.Context, eventID, entrantID string, at time.Time, byEntrantID string) error
	UpsertMatch(ctx context.Context, eventID string, match model.Match) (model.Match, error)
	RecordMatchResult(ctx context.Context, eventID, matchID string, result repository.MatchResult) error

	RecalculateEvent(ctx context.Context, eventID string) (int, error)
	Leaderboard(ctx context.Context, eventID string, limit int) ([]ranking.Row, error)
	Rank(ctx context.Context, eventID, participantID string) (ranking.Row, error)
	ScoreDetail(ctx context.Context, eventID, participantID string) (model.Score, error)
}

// Server wires HTTP routes for the pick'em API.
type Server struct {
	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	picksHandler       *PicksHandler
	leaderboardHandler *LeaderboardHandler
	rankHandler        *RankHandler
	scoreHandler       *ScoreHandler
	recalcHandler      *RecalcHandler
	rosterHandler      *RosterHandler
	progressHandler    *ProgressHandler
}

// NewServer creates the API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxLeaderboardLimit int) *Server {
	return &Server{
		healthHandler:      NewHealthHandler(),
		statsHandler:       NewStatsHandler(statsProvider),
		picksHandler:       NewPicksHandler(deps),
		leaderboardHandler: NewLeaderboardHandler(deps, maxLeaderboardLimit),
		rankHandler:        NewRankHandler(deps),
		scoreHandler:       NewScoreHandler(deps),
		recalcHandler:      NewRecalcHandler(deps),
		rosterHandler:      NewRosterHandler(deps),
		progressHandler:    NewProgressHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/picks/", MetricsMiddleware(s.picksHandler.HandlePicks, "picks"))
	mux.HandleFunc("/leaderboard/", MetricsMiddleware(s.leaderboardHandler.HandleGetLeaderboard, "leaderboard"))
	mux.HandleFunc("/rank/", MetricsMiddleware(s.rankHandler.HandleGetRank, "rank"))
	mux.HandleFunc("/score/", MetricsMiddleware(s.scoreHandler.HandleGetScore, "score"))
	mux.HandleFunc("/recalc/", MetricsMiddleware(s.recalcHandler.HandlePostRecalc, "recalc"))
	mux.HandleFunc("/roster", MetricsMiddleware(s.rosterHandler.HandlePostRoster, "roster"))
	mux.HandleFunc("/roster/", MetricsMiddleware(s.rosterHandler.HandleGetRoster, "roster"))
	mux.HandleFunc("/events", MetricsMiddleware(s.progressHandler.HandlePostEvent, "events"))
	mux.HandleFunc("/progress/", MetricsMiddleware(s.progressHandler.HandleProgress, "progress"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeServiceError translates known service errors to HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, app.ErrEventLocked):
		writeError(w, http.StatusConflict, "event_locked", err)
	case errors.Is(err, repository.ErrEventNotFound),
		errors.Is(err, repository.ErrMatchNotFound),
		errors.Is(err, repository.ErrEntryNotFound),
		errors.Is(err, repository.ErrPickNotFound),
		errors.Is(err, repository.ErrScoreNotFound),
		errors.Is(err, app.ErrNotRanked):
		writeError(w, http.StatusNotFound, "not_found", err)
	case errors.Is(err, repository.ErrEventExists),
		errors.Is(err, repository.ErrDuplicateEntry):
		writeError(w, http.StatusConflict, "conflict", err)
	case isValidationError(err):
		writeError(w, http.StatusBadRequest, "invalid_picks", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}

func isValidationError(err error) bool {
	for _, kind := range []error{
		picks.ErrTooManyEntrants,
		picks.ErrFinalFourTooLarge,
		picks.ErrSideNotInMatch,
		picks.ErrFinishPickNotAllowed,
		picks.ErrInvalidFinishMethod,
		picks.ErrFinishWinnerNotOnSide,
		picks.ErrFinishLoserOnWinning,
	} {
		if errors.Is(err, kind) {
			return true
		}
	}
	return false
}

// pathParts splits the request path after prefix into its segments.
func pathParts(path, prefix string) []string {
	rest := strings.TrimPrefix(path, prefix)
	rest = strings.Trim(rest, "/")
	if rest == "" {
		return nil
	}
	return strings.Split(rest, "/")
}
