package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/okian/rumble/internal/adapters/repository"
	"github.com/okian/rumble/internal/domain/model"
)

// ProgressDependencies defines the write path the operational console uses
// to record event progress.
type ProgressDependencies interface {
	CreateEvent(ctx context.Context, ev model.Event) (model.Event, error)
	AddEntry(ctx context.Context, eventID string, entry model.Entry) error
	RecordElimination(ctx context.Context, eventID, entrantID string, at time.Time, byEntrantID string) error
	UpsertMatch(ctx context.Context, eventID string, match model.Match) (model.Match, error)
	RecordMatchResult(ctx context.Context, eventID, matchID string, result repository.MatchResult) error
}

// ProgressHandler handles event-progress writes.
type ProgressHandler struct {
	deps ProgressDependencies
}

// NewProgressHandler creates a new progress handler.
func NewProgressHandler(deps ProgressDependencies) *ProgressHandler {
	return &ProgressHandler{deps: deps}
}

// HandlePostEvent handles POST /events.
func (h *ProgressHandler) HandlePostEvent(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_event"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req eventDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	ev, err := h.deps.CreateEvent(r.Context(), req.toModel())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, eventFromModel(ev))
}

type entryRequest struct {
	EntrantID string `json:"entrant_id"`
	Number    int    `json:"number"`
}

type eliminationRequest struct {
	EntrantID string `json:"entrant_id"`
	At        string `json:"at"` // RFC3339
	By        string `json:"by,omitempty"`
}

type resultRequest struct {
	MatchID       string `json:"match_id"`
	WinnerSide    string `json:"winner_side"`
	WinnerEntrant string `json:"winner_entrant,omitempty"`
	Finish        string `json:"finish,omitempty"`
	FinishWinner  string `json:"finish_winner,omitempty"`
	FinishLoser   string `json:"finish_loser,omitempty"`
}

// HandleProgress routes POST /progress/{event}/{entries|eliminations|matches|results}.
func (h *ProgressHandler) HandleProgress(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_progress"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	parts := pathParts(r.URL.Path, "/progress/")
	if len(parts) != 2 {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	eventID := parts[0]

	switch parts[1] {
	case "entries":
		var req entryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		err := h.deps.AddEntry(r.Context(), eventID, model.Entry{
			EntrantID: req.EntrantID,
			Number:    req.Number,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]string{"status": "recorded"})

	case "eliminations":
		var req eliminationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		at, err := time.Parse(time.RFC3339, req.At)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		if err := h.deps.RecordElimination(r.Context(), eventID, req.EntrantID, at, req.By); err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "recorded"})

	case "matches":
		var req matchDTO
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		match, err := h.deps.UpsertMatch(r.Context(), eventID, req.toModel())
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]string{"id": match.ID})

	case "results":
		var req resultRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		result := repository.MatchResult{
			WinnerSideID:    req.WinnerSide,
			WinnerEntrantID: req.WinnerEntrant,
			Finish:          model.FinishMethod(req.Finish),
			FinishWinnerID:  req.FinishWinner,
			FinishLoserID:   req.FinishLoser,
		}
		if err := h.deps.RecordMatchResult(r.Context(), eventID, req.MatchID, result); err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "recorded"})

	default:
		http.NotFound(w, r)
	}
}
