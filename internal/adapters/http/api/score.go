package api

import (
	"context"
	"net/http"

	"github.com/okian/rumble/internal/domain/model"
)

// ScoreDependencies defines the interface for score detail reads.
type ScoreDependencies interface {
	ScoreDetail(ctx context.Context, eventID, participantID string) (model.Score, error)
}

// ScoreHandler handles score breakdown requests.
type ScoreHandler struct {
	deps ScoreDependencies
}

// NewScoreHandler creates a new score handler.
func NewScoreHandler(deps ScoreDependencies) *ScoreHandler {
	return &ScoreHandler{deps: deps}
}

// HandleGetScore handles GET /score/{event}/{participant}. The has_data
// flag lets clients tell "no data yet" apart from "zero points".
func (h *ScoreHandler) HandleGetScore(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_score"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	parts := pathParts(r.URL.Path, "/score/")
	if len(parts) != 2 {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	score, err := h.deps.ScoreDetail(r.Context(), parts[0], parts[1])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, scoreFromModel(score))
}
