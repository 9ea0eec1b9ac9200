package api

import (
	"context"
	"net/http"

	"github.com/okian/rumble/internal/domain/ranking"
)

// RankDependencies defines the interface for rank lookups.
type RankDependencies interface {
	Rank(ctx context.Context, eventID, participantID string) (ranking.Row, error)
}

// RankHandler handles rank requests.
type RankHandler struct {
	deps RankDependencies
}

// NewRankHandler creates a new rank handler.
func NewRankHandler(deps RankDependencies) *RankHandler {
	return &RankHandler{deps: deps}
}

// HandleGetRank handles GET /rank/{event}/{participant}.
func (h *RankHandler) HandleGetRank(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_rank"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	parts := pathParts(r.URL.Path, "/rank/")
	if len(parts) != 2 {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	row, err := h.deps.Rank(r.Context(), parts[0], parts[1])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, row)
}
