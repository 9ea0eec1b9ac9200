package api

import (
	"context"
	"net/http"
)

// RecalcDependencies defines the interface for recalculation fan-out.
type RecalcDependencies interface {
	RecalculateEvent(ctx context.Context, eventID string) (int, error)
}

// RecalcHandler handles recalculation requests.
type RecalcHandler struct {
	deps RecalcDependencies
}

// NewRecalcHandler creates a new recalc handler.
func NewRecalcHandler(deps RecalcDependencies) *RecalcHandler {
	return &RecalcHandler{deps: deps}
}

type recalcResponse struct {
	Queued int `json:"queued"`
}

// HandlePostRecalc handles POST /recalc/{event}, queueing one job per
// stored payload.
func (h *RecalcHandler) HandlePostRecalc(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_recalc"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	parts := pathParts(r.URL.Path, "/recalc/")
	if len(parts) != 1 {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	queued, err := h.deps.RecalculateEvent(r.Context(), parts[0])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, recalcResponse{Queued: queued})
}
