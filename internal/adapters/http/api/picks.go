package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/rumble/internal/domain/model"
)

// PicksDependencies defines the interface for pick submission and reads.
type PicksDependencies interface {
	SubmitPicks(ctx context.Context, payload model.PickPayload) (model.PickPayload, error)
	Picks(ctx context.Context, eventID, participantID string) (model.PickPayload, error)
	Locked(ctx context.Context, eventID string) (bool, error)
}

// PicksHandler handles pick payload requests.
type PicksHandler struct {
	deps PicksDependencies
}

// NewPicksHandler creates a new picks handler.
func NewPicksHandler(deps PicksDependencies) *PicksHandler {
	return &PicksHandler{deps: deps}
}

// HandlePicks handles PUT and GET /picks/{event}/{participant}.
func (h *PicksHandler) HandlePicks(w http.ResponseWriter, r *http.Request) {
	const op = "api.picks"
	parts := pathParts(r.URL.Path, "/picks/")
	if len(parts) != 2 {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	eventID, participantID := parts[0], parts[1]

	switch r.Method {
	case http.MethodPut, http.MethodPost:
		var req pickPayloadDTO
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		normalized, err := h.deps.SubmitPicks(r.Context(), req.toModel(eventID, participantID))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, pickPayloadFromModel(normalized))
	case http.MethodGet:
		payload, err := h.deps.Picks(r.Context(), eventID, participantID)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, pickPayloadFromModel(payload))
	default:
		http.NotFound(w, r)
	}
}
