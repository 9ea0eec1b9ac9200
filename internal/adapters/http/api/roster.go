package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/rumble/internal/domain/model"
)

// RosterDependencies defines the interface for roster reads and writes.
type RosterDependencies interface {
	UpsertEntrants(ctx context.Context, entrants []model.Entrant) error
	EligibleRoster(ctx context.Context, eventID string) ([]model.Entrant, error)
}

// RosterHandler handles roster requests.
type RosterHandler struct {
	deps RosterDependencies
}

// NewRosterHandler creates a new roster handler.
func NewRosterHandler(deps RosterDependencies) *RosterHandler {
	return &RosterHandler{deps: deps}
}

// HandlePostRoster handles POST /roster with a list of entrant rows.
func (h *RosterHandler) HandlePostRoster(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_roster"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req []entrantDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	entrants := make([]model.Entrant, len(req))
	for i, d := range req {
		entrants[i] = d.toModel()
	}
	if err := h.deps.UpsertEntrants(r.Context(), entrants); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"stored": len(entrants)})
}

// HandleGetRoster handles GET /roster/{event}: the event's canonicalized
// eligible entrants, one row per real contestant.
func (h *RosterHandler) HandleGetRoster(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_roster"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	parts := pathParts(r.URL.Path, "/roster/")
	if len(parts) != 1 {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	entrants, err := h.deps.EligibleRoster(r.Context(), parts[0])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	out := make([]entrantDTO, len(entrants))
	for i, e := range entrants {
		out[i] = entrantFromModel(e)
	}
	writeJSON(w, http.StatusOK, out)
}
