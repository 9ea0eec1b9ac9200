package api

import (
	"time"

	"github.com/okian/rumble/internal/domain/model"
)

// Wire shapes for pick payloads. Absent narrower picks serialize as empty
// strings rather than being dropped, keeping the payload shape explicit.

type rumblePickDTO struct {
	Entrants         []string `json:"entrants"`
	FinalFour        []string `json:"final_four"`
	Winner           string   `json:"winner"`
	EntryOne         string   `json:"entry_1"`
	EntryTwo         string   `json:"entry_2"`
	EntryThirty      string   `json:"entry_30"`
	MostEliminations string   `json:"most_eliminations"`
}

type matchPickDTO struct {
	MatchID      string `json:"match_id"`
	SideID       string `json:"side_id"`
	Finish       string `json:"finish,omitempty"`
	FinishWinner string `json:"finish_winner,omitempty"`
	FinishLoser  string `json:"finish_loser,omitempty"`
}

type pickPayloadDTO struct {
	ParticipantID string         `json:"participant_id"`
	EventID       string         `json:"event_id"`
	Rumble        rumblePickDTO  `json:"rumble"`
	Matches       []matchPickDTO `json:"matches"`
	UpdatedAt     time.Time      `json:"updated_at,omitempty"`
}

func (d pickPayloadDTO) toModel(eventID, participantID string) model.PickPayload {
	p := model.PickPayload{
		ParticipantID: participantID,
		EventID:       eventID,
		Rumble: model.RumblePick{
			EntrantIDs:         d.Rumble.Entrants,
			FinalFour:          d.Rumble.FinalFour,
			WinnerID:           d.Rumble.Winner,
			EntryOneID:         d.Rumble.EntryOne,
			EntryTwoID:         d.Rumble.EntryTwo,
			EntryThirtyID:      d.Rumble.EntryThirty,
			MostEliminationsID: d.Rumble.MostEliminations,
		},
	}
	for _, mp := range d.Matches {
		p.Matches = append(p.Matches, model.MatchPick{
			MatchID:        mp.MatchID,
			SideID:         mp.SideID,
			Finish:         model.FinishMethod(mp.Finish),
			FinishWinnerID: mp.FinishWinner,
			FinishLoserID:  mp.FinishLoser,
		})
	}
	return p
}

func pickPayloadFromModel(p model.PickPayload) pickPayloadDTO {
	d := pickPayloadDTO{
		ParticipantID: p.ParticipantID,
		EventID:       p.EventID,
		Rumble: rumblePickDTO{
			Entrants:         p.Rumble.EntrantIDs,
			FinalFour:        p.Rumble.FinalFour,
			Winner:           p.Rumble.WinnerID,
			EntryOne:         p.Rumble.EntryOneID,
			EntryTwo:         p.Rumble.EntryTwoID,
			EntryThirty:      p.Rumble.EntryThirtyID,
			MostEliminations: p.Rumble.MostEliminationsID,
		},
		UpdatedAt: p.UpdatedAt,
	}
	for _, mp := range p.Matches {
		d.Matches = append(d.Matches, matchPickDTO{
			MatchID:      mp.MatchID,
			SideID:       mp.SideID,
			Finish:       string(mp.Finish),
			FinishWinner: mp.FinishWinnerID,
			FinishLoser:  mp.FinishLoserID,
		})
	}
	return d
}

type entrantDTO struct {
	ID        string `json:"id,omitempty"`
	Name      string `json:"name"`
	Promotion string `json:"promotion"`
	Gender    string `json:"gender"`
	Active    bool   `json:"active"`
	Year      int    `json:"year,omitempty"`
}

func (d entrantDTO) toModel() model.Entrant {
	return model.Entrant{
		ID:        d.ID,
		Name:      d.Name,
		Promotion: d.Promotion,
		Gender:    model.Gender(d.Gender),
		Active:    d.Active,
		Year:      d.Year,
	}
}

func entrantFromModel(e model.Entrant) entrantDTO {
	return entrantDTO{
		ID:        e.ID,
		Name:      e.Name,
		Promotion: e.Promotion,
		Gender:    string(e.Gender),
		Active:    e.Active,
		Year:      e.Year,
	}
}

type eventDTO struct {
	ID        string     `json:"id,omitempty"`
	Name      string     `json:"name"`
	StartTime *time.Time `json:"start_time,omitempty"`
	Gender    string     `json:"gender"`
	Status    string     `json:"status,omitempty"`
	Year      int        `json:"year,omitempty"`
}

func (d eventDTO) toModel() model.Event {
	return model.Event{
		ID:        d.ID,
		Name:      d.Name,
		StartTime: d.StartTime,
		Gender:    model.Gender(d.Gender),
		Status:    model.EventStatus(d.Status),
		Year:      d.Year,
	}
}

func eventFromModel(ev model.Event) eventDTO {
	return eventDTO{
		ID:        ev.ID,
		Name:      ev.Name,
		StartTime: ev.StartTime,
		Gender:    string(ev.Gender),
		Status:    string(ev.Status),
		Year:      ev.Year,
	}
}

type matchSideDTO struct {
	ID       string   `json:"id,omitempty"`
	Name     string   `json:"name"`
	Entrants []string `json:"entrants"`
}

type matchDTO struct {
	ID     string         `json:"id,omitempty"`
	Name   string         `json:"name"`
	Kind   string         `json:"kind,omitempty"`
	Format string         `json:"format"`
	Sides  []matchSideDTO `json:"sides"`
}

func (d matchDTO) toModel() model.Match {
	m := model.Match{
		ID:     d.ID,
		Name:   d.Name,
		Kind:   d.Kind,
		Format: model.MatchFormat(d.Format),
	}
	for _, s := range d.Sides {
		m.Sides = append(m.Sides, model.MatchSide{
			ID:         s.ID,
			Name:       s.Name,
			EntrantIDs: s.Entrants,
		})
	}
	return m
}

type scoreDTO struct {
	ParticipantID string         `json:"participant_id"`
	EventID       string         `json:"event_id"`
	Points        int            `json:"points"`
	Breakdown     map[string]int `json:"breakdown"`
	HasData       bool           `json:"has_data"`
	ComputedAt    time.Time      `json:"computed_at"`
}

func scoreFromModel(s model.Score) scoreDTO {
	return scoreDTO{
		ParticipantID: s.ParticipantID,
		EventID:       s.EventID,
		Points:        s.Points,
		Breakdown:     s.Breakdown,
		HasData:       s.HasData,
		ComputedAt:    s.ComputedAt,
	}
}
