// Package ranking orders an event's scores into a leaderboard.
package ranking

import (
	"sort"

	"github.com/okian/rumble/internal/domain/model"
)

// Row is one leaderboard line.
type Row struct {
	Rank          int    `json:"rank"`
	ParticipantID string `json:"participant_id"`
	Points        int    `json:"points"`
}

// Leaderboard sorts scores descending by points and assigns sequential
// ranks from 1. Ties keep the stable input order and still get distinct
// ranks; shared ranks on ties are an open product question, so the observed
// behavior is kept as-is.
func Leaderboard(scores []model.Score) []Row {
	sorted := make([]model.Score, len(scores))
	copy(sorted, scores)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Points > sorted[j].Points
	})

	rows := make([]Row, len(sorted))
	for i, s := range sorted {
		rows[i] = Row{
			Rank:          i + 1,
			ParticipantID: s.ParticipantID,
			Points:        s.Points,
		}
	}
	return rows
}

// Rank reports one participant's leaderboard row. The second return is
// false until a score row exists for that participant.
func Rank(scores []model.Score, participantID string) (Row, bool) {
	for _, row := range Leaderboard(scores) {
		if row.ParticipantID == participantID {
			return row, true
		}
	}
	return Row{}, false
}
