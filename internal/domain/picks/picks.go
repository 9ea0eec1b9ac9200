// Package picks validates and normalizes prediction payloads against an
// event's eligible roster and card.
package picks

import (
	"fmt"

	"github.com/okian/rumble/internal/domain/model"
)

// Cardinality limits for the battle-royal segment.
const (
	MaxEntrants   = 30
	FinalFourSize = 4
)

// Validate checks a proposed payload against the event's eligible entrant
// set (canonical ids) and card matches. Structural violations reject with
// the first broken rule; dangling references (ids no longer eligible or no
// longer on the card) are cleared rather than rejected, so stale payloads
// stay usable. On success the returned payload is normalized: deduplicated,
// cascade-cleared, and with derived finish picks filled in.
func Validate(p model.PickPayload, eligible map[string]model.Entrant, matches map[string]model.Match) (model.PickPayload, error) {
	if len(p.Rumble.EntrantIDs) > MaxEntrants {
		return model.PickPayload{}, fmt.Errorf("%w: %d entrants", ErrTooManyEntrants, len(p.Rumble.EntrantIDs))
	}
	if len(p.Rumble.FinalFour) > FinalFourSize {
		return model.PickPayload{}, fmt.Errorf("%w: %d entrants", ErrFinalFourTooLarge, len(p.Rumble.FinalFour))
	}

	out := p
	out.Rumble = normalizeRumble(p.Rumble, eligible)

	normalized := make([]model.MatchPick, 0, len(p.Matches))
	seen := make(map[string]bool, len(p.Matches))
	for _, mp := range p.Matches {
		match, ok := matches[mp.MatchID]
		if !ok || seen[mp.MatchID] {
			// Unknown match ids are stale references, not rule violations.
			continue
		}
		if mp.SideID == "" {
			continue
		}
		validated, err := validateMatchPick(mp, match)
		if err != nil {
			return model.PickPayload{}, err
		}
		seen[mp.MatchID] = true
		normalized = append(normalized, validated)
	}
	out.Matches = normalized
	return out, nil
}

// normalizeRumble drops ineligible ids from the selection set and cascades
// the shrink into every narrower pick so no dangling reference survives.
func normalizeRumble(r model.RumblePick, eligible map[string]model.Entrant) model.RumblePick {
	selected := make([]string, 0, len(r.EntrantIDs))
	inSelection := make(map[string]bool, len(r.EntrantIDs))
	for _, id := range r.EntrantIDs {
		if _, ok := eligible[id]; !ok || inSelection[id] {
			continue
		}
		inSelection[id] = true
		selected = append(selected, id)
	}

	finalFour := make([]string, 0, len(r.FinalFour))
	inFinalFour := make(map[string]bool, len(r.FinalFour))
	for _, id := range r.FinalFour {
		if !inSelection[id] || inFinalFour[id] {
			continue
		}
		inFinalFour[id] = true
		finalFour = append(finalFour, id)
	}

	member := func(id string) string {
		if inSelection[id] {
			return id
		}
		return ""
	}

	return model.RumblePick{
		EntrantIDs: selected,
		FinalFour:  finalFour,
		// The winner pick is constrained to the selection set only; the UI
		// offers final-four members but that narrowing is not enforced here.
		WinnerID:           member(r.WinnerID),
		EntryOneID:         member(r.EntryOneID),
		EntryTwoID:         member(r.EntryTwoID),
		EntryThirtyID:      member(r.EntryThirtyID),
		MostEliminationsID: member(r.MostEliminationsID),
	}
}

func validateMatchPick(mp model.MatchPick, match model.Match) (model.MatchPick, error) {
	side, ok := match.Side(mp.SideID)
	if !ok {
		return model.MatchPick{}, fmt.Errorf("%w: match %s side %s", ErrSideNotInMatch, match.ID, mp.SideID)
	}

	if match.ParticipantCount() <= 2 {
		// Two-participant matches imply finish winner/loser from the side
		// pick; separate finish picks are not collected for them.
		if mp.Finish != model.FinishUnset || mp.FinishWinnerID != "" || mp.FinishLoserID != "" {
			return model.MatchPick{}, fmt.Errorf("%w: match %s", ErrFinishPickNotAllowed, match.ID)
		}
		return model.MatchPick{MatchID: mp.MatchID, SideID: mp.SideID}, nil
	}

	if !mp.Finish.Valid() {
		return model.MatchPick{}, fmt.Errorf("%w: %q", ErrInvalidFinishMethod, mp.Finish)
	}

	out := model.MatchPick{
		MatchID: mp.MatchID,
		SideID:  mp.SideID,
		Finish:  mp.Finish,
	}

	onSide := membership(side.EntrantIDs)
	inMatch := membership(match.Participants())

	if match.Format == model.FormatTag {
		if mp.FinishWinnerID != "" {
			if !inMatch[mp.FinishWinnerID] {
				// Stale reference, clear.
			} else if !onSide[mp.FinishWinnerID] {
				return model.MatchPick{}, fmt.Errorf("%w: match %s entrant %s", ErrFinishWinnerNotOnSide, match.ID, mp.FinishWinnerID)
			} else {
				out.FinishWinnerID = mp.FinishWinnerID
			}
		}
	} else {
		// Non-tag multi-way matches collect no finish-winner pick: the
		// pinning entrant is the picked winner. Derive it when the side has
		// exactly one entrant.
		if len(side.EntrantIDs) == 1 {
			out.FinishWinnerID = side.EntrantIDs[0]
		}
	}

	if mp.FinishLoserID != "" {
		switch {
		case !inMatch[mp.FinishLoserID]:
			// Stale reference, clear.
		case onSide[mp.FinishLoserID]:
			return model.MatchPick{}, fmt.Errorf("%w: match %s entrant %s", ErrFinishLoserOnWinning, match.ID, mp.FinishLoserID)
		default:
			out.FinishLoserID = mp.FinishLoserID
		}
	}

	return out, nil
}

func membership(ids []string) map[string]bool {
	m := make(map[string]bool, len(ids))
	for _, id := range ids {
		m[id] = true
	}
	return m
}
