package picks_test

import (
	"testing"

	"github.com/okian/rumble/internal/domain/model"
	picks "github.com/okian/rumble/internal/domain/picks"
	. "github.com/smartystreets/goconvey/convey"
)

func eligibleSet(ids ...string) map[string]model.Entrant {
	m := make(map[string]model.Entrant, len(ids))
	for _, id := range ids {
		m[id] = model.Entrant{ID: id, Name: id, Active: true}
	}
	return m
}

func TestValidate_Rumble(t *testing.T) {
	Convey("Given an eligible entrant set", t, func() {
		eligible := eligibleSet("a", "b", "c", "d", "e")
		noMatches := map[string]model.Match{}

		Convey("When the entrant selection exceeds the field size", func() {
			p := model.PickPayload{}
			for i := 0; i < picks.MaxEntrants+1; i++ {
				p.Rumble.EntrantIDs = append(p.Rumble.EntrantIDs, "a")
			}

			Convey("Then the payload rejects", func() {
				_, err := picks.Validate(p, eligible, noMatches)
				So(err, ShouldWrap, picks.ErrTooManyEntrants)
			})
		})

		Convey("When the final four selection has five entrants", func() {
			p := model.PickPayload{Rumble: model.RumblePick{
				FinalFour: []string{"a", "b", "c", "d", "e"},
			}}

			Convey("Then the payload rejects", func() {
				_, err := picks.Validate(p, eligible, noMatches)
				So(err, ShouldWrap, picks.ErrFinalFourTooLarge)
			})
		})

		Convey("When the selection contains ineligible and duplicate ids", func() {
			p := model.PickPayload{Rumble: model.RumblePick{
				EntrantIDs: []string{"a", "gone", "b", "a", "c"},
			}}

			Convey("Then they are dropped, not rejected", func() {
				out, err := picks.Validate(p, eligible, noMatches)
				So(err, ShouldBeNil)
				So(out.Rumble.EntrantIDs, ShouldResemble, []string{"a", "b", "c"})
			})
		})

		Convey("When narrower picks reference ids outside the selection", func() {
			p := model.PickPayload{Rumble: model.RumblePick{
				EntrantIDs:         []string{"a", "b"},
				FinalFour:          []string{"a", "c"},
				WinnerID:           "c",
				EntryOneID:         "a",
				EntryTwoID:         "gone",
				EntryThirtyID:      "b",
				MostEliminationsID: "d",
			}}

			Convey("Then the dangling references cascade-clear", func() {
				out, err := picks.Validate(p, eligible, noMatches)
				So(err, ShouldBeNil)
				So(out.Rumble.FinalFour, ShouldResemble, []string{"a"})
				So(out.Rumble.WinnerID, ShouldBeEmpty)
				So(out.Rumble.EntryOneID, ShouldEqual, "a")
				So(out.Rumble.EntryTwoID, ShouldBeEmpty)
				So(out.Rumble.EntryThirtyID, ShouldEqual, "b")
				So(out.Rumble.MostEliminationsID, ShouldBeEmpty)
			})
		})

		Convey("When an entrant leaves the eligible set after submission", func() {
			p := model.PickPayload{Rumble: model.RumblePick{
				EntrantIDs: []string{"a", "b"},
				FinalFour:  []string{"b"},
				WinnerID:   "b",
			}}
			shrunk := eligibleSet("a")

			Convey("Then the shrink cascades through every narrower pick", func() {
				out, err := picks.Validate(p, shrunk, noMatches)
				So(err, ShouldBeNil)
				So(out.Rumble.EntrantIDs, ShouldResemble, []string{"a"})
				So(out.Rumble.FinalFour, ShouldBeEmpty)
				So(out.Rumble.WinnerID, ShouldBeEmpty)
			})
		})
	})
}

func TestValidate_Matches(t *testing.T) {
	singles := model.Match{
		ID:     "m1",
		Format: model.FormatSingles,
		Sides: []model.MatchSide{
			{ID: "s1", EntrantIDs: []string{"a"}},
			{ID: "s2", EntrantIDs: []string{"b"}},
		},
	}
	tag := model.Match{
		ID:     "m2",
		Format: model.FormatTag,
		Sides: []model.MatchSide{
			{ID: "t1", EntrantIDs: []string{"a", "b"}},
			{ID: "t2", EntrantIDs: []string{"c", "d"}},
		},
	}
	triple := model.Match{
		ID:     "m3",
		Format: model.FormatTripleThreat,
		Sides: []model.MatchSide{
			{ID: "x1", EntrantIDs: []string{"a"}},
			{ID: "x2", EntrantIDs: []string{"b"}},
			{ID: "x3", EntrantIDs: []string{"c"}},
		},
	}
	card := map[string]model.Match{"m1": singles, "m2": tag, "m3": triple}
	eligible := eligibleSet("a", "b", "c", "d")

	Convey("Given a card with singles, tag and triple-threat matches", t, func() {
		Convey("When a pick names a side not in the match", func() {
			p := model.PickPayload{Matches: []model.MatchPick{{MatchID: "m1", SideID: "t1"}}}

			Convey("Then the payload rejects", func() {
				_, err := picks.Validate(p, eligible, card)
				So(err, ShouldWrap, picks.ErrSideNotInMatch)
			})
		})

		Convey("When a pick references a match no longer on the card", func() {
			p := model.PickPayload{Matches: []model.MatchPick{
				{MatchID: "deleted", SideID: "s1"},
				{MatchID: "m1", SideID: "s1"},
			}}

			Convey("Then the stale pick drops and the rest survives", func() {
				out, err := picks.Validate(p, eligible, card)
				So(err, ShouldBeNil)
				So(out.Matches, ShouldHaveLength, 1)
				So(out.Matches[0].MatchID, ShouldEqual, "m1")
			})
		})

		Convey("When a singles pick carries finish detail", func() {
			p := model.PickPayload{Matches: []model.MatchPick{
				{MatchID: "m1", SideID: "s1", Finish: model.FinishPinfall},
			}}

			Convey("Then the payload rejects", func() {
				_, err := picks.Validate(p, eligible, card)
				So(err, ShouldWrap, picks.ErrFinishPickNotAllowed)
			})
		})

		Convey("When a multi-way pick has an unrecognized finish method", func() {
			p := model.PickPayload{Matches: []model.MatchPick{
				{MatchID: "m3", SideID: "x1", Finish: "countout"},
			}}

			Convey("Then the payload rejects", func() {
				_, err := picks.Validate(p, eligible, card)
				So(err, ShouldWrap, picks.ErrInvalidFinishMethod)
			})
		})

		Convey("When a tag finish winner sits on a different side", func() {
			p := model.PickPayload{Matches: []model.MatchPick{
				{MatchID: "m2", SideID: "t1", Finish: model.FinishPinfall, FinishWinnerID: "c"},
			}}

			Convey("Then the payload rejects", func() {
				_, err := picks.Validate(p, eligible, card)
				So(err, ShouldWrap, picks.ErrFinishWinnerNotOnSide)
			})
		})

		Convey("When a tag finish winner has left the match entirely", func() {
			p := model.PickPayload{Matches: []model.MatchPick{
				{MatchID: "m2", SideID: "t1", Finish: model.FinishPinfall, FinishWinnerID: "zz"},
			}}

			Convey("Then the stale reference clears instead of rejecting", func() {
				out, err := picks.Validate(p, eligible, card)
				So(err, ShouldBeNil)
				So(out.Matches[0].FinishWinnerID, ShouldBeEmpty)
			})
		})

		Convey("When a finish loser sits on the predicted winning side", func() {
			p := model.PickPayload{Matches: []model.MatchPick{
				{MatchID: "m2", SideID: "t1", Finish: model.FinishSubmission, FinishLoserID: "b"},
			}}

			Convey("Then the payload rejects", func() {
				_, err := picks.Validate(p, eligible, card)
				So(err, ShouldWrap, picks.ErrFinishLoserOnWinning)
			})
		})

		Convey("When a valid tag pick is submitted", func() {
			p := model.PickPayload{Matches: []model.MatchPick{
				{MatchID: "m2", SideID: "t1", Finish: model.FinishPinfall, FinishWinnerID: "a", FinishLoserID: "d"},
			}}

			Convey("Then it survives intact", func() {
				out, err := picks.Validate(p, eligible, card)
				So(err, ShouldBeNil)
				So(out.Matches[0].FinishWinnerID, ShouldEqual, "a")
				So(out.Matches[0].FinishLoserID, ShouldEqual, "d")
			})
		})

		Convey("When a triple-threat side is picked", func() {
			p := model.PickPayload{Matches: []model.MatchPick{
				{MatchID: "m3", SideID: "x2", Finish: model.FinishSubmission, FinishLoserID: "c"},
			}}

			Convey("Then the finish winner derives from the single-entrant side", func() {
				out, err := picks.Validate(p, eligible, card)
				So(err, ShouldBeNil)
				So(out.Matches[0].FinishWinnerID, ShouldEqual, "b")
				So(out.Matches[0].FinishLoserID, ShouldEqual, "c")
			})
		})

		Convey("When the same match is picked twice", func() {
			p := model.PickPayload{Matches: []model.MatchPick{
				{MatchID: "m1", SideID: "s1"},
				{MatchID: "m1", SideID: "s2"},
			}}

			Convey("Then only the first pick is kept", func() {
				out, err := picks.Validate(p, eligible, card)
				So(err, ShouldBeNil)
				So(out.Matches, ShouldHaveLength, 1)
				So(out.Matches[0].SideID, ShouldEqual, "s1")
			})
		})

		Convey("When a pick has no side selected", func() {
			p := model.PickPayload{Matches: []model.MatchPick{{MatchID: "m1"}}}

			Convey("Then it is dropped", func() {
				out, err := picks.Validate(p, eligible, card)
				So(err, ShouldBeNil)
				So(out.Matches, ShouldBeEmpty)
			})
		})
	})
}
