package model_test

import (
	"testing"
	"time"

	"github.com/okian/rumble/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestEntryActive(t *testing.T) {
	Convey("Given battle-royal entries", t, func() {
		Convey("An entry with no elimination time is active", func() {
			So(model.Entry{EntrantID: "a"}.Active(), ShouldBeTrue)
		})

		Convey("An eliminated entry is not", func() {
			at := time.Now()
			So(model.Entry{EntrantID: "a", EliminatedAt: &at}.Active(), ShouldBeFalse)
		})
	})
}

func TestFinishMethodValid(t *testing.T) {
	Convey("Given finish methods", t, func() {
		Convey("Recognized values validate", func() {
			for _, f := range []model.FinishMethod{
				model.FinishUnset,
				model.FinishPinfall,
				model.FinishSubmission,
				model.FinishDisqualification,
			} {
				So(f.Valid(), ShouldBeTrue)
			}
		})

		Convey("Anything else does not", func() {
			So(model.FinishMethod("countout").Valid(), ShouldBeFalse)
		})
	})
}

func TestMatchAccessors(t *testing.T) {
	Convey("Given a tag match", t, func() {
		m := model.Match{
			ID:     "m1",
			Format: model.FormatTag,
			Sides: []model.MatchSide{
				{ID: "t1", EntrantIDs: []string{"a", "b"}},
				{ID: "t2", EntrantIDs: []string{"c", "d"}},
			},
		}

		Convey("Side finds a side by id", func() {
			side, ok := m.Side("t2")
			So(ok, ShouldBeTrue)
			So(side.EntrantIDs, ShouldResemble, []string{"c", "d"})

			_, ok = m.Side("t9")
			So(ok, ShouldBeFalse)
		})

		Convey("ParticipantCount sums across sides", func() {
			So(m.ParticipantCount(), ShouldEqual, 4)
		})

		Convey("Participants flattens all sides", func() {
			So(m.Participants(), ShouldResemble, []string{"a", "b", "c", "d"})
		})
	})
}

func TestRecalcJobKey(t *testing.T) {
	Convey("Given a recalculation job", t, func() {
		j := model.RecalcJob{EventID: "evt", ParticipantID: "u1"}

		Convey("Its key joins event and participant", func() {
			So(j.Key(), ShouldEqual, "evt/u1")
		})
	})
}
