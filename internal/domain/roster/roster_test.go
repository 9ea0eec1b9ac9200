package roster_test

import (
	"testing"

	"github.com/okian/rumble/internal/domain/model"
	roster "github.com/okian/rumble/internal/domain/roster"
	. "github.com/smartystreets/goconvey/convey"
)

func TestNormalize(t *testing.T) {
	Convey("Given entrant names with noise", t, func() {
		Convey("Then whitespace and case differences collapse", func() {
			So(roster.Normalize("  Rhea Ripley "), ShouldEqual, "rhea ripley")
			So(roster.Normalize("RHEA RIPLEY"), ShouldEqual, "rhea ripley")
			So(roster.Normalize("rhea ripley"), ShouldEqual, "rhea ripley")
		})

		Convey("Then interior spacing is preserved", func() {
			So(roster.Normalize("Cody  Rhodes"), ShouldNotEqual, roster.Normalize("Cody Rhodes"))
		})
	})
}

func TestCanonicalize(t *testing.T) {
	Convey("Given a canonicalizer with the default primary promotion", t, func() {
		canon := roster.New()

		Convey("When two rows share a normalized name", func() {
			entrants := []model.Entrant{
				{ID: "nxt-1", Name: "Bron Breakker", Promotion: "NXT"},
				{ID: "wwe-1", Name: " bron breakker ", Promotion: "WWE"},
			}

			Convey("Then the primary-promotion row wins the tie", func() {
				byName := canon.Canonicalize(entrants)
				So(byName, ShouldHaveLength, 1)
				So(byName["bron breakker"].ID, ShouldEqual, "wwe-1")
			})

			Convey("And the winner keeps the first row's position in the list", func() {
				list := canon.CanonicalList(entrants)
				So(list, ShouldHaveLength, 1)
				So(list[0].ID, ShouldEqual, "wwe-1")
			})
		})

		Convey("When duplicate rows tie without a primary promotion", func() {
			entrants := []model.Entrant{
				{ID: "a", Name: "Kazuchika Okada", Promotion: "NJPW"},
				{ID: "b", Name: "Kazuchika Okada", Promotion: "AEW"},
			}

			Convey("Then the first-seen row is kept", func() {
				byName := canon.Canonicalize(entrants)
				So(byName["kazuchika okada"].ID, ShouldEqual, "a")
			})
		})

		Convey("When the input has no duplicates", func() {
			entrants := []model.Entrant{
				{ID: "a", Name: "Bianca Belair", Promotion: "WWE"},
				{ID: "b", Name: "Jade Cargill", Promotion: "WWE"},
			}

			Convey("Then every row survives in input order", func() {
				list := canon.CanonicalList(entrants)
				So(list, ShouldHaveLength, 2)
				So(list[0].ID, ShouldEqual, "a")
				So(list[1].ID, ShouldEqual, "b")
			})
		})

		Convey("When the input is empty", func() {
			So(canon.Canonicalize(nil), ShouldBeEmpty)
			So(canon.CanonicalList(nil), ShouldBeEmpty)
		})
	})

	Convey("Given a canonicalizer with a custom primary promotion", t, func() {
		canon := roster.New(roster.WithPrimaryPromotion("AEW"))

		Convey("Then ties resolve toward the configured label", func() {
			entrants := []model.Entrant{
				{ID: "wwe", Name: "Ricochet", Promotion: "WWE"},
				{ID: "aew", Name: "Ricochet", Promotion: "AEW"},
			}
			byName := canon.Canonicalize(entrants)
			So(byName["ricochet"].ID, ShouldEqual, "aew")
		})
	})
}

func TestEligible(t *testing.T) {
	Convey("Given a mixed roster", t, func() {
		entrants := []model.Entrant{
			{ID: "a", Name: "A", Gender: model.GenderMen, Active: true, Year: 2026},
			{ID: "b", Name: "B", Gender: model.GenderWomen, Active: true, Year: 2026},
			{ID: "c", Name: "C", Gender: model.GenderMen, Active: false, Year: 2026},
			{ID: "d", Name: "D", Gender: model.GenderMen, Active: true, Year: 2025},
			{ID: "e", Name: "E", Gender: model.GenderMen, Active: true, Year: 0},
		}

		Convey("When filtering for a men's 2026 event", func() {
			out := roster.Eligible(entrants, model.GenderMen, 2026)

			Convey("Then inactive, wrong-gender and wrong-year rows drop", func() {
				ids := make([]string, 0, len(out))
				for _, e := range out {
					ids = append(ids, e.ID)
				}
				So(ids, ShouldResemble, []string{"a", "e"})
			})
		})

		Convey("When the event year is zero", func() {
			out := roster.Eligible(entrants, model.GenderMen, 0)

			Convey("Then every active matching-gender row qualifies", func() {
				So(out, ShouldHaveLength, 3)
			})
		})
	})
}
