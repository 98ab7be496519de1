package criteria_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/MaryEddythe/tabulator/internal/domain/criteria"
)

func TestRegistry(t *testing.T) {
	Convey("Given the fixed category registry", t, func() {
		Convey("Then every category is known and ordered", func() {
			all := criteria.All()
			So(all, ShouldHaveLength, 7)
			So(all[0], ShouldEqual, criteria.Talent)
			So(all[len(all)-1], ShouldEqual, criteria.Overall)
			for _, name := range all {
				So(criteria.Valid(name), ShouldBeTrue)
			}
		})

		Convey("Then only overall is derived", func() {
			So(criteria.IsDerived(criteria.Overall), ShouldBeTrue)
			for _, name := range criteria.Direct() {
				So(criteria.IsDerived(name), ShouldBeFalse)
			}
			So(criteria.Direct(), ShouldHaveLength, 6)
		})

		Convey("Then unknown categories yield an empty criterion list", func() {
			So(criteria.Valid("swimwear"), ShouldBeFalse)
			So(criteria.Criteria("swimwear"), ShouldBeEmpty)
			So(criteria.Header("swimwear"), ShouldBeEmpty)
		})

		Convey("Then interview criteria carry their weights in order", func() {
			crits := criteria.Criteria(criteria.Interview)
			So(crits, ShouldHaveLength, 4)
			So(crits[0].Name, ShouldEqual, "Wit and Content")
			So(crits[0].Weight, ShouldEqual, 40.0)
			So(crits[3].Name, ShouldEqual, "Overall Impact")
			So(crits[3].Weight, ShouldEqual, 10.0)
		})

		Convey("Then the impact criterion is the last in each source category", func() {
			for _, name := range criteria.Sources() {
				crits := criteria.Criteria(name)
				So(criteria.ImpactCriterion(name), ShouldEqual, crits[len(crits)-1].Name)
				So(criteria.ImpactCriterion(name), ShouldEqual, "Overall Impact")
			}
		})

		Convey("Then source categories feed the overall derivation", func() {
			So(criteria.Sources(), ShouldResemble, []string{criteria.Interview, criteria.Sports, criteria.Gown})
			So(criteria.IsSource(criteria.Gown), ShouldBeTrue)
			So(criteria.IsSource(criteria.Photogenic), ShouldBeFalse)
			So(criteria.IsSource(criteria.Overall), ShouldBeFalse)
		})
	})
}

func TestHeaders(t *testing.T) {
	Convey("Given the table headers", t, func() {
		Convey("Then direct categories lead with the shared columns", func() {
			h := criteria.Header(criteria.Gown)
			So(h[:4], ShouldResemble, []string{"Timestamp", "Judge Name", "Candidate Number", "Total Score"})
			So(h[4:], ShouldResemble, []string{"Poise and Bearing", "Design and Fitting", "Stage Deportment", "Overall Impact"})
		})

		Convey("Then the derived overall table has its fixed layout", func() {
			So(criteria.Header(criteria.Overall), ShouldResemble, []string{
				"Timestamp", "Candidate Number", "Final Score",
				"Interview Avg", "Sports Avg", "Gown Avg", "Avg Impact",
			})
		})

		Convey("Then Headers covers every category", func() {
			headers := criteria.Headers()
			So(headers, ShouldHaveLength, 7)
			for _, name := range criteria.All() {
				So(headers[name], ShouldResemble, criteria.Header(name))
			}
		})
	})
}
