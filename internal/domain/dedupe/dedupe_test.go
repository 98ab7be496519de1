package dedupe_test

import (
	"context"
	"fmt"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/MaryEddythe/tabulator/internal/domain/dedupe"
)

func TestInMemoryDeduper(t *testing.T) {
	ctx := context.Background()

	Convey("Given a fresh deduper", t, func() {
		d := dedupe.NewInMemoryDeduper()

		Convey("When recording a new ID", func() {
			seen := d.SeenAndRecord(ctx, "sub-1")

			Convey("Then it was not seen before", func() {
				So(seen, ShouldBeFalse)
				So(d.Size(), ShouldEqual, 1)
			})

			Convey("And a repeat is reported as seen", func() {
				So(d.SeenAndRecord(ctx, "sub-1"), ShouldBeTrue)
				So(d.Size(), ShouldEqual, 1)
			})
		})

		Convey("When unrecording an ID", func() {
			d.SeenAndRecord(ctx, "sub-2")
			d.Unrecord(ctx, "sub-2")

			Convey("Then it can be recorded again", func() {
				So(d.SeenAndRecord(ctx, "sub-2"), ShouldBeFalse)
			})
		})
	})

	Convey("Given a deduper bounded to 3 IDs", t, func() {
		d := dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(3))
		for i := 0; i < 3; i++ {
			So(d.SeenAndRecord(ctx, fmt.Sprintf("sub-%d", i)), ShouldBeFalse)
		}

		Convey("When a fourth ID arrives", func() {
			So(d.SeenAndRecord(ctx, "sub-3"), ShouldBeFalse)

			Convey("Then the oldest entry is evicted", func() {
				So(d.Size(), ShouldEqual, 3)
				So(d.SeenAndRecord(ctx, "sub-0"), ShouldBeFalse)
			})
		})
	})
}
