package repository_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/MaryEddythe/tabulator/internal/adapters/repository"
	"github.com/MaryEddythe/tabulator/internal/domain/criteria"
)

func newStore() *repository.MemoryStore {
	return repository.NewMemoryStore(
		repository.WithHeaders(criteria.Headers()),
	)
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()

	Convey("Given an empty store", t, func() {
		store := newStore()

		Convey("Then reading an absent table yields an empty slice, not an error", func() {
			rows, err := store.ReadAll(ctx, criteria.Gown)
			So(err, ShouldBeNil)
			So(rows, ShouldNotBeNil)
			So(rows, ShouldBeEmpty)
			So(store.Count(ctx, criteria.Gown), ShouldEqual, 0)
		})

		Convey("Then appending to a category without a configured header fails", func() {
			err := store.Append(ctx, "swimwear", []string{"ts", "judge", "1", "90"})
			So(err, ShouldWrap, repository.ErrUnknownTable)
		})

		Convey("When appending rows", func() {
			So(store.Append(ctx, criteria.Gown, []string{"ts", "Judge A", "1", "80"}), ShouldBeNil)
			So(store.Append(ctx, criteria.Gown, []string{"ts", "Judge B", "2", "85"}), ShouldBeNil)

			Convey("Then rows come back in insertion order, header excluded", func() {
				rows, err := store.ReadAll(ctx, criteria.Gown)
				So(err, ShouldBeNil)
				So(rows, ShouldHaveLength, 2)
				So(rows[0][1], ShouldEqual, "Judge A")
				So(rows[1][1], ShouldEqual, "Judge B")
				So(store.Count(ctx, criteria.Gown), ShouldEqual, 2)
			})

			Convey("And returned rows are copies", func() {
				rows, _ := store.ReadAll(ctx, criteria.Gown)
				rows[0][1] = "mutated"
				again, _ := store.ReadAll(ctx, criteria.Gown)
				So(again[0][1], ShouldEqual, "Judge A")
			})
		})
	})

	Convey("Given a store with derived rows", t, func() {
		store := newStore()
		So(store.Append(ctx, criteria.Overall, []string{"ts", "1", "75", "80", "70", "65", "7"}), ShouldBeNil)

		Convey("When replacing the table contents", func() {
			err := store.ReplaceAll(ctx, criteria.Overall, [][]string{
				{"ts", "2", "82", "90", "72", "66", "8"},
				{"ts", "1", "76", "81", "70", "66", "7"},
			})
			So(err, ShouldBeNil)

			Convey("Then only the new rows remain", func() {
				rows, _ := store.ReadAll(ctx, criteria.Overall)
				So(rows, ShouldHaveLength, 2)
				So(rows[0][1], ShouldEqual, "2")
			})
		})

		Convey("When clearing the rows", func() {
			So(store.ClearRows(ctx, criteria.Overall), ShouldBeNil)

			Convey("Then the table is empty but still writable", func() {
				So(store.Count(ctx, criteria.Overall), ShouldEqual, 0)
				So(store.Append(ctx, criteria.Overall, []string{"ts", "3", "70", "75", "68", "64", "6"}), ShouldBeNil)
			})
		})
	})

	Convey("Given concurrent readers during a rebuild", t, func() {
		store := newStore()
		for i := 0; i < 50; i++ {
			So(store.Append(ctx, criteria.Overall, []string{"ts", fmt.Sprint(i), "70", "0", "0", "0", "0"}), ShouldBeNil)
		}

		replacement := make([][]string, 50)
		for i := range replacement {
			replacement[i] = []string{"ts", fmt.Sprint(i), "80", "0", "0", "0", "0"}
		}

		var wg sync.WaitGroup
		partial := false
		var mu sync.Mutex

		for r := 0; r < 8; r++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 100; j++ {
					rows, err := store.ReadAll(ctx, criteria.Overall)
					if err != nil || (len(rows) != 50) {
						mu.Lock()
						partial = true
						mu.Unlock()
						return
					}
				}
			}()
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				_ = store.ReplaceAll(ctx, criteria.Overall, replacement)
			}
		}()
		wg.Wait()

		Convey("Then no reader ever observes a partially rewritten table", func() {
			So(partial, ShouldBeFalse)
		})
	})

	Convey("Given a closed store", t, func() {
		store := newStore()
		So(store.Close(), ShouldBeNil)

		Convey("Then operations fail with ErrStoreClosed", func() {
			err := store.Append(ctx, criteria.Gown, []string{"ts", "judge", "1", "80"})
			So(err, ShouldWrap, repository.ErrStoreClosed)
			_, err = store.ReadAll(ctx, criteria.Gown)
			So(err, ShouldWrap, repository.ErrStoreClosed)
		})
	})
}
