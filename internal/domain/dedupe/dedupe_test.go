package dedupe_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"econlab/internal/domain/dedupe"
	. "github.com/smartystreets/goconvey/convey"
)

func TestSeenAndRecord(t *testing.T) {
	Convey("Given a fresh deduper", t, func() {
		d := dedupe.NewInMemoryDeduper()
		ctx := context.Background()

		Convey("When recording a new id", func() {
			seen := d.SeenAndRecord(ctx, "req-1")

			Convey("Then it should not have been seen before", func() {
				So(seen, ShouldBeFalse)
				So(d.Size(), ShouldEqual, 1)
			})

			Convey("And recording it again should report a duplicate", func() {
				So(d.SeenAndRecord(ctx, "req-1"), ShouldBeTrue)
				So(d.Size(), ShouldEqual, 1)
			})
		})

		Convey("When unrecording an id", func() {
			d.SeenAndRecord(ctx, "req-2")
			d.Unrecord(ctx, "req-2")

			Convey("Then the id should be accepted again", func() {
				So(d.SeenAndRecord(ctx, "req-2"), ShouldBeFalse)
			})
		})

		Convey("When unrecording an unknown id", func() {
			So(func() { d.Unrecord(ctx, "never-seen") }, ShouldNotPanic)
			So(d.Size(), ShouldEqual, 0)
		})
	})
}

func TestBoundedEviction(t *testing.T) {
	Convey("Given a deduper bounded at three ids", t, func() {
		d := dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(3))
		ctx := context.Background()

		Convey("When a fourth id arrives", func() {
			for i := 1; i <= 4; i++ {
				d.SeenAndRecord(ctx, fmt.Sprintf("req-%d", i))
			}

			Convey("Then the oldest id should have been evicted", func() {
				So(d.Size(), ShouldEqual, 3)
				So(d.SeenAndRecord(ctx, "req-1"), ShouldBeFalse) // forgotten
				So(d.SeenAndRecord(ctx, "req-4"), ShouldBeTrue)  // still tracked
			})
		})
	})
}

func TestConcurrentAccess(t *testing.T) {
	Convey("Given concurrent submitters sharing a deduper", t, func() {
		d := dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(10_000))
		ctx := context.Background()

		Convey("When many goroutines record the same id", func() {
			const goroutines = 32
			var firsts atomic32
			var wg sync.WaitGroup
			for i := 0; i < goroutines; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					if !d.SeenAndRecord(ctx, "contended") {
						firsts.inc()
					}
				}()
			}
			wg.Wait()

			Convey("Then exactly one should win the first record", func() {
				So(firsts.load(), ShouldEqual, 1)
				So(d.Size(), ShouldEqual, 1)
			})
		})
	})
}

type atomic32 struct {
	mu sync.Mutex
	n  int
}

func (a *atomic32) inc() {
	a.mu.Lock()
	a.n++
	a.mu.Unlock()
}

func (a *atomic32) load() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.n
}
