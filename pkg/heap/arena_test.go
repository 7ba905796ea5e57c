//go:build go1.22

package heap_test

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/go-heap/heapalloc/pkg/heap"
)

func TestArenaGrowth(t *testing.T) {
	Convey("Given a fresh Arena over a small Break", t, func() {
		a := heap.NewArena(heap.NewBreak(128))

		Convey("When it has never grown", func() {
			So(a.Size(), ShouldEqual, 0)
			So(a.Initial(), ShouldEqual, heap.Addr(0))
		})

		Convey("When it grows by n bytes", func() {
			at, err := a.Grow(32)
			So(err, ShouldBeNil)
			So(at, ShouldEqual, a.Initial())
			So(a.Size(), ShouldEqual, 32)

			Convey("Then growing again extends the break contiguously", func() {
				at2, err := a.Grow(16)
				So(err, ShouldBeNil)
				So(at2, ShouldEqual, at.Add(32))
				So(a.Size(), ShouldEqual, 48)
			})
		})

		Convey("When a growth would exceed capacity", func() {
			_, err := a.Grow(1000)
			So(errors.Is(err, heap.ErrOutOfMemory), ShouldBeTrue)
			So(a.Size(), ShouldEqual, 0)
		})

		Convey("When reset after growing", func() {
			_, _ = a.Grow(32)
			a.Reset()

			So(a.Size(), ShouldEqual, 0)

			Convey("Then it can grow again from the same initial address", func() {
				at, err := a.Grow(8)
				So(err, ShouldBeNil)
				So(at, ShouldEqual, a.Initial())
			})
		})
	})
}
