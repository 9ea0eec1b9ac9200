package lock_test

import (
	"testing"
	"time"

	lock "github.com/okian/rumble/internal/domain/lock"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLocked(t *testing.T) {
	Convey("Given an event start time", t, func() {
		start := time.Date(2026, 1, 31, 23, 0, 0, 0, time.UTC)

		Convey("When now is before the start", func() {
			So(lock.Locked(&start, start.Add(-time.Minute)), ShouldBeFalse)
		})

		Convey("When now equals the start exactly", func() {
			So(lock.Locked(&start, start), ShouldBeTrue)
		})

		Convey("When now is after the start", func() {
			So(lock.Locked(&start, start.Add(time.Second)), ShouldBeTrue)
		})
	})

	Convey("Given an unscheduled event", t, func() {
		Convey("Then it never locks", func() {
			So(lock.Locked(nil, time.Now()), ShouldBeFalse)
			So(lock.Locked(nil, time.Unix(1<<40, 0)), ShouldBeFalse)
		})
	})
}
