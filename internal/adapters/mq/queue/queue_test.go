package queue_test

import (
	"context"
	"testing"
	"time"

	queue "github.com/okian/rumble/internal/adapters/mq/queue"
	. "github.com/smartystreets/goconvey/convey"
)

func TestInMemoryQueue(t *testing.T) {
	Convey("Given a queue with capacity two", t, func() {
		q := queue.NewInMemoryQueue(queue.WithCapacity(2))
		ctx := context.Background()

		Convey("When jobs fit within capacity", func() {
			So(q.Enqueue(ctx, queue.Job{EventID: "evt", ParticipantID: "u1"}), ShouldBeTrue)
			So(q.Enqueue(ctx, queue.Job{EventID: "evt", ParticipantID: "u2"}), ShouldBeTrue)
			So(q.Len(ctx), ShouldEqual, 2)

			Convey("Then an enqueue past capacity is refused without blocking", func() {
				So(q.Enqueue(ctx, queue.Job{EventID: "evt", ParticipantID: "u3"}), ShouldBeFalse)
			})

			Convey("And dequeue delivers jobs in order", func() {
				jobs := q.Dequeue(ctx)
				first := <-jobs
				So(first.ParticipantID, ShouldEqual, "u1")
				second := <-jobs
				So(second.ParticipantID, ShouldEqual, "u2")
			})
		})

		Convey("When the queue is closed", func() {
			So(q.Enqueue(ctx, queue.Job{EventID: "evt", ParticipantID: "u1"}), ShouldBeTrue)
			So(q.Close(), ShouldBeNil)

			Convey("Then further enqueues are refused", func() {
				So(q.Enqueue(ctx, queue.Job{EventID: "evt", ParticipantID: "u2"}), ShouldBeFalse)
			})

			Convey("And consumers drain what remains before the channel closes", func() {
				jobs := q.Dequeue(ctx)
				j, ok := <-jobs
				So(ok, ShouldBeTrue)
				So(j.ParticipantID, ShouldEqual, "u1")

				_, ok = <-jobs
				So(ok, ShouldBeFalse)
			})

			Convey("And closing again is a no-op", func() {
				So(q.Close(), ShouldBeNil)
			})
		})

		Convey("When a consumer is canceled while holding an undelivered job", func() {
			So(q.Enqueue(ctx, queue.Job{EventID: "evt", ParticipantID: "u1"}), ShouldBeTrue)
			So(q.Enqueue(ctx, queue.Job{EventID: "evt", ParticipantID: "u2"}), ShouldBeTrue)

			cancelCtx, cancel := context.WithCancel(ctx)
			_ = q.Dequeue(cancelCtx) // nobody reads, so the forwarder holds the first job
			deadline := time.Now().Add(time.Second)
			for q.Len(ctx) != 1 && time.Now().Before(deadline) {
				time.Sleep(5 * time.Millisecond)
			}
			So(q.Len(ctx), ShouldEqual, 1)
			cancel()

			Convey("Then the held job is returned to the queue", func() {
				deadline := time.Now().Add(time.Second)
				for q.Len(ctx) != 2 && time.Now().Before(deadline) {
					time.Sleep(5 * time.Millisecond)
				}
				So(q.Len(ctx), ShouldEqual, 2)

				Convey("And a fresh consumer drains both jobs", func() {
					jobs := q.Dequeue(ctx)
					seen := map[string]bool{
						(<-jobs).ParticipantID: true,
						(<-jobs).ParticipantID: true,
					}
					So(seen, ShouldResemble, map[string]bool{"u1": true, "u2": true})
				})
			})
		})

		Convey("When the consumer context is canceled", func() {
			cancelCtx, cancel := context.WithCancel(ctx)
			jobs := q.Dequeue(cancelCtx)
			cancel()

			Convey("Then the delivery goroutine winds down", func() {
				So(q.Enqueue(ctx, queue.Job{EventID: "evt", ParticipantID: "u1"}), ShouldBeTrue)
				select {
				case _, ok := <-jobs:
					// Either the job squeaked through before cancel or the
					// channel closed; both are acceptable.
					_ = ok
				case <-time.After(200 * time.Millisecond):
				}
			})
		})
	})
}
