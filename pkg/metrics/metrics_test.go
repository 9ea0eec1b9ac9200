package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestManagerCreation(t *testing.T) {
	Convey("Given manager creation", t, func() {
		Convey("When creating with a fresh registry", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
				So(manager.registry, ShouldEqual, registry)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test-namespace"),
				WithSubsystem("test-subsystem"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then the options should be applied", func() {
				So(manager, ShouldNotBeNil)
				So(manager.namespace, ShouldEqual, "test-namespace")
				So(manager.subsystem, ShouldEqual, "test-subsystem")
			})
		})

		Convey("When options carry zero values", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace(""),
				WithSubsystem(""),
				WithHistogramBuckets(nil),
				WithPrometheusRegistry(registry),
			)

			Convey("Then defaults are kept", func() {
				So(manager.namespace, ShouldEqual, "rumble")
				So(manager.subsystem, ShouldEqual, "pickem")
			})
		})
	})
}

func TestRecordingHelpers(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("Then the recording helpers should not panic", func() {
			So(func() {
				RecordPickAccepted()
				RecordPickRejected()
				RecordPickLocked()
				RecordRecalcDuplicate()
				RecordScoreComputed()
				RecordScoringError()
				RecordScoringLatency(1.5)
			}, ShouldNotPanic)
		})

		Convey("Then the gauge helpers should not panic", func() {
			So(func() {
				UpdateTrackedEvents(1)
				UpdateTrackedPicks(2)
				UpdateTrackedScores(3)
				UpdateQueueSize(4)
				UpdateQueueCapacity(100)
				UpdateQueueUtilization(0.04)
				UpdateWorkerCount(8)
			}, ShouldNotPanic)
		})

		Convey("Then the queue and worker helpers should not panic", func() {
			So(func() {
				RecordQueueEnqueue()
				RecordQueueDequeue()
				RecordQueueEnqueueError()
				RecordWorkerProcessingLatency(2.5)
				RecordWorkerError()
			}, ShouldNotPanic)
		})

		Convey("Then HTTP helpers should record labeled series", func() {
			So(func() {
				RecordHTTPRequest("picks", "PUT", "200")
				RecordHTTPRequestDuration("picks", "PUT", "200", 12.0)
			}, ShouldNotPanic)
		})
	})
}

func TestGetRegistry(t *testing.T) {
	Convey("Given the global registry", t, func() {
		registry := GetRegistry()

		Convey("Then it should gather the service's metric families", func() {
			So(registry, ShouldNotBeNil)

			RecordPickAccepted()
			families, err := registry.Gather()
			So(err, ShouldBeNil)

			found := false
			for _, f := range families {
				if f.GetName() == "rumble_pickem_picks_accepted_total" {
					found = true
				}
			}
			So(found, ShouldBeTrue)
		})
	})
}
