package metrics_test

import (
	"testing"

	"econlab/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestManager(t *testing.T) {
	Convey("Given a manager on a private registry", t, func() {
		reg := prometheus.NewRegistry()
		m := metrics.NewManager(
			metrics.WithRegistry(reg),
			metrics.WithNamespace("econlab_test"),
			metrics.WithSubsystem("evaluator"),
		)

		Convey("Then construction should register collectors without panicking", func() {
			So(m, ShouldNotBeNil)
			families, err := reg.Gather()
			So(err, ShouldBeNil)
			So(len(families), ShouldBeGreaterThan, 0)
		})
	})
}

func TestGlobalHelpers(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		Convey("When recording through the package-level helpers", func() {
			So(func() {
				metrics.RecordEvaluation("monopoly", "ok")
				metrics.RecordEvaluation("monopoly", "infeasible")
				metrics.RecordInfeasible("monopoly")
				metrics.RecordEvaluationLatency(0.2)
				metrics.RecordJobAccepted()
				metrics.RecordJobDuplicate()
				metrics.RecordHTTPRequest("evaluate", "POST", "200")
				metrics.RecordHTTPRequestDuration("evaluate", "POST", "200", 1.5)
				metrics.UpdateQueueSize(3)
				metrics.UpdateQueueCapacity(100)
				metrics.UpdateQueueUtilization(0.03)
				metrics.RecordQueueEnqueue()
				metrics.RecordQueueDequeue()
				metrics.RecordQueueEnqueueError()
				metrics.UpdateWorkerCount(4)
				metrics.RecordWorkerProcessingLatency(2.0)
				metrics.RecordWorkerError()
				metrics.UpdateHistorySize(10)
				metrics.RecordErrorByComponent("queue", "closed")
				metrics.RecordErrorByEndpoint("evaluate", "POST", "client_error")
				metrics.UpdateSystemMemoryUsage(1024)
				metrics.UpdateSystemGoroutineCount(8)
				metrics.RecordSystemGCPauseTime(0.5)
			}, ShouldNotPanic)
		})

		Convey("Then the custom registry should expose the recorded families", func() {
			families, err := metrics.GetRegistry().Gather()
			So(err, ShouldBeNil)
			So(len(families), ShouldBeGreaterThan, 0)
		})
	})
}
