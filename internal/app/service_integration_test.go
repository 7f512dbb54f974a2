package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	service "econlab/internal/app"
	"econlab/internal/adapters/repository"
	"econlab/internal/domain/econ"
	"econlab/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func waitForRecord(ctx context.Context, svc *service.Service, jobID string) (model.Record, error) {
	deadline := time.After(5 * time.Second)
	for {
		rec, err := svc.Job(ctx, jobID)
		if err == nil && rec.Status != model.StatusPending {
			return rec, nil
		}
		select {
		case <-deadline:
			return model.Record{}, fmt.Errorf("job %s not finished in time", jobID)
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestServiceIntegration(t *testing.T) {
	Convey("Given a service with full integration", t, func() {
		svc := service.New(
			service.WithWorkerCount(2),
			service.WithQueueSize(1000),
			service.WithDedupeSize(500),
		)
		defer svc.Stop()

		ctx := context.Background()
		So(svc.Start(ctx), ShouldBeNil)

		Convey("When a job flows through the pipeline", func() {
			jobID, dup, err := svc.SubmitJob(ctx, "req-flow", econ.Monopoly,
				econ.Params{"a": 100, "b": 1, "c": 10})
			So(err, ShouldBeNil)
			So(dup, ShouldBeFalse)

			Convey("Then the job should be visible the moment it is accepted", func() {
				rec, err := svc.Job(ctx, jobID)
				So(err, ShouldBeNil)
				So(rec.JobID, ShouldEqual, jobID)
				So(rec.Status, ShouldBeIn, model.StatusPending, model.StatusDone)
			})

			Convey("Then the finished record should land in history", func() {
				rec, err := waitForRecord(ctx, svc, jobID)
				So(err, ShouldBeNil)
				So(rec.Status, ShouldEqual, model.StatusDone)
				So(rec.Outputs["Qm"], ShouldAlmostEqual, 45)
				So(rec.Outputs["Pm"], ShouldAlmostEqual, 55)
			})
		})

		Convey("When an infeasible job flows through the pipeline", func() {
			jobID, _, err := svc.SubmitJob(ctx, "req-infeasible", econ.Monopoly,
				econ.Params{"a": 10, "b": 1, "c": 50})
			So(err, ShouldBeNil)

			Convey("Then the record should carry the infeasible status", func() {
				rec, err := waitForRecord(ctx, svc, jobID)
				So(err, ShouldBeNil)
				So(rec.Status, ShouldEqual, model.StatusInfeasible)
				So(rec.Reason, ShouldNotBeEmpty)
			})
		})

		Convey("When several jobs finish", func() {
			ids := make([]string, 0, 5)
			for i := 0; i < 5; i++ {
				jobID, _, err := svc.SubmitJob(ctx, fmt.Sprintf("req-batch-%d", i),
					econ.CobbDouglas,
					econ.Params{"alpha": 1, "beta": 1, "i": 100, "p_x": 2, "p_y": 4})
				So(err, ShouldBeNil)
				ids = append(ids, jobID)
			}
			for _, id := range ids {
				_, err := waitForRecord(ctx, svc, id)
				So(err, ShouldBeNil)
			}

			Convey("Then history should serve the recent records", func() {
				recs, err := svc.Recent(ctx, 3)
				So(err, ShouldBeNil)
				So(len(recs), ShouldEqual, 3)
			})

			Convey("And stats should reflect the pipeline", func() {
				stats := svc.GetStats()
				So(stats["started"], ShouldBeTrue)
				So(stats["historyCount"], ShouldBeGreaterThanOrEqualTo, 5)
			})
		})

		Convey("When asking for an unknown job", func() {
			_, err := svc.Job(ctx, "no-such-job")

			Convey("Then it should report not found", func() {
				So(err, ShouldWrap, repository.ErrNotFound)
			})
		})
	})
}

func TestServiceIntegration_SQLiteHistory(t *testing.T) {
	Convey("Given a service backed by sqlite history", t, func() {
		svc := service.New(
			service.WithWorkerCount(2),
			service.WithHistoryBackend("sqlite", ":memory:"),
		)
		defer svc.Stop()

		ctx := context.Background()
		So(svc.Start(ctx), ShouldBeNil)

		Convey("When a job finishes", func() {
			jobID, _, err := svc.SubmitJob(ctx, "req-sqlite", econ.DemandSupply,
				econ.Params{"a": 100, "b": 2, "c": -20, "d": 3})
			So(err, ShouldBeNil)

			Convey("Then the record should round-trip through sqlite", func() {
				rec, err := waitForRecord(ctx, svc, jobID)
				So(err, ShouldBeNil)
				So(rec.Status, ShouldEqual, model.StatusDone)
				So(rec.Outputs["P"], ShouldAlmostEqual, 24)
			})
		})
	})
}
