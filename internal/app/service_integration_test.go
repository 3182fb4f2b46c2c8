package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	service "github.com/okian/introeval/internal/app"
	"github.com/okian/introeval/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestServiceIntegration(t *testing.T) {
	Convey("Given a service with the VADER analyzer", t, func() {
		svc := service.New(service.WithBatchWorkers(4))
		defer svc.Stop()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		So(svc.Start(ctx), ShouldBeNil)

		Convey("When evaluating a large batch end-to-end", func() {
			items := make([]model.BatchItem, 40)
			for i := range items {
				items[i] = model.BatchItem{
					ID:          fmt.Sprintf("item-%02d", i),
					Transcript:  intro,
					DurationSec: 20 + i,
				}
			}
			results, err := svc.EvaluateBatch(ctx, items)

			Convey("Then every report should match a single evaluation", func() {
				So(err, ShouldBeNil)
				So(results, ShouldHaveLength, len(items))
				for i, r := range results {
					So(r.ID, ShouldEqual, items[i].ID)
					So(r.Error, ShouldBeEmpty)
					single, err := svc.Evaluate(ctx, items[i].Transcript, items[i].DurationSec)
					So(err, ShouldBeNil)
					So(r.Report, ShouldResemble, single)
				}
			})
		})
	})
}
