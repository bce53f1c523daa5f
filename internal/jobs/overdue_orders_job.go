package jobs

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// OverdueOrdersFinder is satisfied by queries.GetOverdueOrdersQueryHandler.
type OverdueOrdersFinder interface {
	Handle(ctx context.Context, query queries.GetOverdueOrdersQuery) ([]queries.GetOverdueOrdersQueryResponse, error)
}

// OverdueOrdersJob reports open orders whose estimated delivery time has passed.
type OverdueOrdersJob struct {
	finder   OverdueOrdersFinder
	schedule string
	now      func() time.Time
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewOverdueOrdersJob creates the job. schedule is a six-field cron expression
// (seconds first), e.g. "0 */5 * * * *".
func NewOverdueOrdersJob(finder OverdueOrdersFinder, schedule string, logger *slog.Logger) *OverdueOrdersJob {
	return &OverdueOrdersJob{
		finder:   finder,
		schedule: schedule,
		now:      time.Now,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "overdue_orders_job"),
	}
}

// Start schedules the job. It fails on a malformed schedule.
func (j *OverdueOrdersJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		_, _ = j.Run(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Overdue orders job started", "schedule", j.schedule)
	return nil
}

// Run checks once and logs a warning per overdue order. It returns how many were found.
func (j *OverdueOrdersJob) Run(ctx context.Context) (int, error) {
	overdue, err := j.finder.Handle(ctx, queries.NewGetOverdueOrdersQuery(j.now()))
	if err != nil {
		j.logger.ErrorContext(ctx, "Overdue orders job failed", "error", err)
		return 0, err
	}

	for _, o := range overdue {
		attrs := []any{
			"order_id", o.ID.Int64(),
			"user_id", o.UserID.Int64(),
			"status", o.Status.String(),
			"estimated_delivery_time", o.EstimatedDeliveryTime,
		}
		if o.DriverID != nil {
			attrs = append(attrs, "driver_id", o.DriverID.Int64())
		}
		j.logger.WarnContext(ctx, "Order is past its estimated delivery time", attrs...)
	}

	return len(overdue), nil
}

// Stop stops scheduling and waits for a running check to finish.
func (j *OverdueOrdersJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Overdue orders job stopped")
}
