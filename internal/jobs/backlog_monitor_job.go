package jobs

import (
	"context"
	"log/slog"

	"dispatch/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// BacklogMonitorJob periodically reports how many orders sit in each status.
// A pending count that keeps climbing means receivers are not keeping up.
type BacklogMonitorJob struct {
	handler queries.GetBacklogQueryHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewBacklogMonitorJob creates a job that logs backlog counters once a minute.
func NewBacklogMonitorJob(handler queries.GetBacklogQueryHandler, logger *slog.Logger) *BacklogMonitorJob {
	return &BacklogMonitorJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "backlog_monitor_job"),
	}
}

// Start begins the backlog monitor job.
func (j *BacklogMonitorJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		ctx := context.Background()

		backlog, err := j.handler.Handle(ctx, queries.NewGetBacklogQuery())
		if err != nil {
			j.logger.ErrorContext(ctx, "Backlog monitor job failed", "error", err)
			return
		}

		j.logger.InfoContext(ctx, "Order backlog",
			"pending", backlog.Pending,
			"delivering", backlog.Delivering,
			"completed", backlog.Completed,
		)
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Backlog monitor job started (running every minute)")
	return nil
}

// Stop stops the backlog monitor job.
func (j *BacklogMonitorJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Backlog monitor job stopped")
}
