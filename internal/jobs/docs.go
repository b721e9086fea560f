// Package jobs provides scheduled background tasks for the dispatch system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the dispatch service.
//
// # Available Jobs
//
// 1. BacklogMonitorJob - Periodically reports the per-status order backlog so
// operators can spot a growing pending queue without querying the database.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(getBacklogHandler, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The backlog monitor uses the cron expression "0 * * * * *" which means it
// runs once a minute. The counters are cheap aggregate queries, so the
// schedule trades freshness against log volume rather than database load.
package jobs
