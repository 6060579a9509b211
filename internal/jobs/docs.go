// Package jobs provides scheduled background tasks for the order service.
//
// Jobs are driven by github.com/robfig/cron/v3 with second precision.
//
// # Available Jobs
//
// TimeoutReaperJob runs every second. It claims due payment timeout tasks from
// the delay queue and cancels orders that are still waiting for payment.
// Overlapping runs are skipped, so a slow pass never stacks up.
//
// # Usage
//
//	reaper := jobs.NewTimeoutReaperJob(queue, timeoutCancelHandler, 100, logger, m)
//	jobManager := jobs.NewJobManager(reaper)
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
//   - A failed claim is logged and retried on the next tick
//   - A failed cancel leaves the task leased; it is redelivered after the lease
//   - Tasks for paid, cancelled or missing orders are acknowledged without change
package jobs
