// Package jobs provides scheduled background tasks for the dispatch
// service, implemented with github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. PaymentTimeoutJob - Runs every minute and cancels deliveries that
// stayed in payment_pending longer than the configured TTL.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(db, cancelHandler, paymentTTL, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// The sweeper ignores invalid-transition errors: a delivery paid for
// between the stale select and the cancel attempt is an expected race.
// Everything else is logged and the sweep continues with the next row.
package jobs
