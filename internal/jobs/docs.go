// Package jobs provides the scheduled background tasks of the fulfillment
// service, built on github.com/robfig/cron/v3.
//
// DispatchRecoveryJob runs every 30 seconds and re-triggers the courier
// workflow for orders that are ready for pickup but still unassigned, so a
// process restart or an exhausted retry loop never strands an order.
//
// Jobs are managed through JobManager:
//
//	jobManager := jobs.NewJobManager(uowFactory, requestDispatchHandler, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
package jobs
