// Package jobs provides scheduled background tasks for the fulfillment service.
//
// Jobs are cron-based (github.com/robfig/cron/v3, with a seconds field) and
// read or change state only through application use cases.
//
// # Available Jobs
//
// 1. IntegrityScanJob - looks for orders whose line quantities no longer
// balance and raises a data-integrity alarm for each. OVERSHIPPED orders get
// their own alarm message.
//
// # Usage
//
//	scan := jobs.NewIntegrityScanJob(findIntegrityIssuesHandler, cfg.IntegrityScanSchedule, m, logger)
//	jobManager := jobs.NewJobManager(scan)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The scan runs every five minutes unless INTEGRITY_SCAN_SCHEDULE overrides
// it. Each run is bounded by a one-minute timeout.
//
// # Error Handling
//
// - Scan failures are logged and counted in fulfillment_integrity_scans_total
// - The number of broken orders found by the last scan is exported as a gauge
// - A failed job start leaves nothing running
package jobs
