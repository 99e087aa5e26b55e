// Package jobs provides scheduled background tasks for the parcel lifecycle
// service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic housekeeping operations.
//
// # Available Jobs
//
// 1. ReconciliationJob - Scans recent write-off postings and flags amounts
// above the configured threshold for manual review
// 2. AuditRetentionJob - Purges parcel status-history rows older than the
// configured retention window
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(reconciliationJob, auditRetentionJob)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Both jobs take standard five-field cron expressions from configuration,
// e.g. "0 * * * *" for hourly reconciliation and "30 3 * * *" for the
// nightly retention purge.
//
// # Error Handling
//
// - Reconciliation ignores postings already flagged by an earlier scan
// - Retention logs purge failures and retries on the next tick
// - Failed job starts will stop any already running jobs
package jobs
