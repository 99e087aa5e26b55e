package jobs

import (
	"fmt"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	reconciliationJob *ReconciliationJob
	auditRetentionJob *AuditRetentionJob
}

// NewJobManager creates a new job manager over the prepared jobs.
func NewJobManager(
	reconciliationJob *ReconciliationJob,
	auditRetentionJob *AuditRetentionJob,
) *JobManager {
	return &JobManager{
		reconciliationJob: reconciliationJob,
		auditRetentionJob: auditRetentionJob,
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.reconciliationJob.Start(); err != nil {
		return fmt.Errorf("failed to start reconciliation job: %w", err)
	}

	if err := jm.auditRetentionJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.reconciliationJob.Stop()
		return fmt.Errorf("failed to start audit retention job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.auditRetentionJob.Stop()
	jm.reconciliationJob.Stop()
}
