package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"parcels/internal/core/ports"
)

// AuditRetentionJob purges parcel status-history rows older than the
// configured retention window. Consolidation history and ledger postings are
// kept indefinitely; only the high-volume status trail is aged out.
type AuditRetentionJob struct {
	auditRepo     ports.AuditRepository
	retentionDays int
	schedule      string
	cron          *cron.Cron
	logger        *slog.Logger
}

// NewAuditRetentionJob creates the status-history retention job.
func NewAuditRetentionJob(
	auditRepo ports.AuditRepository,
	retentionDays int,
	schedule string,
	logger *slog.Logger,
) *AuditRetentionJob {
	return &AuditRetentionJob{
		auditRepo:     auditRepo,
		retentionDays: retentionDays,
		schedule:      schedule,
		cron:          cron.New(),
		logger:        logger.With("component", "audit_retention_job"),
	}
}

// Start schedules the retention run.
func (j *AuditRetentionJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, j.run)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Audit retention job started",
		"schedule", j.schedule, "retention_days", j.retentionDays)
	return nil
}

// Stop stops the retention job.
func (j *AuditRetentionJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Audit retention job stopped")
}

func (j *AuditRetentionJob) run() {
	ctx := context.Background()
	cutoff := time.Now().UTC().AddDate(0, 0, -j.retentionDays)

	purged, err := j.auditRepo.PurgeStatusChangesBefore(ctx, cutoff)
	if err != nil {
		j.logger.ErrorContext(ctx, "Audit retention purge failed", "error", err)
		return
	}

	if purged > 0 {
		j.logger.InfoContext(ctx, "Status history purged", "rows", purged, "cutoff", cutoff)
	}
}
