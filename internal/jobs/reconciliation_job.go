package jobs

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"parcels/internal/core/application/usecases/commands"
	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/ledger"
)

// ReconciliationJob periodically scans recent write-off postings and flags
// those above the configured threshold for manual review. The job only
// flags; resolution stays with an administrator.
type ReconciliationJob struct {
	db        *gorm.DB
	handler   commands.FlagTransactionCommandHandler
	threshold kernel.Money
	batchSize int
	schedule  string
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewReconciliationJob creates the write-off reconciliation job.
func NewReconciliationJob(
	db *gorm.DB,
	handler commands.FlagTransactionCommandHandler,
	threshold kernel.Money,
	batchSize int,
	schedule string,
	logger *slog.Logger,
) *ReconciliationJob {
	return &ReconciliationJob{
		db:        db,
		handler:   handler,
		threshold: threshold,
		batchSize: batchSize,
		schedule:  schedule,
		cron:      cron.New(),
		logger:    logger.With("component", "reconciliation_job"),
	}
}

// Start schedules the reconciliation run.
func (j *ReconciliationJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, j.run)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Reconciliation job started",
		"schedule", j.schedule, "threshold", j.threshold.String())
	return nil
}

// Stop stops the reconciliation job.
func (j *ReconciliationJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Reconciliation job stopped")
}

func (j *ReconciliationJob) run() {
	ctx := context.Background()

	oversized, err := j.findOversizedWriteOffs(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Reconciliation scan failed", "error", err)
		return
	}

	for _, candidate := range oversized {
		cmd, cmdErr := commands.NewFlagTransactionCommand(
			candidate.id, "write-off of "+candidate.amount.String()+" exceeds reconciliation threshold "+j.threshold.String())
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Failed to build flag command", "transaction", candidate.id, "error", cmdErr)
			continue
		}

		if flagErr := j.handler.Handle(ctx, cmd); flagErr != nil {
			// Another scan or an operator may have flagged it in between.
			if errors.Is(flagErr, ledger.ErrTransactionAlreadyFlagged) {
				continue
			}
			j.logger.ErrorContext(ctx, "Failed to flag transaction", "transaction", candidate.id, "error", flagErr)
			continue
		}

		j.logger.InfoContext(ctx, "Write-off flagged for review",
			"transaction", candidate.id, "amount", candidate.amount.String())
	}
}

type writeOffCandidate struct {
	id     kernel.UUID
	amount kernel.Money
}

// findOversizedWriteOffs lists unflagged write-off postings above the
// threshold, oldest first, capped at the batch size.
func (j *ReconciliationJob) findOversizedWriteOffs(ctx context.Context) ([]writeOffCandidate, error) {
	rows, err := j.db.WithContext(ctx).Raw(`
		SELECT id, amount
		FROM customer_transactions
		WHERE type = ?
		  AND flagged_for_review = false
		  AND amount > ?
		ORDER BY created_at
		LIMIT ?
	`, string(ledger.TypeWriteOff), j.threshold.Decimal(), j.batchSize).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	candidates := make([]writeOffCandidate, 0)
	for rows.Next() {
		var id uuid.UUID
		var amount decimal.Decimal
		if err = rows.Scan(&id, &amount); err != nil {
			return nil, err
		}

		candidateID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		candidates = append(candidates, writeOffCandidate{
			id:     candidateID,
			amount: kernel.MoneyFromDecimal(amount),
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return candidates, nil
}
