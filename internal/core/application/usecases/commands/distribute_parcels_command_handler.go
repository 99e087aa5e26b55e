package commands

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"parcels/internal/core/domain/events"
	"parcels/internal/core/domain/model/distribution"
	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/ledger"
	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/core/domain/services"
	"parcels/internal/core/ports"
	"parcels/internal/pkg/errs"
)

// maxReceiptAttempts bounds how often a colliding receipt number is
// regenerated before the failure surfaces to the caller.
const maxReceiptAttempts = 3

// DistributeParcelsCommandHandler performs the settlement and hand-over of
// ready parcels. The whole flow runs inside one unit of work: ownership and
// readiness validation, payment allocation across cash and stored credit,
// ledger postings with the running balance chain, Delivered transitions,
// consolidation status sync, and the receipt itself either all commit or none
// do.
//
// A receipt-number collision rolls everything back and the flow is re-run
// with a fresh number, up to maxReceiptAttempts times.
type DistributeParcelsCommandHandler struct {
	uowFactory   DistributionUoWFactory
	lockChecker  ports.ManifestLockChecker
	consolidator services.Consolidator
	publisher    ports.EventPublisher
}

// NewDistributeParcelsCommandHandler creates a handler for distribution
// operations.
func NewDistributeParcelsCommandHandler(
	uowFactory DistributionUoWFactory,
	lockChecker ports.ManifestLockChecker,
	publisher ports.EventPublisher,
) DistributeParcelsCommandHandler {
	return DistributeParcelsCommandHandler{
		uowFactory:   uowFactory,
		lockChecker:  lockChecker,
		consolidator: services.NewConsolidator(),
		publisher:    publisher,
	}
}

// Handle processes the distribution command.
//
// Parcels on a locked manifest veto the whole hand-over with
// ports.ErrManifestLocked before any state is touched. Validation failures
// surface as distribution.ErrOwnershipMismatch or
// distribution.ErrParcelNotReady. distribution.ErrDuplicateReceiptNumber is
// returned only after every internal retry collided.
func (h DistributeParcelsCommandHandler) Handle(ctx context.Context, command DistributeParcelsCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	for _, parcelID := range command.ParcelIDs() {
		locked, err := h.lockChecker.IsLocked(ctx, parcelID)
		if err != nil {
			return err
		}
		if locked {
			return ports.ErrManifestLocked
		}
	}

	var err error
	for attempt := 0; attempt < maxReceiptAttempts; attempt++ {
		receiptNumber := distribution.NewReceiptNumber(time.Now().UTC(), rand.IntN(1000))

		err = h.distribute(ctx, command, receiptNumber)
		if !errors.Is(err, distribution.ErrDuplicateReceiptNumber) {
			return err
		}
	}
	return err
}

// distribute runs one settlement attempt under the given receipt number.
func (h DistributeParcelsCommandHandler) distribute(
	ctx context.Context,
	command DistributeParcelsCommand,
	receiptNumber string,
) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	parcelRepo := uow.ParcelRepository()
	consolidationRepo := uow.ConsolidationRepository()
	ledgerRepo := uow.LedgerRepository()
	distributionRepo := uow.DistributionRepository()
	auditRepo := uow.AuditRepository()

	parcels, err := parcelRepo.GetMany(ctx, command.ParcelIDs())
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	settlement, err := distribution.NewPackageDistribution(
		kernel.NewUUID(),
		receiptNumber,
		command.CustomerID(),
		command.Operator(),
		parcels,
		command.AmountCollected(),
		now,
	)
	if err != nil {
		return err
	}

	account, accountIsNew, err := h.loadOrCreateAccount(ctx, ledgerRepo, command.CustomerID())
	if err != nil {
		return err
	}

	postings, err := h.settle(settlement, account, command)
	if err != nil {
		return err
	}

	statusChanges, err := h.handOver(ctx, parcelRepo, auditRepo, parcels, command.Operator(), receiptNumber, now)
	if err != nil {
		return err
	}

	if err = h.syncConsolidations(ctx, parcelRepo, consolidationRepo, auditRepo, parcels, command.Operator()); err != nil {
		return err
	}

	if err = distributionRepo.Add(ctx, settlement); err != nil {
		return err
	}

	if accountIsNew {
		err = ledgerRepo.AddAccount(ctx, account)
	} else {
		err = ledgerRepo.UpdateAccount(ctx, account)
	}
	if err != nil {
		return err
	}

	for _, posting := range postings {
		if err = ledgerRepo.AddTransaction(ctx, posting); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	published := make([]events.DomainEvent, 0, len(statusChanges)+1)
	published = append(published, events.DistributionCompleted{
		DistributionID: settlement.ID(),
		ReceiptNumber:  settlement.ReceiptNumber(),
		CustomerID:     settlement.CustomerID(),
	})
	for _, change := range statusChanges {
		published = append(published, events.PackageStatusChanged{
			ParcelID:  change.ParcelID,
			OldStatus: change.OldStatus,
			NewStatus: change.NewStatus,
			Actor:     change.Actor,
		})
	}
	h.publisher.Publish(ctx, published...)

	return nil
}

// loadOrCreateAccount fetches the customer's account, creating an empty one
// for first-time customers.
func (h DistributeParcelsCommandHandler) loadOrCreateAccount(
	ctx context.Context,
	ledgerRepo ports.LedgerRepository,
	customerID kernel.UUID,
) (*ledger.CustomerAccount, bool, error) {
	account, err := ledgerRepo.GetAccount(ctx, customerID)
	if err == nil {
		return account, false, nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, false, err
	}

	account, err = ledger.NewCustomerAccount(customerID)
	if err != nil {
		return nil, false, err
	}
	return account, true, nil
}

// settle posts the distribution charge, the cash payment, the optional credit
// debit, and the optional write-off against the customer's account and
// records the applied amounts on the settlement. Postings share the
// settlement's identifier as reference so the ledger reads back to the
// receipt.
func (h DistributeParcelsCommandHandler) settle(
	settlement *distribution.PackageDistribution,
	account *ledger.CustomerAccount,
	command DistributeParcelsCommand,
) ([]*ledger.CustomerTransaction, error) {
	referenceID := settlement.ID()
	postings := make([]*ledger.CustomerTransaction, 0, 4)

	charge, err := account.PostToAccount(
		ledger.TypeDistribution,
		settlement.TotalAmount().Neg(),
		&referenceID,
		fmt.Sprintf("distribution %s", settlement.ReceiptNumber()),
	)
	if err != nil {
		return nil, err
	}
	postings = append(postings, charge)

	if command.AmountCollected().IsPositive() {
		payment, err := account.PostToAccount(
			ledger.TypePayment,
			command.AmountCollected(),
			&referenceID,
			fmt.Sprintf("payment for %s", settlement.ReceiptNumber()),
		)
		if err != nil {
			return nil, err
		}
		postings = append(postings, payment)
	}

	if command.UseCreditBalance() {
		outstandingAfterCash := settlement.TotalAmount().Sub(command.AmountCollected())
		creditToApply := distribution.AllocateCredit(outstandingAfterCash, account.CreditBalance())
		if creditToApply.IsPositive() {
			creditDebit, err := account.UseCredit(
				creditToApply,
				&referenceID,
				fmt.Sprintf("credit applied to %s", settlement.ReceiptNumber()),
			)
			if err != nil {
				return nil, err
			}
			postings = append(postings, creditDebit)

			if err = settlement.ApplyCredit(creditToApply); err != nil {
				return nil, err
			}
		}
	}

	if command.WriteOffAmount().IsPositive() {
		if err = settlement.ApplyWriteOff(command.WriteOffAmount(), command.WriteOffReason()); err != nil {
			return nil, err
		}

		writeOff, err := account.PostToAccount(
			ledger.TypeWriteOff,
			command.WriteOffAmount(),
			&referenceID,
			fmt.Sprintf("write-off on %s: %s", settlement.ReceiptNumber(), command.WriteOffReason()),
		)
		if err != nil {
			return nil, err
		}
		postings = append(postings, writeOff)
	}

	return postings, nil
}

// handOver moves every parcel to Delivered through the designed bypass and
// stamps the distribution time. The Delivered grant is legitimate here: the
// customer physically received the parcels.
func (h DistributeParcelsCommandHandler) handOver(
	ctx context.Context,
	parcelRepo ports.ParcelRepository,
	auditRepo ports.AuditRepository,
	parcels []*parcel.Parcel,
	operator, receiptNumber string,
	at time.Time,
) ([]*parcel.StatusChange, error) {
	reason := fmt.Sprintf("distributed on receipt %s", receiptNumber)
	changes := make([]*parcel.StatusChange, 0, len(parcels))

	for _, p := range parcels {
		change, err := p.ForceSetStatus(parcel.Delivered, operator, reason, true)
		if err != nil {
			return nil, err
		}
		if err = p.MarkDistributed(at); err != nil {
			return nil, err
		}

		if err = parcelRepo.Update(ctx, p); err != nil {
			return nil, err
		}
		if change != nil {
			if err = auditRepo.AppendStatusChange(ctx, change); err != nil {
				return nil, err
			}
			changes = append(changes, change)
		}
	}

	return changes, nil
}

// syncConsolidations re-derives the aggregate status of every consolidation
// touched by the hand-over. When all members of a group were distributed the
// group follows them to Delivered.
func (h DistributeParcelsCommandHandler) syncConsolidations(
	ctx context.Context,
	parcelRepo ports.ParcelRepository,
	consolidationRepo ports.ConsolidationRepository,
	auditRepo ports.AuditRepository,
	parcels []*parcel.Parcel,
	operator string,
) error {
	seen := make(map[kernel.UUID]bool)
	for _, p := range parcels {
		consolidationID := p.ConsolidationID()
		if consolidationID == nil || seen[*consolidationID] {
			continue
		}
		seen[*consolidationID] = true

		aggregate, err := consolidationRepo.Get(ctx, *consolidationID)
		if err != nil {
			return err
		}

		members, err := parcelRepo.GetByConsolidationID(ctx, *consolidationID)
		if err != nil {
			return err
		}

		history, err := h.consolidator.SyncStatusFromMembers(aggregate, members, operator)
		if err != nil {
			return err
		}
		if history == nil {
			continue
		}

		if err = consolidationRepo.Update(ctx, aggregate); err != nil {
			return err
		}
		if err = auditRepo.AppendConsolidationHistory(ctx, history); err != nil {
			return err
		}
	}

	return nil
}
