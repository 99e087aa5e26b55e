package distribution

import (
	"errors"
	"fmt"
	"time"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/pkg/errs"
	"parcels/internal/pkg/guard"
)

var (
	// ErrDistributionIsNotConstructed is returned when a PackageDistribution
	// was not created through its constructors.
	ErrDistributionIsNotConstructed = errors.New(
		"PackageDistribution must be created via NewPackageDistribution constructor")

	// ErrOwnershipMismatch is returned when a distributed parcel does not
	// belong to the distributing customer or was already distributed.
	ErrOwnershipMismatch = errors.New("parcel ownership mismatch")

	// ErrParcelNotReady is returned when a distributed parcel is not in
	// Ready status.
	ErrParcelNotReady = errors.New("parcel is not ready for distribution")

	// ErrDuplicateReceiptNumber is returned by the persistence layer when the
	// generated receipt number collides. Callers retry internally and surface
	// the error only after repeated collisions.
	ErrDuplicateReceiptNumber = errors.New("duplicate receipt number")

	// ErrNoParcels is returned when a distribution is created without parcels.
	ErrNoParcels = errors.New("distribution requires at least one parcel")

	// ErrDistributionAlreadyDisputed is returned when disputing a
	// distribution twice.
	ErrDistributionAlreadyDisputed = errors.New("distribution is already disputed")
)

// Item is a distribution line: one distributed parcel with its individual
// cost breakdown. The total cost is recomputed from the fee components when
// the line is created, never trusted from a stale stored value.
type Item struct {
	ID             kernel.UUID
	DistributionID kernel.UUID
	ParcelID       kernel.UUID
	TrackingNumber string
	Fees           parcel.Fees
	TotalCost      kernel.Money
}

// PackageDistribution is the settlement receipt issued when ready parcels are
// handed over to a customer.
//
// Invariants:
//   - total_amount equals the sum of the line items' recomputed costs
//   - payment_status is a pure function of (total, cash + credit)
//   - immutable once created, except dispute annotation and payment-status
//     correction
type PackageDistribution struct {
	id              kernel.UUID
	receiptNumber   string
	customerID      kernel.UUID
	operator        string
	distributedAt   time.Time
	totalAmount     kernel.Money
	amountCollected kernel.Money
	creditApplied   kernel.Money
	balanceApplied  kernel.Money
	writeOffAmount  kernel.Money
	writeOffReason  string
	paymentStatus   PaymentStatus
	disputed        bool
	disputeReason   string
	items           []Item

	guard guard.ConstructorGuard
}

// NewPackageDistribution creates a settlement for the given parcels.
//
// Every parcel must belong to customerID, be in Ready status, and not have
// been distributed before; violations abort before any state is derived.
// Line items and the distribution total are computed from each parcel's fee
// components.
func NewPackageDistribution(
	id kernel.UUID,
	receiptNumber string,
	customerID kernel.UUID,
	operator string,
	parcels []*parcel.Parcel,
	amountCollected kernel.Money,
	distributedAt time.Time,
) (*PackageDistribution, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := customerID.Validate(); err != nil {
		return nil, err
	}
	if receiptNumber == "" {
		return nil, errs.NewValueIsRequiredError("receipt number")
	}
	if operator == "" {
		return nil, parcel.ErrActorIsRequired
	}
	if len(parcels) == 0 {
		return nil, ErrNoParcels
	}
	if amountCollected.IsNegative() {
		return nil, errs.NewValueIsInvalidError("amount collected must not be negative")
	}

	d := &PackageDistribution{
		id:              id,
		receiptNumber:   receiptNumber,
		customerID:      customerID,
		operator:        operator,
		distributedAt:   distributedAt,
		amountCollected: amountCollected,
		items:           make([]Item, 0, len(parcels)),
		guard:           guard.NewConstructorGuard(),
	}

	total := kernel.ZeroMoney()
	for _, p := range parcels {
		if err := p.Validate(); err != nil {
			return nil, err
		}
		if !p.CustomerID().IsEqual(customerID) {
			return nil, fmt.Errorf("%w: parcel %s belongs to customer %s",
				ErrOwnershipMismatch, p.ID(), p.CustomerID())
		}
		if p.IsDistributed() {
			return nil, fmt.Errorf("%w: parcel %s was already distributed",
				ErrOwnershipMismatch, p.ID())
		}
		if p.Status() != parcel.Ready {
			return nil, fmt.Errorf("%w: parcel %s is %s",
				ErrParcelNotReady, p.ID(), p.Status())
		}

		cost := p.TotalCost()
		total = total.Add(cost)
		d.items = append(d.items, Item{
			ID:             kernel.NewUUID(),
			DistributionID: id,
			ParcelID:       p.ID(),
			TrackingNumber: p.TrackingNumber(),
			Fees:           p.Fees(),
			TotalCost:      cost,
		})
	}

	d.totalAmount = total
	d.paymentStatus = CalculatePaymentStatus(d.totalAmount, d.amountCollected, d.creditApplied)
	return d, nil
}

// RestorePackageDistribution reconstructs a settlement from persistence.
func RestorePackageDistribution(
	id kernel.UUID,
	receiptNumber string,
	customerID kernel.UUID,
	operator string,
	distributedAt time.Time,
	totalAmount, amountCollected, creditApplied, balanceApplied, writeOffAmount kernel.Money,
	writeOffReason string,
	paymentStatus PaymentStatus,
	disputed bool,
	disputeReason string,
	items []Item,
) (*PackageDistribution, error) {
	if err := errors.Join(id.Validate(), customerID.Validate(), paymentStatus.Validate()); err != nil {
		return nil, err
	}

	return &PackageDistribution{
		id:              id,
		receiptNumber:   receiptNumber,
		customerID:      customerID,
		operator:        operator,
		distributedAt:   distributedAt,
		totalAmount:     totalAmount,
		amountCollected: amountCollected,
		creditApplied:   creditApplied,
		balanceApplied:  balanceApplied,
		writeOffAmount:  writeOffAmount,
		writeOffReason:  writeOffReason,
		paymentStatus:   paymentStatus,
		disputed:        disputed,
		disputeReason:   disputeReason,
		items:           items,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the instance was properly constructed.
func (d *PackageDistribution) Validate() error {
	if d == nil {
		return ErrDistributionIsNotConstructed
	}
	return d.guard.Validate(ErrDistributionIsNotConstructed)
}

// ID returns the distribution's unique identifier.
func (d *PackageDistribution) ID() kernel.UUID { return d.id }

// ReceiptNumber returns the unique receipt number.
func (d *PackageDistribution) ReceiptNumber() string { return d.receiptNumber }

// CustomerID returns the identifier of the receiving customer.
func (d *PackageDistribution) CustomerID() kernel.UUID { return d.customerID }

// Operator returns who performed the hand-over.
func (d *PackageDistribution) Operator() string { return d.operator }

// DistributedAt returns when the hand-over happened.
func (d *PackageDistribution) DistributedAt() time.Time { return d.distributedAt }

// TotalAmount returns the sum of line-item costs.
func (d *PackageDistribution) TotalAmount() kernel.Money { return d.totalAmount }

// AmountCollected returns the cash collected at hand-over.
func (d *PackageDistribution) AmountCollected() kernel.Money { return d.amountCollected }

// CreditApplied returns the stored credit applied to the settlement.
func (d *PackageDistribution) CreditApplied() kernel.Money { return d.creditApplied }

// BalanceApplied returns the account balance applied to the settlement.
func (d *PackageDistribution) BalanceApplied() kernel.Money { return d.balanceApplied }

// WriteOffAmount returns the forgiven amount.
func (d *PackageDistribution) WriteOffAmount() kernel.Money { return d.writeOffAmount }

// WriteOffReason returns why an amount was forgiven.
func (d *PackageDistribution) WriteOffReason() string { return d.writeOffReason }

// PaymentStatus returns the paid/partial/unpaid classification.
func (d *PackageDistribution) PaymentStatus() PaymentStatus { return d.paymentStatus }

// Disputed reports whether the customer disputed the settlement.
func (d *PackageDistribution) Disputed() bool { return d.disputed }

// DisputeReason returns the dispute annotation.
func (d *PackageDistribution) DisputeReason() string { return d.disputeReason }

// Items returns the distribution lines.
func (d *PackageDistribution) Items() []Item { return d.items }

// Outstanding returns the amount still owed after all settlement sources,
// floored at zero.
func (d *PackageDistribution) Outstanding() kernel.Money {
	return ComputeOutstanding(d.totalAmount, d.amountCollected, d.creditApplied, d.balanceApplied, d.writeOffAmount)
}

// ApplyCredit records stored credit applied to the settlement and
// reclassifies the payment status.
func (d *PackageDistribution) ApplyCredit(amount kernel.Money) error {
	if err := d.Validate(); err != nil {
		return err
	}
	if amount.IsNegative() {
		return errs.NewValueIsInvalidError("credit applied must not be negative")
	}

	d.creditApplied = amount
	d.paymentStatus = CalculatePaymentStatus(d.totalAmount, d.amountCollected, d.creditApplied)
	return nil
}

// ApplyBalance records account balance applied to the settlement. The
// payment status is deliberately not recalculated: balance settlement never
// changes the paid/partial/unpaid classification.
func (d *PackageDistribution) ApplyBalance(amount kernel.Money) error {
	if err := d.Validate(); err != nil {
		return err
	}
	if amount.IsNegative() {
		return errs.NewValueIsInvalidError("balance applied must not be negative")
	}

	d.balanceApplied = amount
	return nil
}

// ApplyWriteOff records a forgiven amount with its mandatory reason. Like
// balance settlement, a write-off never changes the payment classification.
func (d *PackageDistribution) ApplyWriteOff(amount kernel.Money, reason string) error {
	if err := d.Validate(); err != nil {
		return err
	}
	if amount.IsNegative() {
		return errs.NewValueIsInvalidError("write-off amount must not be negative")
	}
	if amount.IsPositive() && reason == "" {
		return errs.NewValueIsRequiredError("write-off reason")
	}

	d.writeOffAmount = amount
	d.writeOffReason = reason
	return nil
}

// MarkDisputed annotates the settlement as disputed. This and payment-status
// correction are the only mutations permitted after creation.
func (d *PackageDistribution) MarkDisputed(reason string) error {
	if err := d.Validate(); err != nil {
		return err
	}
	if d.disputed {
		return ErrDistributionAlreadyDisputed
	}
	if reason == "" {
		return errs.NewValueIsRequiredError("dispute reason")
	}

	d.disputed = true
	d.disputeReason = reason
	return nil
}

// CorrectPaymentStatus overrides the stored classification, e.g. after a
// reconciliation finding. The correction is itself audited by the caller.
func (d *PackageDistribution) CorrectPaymentStatus(status PaymentStatus) error {
	if err := d.Validate(); err != nil {
		return err
	}
	if err := status.Validate(); err != nil {
		return err
	}

	d.paymentStatus = status
	return nil
}
