package commands

import (
	"errors"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/pkg/errs"
	"parcels/internal/pkg/guard"
)

var (
	ErrDistributeParcelsCommandIsNotConstructed = errors.New(
		"DistributeParcelsCommand must be created via NewDistributeParcelsCommand constructor",
	)
)

// DistributeParcelsCommand settles and hands over a customer's ready parcels.
// Carries the cash collected at the counter, whether stored credit should be
// drawn on, and an optional write-off with its mandatory reason.
type DistributeParcelsCommand struct { //nolint:recvcheck //using for validation
	customerID       kernel.UUID
	parcelIDs        []kernel.UUID
	operator         string
	amountCollected  kernel.Money
	useCreditBalance bool
	writeOffAmount   kernel.Money
	writeOffReason   string

	guard guard.ConstructorGuard
}

// NewDistributeParcelsCommand creates a validated distribution request.
// A positive write-off amount requires a reason.
func NewDistributeParcelsCommand(
	customerID kernel.UUID,
	parcelIDs []kernel.UUID,
	operator string,
	amountCollected kernel.Money,
	useCreditBalance bool,
	writeOffAmount kernel.Money,
	writeOffReason string,
) (DistributeParcelsCommand, error) {
	cmd := DistributeParcelsCommand{
		useCreditBalance: useCreditBalance,
		writeOffReason:   writeOffReason,
		guard:            guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCustomerID(customerID),
		cmd.setParcelIDs(parcelIDs),
		cmd.setOperator(operator),
		cmd.setAmountCollected(amountCollected),
		cmd.setWriteOff(writeOffAmount, writeOffReason),
	); err != nil {
		return DistributeParcelsCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c DistributeParcelsCommand) Validate() error {
	return c.guard.Validate(ErrDistributeParcelsCommandIsNotConstructed)
}

// CustomerID returns the receiving customer's identifier.
func (c DistributeParcelsCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// ParcelIDs returns the identifiers of the parcels to hand over.
func (c DistributeParcelsCommand) ParcelIDs() []kernel.UUID {
	return c.parcelIDs
}

// Operator returns who performed the hand-over.
func (c DistributeParcelsCommand) Operator() string {
	return c.operator
}

// AmountCollected returns the cash collected at hand-over.
func (c DistributeParcelsCommand) AmountCollected() kernel.Money {
	return c.amountCollected
}

// UseCreditBalance reports whether stored credit should settle the remainder.
func (c DistributeParcelsCommand) UseCreditBalance() bool {
	return c.useCreditBalance
}

// WriteOffAmount returns the amount to forgive, zero when none.
func (c DistributeParcelsCommand) WriteOffAmount() kernel.Money {
	return c.writeOffAmount
}

// WriteOffReason returns why an amount is forgiven.
func (c DistributeParcelsCommand) WriteOffReason() string {
	return c.writeOffReason
}

func (c *DistributeParcelsCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	c.customerID = customerID
	return nil
}

func (c *DistributeParcelsCommand) setParcelIDs(parcelIDs []kernel.UUID) error {
	if len(parcelIDs) == 0 {
		return errs.NewValueIsRequiredError("parcelIDs")
	}
	for _, id := range parcelIDs {
		if err := id.Validate(); err != nil {
			return err
		}
	}
	c.parcelIDs = parcelIDs
	return nil
}

func (c *DistributeParcelsCommand) setOperator(operator string) error {
	if operator == "" {
		return parcel.ErrActorIsRequired
	}
	c.operator = operator
	return nil
}

func (c *DistributeParcelsCommand) setAmountCollected(amountCollected kernel.Money) error {
	if amountCollected.IsNegative() {
		return errs.NewValueIsInvalidError("amountCollected")
	}
	c.amountCollected = amountCollected
	return nil
}

func (c *DistributeParcelsCommand) setWriteOff(amount kernel.Money, reason string) error {
	if amount.IsNegative() {
		return errs.NewValueIsInvalidError("writeOffAmount")
	}
	if amount.IsPositive() && reason == "" {
		return errs.NewValueIsRequiredError("writeOffReason")
	}
	c.writeOffAmount = amount
	return nil
}
