package distribution

import (
	"fmt"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/pkg/errs"
)

// PaymentStatus classifies how much of a distribution's total was settled
// with cash and credit.
type PaymentStatus string

const (
	// PaymentUnpaid means no cash or credit was received.
	PaymentUnpaid PaymentStatus = "unpaid"
	// PaymentPartial means some but not all of the total was received.
	PaymentPartial PaymentStatus = "partial"
	// PaymentPaid means cash plus credit covered the total.
	PaymentPaid PaymentStatus = "paid"
)

// Validate checks the status is one of the defined classifications.
func (s PaymentStatus) Validate() error {
	switch s {
	case PaymentUnpaid, PaymentPartial, PaymentPaid:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("payment status",
			fmt.Errorf("%q is not a valid payment status", string(s)))
	}
}

// CalculatePaymentStatus derives the payment classification from the amounts
// received. Received is cash plus applied credit only: account-balance and
// write-off amounts settle the obligation for reporting purposes but never
// upgrade the classification. This asymmetry is deliberate and must be
// preserved; balance and write-off are treated as non-revenue settlement.
func CalculatePaymentStatus(total, amountCollected, creditApplied kernel.Money) PaymentStatus {
	received := amountCollected.Add(creditApplied)
	switch {
	case received.GreaterThanOrEqual(total):
		return PaymentPaid
	case received.IsPositive():
		return PaymentPartial
	default:
		return PaymentUnpaid
	}
}

// ComputeOutstanding returns the amount still owed after every settlement
// source, floored at zero.
func ComputeOutstanding(total, amountCollected, creditApplied, balanceApplied, writeOff kernel.Money) kernel.Money {
	outstanding := total.Sub(amountCollected).Sub(creditApplied).Sub(balanceApplied).Sub(writeOff)
	if outstanding.IsNegative() {
		return kernel.ZeroMoney()
	}
	return outstanding
}

// AllocateCredit returns how much stored credit to apply: the smaller of the
// available credit and the outstanding amount after cash, never negative.
// The result is rounded half-up to cents because it crosses an allocation
// boundary.
func AllocateCredit(outstandingAfterCash, creditAvailable kernel.Money) kernel.Money {
	if outstandingAfterCash.IsNegative() || outstandingAfterCash.IsZero() {
		return kernel.ZeroMoney()
	}
	if creditAvailable.IsNegative() {
		return kernel.ZeroMoney()
	}
	return outstandingAfterCash.Min(creditAvailable).Round()
}
