// Package distribution provides the PackageDistribution settlement aggregate
// and the payment-allocation rules applied when ready parcels are handed
// over to a customer.
//
// The allocation precedence is fixed: cash collected, then stored credit,
// then account balance, then write-off. The paid/partial/unpaid
// classification is a pure function of the total and cash + credit received;
// balance and write-off amounts reduce the outstanding figure but never
// change the classification.
package distribution
