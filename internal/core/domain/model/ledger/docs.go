// Package ledger provides the append-only customer ledger: CustomerAccount
// with its two balances (running account balance and pre-paid credit) and
// CustomerTransaction postings.
//
// Postings are immutable once created; corrections are new postings. The
// running-balance chain invariant (each posting's balance_after equals the
// next posting's balance_before for one customer and balance kind) holds by
// construction because balances are only moved through the account's posting
// methods. Flagging a posting for manual review and resolving that review are
// append-style state additions, never retroactive edits.
package ledger
