package wallet

import (
	"context"
	"errors"
)

var (
	// ErrInsufficientBalance occurs when a wallet lacks the coins to cover a
	// requested debit. Recoverable: the owner can fund the wallet and retry.
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrWalletNotFound indicates a missing wallet record. Given lazy
	// initialization this is an internal fault, not a business rejection.
	ErrWalletNotFound = errors.New("wallet not found")

	// ErrTransactionNotFound indicates the referenced transaction does not exist.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrAlreadyResolved indicates a funding transaction was already confirmed
	// or rejected; the returned transaction carries who resolved it and when.
	ErrAlreadyResolved = errors.New("transaction already resolved")
)

// Store is the contract implemented by wallet backends. All balance mutations
// go through Credit and Debit; no other code path writes balances.
//
// Credit and Debit are idempotent with respect to their reason reference: a
// second call carrying a reason already recorded for the same kind is a no-op
// returning the current wallet state. Debit performs its affordability check
// and decrement as a single indivisible step per owner.
type Store interface {
	Ensure(ctx context.Context, ownerID string) (Wallet, error)
	Credit(ctx context.Context, ownerID string, amountCoins int64, reasonTxnID string) (Wallet, error)
	Debit(ctx context.Context, ownerID string, amountCoins int64, reasonRef string) (Wallet, error)
	History(ctx context.Context, ownerID string) ([]Transaction, error)

	CreateFunding(ctx context.Context, txn Transaction) error
	Funding(ctx context.Context, txnID string) (Transaction, error)
	PendingFunding(ctx context.Context) ([]Transaction, error)
	// ResolveFunding flips a pending funding transaction to confirmed or
	// rejected. Confirmation credits the owner wallet in the same atomic unit
	// as the status flip: either both happen or neither.
	ResolveFunding(ctx context.Context, txnID string, confirm bool, adminID, notes string) (Transaction, error)
}
