package wallet

import "context"

// Service exposes wallet operations backed by a Store.
type Service struct {
	store Store
}

// NewService builds a wallet service instance.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Store returns the underlying store for collaborators that need the funding
// transaction log (the arbitration workflow).
func (s *Service) Store() Store {
	return s.store
}

// Balance returns the wallet for the owner, creating a zero-balance record on
// first access.
func (s *Service) Balance(ctx context.Context, ownerID string) (Wallet, error) {
	return s.store.Ensure(ctx, ownerID)
}

// Credit increases the owner's balance. Idempotent per reasonTxnID: crediting
// twice for the same funding transaction applies once.
func (s *Service) Credit(ctx context.Context, ownerID string, amountCoins int64, reasonTxnID string) (Wallet, error) {
	return s.store.Credit(ctx, ownerID, amountCoins, reasonTxnID)
}

// Debit atomically checks and decrements the owner's balance, recording a
// completed debit transaction in the same unit. Returns ErrInsufficientBalance
// when the wallet cannot cover the amount.
func (s *Service) Debit(ctx context.Context, ownerID string, amountCoins int64, reasonRef string) (Wallet, error) {
	return s.store.Debit(ctx, ownerID, amountCoins, reasonRef)
}

// History lists the owner's transactions, newest first.
func (s *Service) History(ctx context.Context, ownerID string) ([]Transaction, error) {
	if _, err := s.store.Ensure(ctx, ownerID); err != nil {
		return nil, err
	}
	return s.store.History(ctx, ownerID)
}
