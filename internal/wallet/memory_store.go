package wallet

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

type memoryStore struct {
	mu      sync.Mutex
	wallets map[string]Wallet
	txns    map[string]Transaction
	// reasons maps kind+":"+reasonRef to the transaction that consumed it.
	reasons map[string]string
}

// NewMemoryStore creates a concurrency-safe in-memory wallet store useful for
// unit tests and local development.
func NewMemoryStore() Store {
	return &memoryStore{
		wallets: make(map[string]Wallet),
		txns:    make(map[string]Transaction),
		reasons: make(map[string]string),
	}
}

func (s *memoryStore) Ensure(_ context.Context, ownerID string) (Wallet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ensureLocked(ownerID), nil
}

func (s *memoryStore) ensureLocked(ownerID string) Wallet {
	if w, ok := s.wallets[ownerID]; ok {
		return w
	}
	now := time.Now().UTC()
	w := Wallet{OwnerID: ownerID, BalanceCoins: 0, CreatedAt: now, UpdatedAt: now}
	s.wallets[ownerID] = w
	return w
}

func (s *memoryStore) Credit(_ context.Context, ownerID string, amountCoins int64, reasonTxnID string) (Wallet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w := s.ensureLocked(ownerID)
	key := KindCredit + ":" + reasonTxnID
	if _, seen := s.reasons[key]; seen {
		return w, nil
	}

	w.BalanceCoins += amountCoins
	w.UpdatedAt = time.Now().UTC()
	s.wallets[ownerID] = w

	txn := Transaction{
		ID:             uuid.NewString(),
		WalletOwnerID:  ownerID,
		Kind:           KindCredit,
		Status:         StatusCompleted,
		AmountCoins:    amountCoins,
		AmountCurrency: amountCoins * CoinRate,
		ReasonRef:      reasonTxnID,
		CreatedAt:      time.Now().UTC(),
	}
	s.txns[txn.ID] = txn
	s.reasons[key] = txn.ID
	return w, nil
}

func (s *memoryStore) Debit(_ context.Context, ownerID string, amountCoins int64, reasonRef string) (Wallet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w := s.ensureLocked(ownerID)
	key := KindDebit + ":" + reasonRef
	if _, seen := s.reasons[key]; seen {
		return w, nil
	}

	if w.BalanceCoins < amountCoins {
		return Wallet{}, ErrInsufficientBalance
	}

	w.BalanceCoins -= amountCoins
	w.UpdatedAt = time.Now().UTC()
	s.wallets[ownerID] = w

	txn := Transaction{
		ID:             uuid.NewString(),
		WalletOwnerID:  ownerID,
		Kind:           KindDebit,
		Status:         StatusCompleted,
		AmountCoins:    amountCoins,
		AmountCurrency: amountCoins * CoinRate,
		ReasonRef:      reasonRef,
		CreatedAt:      time.Now().UTC(),
	}
	s.txns[txn.ID] = txn
	s.reasons[key] = txn.ID
	return w, nil
}

func (s *memoryStore) History(_ context.Context, ownerID string) ([]Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var history []Transaction
	for _, txn := range s.txns {
		if txn.WalletOwnerID == ownerID {
			history = append(history, txn)
		}
	}
	sort.Slice(history, func(i, j int) bool {
		return history[i].CreatedAt.After(history[j].CreatedAt)
	})
	return history, nil
}

func (s *memoryStore) CreateFunding(_ context.Context, txn Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLocked(txn.WalletOwnerID)
	s.txns[txn.ID] = txn
	return nil
}

func (s *memoryStore) Funding(_ context.Context, txnID string) (Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	txn, ok := s.txns[txnID]
	if !ok || txn.Kind != KindFund {
		return Transaction{}, ErrTransactionNotFound
	}
	return txn, nil
}

func (s *memoryStore) PendingFunding(_ context.Context) ([]Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var pending []Transaction
	for _, txn := range s.txns {
		if txn.Kind == KindFund && txn.Status == StatusPending {
			pending = append(pending, txn)
		}
	}
	sort.Slice(pending, func(i, j int) bool {
		return pending[i].CreatedAt.Before(pending[j].CreatedAt)
	})
	return pending, nil
}

func (s *memoryStore) ResolveFunding(_ context.Context, txnID string, confirm bool, adminID, notes string) (Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	txn, ok := s.txns[txnID]
	if !ok || txn.Kind != KindFund {
		return Transaction{}, ErrTransactionNotFound
	}
	if txn.Status != StatusPending {
		return txn, ErrAlreadyResolved
	}

	now := time.Now().UTC()
	txn.AdminID = adminID
	txn.AdminNotes = notes
	txn.ResolvedAt = &now

	if !confirm {
		txn.Status = StatusRejected
		s.txns[txnID] = txn
		return txn, nil
	}

	txn.Status = StatusConfirmed
	s.txns[txnID] = txn

	// Same lock scope as the status flip: the credit and the flip are one unit.
	w := s.ensureLocked(txn.WalletOwnerID)
	key := KindCredit + ":" + txnID
	if _, seen := s.reasons[key]; !seen {
		w.BalanceCoins += txn.AmountCoins
		w.UpdatedAt = now
		s.wallets[txn.WalletOwnerID] = w

		credit := Transaction{
			ID:             uuid.NewString(),
			WalletOwnerID:  txn.WalletOwnerID,
			Kind:           KindCredit,
			Status:         StatusCompleted,
			AmountCoins:    txn.AmountCoins,
			AmountCurrency: txn.AmountCoins * CoinRate,
			ReasonRef:      txnID,
			CreatedAt:      now,
		}
		s.txns[credit.ID] = credit
		s.reasons[key] = credit.ID
	}

	return txn, nil
}
