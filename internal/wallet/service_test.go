package wallet

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
)

func TestServiceLazyInit(t *testing.T) {
	svc := NewService(NewMemoryStore())
	ctx := context.Background()
	ownerID := uuid.NewString()

	w, err := svc.Balance(ctx, ownerID)
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if w.BalanceCoins != 0 {
		t.Fatalf("expected zero balance, got %d", w.BalanceCoins)
	}

	// Second access returns the same wallet, not a reset.
	if _, err := svc.Credit(ctx, ownerID, 10, "txn-1"); err != nil {
		t.Fatalf("credit: %v", err)
	}
	w, err = svc.Balance(ctx, ownerID)
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if w.BalanceCoins != 10 {
		t.Fatalf("expected balance 10, got %d", w.BalanceCoins)
	}
}

func TestServiceCreditIdempotentPerReason(t *testing.T) {
	svc := NewService(NewMemoryStore())
	ctx := context.Background()
	ownerID := uuid.NewString()

	if _, err := svc.Credit(ctx, ownerID, 50, "funding-abc"); err != nil {
		t.Fatalf("first credit: %v", err)
	}
	w, err := svc.Credit(ctx, ownerID, 50, "funding-abc")
	if err != nil {
		t.Fatalf("second credit: %v", err)
	}
	if w.BalanceCoins != 50 {
		t.Fatalf("expected balance 50 after duplicate credit, got %d", w.BalanceCoins)
	}

	history, err := svc.History(ctx, ownerID)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("expected one credit record, got %d", len(history))
	}
}

func TestServiceDebitInsufficientBalance(t *testing.T) {
	store := NewMemoryStore()
	svc := NewService(store)
	ctx := context.Background()
	ownerID := uuid.NewString()

	SeedBalance(store, ownerID, 10)

	if _, err := svc.Debit(ctx, ownerID, 20, "interest-1"); !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("expected insufficient balance, got %v", err)
	}

	w, err := svc.Balance(ctx, ownerID)
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if w.BalanceCoins != 10 {
		t.Fatalf("failed debit must not change balance, got %d", w.BalanceCoins)
	}
}

func TestServiceDebitRecordsCompletedTransaction(t *testing.T) {
	store := NewMemoryStore()
	svc := NewService(store)
	ctx := context.Background()
	ownerID := uuid.NewString()

	SeedBalance(store, ownerID, 40)

	w, err := svc.Debit(ctx, ownerID, 15, "interest-7")
	if err != nil {
		t.Fatalf("debit: %v", err)
	}
	if w.BalanceCoins != 25 {
		t.Fatalf("expected balance 25, got %d", w.BalanceCoins)
	}

	history, err := svc.History(ctx, ownerID)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("expected one record, got %d", len(history))
	}
	txn := history[0]
	if txn.Kind != KindDebit || txn.Status != StatusCompleted {
		t.Fatalf("unexpected record %s/%s", txn.Kind, txn.Status)
	}
	if txn.AmountCoins != 15 || txn.AmountCurrency != 1500 {
		t.Fatalf("unexpected amounts %d/%d", txn.AmountCoins, txn.AmountCurrency)
	}
}

func TestServiceDebitDuplicateReasonNoOp(t *testing.T) {
	store := NewMemoryStore()
	svc := NewService(store)
	ctx := context.Background()
	ownerID := uuid.NewString()

	SeedBalance(store, ownerID, 30)

	if _, err := svc.Debit(ctx, ownerID, 15, "interest-9"); err != nil {
		t.Fatalf("first debit: %v", err)
	}
	w, err := svc.Debit(ctx, ownerID, 15, "interest-9")
	if err != nil {
		t.Fatalf("second debit: %v", err)
	}
	if w.BalanceCoins != 15 {
		t.Fatalf("duplicate reason must not debit twice, balance %d", w.BalanceCoins)
	}
}

func TestServiceConcurrentDebitsAdmitAffordableSubset(t *testing.T) {
	store := NewMemoryStore()
	svc := NewService(store)
	ctx := context.Background()
	ownerID := uuid.NewString()

	// Balance affords exactly 4 of the 10 racing debits.
	SeedBalance(store, ownerID, 40)

	const workers = 10
	var succeeded, rejected atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := svc.Debit(ctx, ownerID, 10, uuid.NewString())
			switch {
			case err == nil:
				succeeded.Add(1)
			case errors.Is(err, ErrInsufficientBalance):
				rejected.Add(1)
			default:
				t.Errorf("debit %d: %v", i, err)
			}
		}(i)
	}
	wg.Wait()

	if succeeded.Load() != 4 || rejected.Load() != 6 {
		t.Fatalf("expected 4 successes and 6 rejections, got %d/%d", succeeded.Load(), rejected.Load())
	}

	w, err := svc.Balance(ctx, ownerID)
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if w.BalanceCoins != 0 {
		t.Fatalf("expected drained balance, got %d", w.BalanceCoins)
	}
	if w.BalanceCoins < 0 {
		t.Fatalf("balance went negative: %d", w.BalanceCoins)
	}
}

func TestCoinsForCurrencyDropsRemainder(t *testing.T) {
	if got := CoinsForCurrency(5000); got != 50 {
		t.Fatalf("expected 50 coins, got %d", got)
	}
	if got := CoinsForCurrency(1599); got != 15 {
		t.Fatalf("expected remainder dropped, got %d", got)
	}
}
