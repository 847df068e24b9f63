package funding

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/fundilink/fundilink/internal/proof"
	"github.com/fundilink/fundilink/internal/wallet"
)

func newTestService(t *testing.T) (*Service, wallet.Store) {
	t.Helper()
	store := wallet.NewMemoryStore()
	svc := NewService(store, proof.NewMemoryStore(), nil, Rules{
		MinAmountCurrency: 1500,
		MaxProofBytes:     5 << 20,
	})
	return svc, store
}

func submitInput(amount int64) SubmitInput {
	return SubmitInput{
		OwnerID:          "owner-1",
		AmountCurrency:   amount,
		ProofFilename:    "receipt.jpg",
		ProofContentType: "image/jpeg",
		ProofSize:        1024,
		Proof:            strings.NewReader("fake image bytes"),
	}
}

func TestSubmitValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	cases := []struct {
		name    string
		mutate  func(*SubmitInput)
		wantErr error
	}{
		{
			name:    "below minimum",
			mutate:  func(in *SubmitInput) { in.AmountCurrency = 1499 },
			wantErr: ErrAmountBelowMinimum,
		},
		{
			name:    "unsupported proof type",
			mutate:  func(in *SubmitInput) { in.ProofContentType = "application/pdf" },
			wantErr: ErrUnsupportedProofType,
		},
		{
			name:    "proof too large",
			mutate:  func(in *SubmitInput) { in.ProofSize = (5 << 20) + 1 },
			wantErr: ErrProofTooLarge,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := submitInput(5000)
			tc.mutate(&in)
			if _, err := svc.Submit(ctx, in); !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v got %v", tc.wantErr, err)
			}
		})
	}
}

func TestSubmitRecordsPendingWithoutBalanceChange(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	txn, err := svc.Submit(ctx, submitInput(5000))
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if txn.Status != wallet.StatusPending {
		t.Fatalf("expected status %q got %q", wallet.StatusPending, txn.Status)
	}
	if txn.AmountCoins != 50 {
		t.Fatalf("expected 50 coins for 5000 got %d", txn.AmountCoins)
	}
	if txn.ProofImageRef == "" {
		t.Fatal("expected a stored proof reference")
	}

	w, err := store.Ensure(ctx, "owner-1")
	if err != nil {
		t.Fatalf("wallet: %v", err)
	}
	if w.BalanceCoins != 0 {
		t.Fatalf("expected balance untouched got %d", w.BalanceCoins)
	}
}

func TestConfirmCreditsOnce(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	txn, err := svc.Submit(ctx, submitInput(5000))
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	confirmed, err := svc.Confirm(ctx, txn.ID, "admin-1", "verified against bank statement")
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if confirmed.Status != wallet.StatusConfirmed {
		t.Fatalf("expected status %q got %q", wallet.StatusConfirmed, confirmed.Status)
	}
	if confirmed.AdminID != "admin-1" {
		t.Fatalf("expected admin attribution got %q", confirmed.AdminID)
	}
	if confirmed.ResolvedAt == nil {
		t.Fatal("expected resolved_at to be stamped")
	}

	w, err := store.Ensure(ctx, "owner-1")
	if err != nil {
		t.Fatalf("wallet: %v", err)
	}
	if w.BalanceCoins != 50 {
		t.Fatalf("expected 50 coins credited got %d", w.BalanceCoins)
	}

	// Second resolution reports the original decision and credits nothing.
	again, err := svc.Confirm(ctx, txn.ID, "admin-2", "second look")
	if !errors.Is(err, wallet.ErrAlreadyResolved) {
		t.Fatalf("expected ErrAlreadyResolved got %v", err)
	}
	if again.AdminID != "admin-1" {
		t.Fatalf("expected original admin in conflict payload got %q", again.AdminID)
	}

	w, err = store.Ensure(ctx, "owner-1")
	if err != nil {
		t.Fatalf("wallet: %v", err)
	}
	if w.BalanceCoins != 50 {
		t.Fatalf("expected single credit, balance %d", w.BalanceCoins)
	}
}

func TestRejectLeavesBalanceUntouched(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	txn, err := svc.Submit(ctx, submitInput(2000))
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	rejected, err := svc.Reject(ctx, txn.ID, "admin-1", "no matching transfer found")
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if rejected.Status != wallet.StatusRejected {
		t.Fatalf("expected status %q got %q", wallet.StatusRejected, rejected.Status)
	}
	if rejected.AdminNotes != "no matching transfer found" {
		t.Fatalf("expected admin notes to persist got %q", rejected.AdminNotes)
	}

	w, err := store.Ensure(ctx, "owner-1")
	if err != nil {
		t.Fatalf("wallet: %v", err)
	}
	if w.BalanceCoins != 0 {
		t.Fatalf("expected no credit on rejection got %d", w.BalanceCoins)
	}

	// A rejected claim cannot later be confirmed.
	if _, err := svc.Confirm(ctx, txn.ID, "admin-2", ""); !errors.Is(err, wallet.ErrAlreadyResolved) {
		t.Fatalf("expected ErrAlreadyResolved got %v", err)
	}
}

func TestListPendingExcludesResolved(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	first, err := svc.Submit(ctx, submitInput(2000))
	if err != nil {
		t.Fatalf("submit first: %v", err)
	}
	second, err := svc.Submit(ctx, submitInput(3000))
	if err != nil {
		t.Fatalf("submit second: %v", err)
	}
	if _, err := svc.Confirm(ctx, first.ID, "admin-1", ""); err != nil {
		t.Fatalf("confirm: %v", err)
	}

	pending, err := svc.ListPending(ctx)
	if err != nil {
		t.Fatalf("list pending: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("expected 1 pending got %d", len(pending))
	}
	if pending[0].ID != second.ID {
		t.Fatalf("expected remaining pending %s got %s", second.ID, pending[0].ID)
	}
}
