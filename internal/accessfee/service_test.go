package accessfee

import (
	"context"
	"errors"
	"testing"

	"github.com/fundilink/fundilink/internal/wallet"
)

func newTestService() *Service {
	return NewService(NewMemoryRepository(), Bounds{MinCoins: 15, MaxCoins: 50, DefaultCoins: 15})
}

func TestFeeFallsBackToDefault(t *testing.T) {
	svc := newTestService()

	fee, err := svc.Fee(context.Background(), "job-1")
	if err != nil {
		t.Fatalf("fee: %v", err)
	}
	if fee.Coins != 15 {
		t.Fatalf("expected default fee 15 got %d", fee.Coins)
	}
	if fee.Currency != 15*wallet.CoinRate {
		t.Fatalf("expected currency equivalent %d got %d", 15*wallet.CoinRate, fee.Currency)
	}
}

func TestSetFeeWithinBounds(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if err := svc.SetFee(ctx, "job-1", 40); err != nil {
		t.Fatalf("set fee: %v", err)
	}
	fee, err := svc.Fee(ctx, "job-1")
	if err != nil {
		t.Fatalf("fee: %v", err)
	}
	if fee.Coins != 40 {
		t.Fatalf("expected fee 40 got %d", fee.Coins)
	}

	// Another job is unaffected by the override.
	other, err := svc.Fee(ctx, "job-2")
	if err != nil {
		t.Fatalf("other fee: %v", err)
	}
	if other.Coins != 15 {
		t.Fatalf("expected default for other job got %d", other.Coins)
	}
}

func TestSetFeeRejectsOutOfBounds(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	for _, coins := range []int64{14, 51, 0, -5} {
		if err := svc.SetFee(ctx, "job-1", coins); !errors.Is(err, ErrFeeOutOfBounds) {
			t.Fatalf("fee %d: expected ErrFeeOutOfBounds got %v", coins, err)
		}
	}

	// Rejected values are never stored, not clamped.
	fee, err := svc.Fee(ctx, "job-1")
	if err != nil {
		t.Fatalf("fee: %v", err)
	}
	if fee.Coins != 15 {
		t.Fatalf("expected default after rejections got %d", fee.Coins)
	}

	// Boundary values are accepted.
	if err := svc.SetFee(ctx, "job-1", 15); err != nil {
		t.Fatalf("set min: %v", err)
	}
	if err := svc.SetFee(ctx, "job-1", 50); err != nil {
		t.Fatalf("set max: %v", err)
	}
}
