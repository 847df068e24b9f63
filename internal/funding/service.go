package funding

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/fundilink/fundilink/internal/notification"
	"github.com/fundilink/fundilink/internal/wallet"
)

var (
	// ErrAmountBelowMinimum rejects funding claims under the platform minimum.
	ErrAmountBelowMinimum = errors.New("amount below funding minimum")
	// ErrUnsupportedProofType rejects proof files that are not accepted images.
	ErrUnsupportedProofType = errors.New("unsupported proof image type")
	// ErrProofTooLarge rejects proof files over the configured size bound.
	ErrProofTooLarge = errors.New("proof image too large")
)

var acceptedProofTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/webp": {},
}

// Rules bound what a funding submission may contain.
type Rules struct {
	MinAmountCurrency int64
	MaxProofBytes     int64
}

// Service converts bank-transfer claims into reviewable ledger events and
// applies admin arbitration decisions.
type Service struct {
	store    wallet.Store
	proofs   ProofStore
	notifier notification.Notifier
	rules    Rules
}

// ProofStore persists the submitted proof image and returns its reference.
type ProofStore interface {
	Save(ctx context.Context, ownerID, filename string, r io.Reader) (string, error)
}

// NewService builds a funding service.
func NewService(store wallet.Store, proofs ProofStore, notifier notification.Notifier, rules Rules) *Service {
	return &Service{store: store, proofs: proofs, notifier: notifier, rules: rules}
}

// SubmitInput captures a user's bank-transfer funding claim.
type SubmitInput struct {
	OwnerID          string
	AmountCurrency   int64
	ProofFilename    string
	ProofContentType string
	ProofSize        int64
	Proof            io.Reader
}

// Submit validates the claim, stores the proof image and records a pending
// fund transaction. The wallet balance is untouched until arbitration.
func (s *Service) Submit(ctx context.Context, input SubmitInput) (wallet.Transaction, error) {
	if input.AmountCurrency < s.rules.MinAmountCurrency {
		return wallet.Transaction{}, fmt.Errorf("%w: minimum is %d", ErrAmountBelowMinimum, s.rules.MinAmountCurrency)
	}
	if _, ok := acceptedProofTypes[input.ProofContentType]; !ok {
		return wallet.Transaction{}, ErrUnsupportedProofType
	}
	if input.ProofSize > s.rules.MaxProofBytes {
		return wallet.Transaction{}, ErrProofTooLarge
	}

	ref, err := s.proofs.Save(ctx, input.OwnerID, input.ProofFilename, input.Proof)
	if err != nil {
		return wallet.Transaction{}, fmt.Errorf("store proof: %w", err)
	}

	txn := wallet.Transaction{
		ID:             uuid.NewString(),
		WalletOwnerID:  input.OwnerID,
		Kind:           wallet.KindFund,
		Status:         wallet.StatusPending,
		AmountCoins:    wallet.CoinsForCurrency(input.AmountCurrency),
		AmountCurrency: input.AmountCurrency,
		ProofImageRef:  ref,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.store.CreateFunding(ctx, txn); err != nil {
		return wallet.Transaction{}, err
	}
	return txn, nil
}

// Confirm credits the owner wallet and marks the transaction confirmed, as one
// atomic unit. A second resolution attempt returns wallet.ErrAlreadyResolved
// together with the record showing who resolved it and when.
func (s *Service) Confirm(ctx context.Context, txnID, adminID, notes string) (wallet.Transaction, error) {
	txn, err := s.store.ResolveFunding(ctx, txnID, true, adminID, notes)
	if err != nil {
		return txn, err
	}
	if s.notifier != nil {
		_ = s.notifier.Send(ctx, notification.Message{
			Kind:        notification.KindFundingConfirmed,
			Destination: txn.WalletOwnerID,
			Body:        fmt.Sprintf("Your wallet was credited with %d coins", wallet.CoinsForCurrency(txn.AmountCurrency)),
		})
	}
	return txn, nil
}

// Reject marks the transaction rejected with no balance change. Same
// pending-only guard as Confirm.
func (s *Service) Reject(ctx context.Context, txnID, adminID, notes string) (wallet.Transaction, error) {
	txn, err := s.store.ResolveFunding(ctx, txnID, false, adminID, notes)
	if err != nil {
		return txn, err
	}
	if s.notifier != nil {
		_ = s.notifier.Send(ctx, notification.Message{
			Kind:        notification.KindFundingRejected,
			Destination: txn.WalletOwnerID,
			Body:        "Your funding request was rejected: " + notes,
		})
	}
	return txn, nil
}

// ListPending returns the admin review queue, oldest first.
func (s *Service) ListPending(ctx context.Context) ([]wallet.Transaction, error) {
	return s.store.PendingFunding(ctx)
}
