// Package accessfee is the single source of truth for the coin cost of
// unlocking a job's contact details. Interests snapshot the fee at creation,
// so later changes here never affect an existing interest.
package accessfee

import (
	"context"
	"errors"
	"fmt"

	"github.com/fundilink/fundilink/internal/wallet"
)

// ErrFeeOutOfBounds rejects fees outside the configured range. Out-of-range
// values are rejected, never clamped.
var ErrFeeOutOfBounds = errors.New("fee outside allowed bounds")

// Fee is the coin price of a contact unlock, with its currency equivalent.
type Fee struct {
	Coins    int64 `json:"coins"`
	Currency int64 `json:"currency"`
}

// Bounds configures the allowed fee range and the platform default.
type Bounds struct {
	MinCoins     int64
	MaxCoins     int64
	DefaultCoins int64
}

// Repository persists per-job fee overrides.
type Repository interface {
	Get(ctx context.Context, jobID string) (int64, bool, error)
	Set(ctx context.Context, jobID string, feeCoins int64) error
}

// Service computes and validates access fees.
type Service struct {
	repo   Repository
	bounds Bounds
}

// NewService builds an access fee service.
func NewService(repo Repository, bounds Bounds) *Service {
	return &Service{repo: repo, bounds: bounds}
}

// Fee returns the configured fee for the job, or the platform default.
func (s *Service) Fee(ctx context.Context, jobID string) (Fee, error) {
	coins, found, err := s.repo.Get(ctx, jobID)
	if err != nil {
		return Fee{}, err
	}
	if !found {
		coins = s.bounds.DefaultCoins
	}
	return Fee{Coins: coins, Currency: coins * wallet.CoinRate}, nil
}

// SetFee stores a job-specific fee, enforcing the configured bounds at the
// point of change.
func (s *Service) SetFee(ctx context.Context, jobID string, feeCoins int64) error {
	if feeCoins < s.bounds.MinCoins || feeCoins > s.bounds.MaxCoins {
		return fmt.Errorf("%w: %d not in [%d, %d]", ErrFeeOutOfBounds, feeCoins, s.bounds.MinCoins, s.bounds.MaxCoins)
	}
	return s.repo.Set(ctx, jobID, feeCoins)
}
