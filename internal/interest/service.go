package interest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fundilink/fundilink/internal/accessfee"
	"github.com/fundilink/fundilink/internal/job"
	"github.com/fundilink/fundilink/internal/notification"
	"github.com/fundilink/fundilink/internal/wallet"
)

// Service drives the interest state machine. It is the only component allowed
// to transition interest status, and the only disclosure path for job contact
// details.
type Service struct {
	repo     Repository
	wallets  *wallet.Service
	fees     *accessfee.Service
	jobs     job.Directory
	notifier notification.Notifier
}

// NewService builds an interest service.
func NewService(repo Repository, wallets *wallet.Service, fees *accessfee.Service, jobs job.Directory, notifier notification.Notifier) *Service {
	return &Service{repo: repo, wallets: wallets, fees: fees, jobs: jobs, notifier: notifier}
}

// Express creates a pending interest for the tradesperson on an open job,
// snapshotting the access fee at this instant.
func (s *Service) Express(ctx context.Context, jobID, tradespersonID string) (Interest, error) {
	j, err := s.jobs.Lookup(ctx, jobID)
	if err != nil {
		return Interest{}, err
	}
	if !j.Open() {
		return Interest{}, ErrJobClosed
	}

	fee, err := s.fees.Fee(ctx, jobID)
	if err != nil {
		return Interest{}, fmt.Errorf("snapshot access fee: %w", err)
	}

	in := Interest{
		ID:                uuid.NewString(),
		JobID:             jobID,
		TradespersonID:    tradespersonID,
		HomeownerID:       j.HomeownerID,
		Status:            StatusPending,
		AccessFeeCoins:    fee.Coins,
		AccessFeeCurrency: fee.Currency,
		CreatedAt:         time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, in); err != nil {
		return Interest{}, err
	}

	s.notify(ctx, notification.KindInterestExpressed, j.HomeownerID,
		fmt.Sprintf("A tradesperson is interested in %q", j.Title))
	return in, nil
}

// ShareContact moves a pending interest to contact_shared. Only the owning
// homeowner may share; the ownership check runs before any status inspection.
func (s *Service) ShareContact(ctx context.Context, interestID, homeownerID string) (Interest, error) {
	in, err := s.repo.Get(ctx, interestID)
	if err != nil {
		return Interest{}, err
	}
	if in.HomeownerID != homeownerID {
		return Interest{}, ErrForbidden
	}

	updated, err := s.repo.MarkContactShared(ctx, interestID, time.Now().UTC())
	if err != nil {
		return updated, err
	}

	s.notify(ctx, notification.KindContactShared, updated.TradespersonID,
		"The homeowner shared contact access; pay the fee to unlock details")
	return updated, nil
}

// PayForAccess debits the snapshotted fee and moves the interest to
// paid_access, returning the post-transition state synchronously.
//
// Idempotent at the interest level: a retry on an already-paid interest is a
// no-op success and never reaches the wallet. The debit reason reference
// (the interest id) is defense-in-depth for races the status check misses.
//
// The debit and the transition commit separately, so a transition loss after
// a committed debit must not strand the coins. A retryable loss (storage
// fault, or a concurrent retry winning MarkPaid) keeps the debit: the next
// call either sees paid_access or re-runs the no-op debit and transitions.
// A terminal loss (the interest expired between the status check and
// MarkPaid) is compensated with a refund credit, so neither serial order of
// pay and expire charges without granting.
func (s *Service) PayForAccess(ctx context.Context, interestID, tradespersonID string) (Interest, error) {
	in, err := s.repo.Get(ctx, interestID)
	if err != nil {
		return Interest{}, err
	}
	if in.TradespersonID != tradespersonID {
		return Interest{}, ErrForbidden
	}

	if in.Status == StatusPaidAccess {
		return in, nil
	}
	if in.Status != StatusContactShared {
		return in, ErrInvalidTransition
	}

	if _, err := s.wallets.Debit(ctx, tradespersonID, in.AccessFeeCoins, in.ID); err != nil {
		// Surfaced unchanged; the interest stays contact_shared.
		return in, err
	}

	updated, err := s.repo.MarkPaid(ctx, interestID, time.Now().UTC())
	if err != nil {
		if errors.Is(err, ErrInvalidTransition) {
			switch updated.Status {
			case StatusPaidAccess:
				// Lost a benign race against a concurrent retry; the single
				// debit already stands under our reason reference.
				return updated, nil
			case StatusExpired:
				// The job closed mid-payment. The interest can never reach
				// paid_access, so the committed debit is refunded. The credit
				// reason makes the refund idempotent under retried calls.
				if _, refundErr := s.wallets.Credit(ctx, tradespersonID, in.AccessFeeCoins, "refund:"+in.ID); refundErr != nil {
					return updated, fmt.Errorf("refund after expiry: %w", refundErr)
				}
				return updated, err
			}
		}
		return updated, err
	}

	s.notify(ctx, notification.KindAccessPaid, updated.HomeownerID,
		"A tradesperson unlocked your contact details")
	return updated, nil
}

// ContactDetails discloses the homeowner's contact fields if and only if the
// caller holds a paid_access interest for the job. Every failure mode maps to
// ErrAccessDenied so the response never reveals whether an interest exists.
func (s *Service) ContactDetails(ctx context.Context, jobID, tradespersonID string) (job.Contact, error) {
	in, err := s.repo.FindByJobAndTradesperson(ctx, jobID, tradespersonID)
	if err != nil {
		if errors.Is(err, ErrInterestNotFound) {
			return job.Contact{}, ErrAccessDenied
		}
		return job.Contact{}, err
	}
	if in.Status != StatusPaidAccess {
		return job.Contact{}, ErrAccessDenied
	}

	j, err := s.jobs.Lookup(ctx, jobID)
	if err != nil {
		return job.Contact{}, err
	}
	return j.Contact, nil
}

// ExpireForJob expires all pending and contact_shared interests for a closed
// job. Paid access is permanent and unaffected. Returns the number expired.
func (s *Service) ExpireForJob(ctx context.Context, jobID string) (int64, error) {
	return s.repo.ExpireForJob(ctx, jobID, time.Now().UTC())
}

// ListForJob lists interests on a job for its homeowner.
func (s *Service) ListForJob(ctx context.Context, jobID, homeownerID string) ([]Interest, error) {
	j, err := s.jobs.Lookup(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if j.HomeownerID != homeownerID {
		return nil, ErrForbidden
	}
	return s.repo.ListForJob(ctx, jobID)
}

// ListForTradesperson lists the caller's own interests.
func (s *Service) ListForTradesperson(ctx context.Context, tradespersonID string) ([]Interest, error) {
	return s.repo.ListForTradesperson(ctx, tradespersonID)
}

func (s *Service) notify(ctx context.Context, kind, destination, body string) {
	if s.notifier == nil {
		return
	}
	_ = s.notifier.Send(ctx, notification.Message{Kind: kind, Destination: destination, Body: body})
}
