package interest

import (
	"errors"
	"time"
)

// Interest status values. The machine moves strictly forward:
// pending -> contact_shared -> paid_access, with expired reachable from the
// first two when the parent job closes. paid_access and expired are absorbing.
const (
	StatusPending       = "pending"
	StatusContactShared = "contact_shared"
	StatusPaidAccess    = "paid_access"
	StatusExpired       = "expired"
)

var (
	// ErrDuplicateInterest rejects a second interest for the same job and
	// tradesperson; duplicates are rejected, not merged.
	ErrDuplicateInterest = errors.New("interest already exists for this job")
	// ErrInterestNotFound indicates the referenced interest does not exist.
	ErrInterestNotFound = errors.New("interest not found")
	// ErrInvalidTransition rejects an operation whose status precondition fails.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrForbidden rejects callers who do not own the relevant side of the interest.
	ErrForbidden = errors.New("forbidden")
	// ErrAccessDenied gates contact disclosure. Deliberately identical for a
	// missing interest and an unpaid one, so callers learn nothing either way.
	ErrAccessDenied = errors.New("access denied")
	// ErrJobClosed rejects new interest on a job whose lifecycle ended.
	ErrJobClosed = errors.New("job is closed")
)

// Interest tracks one tradesperson's pursuit of one job, from expression
// through contact sharing to paid access or expiry. The access fee is
// snapshotted at creation and immune to later policy changes.
type Interest struct {
	ID                string
	JobID             string
	TradespersonID    string
	HomeownerID       string
	Status            string
	AccessFeeCoins    int64
	AccessFeeCurrency int64
	CreatedAt         time.Time
	ContactSharedAt   *time.Time
	PaymentMadeAt     *time.Time
	ExpiredAt         *time.Time
}
