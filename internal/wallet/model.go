package wallet

import "time"

// CoinRate is the fixed conversion rate: 1 coin = 100 currency units.
const CoinRate = 100

const (
	// KindFund is a bank-transfer funding claim awaiting admin review.
	KindFund = "fund"
	// KindDebit records an atomic balance decrement (contact access fees).
	KindDebit = "debit"
	// KindCredit records a balance increment from a confirmed funding.
	KindCredit = "credit"
)

const (
	// StatusPending marks a funding transaction awaiting arbitration.
	StatusPending = "pending"
	// StatusConfirmed marks a funding transaction whose balance credit was applied.
	StatusConfirmed = "confirmed"
	// StatusRejected marks a funding transaction declined by an admin.
	StatusRejected = "rejected"
	// StatusCompleted marks debit/credit records, durable the instant they are written.
	StatusCompleted = "completed"
)

// Wallet holds the coin balance for a single owner. One wallet per user,
// created lazily on first access.
type Wallet struct {
	OwnerID      string
	BalanceCoins int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Transaction is one entry in the append-only per-wallet log. Fund entries are
// mutated exactly once, by arbitration; debit/credit entries are immutable.
type Transaction struct {
	ID             string
	WalletOwnerID  string
	Kind           string
	Status         string
	AmountCoins    int64
	AmountCurrency int64
	ProofImageRef  string
	ReasonRef      string
	AdminID        string
	AdminNotes     string
	CreatedAt      time.Time
	ResolvedAt     *time.Time
}

// CoinsForCurrency converts currency units to coins. Integer division: any
// remainder below one coin is dropped, matching the platform's funding rules.
func CoinsForCurrency(amountCurrency int64) int64 {
	return amountCurrency / CoinRate
}
