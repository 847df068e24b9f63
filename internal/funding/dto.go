package funding

import (
	"time"

	"github.com/fundilink/fundilink/internal/wallet"
)

// TransactionResponse represents the API shape of a funding transaction.
type TransactionResponse struct {
	ID             string     `json:"id"`
	OwnerID        string     `json:"owner_id"`
	Status         string     `json:"status"`
	AmountCurrency int64      `json:"amount_currency"`
	AmountCoins    int64      `json:"amount_coins"`
	ProofImageRef  string     `json:"proof_image_ref"`
	AdminID        string     `json:"admin_id,omitempty"`
	AdminNotes     string     `json:"admin_notes,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	ResolvedAt     *time.Time `json:"resolved_at,omitempty"`
}

// ResolveRequest carries the admin's notes on a confirm/reject decision.
type ResolveRequest struct {
	Notes string `json:"notes"`
}

func toResponse(txn wallet.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:             txn.ID,
		OwnerID:        txn.WalletOwnerID,
		Status:         txn.Status,
		AmountCurrency: txn.AmountCurrency,
		AmountCoins:    txn.AmountCoins,
		ProofImageRef:  txn.ProofImageRef,
		AdminID:        txn.AdminID,
		AdminNotes:     txn.AdminNotes,
		CreatedAt:      txn.CreatedAt,
		ResolvedAt:     txn.ResolvedAt,
	}
}
