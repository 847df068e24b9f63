package wallet

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes wallet HTTP endpoints for the authenticated owner.
type Handler struct {
	service *Service
}

// NewHandler builds a wallet HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type transactionResponse struct {
	ID             string     `json:"id"`
	Kind           string     `json:"kind"`
	Status         string     `json:"status"`
	AmountCoins    int64      `json:"amount_coins"`
	AmountCurrency int64      `json:"amount_currency"`
	ProofImageRef  string     `json:"proof_image_ref,omitempty"`
	AdminNotes     string     `json:"admin_notes,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	ResolvedAt     *time.Time `json:"resolved_at,omitempty"`
}

// Balance returns the authenticated owner's wallet balance.
func (h *Handler) Balance(c *fiber.Ctx) error {
	ownerID, _ := c.Locals("user_id").(string)
	if ownerID == "" {
		return fiber.NewError(http.StatusUnauthorized, "unauthorized")
	}
	w, err := h.service.Balance(c.UserContext(), ownerID)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"owner_id":      w.OwnerID,
		"balance_coins": w.BalanceCoins,
		"as_of":         time.Now().UTC(),
	})
}

// History returns the authenticated owner's transaction log, newest first.
func (h *Handler) History(c *fiber.Ctx) error {
	ownerID, _ := c.Locals("user_id").(string)
	if ownerID == "" {
		return fiber.NewError(http.StatusUnauthorized, "unauthorized")
	}
	txns, err := h.service.History(c.UserContext(), ownerID)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	out := make([]transactionResponse, 0, len(txns))
	for _, txn := range txns {
		out = append(out, transactionResponse{
			ID:             txn.ID,
			Kind:           txn.Kind,
			Status:         txn.Status,
			AmountCoins:    txn.AmountCoins,
			AmountCurrency: txn.AmountCurrency,
			ProofImageRef:  txn.ProofImageRef,
			AdminNotes:     txn.AdminNotes,
			CreatedAt:      txn.CreatedAt,
			ResolvedAt:     txn.ResolvedAt,
		})
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"transactions": out})
}
