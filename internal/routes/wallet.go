package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fundilink/fundilink/internal/funding"
	"github.com/fundilink/fundilink/internal/wallet"
)

// RegisterWalletRoutes wires the authenticated owner's wallet endpoints.
func RegisterWalletRoutes(r fiber.Router, h *wallet.Handler, fh *funding.Handler) {
	group := r.Group("/wallet")
	group.Get("/balance", h.Balance)
	group.Get("/history", h.History)
	group.Post("/funding", fh.Submit)
}
