package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fundilink/fundilink/internal/interest"
)

// RegisterInterestRoutes wires per-interest transitions and the caller's own
// interest list.
func RegisterInterestRoutes(r fiber.Router, h *interest.Handler) {
	r.Get("/interests/mine", h.ListMine)
	group := r.Group("/interests/:interestId")
	group.Post("/share-contact", h.ShareContact)
	group.Post("/pay", h.Pay)
}
