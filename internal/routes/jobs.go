package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fundilink/fundilink/internal/accessfee"
	"github.com/fundilink/fundilink/internal/interest"
)

// RegisterJobRoutes wires the per-job surface: interest expression and
// listing, contact disclosure and the access fee. Expressing interest is
// restricted to tradespeople via the provided role gate.
func RegisterJobRoutes(r fiber.Router, ih *interest.Handler, fh *accessfee.Handler, tradespersonOnly fiber.Handler) {
	group := r.Group("/jobs/:jobId")
	if tradespersonOnly != nil {
		group.Post("/interests", tradespersonOnly, ih.Express)
	} else {
		group.Post("/interests", ih.Express)
	}
	group.Get("/interests", ih.ListForJob)
	group.Get("/contact", ih.Contact)
	group.Get("/fee", fh.Get)
	group.Put("/fee", fh.Set)
}
