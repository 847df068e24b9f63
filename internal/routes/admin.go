package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fundilink/fundilink/internal/funding"
	"github.com/fundilink/fundilink/internal/interest"
)

// RegisterAdminRoutes wires the arbitration surface: the pending funding
// queue, confirm/reject decisions and the job-closed expiry hook.
func RegisterAdminRoutes(r fiber.Router, fh *funding.Handler, ih *interest.Handler) {
	r.Get("/funding/pending", fh.ListPending)
	r.Post("/funding/:txnId/confirm", fh.Confirm)
	r.Post("/funding/:txnId/reject", fh.Reject)
	r.Post("/jobs/:jobId/expire-interests", ih.ExpireForJob)
}
