package accessfee

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/fundilink/fundilink/internal/job"
)

// Handler exposes fee read/write endpoints.
type Handler struct {
	service *Service
	jobs    job.Directory
}

// NewHandler builds an access fee handler.
func NewHandler(service *Service, jobs job.Directory) *Handler {
	return &Handler{service: service, jobs: jobs}
}

type setFeeRequest struct {
	FeeCoins int64 `json:"fee_coins"`
}

// Get returns the current fee for a job.
func (h *Handler) Get(c *fiber.Ctx) error {
	jobID := c.Params("jobId")
	fee, err := h.service.Fee(c.UserContext(), jobID)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusOK).JSON(fee)
}

// Set updates the fee for a job. Only the job's homeowner or an admin may
// change it, and the value must sit within the configured bounds.
func (h *Handler) Set(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)
	role, _ := c.Locals("role").(string)
	jobID := c.Params("jobId")

	j, err := h.jobs.Lookup(c.UserContext(), jobID)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return fiber.NewError(http.StatusNotFound, err.Error())
		}
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	if j.HomeownerID != userID && role != "admin" {
		return fiber.NewError(http.StatusForbidden, "only the job owner or an admin can change the fee")
	}

	var req setFeeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if err := h.service.SetFee(c.UserContext(), jobID, req.FeeCoins); err != nil {
		if errors.Is(err, ErrFeeOutOfBounds) {
			return fiber.NewError(http.StatusUnprocessableEntity, err.Error())
		}
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	fee, err := h.service.Fee(c.UserContext(), jobID)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusOK).JSON(fee)
}
