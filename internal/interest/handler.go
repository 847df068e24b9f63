package interest

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/fundilink/fundilink/internal/job"
	"github.com/fundilink/fundilink/internal/wallet"
)

// Handler exposes interest lifecycle HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler builds an interest handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type interestResponse struct {
	ID                string     `json:"id"`
	JobID             string     `json:"job_id"`
	TradespersonID    string     `json:"tradesperson_id"`
	Status            string     `json:"status"`
	AccessFeeCoins    int64      `json:"access_fee_coins"`
	AccessFeeCurrency int64      `json:"access_fee_currency"`
	CreatedAt         time.Time  `json:"created_at"`
	ContactSharedAt   *time.Time `json:"contact_shared_at,omitempty"`
	PaymentMadeAt     *time.Time `json:"payment_made_at,omitempty"`
	ExpiredAt         *time.Time `json:"expired_at,omitempty"`
}

func toResponse(in Interest) interestResponse {
	return interestResponse{
		ID:                in.ID,
		JobID:             in.JobID,
		TradespersonID:    in.TradespersonID,
		Status:            in.Status,
		AccessFeeCoins:    in.AccessFeeCoins,
		AccessFeeCurrency: in.AccessFeeCurrency,
		CreatedAt:         in.CreatedAt,
		ContactSharedAt:   in.ContactSharedAt,
		PaymentMadeAt:     in.PaymentMadeAt,
		ExpiredAt:         in.ExpiredAt,
	}
}

// Express creates an interest for the authenticated tradesperson.
func (h *Handler) Express(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)
	jobID := c.Params("jobId")

	in, err := h.service.Express(c.UserContext(), jobID, userID)
	if err != nil {
		switch {
		case errors.Is(err, ErrDuplicateInterest):
			return fiber.NewError(http.StatusConflict, err.Error())
		case errors.Is(err, ErrJobClosed):
			return fiber.NewError(http.StatusConflict, err.Error())
		case errors.Is(err, job.ErrNotFound):
			return fiber.NewError(http.StatusNotFound, err.Error())
		default:
			return fiber.NewError(http.StatusInternalServerError, err.Error())
		}
	}
	return c.Status(http.StatusCreated).JSON(toResponse(in))
}

// ShareContact lets the owning homeowner move an interest to contact_shared.
func (h *Handler) ShareContact(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)
	interestID := c.Params("interestId")

	in, err := h.service.ShareContact(c.UserContext(), interestID, userID)
	if err != nil {
		switch {
		case errors.Is(err, ErrForbidden):
			return fiber.NewError(http.StatusForbidden, err.Error())
		case errors.Is(err, ErrInvalidTransition):
			return fiber.NewError(http.StatusConflict, err.Error())
		case errors.Is(err, ErrInterestNotFound):
			return fiber.NewError(http.StatusNotFound, err.Error())
		default:
			return fiber.NewError(http.StatusInternalServerError, err.Error())
		}
	}
	return c.Status(http.StatusOK).JSON(toResponse(in))
}

// Pay debits the access fee and returns the post-transition interest.
func (h *Handler) Pay(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)
	interestID := c.Params("interestId")

	in, err := h.service.PayForAccess(c.UserContext(), interestID, userID)
	if err != nil {
		switch {
		case errors.Is(err, ErrForbidden):
			return fiber.NewError(http.StatusForbidden, err.Error())
		case errors.Is(err, wallet.ErrInsufficientBalance):
			return fiber.NewError(http.StatusPaymentRequired, err.Error())
		case errors.Is(err, ErrInvalidTransition):
			return fiber.NewError(http.StatusConflict, err.Error())
		case errors.Is(err, ErrInterestNotFound):
			return fiber.NewError(http.StatusNotFound, err.Error())
		default:
			return fiber.NewError(http.StatusInternalServerError, err.Error())
		}
	}
	return c.Status(http.StatusOK).JSON(toResponse(in))
}

// Contact discloses job contact details to a paid tradesperson.
func (h *Handler) Contact(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)
	jobID := c.Params("jobId")

	contact, err := h.service.ContactDetails(c.UserContext(), jobID, userID)
	if err != nil {
		if errors.Is(err, ErrAccessDenied) {
			return fiber.NewError(http.StatusForbidden, err.Error())
		}
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusOK).JSON(contact)
}

// ListForJob lists interests on the homeowner's own job.
func (h *Handler) ListForJob(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)
	jobID := c.Params("jobId")

	interests, err := h.service.ListForJob(c.UserContext(), jobID, userID)
	if err != nil {
		switch {
		case errors.Is(err, ErrForbidden):
			return fiber.NewError(http.StatusForbidden, err.Error())
		case errors.Is(err, job.ErrNotFound):
			return fiber.NewError(http.StatusNotFound, err.Error())
		default:
			return fiber.NewError(http.StatusInternalServerError, err.Error())
		}
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"interests": toResponses(interests)})
}

// ListMine lists the authenticated tradesperson's interests.
func (h *Handler) ListMine(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)
	interests, err := h.service.ListForTradesperson(c.UserContext(), userID)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"interests": toResponses(interests)})
}

// ExpireForJob is the job-closed hook invoked by admin tooling.
func (h *Handler) ExpireForJob(c *fiber.Ctx) error {
	jobID := c.Params("jobId")
	count, err := h.service.ExpireForJob(c.UserContext(), jobID)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"expired": count})
}

func toResponses(interests []Interest) []interestResponse {
	out := make([]interestResponse, 0, len(interests))
	for _, in := range interests {
		out = append(out, toResponse(in))
	}
	return out
}
