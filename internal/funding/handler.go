package funding

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/fundilink/fundilink/internal/wallet"
)

// Handler exposes HTTP endpoints for funding submission and arbitration.
type Handler struct {
	service *Service
}

// NewHandler constructs a funding handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Submit accepts a multipart form with an amount and a proof image and records
// a pending funding transaction for the authenticated owner.
func (h *Handler) Submit(c *fiber.Ctx) error {
	ownerID, _ := c.Locals("user_id").(string)
	if ownerID == "" {
		return fiber.NewError(http.StatusUnauthorized, "unauthorized")
	}

	amount, err := strconv.ParseInt(c.FormValue("amount_currency"), 10, 64)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "amount_currency must be an integer")
	}

	file, err := c.FormFile("proof")
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "proof image is required")
	}
	f, err := file.Open()
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "could not read proof image")
	}
	defer f.Close()

	txn, err := h.service.Submit(c.UserContext(), SubmitInput{
		OwnerID:          ownerID,
		AmountCurrency:   amount,
		ProofFilename:    file.Filename,
		ProofContentType: file.Header.Get(fiber.HeaderContentType),
		ProofSize:        file.Size,
		Proof:            f,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrAmountBelowMinimum),
			errors.Is(err, ErrUnsupportedProofType),
			errors.Is(err, ErrProofTooLarge):
			return fiber.NewError(http.StatusUnprocessableEntity, err.Error())
		default:
			return fiber.NewError(http.StatusInternalServerError, err.Error())
		}
	}
	return c.Status(http.StatusCreated).JSON(toResponse(txn))
}

// ListPending returns the admin review queue.
func (h *Handler) ListPending(c *fiber.Ctx) error {
	txns, err := h.service.ListPending(c.UserContext())
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	out := make([]TransactionResponse, 0, len(txns))
	for _, txn := range txns {
		out = append(out, toResponse(txn))
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"pending": out})
}

// Confirm applies an admin confirmation: credit plus status flip.
func (h *Handler) Confirm(c *fiber.Ctx) error {
	return h.resolve(c, true)
}

// Reject applies an admin rejection: status flip, no balance change.
func (h *Handler) Reject(c *fiber.Ctx) error {
	return h.resolve(c, false)
}

func (h *Handler) resolve(c *fiber.Ctx, confirm bool) error {
	adminID, _ := c.Locals("user_id").(string)
	if adminID == "" {
		return fiber.NewError(http.StatusUnauthorized, "unauthorized")
	}
	txnID := c.Params("txnId")

	var req ResolveRequest
	if err := c.BodyParser(&req); err != nil && !errors.Is(err, fiber.ErrUnprocessableEntity) {
		req.Notes = ""
	}

	var (
		txn wallet.Transaction
		err error
	)
	if confirm {
		txn, err = h.service.Confirm(c.UserContext(), txnID, adminID, req.Notes)
	} else {
		txn, err = h.service.Reject(c.UserContext(), txnID, adminID, req.Notes)
	}
	if err != nil {
		switch {
		case errors.Is(err, wallet.ErrAlreadyResolved):
			// Surface who resolved it and when so the admin UI can explain.
			return c.Status(http.StatusConflict).JSON(fiber.Map{
				"error":       "already resolved",
				"transaction": toResponse(txn),
			})
		case errors.Is(err, wallet.ErrTransactionNotFound):
			return fiber.NewError(http.StatusNotFound, err.Error())
		default:
			return fiber.NewError(http.StatusInternalServerError, err.Error())
		}
	}
	return c.Status(http.StatusOK).JSON(toResponse(txn))
}
