package installments

import (
	instsvc "github.com/khawli/akar/internal/application/installments"
	"github.com/khawli/akar/internal/middleware"
	"github.com/khawli/akar/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *instsvc.Service
}

// Pay POST /api/v1/installments/:id/pay — UNPAID → PAID, once.
func (h *Handlers) Pay(c *fiber.Ctx) error {
	actor := middleware.SessionActor(c)
	installmentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "VALIDATION", "Invalid installment id", fiber.StatusBadRequest, nil)
	}
	inst, err := h.Service.MarkPaid(c.Context(), actor.OrgID, installmentID)
	if err != nil {
		switch err {
		case instsvc.ErrInstallmentNotFound:
			return response.Error(c, "INSTALLMENT_NOT_FOUND", err.Error(), fiber.StatusNotFound, nil)
		case instsvc.ErrAlreadyPaid:
			return response.Error(c, "INSTALLMENT_ALREADY_PAID", err.Error(), fiber.StatusConflict, nil)
		default:
			return response.Error(c, "SERVER_ERROR", "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}
	return response.Success(c, "Installment marked as paid", inst, nil)
}
