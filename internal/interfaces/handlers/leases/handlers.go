package leases

import (
	"bufio"
	"fmt"
	"io"
	"time"

	"github.com/khawli/akar/internal/application/exports"
	leasesvc "github.com/khawli/akar/internal/application/leases"
	"github.com/khawli/akar/internal/middleware"
	"github.com/khawli/akar/internal/pkg/response"
	"github.com/khawli/akar/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *leasesvc.Service
	Exports *exports.Service
}

type CreateLeaseRequest struct {
	UnitID     string `json:"unit_id"`
	TenantID   string `json:"tenant_id"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	RentAmount int64  `json:"rent_amount"`
	Currency   string `json:"currency"`
	PaymentDay int    `json:"payment_day"`
}

// Create POST /api/v1/leases — lease plus its whole installment schedule.
func (h *Handlers) Create(c *fiber.Ctx) error {
	actor := middleware.SessionActor(c)
	var req CreateLeaseRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "VALIDATION", "Invalid request body", fiber.StatusBadRequest, nil)
	}
	unitID, err := uuid.Parse(req.UnitID)
	if err != nil {
		return response.Error(c, "VALIDATION", "Invalid unit_id", fiber.StatusBadRequest, nil)
	}
	tenantID, err := uuid.Parse(req.TenantID)
	if err != nil {
		return response.Error(c, "VALIDATION", "Invalid tenant_id", fiber.StatusBadRequest, nil)
	}
	startDate, err := validation.ParseISODate(req.StartDate)
	if err != nil {
		return response.Error(c, "INVALID_START_DATE", "Invalid start_date, expected YYYY-MM-DD", fiber.StatusBadRequest, nil)
	}
	var endDate *time.Time
	if req.EndDate != "" {
		d, err := validation.ParseISODate(req.EndDate)
		if err != nil {
			return response.Error(c, "INVALID_END_DATE", "Invalid end_date, expected YYYY-MM-DD", fiber.StatusBadRequest, nil)
		}
		endDate = &d
	}

	lease, err := h.Service.CreateLease(c.Context(), actor.OrgID, leasesvc.CreateLeaseInput{
		UnitID:     unitID,
		TenantID:   tenantID,
		StartDate:  startDate,
		EndDate:    endDate,
		RentAmount: req.RentAmount,
		Currency:   req.Currency,
		PaymentDay: req.PaymentDay,
	})
	if err != nil {
		switch err {
		case leasesvc.ErrInvalidRentAmount, leasesvc.ErrInvalidStartDate, leasesvc.ErrInvalidEndDate:
			return response.Error(c, "VALIDATION", err.Error(), fiber.StatusBadRequest, nil)
		case leasesvc.ErrUnitNotFound:
			return response.Error(c, "UNIT_NOT_FOUND", err.Error(), fiber.StatusNotFound, nil)
		case leasesvc.ErrTenantNotFound:
			return response.Error(c, "TENANT_NOT_FOUND", err.Error(), fiber.StatusNotFound, nil)
		case leasesvc.ErrUnitHasActiveLease:
			return response.Error(c, "UNIT_ALREADY_HAS_ACTIVE_LEASE", err.Error(), fiber.StatusConflict, nil)
		default:
			return response.Error(c, "SERVER_ERROR", "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}
	return response.SuccessCreated(c, "Lease created", lease, nil)
}

// List GET /api/v1/leases
func (h *Handlers) List(c *fiber.Ctx) error {
	actor := middleware.SessionActor(c)
	leases, err := h.Service.ListLeases(c.Context(), actor.OrgID)
	if err != nil {
		return response.Error(c, "SERVER_ERROR", "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Leases fetched", leases, nil)
}

// Get GET /api/v1/leases/:id — lease with unit, property, tenant and the
// installment schedule ordered by due date.
func (h *Handlers) Get(c *fiber.Ctx) error {
	actor := middleware.SessionActor(c)
	leaseID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "VALIDATION", "Invalid lease id", fiber.StatusBadRequest, nil)
	}
	lease, err := h.Service.GetLease(c.Context(), actor.OrgID, leaseID)
	if err != nil {
		switch err {
		case leasesvc.ErrLeaseNotFound:
			return response.Error(c, "LEASE_NOT_FOUND", err.Error(), fiber.StatusNotFound, nil)
		default:
			return response.Error(c, "SERVER_ERROR", "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}
	return response.Success(c, "Lease fetched", lease, nil)
}

// Export GET /api/v1/leases/:id/export — streamed zip dossier.
func (h *Handlers) Export(c *fiber.Ctx) error {
	actor := middleware.SessionActor(c)
	leaseID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "VALIDATION", "Invalid lease id", fiber.StatusBadRequest, nil)
	}
	name, stream, err := h.Exports.LeaseArchive(c.Context(), actor.OrgID, leaseID)
	if err != nil {
		switch err {
		case exports.ErrLeaseNotFound:
			return response.Error(c, "LEASE_NOT_FOUND", err.Error(), fiber.StatusNotFound, nil)
		default:
			return response.Error(c, "SERVER_ERROR", "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}

	c.Set(fiber.HeaderContentType, "application/zip")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
	c.Set(fiber.HeaderCacheControl, "private, max-age=0, no-store")
	ctx := c.Context()
	ctx.SetBodyStreamWriter(func(w *bufio.Writer) {
		defer stream.Close()
		if _, err := io.Copy(w, stream); err != nil {
			// Break the connection so the client sees a failed transfer,
			// not a cleanly terminated truncated archive.
			if conn := ctx.Conn(); conn != nil {
				conn.Close()
			}
		}
	})
	return nil
}
