package tenants

import (
	tenantsvc "github.com/khawli/akar/internal/application/tenants"
	"github.com/khawli/akar/internal/middleware"
	"github.com/khawli/akar/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *tenantsvc.Service
}

// Create POST /api/v1/tenants
func (h *Handlers) Create(c *fiber.Ctx) error {
	actor := middleware.SessionActor(c)
	var in tenantsvc.CreateTenantInput
	if err := c.BodyParser(&in); err != nil {
		return response.Error(c, "VALIDATION", "Invalid request body", fiber.StatusBadRequest, nil)
	}
	tenant, err := h.Service.CreateTenant(c.Context(), actor.OrgID, in)
	if err != nil {
		switch err {
		case tenantsvc.ErrFullNameRequired:
			return response.Error(c, "VALIDATION", "full_name is required", fiber.StatusBadRequest, nil)
		default:
			return response.Error(c, "SERVER_ERROR", "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}
	return response.SuccessCreated(c, "Tenant created", tenant, nil)
}

// List GET /api/v1/tenants
func (h *Handlers) List(c *fiber.Ctx) error {
	actor := middleware.SessionActor(c)
	tenants, err := h.Service.ListTenants(c.Context(), actor.OrgID)
	if err != nil {
		return response.Error(c, "SERVER_ERROR", "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Tenants fetched", tenants, nil)
}

// Get GET /api/v1/tenants/:id
func (h *Handlers) Get(c *fiber.Ctx) error {
	actor := middleware.SessionActor(c)
	tenantID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "VALIDATION", "Invalid tenant id", fiber.StatusBadRequest, nil)
	}
	tenant, err := h.Service.GetTenant(c.Context(), actor.OrgID, tenantID)
	if err != nil {
		switch err {
		case tenantsvc.ErrTenantNotFound:
			return response.Error(c, "TENANT_NOT_FOUND", err.Error(), fiber.StatusNotFound, nil)
		default:
			return response.Error(c, "SERVER_ERROR", "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}
	return response.Success(c, "Tenant fetched", tenant, nil)
}

// Update PUT /api/v1/tenants/:id
func (h *Handlers) Update(c *fiber.Ctx) error {
	actor := middleware.SessionActor(c)
	tenantID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "VALIDATION", "Invalid tenant id", fiber.StatusBadRequest, nil)
	}
	var fields map[string]interface{}
	if err := c.BodyParser(&fields); err != nil {
		return response.Error(c, "VALIDATION", "Invalid request body", fiber.StatusBadRequest, nil)
	}
	tenant, err := h.Service.UpdateTenant(c.Context(), actor.OrgID, tenantID, fields)
	if err != nil {
		switch err {
		case tenantsvc.ErrTenantNotFound:
			return response.Error(c, "TENANT_NOT_FOUND", err.Error(), fiber.StatusNotFound, nil)
		default:
			if err.Error() == "No valid fields to update" {
				return response.Error(c, "VALIDATION", err.Error(), fiber.StatusBadRequest, nil)
			}
			return response.Error(c, "SERVER_ERROR", "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}
	return response.Success(c, "Tenant updated", tenant, nil)
}

// Delete DELETE /api/v1/tenants/:id
func (h *Handlers) Delete(c *fiber.Ctx) error {
	actor := middleware.SessionActor(c)
	tenantID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "VALIDATION", "Invalid tenant id", fiber.StatusBadRequest, nil)
	}
	if err := h.Service.DeleteTenant(c.Context(), actor.OrgID, tenantID); err != nil {
		switch err {
		case tenantsvc.ErrTenantNotFound:
			return response.Error(c, "TENANT_NOT_FOUND", err.Error(), fiber.StatusNotFound, nil)
		default:
			return response.Error(c, "SERVER_ERROR", "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}
	return response.Success(c, "Tenant deleted", fiber.Map{"tenant_id": tenantID}, nil)
}
