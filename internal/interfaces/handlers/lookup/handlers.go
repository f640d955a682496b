package lookup

import (
	propsvc "github.com/khawli/akar/internal/application/properties"
	tenantsvc "github.com/khawli/akar/internal/application/tenants"
	"github.com/khawli/akar/internal/middleware"
	"github.com/khawli/akar/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Properties *propsvc.Service
	Tenants    *tenantsvc.Service
}

// Get GET /api/v1/lookup — the org's properties (with units) and tenants in
// one read, for form pickers.
func (h *Handlers) Get(c *fiber.Ctx) error {
	actor := middleware.SessionActor(c)
	properties, err := h.Properties.ListProperties(c.Context(), actor.OrgID)
	if err != nil {
		return response.Error(c, "SERVER_ERROR", "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	tenants, err := h.Tenants.ListTenants(c.Context(), actor.OrgID)
	if err != nil {
		return response.Error(c, "SERVER_ERROR", "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Lookup fetched", fiber.Map{
		"properties": properties,
		"tenants":    tenants,
	}, nil)
}
