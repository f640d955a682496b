package org

import (
	orgsvc "github.com/khawli/akar/internal/application/org"
	"github.com/khawli/akar/internal/domain"
	"github.com/khawli/akar/internal/middleware"
	"github.com/khawli/akar/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *orgsvc.Service
}

// GetSettings GET /api/v1/settings/org — landlord profile of the caller's org.
func (h *Handlers) GetSettings(c *fiber.Ctx) error {
	actor := middleware.SessionActor(c)
	profile, err := h.Service.GetProfile(c.Context(), actor.OrgID)
	if err != nil {
		switch err {
		case orgsvc.ErrOrgNotFound:
			return response.Error(c, "ORG_NOT_FOUND", err.Error(), fiber.StatusNotFound, nil)
		default:
			return response.Error(c, "SERVER_ERROR", "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}
	return response.Success(c, "Organization settings fetched", fiber.Map{"landlordProfile": profile}, nil)
}

type UpdateSettingsRequest struct {
	LandlordProfile domain.LandlordProfileData `json:"landlordProfile"`
}

// UpdateSettings PUT /api/v1/settings/org — replace the landlord profile.
func (h *Handlers) UpdateSettings(c *fiber.Ctx) error {
	actor := middleware.SessionActor(c)
	var req UpdateSettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "VALIDATION", "Invalid request body", fiber.StatusBadRequest, nil)
	}
	profile, err := h.Service.UpdateProfile(c.Context(), actor.OrgID, req.LandlordProfile)
	if err != nil {
		switch err {
		case orgsvc.ErrOrgNotFound:
			return response.Error(c, "ORG_NOT_FOUND", err.Error(), fiber.StatusNotFound, nil)
		default:
			return response.Error(c, "SERVER_ERROR", "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}
	return response.Success(c, "Organization settings updated", fiber.Map{"landlordProfile": profile}, nil)
}
