package properties

import (
	"bufio"
	"fmt"
	"io"

	"github.com/khawli/akar/internal/application/exports"
	propsvc "github.com/khawli/akar/internal/application/properties"
	"github.com/khawli/akar/internal/middleware"
	"github.com/khawli/akar/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *propsvc.Service
	Exports *exports.Service
}

// Create POST /api/v1/properties
func (h *Handlers) Create(c *fiber.Ctx) error {
	actor := middleware.SessionActor(c)
	var in propsvc.CreatePropertyInput
	if err := c.BodyParser(&in); err != nil {
		return response.Error(c, "VALIDATION", "Invalid request body", fiber.StatusBadRequest, nil)
	}
	property, err := h.Service.CreateProperty(c.Context(), actor.OrgID, in)
	if err != nil {
		switch err {
		case propsvc.ErrLabelRequired:
			return response.Error(c, "VALIDATION", "label must be at least 2 characters", fiber.StatusBadRequest, nil)
		default:
			return response.Error(c, "SERVER_ERROR", "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}
	return response.SuccessCreated(c, "Property created", property, nil)
}

// List GET /api/v1/properties
func (h *Handlers) List(c *fiber.Ctx) error {
	actor := middleware.SessionActor(c)
	properties, err := h.Service.ListProperties(c.Context(), actor.OrgID)
	if err != nil {
		return response.Error(c, "SERVER_ERROR", "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Properties fetched", properties, nil)
}

// Get GET /api/v1/properties/:id
func (h *Handlers) Get(c *fiber.Ctx) error {
	actor := middleware.SessionActor(c)
	propertyID, err := parseID(c)
	if err != nil {
		return response.Error(c, "VALIDATION", "Invalid property id", fiber.StatusBadRequest, nil)
	}
	property, err := h.Service.GetProperty(c.Context(), actor.OrgID, propertyID)
	if err != nil {
		switch err {
		case propsvc.ErrPropertyNotFound:
			return response.Error(c, "PROPERTY_NOT_FOUND", err.Error(), fiber.StatusNotFound, nil)
		default:
			return response.Error(c, "SERVER_ERROR", "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}
	return response.Success(c, "Property fetched", property, nil)
}

// Update PUT /api/v1/properties/:id
func (h *Handlers) Update(c *fiber.Ctx) error {
	actor := middleware.SessionActor(c)
	propertyID, err := parseID(c)
	if err != nil {
		return response.Error(c, "VALIDATION", "Invalid property id", fiber.StatusBadRequest, nil)
	}
	var fields map[string]interface{}
	if err := c.BodyParser(&fields); err != nil {
		return response.Error(c, "VALIDATION", "Invalid request body", fiber.StatusBadRequest, nil)
	}
	property, err := h.Service.UpdateProperty(c.Context(), actor.OrgID, propertyID, fields)
	if err != nil {
		switch err {
		case propsvc.ErrPropertyNotFound:
			return response.Error(c, "PROPERTY_NOT_FOUND", err.Error(), fiber.StatusNotFound, nil)
		default:
			if err.Error() == "No valid fields to update" {
				return response.Error(c, "VALIDATION", err.Error(), fiber.StatusBadRequest, nil)
			}
			return response.Error(c, "SERVER_ERROR", "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}
	return response.Success(c, "Property updated", property, nil)
}

// Delete DELETE /api/v1/properties/:id
func (h *Handlers) Delete(c *fiber.Ctx) error {
	actor := middleware.SessionActor(c)
	propertyID, err := parseID(c)
	if err != nil {
		return response.Error(c, "VALIDATION", "Invalid property id", fiber.StatusBadRequest, nil)
	}
	if err := h.Service.DeleteProperty(c.Context(), actor.OrgID, propertyID); err != nil {
		switch err {
		case propsvc.ErrPropertyNotFound:
			return response.Error(c, "PROPERTY_NOT_FOUND", err.Error(), fiber.StatusNotFound, nil)
		default:
			return response.Error(c, "SERVER_ERROR", "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}
	return response.Success(c, "Property deleted", fiber.Map{"property_id": propertyID}, nil)
}

// CreateUnit POST /api/v1/properties/:id/units
func (h *Handlers) CreateUnit(c *fiber.Ctx) error {
	actor := middleware.SessionActor(c)
	propertyID, err := parseID(c)
	if err != nil {
		return response.Error(c, "VALIDATION", "Invalid property id", fiber.StatusBadRequest, nil)
	}
	var in propsvc.CreateUnitInput
	if err := c.BodyParser(&in); err != nil {
		return response.Error(c, "VALIDATION", "Invalid request body", fiber.StatusBadRequest, nil)
	}
	unit, err := h.Service.CreateUnit(c.Context(), actor.OrgID, propertyID, in)
	if err != nil {
		switch err {
		case propsvc.ErrLabelRequired:
			return response.Error(c, "VALIDATION", "label is required", fiber.StatusBadRequest, nil)
		case propsvc.ErrPropertyNotFound:
			return response.Error(c, "PROPERTY_NOT_FOUND", err.Error(), fiber.StatusNotFound, nil)
		default:
			return response.Error(c, "SERVER_ERROR", "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}
	return response.SuccessCreated(c, "Unit created", unit, nil)
}

// ListUnits GET /api/v1/properties/:id/units
func (h *Handlers) ListUnits(c *fiber.Ctx) error {
	actor := middleware.SessionActor(c)
	propertyID, err := parseID(c)
	if err != nil {
		return response.Error(c, "VALIDATION", "Invalid property id", fiber.StatusBadRequest, nil)
	}
	units, err := h.Service.ListUnits(c.Context(), actor.OrgID, propertyID)
	if err != nil {
		switch err {
		case propsvc.ErrPropertyNotFound:
			return response.Error(c, "PROPERTY_NOT_FOUND", err.Error(), fiber.StatusNotFound, nil)
		default:
			return response.Error(c, "SERVER_ERROR", "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}
	return response.Success(c, "Units fetched", units, nil)
}

// Export GET /api/v1/properties/:id/export — streamed zip of every lease
// dossier under the property. Headers are written before the body, so data
// loading errors still produce a clean JSON 404.
func (h *Handlers) Export(c *fiber.Ctx) error {
	actor := middleware.SessionActor(c)
	propertyID, err := parseID(c)
	if err != nil {
		return response.Error(c, "VALIDATION", "Invalid property id", fiber.StatusBadRequest, nil)
	}
	name, stream, err := h.Exports.PropertyArchive(c.Context(), actor.OrgID, propertyID)
	if err != nil {
		switch err {
		case exports.ErrPropertyNotFound:
			return response.Error(c, "PROPERTY_NOT_FOUND", err.Error(), fiber.StatusNotFound, nil)
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

func parseID(c *fiber.Ctx) (uuid.UUID, error) {
	return uuid.Parse(c.Params("id"))
}
