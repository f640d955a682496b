package middleware

import (
	"github.com/khawli/akar/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const userLocal = "user"

// RequireAuth ensures a user is in the session. Returns 401 with the standard
// error format if not.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := c.Locals(userLocal)
		if user == nil {
			return response.Unauthorized(c, "Unauthorized")
		}
		return c.Next()
	}
}

// GetUser returns the session user from Locals (nil if not logged in).
func GetUser(c *fiber.Ctx) interface{} {
	return c.Locals(userLocal)
}

// Actor is the resolved caller: identity plus tenancy scope. OrgID is
// uuid.Nil for a user without an organization.
type Actor struct {
	UserID uuid.UUID
	Email  string
	OrgID  uuid.UUID
}

// SessionActor extracts the actor from the session user map. Returns nil if
// no valid user is in the session.
func SessionActor(c *fiber.Ctx) *Actor {
	m, ok := GetUser(c).(map[string]interface{})
	if !ok {
		return nil
	}
	userIDStr, _ := m["user_id"].(string)
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil
	}
	a := &Actor{UserID: userID}
	a.Email, _ = m["email"].(string)
	if o, ok := m["org_id"]; ok && o != nil {
		if s, ok := o.(string); ok {
			if orgID, err := uuid.Parse(s); err == nil {
				a.OrgID = orgID
			}
		}
	}
	return a
}

// RequireOrg ensures the authenticated user is attached to an organization.
// Every org-scoped route sits behind this; a valid login without an org gets
// 403 NO_ORG.
func RequireOrg() fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor := SessionActor(c)
		if actor == nil {
			return response.Unauthorized(c, "Unauthorized")
		}
		if actor.OrgID == uuid.Nil {
			return response.Error(c, "NO_ORG", "User is not attached to an organization", fiber.StatusForbidden, nil)
		}
		return c.Next()
	}
}
