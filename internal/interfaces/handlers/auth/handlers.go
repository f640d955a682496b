package auth

import (
	"context"

	authsvc "github.com/khawli/akar/internal/application/auth"
	"github.com/khawli/akar/internal/middleware"
	"github.com/khawli/akar/internal/pkg/response"
	"github.com/khawli/akar/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// Handlers holds dependencies for auth endpoints.
type Handlers struct {
	Service    *authsvc.Service
	UserFinder authsvc.UserFinder
	Rdb        *redis.Client
	Config     middleware.SessionConfig
}

type SignupRequest struct {
	OrgName  string `json:"orgName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup POST /api/v1/auth/signup — create org + first user, open a session.
func (h *Handlers) Signup(c *fiber.Ctx) error {
	var req SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "VALIDATION", "Invalid request body", fiber.StatusBadRequest, nil)
	}
	if req.OrgName == "" || req.Email == "" || req.Password == "" {
		return response.Error(c, "VALIDATION", "orgName, email and password are required", fiber.StatusBadRequest, nil)
	}
	if !validation.IsValidEmail(req.Email) {
		return response.Error(c, "VALIDATION", "Invalid email format", fiber.StatusBadRequest, nil)
	}
	if !validation.IsValidPassword(req.Password) {
		return response.Error(c, "VALIDATION", "Password must be at least 8 characters", fiber.StatusBadRequest, nil)
	}

	result, err := h.Service.Signup(c.Context(), authsvc.SignupInput{
		OrgName:  req.OrgName,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch err {
		case authsvc.ErrEmailAlreadyUsed:
			return response.Error(c, "EMAIL_ALREADY_USED", err.Error(), fiber.StatusConflict, nil)
		default:
			return response.Error(c, "SERVER_ERROR", "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}

	orgIDStr := result.Org.OrgID.String()
	h.openSession(c, middleware.SessionUser{
		UserID: result.User.UserID.String(),
		Email:  result.User.Email,
		OrgID:  &orgIDStr,
	})

	return response.SuccessCreated(c, "Signup successful", fiber.Map{
		"user": fiber.Map{
			"user_id": result.User.UserID.String(),
			"email":   result.User.Email,
			"org_id":  orgIDStr,
		},
		"org": fiber.Map{
			"org_id": orgIDStr,
			"name":   result.Org.Name,
		},
	}, nil)
}

// Login POST /api/v1/auth/login — authenticate, regenerate session, set cookie.
func (h *Handlers) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "VALIDATION", "Email and password are required", fiber.StatusBadRequest, nil)
	}
	if req.Email == "" || req.Password == "" {
		return response.Error(c, "VALIDATION", "Email and password are required", fiber.StatusBadRequest, nil)
	}

	user, err := h.UserFinder.FindByEmailAndPassword(req.Email, req.Password)
	if err != nil {
		switch err {
		case authsvc.ErrEmailPasswordRequired:
			return response.Error(c, "VALIDATION", err.Error(), fiber.StatusBadRequest, nil)
		case authsvc.ErrInvalidCredentials:
			return response.Error(c, "INVALID_CREDENTIALS", err.Error(), fiber.StatusUnauthorized, nil)
		case authsvc.ErrNoOrg:
			return response.Error(c, "NO_ORG", err.Error(), fiber.StatusForbidden, nil)
		default:
			return response.Error(c, "SERVER_ERROR", "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}

	var orgIDStr *string
	if user.OrgID != nil {
		s := user.OrgID.String()
		orgIDStr = &s
	}
	h.openSession(c, middleware.SessionUser{
		UserID: user.UserID.String(),
		Email:  user.Email,
		OrgID:  orgIDStr,
	})

	return response.Success(c, "Login successful", fiber.Map{
		"user": fiber.Map{
			"user_id": user.UserID.String(),
			"email":   user.Email,
			"org_id":  orgIDStr,
		},
	}, nil)
}

// Me GET /api/v1/auth/me — return the current session user.
func (h *Handlers) Me(c *fiber.Ctx) error {
	user, err := authsvc.VerifyUser(middleware.GetUser(c))
	if err != nil {
		return response.Error(c, "UNAUTHENTICATED", "Not authenticated", fiber.StatusUnauthorized, nil)
	}
	return response.Success(c, "Authenticated", fiber.Map{"user": user}, nil)
}

// Logout POST /api/v1/auth/logout — delete the session key, clear the cookie.
func (h *Handlers) Logout(c *fiber.Ctx) error {
	sessionID := middleware.GetSessionID(c)
	if sessionID != "" && h.Rdb != nil {
		_ = h.Rdb.Del(context.Background(), middleware.SessionRedisPrefix+sessionID).Err()
	}
	middleware.DestroySession(c)
	c.Locals("session_id", "")

	cookie := middleware.SessionCookieConfig(h.Config)
	cookie.Value = ""
	cookie.MaxAge = -1
	c.Cookie(&cookie)

	return response.Success(c, "Logged out", fiber.Map{}, nil)
}

// openSession regenerates the session id, stores the user and sets the cookie.
// Regeneration on every login keeps pre-auth session ids from being promoted.
func (h *Handlers) openSession(c *fiber.Ctx, user middleware.SessionUser) {
	sessionID := middleware.RegenerateSessionID(c)
	middleware.SetSessionUser(c, user)

	cookie := middleware.SessionCookieConfig(h.Config)
	cookie.Value = sessionID
	c.Cookie(&cookie)
}
