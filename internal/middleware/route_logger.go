package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// RouteLogger writes one completion line per request: method, path, status,
// duration and, once a session is resolved, the acting organization.
func RouteLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		evt := log.Info()
		status := c.Response().StatusCode()
		if err != nil || status >= fiber.StatusInternalServerError {
			evt = log.Error().Err(err)
		}
		evt = evt.
			Str("request_id", GetTraceID(c)).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Int64("duration_ms", time.Since(start).Milliseconds())
		if actor := SessionActor(c); actor != nil && actor.OrgID != uuid.Nil {
			evt = evt.Str("org_id", actor.OrgID.String())
		}
		evt.Msg("request completed")
		return err
	}
}
