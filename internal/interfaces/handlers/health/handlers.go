package health

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Handlers holds dependencies for health endpoints.
type Handlers struct {
	DB  *gorm.DB
	Rdb *redis.Client
}

// JSON GET /api/v1/health — liveness plus dependency checks.
func (h *Handlers) JSON(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	deps := fiber.Map{}
	status := "ok"

	if h.DB != nil {
		if sqlDB, err := h.DB.DB(); err == nil && sqlDB.PingContext(ctx) == nil {
			deps["database"] = "up"
		} else {
			deps["database"] = "down"
			status = "degraded"
		}
	}
	if h.Rdb != nil {
		if err := h.Rdb.Ping(ctx).Err(); err == nil {
			deps["redis"] = "up"
		} else {
			deps["redis"] = "down"
			status = "degraded"
		}
	}

	return c.JSON(fiber.Map{
		"service":      "akar-api",
		"status":       status,
		"time":         time.Now().UTC().Format(time.RFC3339),
		"dependencies": deps,
	})
}
