package api

import (
	"context"
	"errors"
	"time"

	"github.com/bilgisen/newz/internal/service"
	"github.com/gofiber/fiber/v2"
)

// Pinger reports whether the backing store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

const healthTimeout = 2 * time.Second

// HealthCheck handles GET /api/v1/health
func HealthCheck(serviceName, driver string, store Pinger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		status, code := "ok", fiber.StatusOK

		if store != nil {
			ctx, cancel := context.WithTimeout(c.Context(), healthTimeout)
			defer cancel()
			if err := store.Ping(ctx); err != nil {
				status, code = "unavailable", fiber.StatusServiceUnavailable
			}
		}

		return c.Status(code).JSON(fiber.Map{
			"status":  status,
			"service": serviceName,
			"store":   driver,
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	}
}

// notFound turns a service not-found error into a 404 with msg
func notFound(err error, msg string) error {
	if errors.Is(err, service.ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, msg)
	}
	return err
}

func pathID(c *fiber.Ctx, name string) (int, error) {
	id, err := c.ParamsInt(name)
	if err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Invalid "+name)
	}
	return id, nil
}
