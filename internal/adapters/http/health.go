package http

import (
	"context"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
)

// HealthHandler returns a basic liveness check.
func HealthHandler(deps *Dependencies) fiber.Handler {
	startedAt := time.Now()
	version := deps.Version
	if version == "" {
		version = "dev"
	}

	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "healthy",
			"uptime":  time.Since(startedAt).String(),
			"version": version,
		})
	}
}

// ReadyHandler checks the map credential, the gallery and the shared limiter store.
func ReadyHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 3*time.Second)
		defer cancel()

		checks := make(map[string]string)
		allOK := true

		// Primary map provider credential
		if deps.StaticMaps != nil && deps.StaticMaps.Configured() {
			checks["mapbox"] = "ok"
		} else {
			checks["mapbox"] = "not configured"
			allOK = false
		}

		// Gallery metadata
		if deps.Gallery != nil {
			if items, err := deps.Gallery.List(ctx); err != nil {
				checks["gallery"] = "error: " + err.Error()
				allOK = false
			} else {
				checks["gallery"] = "ok (" + strconv.Itoa(len(items)) + " items)"
			}
		} else {
			checks["gallery"] = "not configured"
			allOK = false
		}

		// Valkey limiter storage
		if deps.Limiter != nil {
			if err := deps.Limiter.Ping(ctx); err != nil {
				checks["valkey"] = "error: " + err.Error()
				allOK = false
			} else {
				checks["valkey"] = "ok"
			}
		} else {
			checks["valkey"] = "not configured"
		}

		status := "ready"
		code := fiber.StatusOK
		if !allOK {
			status = "not ready"
			code = fiber.StatusServiceUnavailable
		}

		return c.Status(code).JSON(fiber.Map{
			"status": status,
			"checks": checks,
		})
	}
}
