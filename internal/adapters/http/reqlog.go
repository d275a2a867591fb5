package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/samirrijal/skyatlas/internal/pkg/logging"
)

// RequestIDLogMiddleware puts a logger carrying the request ID into the
// request's user context, so services log with it via logging.FromContext.
func RequestIDLogMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid, ok := c.Locals("requestid").(string)
		if !ok || rid == "" {
			return c.Next()
		}

		reqLogger := logging.FromContext(c.UserContext()).With("request_id", rid)
		c.SetUserContext(logging.WithLogger(c.UserContext(), reqLogger))

		return c.Next()
	}
}
