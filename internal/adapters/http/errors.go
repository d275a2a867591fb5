package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/samirrijal/skyatlas/internal/core/domain"
)

// APIError is a structured error response. Error is always present; Detail
// and Message appear only for the failures that carry them.
type APIError struct {
	Error     string  `json:"error"`
	Detail    *string `json:"detail,omitempty"`
	Message   string  `json:"message,omitempty"`
	RequestID string  `json:"request_id,omitempty"`
}

// newError builds a JSON error response with a request ID.
func newError(c *fiber.Ctx, status int, body APIError) error {
	body.RequestID, _ = c.Locals("requestid").(string)
	c.Set(fiber.HeaderCacheControl, "no-store")
	return c.Status(status).JSON(body)
}

// errBadRequest returns a 400 error.
func errBadRequest(c *fiber.Ctx, msg string) error {
	return newError(c, fiber.StatusBadRequest, APIError{Error: msg})
}

// errInternal returns a 500 error in the unexpected-fault shape.
func errInternal(c *fiber.Ctx, err error) error {
	return writeMapError(c, domain.NewUnexpected(err))
}

// statusFor maps a static map failure kind onto an HTTP status.
func statusFor(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindMissingParameter:
		return fiber.StatusBadRequest
	case domain.KindProvider:
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

// writeMapError renders err, treating anything that is not a *domain.MapError
// as unexpected.
func writeMapError(c *fiber.Ctx, err error) error {
	var me *domain.MapError
	if !errors.As(err, &me) {
		me = domain.NewUnexpected(err)
	}

	body := APIError{Error: me.Message}
	switch me.Kind {
	case domain.KindProvider:
		detail := me.Detail
		body.Detail = &detail
	case domain.KindUnexpected:
		body.Message = me.Message
		if me.Err != nil {
			body.Message = me.Err.Error()
		}
	}
	return newError(c, statusFor(me.Kind), body)
}

// ErrorHandler is the fiber.Config ErrorHandler. Fiber errors (404, 405,
// 408, 413) keep their status; anything else, recovered panics included,
// becomes a 500 unexpected error.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return newError(c, fe.Code, APIError{Error: fe.Message})
	}
	return writeMapError(c, err)
}
