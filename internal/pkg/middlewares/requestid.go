package middlewares

import (
	"github.com/gofiber/fiber/v2"

	"github.com/labtrack/lims/internal/pkg/flog"
)

const LocalsRequestID = "requestid"

// RequestID copies the id assigned by the logger chain into fiber locals.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if id, ok := flog.IDFromFiberCtx(c); ok {
			c.Locals(LocalsRequestID, id.String())
		}
		return c.Next()
	}
}
