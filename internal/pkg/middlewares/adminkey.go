package middlewares

import (
	"crypto/subtle"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/labtrack/lims/internal/pkg/limserr"
)

// AdminKey admits requests carrying "Authorization: Bearer <key>". An empty key
// locks the route group entirely.
func AdminKey(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if key == "" {
			return limserr.ErrForbidden.Msg("admin console is disabled")
		}
		got, ok := strings.CutPrefix(c.Get(fiber.HeaderAuthorization), "Bearer ")
		if !ok || subtle.ConstantTimeCompare([]byte(got), []byte(key)) != 1 {
			return limserr.ErrForbidden.Msg("invalid admin key")
		}
		return c.Next()
	}
}
