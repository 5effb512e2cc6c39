package meta

import (
	"github.com/gofiber/fiber/v2"

	"github.com/labtrack/lims/internal/pkg/bininfo"
	"github.com/labtrack/lims/internal/server/svr"
)

func RegisterIndex(root *svr.Root) {
	root.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message":  "LIMS API",
			"version":  bininfo.Version,
			"graphql":  "/graphql/",
			"csrf":     "/csrf/",
			"logout":   "/logout/",
			"health":   "/api/_/health",
			"metadata": "/api/_/bininfo",
		})
	})
}
