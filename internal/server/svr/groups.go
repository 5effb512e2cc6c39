package svr

import (
	"github.com/gofiber/fiber/v2"

	"github.com/labtrack/lims/internal/app/appconfig"
	"github.com/labtrack/lims/internal/pkg/middlewares"
)

// Meta serves service metadata under /api/_.
type Meta struct {
	fiber.Router
}

// Admin serves the admin console API, behind the admin key.
type Admin struct {
	fiber.Router
}

// Root serves the browser-facing endpoints: /graphql/, /csrf/ and /logout/.
type Root struct {
	fiber.Router
}

func CreateEndpointGroups(app *fiber.App, conf *appconfig.Config) (*Root, *Meta, *Admin) {
	meta := app.Group("/api/_")
	admin := app.Group("/api/_/admin", middlewares.AdminKey(conf.AdminKey))

	return &Root{Router: app}, &Meta{Router: meta}, &Admin{Router: admin}
}
