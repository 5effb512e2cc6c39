package controller

import (
	"go.uber.org/fx"

	controllermeta "github.com/labtrack/lims/internal/controller/meta"
	controllerweb "github.com/labtrack/lims/internal/controller/web"
)

func Module() fx.Option {
	return fx.Module("controller",
		// Controllers (browser-facing: graphql, csrf, logout)
		controllerweb.Module(),

		// Controllers (meta and admin console)
		controllermeta.Module(),
	)
}
