package web

import (
	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module("controller.web", fx.Invoke(
		RegisterGraphQL,
		RegisterSession,
	))
}
