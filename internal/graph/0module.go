package graph

import "go.uber.org/fx"

func Module() fx.Option {
	return fx.Module("graph", fx.Provide(NewSchema))
}
