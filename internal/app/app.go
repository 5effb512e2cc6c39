package app

import (
	"time"

	"go.uber.org/fx"

	"github.com/labtrack/lims/internal/app/appconfig"
	"github.com/labtrack/lims/internal/app/appcontext"
	"github.com/labtrack/lims/internal/controller"
	"github.com/labtrack/lims/internal/graph"
	"github.com/labtrack/lims/internal/infra"
	"github.com/labtrack/lims/internal/pkg/logger"
	"github.com/labtrack/lims/internal/repo"
	"github.com/labtrack/lims/internal/server"
	"github.com/labtrack/lims/internal/service"
)

func Options(ctx appcontext.Ctx, additionalOpts ...fx.Option) []fx.Option {
	conf, err := appconfig.Parse(ctx)
	if err != nil {
		panic(err)
	}

	// logger and configuration live outside of the fx graph: both are needed before fx starts
	logger.Configure(conf)

	baseOpts := []fx.Option{
		// fx meta
		fx.WithLogger(logger.Fx),

		// Misc
		fx.Supply(conf),

		// Infrastructures
		infra.Module(),

		// Servers
		server.Module(),

		// Repositories
		repo.Module(),

		// Services
		service.Module(),
		graph.Module(),

		// Controllers
		controller.Module(),

		// fx Extra Options
		fx.StartTimeout(5 * time.Second),
		// fiber's Shutdown() is bounded by its IdleTimeout; this only guards a stuck shutdown.
		fx.StopTimeout(conf.HTTPServerShutdownTimeout + 5*time.Second),
	}

	return append(baseOpts, additionalOpts...)
}

func New(ctx appcontext.Ctx, additionalOpts ...fx.Option) *fx.App {
	return fx.New(Options(ctx, additionalOpts...)...)
}
