package app

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/labtrack/lims/cmd/app/cli/migrate"
	"github.com/labtrack/lims/cmd/app/cli/user"
	"github.com/labtrack/lims/cmd/app/server"
	"github.com/labtrack/lims/internal/pkg/bininfo"
)

func Run() {
	app := &cli.App{
		Name:        "lims",
		Description: "Laboratory information management backend: patients, specimens, storage and shipments over GraphQL. Built with Go, fiber, bun and go.uber.org/fx.",
		Version:     bininfo.Version,
		Commands: []*cli.Command{
			server.Command(),
			migrate.Command(),
			user.Command(),
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("failed to run app")
	}
}
