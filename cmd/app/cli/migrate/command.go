package migrate

import (
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
	"go.uber.org/fx"

	cliapp "github.com/labtrack/lims/cmd/app/cli"
	"github.com/labtrack/lims/internal/repo"
)

type CommandDeps struct {
	fx.In

	Schema *repo.Schema
}

func Command() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "create missing tables and seed the local source",
		Action: func(c *cli.Context) error {
			deps, stop, err := cliapp.Deps[CommandDeps]()
			if err != nil {
				return err
			}
			defer stop()

			if err := deps.Schema.Migrate(c.Context); err != nil {
				return err
			}
			log.Info().
				Str("evt.name", "cli.migrate.done").
				Msg("schema migrated")
			return nil
		},
	}
}
