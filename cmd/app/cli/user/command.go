package user

import (
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
	"go.uber.org/fx"

	cliapp "github.com/labtrack/lims/cmd/app/cli"
	"github.com/labtrack/lims/internal/model/types"
	"github.com/labtrack/lims/internal/service"
	"github.com/labtrack/lims/internal/util/rekuest"
)

type CommandDeps struct {
	fx.In

	UserService *service.User
}

func Command() *cli.Command {
	return &cli.Command{
		Name:  "user",
		Usage: "manage console users",
		Subcommands: []*cli.Command{
			createCommand(),
		},
	}
}

func createCommand() *cli.Command {
	return &cli.Command{
		Name:  "create",
		Usage: "create a user able to sign in",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "username", Required: true},
			&cli.StringFlag{Name: "email"},
			&cli.StringFlag{Name: "password", Required: true, EnvVars: []string{"LIMS_NEW_USER_PASSWORD"}},
			&cli.BoolFlag{Name: "staff", Usage: "grant access to user management"},
		},
		Action: func(c *cli.Context) error {
			req := &types.CreateUserRequest{
				Username: c.String("username"),
				Email:    c.String("email"),
				Password: c.String("password"),
				IsStaff:  c.Bool("staff"),
			}
			if err := rekuest.ValidCtx(c.Context, req); err != nil {
				return err
			}

			deps, stop, err := cliapp.Deps[CommandDeps]()
			if err != nil {
				return err
			}
			defer stop()

			user, err := deps.UserService.CreateUser(c.Context, req)
			if err != nil {
				return err
			}
			log.Info().
				Str("evt.name", "cli.user.create").
				Int64("userId", user.UserID).
				Str("username", user.Username).
				Bool("staff", user.IsStaff).
				Msg("user created")
			return nil
		},
	}
}
