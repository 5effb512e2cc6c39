package cli

import (
	"context"

	"go.uber.org/fx"

	"github.com/labtrack/lims/internal/app"
	"github.com/labtrack/lims/internal/app/appcontext"
)

// Start boots the dependency graph without the HTTP listener and returns a
// function tearing it down again.
func Start(module fx.Option) (stop func(), err error) {
	fxApp := app.New(appcontext.Declare(appcontext.EnvCLI), module)
	if err := fxApp.Start(context.Background()); err != nil {
		return nil, err
	}
	return func() {
		_ = fxApp.Stop(context.Background())
	}, nil
}

// Deps populates T from the dependency graph.
func Deps[T any]() (deps T, stop func(), err error) {
	stop, err = Start(fx.Populate(&deps))
	return deps, stop, err
}
