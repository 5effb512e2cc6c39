package repo

import (
	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module("repo", fx.Provide(
		NewBox,
		NewUser,
		NewSchema,
		NewSource,
		NewAliquot,
		NewCatalog,
		NewPatient,
		NewStorage,
		NewShipment,
		NewSpecimen,
	))
}
