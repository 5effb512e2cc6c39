package service

import (
	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module("service", fx.Provide(
		NewAuth,
		NewGrid,
		NewUser,
		NewAdmin,
		NewHealth,
		NewAliquot,
		NewCatalog,
		NewPatient,
		NewStorage,
		NewManifest,
		NewShipment,
		NewSpecimen,
		NewPatientSync,
	))
}
