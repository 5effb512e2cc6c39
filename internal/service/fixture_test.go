package service_test

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"

	"github.com/labtrack/lims/internal/app/appconfig"
	"github.com/labtrack/lims/internal/model"
	"github.com/labtrack/lims/internal/model/types"
	"github.com/labtrack/lims/internal/pkg/fiberstore"
	"github.com/labtrack/lims/internal/pkg/testdb"
	"github.com/labtrack/lims/internal/repo"
	"github.com/labtrack/lims/internal/service"
)

type fixture struct {
	db   *bun.DB
	conf *appconfig.Config

	sourceRepo  *repo.Source
	catalogRepo *repo.Catalog
	boxRepo     *repo.Box

	patientSync *service.PatientSync
	patient     *service.Patient
	specimen    *service.Specimen
	aliquot     *service.Aliquot
	storage     *service.Storage
	grid        *service.Grid
	manifest    *service.Manifest
	shipment    *service.Shipment
	user        *service.User
	auth        *service.Auth
	admin       *service.Admin
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := testdb.Open(t)
	conf := testdb.Config()

	patientRepo := repo.NewPatient(db)
	sourceRepo := repo.NewSource(db)
	specimenRepo := repo.NewSpecimen(db)
	aliquotRepo := repo.NewAliquot(db)
	storageRepo := repo.NewStorage(db)
	boxRepo := repo.NewBox(db)
	shipmentRepo := repo.NewShipment(db)

	f := &fixture{
		db:          db,
		conf:        conf,
		sourceRepo:  sourceRepo,
		catalogRepo: repo.NewCatalog(db),
		boxRepo:     boxRepo,
		patientSync: service.NewPatientSync(db, patientRepo, sourceRepo, conf),
		patient:     service.NewPatient(patientRepo),
		specimen:    service.NewSpecimen(specimenRepo, patientRepo),
		aliquot:     service.NewAliquot(aliquotRepo, specimenRepo),
		storage:     service.NewStorage(storageRepo, boxRepo),
		grid:        service.NewGrid(boxRepo),
		manifest:    service.NewManifest(shipmentRepo, boxRepo),
		shipment:    service.NewShipment(shipmentRepo, boxRepo, aliquotRepo),
		user:        service.NewUser(repo.NewUser(db)),
	}
	f.auth = service.NewAuth(f.user, fiberstore.NewMemory(), conf)
	f.admin = service.NewAdmin(db, f.user, f.storage)
	return f
}

// seedSpecimen creates a local patient with one blood specimen and returns the
// specimen along with a plasma aliquot type.
func (f *fixture) seedSpecimen(t *testing.T, pid string) (*model.Specimen, *model.AliquotType) {
	t.Helper()
	ctx := context.Background()

	created, err := f.patientSync.Create(ctx, &types.CreatePatientRequest{PID: pid})
	require.NoError(t, err)

	spt := &model.SpecimenType{Name: "Blood"}
	require.NoError(t, f.catalogRepo.CreateSpecimenType(ctx, spt))
	alt := &model.AliquotType{Name: "Plasma", Units: "mL"}
	require.NoError(t, f.catalogRepo.CreateAliquotType(ctx, alt))

	specimen, err := f.specimen.CreateSpecimen(ctx, &types.CreateSpecimenRequest{
		PatientID:      created.Patient.PatientID,
		SpecimenTypeID: spt.SpecimenTypeID,
		CollectedAt:    time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC),
		Volume:         10,
	})
	require.NoError(t, err)
	return specimen, alt
}

func (f *fixture) seedAliquots(t *testing.T, pid string, n int) []*model.Aliquot {
	t.Helper()
	specimen, alt := f.seedSpecimen(t, pid)
	aliquots, err := f.aliquot.CreateAliquots(context.Background(), &types.CreateAliquotRequest{
		SpecimenID:    specimen.SpecimenID,
		AliquotTypeID: alt.AliquotTypeID,
		CollectedAt:   specimen.CollectedAt,
		Volume:        1.5,
		Times:         n,
	})
	require.NoError(t, err)
	return aliquots
}

func itoa(v int64) string {
	return strconv.FormatInt(v, 10)
}
