package repo_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"

	"github.com/labtrack/lims/internal/model"
	"github.com/labtrack/lims/internal/pkg/limserr"
	"github.com/labtrack/lims/internal/pkg/testdb"
	"github.com/labtrack/lims/internal/repo"
)

func seedAliquots(t *testing.T, db *bun.DB, n int) []*model.Aliquot {
	t.Helper()
	ctx := context.Background()

	local, err := repo.NewSource(db).GetSourceByName(ctx, "local")
	require.NoError(t, err)

	patient := &model.Patient{PID: "P-1", SourceID: local.SourceID}
	require.NoError(t, db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		return repo.NewPatient(db).CreatePatient(ctx, tx, patient)
	}))

	catalog := repo.NewCatalog(db)
	spt := &model.SpecimenType{Name: "Blood"}
	require.NoError(t, catalog.CreateSpecimenType(ctx, spt))
	alt := &model.AliquotType{Name: "Plasma", Units: "mL"}
	require.NoError(t, catalog.CreateAliquotType(ctx, alt))

	specimen := &model.Specimen{PatientID: patient.PatientID, SpecimenTypeID: spt.SpecimenTypeID, CollectedAt: time.Now(), Volume: 10}
	require.NoError(t, repo.NewSpecimen(db).CreateSpecimen(ctx, specimen))

	aliquots := make([]*model.Aliquot, n)
	for i := range aliquots {
		aliquots[i] = &model.Aliquot{SpecimenID: specimen.SpecimenID, AliquotTypeID: alt.AliquotTypeID, CollectedAt: time.Now(), Volume: 1}
	}
	require.NoError(t, repo.NewAliquot(db).CreateAliquots(ctx, aliquots))
	for _, a := range aliquots {
		require.NotZero(t, a.AliquotID)
	}
	return aliquots
}

func TestBoxSlotConstraints(t *testing.T) {
	ctx := context.Background()
	db := testdb.Open(t)
	boxes := repo.NewBox(db)
	aliquots := seedAliquots(t, db, 3)

	bt := &model.BoxType{Name: "2x2", Length: 2, Height: 2, LengthLabel: model.LabelNumeric, HeightLabel: model.LabelAlphabetic}
	require.NoError(t, boxes.CreateBoxType(ctx, bt))
	box := &model.Box{Name: "B1", BoxTypeID: bt.BoxTypeID}
	require.NoError(t, boxes.CreateBox(ctx, box))

	require.NoError(t, boxes.CreateSlot(ctx, &model.BoxSlot{BoxID: box.BoxID, RowPosition: 1, ColumnPosition: 1, AliquotID: aliquots[0].AliquotID}))

	err := boxes.CreateSlot(ctx, &model.BoxSlot{BoxID: box.BoxID, RowPosition: 1, ColumnPosition: 1, AliquotID: aliquots[1].AliquotID})
	assert.ErrorIs(t, err, limserr.ErrIntegrityViolation, "occupied position")

	err = boxes.CreateSlot(ctx, &model.BoxSlot{BoxID: box.BoxID, RowPosition: 2, ColumnPosition: 2, AliquotID: aliquots[0].AliquotID})
	assert.ErrorIs(t, err, limserr.ErrIntegrityViolation, "aliquot already boxed")

	require.NoError(t, boxes.CreateSlot(ctx, &model.BoxSlot{BoxID: box.BoxID, RowPosition: 2, ColumnPosition: 1, AliquotID: aliquots[2].AliquotID}))

	slots, err := boxes.GetSlotsByBox(ctx, box.BoxID)
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, 1, slots[0].RowPosition)
	assert.Equal(t, 2, slots[1].RowPosition)
	require.NotNil(t, slots[0].Aliquot)
	require.NotNil(t, slots[0].Aliquot.AliquotType)
	assert.Equal(t, "Plasma", slots[0].Aliquot.AliquotType.Name)
	require.NotNil(t, slots[0].Aliquot.Specimen)
	require.NotNil(t, slots[0].Aliquot.Specimen.Patient)
	assert.Equal(t, "P-1", slots[0].Aliquot.Specimen.Patient.PID)
}

func TestBoxesByShipment(t *testing.T) {
	ctx := context.Background()
	db := testdb.Open(t)
	boxes := repo.NewBox(db)
	shipments := repo.NewShipment(db)
	aliquots := seedAliquots(t, db, 2)

	bt := &model.BoxType{Name: "1x2", Length: 2, Height: 1, LengthLabel: model.LabelNumeric, HeightLabel: model.LabelNumeric}
	require.NoError(t, boxes.CreateBoxType(ctx, bt))

	shipment := &model.Shipment{ShipmentNumber: "SHP-1"}
	require.NoError(t, shipments.CreateShipment(ctx, shipment))

	full := &model.Box{Name: "full", BoxTypeID: bt.BoxTypeID}
	empty := &model.Box{Name: "empty", BoxTypeID: bt.BoxTypeID}
	other := &model.Box{Name: "other", BoxTypeID: bt.BoxTypeID}
	for _, b := range []*model.Box{full, empty, other} {
		require.NoError(t, boxes.CreateBox(ctx, b))
	}
	require.NoError(t, boxes.AssignShipment(ctx, full.BoxID, &shipment.ShipmentID))
	require.NoError(t, boxes.AssignShipment(ctx, empty.BoxID, &shipment.ShipmentID))
	assert.ErrorIs(t, boxes.AssignShipment(ctx, 999, &shipment.ShipmentID), limserr.ErrNotFound)

	for i, a := range aliquots {
		require.NoError(t, boxes.CreateSlot(ctx, &model.BoxSlot{BoxID: full.BoxID, RowPosition: 1, ColumnPosition: i + 1, AliquotID: a.AliquotID}))
	}

	shipped, err := boxes.GetBoxesByShipment(ctx, shipment.ShipmentID)
	require.NoError(t, err)
	require.Len(t, shipped, 2)
	assert.Equal(t, "full", shipped[0].Name)
	assert.Equal(t, "empty", shipped[1].Name)

	slots, err := boxes.GetSlotsByBoxes(ctx, []int64{full.BoxID, empty.BoxID})
	require.NoError(t, err)
	assert.Len(t, slots, 2)

	slots, err = boxes.GetSlotsByBoxes(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, slots)
}
