package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/labtrack/lims/internal/model/types"
	"github.com/labtrack/lims/internal/pkg/limserr"
)

func TestCreateAliquotsTimes(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	specimen, alt := f.seedSpecimen(t, "A-1")

	req := &types.CreateAliquotRequest{
		SpecimenID:    specimen.SpecimenID,
		AliquotTypeID: alt.AliquotTypeID,
		CollectedAt:   specimen.CollectedAt,
		Volume:        0.5,
		Notes:         "hemolysed",
		Times:         3,
	}
	created, err := f.aliquot.CreateAliquots(ctx, req)
	require.NoError(t, err)
	require.Len(t, created, 3)

	ids := map[int64]struct{}{}
	for _, a := range created {
		ids[a.AliquotID] = struct{}{}
	}
	assert.Len(t, ids, 3)

	stored, err := f.aliquot.GetAliquots(ctx, &specimen.SpecimenID)
	require.NoError(t, err)
	require.Len(t, stored, 3)
	first := stored[0]
	for _, a := range stored[1:] {
		assert.NotEqual(t, first.AliquotID, a.AliquotID)
		assert.Equal(t, first.SpecimenID, a.SpecimenID)
		assert.Equal(t, first.AliquotTypeID, a.AliquotTypeID)
		assert.Equal(t, first.VisitID, a.VisitID)
		assert.True(t, first.CollectedAt.Equal(a.CollectedAt))
		assert.Equal(t, first.Volume, a.Volume)
		assert.Equal(t, first.Notes, a.Notes)
	}
	assert.Equal(t, "hemolysed", first.Notes.String)

	req.Times = 0
	created, err = f.aliquot.CreateAliquots(ctx, req)
	require.NoError(t, err)
	assert.Len(t, created, 1)

	req.Times = 101
	_, err = f.aliquot.CreateAliquots(ctx, req)
	assert.ErrorIs(t, err, limserr.ErrInvalidReq)

	req.Times = 1
	req.SpecimenID = 9999
	_, err = f.aliquot.CreateAliquots(ctx, req)
	assert.ErrorIs(t, err, limserr.ErrNotFound)
}

func TestCreateSpecimenRequiresPatient(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.specimen.CreateSpecimen(ctx, &types.CreateSpecimenRequest{PatientID: 42, SpecimenTypeID: 1})
	assert.ErrorIs(t, err, limserr.ErrNotFound)

	specimen, _ := f.seedSpecimen(t, "A-2")
	got, err := f.specimen.GetSpecimenByID(ctx, specimen.SpecimenID)
	require.NoError(t, err)
	assert.Equal(t, "A-2 Blood", got.String())
}
