package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/labtrack/lims/internal/model"
	"github.com/labtrack/lims/internal/model/types"
	"github.com/labtrack/lims/internal/pkg/limserr"
)

func TestPatientSyncLocal(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	res, err := f.patientSync.Create(ctx, &types.CreatePatientRequest{PID: "L-100", ExternalID: "ext-1"})
	require.NoError(t, err)
	assert.Equal(t, types.SyncOutcomeCreatedLocal, res.Outcome)
	assert.True(t, res.Created)
	assert.Equal(t, model.SyncStateUnsynced, res.Patient.SyncState())
	assert.Nil(t, res.Patient.SyncDate)
	require.NotNil(t, res.Patient.Source)
	assert.Equal(t, "local", res.Patient.Source.Name)

	_, err = f.patientSync.Create(ctx, &types.CreatePatientRequest{PID: "L-100", Source: "local"})
	assert.ErrorIs(t, err, limserr.ErrIntegrityViolation)

	res, err = f.patientSync.Create(ctx, &types.CreatePatientRequest{PID: "L-101", Synced: true})
	require.NoError(t, err)
	assert.Equal(t, model.SyncStateSynced, res.Patient.SyncState())
	assert.NotNil(t, res.Patient.SyncDate)
}

func TestPatientSyncExternal(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	now := time.Date(2024, 5, 4, 12, 0, 0, 0, time.UTC)
	f.patientSync.SetClock(func() time.Time { return now })

	registry, err := f.sourceRepo.EnsureSource(ctx, "registry")
	require.NoError(t, err)

	t.Run("new pid is inserted synced", func(t *testing.T) {
		res, err := f.patientSync.Create(ctx, &types.CreatePatientRequest{PID: "E-1", Source: "registry"})
		require.NoError(t, err)
		assert.Equal(t, types.SyncOutcomeCreatedSynced, res.Outcome)
		assert.True(t, res.Created)
		assert.True(t, res.Patient.Synced)
		require.NotNil(t, res.Patient.SyncDate)
		assert.WithinDuration(t, now, *res.Patient.SyncDate, time.Second)
		assert.Equal(t, registry.SourceID, res.Patient.SourceID)
	})

	t.Run("unsynced local match is promoted", func(t *testing.T) {
		local, err := f.patientSync.Create(ctx, &types.CreatePatientRequest{PID: "E-2"})
		require.NoError(t, err)
		before, err := f.patient.CountPatients(ctx)
		require.NoError(t, err)

		res, err := f.patientSync.Create(ctx, &types.CreatePatientRequest{PID: "E-2", Source: "registry"})
		require.NoError(t, err)
		assert.Equal(t, types.SyncOutcomePromoted, res.Outcome)
		assert.False(t, res.Created)
		assert.Equal(t, local.Patient.PatientID, res.Patient.PatientID)
		assert.True(t, res.Patient.Synced)
		require.NotNil(t, res.Patient.SyncDate)
		assert.Equal(t, registry.SourceID, res.Patient.SourceID)

		after, err := f.patient.CountPatients(ctx)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})

	t.Run("repeating the external create is a no-op", func(t *testing.T) {
		before, err := f.patient.CountPatients(ctx)
		require.NoError(t, err)

		res, err := f.patientSync.Create(ctx, &types.CreatePatientRequest{PID: "E-2", Source: "registry"})
		require.NoError(t, err)
		assert.Equal(t, types.SyncOutcomeAlreadySynced, res.Outcome)
		assert.True(t, res.Patient.Synced)

		after, err := f.patient.CountPatients(ctx)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})

	t.Run("synced match from another source keeps its source", func(t *testing.T) {
		_, err := f.sourceRepo.EnsureSource(ctx, "biobank")
		require.NoError(t, err)

		res, err := f.patientSync.Create(ctx, &types.CreatePatientRequest{PID: "E-1", Source: "biobank"})
		require.NoError(t, err)
		assert.Equal(t, types.SyncOutcomeAlreadySynced, res.Outcome)
		assert.Equal(t, registry.SourceID, res.Patient.SourceID)
	})

	t.Run("unknown source", func(t *testing.T) {
		_, err := f.patientSync.Create(ctx, &types.CreatePatientRequest{PID: "E-3", Source: "nowhere"})
		assert.ErrorIs(t, err, limserr.ErrNotFound)
	})
}

func TestPatientLookup(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	res, err := f.patientSync.Create(ctx, &types.CreatePatientRequest{PID: "Q-1", ExternalID: "mrn-9"})
	require.NoError(t, err)

	pid := "Q-1"
	got, err := f.patient.GetPatient(ctx, nil, &pid, nil)
	require.NoError(t, err)
	assert.Equal(t, res.Patient.PatientID, got.PatientID)

	ext := "mrn-9"
	got, err = f.patient.GetPatient(ctx, nil, nil, &ext)
	require.NoError(t, err)
	assert.Equal(t, res.Patient.PatientID, got.PatientID)

	missing := "Q-404"
	_, err = f.patient.GetPatient(ctx, nil, &missing, nil)
	assert.ErrorIs(t, err, limserr.ErrNotFound)

	got, err = f.patient.GetPatient(ctx, nil, nil, nil)
	require.NoError(t, err)
	assert.Nil(t, got)

	edited, err := f.patient.EditPID(ctx, res.Patient.PatientID, "Q-2")
	require.NoError(t, err)
	assert.Equal(t, "Q-2", edited.PID)

	list, err := f.patient.GetPatients(ctx, 0, 0)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = f.patient.GetPatients(ctx, -1, 10)
	assert.ErrorIs(t, err, limserr.ErrInvalidReq)
}
