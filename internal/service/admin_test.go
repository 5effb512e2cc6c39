package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/labtrack/lims/internal/model"
	"github.com/labtrack/lims/internal/model/types"
	"github.com/labtrack/lims/internal/pkg/limserr"
)

func TestAdminCRUD(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	assert.Contains(t, f.admin.Entities(), "patients")
	assert.Contains(t, f.admin.Entities(), "box_slots")

	_, err := f.admin.List(ctx, "nope", 0, 0)
	assert.ErrorIs(t, err, limserr.ErrNotFound)

	created, err := f.admin.Create(ctx, "carriers", []byte(`{"id": 55, "name": "FedEx"}`))
	require.NoError(t, err)
	carrier := created.(*model.Carrier)
	assert.NotZero(t, carrier.CarrierID)
	assert.Equal(t, "FedEx", carrier.Name)

	updated, err := f.admin.Update(ctx, "carriers", carrier.CarrierID, []byte(`{"name": "UPS"}`))
	require.NoError(t, err)
	assert.Equal(t, "UPS", updated.(*model.Carrier).Name)

	_, err = f.admin.Update(ctx, "carriers", carrier.CarrierID, []byte(`{"id": 77}`))
	assert.ErrorIs(t, err, limserr.ErrInvalidReq)

	_, err = f.admin.Update(ctx, "carriers", carrier.CarrierID, []byte(`{"name": `))
	assert.ErrorIs(t, err, limserr.ErrInvalidReq)

	got, err := f.admin.Get(ctx, "carriers", carrier.CarrierID)
	require.NoError(t, err)
	assert.Equal(t, "UPS", got.(*model.Carrier).Name)

	rows, err := f.admin.List(ctx, "carriers", 0, 10)
	require.NoError(t, err)
	assert.Len(t, *rows.(*[]*model.Carrier), 1)

	_, err = f.admin.Delete(ctx, "carriers", carrier.CarrierID)
	require.NoError(t, err)
	_, err = f.admin.Get(ctx, "carriers", carrier.CarrierID)
	assert.ErrorIs(t, err, limserr.ErrNotFound)
	_, err = f.admin.Delete(ctx, "carriers", carrier.CarrierID)
	assert.ErrorIs(t, err, limserr.ErrNotFound)
}

func TestAdminKeepsRecordInvariants(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	res, err := f.patientSync.Create(ctx, &types.CreatePatientRequest{PID: "AD-1", Synced: true})
	require.NoError(t, err)

	_, err = f.admin.Update(ctx, "patients", res.Patient.PatientID, []byte(`{"synced": false}`))
	assert.ErrorIs(t, err, limserr.ErrInvalidReq, "synced patients never revert")

	local, err := f.patientSync.LocalSourceID(ctx)
	require.NoError(t, err)
	created, err := f.admin.Create(ctx, "patients", []byte(`{"pid": "AD-2", "sourceId": `+itoa(local)+`, "synced": true}`))
	require.NoError(t, err)
	assert.NotNil(t, created.(*model.Patient).SyncDate)

	_, err = f.admin.Create(ctx, "box_types", []byte(`{"name": "odd", "length": 2, "height": 2, "lengthLabel": "roman"}`))
	assert.ErrorIs(t, err, limserr.ErrInvalidReq)

	_, err = f.admin.Create(ctx, "users", []byte(`{"username": "x", "password": "short"}`))
	assert.ErrorIs(t, err, limserr.ErrInvalidReq)
	user, err := f.admin.Create(ctx, "users", []byte(`{"username": "carol", "password": "long enough password"}`))
	require.NoError(t, err)
	assert.NotEmpty(t, user.(*model.User).PasswordHash)
}

func TestAdminStorageDeleteReparents(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	root, err := f.storage.CreateStorageLocation(ctx, &types.CreateStorageRequest{Name: "Room"})
	require.NoError(t, err)
	mid, err := f.storage.CreateStorageLocation(ctx, &types.CreateStorageRequest{Name: "Rack", ContainerID: &root.StorageLocationID})
	require.NoError(t, err)
	leaf, err := f.storage.CreateStorageLocation(ctx, &types.CreateStorageRequest{Name: "Shelf", ContainerID: &mid.StorageLocationID})
	require.NoError(t, err)

	out, err := f.admin.Delete(ctx, "storage_locations", mid.StorageLocationID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), out.(*types.StorageDeleteResult).ReparentedLocations)

	got, err := f.storage.GetStorageLocationByID(ctx, leaf.StorageLocationID)
	require.NoError(t, err)
	require.NotNil(t, got.ContainerID)
	assert.Equal(t, root.StorageLocationID, *got.ContainerID)
}

func TestAdminStorageContainerStaysAForest(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	room, err := f.storage.CreateStorageLocation(ctx, &types.CreateStorageRequest{Name: "Room"})
	require.NoError(t, err)
	rack, err := f.storage.CreateStorageLocation(ctx, &types.CreateStorageRequest{Name: "Rack", ContainerID: &room.StorageLocationID})
	require.NoError(t, err)
	shelf, err := f.storage.CreateStorageLocation(ctx, &types.CreateStorageRequest{Name: "Shelf", ContainerID: &rack.StorageLocationID})
	require.NoError(t, err)

	for name, container := range map[string]int64{
		"itself":           room.StorageLocationID,
		"child":            rack.StorageLocationID,
		"grandchild":       shelf.StorageLocationID,
		"unknown location": 404,
	} {
		t.Run(name, func(t *testing.T) {
			body := []byte(`{"containerId": ` + itoa(container) + `}`)
			_, err := f.admin.Update(ctx, "storage_locations", room.StorageLocationID, body)
			assert.ErrorIs(t, err, limserr.ErrInvalidReq)
		})
	}

	got, err := f.storage.GetStorageLocationByID(ctx, room.StorageLocationID)
	require.NoError(t, err)
	assert.Nil(t, got.ContainerID)

	tree, err := f.storage.Tree(ctx)
	require.NoError(t, err)
	require.Len(t, tree, 1)
	assert.Equal(t, room.StorageLocationID, tree[0].StorageLocationID)

	// moving a subtree elsewhere is still allowed
	moved, err := f.admin.Update(ctx, "storage_locations", shelf.StorageLocationID, []byte(`{"containerId": `+itoa(room.StorageLocationID)+`}`))
	require.NoError(t, err)
	require.NotNil(t, moved.(*model.StorageLocation).ContainerID)
	assert.Equal(t, room.StorageLocationID, *moved.(*model.StorageLocation).ContainerID)

	_, err = f.admin.Update(ctx, "storage_locations", rack.StorageLocationID, []byte(`{"containerId": null}`))
	require.NoError(t, err)
	tree, err = f.storage.Tree(ctx)
	require.NoError(t, err)
	assert.Len(t, tree, 2)
}
