package repo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"

	"github.com/labtrack/lims/internal/model"
	"github.com/labtrack/lims/internal/pkg/limserr"
	"github.com/labtrack/lims/internal/pkg/testdb"
	"github.com/labtrack/lims/internal/repo"
)

type storageFixture struct {
	db      *bun.DB
	storage *repo.Storage
	boxes   *repo.Box
	boxType *model.BoxType
}

func newStorageFixture(t *testing.T) *storageFixture {
	t.Helper()
	db := testdb.Open(t)
	f := &storageFixture{
		db:      db,
		storage: repo.NewStorage(db),
		boxes:   repo.NewBox(db),
		boxType: &model.BoxType{Name: "9x9", Length: 9, Height: 9, LengthLabel: model.LabelNumeric, HeightLabel: model.LabelNumeric},
	}
	require.NoError(t, f.boxes.CreateBoxType(context.Background(), f.boxType))
	return f
}

func (f *storageFixture) location(t *testing.T, name string, container *model.StorageLocation) *model.StorageLocation {
	t.Helper()
	loc := &model.StorageLocation{Name: name}
	if container != nil {
		loc.ContainerID = &container.StorageLocationID
	}
	require.NoError(t, f.storage.CreateStorageLocation(context.Background(), loc))
	return loc
}

func (f *storageFixture) box(t *testing.T, name string, loc *model.StorageLocation) *model.Box {
	t.Helper()
	box := &model.Box{Name: name, BoxTypeID: f.boxType.BoxTypeID}
	if loc != nil {
		box.StorageLocationID = &loc.StorageLocationID
	}
	require.NoError(t, f.boxes.CreateBox(context.Background(), box))
	return box
}

func TestStorageDeleteReparents(t *testing.T) {
	ctx := context.Background()
	f := newStorageFixture(t)

	building := f.location(t, "building", nil)
	freezer := f.location(t, "freezer", building)
	shelfA := f.location(t, "shelf A", freezer)
	shelfB := f.location(t, "shelf B", freezer)
	rack := f.location(t, "rack", shelfA)
	box1 := f.box(t, "box 1", freezer)
	box2 := f.box(t, "box 2", freezer)
	unrelated := f.box(t, "box 3", shelfA)

	require.NoError(t, f.storage.DeleteStorageLocation(ctx, freezer.StorageLocationID))

	_, err := f.storage.GetStorageLocationByID(ctx, freezer.StorageLocationID)
	assert.ErrorIs(t, err, limserr.ErrNotFound)

	for _, child := range []*model.StorageLocation{shelfA, shelfB} {
		got, err := f.storage.GetStorageLocationByID(ctx, child.StorageLocationID)
		require.NoError(t, err)
		require.NotNil(t, got.ContainerID, child.Name)
		assert.Equal(t, building.StorageLocationID, *got.ContainerID, child.Name)
	}

	for _, b := range []*model.Box{box1, box2} {
		got, err := f.boxes.GetBoxByID(ctx, b.BoxID)
		require.NoError(t, err)
		require.NotNil(t, got.StorageLocationID, b.Name)
		assert.Equal(t, building.StorageLocationID, *got.StorageLocationID, b.Name)
	}

	// grandchildren keep their parent
	got, err := f.storage.GetStorageLocationByID(ctx, rack.StorageLocationID)
	require.NoError(t, err)
	assert.Equal(t, shelfA.StorageLocationID, *got.ContainerID)

	gotBox, err := f.boxes.GetBoxByID(ctx, unrelated.BoxID)
	require.NoError(t, err)
	assert.Equal(t, shelfA.StorageLocationID, *gotBox.StorageLocationID)
}

func TestStorageDeleteTopLevelPromotesChildren(t *testing.T) {
	ctx := context.Background()
	f := newStorageFixture(t)

	root := f.location(t, "root", nil)
	child := f.location(t, "child", root)
	b := f.box(t, "box", root)

	require.NoError(t, f.storage.DeleteStorageLocation(ctx, root.StorageLocationID))

	got, err := f.storage.GetStorageLocationByID(ctx, child.StorageLocationID)
	require.NoError(t, err)
	assert.Nil(t, got.ContainerID)
	assert.True(t, got.IsTopLevel())

	gotBox, err := f.boxes.GetBoxByID(ctx, b.BoxID)
	require.NoError(t, err)
	assert.Nil(t, gotBox.StorageLocationID)

	roots, err := f.storage.GetChildren(ctx, nil)
	require.NoError(t, err)
	require.Len(t, roots, 1)
	assert.Equal(t, child.StorageLocationID, roots[0].StorageLocationID)
}

func TestStorageDeleteUnknown(t *testing.T) {
	f := newStorageFixture(t)
	err := f.storage.DeleteStorageLocation(context.Background(), 404)
	assert.ErrorIs(t, err, limserr.ErrNotFound)
}

func TestStorageDeleteHookAppliesToAnyDelete(t *testing.T) {
	ctx := context.Background()
	f := newStorageFixture(t)

	top := f.location(t, "top", nil)
	middle := f.location(t, "middle", top)
	lower := f.location(t, "lower", middle)
	leaf := f.location(t, "leaf", lower)
	b := f.box(t, "box", lower)

	t.Run("batch delete of a chain", func(t *testing.T) {
		// middle and lower go in one statement issued straight against the
		// database, the way the admin console deletes
		victims := []*model.StorageLocation{
			{StorageLocationID: middle.StorageLocationID},
			{StorageLocationID: lower.StorageLocationID},
		}
		err := f.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			_, err := tx.NewDelete().Model(&victims).WherePK().Exec(model.WithConn(ctx, tx))
			return err
		})
		require.NoError(t, err)

		got, err := f.storage.GetStorageLocationByID(ctx, leaf.StorageLocationID)
		require.NoError(t, err)
		require.NotNil(t, got.ContainerID)
		assert.Equal(t, top.StorageLocationID, *got.ContainerID)

		gotBox, err := f.boxes.GetBoxByID(ctx, b.BoxID)
		require.NoError(t, err)
		require.NotNil(t, gotBox.StorageLocationID)
		assert.Equal(t, top.StorageLocationID, *gotBox.StorageLocationID)
	})

	t.Run("delete without primary key is refused", func(t *testing.T) {
		_, err := f.db.NewDelete().
			Model((*model.StorageLocation)(nil)).
			Where("name = ?", "top").
			Exec(ctx)
		assert.ErrorIs(t, err, model.ErrStorageDeleteWithoutPK)

		_, err = f.storage.GetStorageLocationByID(ctx, top.StorageLocationID)
		assert.NoError(t, err)
	})

	t.Run("delete without a carried connection is refused", func(t *testing.T) {
		_, err := f.db.NewDelete().
			Model(&model.StorageLocation{StorageLocationID: top.StorageLocationID}).
			WherePK().
			Exec(ctx)
		assert.ErrorIs(t, err, model.ErrStorageDeleteWithoutConn)

		_, err = f.storage.GetStorageLocationByID(ctx, top.StorageLocationID)
		assert.NoError(t, err)
	})

	t.Run("stats are reported through the context", func(t *testing.T) {
		statsCtx, stats := model.WithReparentStats(ctx)
		require.NoError(t, f.storage.DeleteStorageLocation(statsCtx, top.StorageLocationID))
		assert.Equal(t, int64(1), stats.Locations)
		assert.Equal(t, int64(1), stats.Boxes)
	})
}
