package repo

import (
	"context"
	"database/sql"

	"github.com/uptrace/bun"

	"github.com/labtrack/lims/internal/model"
	"github.com/labtrack/lims/internal/pkg/dberr"
	"github.com/labtrack/lims/internal/repo/selector"
)

type Storage struct {
	db  *bun.DB
	sel selector.S[model.StorageLocation]
}

func NewStorage(db *bun.DB) *Storage {
	return &Storage{
		db:  db,
		sel: selector.New[model.StorageLocation](db),
	}
}

func (r *Storage) GetStorageLocations(ctx context.Context) ([]*model.StorageLocation, error) {
	return r.sel.SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Order("storage_location_id ASC")
	})
}

func (r *Storage) GetStorageLocationByID(ctx context.Context, id int64) (*model.StorageLocation, error) {
	return r.sel.SelectOne(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("storage_location_id = ?", id)
	})
}

func (r *Storage) GetChildren(ctx context.Context, containerID *int64) ([]*model.StorageLocation, error) {
	return r.sel.SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		if containerID == nil {
			q = q.Where("container_id IS NULL")
		} else {
			q = q.Where("container_id = ?", *containerID)
		}
		return q.Order("storage_location_id ASC")
	})
}

func (r *Storage) CreateStorageLocation(ctx context.Context, loc *model.StorageLocation) error {
	_, err := r.db.NewInsert().
		Model(loc).
		Returning("storage_location_id").
		Exec(ctx)
	return dberr.Translate(err)
}

// DeleteStorageLocation removes the location in a transaction. Its children and
// boxes are moved up to its container by model.StorageLocation's delete hook.
func (r *Storage) DeleteStorageLocation(ctx context.Context, id int64) error {
	return r.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if _, err := r.sel.On(tx).SelectOne(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Column("storage_location_id").Where("storage_location_id = ?", id)
		}); err != nil {
			return err
		}

		_, err := tx.NewDelete().
			Model(&model.StorageLocation{StorageLocationID: id}).
			WherePK().
			Exec(model.WithConn(ctx, tx))
		return dberr.Translate(err)
	})
}
