package model

import (
	"context"
	"reflect"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/uptrace/bun"
	"gopkg.in/guregu/null.v3"
)

var (
	ErrStorageDeleteWithoutPK   = errors.New("storage locations can only be deleted by primary key")
	ErrStorageDeleteWithoutConn = errors.New("storage locations can only be deleted with a context from model.WithConn")
)

// StorageLocation is a node of the storage forest. A nil ContainerID marks a top-level node.
type StorageLocation struct {
	bun.BaseModel `bun:"storage_locations,alias:stl"`

	StorageLocationID int64       `bun:",pk,autoincrement" json:"id"`
	Name              string      `bun:",notnull" json:"name"`
	Description       string      `bun:",notnull,default:''" json:"description"`
	ContainerID       *int64      `json:"containerId,omitempty"`
	Icon              null.String `bun:"css_icon" json:"icon"`
}

func (s *StorageLocation) String() string {
	return s.Name
}

func (s *StorageLocation) IsTopLevel() bool {
	return s.ContainerID == nil
}

var _ bun.BeforeDeleteHook = (*StorageLocation)(nil)

type connKey struct{}

// WithConn carries the connection a storage deletion runs on, usually the
// bun.Tx the delete is issued on, so that the reparenting updates of the delete
// hook commit or roll back together with the delete.
func WithConn(ctx context.Context, db bun.IDB) context.Context {
	return context.WithValue(ctx, connKey{}, db)
}

func connFrom(ctx context.Context) (bun.IDB, bool) {
	db, ok := ctx.Value(connKey{}).(bun.IDB)
	return db, ok && db != nil
}

// BeforeDelete reattaches the children and boxes of every deleted location to
// that location's own container before the row goes away. The updates run on
// the connection carried by ctx (see WithConn).
func (*StorageLocation) BeforeDelete(ctx context.Context, query *bun.DeleteQuery) error {
	ids, err := deletedStorageIDs(query)
	if err != nil {
		return err
	}

	db, ok := connFrom(ctx)
	if !ok {
		return ErrStorageDeleteWithoutConn
	}

	stats := reparentStatsFrom(ctx)
	for _, id := range ids {
		// re-read on every iteration: an earlier node in the same batch may have
		// been the container of this one
		var node StorageLocation
		err := db.NewSelect().
			Model(&node).
			Column("storage_location_id", "container_id").
			Where("storage_location_id = ?", id).
			Scan(ctx)
		if err != nil {
			return errors.Wrapf(err, "storage: failed to load location %d for reparenting", id)
		}

		res, err := db.NewUpdate().
			Model((*StorageLocation)(nil)).
			Set("container_id = ?", node.ContainerID).
			Where("container_id = ?", id).
			Exec(ctx)
		if err != nil {
			return errors.Wrapf(err, "storage: failed to reparent children of location %d", id)
		}
		children, _ := res.RowsAffected()

		res, err = db.NewUpdate().
			Model((*Box)(nil)).
			Set("storage_location_id = ?", node.ContainerID).
			Where("storage_location_id = ?", id).
			Exec(ctx)
		if err != nil {
			return errors.Wrapf(err, "storage: failed to reparent boxes of location %d", id)
		}
		boxes, _ := res.RowsAffected()

		stats.add(children, boxes)

		log.Debug().
			Str("evt.name", "storage.delete.reparent").
			Int64("storageLocationId", id).
			Interface("containerId", node.ContainerID).
			Int64("children", children).
			Int64("boxes", boxes).
			Msg("reparented storage location contents")
	}

	return nil
}

func deletedStorageIDs(query *bun.DeleteQuery) ([]int64, error) {
	model := query.GetModel()
	if model == nil {
		return nil, ErrStorageDeleteWithoutPK
	}

	v := reflect.Indirect(reflect.ValueOf(model.Value()))
	switch v.Kind() {
	case reflect.Struct:
		loc, ok := v.Addr().Interface().(*StorageLocation)
		if !ok || loc.StorageLocationID == 0 {
			return nil, ErrStorageDeleteWithoutPK
		}
		return []int64{loc.StorageLocationID}, nil
	case reflect.Slice:
		ids := make([]int64, 0, v.Len())
		for i := 0; i < v.Len(); i++ {
			el := reflect.Indirect(v.Index(i))
			if el.Kind() != reflect.Struct {
				return nil, ErrStorageDeleteWithoutPK
			}
			loc, ok := el.Addr().Interface().(*StorageLocation)
			if !ok || loc.StorageLocationID == 0 {
				return nil, ErrStorageDeleteWithoutPK
			}
			ids = append(ids, loc.StorageLocationID)
		}
		return ids, nil
	default:
		return nil, ErrStorageDeleteWithoutPK
	}
}

// ReparentStats counts the rows moved by storage deletions issued with a
// context returned by WithReparentStats.
type ReparentStats struct {
	mu        sync.Mutex
	Locations int64
	Boxes     int64
}

func (s *ReparentStats) add(locations, boxes int64) {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Locations += locations
	s.Boxes += boxes
}

type reparentStatsKey struct{}

func WithReparentStats(ctx context.Context) (context.Context, *ReparentStats) {
	stats := &ReparentStats{}
	return context.WithValue(ctx, reparentStatsKey{}, stats), stats
}

func reparentStatsFrom(ctx context.Context) *ReparentStats {
	stats, _ := ctx.Value(reparentStatsKey{}).(*ReparentStats)
	return stats
}
