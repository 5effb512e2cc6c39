package service

import (
	"context"
	"reflect"
	"sort"
	"time"

	"github.com/goccy/go-json"
	"github.com/jinzhu/copier"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/schema"

	"github.com/labtrack/lims/internal/model"
	"github.com/labtrack/lims/internal/model/types"
	"github.com/labtrack/lims/internal/pkg/dberr"
	"github.com/labtrack/lims/internal/pkg/limserr"
	"github.com/labtrack/lims/internal/util/rekuest"
)

const adminMaxPageSize = 500

type adminEntity struct {
	name  string
	typ   reflect.Type
	table *schema.Table
}

func (e *adminEntity) pk() *schema.Field {
	return e.table.PKs[0]
}

func (e *adminEntity) newOne() any {
	return reflect.New(e.typ).Interface()
}

func (e *adminEntity) newSlice() any {
	return reflect.New(reflect.SliceOf(reflect.PointerTo(e.typ))).Interface()
}

func (e *adminEntity) pkOf(row any) int64 {
	return e.pk().Value(reflect.ValueOf(row).Elem()).Int()
}

// Admin is the generic record console over every table of model.Tables.
// Deletes run inside a transaction so that model hooks see a consistent tree.
type Admin struct {
	DB             *bun.DB
	UserService    *User
	StorageService *Storage

	entities map[string]*adminEntity
}

func NewAdmin(db *bun.DB, userService *User, storageService *Storage) *Admin {
	entities := make(map[string]*adminEntity, len(model.Tables))
	for _, t := range model.Tables {
		typ := reflect.TypeOf(t.Model).Elem()
		entities[t.Name] = &adminEntity{
			name:  t.Name,
			typ:   typ,
			table: db.Table(typ),
		}
	}
	return &Admin{
		DB:             db,
		UserService:    userService,
		StorageService: storageService,
		entities:       entities,
	}
}

func (s *Admin) Entities() []string {
	names := lo.Keys(s.entities)
	sort.Strings(names)
	return names
}

func (s *Admin) entity(name string) (*adminEntity, error) {
	e, ok := s.entities[name]
	if !ok {
		return nil, limserr.ErrNotFound.Msg("entity %q not found", name)
	}
	return e, nil
}

func (s *Admin) List(ctx context.Context, name string, offset, limit int) (any, error) {
	e, err := s.entity(name)
	if err != nil {
		return nil, err
	}
	if offset < 0 || limit < 0 {
		return nil, limserr.ErrInvalidReq.Msg("offset and limit must not be negative")
	}
	if limit == 0 || limit > adminMaxPageSize {
		limit = adminMaxPageSize
	}

	rows := e.newSlice()
	err = s.DB.NewSelect().
		Model(rows).
		OrderExpr("? ASC", bun.Ident(e.pk().Name)).
		Offset(offset).
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, dberr.Translate(err)
	}
	return rows, nil
}

func (s *Admin) get(ctx context.Context, db bun.IDB, e *adminEntity, id int64) (any, error) {
	row := e.newOne()
	err := db.NewSelect().
		Model(row).
		Where("? = ?", bun.Ident(e.pk().Name), id).
		Scan(ctx)
	if err != nil {
		err = dberr.Translate(err)
		if limserr.IsNotFound(err) {
			return nil, limserr.ErrNotFound.Msg("%s %d not found", e.name, id)
		}
		return nil, err
	}
	return row, nil
}

func (s *Admin) Get(ctx context.Context, name string, id int64) (any, error) {
	e, err := s.entity(name)
	if err != nil {
		return nil, err
	}
	return s.get(ctx, s.DB, e, id)
}

// Create inserts a record decoded from body. Users are created through the
// password hashing path and expect a CreateUserRequest body.
func (s *Admin) Create(ctx context.Context, name string, body []byte) (any, error) {
	e, err := s.entity(name)
	if err != nil {
		return nil, err
	}

	if e.typ == reflect.TypeOf(model.User{}) {
		req := &types.CreateUserRequest{}
		if err := json.Unmarshal(body, req); err != nil {
			return nil, limserr.ErrInvalidReq.Msg("malformed body: %s", err)
		}
		if err := rekuest.ValidCtx(ctx, req); err != nil {
			return nil, err
		}
		return s.UserService.CreateUser(ctx, req)
	}

	row := e.newOne()
	if err := json.Unmarshal(body, row); err != nil {
		return nil, limserr.ErrInvalidReq.Msg("malformed body: %s", err)
	}
	e.pk().Value(reflect.ValueOf(row).Elem()).SetInt(0)
	if err := normalizeAdminRecord(nil, row); err != nil {
		return nil, err
	}

	_, err = s.DB.NewInsert().
		Model(row).
		Returning("*").
		Exec(ctx)
	if err != nil {
		return nil, dberr.Translate(err)
	}

	log.Info().
		Str("evt.name", "admin.create").
		Str("entity", e.name).
		Int64("id", e.pkOf(row)).
		Msg("record created")
	return row, nil
}

// Update merges the fields present in body into the stored record.
func (s *Admin) Update(ctx context.Context, name string, id int64, body []byte) (any, error) {
	e, err := s.entity(name)
	if err != nil {
		return nil, err
	}

	var row any
	err = s.DB.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		current, err := s.get(ctx, tx, e, id)
		if err != nil {
			return err
		}
		before := e.newOne()
		if err := copier.Copy(before, current); err != nil {
			return errors.Wrap(err, "service: admin: failed to snapshot record")
		}

		if err := json.Unmarshal(body, current); err != nil {
			return limserr.ErrInvalidReq.Msg("malformed body: %s", err)
		}
		if e.pkOf(current) != id {
			return limserr.ErrInvalidReq.Msg("the primary key of %s cannot be changed", e.name)
		}
		if err := normalizeAdminRecord(before, current); err != nil {
			return err
		}
		if loc, ok := current.(*model.StorageLocation); ok {
			if err := checkStorageContainer(ctx, tx, loc); err != nil {
				return err
			}
		}

		_, err = tx.NewUpdate().
			Model(current).
			WherePK().
			Exec(ctx)
		if err != nil {
			return dberr.Translate(err)
		}
		row = current
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("evt.name", "admin.update").
		Str("entity", e.name).
		Int64("id", id).
		Msg("record updated")
	return row, nil
}

// Delete removes one record. Storage locations go through the reparenting
// delete and report what was moved.
func (s *Admin) Delete(ctx context.Context, name string, id int64) (any, error) {
	e, err := s.entity(name)
	if err != nil {
		return nil, err
	}

	if e.typ == reflect.TypeOf(model.StorageLocation{}) {
		return s.StorageService.DeleteStorageLocation(ctx, id)
	}

	err = s.DB.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		row, err := s.get(ctx, tx, e, id)
		if err != nil {
			return err
		}
		_, err = tx.NewDelete().
			Model(row).
			WherePK().
			Exec(model.WithConn(ctx, tx))
		return dberr.Translate(err)
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("evt.name", "admin.delete").
		Str("entity", e.name).
		Int64("id", id).
		Msg("record deleted")
	return map[string]any{"entity": e.name, "id": id, "deleted": true}, nil
}

// normalizeAdminRecord keeps hand-edited records within the invariants the
// services maintain. before is nil for inserts.
func normalizeAdminRecord(before, after any) error {
	switch v := after.(type) {
	case *model.Patient:
		if prev, ok := before.(*model.Patient); ok {
			if _, err := prev.SyncState().Transition(v.SyncState()); err != nil {
				return limserr.ErrInvalidReq.Msg("%s", err)
			}
		}
		if v.Synced && v.SyncDate == nil {
			now := time.Now().UTC()
			v.SyncDate = &now
		}
		if !v.Synced {
			v.SyncDate = nil
		}
	case *model.BoxType:
		if v.LengthLabel == "" {
			v.LengthLabel = model.LabelNumeric
		}
		if v.HeightLabel == "" {
			v.HeightLabel = model.LabelNumeric
		}
		for _, style := range []model.LabelStyle{v.LengthLabel, v.HeightLabel} {
			if style != model.LabelNumeric && style != model.LabelAlphabetic {
				return limserr.ErrInvalidReq.Msg("unknown label style %q", style)
			}
		}
	}
	return nil
}

// checkStorageContainer walks up from the new container of loc and refuses the
// change when the walk reaches loc itself, which would cut it out of the forest.
func checkStorageContainer(ctx context.Context, db bun.IDB, loc *model.StorageLocation) error {
	seen := make(map[int64]bool)
	for next := loc.ContainerID; next != nil; {
		if *next == loc.StorageLocationID {
			return limserr.ErrInvalidReq.Msg("storage location %d cannot be placed inside itself or one of its descendants", loc.StorageLocationID)
		}
		if seen[*next] {
			return nil
		}
		seen[*next] = true

		var parent model.StorageLocation
		err := db.NewSelect().
			Model(&parent).
			Column("storage_location_id", "container_id").
			Where("storage_location_id = ?", *next).
			Scan(ctx)
		if err != nil {
			err = dberr.Translate(err)
			if limserr.IsNotFound(err) {
				return limserr.ErrInvalidReq.Msg("container storage location %d does not exist", *next)
			}
			return err
		}
		next = parent.ContainerID
	}
	return nil
}
