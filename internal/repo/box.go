package repo

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/labtrack/lims/internal/model"
	"github.com/labtrack/lims/internal/pkg/dberr"
	"github.com/labtrack/lims/internal/repo/selector"
)

type Box struct {
	db      *bun.DB
	sel     selector.S[model.Box]
	typeSel selector.S[model.BoxType]
	slotSel selector.S[model.BoxSlot]
}

func NewBox(db *bun.DB) *Box {
	return &Box{
		db:      db,
		sel:     selector.New[model.Box](db),
		typeSel: selector.New[model.BoxType](db),
		slotSel: selector.New[model.BoxSlot](db),
	}
}

func (r *Box) GetBoxTypes(ctx context.Context) ([]*model.BoxType, error) {
	return r.typeSel.SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Order("box_type_id ASC")
	})
}

func (r *Box) GetBoxTypeByID(ctx context.Context, id int64) (*model.BoxType, error) {
	return r.typeSel.SelectOne(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("box_type_id = ?", id)
	})
}

func (r *Box) CreateBoxType(ctx context.Context, boxType *model.BoxType) error {
	_, err := r.db.NewInsert().
		Model(boxType).
		Returning("box_type_id").
		Exec(ctx)
	return dberr.Translate(err)
}

func (r *Box) GetBoxes(ctx context.Context, storageLocationID *int64) ([]*model.Box, error) {
	return r.sel.SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		q = q.Relation("BoxType")
		if storageLocationID != nil {
			q = q.Where("box.storage_location_id = ?", *storageLocationID)
		}
		return q.Order("box.box_id ASC")
	})
}

// GetStoredBoxes returns every box placed in some storage location.
func (r *Box) GetStoredBoxes(ctx context.Context) ([]*model.Box, error) {
	return r.sel.SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("box.storage_location_id IS NOT NULL").Order("box.box_id ASC")
	})
}

func (r *Box) GetBoxByID(ctx context.Context, id int64) (*model.Box, error) {
	return r.sel.SelectOne(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Relation("BoxType").Where("box.box_id = ?", id)
	})
}

func (r *Box) GetBoxesByShipment(ctx context.Context, shipmentID int64) ([]*model.Box, error) {
	return r.sel.SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("box.shipment_id = ?", shipmentID).Order("box.box_id ASC")
	})
}

func (r *Box) CreateBox(ctx context.Context, box *model.Box) error {
	_, err := r.db.NewInsert().
		Model(box).
		Returning("box_id").
		Exec(ctx)
	return dberr.Translate(err)
}

func (r *Box) AssignShipment(ctx context.Context, boxID int64, shipmentID *int64) error {
	res, err := r.db.NewUpdate().
		Model((*model.Box)(nil)).
		Set("shipment_id = ?", shipmentID).
		Where("box_id = ?", boxID).
		Exec(ctx)
	if err != nil {
		return dberr.Translate(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return dberr.Translate(errNoRows)
	}
	return nil
}

func withSlotContent(q *bun.SelectQuery) *bun.SelectQuery {
	return q.
		Relation("Aliquot").
		Relation("Aliquot.AliquotType").
		Relation("Aliquot.Specimen").
		Relation("Aliquot.Specimen.Patient")
}

func (r *Box) GetSlotsByBox(ctx context.Context, boxID int64) ([]*model.BoxSlot, error) {
	return r.slotSel.SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return withSlotContent(q).
			Where("bxs.box_id = ?", boxID).
			Order("bxs.row_position ASC", "bxs.column_position ASC")
	})
}

// GetSlotsByBoxes loads the slots of all given boxes in one query.
func (r *Box) GetSlotsByBoxes(ctx context.Context, boxIDs []int64) ([]*model.BoxSlot, error) {
	if len(boxIDs) == 0 {
		return []*model.BoxSlot{}, nil
	}
	return r.slotSel.SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return withSlotContent(q).
			Where("bxs.box_id IN (?)", bun.In(boxIDs)).
			Order("bxs.box_id ASC", "bxs.row_position ASC", "bxs.column_position ASC")
	})
}

func (r *Box) CreateSlot(ctx context.Context, slot *model.BoxSlot) error {
	_, err := r.db.NewInsert().
		Model(slot).
		Returning("box_slot_id").
		Exec(ctx)
	return dberr.Translate(err)
}
