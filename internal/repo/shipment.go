package repo

import (
	"context"
	"database/sql"

	"github.com/uptrace/bun"

	"github.com/labtrack/lims/internal/model"
	"github.com/labtrack/lims/internal/pkg/dberr"
	"github.com/labtrack/lims/internal/repo/selector"
)

var errNoRows = sql.ErrNoRows

type Shipment struct {
	db  *bun.DB
	sel selector.S[model.Shipment]
}

func NewShipment(db *bun.DB) *Shipment {
	return &Shipment{
		db:  db,
		sel: selector.New[model.Shipment](db),
	}
}

func withShipmentRelations(q *bun.SelectQuery) *bun.SelectQuery {
	return q.Relation("Carrier").Relation("Destination")
}

func (r *Shipment) GetShipments(ctx context.Context) ([]*model.Shipment, error) {
	return r.sel.SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return withShipmentRelations(q).Order("shp.shipment_id ASC")
	})
}

func (r *Shipment) GetShipmentByID(ctx context.Context, id int64) (*model.Shipment, error) {
	return r.sel.SelectOne(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return withShipmentRelations(q).Where("shp.shipment_id = ?", id)
	})
}

func (r *Shipment) CreateShipment(ctx context.Context, shipment *model.Shipment) error {
	_, err := r.db.NewInsert().
		Model(shipment).
		Returning("shipment_id").
		Exec(ctx)
	return dberr.Translate(err)
}
