package repo

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/labtrack/lims/internal/model"
	"github.com/labtrack/lims/internal/pkg/dberr"
	"github.com/labtrack/lims/internal/repo/selector"
)

type Aliquot struct {
	db  *bun.DB
	sel selector.S[model.Aliquot]
}

func NewAliquot(db *bun.DB) *Aliquot {
	return &Aliquot{
		db:  db,
		sel: selector.New[model.Aliquot](db),
	}
}

func withAliquotRelations(q *bun.SelectQuery) *bun.SelectQuery {
	return q.Relation("AliquotType").Relation("Visit").Relation("Specimen").Relation("Specimen.Patient")
}

func (r *Aliquot) GetAliquots(ctx context.Context, specimenID *int64) ([]*model.Aliquot, error) {
	return r.sel.SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		q = withAliquotRelations(q)
		if specimenID != nil {
			q = q.Where("alq.specimen_id = ?", *specimenID)
		}
		return q.Order("alq.aliquot_id ASC")
	})
}

func (r *Aliquot) GetAliquotByID(ctx context.Context, id int64) (*model.Aliquot, error) {
	return r.sel.SelectOne(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return withAliquotRelations(q).Where("alq.aliquot_id = ?", id)
	})
}

// CreateAliquots inserts all aliquots with one multi-row statement, filling in their ids.
func (r *Aliquot) CreateAliquots(ctx context.Context, aliquots []*model.Aliquot) error {
	if len(aliquots) == 0 {
		return nil
	}
	_, err := r.db.NewInsert().
		Model(&aliquots).
		Returning("aliquot_id").
		Exec(ctx)
	return dberr.Translate(err)
}
