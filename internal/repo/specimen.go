package repo

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/labtrack/lims/internal/model"
	"github.com/labtrack/lims/internal/pkg/dberr"
	"github.com/labtrack/lims/internal/repo/selector"
)

type Specimen struct {
	db  *bun.DB
	sel selector.S[model.Specimen]
}

func NewSpecimen(db *bun.DB) *Specimen {
	return &Specimen{
		db:  db,
		sel: selector.New[model.Specimen](db),
	}
}

func withSpecimenRelations(q *bun.SelectQuery) *bun.SelectQuery {
	return q.Relation("Patient").Relation("SpecimenType")
}

func (r *Specimen) GetSpecimens(ctx context.Context, patientID *int64) ([]*model.Specimen, error) {
	return r.sel.SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		q = withSpecimenRelations(q)
		if patientID != nil {
			q = q.Where("spc.patient_id = ?", *patientID)
		}
		return q.Order("spc.specimen_id ASC")
	})
}

func (r *Specimen) GetSpecimenByID(ctx context.Context, id int64) (*model.Specimen, error) {
	return r.sel.SelectOne(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return withSpecimenRelations(q).Where("spc.specimen_id = ?", id)
	})
}

func (r *Specimen) CreateSpecimen(ctx context.Context, specimen *model.Specimen) error {
	_, err := r.db.NewInsert().
		Model(specimen).
		Returning("specimen_id").
		Exec(ctx)
	return dberr.Translate(err)
}
