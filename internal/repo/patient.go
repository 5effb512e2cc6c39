package repo

import (
	"context"
	"time"

	"github.com/uptrace/bun"

	"github.com/labtrack/lims/internal/model"
	"github.com/labtrack/lims/internal/pkg/dberr"
	"github.com/labtrack/lims/internal/repo/selector"
)

type Patient struct {
	db  *bun.DB
	sel selector.S[model.Patient]
}

func NewPatient(db *bun.DB) *Patient {
	return &Patient{
		db:  db,
		sel: selector.New[model.Patient](db),
	}
}

func withSource(q *bun.SelectQuery) *bun.SelectQuery {
	return q.Relation("Source")
}

func (r *Patient) GetPatients(ctx context.Context, offset, limit int) ([]*model.Patient, error) {
	return r.sel.SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		q = withSource(q).Order("pt.patient_id ASC").Offset(offset)
		if limit > 0 {
			q = q.Limit(limit)
		}
		return q
	})
}

func (r *Patient) CountPatients(ctx context.Context) (int, error) {
	return r.sel.Count(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q
	})
}

func (r *Patient) GetPatientByID(ctx context.Context, id int64) (*model.Patient, error) {
	return r.sel.SelectOne(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return withSource(q).Where("pt.patient_id = ?", id)
	})
}

func (r *Patient) GetPatientByPID(ctx context.Context, pid string) (*model.Patient, error) {
	return r.GetPatientByPIDTx(ctx, r.db, pid)
}

func (r *Patient) GetPatientByPIDTx(ctx context.Context, db bun.IDB, pid string) (*model.Patient, error) {
	return r.sel.On(db).SelectOne(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return withSource(q).Where("pt.pid = ?", pid)
	})
}

func (r *Patient) GetPatientByExternalID(ctx context.Context, externalID string) (*model.Patient, error) {
	return r.sel.SelectOne(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return withSource(q).Where("pt.external_id = ?", externalID).Order("pt.patient_id ASC")
	})
}

func (r *Patient) CreatePatient(ctx context.Context, tx bun.Tx, patient *model.Patient) error {
	_, err := tx.NewInsert().
		Model(patient).
		Returning("patient_id").
		Exec(ctx)
	return dberr.Translate(err)
}

// InsertIfAbsent inserts patient unless a row with the same pid exists, in which
// case nothing is written and inserted is false.
func (r *Patient) InsertIfAbsent(ctx context.Context, tx bun.Tx, patient *model.Patient) (inserted bool, err error) {
	res, err := tx.NewInsert().
		Model(patient).
		On("CONFLICT (pid) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return false, dberr.Translate(err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, dberr.Translate(err)
	}
	return n == 1, nil
}

// PromoteUnsynced marks the patient with the given pid synced, but only while it
// is still unsynced. promoted is false if another writer confirmed it first.
func (r *Patient) PromoteUnsynced(ctx context.Context, tx bun.Tx, pid string, sourceID int64, at time.Time) (promoted bool, err error) {
	res, err := tx.NewUpdate().
		Model((*model.Patient)(nil)).
		Set("synced = ?", true).
		Set("sync_date = ?", at).
		Set("source_id = ?", sourceID).
		Set("modified_at = ?", at).
		Where("pid = ?", pid).
		Where("synced = ?", false).
		Exec(ctx)
	if err != nil {
		return false, dberr.Translate(err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, dberr.Translate(err)
	}
	return n == 1, nil
}

func (r *Patient) UpdatePID(ctx context.Context, patient *model.Patient) error {
	_, err := r.db.NewUpdate().
		Model(patient).
		Column("pid", "modified_at").
		WherePK().
		Exec(ctx)
	return dberr.Translate(err)
}
