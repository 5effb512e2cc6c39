package repo

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/labtrack/lims/internal/model"
	"github.com/labtrack/lims/internal/pkg/dberr"
	"github.com/labtrack/lims/internal/repo/selector"
)

type Source struct {
	db  *bun.DB
	sel selector.S[model.Source]
}

func NewSource(db *bun.DB) *Source {
	return &Source{
		db:  db,
		sel: selector.New[model.Source](db),
	}
}

func (r *Source) GetSources(ctx context.Context) ([]*model.Source, error) {
	return r.sel.SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Order("source_id ASC")
	})
}

func (r *Source) GetSourceByID(ctx context.Context, id int64) (*model.Source, error) {
	return r.sel.SelectOne(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("source_id = ?", id)
	})
}

func (r *Source) GetSourceByName(ctx context.Context, name string) (*model.Source, error) {
	return r.sel.SelectOne(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("name = ?", name)
	})
}

// EnsureSource inserts a source with the given name unless one already exists.
func (r *Source) EnsureSource(ctx context.Context, name string) (*model.Source, error) {
	_, err := r.db.NewInsert().
		Model(&model.Source{Name: name}).
		On("CONFLICT (name) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return nil, dberr.Translate(err)
	}

	return r.GetSourceByName(ctx, name)
}
