package selector

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/labtrack/lims/internal/pkg/dberr"
)

// S runs single-table selects for model T. A missing row in SelectOne surfaces
// as limserr.ErrNotFound; an empty SelectMany is a plain empty slice.
type S[T any] struct {
	DB bun.IDB
}

func New[T any](db bun.IDB) S[T] {
	return S[T]{
		DB: db,
	}
}

// On returns a selector running on db, typically a transaction.
func (r S[T]) On(db bun.IDB) S[T] {
	return S[T]{
		DB: db,
	}
}

func (r S[T]) SelectOne(ctx context.Context, fn func(q *bun.SelectQuery) *bun.SelectQuery) (*T, error) {
	var model T
	err := fn(r.DB.NewSelect().Model(&model)).Limit(1).Scan(ctx)
	if err != nil {
		return nil, dberr.Translate(err)
	}

	return &model, nil
}

func (r S[T]) SelectMany(ctx context.Context, fn func(q *bun.SelectQuery) *bun.SelectQuery) ([]*T, error) {
	model := make([]*T, 0)
	err := fn(r.DB.NewSelect().Model(&model)).Scan(ctx)
	if err != nil {
		return nil, dberr.Translate(err)
	}

	return model, nil
}

func (r S[T]) Count(ctx context.Context, fn func(q *bun.SelectQuery) *bun.SelectQuery) (int, error) {
	count, err := fn(r.DB.NewSelect().Model((*T)(nil))).Count(ctx)
	if err != nil {
		return 0, dberr.Translate(err)
	}
	return count, nil
}
