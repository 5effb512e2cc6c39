package repo

import (
	"context"
	"time"

	"github.com/uptrace/bun"

	"github.com/labtrack/lims/internal/model"
	"github.com/labtrack/lims/internal/pkg/dberr"
	"github.com/labtrack/lims/internal/repo/selector"
)

type User struct {
	db  *bun.DB
	sel selector.S[model.User]
}

func NewUser(db *bun.DB) *User {
	return &User{
		db:  db,
		sel: selector.New[model.User](db),
	}
}

func (r *User) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.sel.SelectOne(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("username = ?", username)
	})
}

func (r *User) CreateUser(ctx context.Context, user *model.User) error {
	_, err := r.db.NewInsert().
		Model(user).
		Returning("user_id").
		Exec(ctx)
	return dberr.Translate(err)
}

func (r *User) TouchLastLogin(ctx context.Context, userID int64, at time.Time) error {
	_, err := r.db.NewUpdate().
		Model((*model.User)(nil)).
		Set("last_login = ?", at).
		Where("user_id = ?", userID).
		Exec(ctx)
	return dberr.Translate(err)
}
