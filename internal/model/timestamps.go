package model

import (
	"context"
	"time"

	"github.com/uptrace/bun"
)

// Timestamps is embedded by records carrying audit columns.
type Timestamps struct {
	CreatedAt  time.Time `bun:",notnull" json:"createdAt"`
	ModifiedAt time.Time `bun:",notnull" json:"modifiedAt"`
}

func (t *Timestamps) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	now := time.Now()
	switch query.(type) {
	case *bun.InsertQuery:
		if t.CreatedAt.IsZero() {
			t.CreatedAt = now
		}
		t.ModifiedAt = now
	case *bun.UpdateQuery:
		t.ModifiedAt = now
	}
	return nil
}
