package model

import (
	"time"

	"github.com/uptrace/bun"
)

type User struct {
	bun.BaseModel `bun:"users,alias:usr"`

	UserID       int64      `bun:",pk,autoincrement" json:"id"`
	Username     string     `bun:",notnull,unique" json:"username"`
	Email        string     `bun:",notnull,default:''" json:"email"`
	PasswordHash string     `bun:",notnull" json:"-"`
	IsStaff      bool       `bun:",notnull,default:false" json:"isStaff"`
	IsActive     bool       `bun:",notnull" json:"isActive"`
	DateJoined   time.Time  `bun:",notnull" json:"dateJoined"`
	LastLogin    *time.Time `json:"lastLogin,omitempty"`
}
