package model

import "github.com/uptrace/bun"

// Source is the system of record a patient was created in.
type Source struct {
	bun.BaseModel `bun:"sources,alias:src"`

	SourceID int64  `bun:",pk,autoincrement" json:"id"`
	Name     string `bun:",notnull,unique" json:"name"`

	Timestamps
}

func (s *Source) String() string {
	return s.Name
}
