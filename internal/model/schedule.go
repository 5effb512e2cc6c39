package model

import (
	"github.com/goccy/go-json"
	"github.com/uptrace/bun"
)

// Schedule is a named draw schedule. Document is stored verbatim.
type Schedule struct {
	bun.BaseModel `bun:"schedules,alias:sch"`

	ScheduleID int64           `bun:",pk,autoincrement" json:"id"`
	Name       string          `bun:",notnull" json:"name"`
	Document   json.RawMessage `json:"document"`
}

type Visit struct {
	bun.BaseModel `bun:"visits,alias:vis"`

	VisitID int64  `bun:",pk,autoincrement" json:"id"`
	Label   string `bun:",notnull" json:"label"`
}

// Event orders timeline entries for display.
type Event struct {
	bun.BaseModel `bun:"events,alias:evt"`

	EventID int64  `bun:",pk,autoincrement" json:"id"`
	Name    string `bun:",notnull,unique" json:"event"`
	Order   int    `bun:"event_order,notnull,unique" json:"order"`
}
