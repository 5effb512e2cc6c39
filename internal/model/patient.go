package model

import (
	"time"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
	"gopkg.in/guregu/null.v3"
)

type SyncState int

const (
	SyncStateUnsynced SyncState = iota
	SyncStateSynced
)

var ErrInvalidSyncTransition = errors.New("invalid patient sync state transition")

func (s SyncState) String() string {
	switch s {
	case SyncStateUnsynced:
		return "UNSYNCED"
	case SyncStateSynced:
		return "SYNCED"
	default:
		return "UNKNOWN"
	}
}

// Transition validates a move from s to next. Synced is terminal: an unsynced
// record may be confirmed once, and a confirmed record never reverts.
func (s SyncState) Transition(next SyncState) (SyncState, error) {
	switch {
	case s == SyncStateUnsynced && next == SyncStateSynced:
		return next, nil
	case s == next:
		return s, nil
	default:
		return s, errors.Wrapf(ErrInvalidSyncTransition, "%s -> %s", s, next)
	}
}

type Patient struct {
	bun.BaseModel `bun:"patients,alias:pt"`

	PatientID      int64       `bun:",pk,autoincrement" json:"id"`
	PID            string      `bun:"pid,notnull,unique" json:"pid"`
	ExternalID     null.String `bun:"external_id" json:"externalId"`
	SourceID       int64       `bun:",notnull" json:"sourceId"`
	DrawScheduleID *int64      `json:"drawScheduleId,omitempty"`
	Synced         bool        `bun:",notnull,default:false" json:"synced"`
	SyncDate       *time.Time  `json:"syncDate,omitempty"`

	Timestamps

	Source       *Source   `bun:"rel:belongs-to,join:source_id=source_id" json:"source,omitempty"`
	DrawSchedule *Schedule `bun:"rel:belongs-to,join:draw_schedule_id=schedule_id" json:"drawSchedule,omitempty"`
}

func (p *Patient) String() string {
	return p.PID
}

func (p *Patient) SyncState() SyncState {
	if p.Synced {
		return SyncStateSynced
	}
	return SyncStateUnsynced
}

// MarkSynced moves the patient into the synced state, stamping the sync date and
// adopting source as its source of record.
func (p *Patient) MarkSynced(sourceID int64, at time.Time) error {
	next, err := p.SyncState().Transition(SyncStateSynced)
	if err != nil {
		return err
	}
	p.Synced = next == SyncStateSynced
	p.SyncDate = &at
	p.SourceID = sourceID
	return nil
}
