package types

import "github.com/labtrack/lims/internal/model"

// SyncOutcome names the branch the patient reconciler took.
type SyncOutcome string

const (
	SyncOutcomeCreatedLocal  SyncOutcome = "CREATED_LOCAL"
	SyncOutcomeCreatedSynced SyncOutcome = "CREATED_SYNCED"
	SyncOutcomePromoted      SyncOutcome = "PROMOTED"
	SyncOutcomeAlreadySynced SyncOutcome = "ALREADY_SYNCED"
)

type CreatePatientRequest struct {
	PID            string `json:"pid" validate:"required,pid"`
	ExternalID     string `json:"externalId" validate:"omitempty,max=40"`
	Source         string `json:"source" validate:"omitempty,max=100"`
	DrawScheduleID *int64 `json:"drawScheduleId" validate:"omitempty,gt=0"`
	Synced         bool   `json:"synced"`
}

type CreatePatientResult struct {
	Patient *model.Patient `json:"patient"`
	Outcome SyncOutcome    `json:"outcome"`
	Created bool           `json:"created"`
}

type EditPIDRequest struct {
	ID  int64  `json:"id" validate:"required,gt=0"`
	PID string `json:"pid" validate:"required,pid"`
}
