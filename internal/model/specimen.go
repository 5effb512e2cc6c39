package model

import (
	"time"

	"github.com/uptrace/bun"
	"gopkg.in/guregu/null.v3"
)

type SpecimenType struct {
	bun.BaseModel `bun:"specimen_types,alias:spt"`

	SpecimenTypeID int64  `bun:",pk,autoincrement" json:"id"`
	Name           string `bun:",notnull" json:"type"`
}

type Specimen struct {
	bun.BaseModel `bun:"specimens,alias:spc"`

	SpecimenID     int64       `bun:",pk,autoincrement" json:"id"`
	PatientID      int64       `bun:",notnull" json:"patientId"`
	SpecimenTypeID int64       `bun:",notnull" json:"typeId"`
	CollectedAt    time.Time   `bun:",notnull" json:"collectedAt"`
	Volume         float64     `bun:",notnull" json:"volume"`
	Notes          null.String `json:"notes"`

	Patient      *Patient      `bun:"rel:belongs-to,join:patient_id=patient_id" json:"patient,omitempty"`
	SpecimenType *SpecimenType `bun:"rel:belongs-to,join:specimen_type_id=specimen_type_id" json:"type,omitempty"`
}

// String renders "<pid> <type>" when both relations are loaded.
func (s *Specimen) String() string {
	if s.Patient == nil || s.SpecimenType == nil {
		return ""
	}
	return s.Patient.PID + " " + s.SpecimenType.Name
}
