package model

import (
	"time"

	"github.com/uptrace/bun"
	"gopkg.in/guregu/null.v3"
)

type AliquotType struct {
	bun.BaseModel `bun:"aliquot_types,alias:alt"`

	AliquotTypeID int64  `bun:",pk,autoincrement" json:"id"`
	Name          string `bun:",notnull" json:"type"`
	Units         string `bun:",notnull" json:"units"`
}

type Aliquot struct {
	bun.BaseModel `bun:"aliquots,alias:alq"`

	AliquotID     int64       `bun:",pk,autoincrement" json:"id"`
	SpecimenID    int64       `bun:",notnull" json:"specimenId"`
	AliquotTypeID int64       `bun:",notnull" json:"typeId"`
	VisitID       *int64      `json:"visitId,omitempty"`
	CollectedAt   time.Time   `bun:",notnull" json:"collectedAt"`
	Volume        float64     `bun:",notnull" json:"volume"`
	Notes         null.String `json:"notes"`

	Specimen    *Specimen    `bun:"rel:belongs-to,join:specimen_id=specimen_id" json:"specimen,omitempty"`
	AliquotType *AliquotType `bun:"rel:belongs-to,join:aliquot_type_id=aliquot_type_id" json:"type,omitempty"`
	Visit       *Visit       `bun:"rel:belongs-to,join:visit_id=visit_id" json:"visit,omitempty"`
}

// String is the aliquot's display name, its type.
func (a *Aliquot) String() string {
	if a.AliquotType == nil {
		return ""
	}
	return a.AliquotType.Name
}
