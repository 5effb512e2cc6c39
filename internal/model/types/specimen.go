package types

import "time"

type CreateSpecimenRequest struct {
	PatientID      int64     `json:"patientId" validate:"required,gt=0"`
	SpecimenTypeID int64     `json:"typeId" validate:"required,gt=0"`
	CollectedAt    time.Time `json:"collectedAt" validate:"required"`
	Volume         float64   `json:"volume" validate:"gte=0"`
	Notes          string    `json:"notes" validate:"max=2000"`
}

type CreateAliquotRequest struct {
	SpecimenID    int64     `json:"specimenId" validate:"required,gt=0"`
	AliquotTypeID int64     `json:"typeId" validate:"required,gt=0"`
	VisitID       *int64    `json:"visitId" validate:"omitempty,gt=0"`
	CollectedAt   time.Time `json:"collectedAt" validate:"required"`
	Volume        float64   `json:"volume" validate:"gte=0"`
	Notes         string    `json:"notes" validate:"max=2000"`
	Times         int       `json:"times" validate:"gte=0,lte=100"`
}

type CreateEventRequest struct {
	Name  string `json:"event" validate:"required,max=100"`
	Order int    `json:"order" validate:"gte=0"`
}
