package types

import "time"

type CreateBoxTypeRequest struct {
	Name           string `json:"name" validate:"required,max=100"`
	Description    string `json:"description" validate:"max=500"`
	Length         int    `json:"length" validate:"required,gte=1,lte=100"`
	Height         int    `json:"height" validate:"required,gte=1,lte=100"`
	LengthLabel    string `json:"lengthLabel" validate:"omitempty,labelstyle"`
	HeightLabel    string `json:"heightLabel" validate:"omitempty,labelstyle"`
	LengthInverted bool   `json:"lengthInverted"`
	HeightInverted bool   `json:"heightInverted"`
}

type CreateBoxRequest struct {
	Name              string `json:"name" validate:"required,max=100"`
	Description       string `json:"description" validate:"max=500"`
	BoxTypeID         int64  `json:"boxTypeId" validate:"required,gt=0"`
	StorageLocationID *int64 `json:"storageLocationId" validate:"omitempty,gt=0"`
	ShipmentID        *int64 `json:"shipmentId" validate:"omitempty,gt=0"`
}

// AssignShipmentRequest packs a box into a shipment. A nil ShipmentID unpacks it.
type AssignShipmentRequest struct {
	BoxID      int64  `json:"boxId" validate:"required,gt=0"`
	ShipmentID *int64 `json:"shipmentId" validate:"omitempty,gt=0"`
}

// PlaceAliquotRequest addresses a slot by its rendered axis labels, e.g. row "B", column "5".
type PlaceAliquotRequest struct {
	BoxID     int64  `json:"boxId" validate:"required,gt=0"`
	Row       string `json:"row" validate:"required,max=8"`
	Column    string `json:"column" validate:"required,max=8"`
	AliquotID int64  `json:"aliquotId" validate:"required,gt=0"`
}

type CreateShipmentRequest struct {
	ShipmentNumber string     `json:"shipmentNumber" validate:"required,max=100"`
	CarrierID      *int64     `json:"carrierId" validate:"omitempty,gt=0"`
	DestinationID  *int64     `json:"destinationId" validate:"omitempty,gt=0"`
	SentDate       *time.Time `json:"sentDate"`
	ReceivedDate   *time.Time `json:"receivedDate"`
	Notes          string     `json:"notes" validate:"max=2000"`
}
