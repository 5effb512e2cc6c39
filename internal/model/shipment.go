package model

import (
	"time"

	"github.com/uptrace/bun"
	"gopkg.in/guregu/null.v3"
)

type Carrier struct {
	bun.BaseModel `bun:"carriers,alias:car"`

	CarrierID int64  `bun:",pk,autoincrement" json:"id"`
	Name      string `bun:",notnull" json:"name"`
}

type Destination struct {
	bun.BaseModel `bun:"destinations,alias:dst"`

	DestinationID int64  `bun:",pk,autoincrement" json:"id"`
	Name          string `bun:",notnull" json:"name"`
}

type Shipment struct {
	bun.BaseModel `bun:"shipments,alias:shp"`

	ShipmentID     int64       `bun:",pk,autoincrement" json:"id"`
	ShipmentNumber string      `bun:",notnull" json:"shipmentNumber"`
	CarrierID      *int64      `json:"carrierId,omitempty"`
	DestinationID  *int64      `json:"destinationId,omitempty"`
	SentDate       *time.Time  `json:"sentDate,omitempty"`
	ReceivedDate   *time.Time  `json:"receivedDate,omitempty"`
	Notes          null.String `json:"notes"`

	Carrier     *Carrier     `bun:"rel:belongs-to,join:carrier_id=carrier_id" json:"carrier,omitempty"`
	Destination *Destination `bun:"rel:belongs-to,join:destination_id=destination_id" json:"destination,omitempty"`
}
