package service

import (
	"context"

	"github.com/pkg/errors"
	"gopkg.in/guregu/null.v3"

	"github.com/labtrack/lims/internal/model"
	"github.com/labtrack/lims/internal/model/types"
	"github.com/labtrack/lims/internal/pkg/limserr"
	"github.com/labtrack/lims/internal/repo"
)

// Shipment manages shipments and the boxes packed into them.
type Shipment struct {
	ShipmentRepo *repo.Shipment
	BoxRepo      *repo.Box
	AliquotRepo  *repo.Aliquot
}

func NewShipment(shipmentRepo *repo.Shipment, boxRepo *repo.Box, aliquotRepo *repo.Aliquot) *Shipment {
	return &Shipment{
		ShipmentRepo: shipmentRepo,
		BoxRepo:      boxRepo,
		AliquotRepo:  aliquotRepo,
	}
}

func (s *Shipment) GetShipments(ctx context.Context) ([]*model.Shipment, error) {
	return s.ShipmentRepo.GetShipments(ctx)
}

func (s *Shipment) GetShipmentByID(ctx context.Context, id int64) (*model.Shipment, error) {
	return s.ShipmentRepo.GetShipmentByID(ctx, id)
}

func (s *Shipment) CreateShipment(ctx context.Context, req *types.CreateShipmentRequest) (*model.Shipment, error) {
	shipment := &model.Shipment{
		ShipmentNumber: req.ShipmentNumber,
		CarrierID:      req.CarrierID,
		DestinationID:  req.DestinationID,
		SentDate:       req.SentDate,
		ReceivedDate:   req.ReceivedDate,
	}
	if req.Notes != "" {
		shipment.Notes = null.StringFrom(req.Notes)
	}
	if err := s.ShipmentRepo.CreateShipment(ctx, shipment); err != nil {
		return nil, err
	}
	return s.ShipmentRepo.GetShipmentByID(ctx, shipment.ShipmentID)
}

func (s *Shipment) GetBoxTypes(ctx context.Context) ([]*model.BoxType, error) {
	return s.BoxRepo.GetBoxTypes(ctx)
}

func (s *Shipment) CreateBoxType(ctx context.Context, req *types.CreateBoxTypeRequest) (*model.BoxType, error) {
	boxType := &model.BoxType{
		Name:           req.Name,
		Description:    req.Description,
		Length:         req.Length,
		Height:         req.Height,
		LengthLabel:    labelStyleOrDefault(req.LengthLabel),
		HeightLabel:    labelStyleOrDefault(req.HeightLabel),
		LengthInverted: req.LengthInverted,
		HeightInverted: req.HeightInverted,
	}
	if err := s.BoxRepo.CreateBoxType(ctx, boxType); err != nil {
		return nil, err
	}
	return boxType, nil
}

func labelStyleOrDefault(style string) model.LabelStyle {
	if style == "" {
		return model.LabelNumeric
	}
	return model.LabelStyle(style)
}

func (s *Shipment) GetBoxes(ctx context.Context, storageLocationID *int64) ([]*model.Box, error) {
	return s.BoxRepo.GetBoxes(ctx, storageLocationID)
}

func (s *Shipment) GetBoxByID(ctx context.Context, id int64) (*model.Box, error) {
	return s.BoxRepo.GetBoxByID(ctx, id)
}

func (s *Shipment) CreateBox(ctx context.Context, req *types.CreateBoxRequest) (*model.Box, error) {
	box := &model.Box{
		Name:              req.Name,
		Description:       req.Description,
		BoxTypeID:         req.BoxTypeID,
		StorageLocationID: req.StorageLocationID,
		ShipmentID:        req.ShipmentID,
	}
	if err := s.BoxRepo.CreateBox(ctx, box); err != nil {
		return nil, err
	}
	return s.BoxRepo.GetBoxByID(ctx, box.BoxID)
}

// AssignShipment packs a box into a shipment, or unpacks it when shipmentID is nil.
func (s *Shipment) AssignShipment(ctx context.Context, boxID int64, shipmentID *int64) (*model.Box, error) {
	if shipmentID != nil {
		if _, err := s.ShipmentRepo.GetShipmentByID(ctx, *shipmentID); err != nil {
			return nil, err
		}
	}
	if err := s.BoxRepo.AssignShipment(ctx, boxID, shipmentID); err != nil {
		return nil, err
	}
	return s.BoxRepo.GetBoxByID(ctx, boxID)
}

// PlaceAliquot puts an aliquot into the slot addressed by the box type's axis
// labels. Labels outside the box dimensions are rejected; an occupied slot or
// an aliquot that is already boxed surfaces as an integrity violation.
func (s *Shipment) PlaceAliquot(ctx context.Context, req *types.PlaceAliquotRequest) (*model.BoxSlot, error) {
	box, err := s.BoxRepo.GetBoxByID(ctx, req.BoxID)
	if err != nil {
		return nil, err
	}
	if box.BoxType == nil {
		return nil, limserr.ErrNotFound.Msg("box type of box %d not found", req.BoxID)
	}

	row, err := box.BoxType.RowIndex(req.Row)
	if err != nil {
		return nil, invalidLabel("row", err)
	}
	column, err := box.BoxType.ColumnIndex(req.Column)
	if err != nil {
		return nil, invalidLabel("column", err)
	}

	aliquot, err := s.AliquotRepo.GetAliquotByID(ctx, req.AliquotID)
	if err != nil {
		return nil, err
	}

	slot := &model.BoxSlot{
		BoxID:          box.BoxID,
		RowPosition:    row,
		ColumnPosition: column,
		AliquotID:      aliquot.AliquotID,
	}
	if err := s.BoxRepo.CreateSlot(ctx, slot); err != nil {
		return nil, err
	}
	slot.Aliquot = aliquot
	return slot, nil
}

func invalidLabel(axis string, err error) error {
	if errors.Is(err, model.ErrInvalidLabel) {
		return limserr.ErrInvalidReq.Msg("invalid %s: %s", axis, err)
	}
	return err
}
