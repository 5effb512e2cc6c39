package service

import (
	"context"

	"github.com/samber/lo"

	"github.com/labtrack/lims/internal/model"
	"github.com/labtrack/lims/internal/model/types"
	"github.com/labtrack/lims/internal/pkg/observability"
	"github.com/labtrack/lims/internal/repo"
)

// Manifest lists what a shipment carries, box by box.
type Manifest struct {
	ShipmentRepo *repo.Shipment
	BoxRepo      *repo.Box
}

func NewManifest(shipmentRepo *repo.Shipment, boxRepo *repo.Box) *Manifest {
	return &Manifest{
		ShipmentRepo: shipmentRepo,
		BoxRepo:      boxRepo,
	}
}

// BuildManifest resolves the boxes of a shipment and their aliquots with two
// queries no matter how many boxes there are. Empty boxes get an empty list.
func (s *Manifest) BuildManifest(ctx context.Context, shipmentID int64) (*types.Manifest, error) {
	shipment, err := s.ShipmentRepo.GetShipmentByID(ctx, shipmentID)
	if err != nil {
		return nil, err
	}

	boxes, err := s.BoxRepo.GetBoxesByShipment(ctx, shipmentID)
	if err != nil {
		return nil, err
	}
	slots, err := s.BoxRepo.GetSlotsByBoxes(ctx, lo.Map(boxes, func(b *model.Box, _ int) int64 {
		return b.BoxID
	}))
	if err != nil {
		return nil, err
	}

	byBox := lo.GroupBy(slots, func(slot *model.BoxSlot) int64 {
		return slot.BoxID
	})

	entries := make([]*types.ManifestEntry, 0, len(boxes))
	for _, box := range boxes {
		aliquots := lo.FilterMap(byBox[box.BoxID], func(slot *model.BoxSlot, _ int) (*model.Aliquot, bool) {
			return slot.Aliquot, slot.Aliquot != nil
		})
		entries = append(entries, &types.ManifestEntry{
			BoxID:    box.BoxID,
			BoxName:  box.Name,
			Aliquots: aliquots,
		})
	}

	observability.ManifestBoxes.Observe(float64(len(entries)))
	return &types.Manifest{
		Shipment: shipment,
		Entries:  entries,
	}, nil
}
