package service

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"gopkg.in/guregu/null.v3"

	"github.com/labtrack/lims/internal/model"
	"github.com/labtrack/lims/internal/model/types"
	"github.com/labtrack/lims/internal/pkg/observability"
	"github.com/labtrack/lims/internal/repo"
)

type Storage struct {
	StorageRepo *repo.Storage
	BoxRepo     *repo.Box
}

func NewStorage(storageRepo *repo.Storage, boxRepo *repo.Box) *Storage {
	return &Storage{
		StorageRepo: storageRepo,
		BoxRepo:     boxRepo,
	}
}

func (s *Storage) GetStorageLocations(ctx context.Context) ([]*model.StorageLocation, error) {
	return s.StorageRepo.GetStorageLocations(ctx)
}

func (s *Storage) GetStorageLocationByID(ctx context.Context, id int64) (*model.StorageLocation, error) {
	return s.StorageRepo.GetStorageLocationByID(ctx, id)
}

func (s *Storage) CreateStorageLocation(ctx context.Context, req *types.CreateStorageRequest) (*model.StorageLocation, error) {
	if req.ContainerID != nil {
		if _, err := s.StorageRepo.GetStorageLocationByID(ctx, *req.ContainerID); err != nil {
			return nil, err
		}
	}

	loc := &model.StorageLocation{
		Name:        req.Name,
		Description: req.Description,
		ContainerID: req.ContainerID,
	}
	if req.Icon != "" {
		loc.Icon = null.StringFrom(req.Icon)
	}
	if err := s.StorageRepo.CreateStorageLocation(ctx, loc); err != nil {
		return nil, err
	}
	return loc, nil
}

// DeleteStorageLocation removes a location after moving its children and boxes
// up to its container, and reports how many rows were moved.
func (s *Storage) DeleteStorageLocation(ctx context.Context, id int64) (*types.StorageDeleteResult, error) {
	ctx, stats := model.WithReparentStats(ctx)
	if err := s.StorageRepo.DeleteStorageLocation(ctx, id); err != nil {
		return nil, err
	}

	observability.StorageReparented.WithLabelValues("location").Add(float64(stats.Locations))
	observability.StorageReparented.WithLabelValues("box").Add(float64(stats.Boxes))
	log.Info().
		Str("evt.name", "storage.delete").
		Int64("storageLocationId", id).
		Int64("reparentedLocations", stats.Locations).
		Int64("reparentedBoxes", stats.Boxes).
		Msg("storage location deleted")

	return &types.StorageDeleteResult{
		StorageLocationID:   id,
		ReparentedLocations: stats.Locations,
		ReparentedBoxes:     stats.Boxes,
	}, nil
}

// Tree projects the whole storage forest with the boxes held at each node.
// Roots and children are ordered by id.
func (s *Storage) Tree(ctx context.Context) ([]*types.StorageNode, error) {
	locations, err := s.StorageRepo.GetStorageLocations(ctx)
	if err != nil {
		return nil, err
	}
	boxes, err := s.BoxRepo.GetStoredBoxes(ctx)
	if err != nil {
		return nil, err
	}

	boxesByLocation := lo.GroupBy(boxes, func(b *model.Box) int64 {
		return *b.StorageLocationID
	})

	nodes := make(map[int64]*types.StorageNode, len(locations))
	for _, loc := range locations {
		nodes[loc.StorageLocationID] = &types.StorageNode{
			StorageLocation: loc,
			TopLevel:        loc.IsTopLevel(),
			Children:        []*types.StorageNode{},
			Boxes:           lo.Ternary(boxesByLocation[loc.StorageLocationID] != nil, boxesByLocation[loc.StorageLocationID], []*model.Box{}),
		}
	}

	roots := make([]*types.StorageNode, 0)
	for _, loc := range locations {
		node := nodes[loc.StorageLocationID]
		if loc.IsTopLevel() {
			roots = append(roots, node)
			continue
		}
		parent, ok := nodes[*loc.ContainerID]
		if !ok {
			// container vanished between the two reads
			roots = append(roots, node)
			continue
		}
		parent.Children = append(parent.Children, node)
	}

	return roots, nil
}
