package service

import (
	"context"

	"github.com/labtrack/lims/internal/model"
	"github.com/labtrack/lims/internal/repo"
)

// Catalog serves the small lookup tables: events, visits, schedules, specimen
// and aliquot types, carriers and destinations.
type Catalog struct {
	CatalogRepo *repo.Catalog
	SourceRepo  *repo.Source
}

func NewCatalog(catalogRepo *repo.Catalog, sourceRepo *repo.Source) *Catalog {
	return &Catalog{
		CatalogRepo: catalogRepo,
		SourceRepo:  sourceRepo,
	}
}

func (s *Catalog) GetSources(ctx context.Context) ([]*model.Source, error) {
	return s.SourceRepo.GetSources(ctx)
}

func (s *Catalog) GetEvents(ctx context.Context) ([]*model.Event, error) {
	return s.CatalogRepo.GetEvents(ctx)
}

func (s *Catalog) CreateEvent(ctx context.Context, name string, order int) (*model.Event, error) {
	event := &model.Event{Name: name, Order: order}
	if err := s.CatalogRepo.CreateEvent(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *Catalog) GetVisits(ctx context.Context) ([]*model.Visit, error) {
	return s.CatalogRepo.GetVisits(ctx)
}

func (s *Catalog) GetSchedules(ctx context.Context) ([]*model.Schedule, error) {
	return s.CatalogRepo.GetSchedules(ctx)
}

func (s *Catalog) GetSpecimenTypes(ctx context.Context) ([]*model.SpecimenType, error) {
	return s.CatalogRepo.GetSpecimenTypes(ctx)
}

func (s *Catalog) GetAliquotTypes(ctx context.Context) ([]*model.AliquotType, error) {
	return s.CatalogRepo.GetAliquotTypes(ctx)
}

func (s *Catalog) GetCarriers(ctx context.Context) ([]*model.Carrier, error) {
	return s.CatalogRepo.GetCarriers(ctx)
}

func (s *Catalog) GetDestinations(ctx context.Context) ([]*model.Destination, error) {
	return s.CatalogRepo.GetDestinations(ctx)
}
