package repo

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/labtrack/lims/internal/model"
	"github.com/labtrack/lims/internal/pkg/dberr"
	"github.com/labtrack/lims/internal/repo/selector"
)

// Catalog holds the small lookup tables: events, visits, schedules, specimen
// and aliquot types, carriers and destinations.
type Catalog struct {
	db *bun.DB

	events        selector.S[model.Event]
	visits        selector.S[model.Visit]
	schedules     selector.S[model.Schedule]
	specimenTypes selector.S[model.SpecimenType]
	aliquotTypes  selector.S[model.AliquotType]
	carriers      selector.S[model.Carrier]
	destinations  selector.S[model.Destination]
}

func NewCatalog(db *bun.DB) *Catalog {
	return &Catalog{
		db:            db,
		events:        selector.New[model.Event](db),
		visits:        selector.New[model.Visit](db),
		schedules:     selector.New[model.Schedule](db),
		specimenTypes: selector.New[model.SpecimenType](db),
		aliquotTypes:  selector.New[model.AliquotType](db),
		carriers:      selector.New[model.Carrier](db),
		destinations:  selector.New[model.Destination](db),
	}
}

func (r *Catalog) insert(ctx context.Context, m any, pk string) error {
	_, err := r.db.NewInsert().Model(m).Returning(pk).Exec(ctx)
	return dberr.Translate(err)
}

func (r *Catalog) GetEvents(ctx context.Context) ([]*model.Event, error) {
	return r.events.SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Order("event_order ASC")
	})
}

func (r *Catalog) CreateEvent(ctx context.Context, event *model.Event) error {
	return r.insert(ctx, event, "event_id")
}

func (r *Catalog) GetVisits(ctx context.Context) ([]*model.Visit, error) {
	return r.visits.SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Order("visit_id ASC")
	})
}

func (r *Catalog) CreateVisit(ctx context.Context, visit *model.Visit) error {
	return r.insert(ctx, visit, "visit_id")
}

func (r *Catalog) GetSchedules(ctx context.Context) ([]*model.Schedule, error) {
	return r.schedules.SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Order("schedule_id ASC")
	})
}

func (r *Catalog) GetScheduleByID(ctx context.Context, id int64) (*model.Schedule, error) {
	return r.schedules.SelectOne(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("schedule_id = ?", id)
	})
}

func (r *Catalog) CreateSchedule(ctx context.Context, schedule *model.Schedule) error {
	return r.insert(ctx, schedule, "schedule_id")
}

func (r *Catalog) GetSpecimenTypes(ctx context.Context) ([]*model.SpecimenType, error) {
	return r.specimenTypes.SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Order("specimen_type_id ASC")
	})
}

func (r *Catalog) CreateSpecimenType(ctx context.Context, t *model.SpecimenType) error {
	return r.insert(ctx, t, "specimen_type_id")
}

func (r *Catalog) GetAliquotTypes(ctx context.Context) ([]*model.AliquotType, error) {
	return r.aliquotTypes.SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Order("aliquot_type_id ASC")
	})
}

func (r *Catalog) CreateAliquotType(ctx context.Context, t *model.AliquotType) error {
	return r.insert(ctx, t, "aliquot_type_id")
}

func (r *Catalog) GetCarriers(ctx context.Context) ([]*model.Carrier, error) {
	return r.carriers.SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Order("carrier_id ASC")
	})
}

func (r *Catalog) CreateCarrier(ctx context.Context, c *model.Carrier) error {
	return r.insert(ctx, c, "carrier_id")
}

func (r *Catalog) GetDestinations(ctx context.Context) ([]*model.Destination, error) {
	return r.destinations.SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Order("destination_id ASC")
	})
}

func (r *Catalog) CreateDestination(ctx context.Context, d *model.Destination) error {
	return r.insert(ctx, d, "destination_id")
}
