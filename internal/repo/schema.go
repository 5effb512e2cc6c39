package repo

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/uptrace/bun"

	"github.com/labtrack/lims/internal/app/appconfig"
	"github.com/labtrack/lims/internal/model"
)

// Schema creates the tables of model.Tables and seeds the rows the service
// cannot run without.
type Schema struct {
	db        *bun.DB
	localName string
}

func NewSchema(db *bun.DB, conf *appconfig.Config) *Schema {
	return &Schema{
		db:        db,
		localName: conf.LocalSourceName,
	}
}

func (s *Schema) Migrate(ctx context.Context) error {
	for _, table := range model.Tables {
		q := s.db.NewCreateTable().
			Model(table.Model).
			IfNotExists()
		for _, fk := range table.ForeignKeys {
			q = q.ForeignKey(fk)
		}
		if _, err := q.Exec(ctx); err != nil {
			return errors.Wrapf(err, "schema: failed to create table %s", table.Name)
		}
		log.Debug().
			Str("evt.name", "schema.migrate.table").
			Str("table", table.Name).
			Msg("table ensured")
	}

	_, err := s.db.NewCreateIndex().
		Model((*model.Specimen)(nil)).
		Index("specimens_patient_id_idx").
		IfNotExists().
		Column("patient_id").
		Exec(ctx)
	if err != nil {
		return errors.Wrap(err, "schema: failed to create specimens index")
	}

	_, err = s.db.NewCreateIndex().
		Model((*model.Aliquot)(nil)).
		Index("aliquots_specimen_id_idx").
		IfNotExists().
		Column("specimen_id").
		Exec(ctx)
	if err != nil {
		return errors.Wrap(err, "schema: failed to create aliquots index")
	}

	return s.Seed(ctx)
}

func (s *Schema) Seed(ctx context.Context) error {
	_, err := s.db.NewInsert().
		Model(&model.Source{Name: s.localName}).
		On("CONFLICT (name) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return errors.Wrapf(err, "schema: failed to seed source %q", s.localName)
	}
	return nil
}
