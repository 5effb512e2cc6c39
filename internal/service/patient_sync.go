package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/uptrace/bun"
	"gopkg.in/guregu/null.v3"

	"github.com/labtrack/lims/internal/app/appconfig"
	"github.com/labtrack/lims/internal/model"
	"github.com/labtrack/lims/internal/model/types"
	"github.com/labtrack/lims/internal/pkg/cache"
	"github.com/labtrack/lims/internal/pkg/limserr"
	"github.com/labtrack/lims/internal/pkg/observability"
	"github.com/labtrack/lims/internal/repo"
)

type syncAction int

const (
	// actionInsert writes a locally created record as-is.
	actionInsert syncAction = iota
	// actionInsertSynced writes an externally created record that has no local counterpart.
	actionInsertSynced
	// actionPromote confirms an unsynced local record on behalf of an external source.
	actionPromote
	actionNoop
)

// planSync decides what to do with a patient arriving from a source, given the
// record already stored under the same pid, if any.
func planSync(fromLocal bool, existing *model.Patient) syncAction {
	switch {
	case fromLocal:
		return actionInsert
	case existing == nil:
		return actionInsertSynced
	case existing.SyncState() == model.SyncStateUnsynced:
		return actionPromote
	default:
		return actionNoop
	}
}

// PatientSync creates patients and reconciles externally sourced patients with
// local drafts that share their pid.
type PatientSync struct {
	DB          *bun.DB
	PatientRepo *repo.Patient
	SourceRepo  *repo.Source

	localName   string
	localSource *cache.Singular[int64]
	now         func() time.Time
}

func NewPatientSync(db *bun.DB, patientRepo *repo.Patient, sourceRepo *repo.Source, conf *appconfig.Config) *PatientSync {
	return &PatientSync{
		DB:          db,
		PatientRepo: patientRepo,
		SourceRepo:  sourceRepo,
		localName:   conf.LocalSourceName,
		localSource: cache.NewSingular[int64]("localSourceID"),
		now: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// LocalSourceID returns the id of the seeded local source.
// Cache: (singular) localSourceID, never expires
func (s *PatientSync) LocalSourceID(ctx context.Context) (int64, error) {
	var id int64
	err := s.localSource.MutexGetSet(&id, func() (int64, error) {
		src, err := s.SourceRepo.GetSourceByName(ctx, s.localName)
		if err != nil {
			return 0, err
		}
		return src.SourceID, nil
	}, 0)
	return id, err
}

func (s *PatientSync) resolveSource(ctx context.Context, name string) (id int64, local bool, err error) {
	if name == "" || name == s.localName {
		id, err = s.LocalSourceID(ctx)
		return id, true, err
	}

	src, err := s.SourceRepo.GetSourceByName(ctx, name)
	if err != nil {
		if limserr.IsNotFound(err) {
			return 0, false, limserr.ErrNotFound.Msg("source %q not found", name)
		}
		return 0, false, err
	}
	return src.SourceID, false, nil
}

// Create stores the patient described by req. Records from the local source are
// inserted as given, so a duplicate pid fails with an integrity violation.
// Records from any other source are reconciled by pid: a new pid is inserted
// as synced, an unsynced match is promoted to synced and adopts the source, and
// a synced match is left untouched.
func (s *PatientSync) Create(ctx context.Context, req *types.CreatePatientRequest) (*types.CreatePatientResult, error) {
	start := time.Now()
	defer func() {
		observability.PatientSyncDuration.WithLabelValues().Observe(time.Since(start).Seconds())
	}()

	sourceID, fromLocal, err := s.resolveSource(ctx, req.Source)
	if err != nil {
		return nil, err
	}
	sourceName := req.Source
	if fromLocal {
		sourceName = s.localName
	}

	now := s.now()
	candidate := &model.Patient{
		PID:            req.PID,
		SourceID:       sourceID,
		DrawScheduleID: req.DrawScheduleID,
	}
	if req.ExternalID != "" {
		candidate.ExternalID = null.StringFrom(req.ExternalID)
	}
	if !fromLocal || req.Synced {
		if err := candidate.MarkSynced(sourceID, now); err != nil {
			return nil, err
		}
	}

	result := &types.CreatePatientResult{}
	err = s.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		existing, err := s.PatientRepo.GetPatientByPIDTx(ctx, tx, req.PID)
		if err != nil && !limserr.IsNotFound(err) {
			return err
		}

		outcome, err := s.execute(ctx, tx, planSync(fromLocal, existing), candidate, existing, now)
		if err != nil {
			return err
		}
		result.Outcome = outcome
		result.Created = outcome == types.SyncOutcomeCreatedLocal || outcome == types.SyncOutcomeCreatedSynced

		result.Patient, err = s.PatientRepo.GetPatientByPIDTx(ctx, tx, req.PID)
		return err
	})
	if err != nil {
		return nil, err
	}

	observability.PatientSyncOutcome.WithLabelValues(string(result.Outcome), sourceName).Inc()
	log.Info().
		Str("evt.name", "patient.sync."+syncEventName(result.Outcome)).
		Str("pid", req.PID).
		Str("source", sourceName).
		Int64("patientId", result.Patient.PatientID).
		Msg("patient reconciled")

	return result, nil
}

func (s *PatientSync) execute(ctx context.Context, tx bun.Tx, action syncAction, candidate, existing *model.Patient, now time.Time) (types.SyncOutcome, error) {
	switch action {
	case actionInsert:
		if err := s.PatientRepo.CreatePatient(ctx, tx, candidate); err != nil {
			return "", err
		}
		return types.SyncOutcomeCreatedLocal, nil

	case actionInsertSynced:
		inserted, err := s.PatientRepo.InsertIfAbsent(ctx, tx, candidate)
		if err != nil {
			return "", err
		}
		if inserted {
			return types.SyncOutcomeCreatedSynced, nil
		}
		// a concurrent writer stored the pid after our read
		return s.promote(ctx, tx, candidate.PID, candidate.SourceID, now)

	case actionPromote:
		if _, err := existing.SyncState().Transition(model.SyncStateSynced); err != nil {
			return "", err
		}
		return s.promote(ctx, tx, candidate.PID, candidate.SourceID, now)

	default:
		return types.SyncOutcomeAlreadySynced, nil
	}
}

func (s *PatientSync) promote(ctx context.Context, tx bun.Tx, pid string, sourceID int64, now time.Time) (types.SyncOutcome, error) {
	promoted, err := s.PatientRepo.PromoteUnsynced(ctx, tx, pid, sourceID, now)
	if err != nil {
		return "", err
	}
	if !promoted {
		return types.SyncOutcomeAlreadySynced, nil
	}
	return types.SyncOutcomePromoted, nil
}

func syncEventName(o types.SyncOutcome) string {
	switch o {
	case types.SyncOutcomeCreatedLocal:
		return "insert"
	case types.SyncOutcomeCreatedSynced:
		return "insert_synced"
	case types.SyncOutcomePromoted:
		return "promote"
	default:
		return "noop"
	}
}
