package service

import (
	"context"

	"github.com/jinzhu/copier"
	"github.com/pkg/errors"
	"gopkg.in/guregu/null.v3"

	"github.com/labtrack/lims/internal/model"
	"github.com/labtrack/lims/internal/model/types"
	"github.com/labtrack/lims/internal/pkg/limserr"
	"github.com/labtrack/lims/internal/repo"
)

const maxAliquotTimes = 100

type Aliquot struct {
	AliquotRepo  *repo.Aliquot
	SpecimenRepo *repo.Specimen
}

func NewAliquot(aliquotRepo *repo.Aliquot, specimenRepo *repo.Specimen) *Aliquot {
	return &Aliquot{
		AliquotRepo:  aliquotRepo,
		SpecimenRepo: specimenRepo,
	}
}

func (s *Aliquot) GetAliquots(ctx context.Context, specimenID *int64) ([]*model.Aliquot, error) {
	return s.AliquotRepo.GetAliquots(ctx, specimenID)
}

func (s *Aliquot) GetAliquotByID(ctx context.Context, id int64) (*model.Aliquot, error) {
	return s.AliquotRepo.GetAliquotByID(ctx, id)
}

// CreateAliquots stamps out req.Times identical aliquots of one specimen in a
// single insert. A zero Times creates one.
func (s *Aliquot) CreateAliquots(ctx context.Context, req *types.CreateAliquotRequest) ([]*model.Aliquot, error) {
	times := req.Times
	if times == 0 {
		times = 1
	}
	if times < 1 || times > maxAliquotTimes {
		return nil, limserr.ErrInvalidReq.Msg("times must be between 1 and %d", maxAliquotTimes)
	}

	if _, err := s.SpecimenRepo.GetSpecimenByID(ctx, req.SpecimenID); err != nil {
		return nil, err
	}

	template := model.Aliquot{
		SpecimenID:    req.SpecimenID,
		AliquotTypeID: req.AliquotTypeID,
		VisitID:       req.VisitID,
		CollectedAt:   req.CollectedAt.UTC(),
		Volume:        req.Volume,
	}
	if req.Notes != "" {
		template.Notes = null.StringFrom(req.Notes)
	}

	aliquots := make([]*model.Aliquot, times)
	for i := range aliquots {
		aliquots[i] = &model.Aliquot{}
		if err := copier.Copy(aliquots[i], &template); err != nil {
			return nil, errors.Wrap(err, "aliquot: failed to copy template")
		}
	}

	if err := s.AliquotRepo.CreateAliquots(ctx, aliquots); err != nil {
		return nil, err
	}
	return aliquots, nil
}
