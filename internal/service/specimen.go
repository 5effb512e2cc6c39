package service

import (
	"context"

	"gopkg.in/guregu/null.v3"

	"github.com/labtrack/lims/internal/model"
	"github.com/labtrack/lims/internal/model/types"
	"github.com/labtrack/lims/internal/repo"
)

type Specimen struct {
	SpecimenRepo *repo.Specimen
	PatientRepo  *repo.Patient
}

func NewSpecimen(specimenRepo *repo.Specimen, patientRepo *repo.Patient) *Specimen {
	return &Specimen{
		SpecimenRepo: specimenRepo,
		PatientRepo:  patientRepo,
	}
}

func (s *Specimen) GetSpecimens(ctx context.Context, patientID *int64) ([]*model.Specimen, error) {
	return s.SpecimenRepo.GetSpecimens(ctx, patientID)
}

func (s *Specimen) GetSpecimenByID(ctx context.Context, id int64) (*model.Specimen, error) {
	return s.SpecimenRepo.GetSpecimenByID(ctx, id)
}

func (s *Specimen) CreateSpecimen(ctx context.Context, req *types.CreateSpecimenRequest) (*model.Specimen, error) {
	if _, err := s.PatientRepo.GetPatientByID(ctx, req.PatientID); err != nil {
		return nil, err
	}

	specimen := &model.Specimen{
		PatientID:      req.PatientID,
		SpecimenTypeID: req.SpecimenTypeID,
		CollectedAt:    req.CollectedAt.UTC(),
		Volume:         req.Volume,
	}
	if req.Notes != "" {
		specimen.Notes = null.StringFrom(req.Notes)
	}

	if err := s.SpecimenRepo.CreateSpecimen(ctx, specimen); err != nil {
		return nil, err
	}
	return s.SpecimenRepo.GetSpecimenByID(ctx, specimen.SpecimenID)
}
