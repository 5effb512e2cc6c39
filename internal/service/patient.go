package service

import (
	"context"

	"github.com/labtrack/lims/internal/model"
	"github.com/labtrack/lims/internal/pkg/limserr"
	"github.com/labtrack/lims/internal/repo"
)

const maxPageSize = 500

type Patient struct {
	PatientRepo *repo.Patient
}

func NewPatient(patientRepo *repo.Patient) *Patient {
	return &Patient{
		PatientRepo: patientRepo,
	}
}

// GetPatients pages through patients by id. A zero limit returns up to maxPageSize rows.
func (s *Patient) GetPatients(ctx context.Context, offset, limit int) ([]*model.Patient, error) {
	if offset < 0 || limit < 0 {
		return nil, limserr.ErrInvalidReq.Msg("offset and limit must not be negative")
	}
	if limit == 0 || limit > maxPageSize {
		limit = maxPageSize
	}
	return s.PatientRepo.GetPatients(ctx, offset, limit)
}

func (s *Patient) CountPatients(ctx context.Context) (int, error) {
	return s.PatientRepo.CountPatients(ctx)
}

// GetPatient looks a patient up by the first identifier given, in the order id,
// pid, externalId. It returns nil without error when no identifier is given.
func (s *Patient) GetPatient(ctx context.Context, id *int64, pid, externalID *string) (*model.Patient, error) {
	switch {
	case id != nil:
		return s.PatientRepo.GetPatientByID(ctx, *id)
	case pid != nil:
		return s.PatientRepo.GetPatientByPID(ctx, *pid)
	case externalID != nil:
		return s.PatientRepo.GetPatientByExternalID(ctx, *externalID)
	default:
		return nil, nil
	}
}

func (s *Patient) EditPID(ctx context.Context, id int64, pid string) (*model.Patient, error) {
	patient, err := s.PatientRepo.GetPatientByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patient.PID == pid {
		return patient, nil
	}

	patient.PID = pid
	if err := s.PatientRepo.UpdatePID(ctx, patient); err != nil {
		return nil, err
	}
	return s.PatientRepo.GetPatientByID(ctx, id)
}
