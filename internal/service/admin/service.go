package admin

import (
	"context"

	"github.com/google/uuid"

	"github.com/medbook/clinic-api/internal/authz"
	"github.com/medbook/clinic-api/internal/model"
	"github.com/medbook/clinic-api/internal/repository"
)

type Service struct {
	userRepo    repository.UserRepository
	doctorRepo  repository.DoctorRepository
	patientRepo repository.PatientRepository
}

func NewService(userRepo repository.UserRepository, doctorRepo repository.DoctorRepository,
	patientRepo repository.PatientRepository) *Service {
	return &Service{
		userRepo:    userRepo,
		doctorRepo:  doctorRepo,
		patientRepo: patientRepo,
	}
}

func (s *Service) ListDoctors(ctx context.Context, identity model.Identity) ([]*model.Doctor, error) {
	if err := authz.Authorize(identity.Role, authz.ActionAdminList); err != nil {
		return nil, err
	}
	return s.doctorRepo.ListFull(ctx)
}

func (s *Service) ListPatients(ctx context.Context, identity model.Identity) ([]*model.Patient, error) {
	if err := authz.Authorize(identity.Role, authz.ActionAdminList); err != nil {
		return nil, err
	}
	return s.patientRepo.List(ctx)
}

func (s *Service) ListAdmins(ctx context.Context, identity model.Identity) ([]*model.User, error) {
	if err := authz.Authorize(identity.Role, authz.ActionAdminList); err != nil {
		return nil, err
	}
	return s.userRepo.ListAdmins(ctx)
}

// DeleteDoctor removes the doctor's appointments, profile and identity as
// one unit.
func (s *Service) DeleteDoctor(ctx context.Context, identity model.Identity, id uuid.UUID) error {
	if err := authz.Authorize(identity.Role, authz.ActionAdminDelete); err != nil {
		return err
	}
	return s.doctorRepo.DeleteCascade(ctx, id)
}

func (s *Service) DeletePatient(ctx context.Context, identity model.Identity, id uuid.UUID) error {
	if err := authz.Authorize(identity.Role, authz.ActionAdminDelete); err != nil {
		return err
	}
	return s.patientRepo.DeleteCascade(ctx, id)
}

// DeleteAdmin deletes another admin account. Admins cannot delete
// themselves.
func (s *Service) DeleteAdmin(ctx context.Context, identity model.Identity, id uuid.UUID) error {
	if err := authz.Authorize(identity.Role, authz.ActionAdminDelete); err != nil {
		return err
	}
	if id == identity.ID {
		return model.ErrSelfDelete
	}
	return s.userRepo.DeleteAdmin(ctx, id)
}
