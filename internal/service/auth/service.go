package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/medbook/clinic-api/internal/authz"
	"github.com/medbook/clinic-api/internal/model"
	"github.com/medbook/clinic-api/internal/repository"
	"github.com/medbook/clinic-api/internal/token"
	"github.com/medbook/clinic-api/pkg/auth"
)

const bcryptCost = 12

type Service struct {
	userRepo    repository.UserRepository
	doctorRepo  repository.DoctorRepository
	patientRepo repository.PatientRepository
	jwtSvc      auth.JWTService
	revoker     token.Revoker
}

func NewService(userRepo repository.UserRepository, doctorRepo repository.DoctorRepository,
	patientRepo repository.PatientRepository, jwtSvc auth.JWTService, revoker token.Revoker) *Service {
	return &Service{
		userRepo:    userRepo,
		doctorRepo:  doctorRepo,
		patientRepo: patientRepo,
		jwtSvc:      jwtSvc,
		revoker:     revoker,
	}
}

// Signup registers an identity and, for doctors and patients, the matching
// role profile. Both rows persist or neither does.
func (s *Service) Signup(ctx context.Context, req *model.SignupRequest) (*model.User, error) {
	if !req.Role.Valid() {
		return nil, fmt.Errorf("%w: role must be Admin, Doctor or Patient", model.ErrValidation)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hashed),
		Role:         req.Role,
	}

	var doctor *model.Doctor
	var patient *model.Patient
	switch req.Role {
	case model.RoleDoctor:
		specialty := req.Specialty
		if specialty == "" {
			specialty = model.DefaultSpecialty
		}
		slots := req.AvailableSlots
		if slots == "" {
			slots = model.DefaultAvailableSlots
		}
		doctor = &model.Doctor{
			Name:           req.Name,
			Email:          req.Email,
			Specialty:      specialty,
			AvailableSlots: slots,
		}
	case model.RolePatient:
		patient = &model.Patient{
			Name:  req.Name,
			Email: req.Email,
		}
	}

	if err := s.userRepo.CreateWithProfile(ctx, user, doctor, patient); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (*model.TokenResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, model.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, model.ErrInvalidCredentials
	}

	accessToken, err := s.jwtSvc.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &model.TokenResponse{
		AccessToken: accessToken,
		Role:        user.Role,
		Name:        user.Name,
	}, nil
}

// Logout revokes the token's jti for the remainder of its lifetime.
func (s *Service) Logout(ctx context.Context, claims *model.TokenClaims) error {
	ttl := time.Until(claims.ExpiresAt.Time)
	if err := s.revoker.Revoke(ctx, claims.ID, ttl); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// ValidateToken checks signature, expiry and revocation, and returns the
// claims on success.
func (s *Service) ValidateToken(ctx context.Context, tokenString string) (*model.TokenClaims, error) {
	claims, err := s.jwtSvc.ValidateToken(tokenString)
	if err != nil {
		return nil, model.ErrUnauthenticated
	}

	revoked, err := s.revoker.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check token revocation: %w", err)
	}
	if revoked {
		return nil, model.ErrUnauthenticated
	}

	return claims, nil
}

func (s *Service) CurrentUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return s.userRepo.Get(ctx, id)
}

// DashboardPayload is the role-specific dashboard response.
type DashboardPayload struct {
	Message   string    `json:"message"`
	Role      model.Role `json:"role"`
	Name      string    `json:"name,omitempty"`
	DoctorID  uuid.UUID `json:"doctor_id,omitempty"`
	PatientID uuid.UUID `json:"patient_id,omitempty"`
	Specialty string    `json:"specialty,omitempty"`
}

func (s *Service) Dashboard(ctx context.Context, identity model.Identity) (*DashboardPayload, error) {
	if err := authz.Authorize(identity.Role, authz.ActionViewDashboard); err != nil {
		return nil, err
	}

	switch identity.Role {
	case model.RolePatient:
		patient, err := s.patientRepo.Get(ctx, identity.ID)
		if err != nil {
			return nil, err
		}
		return &DashboardPayload{
			Message:   fmt.Sprintf("Welcome %s", patient.Name),
			Role:      model.RolePatient,
			Name:      patient.Name,
			PatientID: patient.ID,
		}, nil
	case model.RoleDoctor:
		doctor, err := s.doctorRepo.Get(ctx, identity.ID)
		if err != nil {
			return nil, err
		}
		return &DashboardPayload{
			Message:   fmt.Sprintf("Welcome Dr. %s", doctor.Name),
			Role:      model.RoleDoctor,
			Name:      doctor.Name,
			DoctorID:  doctor.ID,
			Specialty: doctor.Specialty,
		}, nil
	default:
		return &DashboardPayload{
			Message: "Welcome Admin",
			Role:    model.RoleAdmin,
		}, nil
	}
}
