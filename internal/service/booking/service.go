// Package booking orchestrates slot lookup, the authorization gate and the
// appointment store. Each call runs the same short pipeline: gate check,
// input validation, referential checks, then a single store mutation.
package booking

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/medbook/clinic-api/internal/authz"
	"github.com/medbook/clinic-api/internal/model"
	"github.com/medbook/clinic-api/internal/repository"
	"github.com/medbook/clinic-api/internal/schedule"
)

type Service struct {
	appointmentRepo repository.AppointmentRepository
	doctorRepo      repository.DoctorRepository
	patientRepo     repository.PatientRepository
}

func NewService(appointmentRepo repository.AppointmentRepository,
	doctorRepo repository.DoctorRepository, patientRepo repository.PatientRepository) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		doctorRepo:      doctorRepo,
		patientRepo:     patientRepo,
	}
}

func (s *Service) ListDoctors(ctx context.Context, identity model.Identity) ([]*model.DoctorListing, error) {
	if err := authz.Authorize(identity.Role, authz.ActionListDoctors); err != nil {
		return nil, err
	}
	return s.doctorRepo.List(ctx)
}

// AvailableSlots returns the free grid labels for a doctor on a date, in
// grid order. The doctor is addressed by name.
func (s *Service) AvailableSlots(ctx context.Context, identity model.Identity, doctorName, date string) ([]string, error) {
	if err := authz.Authorize(identity.Role, authz.ActionViewAvailability); err != nil {
		return nil, err
	}
	if !schedule.ValidDate(date) {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", model.ErrValidation)
	}

	doctor, err := s.doctorRepo.GetByName(ctx, doctorName)
	if err != nil {
		return nil, err
	}

	booked, err := s.appointmentRepo.BookedSlots(ctx, doctor.ID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load booked slots: %w", err)
	}

	return schedule.Available(booked), nil
}

// Book creates a pending appointment. Patients always book for themselves;
// admins book on behalf of the patient named in the request.
func (s *Service) Book(ctx context.Context, identity model.Identity, req *model.BookAppointmentRequest) (*model.Appointment, error) {
	if err := authz.Authorize(identity.Role, authz.ActionBookAppointment); err != nil {
		return nil, err
	}

	if req.Doctor == "" || req.Date == "" || req.TimeSlot == "" {
		return nil, fmt.Errorf("%w: doctor, date and time are required", model.ErrValidation)
	}
	if !schedule.ValidDate(req.Date) {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", model.ErrValidation)
	}
	if !schedule.ValidLabel(req.TimeSlot) {
		return nil, fmt.Errorf("%w: unknown time slot %q", model.ErrValidation, req.TimeSlot)
	}

	patientID := identity.ID
	if identity.Role == model.RoleAdmin {
		if req.PatientID == uuid.Nil {
			return nil, fmt.Errorf("%w: patient_id is required", model.ErrValidation)
		}
		patientID = req.PatientID
	}
	if _, err := s.patientRepo.Get(ctx, patientID); err != nil {
		return nil, err
	}

	doctor, err := s.doctorRepo.GetByName(ctx, req.Doctor)
	if err != nil {
		return nil, err
	}

	// Check-then-insert; the store's unique constraint covers the window
	// between the two statements.
	taken, err := s.appointmentRepo.ExistsForSlot(ctx, doctor.ID, req.Date, req.TimeSlot)
	if err != nil {
		return nil, fmt.Errorf("failed to check slot: %w", err)
	}
	if taken {
		return nil, model.ErrSlotTaken
	}

	appointment := &model.Appointment{
		PatientID: patientID,
		DoctorID:  doctor.ID,
		Date:      req.Date,
		TimeSlot:  req.TimeSlot,
		Status:    model.AppointmentStatusPending,
	}
	if err := s.appointmentRepo.Create(ctx, appointment); err != nil {
		return nil, err
	}
	return appointment, nil
}

// DoctorAppointments lists the caller's own schedule with patient names.
func (s *Service) DoctorAppointments(ctx context.Context, identity model.Identity) ([]*model.DoctorAppointment, error) {
	if err := authz.Authorize(identity.Role, authz.ActionListOwnSchedule); err != nil {
		return nil, err
	}
	if _, err := s.doctorRepo.Get(ctx, identity.ID); err != nil {
		return nil, err
	}
	return s.appointmentRepo.ListByDoctor(ctx, identity.ID)
}

// MarkDone transitions a pending appointment to done. Only the owning
// doctor may do this, and done is final.
func (s *Service) MarkDone(ctx context.Context, identity model.Identity, appointmentID uuid.UUID) error {
	appointment, err := s.ownedAppointment(ctx, identity, authz.ActionMarkDone, appointmentID)
	if err != nil {
		return err
	}
	if appointment.Status == model.AppointmentStatusDone {
		return model.ErrDoneFinal
	}
	return s.appointmentRepo.UpdateStatus(ctx, appointmentID, model.AppointmentStatusDone)
}

// Delete removes an appointment owned by the calling doctor.
func (s *Service) Delete(ctx context.Context, identity model.Identity, appointmentID uuid.UUID) error {
	if _, err := s.ownedAppointment(ctx, identity, authz.ActionDeleteBooking, appointmentID); err != nil {
		return err
	}
	return s.appointmentRepo.Delete(ctx, appointmentID)
}

// ownedAppointment runs the role check followed by the ownership check and
// returns the appointment when both pass.
func (s *Service) ownedAppointment(ctx context.Context, identity model.Identity, action authz.Action, appointmentID uuid.UUID) (*model.Appointment, error) {
	if err := authz.Authorize(identity.Role, action); err != nil {
		return nil, err
	}

	appointment, err := s.appointmentRepo.Get(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appointment.DoctorID != identity.ID {
		return nil, model.ErrNotOwner
	}
	return appointment, nil
}
