package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/medbook/clinic-api/internal/model"
)

// All repository interfaces in one file
type (
	// UserRepository handles identity records. Signup writes the identity and
	// its role profile in one transaction so a failed profile insert never
	// leaves an orphaned identity behind.
	UserRepository interface {
		CreateWithProfile(ctx context.Context, user *model.User, doctor *model.Doctor, patient *model.Patient) error
		Get(ctx context.Context, id uuid.UUID) (*model.User, error)
		GetByEmail(ctx context.Context, email string) (*model.User, error)
		ListAdmins(ctx context.Context) ([]*model.User, error)
		DeleteAdmin(ctx context.Context, id uuid.UUID) error
	}

	DoctorRepository interface {
		Get(ctx context.Context, id uuid.UUID) (*model.Doctor, error)
		GetByName(ctx context.Context, name string) (*model.Doctor, error)
		List(ctx context.Context) ([]*model.DoctorListing, error)
		ListFull(ctx context.Context) ([]*model.Doctor, error)
		// DeleteCascade removes the doctor's appointments, profile and
		// identity as one transaction.
		DeleteCascade(ctx context.Context, id uuid.UUID) error
	}

	PatientRepository interface {
		Get(ctx context.Context, id uuid.UUID) (*model.Patient, error)
		List(ctx context.Context) ([]*model.Patient, error)
		DeleteCascade(ctx context.Context, id uuid.UUID) error
	}

	AppointmentRepository interface {
		Create(ctx context.Context, appointment *model.Appointment) error
		Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
		ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.DoctorAppointment, error)
		ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Appointment, error)
		BookedSlots(ctx context.Context, doctorID uuid.UUID, date string) ([]string, error)
		ExistsForSlot(ctx context.Context, doctorID uuid.UUID, date, timeSlot string) (bool, error)
		UpdateStatus(ctx context.Context, id uuid.UUID, status model.AppointmentStatus) error
		Delete(ctx context.Context, id uuid.UUID) error
	}
)
