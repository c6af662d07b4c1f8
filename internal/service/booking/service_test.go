package booking

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medbook/clinic-api/internal/model"
	"github.com/medbook/clinic-api/internal/schedule"
)

type memDoctorRepo struct {
	doctors map[uuid.UUID]*model.Doctor
}

func (r *memDoctorRepo) Get(_ context.Context, id uuid.UUID) (*model.Doctor, error) {
	if d, ok := r.doctors[id]; ok {
		return d, nil
	}
	return nil, model.ErrDoctorNotFound
}

func (r *memDoctorRepo) GetByName(_ context.Context, name string) (*model.Doctor, error) {
	for _, d := range r.doctors {
		if d.Name == name {
			return d, nil
		}
	}
	return nil, model.ErrDoctorNotFound
}

func (r *memDoctorRepo) List(_ context.Context) ([]*model.DoctorListing, error) {
	var out []*model.DoctorListing
	for _, d := range r.doctors {
		out = append(out, &model.DoctorListing{ID: d.ID, Name: d.Name, Specialty: d.Specialty})
	}
	return out, nil
}

func (r *memDoctorRepo) ListFull(_ context.Context) ([]*model.Doctor, error) {
	var out []*model.Doctor
	for _, d := range r.doctors {
		out = append(out, d)
	}
	return out, nil
}

func (r *memDoctorRepo) DeleteCascade(_ context.Context, id uuid.UUID) error {
	if _, ok := r.doctors[id]; !ok {
		return model.ErrDoctorNotFound
	}
	delete(r.doctors, id)
	return nil
}

type memPatientRepo struct {
	patients map[uuid.UUID]*model.Patient
}

func (r *memPatientRepo) Get(_ context.Context, id uuid.UUID) (*model.Patient, error) {
	if p, ok := r.patients[id]; ok {
		return p, nil
	}
	return nil, model.ErrPatientNotFound
}

func (r *memPatientRepo) List(_ context.Context) ([]*model.Patient, error) {
	var out []*model.Patient
	for _, p := range r.patients {
		out = append(out, p)
	}
	return out, nil
}

func (r *memPatientRepo) DeleteCascade(_ context.Context, id uuid.UUID) error {
	if _, ok := r.patients[id]; !ok {
		return model.ErrPatientNotFound
	}
	delete(r.patients, id)
	return nil
}

type memAppointmentRepo struct {
	appointments map[uuid.UUID]*model.Appointment
}

func newMemAppointmentRepo() *memAppointmentRepo {
	return &memAppointmentRepo{appointments: make(map[uuid.UUID]*model.Appointment)}
}

func (r *memAppointmentRepo) Create(_ context.Context, a *model.Appointment) error {
	for _, existing := range r.appointments {
		if existing.DoctorID == a.DoctorID && existing.Date == a.Date && existing.TimeSlot == a.TimeSlot {
			return model.ErrSlotTaken
		}
	}
	a.ID = uuid.New()
	cp := *a
	r.appointments[a.ID] = &cp
	return nil
}

func (r *memAppointmentRepo) Get(_ context.Context, id uuid.UUID) (*model.Appointment, error) {
	if a, ok := r.appointments[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, model.ErrAppointmentNotFound
}

func (r *memAppointmentRepo) ListByDoctor(_ context.Context, doctorID uuid.UUID) ([]*model.DoctorAppointment, error) {
	var out []*model.DoctorAppointment
	for _, a := range r.appointments {
		if a.DoctorID == doctorID {
			out = append(out, &model.DoctorAppointment{
				ID: a.ID, PatientName: "Unknown", Date: a.Date, TimeSlot: a.TimeSlot, Status: a.Status,
			})
		}
	}
	return out, nil
}

func (r *memAppointmentRepo) ListByPatient(_ context.Context, patientID uuid.UUID) ([]*model.Appointment, error) {
	var out []*model.Appointment
	for _, a := range r.appointments {
		if a.PatientID == patientID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *memAppointmentRepo) BookedSlots(_ context.Context, doctorID uuid.UUID, date string) ([]string, error) {
	var out []string
	for _, a := range r.appointments {
		if a.DoctorID == doctorID && a.Date == date {
			out = append(out, a.TimeSlot)
		}
	}
	return out, nil
}

func (r *memAppointmentRepo) ExistsForSlot(_ context.Context, doctorID uuid.UUID, date, timeSlot string) (bool, error) {
	for _, a := range r.appointments {
		if a.DoctorID == doctorID && a.Date == date && a.TimeSlot == timeSlot {
			return true, nil
		}
	}
	return false, nil
}

func (r *memAppointmentRepo) UpdateStatus(_ context.Context, id uuid.UUID, status model.AppointmentStatus) error {
	a, ok := r.appointments[id]
	if !ok {
		return model.ErrAppointmentNotFound
	}
	a.Status = status
	return nil
}

func (r *memAppointmentRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.appointments[id]; !ok {
		return model.ErrAppointmentNotFound
	}
	delete(r.appointments, id)
	return nil
}

type fixture struct {
	svc       *Service
	appts     *memAppointmentRepo
	doctorID  uuid.UUID
	patientID uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	doctorID := uuid.New()
	patientID := uuid.New()

	doctors := &memDoctorRepo{doctors: map[uuid.UUID]*model.Doctor{
		doctorID: {ID: doctorID, Name: "Dr. A", Email: "dra@example.com", Specialty: "Cardio", AvailableSlots: model.DefaultAvailableSlots},
	}}
	patients := &memPatientRepo{patients: map[uuid.UUID]*model.Patient{
		patientID: {ID: patientID, Name: "P1", Email: "p1@example.com"},
	}}
	appts := newMemAppointmentRepo()

	return &fixture{
		svc:       NewService(appts, doctors, patients),
		appts:     appts,
		doctorID:  doctorID,
		patientID: patientID,
	}
}

func (f *fixture) patient() model.Identity {
	return model.Identity{ID: f.patientID, Role: model.RolePatient}
}

func (f *fixture) doctor() model.Identity {
	return model.Identity{ID: f.doctorID, Role: model.RoleDoctor}
}

func TestBookAndAvailability(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	appt, err := f.svc.Book(ctx, f.patient(), &model.BookAppointmentRequest{
		Doctor: "Dr. A", Date: "2024-05-01", TimeSlot: "09:00AM",
	})
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusPending, appt.Status)
	assert.Equal(t, f.patientID, appt.PatientID)
	assert.Equal(t, f.doctorID, appt.DoctorID)

	free, err := f.svc.AvailableSlots(ctx, f.patient(), "Dr. A", "2024-05-01")
	require.NoError(t, err)
	assert.Len(t, free, 7)
	assert.NotContains(t, free, "09:00AM")

	// Second booking for the identical slot conflicts, and only one record
	// exists afterwards.
	_, err = f.svc.Book(ctx, f.patient(), &model.BookAppointmentRequest{
		Doctor: "Dr. A", Date: "2024-05-01", TimeSlot: "09:00AM",
	})
	assert.ErrorIs(t, err, model.ErrSlotTaken)
	assert.Len(t, f.appts.appointments, 1)
}

func TestAvailableSlotsFullGridWhenUnbooked(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	free, err := f.svc.AvailableSlots(ctx, f.patient(), "Dr. A", "2030-12-24")
	require.NoError(t, err)
	assert.Equal(t, schedule.Grid(), free)
}

func TestAvailableSlotsUnknownDoctor(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.AvailableSlots(context.Background(), f.patient(), "Dr. Nobody", "2024-05-01")
	assert.ErrorIs(t, err, model.ErrDoctorNotFound)
}

func TestBookValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.Book(ctx, f.patient(), &model.BookAppointmentRequest{
		Doctor: "Dr. A", Date: "01/05/2024", TimeSlot: "09:00AM",
	})
	assert.ErrorIs(t, err, model.ErrValidation)

	_, err = f.svc.Book(ctx, f.patient(), &model.BookAppointmentRequest{
		Doctor: "Dr. A", Date: "2024-05-01", TimeSlot: "08:00AM",
	})
	assert.ErrorIs(t, err, model.ErrValidation)

	_, err = f.svc.Book(ctx, f.patient(), &model.BookAppointmentRequest{
		Date: "2024-05-01", TimeSlot: "09:00AM",
	})
	assert.ErrorIs(t, err, model.ErrValidation)
}

func TestBookRoleGate(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Book(context.Background(), f.doctor(), &model.BookAppointmentRequest{
		Doctor: "Dr. A", Date: "2024-05-01", TimeSlot: "09:00AM",
	})
	assert.ErrorIs(t, err, model.ErrForbidden)
}

func TestBookAdminOnBehalfOfPatient(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	admin := model.Identity{ID: uuid.New(), Role: model.RoleAdmin}

	_, err := f.svc.Book(ctx, admin, &model.BookAppointmentRequest{
		Doctor: "Dr. A", Date: "2024-05-01", TimeSlot: "10:00AM",
	})
	assert.ErrorIs(t, err, model.ErrValidation)

	appt, err := f.svc.Book(ctx, admin, &model.BookAppointmentRequest{
		PatientID: f.patientID, Doctor: "Dr. A", Date: "2024-05-01", TimeSlot: "10:00AM",
	})
	require.NoError(t, err)
	assert.Equal(t, f.patientID, appt.PatientID)
}

func TestBookUnknownPatient(t *testing.T) {
	f := newFixture(t)
	admin := model.Identity{ID: uuid.New(), Role: model.RoleAdmin}

	_, err := f.svc.Book(context.Background(), admin, &model.BookAppointmentRequest{
		PatientID: uuid.New(), Doctor: "Dr. A", Date: "2024-05-01", TimeSlot: "10:00AM",
	})
	assert.ErrorIs(t, err, model.ErrPatientNotFound)
}

func TestMarkDoneOwnership(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	appt, err := f.svc.Book(ctx, f.patient(), &model.BookAppointmentRequest{
		Doctor: "Dr. A", Date: "2024-05-01", TimeSlot: "11:00AM",
	})
	require.NoError(t, err)

	stranger := model.Identity{ID: uuid.New(), Role: model.RoleDoctor}
	err = f.svc.MarkDone(ctx, stranger, appt.ID)
	assert.ErrorIs(t, err, model.ErrNotOwner)

	// The appointment is unchanged after the denied attempt.
	stored, err := f.appts.Get(ctx, appt.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusPending, stored.Status)

	require.NoError(t, f.svc.MarkDone(ctx, f.doctor(), appt.ID))
	stored, err = f.appts.Get(ctx, appt.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusDone, stored.Status)

	// done is final
	err = f.svc.MarkDone(ctx, f.doctor(), appt.ID)
	assert.ErrorIs(t, err, model.ErrDoneFinal)
}

func TestDeleteOwnership(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	appt, err := f.svc.Book(ctx, f.patient(), &model.BookAppointmentRequest{
		Doctor: "Dr. A", Date: "2024-05-01", TimeSlot: "12:00PM",
	})
	require.NoError(t, err)

	stranger := model.Identity{ID: uuid.New(), Role: model.RoleDoctor}
	err = f.svc.Delete(ctx, stranger, appt.ID)
	assert.ErrorIs(t, err, model.ErrNotOwner)
	assert.Len(t, f.appts.appointments, 1)

	require.NoError(t, f.svc.Delete(ctx, f.doctor(), appt.ID))
	assert.Empty(t, f.appts.appointments)
}

func TestDoctorAppointmentsSelfOnly(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.DoctorAppointments(ctx, f.patient())
	assert.ErrorIs(t, err, model.ErrForbidden)

	_, err = f.svc.Book(ctx, f.patient(), &model.BookAppointmentRequest{
		Doctor: "Dr. A", Date: "2024-05-01", TimeSlot: "01:00PM",
	})
	require.NoError(t, err)

	appts, err := f.svc.DoctorAppointments(ctx, f.doctor())
	require.NoError(t, err)
	assert.Len(t, appts, 1)
}

// Full signup-to-conflict flow from the doctor's point of view.
func TestBookingScenario(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	appt, err := f.svc.Book(ctx, f.patient(), &model.BookAppointmentRequest{
		Doctor: "Dr. A", Date: "2024-05-01", TimeSlot: "09:00AM",
	})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, appt.ID)

	free, err := f.svc.AvailableSlots(ctx, f.patient(), "Dr. A", "2024-05-01")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"10:00AM", "11:00AM", "12:00PM", "01:00PM", "02:00PM", "03:00PM", "04:00PM",
	}, free)

	_, err = f.svc.Book(ctx, f.patient(), &model.BookAppointmentRequest{
		Doctor: "Dr. A", Date: "2024-05-01", TimeSlot: "09:00AM",
	})
	assert.ErrorIs(t, err, model.ErrSlotTaken)
}
