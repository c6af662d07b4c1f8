package booking

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medbook/clinic-api/internal/middleware"
	"github.com/medbook/clinic-api/internal/model"
	"github.com/medbook/clinic-api/internal/service/booking"
)

type stubDoctorRepo struct {
	doctor *model.Doctor
}

func (r *stubDoctorRepo) Get(_ context.Context, id uuid.UUID) (*model.Doctor, error) {
	if r.doctor != nil && r.doctor.ID == id {
		return r.doctor, nil
	}
	return nil, model.ErrDoctorNotFound
}

func (r *stubDoctorRepo) GetByName(_ context.Context, name string) (*model.Doctor, error) {
	if r.doctor != nil && r.doctor.Name == name {
		return r.doctor, nil
	}
	return nil, model.ErrDoctorNotFound
}

func (r *stubDoctorRepo) List(context.Context) ([]*model.DoctorListing, error) {
	if r.doctor == nil {
		return nil, nil
	}
	return []*model.DoctorListing{{ID: r.doctor.ID, Name: r.doctor.Name, Specialty: r.doctor.Specialty}}, nil
}

func (r *stubDoctorRepo) ListFull(context.Context) ([]*model.Doctor, error) { return nil, nil }

func (r *stubDoctorRepo) DeleteCascade(context.Context, uuid.UUID) error { return nil }

type stubPatientRepo struct {
	patient *model.Patient
}

func (r *stubPatientRepo) Get(_ context.Context, id uuid.UUID) (*model.Patient, error) {
	if r.patient != nil && r.patient.ID == id {
		return r.patient, nil
	}
	return nil, model.ErrPatientNotFound
}

func (r *stubPatientRepo) List(context.Context) ([]*model.Patient, error) { return nil, nil }

func (r *stubPatientRepo) DeleteCascade(context.Context, uuid.UUID) error { return nil }

type stubAppointmentRepo struct {
	appointments []*model.Appointment
}

func (r *stubAppointmentRepo) Create(_ context.Context, a *model.Appointment) error {
	a.ID = uuid.New()
	r.appointments = append(r.appointments, a)
	return nil
}

func (r *stubAppointmentRepo) Get(_ context.Context, id uuid.UUID) (*model.Appointment, error) {
	for _, a := range r.appointments {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, model.ErrAppointmentNotFound
}

func (r *stubAppointmentRepo) ListByDoctor(context.Context, uuid.UUID) ([]*model.DoctorAppointment, error) {
	return nil, nil
}

func (r *stubAppointmentRepo) ListByPatient(context.Context, uuid.UUID) ([]*model.Appointment, error) {
	return nil, nil
}

func (r *stubAppointmentRepo) BookedSlots(_ context.Context, doctorID uuid.UUID, date string) ([]string, error) {
	var slots []string
	for _, a := range r.appointments {
		if a.DoctorID == doctorID && a.Date == date {
			slots = append(slots, a.TimeSlot)
		}
	}
	return slots, nil
}

func (r *stubAppointmentRepo) ExistsForSlot(_ context.Context, doctorID uuid.UUID, date, timeSlot string) (bool, error) {
	for _, a := range r.appointments {
		if a.DoctorID == doctorID && a.Date == date && a.TimeSlot == timeSlot {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubAppointmentRepo) UpdateStatus(context.Context, uuid.UUID, model.AppointmentStatus) error {
	return nil
}

func (r *stubAppointmentRepo) Delete(context.Context, uuid.UUID) error { return nil }

func newTestRouter(identity model.Identity) (*gin.Engine, *stubAppointmentRepo, *model.Patient) {
	gin.SetMode(gin.TestMode)

	doctor := &model.Doctor{ID: uuid.New(), Name: "Dr. A", Specialty: "Cardio"}
	patient := &model.Patient{ID: uuid.New(), Name: "P1"}
	if identity.Role == model.RolePatient {
		patient.ID = identity.ID
	}

	appointments := &stubAppointmentRepo{}
	svc := booking.NewService(appointments, &stubDoctorRepo{doctor}, &stubPatientRepo{patient})

	engine := gin.New()
	engine.Use(func(c *gin.Context) {
		c.Set(middleware.ContextIdentity, identity)
		c.Next()
	})
	NewHandler(svc).RegisterRoutes(engine.Group(""))
	return engine, appointments, patient
}

func TestListDoctorsEndpoint(t *testing.T) {
	engine, _, _ := newTestRouter(model.Identity{ID: uuid.New(), Role: model.RolePatient})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/doctors", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Dr. A")
}

func TestAvailableTimesEndpoint(t *testing.T) {
	engine, _, _ := newTestRouter(model.Identity{ID: uuid.New(), Role: model.RolePatient})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/available-times/Dr.%20A/2026-09-01", nil)
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			AvailableSlots []string `json:"available_slots"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data.AvailableSlots, 8)
	assert.Equal(t, "09:00AM", resp.Data.AvailableSlots[0])
}

func TestAvailableTimesUnknownDoctor(t *testing.T) {
	engine, _, _ := newTestRouter(model.Identity{ID: uuid.New(), Role: model.RolePatient})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/available-times/Dr.%20Nobody/2026-09-01", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBookEndpoint(t *testing.T) {
	identity := model.Identity{ID: uuid.New(), Role: model.RolePatient}
	engine, appointments, _ := newTestRouter(identity)

	body := `{"doctor":"Dr. A","date":"2026-09-01","time":"10:00AM"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/book-appointment-api", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, appointments.appointments, 1)
	assert.Equal(t, identity.ID, appointments.appointments[0].PatientID)
	assert.Equal(t, model.AppointmentStatusPending, appointments.appointments[0].Status)
}

func TestBookEndpointConflict(t *testing.T) {
	engine, _, _ := newTestRouter(model.Identity{ID: uuid.New(), Role: model.RolePatient})

	body := `{"doctor":"Dr. A","date":"2026-09-01","time":"10:00AM"}`
	for _, want := range []int{http.StatusCreated, http.StatusConflict} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/book-appointment-api", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		engine.ServeHTTP(w, req)
		assert.Equal(t, want, w.Code)
	}
}

func TestBookEndpointRejectsDoctorCaller(t *testing.T) {
	engine, _, _ := newTestRouter(model.Identity{ID: uuid.New(), Role: model.RoleDoctor})

	body := `{"doctor":"Dr. A","date":"2026-09-01","time":"10:00AM"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/book-appointment-api", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestBookEndpointBadPayload(t *testing.T) {
	engine, _, _ := newTestRouter(model.Identity{ID: uuid.New(), Role: model.RolePatient})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/book-appointment-api", bytes.NewBufferString(`{"doctor":""}`))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
