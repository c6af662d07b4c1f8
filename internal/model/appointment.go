package model

import (
	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	AppointmentStatusPending AppointmentStatus = "pending"
	AppointmentStatusDone    AppointmentStatus = "done"
)

// Appointment links a patient to a doctor for one slot on one calendar day.
// Date is stored as YYYY-MM-DD; TimeSlot is one of the grid labels.
type Appointment struct {
	Base
	PatientID uuid.UUID         `json:"patient_id" db:"patient_id"`
	DoctorID  uuid.UUID         `json:"doctor_id" db:"doctor_id"`
	Date      string            `json:"date" db:"date"`
	TimeSlot  string            `json:"time_slot" db:"time_slot"`
	Status    AppointmentStatus `json:"status" db:"status"`
}

// DoctorAppointment is an appointment row joined with the patient's name,
// as shown on the doctor dashboard.
type DoctorAppointment struct {
	ID          uuid.UUID         `json:"id" db:"id"`
	PatientName string            `json:"patient_name" db:"patient_name"`
	Date        string            `json:"date" db:"date"`
	TimeSlot    string            `json:"time" db:"time_slot"`
	Status      AppointmentStatus `json:"status" db:"status"`
}

// BookAppointmentRequest is the booking payload. Doctors are addressed by
// name. PatientID is only honoured for admin callers; patients always book
// for themselves.
type BookAppointmentRequest struct {
	PatientID uuid.UUID `json:"patient_id"`
	Doctor    string    `json:"doctor" binding:"required"`
	Date      string    `json:"date" binding:"required,dateformat"`
	TimeSlot  string    `json:"time" binding:"required,timeslot"`
}
