package model

import "github.com/google/uuid"

const (
	DefaultSpecialty      = "General"
	DefaultAvailableSlots = "9:00AM-5:00PM"
)

// Doctor is the role profile for users with RoleDoctor. Its id equals the
// owning user's id.
type Doctor struct {
	ID             uuid.UUID `json:"id" db:"id"`
	Name           string    `json:"name" db:"name"`
	Email          string    `json:"email" db:"email"`
	Specialty      string    `json:"specialty" db:"specialty"`
	AvailableSlots string    `json:"available_slots" db:"available_slots"`
}

// DoctorListing is the reduced shape returned to non-admin callers.
type DoctorListing struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Specialty string    `json:"specialty" db:"specialty"`
}
