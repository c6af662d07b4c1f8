package model

// Role is the account role assigned at signup. It never changes afterwards.
type Role string

const (
	RoleAdmin   Role = "Admin"
	RoleDoctor  Role = "Doctor"
	RolePatient Role = "Patient"
)

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleDoctor, RolePatient:
		return true
	}
	return false
}

// User is the identity record behind every account. Doctors and patients
// additionally own a profile row keyed to the same id.
type User struct {
	Base
	Name         string `json:"name" db:"name"`
	Email        string `json:"email" db:"email"`
	Password     string `json:"password,omitempty" db:"-"`
	PasswordHash string `json:"-" db:"password_hash"`
	Role         Role   `json:"role" db:"role"`
}

// SignupRequest carries the signup payload. Specialty and AvailableSlots
// only apply to doctor signups and fall back to defaults when omitted.
type SignupRequest struct {
	Name           string `json:"name" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	Password       string `json:"password" binding:"required,min=8"`
	Role           Role   `json:"role" binding:"required,oneof=Admin Doctor Patient"`
	Specialty      string `json:"specialty"`
	AvailableSlots string `json:"available_slots"`
}
