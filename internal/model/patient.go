package model

import "github.com/google/uuid"

// Patient is the role profile for users with RolePatient. Its id equals the
// owning user's id.
type Patient struct {
	ID    uuid.UUID `json:"id" db:"id"`
	Name  string    `json:"name" db:"name"`
	Email string    `json:"email" db:"email"`
}
