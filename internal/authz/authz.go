// Package authz holds the static role/action permission table. Ownership
// checks (a doctor acting on their own appointment, an admin not deleting
// themself) live in the services, after the role check passes.
package authz

import (
	"github.com/medbook/clinic-api/internal/model"
)

type Action string

const (
	ActionViewDashboard    Action = "dashboard:view"
	ActionListDoctors      Action = "doctors:list"
	ActionViewAvailability Action = "availability:view"
	ActionBookAppointment  Action = "appointment:book"
	ActionListOwnSchedule  Action = "schedule:list"
	ActionMarkDone         Action = "appointment:done"
	ActionDeleteBooking    Action = "appointment:delete"
	ActionAdminList        Action = "admin:list"
	ActionAdminDelete      Action = "admin:delete"
)

var permitted = map[Action][]model.Role{
	ActionViewDashboard:    {model.RoleAdmin, model.RoleDoctor, model.RolePatient},
	ActionListDoctors:      {model.RoleAdmin, model.RoleDoctor, model.RolePatient},
	ActionViewAvailability: {model.RoleAdmin, model.RoleDoctor, model.RolePatient},
	ActionBookAppointment:  {model.RolePatient, model.RoleAdmin},
	ActionListOwnSchedule:  {model.RoleDoctor},
	ActionMarkDone:         {model.RoleDoctor},
	ActionDeleteBooking:    {model.RoleDoctor},
	ActionAdminList:        {model.RoleAdmin},
	ActionAdminDelete:      {model.RoleAdmin},
}

// Authorize checks role against the permission table. It returns
// model.ErrForbidden on deny and model.ErrUnauthenticated when the role is
// empty or unknown (no resolved identity).
func Authorize(role model.Role, action Action) error {
	if !role.Valid() {
		return model.ErrUnauthenticated
	}
	for _, r := range permitted[action] {
		if r == role {
			return nil
		}
	}
	return model.ErrForbidden
}
