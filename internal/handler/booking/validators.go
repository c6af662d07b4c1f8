package booking

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/medbook/clinic-api/internal/schedule"
)

// The booking payload carries two custom binding tags: "timeslot" accepts
// labels from the hourly grid and "dateformat" accepts YYYY-MM-DD dates.
func init() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	v.RegisterValidation("timeslot", func(fl validator.FieldLevel) bool {
		return schedule.ValidLabel(fl.Field().String())
	})
	v.RegisterValidation("dateformat", func(fl validator.FieldLevel) bool {
		return schedule.ValidDate(fl.Field().String())
	})
}
