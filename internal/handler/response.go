package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medbook/clinic-api/internal/model"
)

type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func NewSuccessResponse(data interface{}) *Response {
	return &Response{
		Status: "success",
		Data:   data,
	}
}

func NewErrorResponse(message string) *Response {
	return &Response{
		Status:  "error",
		Message: message,
	}
}

// Error writes err as a JSON error response, mapping domain errors to their
// HTTP status. Unknown errors map to 500 with a generic message so internals
// never leak to clients.
func Error(c *gin.Context, err error) {
	status := statusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "internal server error"
	}
	c.JSON(status, NewErrorResponse(message))
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, model.ErrValidation),
		errors.Is(err, model.ErrSelfDelete):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrUnauthenticated),
		errors.Is(err, model.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, model.ErrForbidden),
		errors.Is(err, model.ErrNotOwner):
		return http.StatusForbidden
	case errors.Is(err, model.ErrUserNotFound),
		errors.Is(err, model.ErrDoctorNotFound),
		errors.Is(err, model.ErrPatientNotFound),
		errors.Is(err, model.ErrAdminNotFound),
		errors.Is(err, model.ErrAppointmentNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrEmailTaken),
		errors.Is(err, model.ErrSlotTaken),
		errors.Is(err, model.ErrDoneFinal):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
