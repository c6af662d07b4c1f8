package booking

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medbook/clinic-api/internal/handler"
	"github.com/medbook/clinic-api/internal/middleware"
	"github.com/medbook/clinic-api/internal/model"
	"github.com/medbook/clinic-api/internal/service/booking"
)

type Handler struct {
	svc *booking.Service
}

func NewHandler(svc *booking.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/doctors", h.ListDoctors)
	r.GET("/available-times/:doctor_name/:date", h.AvailableTimes)
	r.POST("/book-appointment-api", h.Book)
}

func (h *Handler) ListDoctors(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("not authenticated"))
		return
	}

	doctors, err := h.svc.ListDoctors(c.Request.Context(), identity)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(doctors))
}

// AvailableTimes returns a doctor's free hourly slots for a date, in grid
// order.
func (h *Handler) AvailableTimes(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("not authenticated"))
		return
	}

	slots, err := h.svc.AvailableSlots(c.Request.Context(), identity,
		c.Param("doctor_name"), c.Param("date"))
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"available_slots": slots}))
}

func (h *Handler) Book(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("not authenticated"))
		return
	}

	var req model.BookAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	appointment, err := h.svc.Book(c.Request.Context(), identity, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(appointment))
}
