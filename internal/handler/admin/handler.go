package admin

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/medbook/clinic-api/internal/handler"
	"github.com/medbook/clinic-api/internal/middleware"
	"github.com/medbook/clinic-api/internal/model"
	"github.com/medbook/clinic-api/internal/service/admin"
)

type Handler struct {
	svc *admin.Service
}

func NewHandler(svc *admin.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	adm := r.Group("/admin")
	{
		adm.GET("/doctors", h.ListDoctors)
		adm.DELETE("/doctors/:id", h.DeleteDoctor)
		adm.GET("/patients", h.ListPatients)
		adm.DELETE("/patients/:id", h.DeletePatient)
		adm.GET("/admins", h.ListAdmins)
		adm.DELETE("/admins/:id", h.DeleteAdmin)
	}
}

func (h *Handler) ListDoctors(c *gin.Context) {
	h.list(c, func(identity model.Identity) (interface{}, error) {
		return h.svc.ListDoctors(c.Request.Context(), identity)
	})
}

func (h *Handler) ListPatients(c *gin.Context) {
	h.list(c, func(identity model.Identity) (interface{}, error) {
		return h.svc.ListPatients(c.Request.Context(), identity)
	})
}

func (h *Handler) ListAdmins(c *gin.Context) {
	h.list(c, func(identity model.Identity) (interface{}, error) {
		return h.svc.ListAdmins(c.Request.Context(), identity)
	})
}

func (h *Handler) DeleteDoctor(c *gin.Context) {
	h.remove(c, "doctor deleted", h.svc.DeleteDoctor)
}

func (h *Handler) DeletePatient(c *gin.Context) {
	h.remove(c, "patient deleted", h.svc.DeletePatient)
}

func (h *Handler) DeleteAdmin(c *gin.Context) {
	h.remove(c, "admin deleted", h.svc.DeleteAdmin)
}

func (h *Handler) list(c *gin.Context, fn func(model.Identity) (interface{}, error)) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("not authenticated"))
		return
	}

	data, err := fn(identity)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(data))
}

func (h *Handler) remove(c *gin.Context, message string,
	fn func(ctx context.Context, identity model.Identity, id uuid.UUID) error) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("not authenticated"))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid id"))
		return
	}

	if err := fn(c.Request.Context(), identity, id); err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"message": message}))
}
