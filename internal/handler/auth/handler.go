package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medbook/clinic-api/internal/handler"
	"github.com/medbook/clinic-api/internal/middleware"
	"github.com/medbook/clinic-api/internal/model"
	"github.com/medbook/clinic-api/internal/service/auth"
)

type Handler struct {
	svc          *auth.Service
	cookieMaxAge int
}

func NewHandler(svc *auth.Service, cookieMaxAge int) *Handler {
	return &Handler{svc: svc, cookieMaxAge: cookieMaxAge}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/signup", h.Signup)
	r.POST("/login", h.Login)
}

func (h *Handler) RegisterProtectedRoutes(r *gin.RouterGroup) {
	r.POST("/logout", h.Logout)
	r.GET("/me", h.Me)
	r.GET("/dashboard", h.Dashboard)
}

func (h *Handler) Signup(c *gin.Context) {
	var req model.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	user, err := h.svc.Signup(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(user))
}

// Login issues a JWT and also sets it as a cookie for browser clients.
func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	tokens, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.SetCookie("access_token", tokens.AccessToken, h.cookieMaxAge, "/", "", false, true)
	c.JSON(http.StatusOK, handler.NewSuccessResponse(tokens))
}

// Logout revokes the current token so it cannot be replayed before expiry.
func (h *Handler) Logout(c *gin.Context) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("not authenticated"))
		return
	}

	if err := h.svc.Logout(c.Request.Context(), claims); err != nil {
		handler.Error(c, err)
		return
	}

	c.SetCookie("access_token", "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"message": "logged out successfully"}))
}

func (h *Handler) Me(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("not authenticated"))
		return
	}

	user, err := h.svc.CurrentUser(c.Request.Context(), identity.ID)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(user))
}

func (h *Handler) Dashboard(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("not authenticated"))
		return
	}

	payload, err := h.svc.Dashboard(c.Request.Context(), identity)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(payload))
}
