package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medbook/clinic-api/internal/model"
)

type stubValidator struct {
	claims *model.TokenClaims
	err    error
	seen   string
}

func (v *stubValidator) ValidateToken(_ context.Context, token string) (*model.TokenClaims, error) {
	v.seen = token
	if v.err != nil {
		return nil, v.err
	}
	return v.claims, nil
}

func newAuthEngine(v *stubValidator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(NewAuthMiddleware(v).Authenticate())
	engine.GET("/ping", func(c *gin.Context) {
		identity, _ := IdentityFrom(c)
		c.JSON(http.StatusOK, gin.H{"role": identity.Role})
	})
	return engine
}

func validClaims() *model.TokenClaims {
	return &model.TokenClaims{UserID: uuid.New(), Role: model.RoleDoctor}
}

func TestAuthenticateBearerHeader(t *testing.T) {
	v := &stubValidator{claims: validClaims()}
	engine := newAuthEngine(v)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Bearer some-token")
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "some-token", v.seen)
	assert.Contains(t, w.Body.String(), string(model.RoleDoctor))
}

func TestAuthenticateCookieFallback(t *testing.T) {
	v := &stubValidator{claims: validClaims()}
	engine := newAuthEngine(v)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.AddCookie(&http.Cookie{Name: accessTokenCookie, Value: "cookie-token"})
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "cookie-token", v.seen)
}

func TestAuthenticateMissingToken(t *testing.T) {
	engine := newAuthEngine(&stubValidator{claims: validClaims()})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticateMalformedHeader(t *testing.T) {
	engine := newAuthEngine(&stubValidator{claims: validClaims()})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Token abc")
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticateRejectedToken(t *testing.T) {
	engine := newAuthEngine(&stubValidator{err: errors.New("revoked")})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Bearer revoked-token")
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
