package model

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	Role        Role   `json:"role"`
	Name        string `json:"name"`
}

// TokenClaims are the JWT claims issued at login. The jti (RegisteredClaims.ID)
// is what gets revoked at logout.
type TokenClaims struct {
	jwt.RegisteredClaims
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
	Role   Role      `json:"role"`
}

// Identity is the authenticated (id, role) pair every protected operation
// receives. How it was propagated (header or cookie) is a transport detail.
type Identity struct {
	ID   uuid.UUID
	Role Role
}
