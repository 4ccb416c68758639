package auth

import (
	"context"
	"time"

	"github.com/phrazzld/devlink-api/internal/domain"
)

// JWTService defines operations for managing JWT authentication tokens.
type JWTService interface {
	// GenerateToken creates a signed access token carrying the user's id,
	// name, email and avatar. It returns the token and its expiry.
	GenerateToken(ctx context.Context, user *domain.User) (string, time.Time, error)

	// ValidateToken validates the provided token string and extracts the claims.
	// Returns ErrExpiredToken for expired tokens and ErrInvalidToken for any
	// other failure.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims is the authenticated identity extracted from a valid token.
type Claims struct {
	UserID domain.ID
	Name   string
	Email  string
	Avatar string

	// Standard registered JWT claims
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
	ID        string
}
