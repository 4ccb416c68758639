package auth

import (
	"context"
	"fmt"

	"github.com/phrazzld/devlink-api/internal/config"
	"github.com/phrazzld/devlink-api/internal/domain"
)

// DefaultJWTConfig returns a standard configuration for JWT authentication suitable for testing.
func DefaultJWTConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:            "test-jwt-secret-that-is-32-chars-long",
		TokenLifetimeMinutes: 60,
		BCryptCost:           4,
	}
}

// MustCreateTestJWTService creates a test JWT service and panics if it fails.
func MustCreateTestJWTService() JWTService {
	svc, err := NewJWTService(DefaultJWTConfig())
	if err != nil {
		// ALLOW-PANIC
		panic(fmt.Sprintf("failed to create test JWT service: %v", err))
	}
	return svc
}

// AuthHeaderForTesting returns an Authorization header value carrying a
// valid token for user, signed with DefaultJWTConfig.
func AuthHeaderForTesting(user *domain.User) string {
	token, _, err := MustCreateTestJWTService().GenerateToken(context.Background(), user)
	if err != nil {
		// ALLOW-PANIC
		panic(fmt.Sprintf("failed to generate test token: %v", err))
	}
	return "Bearer " + token
}
