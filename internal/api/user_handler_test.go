package api_test

import (
	"net/http"
	"testing"

	"github.com/phrazzld/devlink-api/internal/api"
	"github.com/phrazzld/devlink-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	rec := s.send(http.MethodPost, "/users/register", "",
		map[string]string{"name": "Ann Lee", "email": "ann@x.com", "password": "secret123"})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.NotContains(t, rec.Body.String(), "password")

	user := decode[api.UserResponse](t, rec)
	assert.Len(t, user.ID, 24)
	assert.Equal(t, "Ann Lee", user.Name)
	assert.Equal(t, domain.AvatarURL("ann@x.com"), user.Avatar)
	assert.False(t, user.Date.IsZero())

	tests := []struct {
		name   string
		body   any
		status int
		error  string
	}{
		{
			name:   "duplicate email",
			body:   map[string]string{"name": "Ann Two", "email": "ann@x.com", "password": "secret123"},
			status: http.StatusForbidden,
			error:  "USER_EXISTS",
		},
		{
			name:   "short password",
			body:   map[string]string{"name": "Bob", "email": "bob@x.com", "password": "short"},
			status: http.StatusBadRequest,
			error:  `"password" length must be at least 8 characters long`,
		},
		{
			name:   "missing name",
			body:   map[string]string{"email": "bob@x.com", "password": "secret123"},
			status: http.StatusBadRequest,
			error:  `"name" is required`,
		},
		{
			name:   "malformed json",
			body:   `{"name":`,
			status: http.StatusBadRequest,
			error:  "Invalid request format",
		},
		{
			name:   "wrong field type",
			body:   `{"name":42,"email":"bob@x.com","password":"secret123"}`,
			status: http.StatusBadRequest,
			error:  "Invalid request format",
		},
		{
			name:   "trailing brace",
			body:   `{"name":"Bob Ray","email":"bob@x.com","password":"secret123"}}`,
			status: http.StatusBadRequest,
			error:  "Invalid request format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.send(http.MethodPost, "/users/register", "", tt.body)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.error, errorOf(t, rec))
		})
	}
}

func TestLogin(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)
	s.signUp("Ann Lee", "ann@x.com")

	tests := []struct {
		name   string
		body   map[string]string
		status int
		error  string
	}{
		{"unknown email", map[string]string{"email": "bob@x.com", "password": "secret123"}, http.StatusNotFound, "USER_NOT_FOUND"},
		{"wrong password", map[string]string{"email": "ann@x.com", "password": "wrongpass"}, http.StatusBadRequest, "PASSWORD_INCORRECT"},
		{"invalid email", map[string]string{"email": "ann", "password": "secret123"}, http.StatusBadRequest, `"email" must be a valid email`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.send(http.MethodPost, "/users/login", "", tt.body)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.error, errorOf(t, rec))
		})
	}

	t.Run("email is case insensitive", func(t *testing.T) {
		rec := s.send(http.MethodPost, "/users/login", "",
			map[string]string{"email": "ANN@x.com", "password": "secret123"})
		require.Equal(t, http.StatusOK, rec.Code)
		body := decode[map[string]any](t, rec)
		assert.NotEmpty(t, body["token"])
		assert.NotEmpty(t, body["expires_at"])
	})
}

func TestMe(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)
	id, token := s.signUp("Ann Lee", "ann@x.com")

	rec := s.send(http.MethodGet, "/users/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, id.Hex(), decode[api.UserResponse](t, rec).ID)

	rec = s.send(http.MethodGet, "/users/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.send(http.MethodGet, "/users/me", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid token", errorOf(t, rec))
}
