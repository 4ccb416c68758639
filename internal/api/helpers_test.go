package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/devlink-api/internal/api"
	"github.com/phrazzld/devlink-api/internal/api/middleware"
	"github.com/phrazzld/devlink-api/internal/domain"
	"github.com/phrazzld/devlink-api/internal/platform/memory"
	"github.com/phrazzld/devlink-api/internal/service"
	"github.com/phrazzld/devlink-api/internal/service/auth"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	t      *testing.T
	router http.Handler
	users  *memory.UserStore
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	users := memory.NewUserStore()
	profiles := memory.NewProfileStore()
	posts := memory.NewPostStore()
	jwt := auth.MustCreateTestJWTService()
	hasher := auth.NewBcryptHasher(auth.DefaultJWTConfig().BCryptCost)

	userSvc := service.NewUserService(users, profiles, hasher, hasher, jwt, log)
	return &testServer{
		t: t,
		router: newRouter(
			api.NewUserHandler(userSvc),
			api.NewProfileHandler(service.NewProfileService(profiles, users, log), userSvc),
			api.NewPostHandler(service.NewPostService(posts, users, log)),
			middleware.NewAuthMiddleware(jwt),
		),
		users: users,
	}
}

func newRouter(users *api.UserHandler, profiles *api.ProfileHandler, posts *api.PostHandler, authMW *middleware.AuthMiddleware) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Trace(nil))

	r.Post("/users/register", users.Register)
	r.Post("/users/login", users.Login)
	r.With(authMW.Authenticate).Get("/users/me", users.Me)

	r.Get("/profiles", profiles.List)
	r.Get("/profiles/handle/{handle}", profiles.GetByHandle)
	r.Get("/profiles/{user_id}", profiles.GetByUser)
	r.Group(func(r chi.Router) {
		r.Use(authMW.Authenticate)
		r.Post("/profiles", profiles.Create)
		r.Put("/profiles", profiles.Update)
		r.Delete("/profiles", profiles.Delete)
		r.Get("/profiles/me", profiles.Me)
		r.Post("/profiles/experience", profiles.AddExperience)
		r.Delete("/profiles/experience/{exp_id}", profiles.RemoveExperience)
		r.Post("/profiles/education", profiles.AddEducation)
		r.Delete("/profiles/education/{edu_id}", profiles.RemoveEducation)
	})

	r.Get("/posts", posts.List)
	r.Get("/posts/{id}", posts.Get)
	r.Group(func(r chi.Router) {
		r.Use(authMW.Authenticate)
		r.Post("/posts", posts.Create)
		r.Delete("/posts/{id}", posts.Delete)
		r.Post("/posts/likes/{post_id}", posts.Like)
		r.Delete("/posts/likes/{post_id}", posts.Unlike)
		r.Post("/posts/comment/{post_id}", posts.Comment)
		r.Delete("/posts/comment/{post_id}/{comment_id}", posts.DeleteComment)
	})
	return r
}

// send issues a request. A string body is sent verbatim; anything else is
// JSON encoded.
func (s *testServer) send(method, path, token string, body any) *httptest.ResponseRecorder {
	s.t.Helper()
	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(s.t, err)
		r = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, r)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

// signUp registers an account and returns its id and a token for it.
func (s *testServer) signUp(name, email string) (domain.ID, string) {
	s.t.Helper()
	rec := s.send(http.MethodPost, "/users/register", "",
		map[string]string{"name": name, "email": email, "password": "secret123"})
	require.Equal(s.t, http.StatusCreated, rec.Code, rec.Body.String())
	user := decode[api.UserResponse](s.t, rec)

	rec = s.send(http.MethodPost, "/users/login", "",
		map[string]string{"email": email, "password": "secret123"})
	require.Equal(s.t, http.StatusOK, rec.Code, rec.Body.String())
	token := decode[service.Token](s.t, rec)

	id, err := domain.ParseID(user.ID)
	require.NoError(s.t, err)
	return id, token.Token
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func errorOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[map[string]any](t, rec)["error"].(string)
}

func profileBody(handle string) map[string]any {
	return map[string]any{
		"handle": handle,
		"status": "Developer",
		"skills": []string{"go", "sql"},
	}
}
