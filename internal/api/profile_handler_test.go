package api_test

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/phrazzld/devlink-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateProfile(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)
	annID, ann := s.signUp("Ann Lee", "ann@x.com")
	_, bob := s.signUp("Bob Ray", "bob@x.com")

	rec := s.send(http.MethodPost, "/profiles", "", profileBody("ann"))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.send(http.MethodPost, "/profiles", ann, profileBody("ann"))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	profile := decode[domain.Profile](t, rec)
	assert.Equal(t, annID, profile.User)
	assert.Equal(t, []string{"go", "sql"}, profile.Skills)

	tests := []struct {
		name   string
		token  string
		body   any
		status int
		error  string
	}{
		{"second profile", ann, profileBody("ann2"), http.StatusForbidden, "PROFILE_EXISTS"},
		{"taken handle", bob, profileBody("ann"), http.StatusForbidden, "PROFILE_HANDLE_EXISTS"},
		{
			"long handle",
			bob,
			profileBody(strings.Repeat("b", 41)),
			http.StatusBadRequest,
			`"handle" length must be less than or equal to 40 characters long`,
		},
		{
			"no skills",
			bob,
			map[string]any{"handle": "bob", "status": "Dev", "skills": []string{}},
			http.StatusBadRequest,
			`"skills" must contain at least 1 items`,
		},
		{
			"whitespace skill",
			bob,
			map[string]any{"handle": "bob", "status": "Dev", "skills": []string{"  "}},
			http.StatusBadRequest,
			`"skills[0]" is not allowed to be empty`,
		},
		{
			"bad social link",
			bob,
			map[string]any{"handle": "bob", "status": "Dev", "skills": []string{"go"}, "social": map[string]string{"twitter": "x"}},
			http.StatusBadRequest,
			`"social.twitter" with value "x" fails to match the twitter pattern`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.send(http.MethodPost, "/profiles", tt.token, tt.body)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.error, errorOf(t, rec))
		})
	}
}

func TestProfileReads(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	rec := s.send(http.MethodGet, "/profiles", "", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	annID, ann := s.signUp("Ann Lee", "ann@x.com")
	_, bob := s.signUp("Bob Ray", "bob@x.com")

	rec = s.send(http.MethodGet, "/profiles/me", ann, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "PROFILE_NOT_FOUND", errorOf(t, rec))

	require.Equal(t, http.StatusCreated, s.send(http.MethodPost, "/profiles", ann, profileBody("ann")).Code)
	require.Equal(t, http.StatusCreated, s.send(http.MethodPost, "/profiles", bob, profileBody("bob")).Code)

	rec = s.send(http.MethodGet, "/profiles", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[[]domain.Profile](t, rec)
	require.Len(t, list, 2)
	assert.Equal(t, "bob", list[0].Handle, "newest first")

	rec = s.send(http.MethodGet, "/profiles/"+annID.Hex(), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ann", decode[domain.Profile](t, rec).Handle)

	rec = s.send(http.MethodGet, "/profiles/handle/bob", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.send(http.MethodGet, "/profiles/me", ann, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, annID, decode[domain.Profile](t, rec).User)

	tests := []struct {
		name   string
		path   string
		status int
		error  string
	}{
		{"malformed user id", "/profiles/xyz", http.StatusBadRequest,
			`"user_id" with value "xyz" fails to match the required pattern: ^[0-9a-f]{24}$`},
		{"unknown user", "/profiles/" + domain.NewID().Hex(), http.StatusNotFound, "PROFILE_NOT_FOUND"},
		{"unknown handle", "/profiles/handle/nobody", http.StatusNotFound, "PROFILE_NOT_FOUND"},
		{"invalid handle", "/profiles/handle/" + strings.Repeat("a", 41), http.StatusBadRequest,
			`"handle" length must be less than or equal to 40 characters long`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.send(http.MethodGet, tt.path, "", nil)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.error, errorOf(t, rec))
		})
	}
}

func TestUpdateProfile(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)
	_, ann := s.signUp("Ann Lee", "ann@x.com")
	_, bob := s.signUp("Bob Ray", "bob@x.com")

	rec := s.send(http.MethodPut, "/profiles", ann, profileBody("ann"))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	require.Equal(t, http.StatusCreated, s.send(http.MethodPost, "/profiles", ann, profileBody("ann")).Code)
	require.Equal(t, http.StatusCreated, s.send(http.MethodPost, "/profiles", bob, profileBody("bob")).Code)
	require.Equal(t, http.StatusCreated, s.send(http.MethodPost, "/profiles/experience", ann, experienceBody()).Code)

	rec = s.send(http.MethodPut, "/profiles", ann, profileBody("bob"))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "PROFILE_HANDLE_EXISTS", errorOf(t, rec))

	body := profileBody("annie")
	body["bio"] = "Gopher"
	rec = s.send(http.MethodPut, "/profiles", ann, body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decode[domain.Profile](t, rec)
	assert.Equal(t, "annie", updated.Handle)
	assert.Equal(t, "Gopher", updated.Bio)
	assert.Len(t, updated.Experience, 1, "experience survives an update")

	body["experience"] = []any{experienceBody(), experienceBody()}
	rec = s.send(http.MethodPut, "/profiles", ann, body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Len(t, decode[domain.Profile](t, rec).Experience, 1, "body experience is ignored")
}

func experienceBody() map[string]any {
	return map[string]any{
		"title":   "Engineer",
		"company": "Acme",
		"from":    "2018-01-01",
		"to":      "2020-01-01",
		"current": false,
	}
}

func educationBody() map[string]any {
	return map[string]any{
		"school":  "MIT",
		"degree":  "BSc",
		"from":    "2010-09-01",
		"current": true,
	}
}

func TestExperienceAndEducation(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)
	_, ann := s.signUp("Ann Lee", "ann@x.com")

	rec := s.send(http.MethodPost, "/profiles/experience", ann, experienceBody())
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "PROFILE_NOT_FOUND", errorOf(t, rec))

	require.Equal(t, http.StatusCreated, s.send(http.MethodPost, "/profiles", ann, profileBody("ann")).Code)

	rec = s.send(http.MethodPost, "/profiles/experience", ann, experienceBody())
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	second := experienceBody()
	second["title"] = "Lead"
	rec = s.send(http.MethodPost, "/profiles/experience", ann, second)
	require.Equal(t, http.StatusCreated, rec.Code)
	profile := decode[domain.Profile](t, rec)
	require.Len(t, profile.Experience, 2)
	assert.Equal(t, "Lead", profile.Experience[0].Title, "most recent first")
	assert.Equal(t, time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC), profile.Experience[0].From.UTC())

	backwards := experienceBody()
	backwards["to"] = "2017-01-01"
	rec = s.send(http.MethodPost, "/profiles/experience", ann, backwards)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, `"to" must be greater than "from"`, errorOf(t, rec))

	rec = s.send(http.MethodDelete, "/profiles/experience/"+domain.NewID().Hex(), ann, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NO_EXPERIENCE", errorOf(t, rec))

	rec = s.send(http.MethodDelete, "/profiles/experience/nope", ann, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.send(http.MethodDelete, "/profiles/experience/"+profile.Experience[1].ID.Hex(), ann, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[domain.Profile](t, rec).Experience, 1)

	for i := 0; i < domain.MaxEducation; i++ {
		require.Equal(t, http.StatusCreated, s.send(http.MethodPost, "/profiles/education", ann, educationBody()).Code)
	}
	rec = s.send(http.MethodPost, "/profiles/education", ann, educationBody())
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "EDUCATION_LIMIT_REACHED", errorOf(t, rec))

	rec = s.send(http.MethodDelete, "/profiles/education/"+domain.NewID().Hex(), ann, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NO_EDUCATION", errorOf(t, rec))
}

func TestDeleteAccount(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)
	annID, ann := s.signUp("Ann Lee", "ann@x.com")
	require.Equal(t, http.StatusCreated, s.send(http.MethodPost, "/profiles", ann, profileBody("ann")).Code)

	rec := s.send(http.MethodDelete, "/profiles", ann, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "User deleted", decode[map[string]string](t, rec)["message"])

	rec = s.send(http.MethodGet, "/profiles/"+annID.Hex(), "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, 0, s.users.Len())

	rec = s.send(http.MethodDelete, "/profiles", ann, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "USER_NOT_FOUND", errorOf(t, rec))
}

func TestDeletedAccountCannotCreateProfile(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)
	_, ghost := s.signUp("Gus Host", "ghost@x.com")
	require.Equal(t, http.StatusOK, s.send(http.MethodDelete, "/profiles", ghost, nil).Code)

	rec := s.send(http.MethodPost, "/profiles", ghost, profileBody("ghost"))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "USER_NOT_FOUND", errorOf(t, rec))

	rec = s.send(http.MethodGet, "/profiles/handle/ghost", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "PROFILE_NOT_FOUND", errorOf(t, rec))
}
