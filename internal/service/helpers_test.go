package service_test

import (
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/phrazzld/devlink-api/internal/domain"
	"github.com/phrazzld/devlink-api/internal/platform/memory"
	"github.com/phrazzld/devlink-api/internal/service"
	"github.com/phrazzld/devlink-api/internal/service/auth"
	"github.com/phrazzld/devlink-api/internal/validation"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

type fixture struct {
	users    *memory.UserStore
	profiles *memory.ProfileStore
	posts    *memory.PostStore
	jwt      auth.JWTService

	userSvc    *service.UserServiceImpl
	profileSvc *service.ProfileServiceImpl
	postSvc    *service.PostServiceImpl
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		users:    memory.NewUserStore(),
		profiles: memory.NewProfileStore(),
		posts:    memory.NewPostStore(),
		jwt:      auth.MustCreateTestJWTService(),
	}
	hasher := auth.NewBcryptHasher(auth.DefaultJWTConfig().BCryptCost)
	f.userSvc = service.NewUserService(f.users, f.profiles, hasher, hasher, f.jwt, discardLogger())
	f.profileSvc = service.NewProfileService(f.profiles, f.users, discardLogger())
	f.postSvc = service.NewPostService(f.posts, f.users, discardLogger())
	return f
}

func (f *fixture) register(t *testing.T) *domain.User {
	t.Helper()
	u, err := f.userSvc.Register(context.Background(), validation.NewUserInput{
		Name:     gofakeit.Name(),
		Email:    strings.ToLower(gofakeit.Email()),
		Password: "password1",
	})
	require.NoError(t, err)
	return u
}

func profileInput(user domain.ID, handle string) validation.ProfileInput {
	return validation.ProfileInput{
		User:   user.Hex(),
		Handle: handle,
		Status: "Developer",
		Skills: []string{"go", " sql "},
	}
}

func experienceInput(title string) validation.ExperienceInput {
	current := false
	return validation.ExperienceInput{
		Title:   title,
		Company: "Acme",
		From:    validation.NewDate(time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC)),
		To:      validation.NewDate(time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC)),
		Current: &current,
	}
}

func educationInput(school string) validation.EducationInput {
	current := true
	return validation.EducationInput{
		School:  school,
		Degree:  "BSc",
		From:    validation.NewDate(time.Date(2012, 9, 1, 0, 0, 0, 0, time.UTC)),
		Current: &current,
	}
}

func time2019() time.Time {
	return time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC)
}
