package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/phrazzld/devlink-api/internal/domain"
	"github.com/phrazzld/devlink-api/internal/platform/logger"
	"github.com/phrazzld/devlink-api/internal/redact"
	"github.com/phrazzld/devlink-api/internal/store"
	"github.com/phrazzld/devlink-api/internal/validation"
)

// ProfileService manages profiles and their embedded experience and
// education lists. Every method taking a user acts on that user's profile.
type ProfileService interface {
	Create(ctx context.Context, in validation.ProfileInput) (*domain.Profile, error)
	Update(ctx context.Context, in validation.ProfileInput) (*domain.Profile, error)
	List(ctx context.Context) ([]*domain.Profile, error)
	GetByUser(ctx context.Context, user domain.ID) (*domain.Profile, error)
	GetByHandle(ctx context.Context, handle string) (*domain.Profile, error)
	AddExperience(ctx context.Context, user domain.ID, in validation.ExperienceInput) (*domain.Profile, error)
	RemoveExperience(ctx context.Context, user, experience domain.ID) (*domain.Profile, error)
	AddEducation(ctx context.Context, user domain.ID, in validation.EducationInput) (*domain.Profile, error)
	RemoveEducation(ctx context.Context, user, education domain.ID) (*domain.Profile, error)
}

// ProfileServiceImpl implements ProfileService.
type ProfileServiceImpl struct {
	profiles store.ProfileStore
	users    store.UserStore
	logger   *slog.Logger
}

var _ ProfileService = (*ProfileServiceImpl)(nil)

// NewProfileService creates a ProfileService. users confirms that the owner
// of a new profile still has an account.
func NewProfileService(profiles store.ProfileStore, users store.UserStore, logger *slog.Logger) *ProfileServiceImpl {
	return &ProfileServiceImpl{
		profiles: profiles,
		users:    users,
		logger:   logger.With("component", "profile_service"),
	}
}

// Create implements ProfileService. A missing owner is reported first, then a
// second profile for the same user, then a taken handle.
func (s *ProfileServiceImpl) Create(ctx context.Context, in validation.ProfileInput) (*domain.Profile, error) {
	user, err := domain.ParseID(in.User)
	if err != nil {
		return nil, err
	}

	if _, err := s.users.GetByID(ctx, user); err != nil {
		return nil, s.fail(ctx, "failed to look up owner", err)
	}

	if _, err := s.profiles.GetByUser(ctx, user); err == nil {
		return nil, domain.ErrProfileExists
	} else if !store.IsNotFoundError(err) {
		return nil, s.fail(ctx, "failed to look up profile", err)
	}
	if _, err := s.profiles.GetByHandle(ctx, in.Handle); err == nil {
		return nil, domain.ErrProfileHandleExists
	} else if !store.IsNotFoundError(err) {
		return nil, s.fail(ctx, "failed to look up handle", err)
	}

	experience := make([]domain.Experience, 0, len(in.Experience))
	for _, e := range in.Experience {
		experience = append(experience, toExperience(e))
	}
	education := make([]domain.Education, 0, len(in.Education))
	for _, e := range in.Education {
		education = append(education, toEducation(e))
	}

	profile := domain.NewProfile(user, toFields(in), experience, education)
	if err := s.profiles.Create(ctx, profile); err != nil {
		return nil, s.fail(ctx, "failed to save profile", err)
	}

	s.log(ctx).Info("profile created", "profile_id", profile.ID.Hex())
	return profile, nil
}

// Update implements ProfileService. Only the scalar fields are replaced;
// the experience and education lists are kept.
func (s *ProfileServiceImpl) Update(ctx context.Context, in validation.ProfileInput) (*domain.Profile, error) {
	user, err := domain.ParseID(in.User)
	if err != nil {
		return nil, err
	}

	if other, err := s.profiles.GetByHandle(ctx, in.Handle); err == nil && other.User != user {
		return nil, domain.ErrProfileHandleExists
	} else if err != nil && !store.IsNotFoundError(err) {
		return nil, s.fail(ctx, "failed to look up handle", err)
	}

	fields := toFields(in)
	profile, err := s.profiles.Update(ctx, user, func(p *domain.Profile) error {
		p.Apply(fields)
		return nil
	})
	if err != nil {
		return nil, s.fail(ctx, "failed to update profile", err)
	}
	return profile, nil
}

// List implements ProfileService.
func (s *ProfileServiceImpl) List(ctx context.Context) ([]*domain.Profile, error) {
	profiles, err := s.profiles.List(ctx)
	if err != nil {
		return nil, s.fail(ctx, "failed to list profiles", err)
	}
	return profiles, nil
}

// GetByUser implements ProfileService.
func (s *ProfileServiceImpl) GetByUser(ctx context.Context, user domain.ID) (*domain.Profile, error) {
	profile, err := s.profiles.GetByUser(ctx, user)
	if err != nil {
		return nil, s.fail(ctx, "failed to retrieve profile", err)
	}
	return profile, nil
}

// GetByHandle implements ProfileService.
func (s *ProfileServiceImpl) GetByHandle(ctx context.Context, handle string) (*domain.Profile, error) {
	profile, err := s.profiles.GetByHandle(ctx, handle)
	if err != nil {
		return nil, s.fail(ctx, "failed to retrieve profile", err)
	}
	return profile, nil
}

// AddExperience implements ProfileService.
func (s *ProfileServiceImpl) AddExperience(ctx context.Context, user domain.ID, in validation.ExperienceInput) (*domain.Profile, error) {
	e := toExperience(in)
	return s.mutate(ctx, user, "failed to add experience", func(p *domain.Profile) error {
		return p.AddExperience(e)
	})
}

// RemoveExperience implements ProfileService.
func (s *ProfileServiceImpl) RemoveExperience(ctx context.Context, user, experience domain.ID) (*domain.Profile, error) {
	return s.mutate(ctx, user, "failed to remove experience", func(p *domain.Profile) error {
		return p.RemoveExperience(experience)
	})
}

// AddEducation implements ProfileService.
func (s *ProfileServiceImpl) AddEducation(ctx context.Context, user domain.ID, in validation.EducationInput) (*domain.Profile, error) {
	e := toEducation(in)
	return s.mutate(ctx, user, "failed to add education", func(p *domain.Profile) error {
		return p.AddEducation(e)
	})
}

// RemoveEducation implements ProfileService.
func (s *ProfileServiceImpl) RemoveEducation(ctx context.Context, user, education domain.ID) (*domain.Profile, error) {
	return s.mutate(ctx, user, "failed to remove education", func(p *domain.Profile) error {
		return p.RemoveEducation(education)
	})
}

func (s *ProfileServiceImpl) mutate(ctx context.Context, user domain.ID, msg string, fn store.ProfileMutation) (*domain.Profile, error) {
	profile, err := s.profiles.Update(ctx, user, fn)
	if err != nil {
		return nil, s.fail(ctx, msg, err)
	}
	return profile, nil
}

func (s *ProfileServiceImpl) log(ctx context.Context) *slog.Logger {
	return logger.FromContextOrDefault(ctx, s.logger)
}

// fail translates err and logs it at a level matching whether it was expected.
func (s *ProfileServiceImpl) fail(ctx context.Context, msg string, err error) error {
	err = translate(err)
	if isExpected(err) {
		s.log(ctx).Debug(msg, "error", err)
		return err
	}
	s.log(ctx).Error(msg, "error", redact.Error(err))
	return fmt.Errorf("%s: %w", msg, err)
}

func toFields(in validation.ProfileInput) domain.ProfileFields {
	f := domain.ProfileFields{
		Handle:         in.Handle,
		Company:        in.Company,
		Website:        in.Website,
		Location:       in.Location,
		Status:         in.Status,
		Bio:            in.Bio,
		GithubUsername: in.GithubUsername,
	}
	for _, skill := range in.Skills {
		f.Skills = append(f.Skills, strings.TrimSpace(skill))
	}
	if in.Social != nil {
		f.Social = &domain.Social{
			YouTube:   in.Social.YouTube,
			Twitter:   in.Social.Twitter,
			Facebook:  in.Social.Facebook,
			LinkedIn:  in.Social.LinkedIn,
			Instagram: in.Social.Instagram,
		}
	}
	return f
}

func toExperience(in validation.ExperienceInput) domain.Experience {
	return domain.Experience{
		Title:       in.Title,
		Company:     in.Company,
		Location:    in.Location,
		From:        dateOf(in.From),
		To:          in.To.Value(),
		Current:     in.Current != nil && *in.Current,
		Description: in.Description,
	}
}

func toEducation(in validation.EducationInput) domain.Education {
	return domain.Education{
		School:       in.School,
		Degree:       in.Degree,
		FieldOfStudy: in.FieldOfStudy,
		From:         dateOf(in.From),
		To:           in.To.Value(),
		Current:      in.Current != nil && *in.Current,
		Description:  in.Description,
	}
}

func dateOf(d *validation.Date) time.Time {
	if d == nil {
		return time.Time{}
	}
	return d.Time
}
