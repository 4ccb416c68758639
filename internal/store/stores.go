package store

import (
	"context"

	"github.com/phrazzld/devlink-api/internal/domain"
)

// UserStore persists user accounts.
type UserStore interface {
	// Create inserts a new user.
	// Returns ErrEmailExists if the engine rejects a duplicate email.
	Create(ctx context.Context, user *domain.User) error

	// GetByID returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id domain.ID) (*domain.User, error)

	// GetByEmail returns ErrUserNotFound if no user has the email.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// Delete removes a user. Returns ErrUserNotFound if the user does not exist.
	Delete(ctx context.Context, id domain.ID) error
}

// ProfileMutation changes a loaded profile in place. Returning an error
// abandons the write.
type ProfileMutation func(p *domain.Profile) error

// ProfileStore persists profiles, keyed by their owning user.
type ProfileStore interface {
	// Create inserts a new profile.
	// Returns ErrProfileExists or ErrHandleExists if the engine rejects a duplicate.
	Create(ctx context.Context, profile *domain.Profile) error

	// GetByUser returns ErrProfileNotFound if the user has no profile.
	GetByUser(ctx context.Context, user domain.ID) (*domain.Profile, error)

	// GetByHandle returns ErrProfileNotFound if no profile uses the handle.
	GetByHandle(ctx context.Context, handle string) (*domain.Profile, error)

	// List returns every profile, newest first.
	List(ctx context.Context) ([]*domain.Profile, error)

	// Update loads the profile owned by user, applies fn and saves the result.
	// Returns ErrProfileNotFound if the user has no profile, or fn's error unchanged.
	Update(ctx context.Context, user domain.ID, fn ProfileMutation) (*domain.Profile, error)

	// DeleteByUser removes the profile owned by user.
	// Returns ErrProfileNotFound if there is none.
	DeleteByUser(ctx context.Context, user domain.ID) error
}

// PostMutation changes a loaded post in place. Returning an error abandons
// the write.
type PostMutation func(p *domain.Post) error

// PostStore persists posts together with their embedded likes and comments.
type PostStore interface {
	Create(ctx context.Context, post *domain.Post) error

	// GetByID returns ErrPostNotFound if the post does not exist.
	GetByID(ctx context.Context, id domain.ID) (*domain.Post, error)

	// List returns every post, newest first.
	List(ctx context.Context) ([]*domain.Post, error)

	// Update loads the post, applies fn and saves the result.
	// Returns ErrPostNotFound if the post does not exist, or fn's error unchanged.
	Update(ctx context.Context, id domain.ID, fn PostMutation) (*domain.Post, error)

	// Delete removes a post. Returns ErrPostNotFound if it does not exist.
	Delete(ctx context.Context, id domain.ID) error
}
