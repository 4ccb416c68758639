// Package storetest holds the behavior every store adapter must share. Each
// adapter's tests call Run with a factory for fresh, empty stores.
package storetest

import (
	"context"
	"errors"
	"testing"

	"github.com/phrazzld/devlink-api/internal/domain"
	"github.com/phrazzld/devlink-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Stores is one adapter's set of stores over the same backend.
type Stores struct {
	Users    store.UserStore
	Profiles store.ProfileStore
	Posts    store.PostStore
}

// Factory returns empty stores. It is called once per subtest.
type Factory func(t *testing.T) Stores

// Run exercises the store contract against the stores built by newStores.
func Run(t *testing.T, newStores Factory) {
	t.Run("users", func(t *testing.T) { testUsers(t, newStores(t)) })
	t.Run("profiles", func(t *testing.T) { testProfiles(t, newStores(t)) })
	t.Run("posts", func(t *testing.T) { testPosts(t, newStores(t)) })
}

func mustUser(t *testing.T, s Stores, email string) *domain.User {
	t.Helper()
	u := domain.NewUser("Test User", email, "$2a$04$hash")
	require.NoError(t, s.Users.Create(context.Background(), u))
	return u
}

func testUsers(t *testing.T, s Stores) {
	ctx := context.Background()
	u := mustUser(t, s, "ann@x.com")

	got, err := s.Users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.Email, got.Email)
	assert.Equal(t, u.HashedPassword, got.HashedPassword)

	got, err = s.Users.GetByEmail(ctx, "ann@x.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	err = s.Users.Create(ctx, domain.NewUser("Other", "ann@x.com", "h"))
	assert.ErrorIs(t, err, store.ErrEmailExists)
	assert.True(t, store.IsDuplicateError(err))

	_, err = s.Users.GetByEmail(ctx, "nobody@x.com")
	assert.ErrorIs(t, err, store.ErrUserNotFound)

	require.NoError(t, s.Users.Delete(ctx, u.ID))
	_, err = s.Users.GetByID(ctx, u.ID)
	assert.ErrorIs(t, err, store.ErrUserNotFound)
	assert.ErrorIs(t, s.Users.Delete(ctx, u.ID), store.ErrUserNotFound)
}

func testProfiles(t *testing.T, s Stores) {
	ctx := context.Background()
	ann := mustUser(t, s, "ann@x.com")
	bob := mustUser(t, s, "bob@x.com")

	list, err := s.Profiles.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	p := domain.NewProfile(ann.ID, domain.ProfileFields{Handle: "ann", Status: "dev", Skills: []string{"go"}}, nil, nil)
	require.NoError(t, s.Profiles.Create(ctx, p))

	err = s.Profiles.Create(ctx, domain.NewProfile(ann.ID, domain.ProfileFields{Handle: "ann2"}, nil, nil))
	assert.ErrorIs(t, err, store.ErrProfileExists)
	err = s.Profiles.Create(ctx, domain.NewProfile(bob.ID, domain.ProfileFields{Handle: "ann"}, nil, nil))
	assert.ErrorIs(t, err, store.ErrHandleExists)

	q := domain.NewProfile(bob.ID, domain.ProfileFields{Handle: "bob", Status: "dev", Skills: []string{"sql"}}, nil, nil)
	require.NoError(t, s.Profiles.Create(ctx, q))

	list, err = s.Profiles.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, q.ID, list[0].ID, "newest first")

	got, err := s.Profiles.GetByHandle(ctx, "ann")
	require.NoError(t, err)
	assert.Equal(t, ann.ID, got.User)

	updated, err := s.Profiles.Update(ctx, ann.ID, func(p *domain.Profile) error {
		return p.AddExperience(domain.Experience{Title: "Engineer", Company: "Acme"})
	})
	require.NoError(t, err)
	require.Len(t, updated.Experience, 1)

	got, err = s.Profiles.GetByUser(ctx, ann.ID)
	require.NoError(t, err)
	require.Len(t, got.Experience, 1)
	assert.Equal(t, "Engineer", got.Experience[0].Title)

	errAbort := errors.New("abort")
	_, err = s.Profiles.Update(ctx, ann.ID, func(p *domain.Profile) error {
		p.Bio = "discarded"
		return errAbort
	})
	assert.ErrorIs(t, err, errAbort)
	got, err = s.Profiles.GetByUser(ctx, ann.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Bio, "a failed mutation is not saved")

	_, err = s.Profiles.Update(ctx, ann.ID, func(p *domain.Profile) error {
		p.Handle = "bob"
		return nil
	})
	assert.ErrorIs(t, err, store.ErrHandleExists)

	_, err = s.Profiles.Update(ctx, domain.NewID(), func(*domain.Profile) error { return nil })
	assert.ErrorIs(t, err, store.ErrProfileNotFound)

	require.NoError(t, s.Profiles.DeleteByUser(ctx, ann.ID))
	_, err = s.Profiles.GetByUser(ctx, ann.ID)
	assert.ErrorIs(t, err, store.ErrProfileNotFound)
	assert.ErrorIs(t, s.Profiles.DeleteByUser(ctx, ann.ID), store.ErrProfileNotFound)
}

func testPosts(t *testing.T, s Stores) {
	ctx := context.Background()
	ann := mustUser(t, s, "ann@x.com")
	bob := mustUser(t, s, "bob@x.com")

	first := domain.NewPost(ann.ID, "first", "Ann", "")
	second := domain.NewPost(bob.ID, "second", "Bob", "")
	require.NoError(t, s.Posts.Create(ctx, first))
	require.NoError(t, s.Posts.Create(ctx, second))

	list, err := s.Posts.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID, "newest first")

	liked, err := s.Posts.Update(ctx, first.ID, func(p *domain.Post) error { return p.Like(bob.ID) })
	require.NoError(t, err)
	assert.Equal(t, []domain.Like{{User: bob.ID}}, liked.Likes)

	_, err = s.Posts.Update(ctx, first.ID, func(p *domain.Post) error { return p.Like(bob.ID) })
	assert.ErrorIs(t, err, domain.ErrPostAlreadyLiked)

	_, err = s.Posts.Update(ctx, first.ID, func(p *domain.Post) error {
		p.AddComment(bob.ID, "nice", "Bob", "")
		return nil
	})
	require.NoError(t, err)

	got, err := s.Posts.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Len(t, got.Likes, 1)
	require.Len(t, got.Comments, 1)
	assert.Equal(t, "nice", got.Comments[0].Text)

	_, err = s.Posts.Update(ctx, domain.NewID(), func(*domain.Post) error { return nil })
	assert.ErrorIs(t, err, store.ErrPostNotFound)

	require.NoError(t, s.Posts.Delete(ctx, first.ID))
	_, err = s.Posts.GetByID(ctx, first.ID)
	assert.ErrorIs(t, err, store.ErrPostNotFound)
	assert.ErrorIs(t, s.Posts.Delete(ctx, first.ID), store.ErrPostNotFound)
}
