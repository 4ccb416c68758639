package memory

import (
	"context"
	"sync"

	"github.com/phrazzld/devlink-api/internal/domain"
	"github.com/phrazzld/devlink-api/internal/store"
)

// ProfileStore is an in-memory store.ProfileStore keyed by owning user.
type ProfileStore struct {
	mu       sync.RWMutex
	profiles map[domain.ID]*domain.Profile
}

var _ store.ProfileStore = (*ProfileStore)(nil)

// NewProfileStore creates an empty ProfileStore.
func NewProfileStore() *ProfileStore {
	return &ProfileStore{profiles: make(map[domain.ID]*domain.Profile)}
}

// handleOwnerLocked returns the user owning handle. Callers hold s.mu.
func (s *ProfileStore) handleOwnerLocked(handle string) (domain.ID, bool) {
	for user, p := range s.profiles {
		if p.Handle == handle {
			return user, true
		}
	}
	return domain.NilID, false
}

// Create implements store.ProfileStore.
func (s *ProfileStore) Create(ctx context.Context, profile *domain.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.profiles[profile.User]; ok {
		return store.ErrProfileExists
	}
	if _, taken := s.handleOwnerLocked(profile.Handle); taken {
		return store.ErrHandleExists
	}
	s.profiles[profile.User] = profile.Clone()
	return nil
}

// GetByUser implements store.ProfileStore.
func (s *ProfileStore) GetByUser(ctx context.Context, user domain.ID) (*domain.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.profiles[user]
	if !ok {
		return nil, store.ErrProfileNotFound
	}
	return p.Clone(), nil
}

// GetByHandle implements store.ProfileStore.
func (s *ProfileStore) GetByHandle(ctx context.Context, handle string) (*domain.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.handleOwnerLocked(handle)
	if !ok {
		return nil, store.ErrProfileNotFound
	}
	return s.profiles[user].Clone(), nil
}

// List implements store.ProfileStore.
func (s *ProfileStore) List(ctx context.Context) ([]*domain.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Profile, 0, len(s.profiles))
	for _, p := range s.profiles {
		out = append(out, p.Clone())
	}
	sortNewestFirst(out, func(p *domain.Profile) (domain.ID, int64) { return p.ID, p.Date.UnixNano() })
	return out, nil
}

// Update implements store.ProfileStore. The mutation runs under the store
// lock, so concurrent updates to one profile are serialized.
func (s *ProfileStore) Update(ctx context.Context, user domain.ID, fn store.ProfileMutation) (*domain.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.profiles[user]
	if !ok {
		return nil, store.ErrProfileNotFound
	}
	next := current.Clone()
	if err := fn(next); err != nil {
		return nil, err
	}
	if owner, taken := s.handleOwnerLocked(next.Handle); taken && owner != user {
		return nil, store.ErrHandleExists
	}
	next.User = user
	s.profiles[user] = next
	return next.Clone(), nil
}

// DeleteByUser implements store.ProfileStore.
func (s *ProfileStore) DeleteByUser(ctx context.Context, user domain.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.profiles[user]; !ok {
		return store.ErrProfileNotFound
	}
	delete(s.profiles, user)
	return nil
}
