package mocks

import (
	"context"

	"github.com/phrazzld/devlink-api/internal/domain"
	"github.com/phrazzld/devlink-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// TestifyMockProfileStore is a testify mock of store.ProfileStore.
type TestifyMockProfileStore struct {
	mock.Mock
}

var _ store.ProfileStore = (*TestifyMockProfileStore)(nil)

func profileResult(args mock.Arguments) (*domain.Profile, error) {
	if p, ok := args.Get(0).(*domain.Profile); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

// Create implements store.ProfileStore.
func (m *TestifyMockProfileStore) Create(ctx context.Context, profile *domain.Profile) error {
	return m.Called(ctx, profile).Error(0)
}

// GetByUser implements store.ProfileStore.
func (m *TestifyMockProfileStore) GetByUser(ctx context.Context, user domain.ID) (*domain.Profile, error) {
	return profileResult(m.Called(ctx, user))
}

// GetByHandle implements store.ProfileStore.
func (m *TestifyMockProfileStore) GetByHandle(ctx context.Context, handle string) (*domain.Profile, error) {
	return profileResult(m.Called(ctx, handle))
}

// List implements store.ProfileStore.
func (m *TestifyMockProfileStore) List(ctx context.Context) ([]*domain.Profile, error) {
	args := m.Called(ctx)
	if ps, ok := args.Get(0).([]*domain.Profile); ok {
		return ps, args.Error(1)
	}
	return nil, args.Error(1)
}

// Update implements store.ProfileStore. The mutation is not invoked.
func (m *TestifyMockProfileStore) Update(ctx context.Context, user domain.ID, fn store.ProfileMutation) (*domain.Profile, error) {
	return profileResult(m.Called(ctx, user, fn))
}

// DeleteByUser implements store.ProfileStore.
func (m *TestifyMockProfileStore) DeleteByUser(ctx context.Context, user domain.ID) error {
	return m.Called(ctx, user).Error(0)
}
