package mongodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/phrazzld/devlink-api/internal/domain"
	"github.com/phrazzld/devlink-api/internal/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ProfileStore is a store.ProfileStore backed by the profiles collection.
type ProfileStore struct {
	coll *mongo.Collection
}

var _ store.ProfileStore = (*ProfileStore)(nil)

// NewProfileStore creates a ProfileStore on db.
func NewProfileStore(db *mongo.Database) *ProfileStore {
	return &ProfileStore{coll: db.Collection(ProfilesCollection)}
}

func mapProfileWriteError(err error) error {
	switch {
	case violatedIndex(err, profilesUserIndex):
		return store.ErrProfileExists
	case violatedIndex(err, profilesHandleIndex):
		return store.ErrHandleExists
	default:
		return MapError(err)
	}
}

// Create implements store.ProfileStore.
func (s *ProfileStore) Create(ctx context.Context, profile *domain.Profile) error {
	if _, err := s.coll.InsertOne(ctx, profile); err != nil {
		return fmt.Errorf("failed to insert profile: %w", mapProfileWriteError(err))
	}
	return nil
}

// GetByUser implements store.ProfileStore.
func (s *ProfileStore) GetByUser(ctx context.Context, user domain.ID) (*domain.Profile, error) {
	return s.findOne(ctx, bson.M{"user": user})
}

// GetByHandle implements store.ProfileStore.
func (s *ProfileStore) GetByHandle(ctx context.Context, handle string) (*domain.Profile, error) {
	return s.findOne(ctx, bson.M{"handle": handle})
}

func (s *ProfileStore) findOne(ctx context.Context, filter bson.M) (*domain.Profile, error) {
	var p domain.Profile
	if err := s.coll.FindOne(ctx, filter).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, store.ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to find profile: %w", MapError(err))
	}
	return &p, nil
}

// List implements store.ProfileStore.
func (s *ProfileStore) List(ctx context.Context) ([]*domain.Profile, error) {
	cur, err := s.coll.Find(ctx, bson.M{}, options.Find().SetSort(newestFirst))
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", MapError(err))
	}
	profiles := []*domain.Profile{}
	if err := cur.All(ctx, &profiles); err != nil {
		return nil, fmt.Errorf("failed to decode profiles: %w", err)
	}
	return profiles, nil
}

// Update implements store.ProfileStore. The read and the replace are not
// atomic; a concurrent writer to the same profile can be overwritten.
func (s *ProfileStore) Update(ctx context.Context, user domain.ID, fn store.ProfileMutation) (*domain.Profile, error) {
	p, err := s.GetByUser(ctx, user)
	if err != nil {
		return nil, err
	}
	if err := fn(p); err != nil {
		return nil, err
	}
	p.User = user

	res, err := s.coll.ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	if err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", mapProfileWriteError(err))
	}
	if res.MatchedCount == 0 {
		return nil, store.ErrProfileNotFound
	}
	return p, nil
}

// DeleteByUser implements store.ProfileStore.
func (s *ProfileStore) DeleteByUser(ctx context.Context, user domain.ID) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"user": user})
	if err != nil {
		return fmt.Errorf("failed to delete profile: %w", MapError(err))
	}
	if res.DeletedCount == 0 {
		return store.ErrProfileNotFound
	}
	return nil
}
