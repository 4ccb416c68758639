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

// PostStore is a store.PostStore backed by the posts collection.
type PostStore struct {
	coll *mongo.Collection
}

var _ store.PostStore = (*PostStore)(nil)

// NewPostStore creates a PostStore on db.
func NewPostStore(db *mongo.Database) *PostStore {
	return &PostStore{coll: db.Collection(PostsCollection)}
}

// Create implements store.PostStore.
func (s *PostStore) Create(ctx context.Context, post *domain.Post) error {
	if _, err := s.coll.InsertOne(ctx, post); err != nil {
		return fmt.Errorf("failed to insert post: %w", MapError(err))
	}
	return nil
}

// GetByID implements store.PostStore.
func (s *PostStore) GetByID(ctx context.Context, id domain.ID) (*domain.Post, error) {
	var p domain.Post
	if err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, store.ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to find post: %w", MapError(err))
	}
	return &p, nil
}

// List implements store.PostStore.
func (s *PostStore) List(ctx context.Context) ([]*domain.Post, error) {
	cur, err := s.coll.Find(ctx, bson.M{}, options.Find().SetSort(newestFirst))
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", MapError(err))
	}
	posts := []*domain.Post{}
	if err := cur.All(ctx, &posts); err != nil {
		return nil, fmt.Errorf("failed to decode posts: %w", err)
	}
	return posts, nil
}

// Update implements store.PostStore. Like ProfileStore.Update it is a
// read-modify-replace without concurrency control.
func (s *PostStore) Update(ctx context.Context, id domain.ID, fn store.PostMutation) (*domain.Post, error) {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(p); err != nil {
		return nil, err
	}
	p.ID = id

	res, err := s.coll.ReplaceOne(ctx, bson.M{"_id": id}, p)
	if err != nil {
		return nil, fmt.Errorf("failed to save post: %w", MapError(err))
	}
	if res.MatchedCount == 0 {
		return nil, store.ErrPostNotFound
	}
	return p, nil
}

// Delete implements store.PostStore.
func (s *PostStore) Delete(ctx context.Context, id domain.ID) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", MapError(err))
	}
	if res.DeletedCount == 0 {
		return store.ErrPostNotFound
	}
	return nil
}
