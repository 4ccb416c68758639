package mongodb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/phrazzld/devlink-api/internal/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection and index names.
const (
	UsersCollection    = "users"
	ProfilesCollection = "profiles"
	PostsCollection    = "posts"

	usersEmailIndex     = "users_email_unique"
	profilesUserIndex   = "profiles_user_unique"
	profilesHandleIndex = "profiles_handle_unique"
	postsDateIndex      = "posts_date"
	profilesDateIndex   = "profiles_date"
)

// Connect opens a client for uri, pings the primary and returns the named
// database.
func Connect(ctx context.Context, uri, database string, logger *slog.Logger) (*mongo.Client, *mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	logger.Info("connected to mongodb", "database", database)
	return client, client.Database(database), nil
}

// EnsureIndexes creates the unique and sort indexes the stores rely on.
// It is idempotent.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		UsersCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true).SetName(usersEmailIndex)},
		},
		ProfilesCollection: {
			{Keys: bson.D{{Key: "user", Value: 1}}, Options: options.Index().SetUnique(true).SetName(profilesUserIndex)},
			{Keys: bson.D{{Key: "handle", Value: 1}}, Options: options.Index().SetUnique(true).SetName(profilesHandleIndex)},
			{Keys: bson.D{{Key: "date", Value: -1}}, Options: options.Index().SetName(profilesDateIndex)},
		},
		PostsCollection: {
			{Keys: bson.D{{Key: "date", Value: -1}}, Options: options.Index().SetName(postsDateIndex)},
		},
	}

	for _, coll := range []string{UsersCollection, ProfilesCollection, PostsCollection} {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, indexes[coll]); err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", coll, err)
		}
	}
	return nil
}

// MapError maps a driver error to the store sentinels. Errors without a
// specific mapping are returned unchanged.
func MapError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return fmt.Errorf("%w: %v", store.ErrNotFound, err)
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%w: %v", store.ErrDuplicate, err)
	default:
		return err
	}
}

// violatedIndex reports whether err is a duplicate key error on the named index.
func violatedIndex(err error, index string) bool {
	return mongo.IsDuplicateKeyError(err) && strings.Contains(err.Error(), index)
}

// newestFirst sorts by creation date descending with the id as tie breaker.
var newestFirst = bson.D{{Key: "date", Value: -1}, {Key: "_id", Value: -1}}
