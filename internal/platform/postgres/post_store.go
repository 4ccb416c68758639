package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/phrazzld/devlink-api/internal/domain"
	"github.com/phrazzld/devlink-api/internal/store"
)

// PostgresPostStore implements store.PostStore on the posts table.
type PostgresPostStore struct {
	db     *sql.DB
	logger *slog.Logger
}

var _ store.PostStore = (*PostgresPostStore)(nil)

// NewPostgresPostStore creates a post store.
func NewPostgresPostStore(db *sql.DB, logger *slog.Logger) *PostgresPostStore {
	if db == nil {
		// ALLOW-PANIC: constructor precondition
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresPostStore{
		db:     db,
		logger: logger.With(slog.String("component", "post_store")),
	}
}

// Create implements store.PostStore.
func (s *PostgresPostStore) Create(ctx context.Context, post *domain.Post) error {
	doc, err := json.Marshal(post)
	if err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}
	_, err = s.db.ExecContext(ctx,
		"INSERT INTO posts (id, user_id, doc, created_at) VALUES ($1, $2, $3, $4)",
		post.ID.Hex(), post.User.Hex(), doc, post.Date)
	if err != nil {
		return fmt.Errorf("failed to insert post: %w", MapError(err))
	}
	return nil
}

// GetByID implements store.PostStore.
func (s *PostgresPostStore) GetByID(ctx context.Context, id domain.ID) (*domain.Post, error) {
	var p domain.Post
	row := s.db.QueryRowContext(ctx, "SELECT doc FROM posts WHERE id = $1", id.Hex())
	if err := scanDocument(row, &p, store.ErrPostNotFound); err != nil {
		return nil, err
	}
	return &p, nil
}

// List implements store.PostStore.
func (s *PostgresPostStore) List(ctx context.Context) ([]*domain.Post, error) {
	posts, err := queryDocuments[domain.Post](ctx, s.db,
		"SELECT doc FROM posts ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return posts, nil
}

// Update implements store.PostStore. Concurrent likes on one post are
// serialized by the row lock.
func (s *PostgresPostStore) Update(ctx context.Context, id domain.ID, fn store.PostMutation) (*domain.Post, error) {
	var updated domain.Post
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx, "SELECT doc FROM posts WHERE id = $1 FOR UPDATE", id.Hex())
		if err := scanDocument(row, &updated, store.ErrPostNotFound); err != nil {
			return err
		}
		if err := fn(&updated); err != nil {
			return err
		}
		updated.ID = id

		doc, err := json.Marshal(&updated)
		if err != nil {
			return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
		}
		res, err := tx.ExecContext(ctx, "UPDATE posts SET doc = $2 WHERE id = $1", id.Hex(), doc)
		if err != nil {
			return MapError(err)
		}
		return CheckRowsAffected(res, store.ErrPostNotFound)
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete implements store.PostStore.
func (s *PostgresPostStore) Delete(ctx context.Context, id domain.ID) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM posts WHERE id = $1", id.Hex())
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", MapError(err))
	}
	return CheckRowsAffected(res, store.ErrPostNotFound)
}
