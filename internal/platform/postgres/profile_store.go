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

// PostgresProfileStore implements store.ProfileStore on the profiles table.
type PostgresProfileStore struct {
	db     *sql.DB
	logger *slog.Logger
}

var _ store.ProfileStore = (*PostgresProfileStore)(nil)

// NewPostgresProfileStore creates a profile store. A nil logger means
// slog.Default.
func NewPostgresProfileStore(db *sql.DB, logger *slog.Logger) *PostgresProfileStore {
	if db == nil {
		// ALLOW-PANIC: constructor precondition
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresProfileStore{
		db:     db,
		logger: logger.With(slog.String("component", "profile_store")),
	}
}

// Create implements store.ProfileStore.
func (s *PostgresProfileStore) Create(ctx context.Context, profile *domain.Profile) error {
	doc, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}
	_, err = s.db.ExecContext(ctx,
		"INSERT INTO profiles (id, user_id, handle, doc, created_at) VALUES ($1, $2, $3, $4, $5)",
		profile.ID.Hex(), profile.User.Hex(), profile.Handle, doc, profile.Date)
	if err != nil {
		return fmt.Errorf("failed to insert profile: %w", MapError(err))
	}
	return nil
}

// GetByUser implements store.ProfileStore.
func (s *PostgresProfileStore) GetByUser(ctx context.Context, user domain.ID) (*domain.Profile, error) {
	var p domain.Profile
	row := s.db.QueryRowContext(ctx, "SELECT doc FROM profiles WHERE user_id = $1", user.Hex())
	if err := scanDocument(row, &p, store.ErrProfileNotFound); err != nil {
		return nil, err
	}
	return &p, nil
}

// GetByHandle implements store.ProfileStore.
func (s *PostgresProfileStore) GetByHandle(ctx context.Context, handle string) (*domain.Profile, error) {
	var p domain.Profile
	row := s.db.QueryRowContext(ctx, "SELECT doc FROM profiles WHERE handle = $1", handle)
	if err := scanDocument(row, &p, store.ErrProfileNotFound); err != nil {
		return nil, err
	}
	return &p, nil
}

// List implements store.ProfileStore.
func (s *PostgresProfileStore) List(ctx context.Context) ([]*domain.Profile, error) {
	profiles, err := queryDocuments[domain.Profile](ctx, s.db,
		"SELECT doc FROM profiles ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	return profiles, nil
}

// Update implements store.ProfileStore. The row is locked for the duration
// of fn.
func (s *PostgresProfileStore) Update(ctx context.Context, user domain.ID, fn store.ProfileMutation) (*domain.Profile, error) {
	var updated domain.Profile
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx, "SELECT doc FROM profiles WHERE user_id = $1 FOR UPDATE", user.Hex())
		if err := scanDocument(row, &updated, store.ErrProfileNotFound); err != nil {
			return err
		}
		if err := fn(&updated); err != nil {
			return err
		}
		updated.User = user

		doc, err := json.Marshal(&updated)
		if err != nil {
			return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
		}
		res, err := tx.ExecContext(ctx,
			"UPDATE profiles SET handle = $2, doc = $3 WHERE user_id = $1",
			user.Hex(), updated.Handle, doc)
		if err != nil {
			return MapError(err)
		}
		return CheckRowsAffected(res, store.ErrProfileNotFound)
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteByUser implements store.ProfileStore.
func (s *PostgresProfileStore) DeleteByUser(ctx context.Context, user domain.ID) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM profiles WHERE user_id = $1", user.Hex())
	if err != nil {
		return fmt.Errorf("failed to delete profile: %w", MapError(err))
	}
	return CheckRowsAffected(res, store.ErrProfileNotFound)
}
