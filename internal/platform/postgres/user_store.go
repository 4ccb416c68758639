package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/devlink-api/internal/domain"
	"github.com/phrazzld/devlink-api/internal/store"
)

const userColumns = "id, name, email, password_hash, avatar, created_at"

// PostgresUserStore implements store.UserStore on the users table.
type PostgresUserStore struct {
	db     store.DBTX
	logger *slog.Logger
}

var _ store.UserStore = (*PostgresUserStore)(nil)

// NewPostgresUserStore creates a user store. A nil logger means slog.Default.
func NewPostgresUserStore(db store.DBTX, logger *slog.Logger) *PostgresUserStore {
	if db == nil {
		// ALLOW-PANIC: constructor precondition
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresUserStore{
		db:     db,
		logger: logger.With(slog.String("component", "user_store")),
	}
}

// Create implements store.UserStore.
func (s *PostgresUserStore) Create(ctx context.Context, user *domain.User) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO users ("+userColumns+") VALUES ($1, $2, $3, $4, $5, $6)",
		user.ID.Hex(), user.Name, user.Email, user.HashedPassword, user.Avatar, user.Date)
	if err != nil {
		s.logger.Debug("user insert failed", slog.String("user_id", user.ID.Hex()), slog.Any("error", err))
		return fmt.Errorf("failed to insert user: %w", MapError(err))
	}
	return nil
}

// GetByID implements store.UserStore.
func (s *PostgresUserStore) GetByID(ctx context.Context, id domain.ID) (*domain.User, error) {
	return s.getOne(ctx, "SELECT "+userColumns+" FROM users WHERE id = $1", id.Hex())
}

// GetByEmail implements store.UserStore.
func (s *PostgresUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.getOne(ctx, "SELECT "+userColumns+" FROM users WHERE email = $1", email)
}

func (s *PostgresUserStore) getOne(ctx context.Context, query string, arg any) (*domain.User, error) {
	var (
		u  domain.User
		id string
	)
	err := s.db.QueryRowContext(ctx, query, arg).
		Scan(&id, &u.Name, &u.Email, &u.HashedPassword, &u.Avatar, &u.Date)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", MapError(err))
	}
	if u.ID, err = domain.ParseID(id); err != nil {
		return nil, fmt.Errorf("%w: user id %q", store.ErrInvalidEntity, id)
	}
	u.Date = u.Date.UTC()
	return &u, nil
}

// Delete implements store.UserStore.
func (s *PostgresUserStore) Delete(ctx context.Context, id domain.ID) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM users WHERE id = $1", id.Hex())
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", MapError(err))
	}
	return CheckRowsAffected(res, store.ErrUserNotFound)
}
