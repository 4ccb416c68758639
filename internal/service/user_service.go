package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/phrazzld/devlink-api/internal/domain"
	"github.com/phrazzld/devlink-api/internal/platform/logger"
	"github.com/phrazzld/devlink-api/internal/redact"
	"github.com/phrazzld/devlink-api/internal/service/auth"
	"github.com/phrazzld/devlink-api/internal/store"
	"github.com/phrazzld/devlink-api/internal/validation"
)

// Token is an issued access token.
type Token struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// UserService manages accounts.
type UserService interface {
	// Register creates an account. It fails with domain.ErrUserExists when
	// the email is taken.
	Register(ctx context.Context, in validation.NewUserInput) (*domain.User, error)

	// Login checks the credentials and issues a token.
	Login(ctx context.Context, in validation.LoginInput) (*Token, error)

	// GetUser returns the account with the given id.
	GetUser(ctx context.Context, id domain.ID) (*domain.User, error)

	// DeleteAccount removes the user's profile, if any, and then the user.
	DeleteAccount(ctx context.Context, id domain.ID) error
}

// UserServiceImpl implements UserService.
type UserServiceImpl struct {
	users    store.UserStore
	profiles store.ProfileStore
	hasher   auth.PasswordHasher
	verifier auth.PasswordVerifier
	tokens   auth.JWTService
	logger   *slog.Logger
}

var _ UserService = (*UserServiceImpl)(nil)

// NewUserService creates a UserService.
func NewUserService(
	users store.UserStore,
	profiles store.ProfileStore,
	hasher auth.PasswordHasher,
	verifier auth.PasswordVerifier,
	tokens auth.JWTService,
	logger *slog.Logger,
) *UserServiceImpl {
	return &UserServiceImpl{
		users:    users,
		profiles: profiles,
		hasher:   hasher,
		verifier: verifier,
		tokens:   tokens,
		logger:   logger.With("component", "user_service"),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *UserServiceImpl) log(ctx context.Context) *slog.Logger {
	return logger.FromContextOrDefault(ctx, s.logger)
}

// Register implements UserService.
func (s *UserServiceImpl) Register(ctx context.Context, in validation.NewUserInput) (*domain.User, error) {
	log := s.log(ctx)
	email := normalizeEmail(in.Email)

	_, err := s.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		log.Debug("registration with existing email", "email", email)
		return nil, domain.ErrUserExists
	case !store.IsNotFoundError(err):
		log.Error("failed to look up email", "error", redact.Error(err))
		return nil, fmt.Errorf("failed to look up email: %w", err)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	user := domain.NewUser(strings.TrimSpace(in.Name), email, hash)
	if err := s.users.Create(ctx, user); err != nil {
		err = translate(err)
		if isExpected(err) {
			log.Debug("registration lost uniqueness race", "email", email)
			return nil, err
		}
		log.Error("failed to save user", "error", redact.Error(err))
		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	log.Info("user registered", "user_id", user.ID.Hex())
	return user, nil
}

// Login implements UserService.
func (s *UserServiceImpl) Login(ctx context.Context, in validation.LoginInput) (*Token, error) {
	log := s.log(ctx)

	user, err := s.users.GetByEmail(ctx, normalizeEmail(in.Email))
	if err != nil {
		if err = translate(err); isExpected(err) {
			return nil, err
		}
		log.Error("failed to look up user for login", "error", redact.Error(err))
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := s.verifier.Compare(user.HashedPassword, in.Password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			log.Debug("login with wrong password", "user_id", user.ID.Hex())
			return nil, domain.ErrPasswordIncorrect
		}
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}

	token, expiresAt, err := s.tokens.GenerateToken(ctx, user)
	if err != nil {
		log.Error("failed to issue token", "error", err, "user_id", user.ID.Hex())
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	log.Debug("user logged in", "user_id", user.ID.Hex())
	return &Token{Token: token, ExpiresAt: expiresAt}, nil
}

// GetUser implements UserService.
func (s *UserServiceImpl) GetUser(ctx context.Context, id domain.ID) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if err = translate(err); isExpected(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}
	return user, nil
}

// DeleteAccount implements UserService. The profile goes first so that a
// failure never leaves a profile without its user.
func (s *UserServiceImpl) DeleteAccount(ctx context.Context, id domain.ID) error {
	log := s.log(ctx)

	if err := s.profiles.DeleteByUser(ctx, id); err != nil && !store.IsNotFoundError(err) {
		log.Error("failed to delete profile", "error", redact.Error(err))
		return fmt.Errorf("failed to delete profile: %w", err)
	}

	if err := s.users.Delete(ctx, id); err != nil {
		if err = translate(err); isExpected(err) {
			return err
		}
		log.Error("failed to delete user", "error", redact.Error(err))
		return fmt.Errorf("failed to delete user: %w", err)
	}

	log.Info("account deleted")
	return nil
}
