package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/devlink-api/internal/api/middleware"
	"github.com/phrazzld/devlink-api/internal/config"
	"github.com/phrazzld/devlink-api/internal/platform/cache"
	"github.com/phrazzld/devlink-api/internal/service"
	"github.com/phrazzld/devlink-api/internal/service/auth"
	"github.com/redis/go-redis/v9"
)

// application holds the dependencies shared by the HTTP handlers.
type application struct {
	config *config.Config
	logger *slog.Logger

	storage *storage
	redis   *redis.Client

	jwtService auth.JWTService
	limiter    middleware.Limiter

	userService    service.UserService
	profileService service.ProfileService
	postService    service.PostService
}

// newApplication connects the configured backends and builds the services.
// Redis is optional: without it profiles are read straight from the store
// and rate limits are counted per process.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	app.storage, err = setupStorage(ctx, cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to set up storage: %w", err)
	}

	profiles := app.storage.profiles
	if cfg.Redis.URL != "" {
		app.redis, err = cache.NewClient(ctx, cfg.Redis.URL, logger)
		if err != nil {
			app.cleanup()
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		profiles = cache.NewProfileCache(profiles, app.redis, cfg.Redis.CacheTTL(), logger)
		app.limiter = cache.NewRedisLimiter(app.redis, cfg.RateLimit.Requests, cfg.RateLimit.Window())
	} else {
		app.limiter = cache.NewMemoryLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window())
	}

	hasher := auth.NewBcryptHasher(cfg.Auth.BCryptCost)
	app.userService = service.NewUserService(
		app.storage.users, profiles, hasher, hasher, app.jwtService, logger)
	app.profileService = service.NewProfileService(profiles, app.storage.users, logger)
	app.postService = service.NewPostService(app.storage.posts, app.storage.users, logger)

	logger.Info("Application initialized successfully",
		"database_driver", cfg.Database.Driver,
		"redis_enabled", app.redis != nil)
	return app, nil
}

// Run serves HTTP until ctx is canceled or a shutdown signal arrives.
func (app *application) Run(ctx context.Context) error {
	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup releases the backend connections.
func (app *application) cleanup() {
	ctx := context.Background()
	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Error("Error closing redis connection", "error", err)
		}
	}
	if app.storage != nil {
		if err := app.storage.close(ctx); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}
	app.logger.Info("Application shutdown completed")
}
