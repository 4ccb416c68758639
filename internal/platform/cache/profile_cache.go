package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/phrazzld/devlink-api/internal/domain"
	"github.com/phrazzld/devlink-api/internal/platform/metrics"
	"github.com/phrazzld/devlink-api/internal/store"
	"github.com/redis/go-redis/v9"
)

const (
	profileKeyPrefix = "profile:user:"
	handleKeyPrefix  = "profile:handle:"
)

// ProfileCache is a cache-aside store.ProfileStore. Profiles are cached by
// owner; handles are cached as pointers to the owner and verified on read,
// so a renamed handle never serves another profile. Redis failures fall
// through to the wrapped store.
type ProfileCache struct {
	next   store.ProfileStore
	rdb    redis.Cmdable
	ttl    time.Duration
	logger *slog.Logger
}

var _ store.ProfileStore = (*ProfileCache)(nil)

// NewProfileCache wraps next with a Redis cache whose entries expire after ttl.
func NewProfileCache(next store.ProfileStore, rdb redis.Cmdable, ttl time.Duration, logger *slog.Logger) *ProfileCache {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProfileCache{
		next:   next,
		rdb:    rdb,
		ttl:    ttl,
		logger: logger.With("component", "profile_cache"),
	}
}

func profileKey(user domain.ID) string { return profileKeyPrefix + user.Hex() }

func handleKey(handle string) string { return handleKeyPrefix + handle }

// Create implements store.ProfileStore.
func (c *ProfileCache) Create(ctx context.Context, profile *domain.Profile) error {
	if err := c.next.Create(ctx, profile); err != nil {
		return err
	}
	c.invalidate(ctx, profile.User)
	return nil
}

// GetByUser implements store.ProfileStore.
func (c *ProfileCache) GetByUser(ctx context.Context, user domain.ID) (*domain.Profile, error) {
	if p, ok := c.cached(ctx, user); ok {
		return p, nil
	}
	metrics.CacheLookups.WithLabelValues("miss").Inc()
	p, err := c.next.GetByUser(ctx, user)
	if err != nil {
		return nil, err
	}
	c.fill(ctx, p)
	return p, nil
}

// GetByHandle implements store.ProfileStore.
func (c *ProfileCache) GetByHandle(ctx context.Context, handle string) (*domain.Profile, error) {
	owner, err := c.rdb.Get(ctx, handleKey(handle)).Result()
	if err == nil {
		if user, perr := domain.ParseID(owner); perr == nil {
			if p, ok := c.cached(ctx, user); ok && p.Handle == handle {
				return p, nil
			}
		}
	} else if !errors.Is(err, redis.Nil) {
		c.logger.Warn("profile cache read failed", slog.Any("error", err))
	}

	metrics.CacheLookups.WithLabelValues("miss").Inc()
	p, err := c.next.GetByHandle(ctx, handle)
	if err != nil {
		return nil, err
	}
	c.fill(ctx, p)
	return p, nil
}

// List implements store.ProfileStore. Listings are not cached.
func (c *ProfileCache) List(ctx context.Context) ([]*domain.Profile, error) {
	return c.next.List(ctx)
}

// Update implements store.ProfileStore.
func (c *ProfileCache) Update(ctx context.Context, user domain.ID, fn store.ProfileMutation) (*domain.Profile, error) {
	p, err := c.next.Update(ctx, user, fn)
	c.invalidate(ctx, user)
	return p, err
}

// DeleteByUser implements store.ProfileStore.
func (c *ProfileCache) DeleteByUser(ctx context.Context, user domain.ID) error {
	err := c.next.DeleteByUser(ctx, user)
	c.invalidate(ctx, user)
	return err
}

// cached returns the profile cached for user. Hits are counted here; misses
// are counted by the caller that falls back to the store.
func (c *ProfileCache) cached(ctx context.Context, user domain.ID) (*domain.Profile, bool) {
	raw, err := c.rdb.Get(ctx, profileKey(user)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("profile cache read failed", slog.Any("error", err))
		}
		return nil, false
	}
	var p domain.Profile
	if err := json.Unmarshal(raw, &p); err != nil {
		c.logger.Warn("discarding undecodable cached profile", slog.Any("error", err))
		c.rdb.Del(ctx, profileKey(user))
		return nil, false
	}
	metrics.CacheLookups.WithLabelValues("hit").Inc()
	return &p, true
}

func (c *ProfileCache) fill(ctx context.Context, p *domain.Profile) {
	raw, err := json.Marshal(p)
	if err != nil {
		return
	}
	_, err = c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, profileKey(p.User), raw, c.ttl)
		pipe.Set(ctx, handleKey(p.Handle), p.User.Hex(), c.ttl)
		return nil
	})
	if err != nil {
		c.logger.Warn("profile cache write failed", slog.Any("error", err))
	}
}

// invalidate drops the cached profile of user. Handle pointers are left to
// expire; GetByHandle detects stale ones.
func (c *ProfileCache) invalidate(ctx context.Context, user domain.ID) {
	if err := c.rdb.Del(ctx, profileKey(user)).Err(); err != nil {
		c.logger.Warn("profile cache invalidation failed",
			slog.String("user_id", user.Hex()), slog.Any("error", err))
	}
}
