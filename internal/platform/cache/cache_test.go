package cache

import (
	"context"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/phrazzld/devlink-api/internal/domain"
	"github.com/phrazzld/devlink-api/internal/platform/memory"
	"github.com/phrazzld/devlink-api/internal/store"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingStore records how often lookups reach the wrapped store.
type countingStore struct {
	store.ProfileStore
	byUser   atomic.Int32
	byHandle atomic.Int32
}

func (s *countingStore) GetByUser(ctx context.Context, user domain.ID) (*domain.Profile, error) {
	s.byUser.Add(1)
	return s.ProfileStore.GetByUser(ctx, user)
}

func (s *countingStore) GetByHandle(ctx context.Context, handle string) (*domain.Profile, error) {
	s.byHandle.Add(1)
	return s.ProfileStore.GetByHandle(ctx, handle)
}

func setup(t *testing.T) (*miniredis.Miniredis, *redis.Client, *countingStore, *ProfileCache) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	inner := &countingStore{ProfileStore: memory.NewProfileStore()}
	return mr, rdb, inner, NewProfileCache(inner, rdb, time.Minute, slog.New(slog.DiscardHandler))
}

func seed(t *testing.T, c *ProfileCache, handle string) *domain.Profile {
	t.Helper()
	p := domain.NewProfile(domain.NewID(), domain.ProfileFields{Handle: handle, Status: "dev", Skills: []string{"go"}}, nil, nil)
	require.NoError(t, c.Create(context.Background(), p))
	return p
}

func TestProfileCacheServesRepeatedReads(t *testing.T) {
	mr, _, inner, c := setup(t)
	ctx := context.Background()
	p := seed(t, c, "ann")

	for i := 0; i < 3; i++ {
		got, err := c.GetByUser(ctx, p.User)
		require.NoError(t, err)
		assert.Equal(t, p.ID, got.ID)
	}
	assert.Equal(t, int32(1), inner.byUser.Load())
	assert.True(t, mr.Exists(profileKey(p.User)))
	assert.Equal(t, time.Minute, mr.TTL(profileKey(p.User)))

	got, err := c.GetByHandle(ctx, "ann")
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)
	assert.Equal(t, int32(0), inner.byHandle.Load(), "handle pointer was filled by the user lookup")
}

func TestProfileCacheInvalidatesOnUpdate(t *testing.T) {
	_, _, inner, c := setup(t)
	ctx := context.Background()
	p := seed(t, c, "ann")

	_, err := c.GetByHandle(ctx, "ann")
	require.NoError(t, err)

	_, err = c.Update(ctx, p.User, func(p *domain.Profile) error {
		p.Handle = "ann2"
		return nil
	})
	require.NoError(t, err)

	got, err := c.GetByUser(ctx, p.User)
	require.NoError(t, err)
	assert.Equal(t, "ann2", got.Handle)

	_, err = c.GetByHandle(ctx, "ann")
	assert.ErrorIs(t, err, store.ErrProfileNotFound, "stale handle pointer must not serve the renamed profile")
	assert.Equal(t, int32(2), inner.byHandle.Load())
}

func TestProfileCacheInvalidatesOnDelete(t *testing.T) {
	_, _, _, c := setup(t)
	ctx := context.Background()
	p := seed(t, c, "ann")

	_, err := c.GetByUser(ctx, p.User)
	require.NoError(t, err)
	require.NoError(t, c.DeleteByUser(ctx, p.User))

	_, err = c.GetByUser(ctx, p.User)
	assert.ErrorIs(t, err, store.ErrProfileNotFound)
	_, err = c.GetByHandle(ctx, "ann")
	assert.ErrorIs(t, err, store.ErrProfileNotFound)
}

func TestProfileCacheFallsThroughWhenRedisIsDown(t *testing.T) {
	mr, _, inner, c := setup(t)
	ctx := context.Background()
	p := seed(t, c, "ann")
	mr.Close()

	got, err := c.GetByUser(ctx, p.User)
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)

	got, err = c.GetByHandle(ctx, "ann")
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)
	assert.Equal(t, int32(1), inner.byHandle.Load())
}

func TestProfileCacheDiscardsCorruptEntries(t *testing.T) {
	mr, _, inner, c := setup(t)
	ctx := context.Background()
	p := seed(t, c, "ann")
	require.NoError(t, mr.Set(profileKey(p.User), "{not json"))

	got, err := c.GetByUser(ctx, p.User)
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)
	assert.Equal(t, int32(1), inner.byUser.Load())
}

func TestRedisLimiter(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = rdb.Close() }()
	ctx := context.Background()

	l := NewRedisLimiter(rdb, 2, time.Minute)
	for i, want := range []bool{true, true, false} {
		ok, err := l.Allow(ctx, "ip:1.2.3.4")
		require.NoError(t, err)
		assert.Equal(t, want, ok, "request %d", i+1)
	}

	ok, err := l.Allow(ctx, "ip:5.6.7.8")
	require.NoError(t, err)
	assert.True(t, ok, "keys are limited independently")

	mr.FastForward(time.Minute + time.Second)
	ok, err = l.Allow(ctx, "ip:1.2.3.4")
	require.NoError(t, err)
	assert.True(t, ok, "budget resets after the window")

	mr.Close()
	ok, err = l.Allow(ctx, "ip:1.2.3.4")
	assert.Error(t, err)
	assert.True(t, ok, "fails open")

	ok, err = NewRedisLimiter(rdb, 0, time.Minute).Allow(ctx, "any")
	assert.NoError(t, err)
	assert.True(t, ok)
}

func TestRedisLimiterWindowIsNotExtended(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = rdb.Close() }()
	ctx := context.Background()
	l := NewRedisLimiter(rdb, 2, time.Minute)

	_, err := l.Allow(ctx, "ip:1.2.3.4")
	require.NoError(t, err)
	assert.Equal(t, time.Minute, mr.TTL("rl:ip:1.2.3.4"))

	mr.FastForward(40 * time.Second)
	_, err = l.Allow(ctx, "ip:1.2.3.4")
	require.NoError(t, err)
	assert.Equal(t, 20*time.Second, mr.TTL("rl:ip:1.2.3.4"))
}

func TestRedisLimiterRecoversCounterWithoutExpiry(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = rdb.Close() }()
	ctx := context.Background()
	l := NewRedisLimiter(rdb, 2, time.Minute)

	// A counter over the limit that was left without a TTL.
	require.NoError(t, mr.Set("rl:ip:1.2.3.4", "7"))

	ok, err := l.Allow(ctx, "ip:1.2.3.4")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, time.Minute, mr.TTL("rl:ip:1.2.3.4"))

	mr.FastForward(time.Minute + time.Second)
	ok, err = l.Allow(ctx, "ip:1.2.3.4")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMemoryLimiter(t *testing.T) {
	t.Parallel()

	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l := NewMemoryLimiter(2, time.Minute)
	l.now = func() time.Time { return clock }
	ctx := context.Background()

	allow := func() bool {
		ok, err := l.Allow(ctx, "k")
		require.NoError(t, err)
		return ok
	}

	assert.True(t, allow())
	clock = clock.Add(30 * time.Second)
	assert.True(t, allow())
	assert.False(t, allow())

	clock = clock.Add(31 * time.Second)
	assert.True(t, allow(), "the first request left the window")
	assert.False(t, allow())
}

func TestNewClient(t *testing.T) {
	mr := miniredis.RunT(t)
	logger := slog.New(slog.DiscardHandler)

	client, err := NewClient(context.Background(), "redis://"+mr.Addr()+"/0", logger)
	require.NoError(t, err)
	defer func() { _ = client.Close() }()
	assert.NoError(t, client.Set(context.Background(), "k", "v", 0).Err())

	_, err = NewClient(context.Background(), "::not a url", logger)
	assert.ErrorContains(t, err, "invalid redis url")
}
