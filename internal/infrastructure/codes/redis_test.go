package codes

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shike-app/auth-api/internal/domain"
)

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client), mr
}

func TestRedisStore_PutGetTake(t *testing.T) {
	s, _ := newRedisStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "a@x.com", "123456", 15*time.Minute))

	e, err := s.Get(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "123456", e.Code)
	assert.Equal(t, "a@x.com", e.Email)

	e, err = s.Take(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "123456", e.Code)

	_, err = s.Take(ctx, "a@x.com")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRedisStore_PutOverwrites(t *testing.T) {
	s, _ := newRedisStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "a@x.com", "111111", 15*time.Minute))
	require.NoError(t, s.Put(ctx, "a@x.com", "222222", 15*time.Minute))

	e, err := s.Take(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "222222", e.Code)
}

func TestRedisStore_TTLExpiry(t *testing.T) {
	s, mr := newRedisStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "a@x.com", "123456", time.Minute))

	mr.FastForward(time.Minute + time.Second)

	_, err := s.Get(ctx, "a@x.com")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = s.Take(ctx, "a@x.com")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRedisStore_Unavailable(t *testing.T) {
	s, mr := newRedisStore(t)
	ctx := context.Background()

	mr.Close()

	err := s.Put(ctx, "a@x.com", "123456", time.Minute)
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrNotFound)

	// Take on a dead store reports unavailability, never absence.
	_, err = s.Take(ctx, "a@x.com")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
}
