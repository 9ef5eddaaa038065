package codes

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shike-app/auth-api/internal/domain"
)

// newStore returns a store with a controllable clock and no janitor.
func newStore(now *time.Time) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]domain.VerificationCode),
		now:     func() time.Time { return *now },
	}
}

func TestMemoryStore_PutGetTake(t *testing.T) {
	now := time.Now()
	s := newStore(&now)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "a@x.com", "123456", 15*time.Minute))

	e, err := s.Get(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "123456", e.Code)

	// Get does not consume.
	e, err = s.Take(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "123456", e.Code)

	// Take does.
	_, err = s.Take(ctx, "a@x.com")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMemoryStore_PutOverwrites(t *testing.T) {
	now := time.Now()
	s := newStore(&now)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "a@x.com", "111111", 15*time.Minute))
	require.NoError(t, s.Put(ctx, "a@x.com", "222222", 15*time.Minute))

	e, err := s.Take(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "222222", e.Code)
}

func TestMemoryStore_ExpiryAtReadTime(t *testing.T) {
	now := time.Now()
	s := newStore(&now)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "a@x.com", "123456", 15*time.Minute))

	now = now.Add(15*time.Minute + time.Second)

	_, err := s.Get(ctx, "a@x.com")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Expired entry behaves as absent for Take too, even before any sweep.
	require.NoError(t, s.Put(ctx, "b@x.com", "654321", time.Minute))
	now = now.Add(2 * time.Minute)
	_, err = s.Take(ctx, "b@x.com")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMemoryStore_AddressesAreIndependent(t *testing.T) {
	now := time.Now()
	s := newStore(&now)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "a@x.com", "111111", time.Minute))
	require.NoError(t, s.Put(ctx, "b@x.com", "222222", time.Minute))

	_, err := s.Take(ctx, "a@x.com")
	require.NoError(t, err)

	e, err := s.Get(ctx, "b@x.com")
	require.NoError(t, err)
	assert.Equal(t, "222222", e.Code)
}

func TestMemoryStore_ConcurrentTake_ExactlyOneWins(t *testing.T) {
	now := time.Now()
	s := newStore(&now)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "a@x.com", "123456", time.Minute))

	const n = 50
	var wg sync.WaitGroup
	var mu sync.Mutex
	wins, misses := 0, 0

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Take(ctx, "a@x.com")
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				wins++
			} else if errors.Is(err, domain.ErrNotFound) {
				misses++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, wins)
	assert.Equal(t, n-1, misses)
}

func TestMemoryStore_CloseStopsJanitorKeepsServing(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	s.Close()
	s.Close() // idempotent

	require.NoError(t, s.Put(ctx, "a@x.com", "123456", time.Minute))
	e, err := s.Get(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "123456", e.Code)
}

func TestMemoryStore_SweepRemovesOnlyExpired(t *testing.T) {
	now := time.Now()
	s := newStore(&now)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "old@x.com", "111111", time.Minute))
	require.NoError(t, s.Put(ctx, "fresh@x.com", "222222", time.Hour))

	now = now.Add(2 * time.Minute)
	removed := s.sweep()

	assert.Equal(t, 1, removed)
	_, err := s.Get(ctx, "fresh@x.com")
	assert.NoError(t, err)
	assert.Len(t, s.entries, 1)
}
