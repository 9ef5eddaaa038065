// Package codes provides the verification-code store backing the password
// recovery flow: a TTL-bearing map from recovery email to a one-time code.
package codes

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shike-app/auth-api/internal/domain"
)

const sweepInterval = time.Minute

// MemoryStore keeps verification codes in a mutex-guarded map. Expiry is
// evaluated on every read, so an expired entry behaves as absent even
// before the janitor removes it. Suitable for single-instance deployments
// only; use RedisStore when running replicas.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]domain.VerificationCode
	now     func() time.Time

	stop     chan struct{}
	stopOnce sync.Once
}

// NewMemoryStore creates the store and starts a background janitor that
// drops expired entries, bounding memory growth from abandoned recoveries.
// Call Close to stop the janitor when the store is discarded.
func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{
		entries: make(map[string]domain.VerificationCode),
		now:     time.Now,
		stop:    make(chan struct{}),
	}
	go s.janitor()
	return s
}

// Close stops the janitor goroutine. Safe to call more than once. The
// store itself stays usable; only background sweeping ends.
func (s *MemoryStore) Close() {
	s.stopOnce.Do(func() { close(s.stop) })
}

// Put stores a code for email, unconditionally overwriting any live entry.
func (s *MemoryStore) Put(_ context.Context, email, code string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[email] = domain.VerificationCode{
		Email:     email,
		Code:      code,
		ExpiresAt: s.now().Add(ttl),
	}
	return nil
}

// Get returns the live entry for email without consuming it.
func (s *MemoryStore) Get(_ context.Context, email string) (*domain.VerificationCode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[email]
	if !ok {
		return nil, fmt.Errorf("no code for address: %w", domain.ErrNotFound)
	}
	if e.Expired(s.now()) {
		delete(s.entries, email)
		return nil, fmt.Errorf("code expired: %w", domain.ErrNotFound)
	}
	return &e, nil
}

// Take atomically retrieves and removes the live entry for email. Under
// concurrent calls for the same address exactly one caller wins; the rest
// observe absence.
func (s *MemoryStore) Take(_ context.Context, email string) (*domain.VerificationCode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[email]
	if !ok {
		return nil, fmt.Errorf("no code for address: %w", domain.ErrNotFound)
	}
	delete(s.entries, email)
	if e.Expired(s.now()) {
		return nil, fmt.Errorf("code expired: %w", domain.ErrNotFound)
	}
	return &e, nil
}

func (s *MemoryStore) janitor() {
	t := time.NewTicker(sweepInterval)
	defer t.Stop()
	for {
		select {
		case <-t.C:
			s.sweep()
		case <-s.stop:
			return
		}
	}
}

func (s *MemoryStore) sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	removed := 0
	for email, e := range s.entries {
		if e.Expired(now) {
			delete(s.entries, email)
			removed++
		}
	}
	return removed
}
