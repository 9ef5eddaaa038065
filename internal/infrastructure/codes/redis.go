package codes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shike-app/auth-api/internal/domain"
)

const redisKeyPrefix = "recovery_code:"

// RedisStore keeps verification codes in Redis so multiple replicas share
// one code space. Expiry rides on the Redis key TTL; Take uses GETDEL so a
// stored code is consumed at most once even when verify requests race
// across instances.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) key(email string) string {
	return redisKeyPrefix + email
}

func (s *RedisStore) Put(ctx context.Context, email, code string, ttl time.Duration) error {
	entry := domain.VerificationCode{
		Email:     email,
		Code:      code,
		ExpiresAt: time.Now().Add(ttl),
	}
	payload, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.key(email), payload, ttl).Err(); err != nil {
		return fmt.Errorf("store verification code: %w", err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, email string) (*domain.VerificationCode, error) {
	data, err := s.client.Get(ctx, s.key(email)).Bytes()
	if err != nil {
		return nil, s.mapErr(err)
	}
	return decodeEntry(data)
}

func (s *RedisStore) Take(ctx context.Context, email string) (*domain.VerificationCode, error) {
	data, err := s.client.GetDel(ctx, s.key(email)).Bytes()
	if err != nil {
		return nil, s.mapErr(err)
	}
	return decodeEntry(data)
}

func (s *RedisStore) mapErr(err error) error {
	if errors.Is(err, redis.Nil) {
		return fmt.Errorf("no code for address: %w", domain.ErrNotFound)
	}
	return fmt.Errorf("verification code store unavailable: %w", err)
}

func decodeEntry(data []byte) (*domain.VerificationCode, error) {
	var e domain.VerificationCode
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("decode verification code entry: %w", err)
	}
	// Redis evicts on TTL, but guard against clock skew between writers.
	if e.Expired(time.Now()) {
		return nil, fmt.Errorf("code expired: %w", domain.ErrNotFound)
	}
	return &e, nil
}
