// Package token tracks revoked JWT ids (jti) until the tokens they belong to
// would have expired anyway. Two stores exist: a redis-backed one for
// multi-instance deployments and an in-process one for single instances and
// tests.
package token

import (
	"context"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

// Revoker records token ids as revoked for a bounded lifetime. Expired
// entries are swept automatically by the backing store.
type Revoker interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

const redisKeyPrefix = "revoked_token:"

type redisRevoker struct {
	client *redis.Client
}

// NewRedisRevoker returns a Revoker backed by redis. Entries expire with the
// key TTL, so no explicit sweeping is needed.
func NewRedisRevoker(url string) (Revoker, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}
	return &redisRevoker{client: redis.NewClient(opts)}, nil
}

func (r *redisRevoker) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := r.client.Set(ctx, redisKeyPrefix+jti, "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

func (r *redisRevoker) IsRevoked(ctx context.Context, jti string) (bool, error) {
	err := r.client.Get(ctx, redisKeyPrefix+jti).Err()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check token revocation: %w", err)
	}
	return true, nil
}

type memoryRevoker struct {
	cache *gocache.Cache
}

// NewMemoryRevoker returns an in-process Revoker. The cache janitor sweeps
// expired entries every minute.
func NewMemoryRevoker() Revoker {
	return &memoryRevoker{cache: gocache.New(gocache.NoExpiration, time.Minute)}
}

func (r *memoryRevoker) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	r.cache.Set(jti, struct{}{}, ttl)
	return nil
}

func (r *memoryRevoker) IsRevoked(_ context.Context, jti string) (bool, error) {
	_, found := r.cache.Get(jti)
	return found, nil
}
