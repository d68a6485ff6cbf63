package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RevocationRepository is the token denylist. Tokens are otherwise
// stateless; revoking one records its jti until the token would have
// expired anyway, so the list never grows past the live token set.
type RevocationRepository interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

type redisRevocationRepository struct {
	rdb *redis.Client
}

func NewRedisRevocationRepository(rdb *redis.Client) RevocationRepository {
	return &redisRevocationRepository{rdb: rdb}
}

func revocationKey(jti string) string {
	return "revoked_token:" + jti
}

func (r *redisRevocationRepository) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		// Already past expiry, nothing to record.
		return nil
	}
	if err := r.rdb.Set(ctx, revocationKey(jti), "1", ttl).Err(); err != nil {
		return fmt.Errorf("redisRevocationRepository.Revoke: %w", err)
	}
	return nil
}

func (r *redisRevocationRepository) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := r.rdb.Exists(ctx, revocationKey(jti)).Result()
	if err != nil {
		return false, fmt.Errorf("redisRevocationRepository.IsRevoked: %w", err)
	}
	return n > 0, nil
}
