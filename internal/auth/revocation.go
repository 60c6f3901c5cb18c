package auth

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

const revokedKeyPrefix = "gymrats-revoked-token||"

// Revoker keeps logged out token ids in redis until the tokens would have expired anyway.
type Revoker struct {
	redisClient *redis.Client
	now         func() time.Time
}

func NewRevoker(redisClient *redis.Client) *Revoker {
	return &Revoker{
		redisClient: redisClient,
		now:         time.Now,
	}
}

func (r *Revoker) Revoke(ctx context.Context, claims *Claims) error {
	ttl := claims.ExpiresAt.Sub(r.now())
	if ttl <= 0 {
		// already expired, nothing to remember
		return nil
	}
	return r.redisClient.Set(ctx, revokedKeyPrefix+claims.TokenID, claims.UserID, ttl).Err()
}

func (r *Revoker) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	err := r.redisClient.Get(ctx, revokedKeyPrefix+tokenID).Err()
	if err == nil {
		return true, nil
	}
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	return false, err
}
