package auth

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

const revokedTokenKeyPrefix = "fittrack-revoked-token||"

// RevocationStore keeps ids of logged-out tokens in redis until the tokens would expire anyway.
type RevocationStore struct {
	redisClient *redis.Client
	now         func() time.Time
}

func NewRevocationStore(redisClient *redis.Client) *RevocationStore {
	return &RevocationStore{
		redisClient: redisClient,
		now:         time.Now,
	}
}

func (rs *RevocationStore) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	ttl := expiresAt.Sub(rs.now())
	if ttl <= 0 {
		// already expired, nothing to remember
		return nil
	}
	return rs.redisClient.Set(ctx, revokedTokenKeyPrefix+tokenID, 1, ttl).Err()
}

func (rs *RevocationStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	cmd := rs.redisClient.Exists(ctx, revokedTokenKeyPrefix+tokenID)
	if err := cmd.Err(); err != nil {
		return false, err
	}
	return cmd.Val() > 0, nil
}
