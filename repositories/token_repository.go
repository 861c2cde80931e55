package repositories

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenRepository stores one-time account tokens in Redis, keyed by
// purpose so an activation token can never pass as a reset token. Expiry
// is handled by the key TTL.
type TokenRepository struct {
	client *redis.Client
}

func NewTokenRepository(client *redis.Client) *TokenRepository {
	return &TokenRepository{client: client}
}

func tokenKey(purpose, token string) string {
	return fmt.Sprintf("token:%s:%s", purpose, token)
}

func (r *TokenRepository) Put(ctx context.Context, purpose, token string, userID int64, ttl time.Duration) error {
	return r.client.Set(ctx, tokenKey(purpose, token), userID, ttl).Err()
}

// Pop consumes the token, returning 0 when it is unknown or expired.
func (r *TokenRepository) Pop(ctx context.Context, purpose, token string) (int64, error) {
	val, err := r.client.GetDel(ctx, tokenKey(purpose, token)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(val, 10, 64)
}
