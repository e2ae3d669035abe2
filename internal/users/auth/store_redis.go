// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/yomira-press/internal/platform/apperr"
	"github.com/taibuivan/yomira-press/internal/platform/constants"
)

// RedisResetTokenRepository implements [ResetTokenRepository] using Redis.
type RedisResetTokenRepository struct {
	client redis.Cmdable
}

// NewResetTokenRepository creates a new Redis-backed ResetTokenRepository.
func NewResetTokenRepository(client redis.Cmdable) *RedisResetTokenRepository {
	return &RedisResetTokenRepository{client: client}
}

// Set stores a reset token with its associated userID and TTL.
func (repository *RedisResetTokenRepository) Set(context context.Context, token string, userID string, ttl time.Duration) error {
	if err := repository.client.Set(context, resetKey(token), userID, ttl).Err(); err != nil {
		return apperr.StoreUnavailable(fmt.Errorf("redis_reset_token_set_failed: %w", err))
	}
	return nil
}

/*
Consume retrieves the userID for a token and deletes the key in one GETDEL.

Returns:
  - string: Original UserID
  - error: apperr.NotFound if absent, expired or already consumed, STORE_UNAVAILABLE otherwise
*/
func (repository *RedisResetTokenRepository) Consume(context context.Context, token string) (string, error) {
	userID, err := repository.client.GetDel(context, resetKey(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", apperr.NotFound("Reset token")
		}
		return "", apperr.StoreUnavailable(fmt.Errorf("redis_reset_token_consume_failed: %w", err))
	}
	return userID, nil
}

func resetKey(token string) string {
	return constants.RedisPrefixResetToken + token
}
