// Copyright (c) 2026 Lorevault. All rights reserved.

package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/lorevault/lorevault/internal/platform/constants"
)

// RedisLoginAttemptRepository implements LoginAttemptRepository using Redis.
//
// Counters live under auth:login_attempts:<email> and expire on their own,
// so a quiet account returns to a clean slate without any cleanup job.
type RedisLoginAttemptRepository struct {
	client *redis.Client
}

// NewLoginAttemptRepository creates a new Redis-backed LoginAttemptRepository.
func NewLoginAttemptRepository(client *redis.Client) *RedisLoginAttemptRepository {
	return &RedisLoginAttemptRepository{client: client}
}

/*
Count returns the number of failed attempts currently recorded for the email.

Description: A missing key counts as zero — the window has expired or no
failure was ever recorded.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - int: Current failure count
  - error: Connectivity errors
*/
func (repository *RedisLoginAttemptRepository) Count(context context.Context, email string) (int, error) {
	key := constants.RedisPrefixLoginAttempts + email

	value, err := repository.client.Get(context, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("redis_login_attempts_count_failed: %w", err)
	}

	count, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("redis_login_attempts_parse_failed: %w", err)
	}

	return count, nil
}

/*
Increment records one failed attempt for the email.

Description: The TTL window starts on the first failure and is not extended
by later ones, giving a fixed rather than sliding lockout horizon.

Parameters:
  - context: context.Context
  - email: string
  - window: time.Duration

Returns:
  - error: Execution errors
*/
func (repository *RedisLoginAttemptRepository) Increment(context context.Context, email string, window time.Duration) error {
	key := constants.RedisPrefixLoginAttempts + email

	count, err := repository.client.Incr(context, key).Result()
	if err != nil {
		return fmt.Errorf("redis_login_attempts_incr_failed: %w", err)
	}

	// First failure opens the window.
	if count == 1 {
		if err := repository.client.Expire(context, key, window).Err(); err != nil {
			return fmt.Errorf("redis_login_attempts_expire_failed: %w", err)
		}
	}

	return nil
}

/*
Reset clears the failure counter after a successful login.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - error: Deletion failures
*/
func (repository *RedisLoginAttemptRepository) Reset(context context.Context, email string) error {
	key := constants.RedisPrefixLoginAttempts + email

	if err := repository.client.Del(context, key).Err(); err != nil {
		return fmt.Errorf("redis_login_attempts_reset_failed: %w", err)
	}

	return nil
}
