package redis

import (
	"context"
	"fmt"
	"time"
)

// RateLimiter is a fixed-window counter in Redis, shared by every bot
// instance polling the same token.
type RateLimiter struct {
	client *Client
}

func NewRateLimiter(client *Client) *RateLimiter {
	return &RateLimiter{client: client}
}

// Allow counts one hit against key and reports whether it stays within
// limit. The window starts at the first hit; the key expires with it.
func (r *RateLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	count, err := r.client.Incr(ctx, key)
	if err != nil {
		return false, err
	}
	if count == 1 {
		if err := r.client.Expire(ctx, key, window); err != nil {
			return false, err
		}
	}
	return count <= int64(limit), nil
}

// UserCommandKey buckets hits per Telegram user per command, so a user
// hammering the horoscope button cannot starve their other commands.
func UserCommandKey(userID int64, command string) string {
	return fmt.Sprintf("rate_limit:%d:%s", userID, command)
}
