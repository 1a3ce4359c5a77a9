package upload

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const rateWindow = time.Minute

// Limiter throttles guest uploads per uploader and event. A nil redis
// client disables throttling.
type Limiter struct {
	redis     *redis.Client
	perMinute int
}

// NewLimiter creates an upload rate limiter
func NewLimiter(client *redis.Client, perMinute int) *Limiter {
	return &Limiter{redis: client, perMinute: perMinute}
}

// Allow reports whether the uploader may upload to the event right now.
func (l *Limiter) Allow(ctx context.Context, uploader, eventID string) error {
	if l == nil || l.redis == nil || l.perMinute <= 0 {
		return nil
	}

	key := fmt.Sprintf("upload_rate:%s:%s", uploader, eventID)
	count, err := l.redis.Incr(ctx, key).Result()
	if err != nil {
		// Throttle backend trouble must not block uploads.
		return nil
	}
	if count == 1 {
		l.redis.Expire(ctx, key, rateWindow)
	}
	if count > int64(l.perMinute) {
		return ErrRateLimited
	}
	return nil
}
