package store

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"mediaconsole/internal/ratelimit"
	"mediaconsole/pkg/platform/sentinel"
)

// Redis counts requests in fixed windows shared by every instance. The
// window key expires on its own, so no cleanup is needed.
type Redis struct {
	client redis.UniversalClient
	now    func() time.Time
}

func NewRedis(client redis.UniversalClient) *Redis {
	return &Redis{client: client, now: time.Now}
}

func (s *Redis) Allow(ctx context.Context, key string, limit int, window time.Duration) (*ratelimit.Result, error) {
	now := s.now()
	start := now.Truncate(window)
	resetAt := start.Add(window)
	windowKey := fmt.Sprintf("ratelimit:%s:%d", key, start.Unix())

	pipe := s.client.TxPipeline()
	incr := pipe.Incr(ctx, windowKey)
	pipe.PExpireAt(ctx, windowKey, resetAt)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("%w: rate limit counter: %v", sentinel.ErrUnavailable, err)
	}

	count := int(incr.Val())
	if count > limit {
		return &ratelimit.Result{
			Allowed:    false,
			Limit:      limit,
			ResetAt:    resetAt,
			RetryAfter: retryAfter(now, resetAt),
		}, nil
	}
	return &ratelimit.Result{
		Allowed:   true,
		Limit:     limit,
		Remaining: limit - count,
		ResetAt:   resetAt,
	}, nil
}
