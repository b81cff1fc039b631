// Package ratelimit throttles the authenticated console API per partner
// member. Limits are counted in a Store: a sliding window in memory for a
// single instance, or a fixed window in Redis when the console is scaled out.
package ratelimit

import (
	"context"
	"time"
)

// Result is the outcome of one Allow call.
type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
	// RetryAfter is the number of seconds until a denied caller may retry.
	RetryAfter int
}

// Store counts requests per key.
type Store interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (*Result, error)
}
