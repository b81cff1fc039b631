// Package requesttime pins a single "now" per request so audit timestamps
// and list filters evaluated within one request agree.
package requesttime

import (
	"net/http"
	"time"

	"mediaconsole/pkg/requestcontext"
)

// Middleware captures the current time in UTC at the start of the request.
func Middleware(next http.Handler) http.Handler {
	return MiddlewareWithClock(time.Now)(next)
}

// MiddlewareWithClock is Middleware with an injectable clock.
func MiddlewareWithClock(clock func() time.Time) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := requestcontext.WithTime(r.Context(), clock().UTC())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
