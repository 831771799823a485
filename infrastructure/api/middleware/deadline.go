package middleware

import (
	"context"
	"net/http"
	"time"
)

// Deadline bounds each request's context by d. It writes nothing itself:
// UnitOfWork answers an expired request with 504. A non-positive d leaves
// the request unbounded.
func Deadline(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if d <= 0 {
				next.ServeHTTP(w, r)
				return
			}
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
