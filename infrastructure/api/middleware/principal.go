package middleware

import (
	"net/http"
	"strings"

	"github.com/axd-platform/catalog/domain/access"
	"github.com/axd-platform/catalog/internal/log"
)

// Headers that describe the caller alongside the configured id header.
const (
	UserNameHeader  = "X-User-Name"
	UserEmailHeader = "X-User-Email"
)

// Principal resolves the caller from idHeader and stores it in the request
// context. Requests without the header run as the anonymous principal.
// The header is trusted as-is.
func Principal(idHeader string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := strings.TrimSpace(r.Header.Get(idHeader))
			if id == "" {
				next.ServeHTTP(w, r)
				return
			}

			p := access.NewPrincipal(
				id,
				strings.TrimSpace(r.Header.Get(UserNameHeader)),
				strings.TrimSpace(r.Header.Get(UserEmailHeader)),
			)
			ctx := access.WithPrincipal(r.Context(), p)
			log.AddPrincipal(ctx, p.ID())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
