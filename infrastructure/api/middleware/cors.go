package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS allows browser clients from origins. A "*" entry allows any origin.
// principalHeader is added to the allowed request headers.
func CORS(origins []string, principalHeader string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{
			"Accept", "Content-Type", APIKeyHeader, CorrelationIDHeader,
			principalHeader, UserNameHeader, UserEmailHeader,
		},
		ExposedHeaders: []string{CorrelationIDHeader},
		MaxAge:         300,
	})
}
