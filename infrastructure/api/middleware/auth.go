package middleware

import (
	"crypto/subtle"
	"net/http"
)

// APIKeyHeader carries the key that unlocks mutating endpoints.
const APIKeyHeader = "X-API-KEY"

// AuthConfig holds the accepted API keys. With no keys, protection is off.
type AuthConfig struct {
	keys [][]byte
}

// NewAuthConfigWithKeys creates an AuthConfig accepting keys. Empty keys are ignored.
func NewAuthConfigWithKeys(keys []string) AuthConfig {
	cfg := AuthConfig{}
	for _, k := range keys {
		if k != "" {
			cfg.keys = append(cfg.keys, []byte(k))
		}
	}
	return cfg
}

// Enabled reports whether any key is configured.
func (c AuthConfig) Enabled() bool {
	return len(c.keys) > 0
}

// Accepts reports whether key matches one of the configured keys.
func (c AuthConfig) Accepts(key string) bool {
	given := []byte(key)
	for _, k := range c.keys {
		if subtle.ConstantTimeCompare(k, given) == 1 {
			return true
		}
	}
	return false
}

// WriteProtect requires a valid X-API-KEY on mutating requests. GET, HEAD
// and OPTIONS pass through untouched.
func WriteProtect(config AuthConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !config.Enabled() || safeMethod(r.Method) {
				next.ServeHTTP(w, r)
				return
			}
			if !config.Accepts(r.Header.Get(APIKeyHeader)) {
				WriteError(w, r, NewAPIError(http.StatusUnauthorized, "missing or invalid API key", nil))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func safeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}
