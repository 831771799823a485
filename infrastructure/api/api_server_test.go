package api_test

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axd-platform/catalog"
	"github.com/axd-platform/catalog/infrastructure/api"
	"github.com/axd-platform/catalog/infrastructure/api/middleware"
	"github.com/axd-platform/catalog/internal/config"
)

func newTestAPIServer(t *testing.T, opts ...config.AppConfigOption) http.Handler {
	t.Helper()
	client, err := catalog.New(
		catalog.WithSQLite(filepath.Join(t.TempDir(), "test.db")),
		catalog.WithLogger(zerolog.Nop()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	return api.NewAPIServer(client, config.NewAppConfigWithOptions(opts...)).Handler()
}

func TestAPIServer_Health(t *testing.T) {
	h := newTestAPIServer(t)

	for _, path := range []string{"/health", "/healthz"} {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.JSONEq(t, `{"status":"healthy"}`, w.Body.String(), path)
		assert.NotEmpty(t, w.Header().Get(middleware.CorrelationIDHeader), path)
	}
}

func TestAPIServer_WriteProtection(t *testing.T) {
	h := newTestAPIServer(t, config.WithAPIKeys([]string{"secret"}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/assets", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/system/init-sample-data", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/system/init-sample-data", nil)
	req.Header.Set(middleware.APIKeyHeader, "secret")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/assets", nil))
	assert.Contains(t, w.Body.String(), `"total":32`)
}

func TestAPIServer_PrincipalHeaderIsConfigurable(t *testing.T) {
	h := newTestAPIServer(t, config.WithPrincipalHeader("X-Remote-User"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/notifications", nil)
	req.Header.Set("X-User-ID", "u1")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/notifications", nil)
	req.Header.Set("X-Remote-User", "u1")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Body.String(), `{"data":[]`), w.Body.String())
}
