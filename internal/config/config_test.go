package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envVars = []string{
	"HOST", "PORT", "DB_URL", "LOG_LEVEL", "LOG_FORMAT", "API_KEYS",
	"CORS_ALLOWED_ORIGINS", "PRINCIPAL_HEADER", "MASK_FREE_TEXT", "PREVIEW_LIMIT",
	"DB_MAX_OPEN_CONNS", "DB_MAX_IDLE_CONNS", "DB_CONN_MAX_LIFETIME_SECONDS",
	"REQUEST_TIMEOUT_SECONDS",
}

func clearEnvVars(t *testing.T) {
	t.Helper()
	for _, name := range envVars {
		if v, ok := os.LookupEnv(name); ok {
			require.NoError(t, os.Unsetenv(name))
			t.Cleanup(func() { _ = os.Setenv(name, v) })
		}
	}
}

func TestLoadFromEnv_Defaults(t *testing.T) {
	clearEnvVars(t)

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, DefaultHost, cfg.Host)
	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, DefaultDBURL, cfg.DBURL)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.Equal(t, "pretty", cfg.LogFormat)
	assert.Equal(t, DefaultPrincipalHeader, cfg.PrincipalHeader)
	assert.Equal(t, DefaultPreviewLimit, cfg.PreviewLimit)
	assert.False(t, cfg.MaskFreeText)
	assert.Equal(t, DefaultMaxOpenConns, cfg.DB.MaxOpenConns)
	assert.Equal(t, DefaultMaxIdleConns, cfg.DB.MaxIdleConns)
}

func TestLoadFromEnv_Overrides(t *testing.T) {
	clearEnvVars(t)
	t.Setenv("PORT", "9000")
	t.Setenv("DB_URL", "postgres://user:secret@db:5432/catalog")
	t.Setenv("API_KEYS", "one, two ,,")
	t.Setenv("MASK_FREE_TEXT", "true")
	t.Setenv("DB_MAX_OPEN_CONNS", "25")
	t.Setenv("REQUEST_TIMEOUT_SECONDS", "5")
	t.Setenv("LOG_FORMAT", "JSON")

	env, err := LoadFromEnv()
	require.NoError(t, err)
	cfg := env.ToAppConfig()

	assert.Equal(t, 9000, cfg.Port())
	assert.Equal(t, "0.0.0.0:9000", cfg.Addr())
	assert.Equal(t, "postgres://user:secret@db:5432/catalog", cfg.DBURL())
	assert.Equal(t, []string{"one", "two"}, cfg.APIKeys())
	assert.True(t, cfg.MaskFreeText())
	assert.Equal(t, 25, cfg.Pool().MaxOpen())
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout())
	assert.Equal(t, LogFormatJSON, cfg.LogFormat())
	assert.Equal(t, "postgres://***@***", cfg.maskedDBURL())
}

func TestAppConfig_APIKeysIsCopy(t *testing.T) {
	keys := []string{"a"}
	cfg := NewAppConfigWithOptions(WithAPIKeys(keys))
	keys[0] = "mutated"

	got := cfg.APIKeys()
	got[0] = "changed"

	assert.Equal(t, []string{"a"}, cfg.APIKeys())
}

func TestAppConfig_Apply(t *testing.T) {
	base := NewAppConfig()
	updated := base.Apply(WithPreviewLimit(10), WithPrincipalHeader("X-Principal"))

	assert.Equal(t, DefaultPreviewLimit, base.PreviewLimit())
	assert.Equal(t, 10, updated.PreviewLimit())
	assert.Equal(t, "X-Principal", updated.PrincipalHeader())
}

func TestLoadConfig_DotEnv(t *testing.T) {
	clearEnvVars(t)
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("PREVIEW_LIMIT=7\nHOST=127.0.0.1\n"), 0o600))
	t.Cleanup(func() {
		_ = os.Unsetenv("PREVIEW_LIMIT")
		_ = os.Unsetenv("HOST")
	})

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.PreviewLimit())
	assert.Equal(t, "127.0.0.1", cfg.Host())
}

func TestLoadDotEnv_MissingFile(t *testing.T) {
	err := LoadDotEnv(filepath.Join(t.TempDir(), "missing.env"))
	assert.NoError(t, err)
}

func TestParseList(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{}},
		{"a", []string{"a"}},
		{" a , b ", []string{"a", "b"}},
		{",,", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseList(tt.in))
		})
	}
}
