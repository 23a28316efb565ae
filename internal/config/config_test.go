package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("API_KEY", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:5000", cfg.Server.Addr)
	assert.Equal(t, "index.html", cfg.Server.IndexPath)
	assert.Equal(t, "taaza_khabar.db", cfg.Database.Path)
	assert.Equal(t, "https://newsapi.org/v2/everything", cfg.News.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.News.Timeout)
	assert.Equal(t, "session", cfg.Session.CookieName)
	assert.Equal(t, time.Duration(0), cfg.Session.TTL)
	assert.Equal(t, "plain", cfg.Auth.PasswordHashing)
	assert.Equal(t, int64(60), cfg.RateLimit.NewsPerMinute)
	assert.Equal(t, 7, cfg.Backup.Keep)
	assert.Empty(t, cfg.Backup.Bucket)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("TAAZA_SERVER_ADDR", ":8081")
	t.Setenv("TAAZA_NEWS_TIMEOUT", "3s")
	t.Setenv("TAAZA_SESSION_TTL", "1h")
	t.Setenv("TAAZA_SESSION_REDIS_ADDR", "localhost:6379")
	t.Setenv("TAAZA_AUTH_PASSWORD_HASHING", "bcrypt")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8081", cfg.Server.Addr)
	assert.Equal(t, 3*time.Second, cfg.News.Timeout)
	assert.Equal(t, time.Hour, cfg.Session.TTL)
	assert.Equal(t, "localhost:6379", cfg.Session.RedisAddr)
	assert.Equal(t, "bcrypt", cfg.Auth.PasswordHashing)
}

func TestLoad_APIKeyFallbackAndPrecedence(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("API_KEY", "legacy-key")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "legacy-key", cfg.News.APIKey)

	t.Setenv("TAAZA_NEWS_APIKEY", "prefixed-key")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, "prefixed-key", cfg.News.APIKey)
}

func TestLoad_DotEnvFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("TAAZA_LOG_LEVEL=debug\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("TAAZA_LOG_LEVEL") })

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	content := "database:\n  path: data/news.db\nbackup:\n  bucket: snapshots\n  keep: 3\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o600))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "data/news.db", cfg.Database.Path)
	assert.Equal(t, "snapshots", cfg.Backup.Bucket)
	assert.Equal(t, 3, cfg.Backup.Keep)
}

func TestLoad_RejectsUnknownHashingMode(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("TAAZA_AUTH_PASSWORD_HASHING", "md5")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "md5")
}

func TestValidate_EmptySecret(t *testing.T) {
	var cfg Config
	cfg.Auth.PasswordHashing = "plain"
	cfg.News.Timeout = time.Second
	require.EqualError(t, cfg.Validate(), "session secret is required")
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir, Go 1.24+).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}
