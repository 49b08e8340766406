package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "LOG_LEVEL", "DB_PATH", "GUESS_STORE", "JWT_SECRET", "JWT_EXPIRES_DAYS",
		"COOKIE_NAME", "CLIENT_ORIGIN", "NODE_ENV", "COUNTRIES_FILE", "FORCED_FILE", "SMALL_AREA_LIMIT", "SHARE_URL"} {
		t.Setenv(k, "")
	}
	c := FromEnv()
	assert.Equal(t, "5175", c.Port)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, "./data/app.db", c.DBPath)
	assert.Equal(t, "sqlite", c.GuessStore)
	assert.Equal(t, devSecret, c.JWTSecret)
	assert.Equal(t, 14, c.JWTExpiresDays)
	assert.Equal(t, "geodle_token", c.CookieName)
	assert.False(t, c.Production)
	assert.Equal(t, 500.0, c.SmallAreaLimit)
	assert.Empty(t, c.ShareURL)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("NODE_ENV", "production")
	t.Setenv("JWT_EXPIRES_DAYS", "3")
	t.Setenv("SMALL_AREA_LIMIT", "750.5")
	t.Setenv("GUESS_STORE", "memory")
	t.Setenv("SHARE_URL", "https://example.test")

	c := FromEnv()
	assert.Equal(t, "8080", c.Port)
	assert.True(t, c.Production)
	assert.Equal(t, 3, c.JWTExpiresDays)
	assert.Equal(t, 750.5, c.SmallAreaLimit)
	assert.Equal(t, "memory", c.GuessStore)
	assert.Equal(t, "https://example.test", c.ShareURL)
}

func TestFromEnvIgnoresBadNumbers(t *testing.T) {
	t.Setenv("JWT_EXPIRES_DAYS", "two weeks")
	t.Setenv("SMALL_AREA_LIMIT", "-1")
	c := FromEnv()
	assert.Equal(t, 14, c.JWTExpiresDays)
	assert.Equal(t, 500.0, c.SmallAreaLimit)
}

func TestLoadFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "geodle.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[server]
port = "9000"
production = true

[storage]
guess_store = "memory"

[auth]
jwt_secret = "from_file"
jwt_expires_days = 30

[puzzle]
small_area_limit = 1000.0
share_url = "https://file.example"
`), 0o644))

	for _, k := range []string{"PORT", "NODE_ENV", "GUESS_STORE", "JWT_SECRET", "JWT_EXPIRES_DAYS", "SMALL_AREA_LIMIT", "SHARE_URL"} {
		t.Setenv(k, "")
	}
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("SHARE_URL", "https://env.example")

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9000", c.Port)
	assert.True(t, c.Production)
	assert.Equal(t, "memory", c.GuessStore)
	assert.Equal(t, "from_file", c.JWTSecret)
	assert.Equal(t, 30, c.JWTExpiresDays)
	assert.Equal(t, 1000.0, c.SmallAreaLimit)
	assert.Equal(t, "https://env.example", c.ShareURL, "env wins over file")
	assert.Equal(t, "info", c.LogLevel, "unset keys keep defaults")
}

func TestLoadFileErrors(t *testing.T) {
	c := Defaults()
	assert.Error(t, LoadFile(filepath.Join(t.TempDir(), "missing.toml"), &c))

	bad := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("[server\nport = 1"), 0o644))
	assert.Error(t, LoadFile(bad, &c))
	assert.Equal(t, Defaults(), c)
}
