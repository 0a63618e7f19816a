package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("SECRET_KEY", "unit-test-secret")

	cfg, err := LoadConfig("testdata/does-not-exist.env")
	require.NoError(t, err)

	assert.Equal(t, "unit-test-secret", cfg.Token.Secret)
	assert.Equal(t, "HS256", cfg.Token.Algorithm)
	assert.Equal(t, 30*time.Minute, cfg.Token.AccessExpiry)
	assert.Equal(t, 30*24*time.Hour, cfg.Token.RefreshExpiry)
	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, "foodtracker", cfg.ObjectStore.Bucket)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("SECRET_KEY", "s")
	t.Setenv("ACCESS_TOKEN_EXPIRE_MINUTES", "5")
	t.Setenv("REFRESH_TOKEN_EXPIRE_MINUTES", "60")
	t.Setenv("POSTGRES_HOST", "db")
	t.Setenv("POSTGRES_USER", "app")
	t.Setenv("POSTGRES_DB", "tracker")

	cfg, err := LoadConfig("testdata/does-not-exist.env")
	require.NoError(t, err)

	assert.Equal(t, 5*time.Minute, cfg.Token.AccessExpiry)
	assert.Equal(t, time.Hour, cfg.Token.RefreshExpiry)
	assert.Contains(t, cfg.Database.DSN(), "host=db")
	assert.Contains(t, cfg.Database.DSN(), "dbname=tracker")
}

func TestLoadConfig_MissingSecret(t *testing.T) {
	t.Setenv("SECRET_KEY", "")

	_, err := LoadConfig("testdata/does-not-exist.env")
	assert.ErrorIs(t, err, ErrMissingSecretKey)
}

func TestLoadConfig_BadIntFallsBack(t *testing.T) {
	t.Setenv("SECRET_KEY", "s")
	t.Setenv("ACCESS_TOKEN_EXPIRE_MINUTES", "not-a-number")

	cfg, err := LoadConfig("testdata/does-not-exist.env")
	require.NoError(t, err)
	assert.Equal(t, 30*time.Minute, cfg.Token.AccessExpiry)
}
