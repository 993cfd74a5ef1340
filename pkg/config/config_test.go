package config

import (
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_URL", "")
	t.Setenv("LOCAL_MODE", "")

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, "/api/v1", cfg.APIPrefix)
	assert.Equal(t, "course.csv", cfg.Source.LocalPath)
	assert.Equal(t, time.Hour, cfg.Catalog.CacheTTL)
	assert.Equal(t, 10, cfg.Catalog.CacheMaxEntries)
	assert.Equal(t, 30*time.Second, cfg.Source.FetchTimeout)
	assert.False(t, cfg.Local)
}

func TestLoadLocalFlagOverridesEnv(t *testing.T) {
	t.Setenv("LOCAL_MODE", "false")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.BoolP(LocalFlag, "l", false, "")
	require.NoError(t, flags.Parse([]string{"-l"}))

	cfg, err := Load(flags)
	require.NoError(t, err)
	assert.True(t, cfg.Local)
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	t.Setenv("CATALOG_CACHE_TTL", "soon")
	t.Setenv("CATALOG_CACHE_MAX_ENTRIES", "-3")
	t.Setenv("ALLOWED_ORIGINS", " https://a.example , ,https://b.example")

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, time.Hour, cfg.Catalog.CacheTTL)
	assert.Equal(t, 10, cfg.Catalog.CacheMaxEntries)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
}

func TestSecretsFingerprintTracksRemoteURL(t *testing.T) {
	a := &Config{Source: SourceConfig{RemoteURL: "https://example.com/a.csv"}}
	b := &Config{Source: SourceConfig{RemoteURL: "https://example.com/b.csv"}}
	assert.NotEqual(t, a.SecretsFingerprint(), b.SecretsFingerprint())
	assert.Equal(t, a.SecretsFingerprint(), (&Config{Source: a.Source}).SecretsFingerprint())
}

func TestSecretsFingerprintCoversEverySecret(t *testing.T) {
	base := Config{Source: SourceConfig{RemoteURL: "https://example.com/a.csv"}, JWT: JWTConfig{Secret: "s"}, Redis: RedisConfig{Password: "p"}}

	rotatedJWT := base
	rotatedJWT.JWT.Secret = "rotated"
	rotatedRedis := base
	rotatedRedis.Redis.Password = "rotated"
	shifted := base
	shifted.Source.RemoteURL = "https://example.com/a.csvs"
	shifted.JWT.Secret = ""

	fingerprint := base.SecretsFingerprint()
	assert.NotEqual(t, fingerprint, rotatedJWT.SecretsFingerprint())
	assert.NotEqual(t, fingerprint, rotatedRedis.SecretsFingerprint())
	assert.NotEqual(t, fingerprint, shifted.SecretsFingerprint())
	assert.Equal(t, fingerprint, base.SecretsFingerprint())
}
