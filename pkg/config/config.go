package config

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// LocalFlag is the command-line flag bound to LOCAL_MODE.
const LocalFlag = "local"

type Config struct {
	Env       string
	Port      int
	APIPrefix string
	Local     bool

	Source   SourceConfig
	Database DatabaseConfig
	Catalog  CatalogConfig
	Snapshot SnapshotConfig
	Redis    RedisConfig
	JWT      JWTConfig
	CORS     CORSConfig
	Log      LogConfig
	Sessions SessionConfig
	Export   ExportConfig
}

// SourceConfig locates the course catalog. RemoteURL is a secret.
type SourceConfig struct {
	LocalPath    string
	RemoteURL    string
	FetchTimeout time.Duration
}

type DatabaseConfig struct {
	MaxOpenConns int
	MaxIdleConns int
}

// CatalogConfig bounds the in-process catalog memoization.
type CatalogConfig struct {
	CacheTTL        time.Duration
	CacheMaxEntries int
}

// SnapshotConfig toggles the shared Redis snapshot tier.
type SnapshotConfig struct {
	Enabled bool
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type JWTConfig struct {
	Secret string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// SessionConfig bounds the per-visitor filter state store.
type SessionConfig struct {
	TTL        time.Duration
	MaxEntries int
}

// ExportConfig tunes rendered downloads.
type ExportConfig struct {
	PDFFontPath string
}

// SecretsFingerprint hashes every secret value so cached catalogs are
// invalidated whenever the secret configuration changes.
func (c *Config) SecretsFingerprint() string {
	h := sha256.New()
	for _, secret := range []string{c.Source.RemoteURL, c.JWT.Secret, c.Redis.Password} {
		fmt.Fprintf(h, "%d:%s;", len(secret), secret)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Load reads .env and the process environment. When flags is non-nil the
// --local flag overrides LOCAL_MODE.
func Load(flags *pflag.FlagSet) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if flags != nil {
		if flag := flags.Lookup(LocalFlag); flag != nil {
			if err := v.BindPFlag("LOCAL_MODE", flag); err != nil {
				return nil, err
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !isMissingFile(err) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")
	cfg.Local = v.GetBool("LOCAL_MODE")

	cfg.Source = SourceConfig{
		LocalPath:    v.GetString("SOURCE_LOCAL_PATH"),
		RemoteURL:    strings.TrimSpace(v.GetString("DB_URL")),
		FetchTimeout: parseDuration(v.GetString("SOURCE_FETCH_TIMEOUT"), 30*time.Second),
	}

	cfg.Database = DatabaseConfig{
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	maxEntries := v.GetInt("CATALOG_CACHE_MAX_ENTRIES")
	if maxEntries <= 0 {
		maxEntries = 10
	}
	cfg.Catalog = CatalogConfig{
		CacheTTL:        parseDuration(v.GetString("CATALOG_CACHE_TTL"), time.Hour),
		CacheMaxEntries: maxEntries,
	}

	cfg.Snapshot = SnapshotConfig{Enabled: v.GetBool("ENABLE_SNAPSHOT_CACHE")}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.JWT = JWTConfig{Secret: v.GetString("JWT_SECRET")}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	maxSessions := v.GetInt("SESSION_MAX_ENTRIES")
	if maxSessions <= 0 {
		maxSessions = 1000
	}
	cfg.Sessions = SessionConfig{
		TTL:        parseDuration(v.GetString("SESSION_TTL"), 24*time.Hour),
		MaxEntries: maxSessions,
	}

	cfg.Export = ExportConfig{PDFFontPath: v.GetString("PDF_FONT_PATH")}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8501)
	v.SetDefault("API_PREFIX", "/api/v1")
	v.SetDefault("LOCAL_MODE", false)

	v.SetDefault("SOURCE_LOCAL_PATH", "course.csv")
	v.SetDefault("DB_URL", "")
	v.SetDefault("SOURCE_FETCH_TIMEOUT", "30s")
	v.SetDefault("DB_MAX_OPEN_CONNS", 4)
	v.SetDefault("DB_MAX_IDLE_CONNS", 2)

	v.SetDefault("CATALOG_CACHE_TTL", "1h")
	v.SetDefault("CATALOG_CACHE_MAX_ENTRIES", 10)
	v.SetDefault("ENABLE_SNAPSHOT_CACHE", false)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("JWT_SECRET", "dev_secret")
	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("SESSION_TTL", "24h")
	v.SetDefault("SESSION_MAX_ENTRIES", 1000)
	v.SetDefault("PDF_FONT_PATH", "")
}

// viper reports a missing explicit config file as a plain fs error.
func isMissingFile(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
