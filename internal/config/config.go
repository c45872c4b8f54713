package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

type Config struct {
	Environment string `toml:"environment"`
	Host        string `toml:"host"`
	Port        int    `toml:"port"`

	// prometheus metrics
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`

	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	SentryEnabled bool   `toml:"sentry_enabled"`

	// postgres
	PostgresHost   string `toml:"postgres_host"`
	PostgresPort   string `toml:"postgres_port"`
	PostgresDBName string `toml:"postgres_db_name"`
	PostgresUser   string `toml:"postgres_user"`
	AutoMigrate    bool   `toml:"auto_migrate"`

	// redis
	RedisHost string `toml:"redis_host"`
	RedisPort string `toml:"redis_port"`

	// auth
	TokenTTL                    Duration `toml:"token_ttl"`
	LoginRateLimitAllowedPerMin int      `toml:"login_rate_limit_allowed_per_min"`
	AllowedOrigins              []string `toml:"allowed_origins"`
	// TrustProxyHeaders keys the login rate limit on X-Real-Ip / X-Forwarded-For.
	// Only enable it behind a reverse proxy that overwrites those headers.
	TrustProxyHeaders bool `toml:"trust_proxy_headers"`

	// domain
	PublicExercisesMutable bool     `toml:"public_exercises_mutable"`
	WorkoutsRequireAuth    bool     `toml:"workouts_require_auth"`
	ExerciseCacheSizeMB    int      `toml:"exercise_cache_size_mb"`
	ExerciseCacheTTL       Duration `toml:"exercise_cache_ttl"`
}

// ErrWeakJWTSecret is returned by LoadSecrets next to the otherwise complete secrets,
// so commands that never issue tokens can still use them.
var ErrWeakJWTSecret = errors.New("FITTRACK_JWT_SECRET must be set and at least 32 bytes long")

// Secrets are never stored in the TOML file, they come from the environment.
type Secrets struct {
	JWTSecret         string
	PostgresPassword  string
	RedisPassword     string
	AdminUsername     string
	AdminPasswordHash string
	SentryDSN         string
	HoneycombEnabled  bool
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	var cfg *Config
	switch strings.ToLower(env) {
	case "dev", "development":
		cfg = t.Development
	case "prod", "production":
		cfg = t.Production
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
	if cfg == nil {
		return nil, fmt.Errorf("no config section for env: %s", env)
	}
	return cfg, nil
}

// Load reads the TOML file at path and returns the section for env, with defaults applied.
func Load(env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode config file %s: %w", path, err)
	}

	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}
	if cfg.Environment == "" {
		cfg.Environment = strings.ToLower(env)
	}
	cfg.applyDefaults()

	return cfg, cfg.Validate()
}

func (c *Config) applyDefaults() {
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.PostgresUser == "" {
		c.PostgresUser = "postgres"
	}
	if c.TokenTTL.Duration == 0 {
		c.TokenTTL.Duration = 30 * time.Minute
	}
	if c.LoginRateLimitAllowedPerMin == 0 {
		c.LoginRateLimitAllowedPerMin = 10
	}
	if c.ExerciseCacheSizeMB == 0 {
		c.ExerciseCacheSizeMB = 8
	}
	if c.ExerciseCacheTTL.Duration == 0 {
		c.ExerciseCacheTTL.Duration = time.Minute
	}
}

func (c *Config) Validate() error {
	var errs []error
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid port: %d", c.Port))
	}
	if c.PostgresHost == "" || c.PostgresPort == "" || c.PostgresDBName == "" {
		errs = append(errs, errors.New("postgres host, port and db name must be set"))
	}
	if c.RedisHost == "" || c.RedisPort == "" {
		errs = append(errs, errors.New("redis host and port must be set"))
	}
	return errors.Join(errs...)
}

// LoadSecrets reads the secrets from the environment. An optional .env file
// is loaded first, variables already set in the environment win.
func LoadSecrets(dotEnvPath string) (Secrets, error) {
	if dotEnvPath != "" {
		if err := godotenv.Load(dotEnvPath); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Secrets{}, fmt.Errorf("load %s: %w", dotEnvPath, err)
		}
	}

	secrets := Secrets{
		JWTSecret:         os.Getenv("FITTRACK_JWT_SECRET"),
		PostgresPassword:  os.Getenv("FITTRACK_POSTGRES_PASSWORD"),
		RedisPassword:     os.Getenv("FITTRACK_REDIS_PASSWORD"),
		AdminUsername:     os.Getenv("FITTRACK_ADMIN_USERNAME"),
		AdminPasswordHash: os.Getenv("FITTRACK_ADMIN_PASSWORD_HASH"),
		SentryDSN:         os.Getenv("SENTRY_DSN"),
		HoneycombEnabled:  os.Getenv("HONEYCOMB_ENABLED") == "true",
	}
	if len(secrets.JWTSecret) < 32 {
		return secrets, ErrWeakJWTSecret
	}

	return secrets, nil
}

type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", text, err)
	}
	d.Duration = parsed
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}
