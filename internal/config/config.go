// Package config loads application configuration from a layered set of
// sources: defaults in code, an optional YAML file, then environment
// variables with the highest priority.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Environment is the deployment environment the server runs in.
type Environment string

const (
	Development Environment = "development"
	Staging     Environment = "staging"
	Production  Environment = "production"
)

// Config holds every runtime setting for the API server.
type Config struct {
	Environment Environment `yaml:"environment" validate:"required,oneof=development staging production"`

	Server   ServerConfig   `yaml:"server"`
	Supabase SupabaseConfig `yaml:"supabase"`
	Redis    RedisConfig    `yaml:"redis"`
	Auth     AuthConfig     `yaml:"auth"`
	Tracing  TracingConfig  `yaml:"tracing"`
	Features Features       `yaml:"features"`

	// LoadedFrom records which sources contributed, for startup logging.
	LoadedFrom []string `yaml:"-"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Port            int           `yaml:"port" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	RequestTimeout  time.Duration `yaml:"request_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	AllowedOrigins  []string      `yaml:"allowed_origins"`
}

// SupabaseConfig configures the hosted Postgres and auth backend.
type SupabaseConfig struct {
	URL        string `yaml:"url" validate:"required,url"`
	ServiceKey string `yaml:"service_key" validate:"required"`
}

// RedisConfig configures the trending-topics cache.
type RedisConfig struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	TrendTTL time.Duration `yaml:"trend_ttl"`
}

// AuthConfig configures local JWT verification of Supabase access tokens.
type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret" validate:"required,min=16"`
	Issuer    string `yaml:"issuer"`
	Audience  string `yaml:"audience"`
}

// TracingConfig configures the OTLP trace exporter.
type TracingConfig struct {
	Enabled     bool    `yaml:"enabled"`
	Endpoint    string  `yaml:"endpoint"`
	ServiceName string  `yaml:"service_name"`
	SampleRate  float64 `yaml:"sample_rate"`
}

// Features contains feature flags for the application.
type Features struct {
	EnableTrendCache    bool `yaml:"enable_trend_cache"`
	EnableDemoFallback  bool `yaml:"enable_demo_fallback"`
	EnableMetrics       bool `yaml:"enable_metrics"`
	EnableAnalysisAudit bool `yaml:"enable_analysis_audit"`
}

// Load builds the configuration from defaults, an optional YAML file named
// by CONFIG_FILE, and environment variables, then validates it.
func Load() (*Config, error) {
	cfg := defaultConfig()
	cfg.LoadedFrom = append(cfg.LoadedFrom, "defaults")

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
		cfg.LoadedFrom = append(cfg.LoadedFrom, path)
	}

	cfg.applyEnvironment()
	cfg.LoadedFrom = append(cfg.LoadedFrom, "environment")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		Environment: Development,
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    30 * time.Second,
			RequestTimeout:  30 * time.Second,
			ShutdownTimeout: 15 * time.Second,
			AllowedOrigins:  []string{"http://localhost:3000"},
		},
		Redis: RedisConfig{
			Addr:     "localhost:6379",
			TrendTTL: 5 * time.Minute,
		},
		Tracing: TracingConfig{
			ServiceName: "medlink-api",
			SampleRate:  0.1,
		},
		Features: Features{
			EnableTrendCache:    true,
			EnableDemoFallback:  true,
			EnableMetrics:       true,
			EnableAnalysisAudit: true,
		},
	}
}

// applyEnvironment overlays environment variables onto the config.
func (c *Config) applyEnvironment() {
	if v := os.Getenv("APP_ENV"); v != "" {
		c.Environment = Environment(v)
	}
	c.Server.Port = getEnvInt("PORT", c.Server.Port)
	c.Server.RequestTimeout = getEnvDuration("REQUEST_TIMEOUT", c.Server.RequestTimeout)
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		c.Server.AllowedOrigins = splitAndTrim(v)
	}

	c.Supabase.URL = getEnv("SUPABASE_URL", c.Supabase.URL)
	c.Supabase.ServiceKey = getEnv("SUPABASE_SERVICE_KEY", c.Supabase.ServiceKey)

	c.Redis.Addr = getEnv("REDIS_ADDR", c.Redis.Addr)
	c.Redis.Password = getEnv("REDIS_PASSWORD", c.Redis.Password)
	c.Redis.DB = getEnvInt("REDIS_DB", c.Redis.DB)
	c.Redis.TrendTTL = getEnvDuration("TREND_CACHE_TTL", c.Redis.TrendTTL)

	c.Auth.JWTSecret = getEnv("SUPABASE_JWT_SECRET", c.Auth.JWTSecret)
	c.Auth.Issuer = getEnv("JWT_ISSUER", c.Auth.Issuer)
	c.Auth.Audience = getEnv("JWT_AUDIENCE", c.Auth.Audience)

	c.Tracing.Enabled = getEnvBool("TRACING_ENABLED", c.Tracing.Enabled)
	c.Tracing.Endpoint = getEnv("OTLP_ENDPOINT", c.Tracing.Endpoint)
	c.Tracing.ServiceName = getEnv("SERVICE_NAME", c.Tracing.ServiceName)

	c.Features.EnableTrendCache = getEnvBool("ENABLE_TREND_CACHE", c.Features.EnableTrendCache)
	c.Features.EnableDemoFallback = getEnvBool("ENABLE_DEMO_FALLBACK", c.Features.EnableDemoFallback)
	c.Features.EnableMetrics = getEnvBool("ENABLE_METRICS", c.Features.EnableMetrics)
	c.Features.EnableAnalysisAudit = getEnvBool("ENABLE_ANALYSIS_AUDIT", c.Features.EnableAnalysisAudit)
}

// Validate checks the configuration with struct tags plus cross-field rules.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if c.Environment == Production && c.Tracing.Enabled && c.Tracing.Endpoint == "" {
		return fmt.Errorf("invalid configuration: tracing enabled in production without an OTLP endpoint")
	}
	return nil
}

// IsDevelopment reports whether the server runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == Development
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
