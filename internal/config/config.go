package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	LeadTemplateBranded = "branded"
	LeadTemplateMinimal = "minimal"
)

type Config struct {
	// Application
	AppName string
	AppEnv  string
	AppURL  string
	Port    string

	// Database (optional driver switch via ENV, default: sqlite)
	DBDriver     string
	DBConnection string

	// GitHub API
	GitHubAPIURL  string
	GitHubToken   string // Optional: raises the unauthenticated rate limit
	GitHubTimeout time.Duration

	// Email
	EmailFrom     string // sender_address
	LeadRecipient string // recipient_address
	LeadTemplate  string // template_variant: "branded" or "minimal"
	ResendAPIKey  string

	// Observability (optional)
	SentryDSN string

	// Cache (optional, Redis read-through cache for stored profiles)
	RedisURL string
	CacheTTL time.Duration

	// Storage (optional, S3-compatible archive of raw GitHub payloads)
	S3Region    string
	S3Bucket    string
	S3AccessKey string
	S3SecretKey string
	S3Endpoint  string // Optional: for S3-compatible services (MinIO, R2, etc.)

	// Rate limiting for /fetch-user/
	FetchRateLimit  int
	FetchRateWindow time.Duration

	// Honor X-Forwarded-For / X-Real-IP. Only set behind a reverse proxy.
	TrustProxy bool
}

func Load() *Config {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg := &Config{
		// Application
		AppName: envString("APP_NAME", "Devlens"),
		AppEnv:  envRequired("APP_ENV"), // Required: 'development' or 'production'
		AppURL:  envString("APP_URL", "http://localhost:8090"),
		Port:    envString("PORT", "8090"),

		// Database
		DBDriver:     envString("DB_DRIVER", "sqlite"),
		DBConnection: envString("DB_CONNECTION", "./data/devlens.db?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)"),

		// GitHub
		GitHubAPIURL:  envString("GITHUB_API_URL", "https://api.github.com"),
		GitHubToken:   envString("GITHUB_TOKEN", ""),
		GitHubTimeout: envDuration("GITHUB_TIMEOUT", 10*time.Second),

		// Email (RESEND_API_KEY optional in development, required in production)
		EmailFrom:     envString("EMAIL_FROM", "noreply@example.com"),
		LeadRecipient: envString("LEAD_RECIPIENT", "sales@example.com"),
		LeadTemplate:  envString("LEAD_TEMPLATE", LeadTemplateBranded),
		ResendAPIKey:  envString("RESEND_API_KEY", ""),

		// Observability
		SentryDSN: envString("SENTRY_DSN", ""),

		// Cache
		RedisURL: envString("REDIS_URL", ""),
		CacheTTL: envDuration("CACHE_TTL", 1*time.Hour),

		// Storage
		S3Region:    envString("S3_REGION", "us-east-1"),
		S3Bucket:    envString("S3_BUCKET", ""),
		S3AccessKey: envString("S3_ACCESS_KEY", ""),
		S3SecretKey: envString("S3_SECRET_KEY", ""),
		S3Endpoint:  envString("S3_ENDPOINT", ""),

		// Rate limiting
		FetchRateLimit:  envInt("FETCH_RATE_LIMIT", 30),
		FetchRateWindow: envDuration("FETCH_RATE_WINDOW", time.Minute),
		TrustProxy:      envBool("TRUST_PROXY", false),
	}

	if cfg.LeadTemplate != LeadTemplateBranded && cfg.LeadTemplate != LeadTemplateMinimal {
		slog.Warn("config invalid lead template, using default", "value", cfg.LeadTemplate, "default", LeadTemplateBranded)
		cfg.LeadTemplate = LeadTemplateBranded
	}

	// Production: validate required services
	if cfg.IsProduction() {
		validateProduction(cfg)
	}

	return cfg
}

// validateProduction ensures all required services are configured for production deployments.
// Development allows email to fall back to log mode for easier local testing.
func validateProduction(cfg *Config) {
	if cfg.ResendAPIKey == "" {
		slog.Error("production deployment requires RESEND_API_KEY",
			"hint", "set APP_ENV=development for local testing with email log mode")
		os.Exit(1)
	}
}

func envString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		value = def
	}
	return value
}

func envInt(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil || i <= 0 {
		slog.Warn("config invalid int, using default", "key", key, "value", v, "default", def)
		return def
	}
	return i
}

func envDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("config invalid duration, using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}

func envBool(key string, def bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("config invalid bool, using default", "key", key, "value", v, "default", def)
		return def
	}
	return b
}

func envRequired(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	slog.Error("config required env var missing", "key", key)
	os.Exit(1)
	return ""
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Sanitized returns a copy of the config with only public/safe fields.
// Safe to expose in ctx, templates and client-facing contexts.
func (c *Config) Sanitized() *Config {
	return &Config{
		AppName: c.AppName,
		AppEnv:  c.AppEnv,
		AppURL:  c.AppURL,
		Port:    c.Port,

		GitHubAPIURL: c.GitHubAPIURL,
		S3Endpoint:   c.S3Endpoint,
	}
}
