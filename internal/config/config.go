package config

import (
	"strings"
	"time"
)

// Backend kinds accepted by BOOKS_BACKEND.
const (
	BackendSupabase = "supabase"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Backend   BackendConfig   `yaml:"backend"`
	Supabase  SupabaseConfig  `yaml:"supabase"`
	Database  DatabaseConfig  `yaml:"database"`
	Session   SessionConfig   `yaml:"session"`
	Log       LogConfig       `yaml:"log"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	CORS      CORSConfig      `yaml:"cors"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr            string        `yaml:"addr"             env:"APP_ADDR"                env-default:":8080" validate:"required"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"5s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"20s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	MaxBodyBytes    int64         `yaml:"max_body_bytes"   env:"SERVER_MAX_BODY_BYTES"   env-default:"1048576" validate:"gt=0"`
	EnableHSTS      bool          `yaml:"enable_hsts"      env:"ENABLE_HSTS"             env-default:"false"`
	// Timezone decides what "today" means when the form dates are reset.
	Timezone string `yaml:"timezone" env:"TIMEZONE" env-default:"Local"`
}

// BackendConfig selects the storage behind the data client.
type BackendConfig struct {
	Kind string `yaml:"kind" env:"BOOKS_BACKEND" env-default:"supabase" validate:"oneof=supabase postgres memory"`
}

// SupabaseConfig holds the hosted table-storage settings.
type SupabaseConfig struct {
	URL       string        `yaml:"url"        env:"SUPABASE_URL"        validate:"omitempty,url"`
	AnonKey   string        `yaml:"anon_key"   env:"SUPABASE_ANON_KEY"`
	Table     string        `yaml:"table"      env:"SUPABASE_TABLE"      env-default:"books" validate:"required"`
	ReturnRow bool          `yaml:"return_row" env:"SUPABASE_RETURN_ROW" env-default:"true"`
	Timeout   time.Duration `yaml:"timeout"    env:"SUPABASE_TIMEOUT"    env-default:"15s" validate:"gte=0"`
	RPS       float64       `yaml:"rps"        env:"SUPABASE_RPS"        env-default:"0" validate:"gte=0"`
}

// DatabaseConfig holds PostgreSQL connection settings for the postgres backend.
type DatabaseConfig struct {
	DSN          string        `yaml:"dsn"           env:"DB_DSN"`
	MaxConns     int32         `yaml:"max_conns"     env:"DB_MAX_CONNS"     env-default:"10" validate:"gt=0"`
	QueryTimeout time.Duration `yaml:"query_timeout" env:"DB_QUERY_TIMEOUT" env-default:"5s" validate:"gt=0"`
}

// SessionConfig controls how long a browser's page state is kept.
type SessionConfig struct {
	TTL          time.Duration `yaml:"ttl"           env:"SESSION_TTL"           env-default:"30m" validate:"gt=0"`
	CookieName   string        `yaml:"cookie_name"   env:"SESSION_COOKIE_NAME"   env-default:"booklog_session" validate:"required"`
	CookieSecure bool          `yaml:"cookie_secure" env:"SESSION_COOKIE_SECURE" env-default:"false"`
	// Secret signs the session cookie. Empty means a random per-process key.
	Secret       string        `yaml:"secret"        env:"SESSION_SECRET"        validate:"omitempty,min=32"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json" validate:"oneof=json text"`
}

// RateLimitConfig holds per-client request limits. RPS 0 disables limiting.
type RateLimitConfig struct {
	RPS   float64 `yaml:"rps"   env:"RATE_LIMIT_RPS"   env-default:"10" validate:"gte=0"`
	Burst int     `yaml:"burst" env:"RATE_LIMIT_BURST" env-default:"20" validate:"gte=0"`
}

// CORSConfig holds CORS settings for the JSON API.
type CORSConfig struct {
	AllowedOrigins string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-default:""`
}

// Origins splits AllowedOrigins on commas, dropping blanks.
func (c CORSConfig) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// Location resolves Timezone.
func (c ServerConfig) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}
