// Package config builds the gateway configuration from the process
// environment. Handlers receive it at construction time and never read the
// environment themselves.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultEnvFile       = ".env.dev"
	DefaultPort          = "8080"
	DefaultIntentURL     = "https://ai.kuroma.in/chat"
	DefaultIntentTimeout = 10 * time.Second
	DefaultGatewayURL    = "http://localhost:8080"
)

// Waitlist store drivers.
const (
	DriverSupabase = "supabase"
	DriverRedis    = "redis"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Port       string
	AppVersion string
	Env        string
	LogLevel   string

	Intent   IntentConfig
	Waitlist WaitlistConfig

	// GatewayURL is where the CLI reaches a running gateway.
	GatewayURL string
}

type IntentConfig struct {
	URL     string
	APIKey  string
	Timeout time.Duration
}

type WaitlistConfig struct {
	Driver             string
	SupabaseURL        string
	SupabaseServiceKey string
	RedisURL           string
	SQLitePath         string
}

// LookupFunc has the signature of os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// LoadEnvFile merges a dotenv file into the process environment. Variables
// already set in the environment are kept.
func LoadEnvFile(path string) error {
	if path == "" {
		path = DefaultEnvFile
	}
	return godotenv.Load(path)
}

// FromEnv reads the configuration from the process environment.
func FromEnv() (Config, error) {
	return FromLookup(os.LookupEnv)
}

// ClientFromEnv reads the keys the terminal client uses. Server settings are
// ignored, so a broken server-only key never stops the CLI.
func ClientFromEnv() Config {
	return ClientFromLookup(os.LookupEnv)
}

func ClientFromLookup(lookup LookupFunc) Config {
	get := getter(lookup)
	return Config{
		AppVersion: get("APP_VERSION", "dev"),
		LogLevel:   get("LOG_LEVEL", "info"),
		GatewayURL: strings.TrimRight(get("KUROMA_GATEWAY_URL", DefaultGatewayURL), "/"),
	}
}

func getter(lookup LookupFunc) func(key, def string) string {
	return func(key, def string) string {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		return def
	}
}

// FromLookup reads the configuration through lookup.
func FromLookup(lookup LookupFunc) (Config, error) {
	get := getter(lookup)

	cfg := Config{
		Port:       get("PORT", DefaultPort),
		AppVersion: get("APP_VERSION", "dev"),
		Env:        get("ENV", "development"),
		LogLevel:   get("LOG_LEVEL", "info"),
		GatewayURL: strings.TrimRight(get("KUROMA_GATEWAY_URL", DefaultGatewayURL), "/"),
	}

	// An explicitly empty URL is kept empty so the intent endpoint reports
	// the misconfiguration instead of silently using the default.
	cfg.Intent.URL = DefaultIntentURL
	if v, ok := lookup("KUROMA_INTENT_API_URL"); ok {
		cfg.Intent.URL = strings.TrimSpace(v)
	}
	cfg.Intent.APIKey = get("KUROMA_INTENT_API_KEY", "")

	cfg.Intent.Timeout = DefaultIntentTimeout
	if raw := get("KUROMA_INTENT_TIMEOUT", ""); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			return Config{}, fmt.Errorf("config: invalid KUROMA_INTENT_TIMEOUT %q", raw)
		}
		cfg.Intent.Timeout = d
	}

	cfg.Waitlist = WaitlistConfig{
		Driver:             strings.ToLower(get("WAITLIST_DRIVER", DriverSupabase)),
		SupabaseURL:        strings.TrimRight(get("SUPABASE_URL", get("NEXT_PUBLIC_SUPABASE_URL", "")), "/"),
		SupabaseServiceKey: get("SUPABASE_SERVICE_KEY", ""),
		RedisURL:           get("REDIS_URL", ""),
		SQLitePath:         get("SQLITE_PATH", ""),
	}
	switch cfg.Waitlist.Driver {
	case DriverSupabase, DriverRedis, DriverSQLite:
	default:
		return Config{}, fmt.Errorf("config: unknown WAITLIST_DRIVER %q", cfg.Waitlist.Driver)
	}

	return cfg, nil
}
