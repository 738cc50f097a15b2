package config

import (
	"testing"
	"time"
)

func lookupFrom(env map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestFromLookup_Defaults(t *testing.T) {
	cfg, err := FromLookup(lookupFrom(nil))
	if err != nil {
		t.Fatalf("FromLookup: %v", err)
	}

	if cfg.Port != DefaultPort {
		t.Fatalf("expected port %s, got %s", DefaultPort, cfg.Port)
	}
	if cfg.Intent.URL != DefaultIntentURL {
		t.Fatalf("expected default intent URL, got %q", cfg.Intent.URL)
	}
	if cfg.Intent.APIKey != "" {
		t.Fatalf("expected no API key, got %q", cfg.Intent.APIKey)
	}
	if cfg.Intent.Timeout != DefaultIntentTimeout {
		t.Fatalf("expected timeout %v, got %v", DefaultIntentTimeout, cfg.Intent.Timeout)
	}
	if cfg.Waitlist.Driver != DriverSupabase {
		t.Fatalf("expected supabase driver, got %q", cfg.Waitlist.Driver)
	}
	if cfg.GatewayURL != DefaultGatewayURL {
		t.Fatalf("expected gateway %s, got %s", DefaultGatewayURL, cfg.GatewayURL)
	}
}

func TestFromLookup(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr bool
		check   func(t *testing.T, cfg Config)
	}{
		{
			name: "explicit empty intent URL stays empty",
			env:  map[string]string{"KUROMA_INTENT_API_URL": ""},
			check: func(t *testing.T, cfg Config) {
				if cfg.Intent.URL != "" {
					t.Fatalf("expected empty intent URL, got %q", cfg.Intent.URL)
				}
			},
		},
		{
			name: "intent settings",
			env: map[string]string{
				"KUROMA_INTENT_API_URL": " http://intent.local/chat ",
				"KUROMA_INTENT_API_KEY": "secret",
				"KUROMA_INTENT_TIMEOUT": "3s",
			},
			check: func(t *testing.T, cfg Config) {
				if cfg.Intent.URL != "http://intent.local/chat" {
					t.Fatalf("unexpected URL %q", cfg.Intent.URL)
				}
				if cfg.Intent.APIKey != "secret" {
					t.Fatalf("unexpected key %q", cfg.Intent.APIKey)
				}
				if cfg.Intent.Timeout != 3*time.Second {
					t.Fatalf("unexpected timeout %v", cfg.Intent.Timeout)
				}
			},
		},
		{
			name: "supabase public URL alias",
			env: map[string]string{
				"NEXT_PUBLIC_SUPABASE_URL": "https://proj.supabase.co/",
				"SUPABASE_SERVICE_KEY":     "svc",
			},
			check: func(t *testing.T, cfg Config) {
				if cfg.Waitlist.SupabaseURL != "https://proj.supabase.co" {
					t.Fatalf("unexpected supabase URL %q", cfg.Waitlist.SupabaseURL)
				}
				if cfg.Waitlist.SupabaseServiceKey != "svc" {
					t.Fatalf("unexpected service key %q", cfg.Waitlist.SupabaseServiceKey)
				}
			},
		},
		{
			name: "redis driver",
			env:  map[string]string{"WAITLIST_DRIVER": "Redis", "REDIS_URL": "redis://localhost:6379/1"},
			check: func(t *testing.T, cfg Config) {
				if cfg.Waitlist.Driver != DriverRedis || cfg.Waitlist.RedisURL == "" {
					t.Fatalf("unexpected waitlist config %+v", cfg.Waitlist)
				}
			},
		},
		{
			name:    "bad timeout",
			env:     map[string]string{"KUROMA_INTENT_TIMEOUT": "soon"},
			wantErr: true,
		},
		{
			name:    "negative timeout",
			env:     map[string]string{"KUROMA_INTENT_TIMEOUT": "-1s"},
			wantErr: true,
		},
		{
			name:    "unknown driver",
			env:     map[string]string{"WAITLIST_DRIVER": "mongo"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := FromLookup(lookupFrom(tt.env))
			if (err != nil) != tt.wantErr {
				t.Fatalf("expected err=%v, got %v", tt.wantErr, err)
			}
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}

func TestClientFromLookup(t *testing.T) {
	tests := []struct {
		name        string
		env         map[string]string
		wantGateway string
		wantLevel   string
	}{
		{name: "defaults", wantGateway: DefaultGatewayURL, wantLevel: "info"},
		{
			name:        "gateway and level",
			env:         map[string]string{"KUROMA_GATEWAY_URL": "https://kuroma.in/", "LOG_LEVEL": "debug"},
			wantGateway: "https://kuroma.in",
			wantLevel:   "debug",
		},
		{
			name: "server-only keys are ignored",
			env: map[string]string{
				"WAITLIST_DRIVER":       "mongo",
				"KUROMA_INTENT_TIMEOUT": "soon",
			},
			wantGateway: DefaultGatewayURL,
			wantLevel:   "info",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := ClientFromLookup(lookupFrom(tt.env))
			if cfg.GatewayURL != tt.wantGateway {
				t.Fatalf("expected gateway %q, got %q", tt.wantGateway, cfg.GatewayURL)
			}
			if cfg.LogLevel != tt.wantLevel {
				t.Fatalf("expected level %q, got %q", tt.wantLevel, cfg.LogLevel)
			}
		})
	}
}
