package config

import (
	"os"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"PORT", "ENV", "AUTH_MODE", "JWT_SECRET", "DATABASE_URL",
		"DB_MAX_CONNS", "DB_MIN_CONNS", "CORS_ORIGINS", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST",
		"FEE_SCHEDULE_URL", "FEE_SCHEDULE_TIMEOUT_MS"} {
		os.Unsetenv(key)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8000" {
		t.Errorf("expected default port 8000, got %q", cfg.Port)
	}
	if !cfg.IsDev() {
		t.Error("expected development mode by default")
	}
	if cfg.DatabaseURL != "" {
		t.Errorf("expected empty database URL, got %q", cfg.DatabaseURL)
	}
	if cfg.FeeScheduleTimeout != 5000 {
		t.Errorf("expected default fee schedule timeout 5000, got %d", cfg.FeeScheduleTimeout)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9100")
	t.Setenv("ENV", "production")
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "9100" {
		t.Errorf("expected port 9100, got %q", cfg.Port)
	}
	if !cfg.IsProduction() {
		t.Error("expected production mode")
	}
}

func TestResolvedAuthMode(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
		want string
	}{
		{"explicit wins", Config{AuthMode: "jwt", Env: "development"}, "jwt"},
		{"dev defaults to development", Config{Env: "development"}, "development"},
		{"production defaults to jwt", Config{Env: "production"}, "jwt"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.cfg.ResolvedAuthMode(); got != tc.want {
				t.Errorf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	cfg := &Config{Env: "production"}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for jwt mode without secret")
	}

	cfg.JWTSecret = "secret"
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error with secret set: %v", err)
	}

	cfg = &Config{Env: "development"}
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error in development mode: %v", err)
	}

	cfg = &Config{Env: "production", AuthMode: "bogus"}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown auth mode")
	}
}
