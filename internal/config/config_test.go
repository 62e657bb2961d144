package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// clearEnv unsets every variable Load reads, for both spellings.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{"PORT", "DB_PATH", "JWT_SECRET", "TOKEN_TTL", "LOG_LEVEL", "APPLY_ATTEMPTS", "ALLOWED_ORIGINS", "DEV"} {
		for _, key := range []string{name, EnvPrefix + "_" + name} {
			t.Setenv(key, "")
			os.Unsetenv(key)
		}
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.DBPath != "./data/kontrib.db" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
	if cfg.TokenTTL != 24*time.Hour {
		t.Errorf("TokenTTL = %s, want 24h", cfg.TokenTTL)
	}
	if cfg.ApplyAttempts != 5 {
		t.Errorf("ApplyAttempts = %d, want 5", cfg.ApplyAttempts)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "*" {
		t.Errorf("AllowedOrigins = %v, want [*]", cfg.AllowedOrigins)
	}
	if cfg.Addr() != ":8080" {
		t.Errorf("Addr = %q", cfg.Addr())
	}
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("KONTRIB_PORT", "9090")
	t.Setenv("PORT", "7070")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("TOKEN_TTL", "90m")
	t.Setenv("APPLY_ATTEMPTS", "2")
	t.Setenv("ALLOWED_ORIGINS", "https://kontrib.app,http://localhost:5173")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != 9090 {
		t.Errorf("Port = %d, want the prefixed value 9090", cfg.Port)
	}
	if cfg.TokenTTL != 90*time.Minute {
		t.Errorf("TokenTTL = %s, want 1h30m", cfg.TokenTTL)
	}
	if cfg.ApplyAttempts != 2 {
		t.Errorf("ApplyAttempts = %d, want 2", cfg.ApplyAttempts)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "http://localhost:5173" {
		t.Errorf("AllowedOrigins = %v", cfg.AllowedOrigins)
	}
}

func TestLoadEnvFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("LOG_LEVEL", "warn")

	path := filepath.Join(t.TempDir(), ".env")
	content := "JWT_SECRET=from-file\nLOG_LEVEL=debug\nDB_PATH=/tmp/k.db\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write env file: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.JWTSecret != "from-file" || cfg.DBPath != "/tmp/k.db" {
		t.Errorf("env file not applied: %+v", cfg)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, the environment should win over the file", cfg.LogLevel)
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr error
	}{
		{"missing secret", map[string]string{}, ErrMissingJWTSecret},
		{"bad port", map[string]string{"JWT_SECRET": "x", "PORT": "70000"}, nil},
		{"bad attempts", map[string]string{"JWT_SECRET": "x", "APPLY_ATTEMPTS": "0"}, nil},
		{"bad level", map[string]string{"JWT_SECRET": "x", "LOG_LEVEL": "loud"}, nil},
		{"bad duration", map[string]string{"JWT_SECRET": "x", "TOKEN_TTL": "soon"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
			if err == nil {
				t.Fatal("expected an error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestDevModeSecret(t *testing.T) {
	clearEnv(t)
	t.Setenv("DEV", "true")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.JWTSecret == "" {
		t.Error("expected a development secret")
	}
}
