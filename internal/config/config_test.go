package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "SERVER_HOST", "GEMINI_MODEL", "GEMINI_TIMEOUT", "LOG_LEVEL", "AUDIT_ENABLED", "DB_PATH", "RATE_LIMIT_RPS", "MAX_UPLOAD_BYTES"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 8000 {
		t.Errorf("expected port 8000, got %d", cfg.Server.Port)
	}
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("expected host 0.0.0.0, got %s", cfg.Server.Host)
	}
	if cfg.Gemini.Model != "gemini-2.0-flash-thinking-exp-1219" {
		t.Errorf("unexpected model %s", cfg.Gemini.Model)
	}
	if cfg.Gemini.Timeout != 30*time.Second {
		t.Errorf("expected 30s timeout, got %v", cfg.Gemini.Timeout)
	}
	if !cfg.Audit.Enabled {
		t.Error("expected auditing enabled by default")
	}
	if cfg.Server.MaxUploadBytes != 20<<20 {
		t.Errorf("expected 20MiB upload cap, got %d", cfg.Server.MaxUploadBytes)
	}
}

func TestLoad_PortOverride(t *testing.T) {
	t.Setenv("PORT", "9090")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Server.Port)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"port out of range", "PORT", "70000"},
		{"bad log level", "LOG_LEVEL", "verbose"},
		{"short timeout", "GEMINI_TIMEOUT", "10ms"},
		{"zero rate limit", "RATE_LIMIT_RPS", "0"},
		{"zero workers", "WORKER_COUNT", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			if _, err := Load(); err == nil {
				t.Errorf("expected error for %s=%s", tt.key, tt.val)
			}
		})
	}
}

func TestLoad_AuditDisabledSkipsWorkerChecks(t *testing.T) {
	t.Setenv("AUDIT_ENABLED", "false")
	t.Setenv("WORKER_COUNT", "0")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Audit.Enabled {
		t.Error("expected auditing disabled")
	}
}

func TestLoad_UnparseableFallsBack(t *testing.T) {
	t.Setenv("PORT", "eighty")
	t.Setenv("GEMINI_TIMEOUT", "soon")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 8000 {
		t.Errorf("expected fallback port, got %d", cfg.Server.Port)
	}
	if cfg.Gemini.Timeout != 30*time.Second {
		t.Errorf("expected fallback timeout, got %v", cfg.Gemini.Timeout)
	}
}
