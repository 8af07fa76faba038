package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "8080" {
		t.Fatalf("port = %q", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Fatalf("env = %q", cfg.Env)
	}
	if cfg.RedisAddr != "redis:6379" {
		t.Fatalf("redis addr = %q", cfg.RedisAddr)
	}
	if cfg.NotifyTimeout != 10*time.Second {
		t.Fatalf("notify timeout = %v", cfg.NotifyTimeout)
	}
	if cfg.GeminiModelID != "gemini-2.5-flash" {
		t.Fatalf("gemini model = %q", cfg.GeminiModelID)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("REDIS_TLS", "true")
	t.Setenv("NOTIFY_TIMEOUT", "30s")
	t.Setenv("NOTIFY_RECIPIENTS", "ops@smeflow.ng, sales@smeflow.ng ,")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.smeflow.ng")

	cfg := Load()

	if cfg.Port != "9000" {
		t.Fatalf("port = %q", cfg.Port)
	}
	if !cfg.RedisTLS {
		t.Fatal("expected RedisTLS true")
	}
	if cfg.NotifyTimeout != 30*time.Second {
		t.Fatalf("notify timeout = %v", cfg.NotifyTimeout)
	}
	if len(cfg.NotifyRecipients) != 2 || cfg.NotifyRecipients[1] != "sales@smeflow.ng" {
		t.Fatalf("recipients = %v", cfg.NotifyRecipients)
	}
	if len(cfg.CORSAllowedOrigins) != 1 {
		t.Fatalf("cors origins = %v", cfg.CORSAllowedOrigins)
	}
}

func TestGetEnvAsBoolIgnoresGarbage(t *testing.T) {
	t.Setenv("REDIS_TLS", "not-a-bool")
	if Load().RedisTLS {
		t.Fatal("garbage value should fall back to default")
	}
}

func TestGetEnvAsDurationIgnoresGarbage(t *testing.T) {
	t.Setenv("NOTIFY_TIMEOUT", "soon")
	if got := Load().NotifyTimeout; got != 10*time.Second {
		t.Fatalf("notify timeout = %v, want default", got)
	}
}
