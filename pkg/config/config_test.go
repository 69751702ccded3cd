package config

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ListenAddress != ":8080" {
		t.Errorf("expected :8080, got %q", cfg.ListenAddress)
	}
	if cfg.Catalog.Timeout != 5*time.Second {
		t.Errorf("expected 5s catalog timeout, got %v", cfg.Catalog.Timeout)
	}
	if cfg.Session.TTL != 30*time.Minute {
		t.Errorf("expected 30m session ttl, got %v", cfg.Session.TTL)
	}
	if cfg.Timeouts.Shutdown != 15*time.Second {
		t.Errorf("expected 15s shutdown timeout, got %v", cfg.Timeouts.Shutdown)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("CATALOG_URL", "http://catalog:8080/search")
	t.Setenv("CATALOG_TIMEOUT", "250ms")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("COUNTRY", "no")
	t.Setenv("WRITE_TIMEOUT", "1m")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Catalog.URL != "http://catalog:8080/search" || cfg.Catalog.Timeout != 250*time.Millisecond {
		t.Errorf("unexpected catalog config %+v", cfg.Catalog)
	}
	if cfg.Redis.DB != 3 {
		t.Errorf("expected redis db 3, got %d", cfg.Redis.DB)
	}
	if cfg.Country != "no" {
		t.Errorf("expected country no, got %s", cfg.Country)
	}
	if cfg.Timeouts.Write != time.Minute {
		t.Errorf("expected 1m write timeout, got %v", cfg.Timeouts.Write)
	}
}

func TestLoadRejectsBadDuration(t *testing.T) {
	t.Setenv("SESSION_TTL", "forever")
	if _, err := Load(); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestNewLoggerLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(LogConfig{Level: "warn"}, &buf)
	logger.Info().Msg("hidden")
	logger.Warn().Msg("shown")
	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "shown") {
		t.Errorf("unexpected output %q", out)
	}

	buf.Reset()
	logger = newLogger(LogConfig{Level: "nonsense"}, &buf)
	if logger.GetLevel() != zerolog.InfoLevel {
		t.Errorf("expected info fallback, got %v", logger.GetLevel())
	}
}
