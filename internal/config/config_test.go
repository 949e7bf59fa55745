package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("LNG_JWT_SECRET", "test-secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("HTTPAddr = %s", cfg.HTTPAddr)
	}
	if cfg.TokenTTL != 12*time.Hour {
		t.Fatalf("TokenTTL = %s", cfg.TokenTTL)
	}
	if cfg.DiffThreshold != 0.5 {
		t.Fatalf("DiffThreshold = %v", cfg.DiffThreshold)
	}
}

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv("LNG_JWT_SECRET", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing secret")
	}
}

func TestLoadYAMLOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	overlay := "http_addr: \":9090\"\ndiff_threshold: 0.3\ntoken_ttl: 2h\n"
	if err := os.WriteFile(path, []byte(overlay), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	t.Setenv("LNG_JWT_SECRET", "test-secret")
	t.Setenv("LNG_CONFIG", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTPAddr != ":9090" {
		t.Fatalf("HTTPAddr = %s", cfg.HTTPAddr)
	}
	if cfg.DiffThreshold != 0.3 {
		t.Fatalf("DiffThreshold = %v", cfg.DiffThreshold)
	}
	if cfg.TokenTTL != 2*time.Hour {
		t.Fatalf("TokenTTL = %s", cfg.TokenTTL)
	}
}

func TestLoadBadEnvFallsBack(t *testing.T) {
	t.Setenv("LNG_JWT_SECRET", "test-secret")
	t.Setenv("LNG_DIFF_THRESHOLD", "not-a-number")
	t.Setenv("LNG_TOKEN_TTL", "later")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DiffThreshold != 0.5 {
		t.Fatalf("DiffThreshold = %v", cfg.DiffThreshold)
	}
	if cfg.TokenTTL != 12*time.Hour {
		t.Fatalf("TokenTTL = %s", cfg.TokenTTL)
	}
}
