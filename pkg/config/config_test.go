package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

const minimalConfig = `
environment: test
market:
  base_url: http://localhost:9999/prices
  currencies: [USD, EUR]
  index_codes:
    USD: FX_USDKRW
    EUR: FX_EURKRW
`

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Market.LookbackDays != 30 {
		t.Fatalf("expected default lookback 30, got %d", cfg.Market.LookbackDays)
	}
	if cfg.Market.PageDelay.Std() != 300*time.Millisecond {
		t.Fatalf("expected default page delay 300ms, got %s", cfg.Market.PageDelay.Std())
	}
	if cfg.Cache.Backend != "memory" {
		t.Fatalf("expected default memory backend, got %s", cfg.Cache.Backend)
	}
	if cfg.Cache.TTL.Std() != 10*time.Minute {
		t.Fatalf("expected default TTL 10m, got %s", cfg.Cache.TTL.Std())
	}
	if cfg.Forecast.HorizonDays != 7 {
		t.Fatalf("expected default horizon 7, got %d", cfg.Forecast.HorizonDays)
	}
	if cfg.Margin.Markup != 1.3 {
		t.Fatalf("expected default markup 1.3, got %v", cfg.Margin.Markup)
	}
}

func TestLoadParsesDurations(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig+`
cache:
  ttl: 90s
`))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Cache.TTL.Std() != 90*time.Second {
		t.Fatalf("expected TTL 90s, got %s", cfg.Cache.TTL.Std())
	}
}

func TestLoadRejectsBadDuration(t *testing.T) {
	if _, err := Load(writeConfig(t, minimalConfig+`
cache:
  ttl: soon
`)); err == nil {
		t.Fatal("expected error for unparseable duration")
	}
}

func TestValidateRejectsMissingIndexCode(t *testing.T) {
	_, err := Load(writeConfig(t, `
environment: test
market:
  base_url: http://localhost:9999/prices
  currencies: [USD, EUR]
  index_codes:
    USD: FX_USDKRW
`))
	if err == nil {
		t.Fatal("expected error for currency without index code")
	}
}

func TestValidateRejectsUnknownBackend(t *testing.T) {
	if _, err := Load(writeConfig(t, minimalConfig+`
cache:
  backend: memcached
`)); err == nil {
		t.Fatal("expected error for unsupported cache backend")
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	t.Setenv("CACHE_BACKEND", "redis")
	t.Setenv("REDIS_HOST", "cache.internal")

	cfg, err := LoadWithEnv(writeConfig(t, minimalConfig))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Cache.Backend != "redis" {
		t.Fatalf("expected env override backend redis, got %s", cfg.Cache.Backend)
	}
	if cfg.Cache.Redis.Host != "cache.internal" {
		t.Fatalf("expected env override host, got %s", cfg.Cache.Redis.Host)
	}
}
