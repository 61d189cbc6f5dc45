package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "3001" {
		t.Errorf("Port = %s, want 3001", cfg.Port)
	}
	if cfg.DataBackend != "csv" {
		t.Errorf("DataBackend = %s, want csv", cfg.DataBackend)
	}
	if cfg.DataDir != "./data" {
		t.Errorf("DataDir = %s, want ./data", cfg.DataDir)
	}
	if cfg.CacheTTL != 5*time.Minute {
		t.Errorf("CacheTTL = %v, want 5m", cfg.CacheTTL)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %s, want info", cfg.LogLevel)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("DATA_BACKEND", "sqlite")
	t.Setenv("SQLITE_DB_PATH", t.TempDir()+"/kpi.db")
	t.Setenv("CACHE_TTL", "30s")
	t.Setenv("CACHE_MAX_ENTRIES", "50")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("Port = %s, want 8080", cfg.Port)
	}
	if cfg.DataBackend != "sqlite" {
		t.Errorf("DataBackend = %s, want sqlite", cfg.DataBackend)
	}
	if cfg.CacheTTL != 30*time.Second {
		t.Errorf("CacheTTL = %v, want 30s", cfg.CacheTTL)
	}
	if cfg.CacheMaxEntries != 50 {
		t.Errorf("CacheMaxEntries = %d, want 50", cfg.CacheMaxEntries)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("config should validate, got %v", err)
	}
}

func TestValidateCollectsErrors(t *testing.T) {
	cfg := &Config{
		Port:            "not-a-port",
		DataBackend:     "postgres",
		LogLevel:        "loud",
		CacheTTL:        time.Millisecond,
		CacheMaxEntries: 0,
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() should fail")
	}
	msg := err.Error()
	for _, want := range []string{"invalid port", "invalid data backend", "invalid log level", "invalid cache TTL", "invalid cache max entries"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error should mention %q, got:\n%s", want, msg)
		}
	}
}

func TestValidateBackendRequirements(t *testing.T) {
	cfg := Load()
	cfg.DataBackend = "csv"
	cfg.DataDir = ""
	if err := cfg.Validate(); err == nil {
		t.Error("csv backend without data dir should fail validation")
	}

	cfg = Load()
	cfg.DataBackend = "sqlite"
	cfg.SQLiteDBPath = ""
	if err := cfg.Validate(); err == nil {
		t.Error("sqlite backend without db path should fail validation")
	}
}

func TestAddr(t *testing.T) {
	cfg := &Config{Port: "3001"}
	if got := cfg.Addr(); got != ":3001" {
		t.Errorf("Addr() = %s, want :3001", got)
	}
}

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("TEST_STR", "value")
	t.Setenv("TEST_INT", "42")
	t.Setenv("TEST_BAD_INT", "forty-two")
	t.Setenv("TEST_DUR", "1h")

	if got := getEnv("TEST_STR", "fallback"); got != "value" {
		t.Errorf("getEnv = %s, want value", got)
	}
	if got := getEnv("TEST_UNSET", "fallback"); got != "fallback" {
		t.Errorf("getEnv unset = %s, want fallback", got)
	}
	if got := getEnvInt("TEST_INT", 0); got != 42 {
		t.Errorf("getEnvInt = %d, want 42", got)
	}
	if got := getEnvInt("TEST_BAD_INT", 7); got != 7 {
		t.Errorf("getEnvInt malformed = %d, want 7", got)
	}
	if got := getEnvDuration("TEST_DUR", 0); got != time.Hour {
		t.Errorf("getEnvDuration = %v, want 1h", got)
	}
}
