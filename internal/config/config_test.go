package config

import (
	"log/slog"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.AppEnv != EnvDev {
		t.Fatalf("unexpected AppEnv: %q", cfg.AppEnv)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("unexpected HTTPAddr: %q", cfg.HTTPAddr)
	}
	if cfg.Storage != StorageMemory {
		t.Fatalf("unexpected Storage: %q", cfg.Storage)
	}
	if !cfg.CacheEnabled {
		t.Fatalf("expected CacheEnabled=true by default")
	}
	if cfg.CacheTTL != 5*time.Minute {
		t.Fatalf("unexpected CacheTTL: %s", cfg.CacheTTL)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
		t.Fatalf("unexpected CORSAllowedOrigins: %v", cfg.CORSAllowedOrigins)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Fatalf("unexpected LogLevel: %v", cfg.LogLevel)
	}
}

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_StorageValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("APP_STORAGE", "redis")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_STORAGE")
	}
}

func TestLoad_PostgresRequiresDBURL(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("APP_STORAGE", StoragePostgres)
	t.Setenv("DB_URL", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when APP_STORAGE=postgres without DB_URL")
	}
}

func TestLoad_FileStorageRequiresDataDir(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("APP_STORAGE", StorageFile)
	t.Setenv("DATA_DIR", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when APP_STORAGE=file without DATA_DIR")
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_ProjectionsRequiresTokenWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("PROJECTIONS_ENABLED", "true")
	t.Setenv("PROJECTIONS_TOKEN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PROJECTIONS_ENABLED=true without PROJECTIONS_TOKEN")
	}
}

func TestLoad_ProjectionsConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("PROJECTIONS_ENABLED", "true")
	t.Setenv("PROJECTIONS_TOKEN", "token-123")
	t.Setenv("PROJECTIONS_BASE_URL", "https://feeds.example.com/v1")
	t.Setenv("PROJECTIONS_TIMEOUT", "4s")
	t.Setenv("PROJECTIONS_MAX_RETRIES", "3")
	t.Setenv("PROJECTIONS_CIRCUIT_FAILURE_COUNT", "7")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if !cfg.ProjectionsEnabled {
		t.Fatalf("expected ProjectionsEnabled=true")
	}
	if cfg.ProjectionsBaseURL != "https://feeds.example.com/v1" {
		t.Fatalf("unexpected ProjectionsBaseURL: %q", cfg.ProjectionsBaseURL)
	}
	if cfg.ProjectionsTimeout != 4*time.Second {
		t.Fatalf("unexpected ProjectionsTimeout: %s", cfg.ProjectionsTimeout)
	}
	if cfg.ProjectionsMaxRetries != 3 {
		t.Fatalf("unexpected ProjectionsMaxRetries: %d", cfg.ProjectionsMaxRetries)
	}
	if cfg.ProjectionsCircuitFailureCount != 7 {
		t.Fatalf("unexpected ProjectionsCircuitFailureCount: %d", cfg.ProjectionsCircuitFailureCount)
	}
}

func TestLoad_InvalidDurationRejected(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("CACHE_TTL", "banana")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for unparseable CACHE_TTL")
	}
}

func TestParseLogLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range cases {
		if got := parseLogLevel(in); got != want {
			t.Fatalf("parseLogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestSplitCSV(t *testing.T) {
	got := splitCSV(" https://a.example.com , ,https://b.example.com")
	if len(got) != 2 || got[0] != "https://a.example.com" || got[1] != "https://b.example.com" {
		t.Fatalf("unexpected splitCSV result: %v", got)
	}
}
