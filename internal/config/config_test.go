package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestLoadAppliesDefaults(t *testing.T) {
	t.Setenv("LOVEHUB_VOUCHER_SIGNING_SECRET", "voucher-secret")

	cfg, err := Load(NewViper())
	if err != nil {
		t.Fatalf("unexpected load error: %v", err)
	}
	if cfg.HTTPAddress != defaultHTTPAddress {
		t.Fatalf("unexpected address %q", cfg.HTTPAddress)
	}
	if cfg.DatabaseDriver != DriverSQLite || cfg.DatabasePath != defaultDatabasePath {
		t.Fatalf("unexpected database %q %q", cfg.DatabaseDriver, cfg.DatabasePath)
	}
	if !cfg.UsesSQLStorage() || cfg.StorageKey != "lovehub_proposals" {
		t.Fatalf("unexpected storage %q %q", cfg.StorageBackend, cfg.StorageKey)
	}
	if cfg.VoucherTTL != 2*time.Hour {
		t.Fatalf("unexpected voucher ttl %s", cfg.VoucherTTL)
	}
	if cfg.PaymentDelay != 1500*time.Millisecond || cfg.GeneratorDelay != time.Second {
		t.Fatalf("unexpected delays %s %s", cfg.PaymentDelay, cfg.GeneratorDelay)
	}
	if !reflect.DeepEqual(cfg.AllowedOrigins, []string{"*"}) {
		t.Fatalf("unexpected origins %#v", cfg.AllowedOrigins)
	}
	if cfg.AdminRoutesEnabled {
		t.Fatalf("expected admin routes to be disabled by default")
	}
}

func TestLoadReadsEnvironmentOverrides(t *testing.T) {
	t.Setenv("LOVEHUB_VOUCHER_SIGNING_SECRET", "voucher-secret")
	t.Setenv("LOVEHUB_STORAGE_BACKEND", "MEMORY")
	t.Setenv("LOVEHUB_PUBLIC_ORIGIN", "https://lovehub.example/")
	t.Setenv("LOVEHUB_PAYMENT_DELAY", "0s")
	t.Setenv("LOVEHUB_GENERATOR_DELAY", "250ms")
	t.Setenv("LOVEHUB_VOUCHER_TTL_MINUTES", "15")
	t.Setenv("LOVEHUB_CORS_ALLOWED_ORIGINS", "https://a.example/, https://b.example ,")
	t.Setenv("LOVEHUB_LOG_FORMAT", "console")
	t.Setenv("LOVEHUB_ADMIN_ROUTES_ENABLED", "true")

	cfg, err := Load(NewViper())
	if err != nil {
		t.Fatalf("unexpected load error: %v", err)
	}
	if cfg.UsesSQLStorage() {
		t.Fatalf("expected memory storage")
	}
	if cfg.PublicOrigin != "https://lovehub.example" {
		t.Fatalf("unexpected origin %q", cfg.PublicOrigin)
	}
	if cfg.PaymentDelay != 0 || cfg.GeneratorDelay != 250*time.Millisecond {
		t.Fatalf("unexpected delays %s %s", cfg.PaymentDelay, cfg.GeneratorDelay)
	}
	if cfg.VoucherTTL != 15*time.Minute {
		t.Fatalf("unexpected ttl %s", cfg.VoucherTTL)
	}
	if !reflect.DeepEqual(cfg.AllowedOrigins, []string{"https://a.example", "https://b.example"}) {
		t.Fatalf("unexpected origins %#v", cfg.AllowedOrigins)
	}
	if cfg.LogFormat != "console" {
		t.Fatalf("unexpected log format %q", cfg.LogFormat)
	}
	if !cfg.AdminRoutesEnabled {
		t.Fatalf("expected admin routes to be enabled")
	}
}

func TestLoadValidation(t *testing.T) {
	testCases := []struct {
		name     string
		env      map[string]string
		contains string
	}{
		{name: "missing secret", env: map[string]string{}, contains: "voucher.signing_secret"},
		{name: "unknown backend", env: map[string]string{"LOVEHUB_STORAGE_BACKEND": "redis"}, contains: "storage.backend"},
		{name: "unknown driver", env: map[string]string{"LOVEHUB_DATABASE_DRIVER": "mysql"}, contains: "database.driver"},
		{name: "postgres without dsn", env: map[string]string{"LOVEHUB_DATABASE_DRIVER": "postgres"}, contains: "database.dsn"},
		{name: "unknown log format", env: map[string]string{"LOVEHUB_LOG_FORMAT": "xml"}, contains: "log.format"},
		{name: "non-positive ttl", env: map[string]string{"LOVEHUB_VOUCHER_TTL_MINUTES": "0"}, contains: "voucher.ttl_minutes"},
		{name: "negative delay", env: map[string]string{"LOVEHUB_PAYMENT_DELAY": "-1s"}, contains: "payment.delay"},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			if testCase.name != "missing secret" {
				t.Setenv("LOVEHUB_VOUCHER_SIGNING_SECRET", "voucher-secret")
			}
			for key, value := range testCase.env {
				t.Setenv(key, value)
			}
			_, err := Load(NewViper())
			if err == nil || !strings.Contains(err.Error(), testCase.contains) {
				t.Fatalf("expected error mentioning %q, got %v", testCase.contains, err)
			}
		})
	}
}

func TestPostgresDriverSkipsPathRequirement(t *testing.T) {
	t.Setenv("LOVEHUB_VOUCHER_SIGNING_SECRET", "voucher-secret")
	t.Setenv("LOVEHUB_DATABASE_DRIVER", "postgres")
	t.Setenv("LOVEHUB_DATABASE_DSN", "host=localhost user=lovehub dbname=lovehub sslmode=disable")
	t.Setenv("LOVEHUB_DATABASE_PATH", " ")

	cfg, err := Load(NewViper())
	if err != nil {
		t.Fatalf("unexpected load error: %v", err)
	}
	if cfg.DatabaseDriver != DriverPostgres {
		t.Fatalf("unexpected driver %q", cfg.DatabaseDriver)
	}
}

func TestLoadDotEnvPopulatesEnvironment(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	contents := "LOVEHUB_VOUCHER_SIGNING_SECRET=from-dotenv\nLOVEHUB_STORAGE_KEY=dotenv_key\n"
	if err := os.WriteFile(envPath, []byte(contents), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("LOVEHUB_VOUCHER_SIGNING_SECRET", "")
	os.Unsetenv("LOVEHUB_VOUCHER_SIGNING_SECRET")
	t.Setenv("LOVEHUB_STORAGE_KEY", "from-process")

	if err := LoadDotEnv(filepath.Join(dir, "missing.env"), envPath); err != nil {
		t.Fatalf("unexpected dotenv error: %v", err)
	}

	cfg, err := Load(NewViper())
	if err != nil {
		t.Fatalf("unexpected load error: %v", err)
	}
	if cfg.VoucherSigningSecret != "from-dotenv" {
		t.Fatalf("expected secret from .env, got %q", cfg.VoucherSigningSecret)
	}
	if cfg.StorageKey != "from-process" {
		t.Fatalf("expected process env to win, got %q", cfg.StorageKey)
	}
}
