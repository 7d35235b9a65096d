package config

import (
	"strings"
	"testing"
	"time"
)

func lookupFrom(values map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

func TestFromLookupAppliesDefaults(t *testing.T) {
	cfg, err := FromLookup(lookupFrom(map[string]string{
		"JWT_SECRET":     "s3cret",
		"ADMIN_PASSWORD": "admin123",
	}))
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	if cfg.StoreDriver != StoreDriverPostgres {
		t.Fatalf("expected postgres driver, got %q", cfg.StoreDriver)
	}
	if cfg.HTTPAddr != ":8001" {
		t.Fatalf("expected default addr, got %q", cfg.HTTPAddr)
	}
	if cfg.TokenTTL != 24*time.Hour {
		t.Fatalf("expected 24h ttl, got %v", cfg.TokenTTL)
	}
	if cfg.MigrationsDir != "" {
		t.Fatalf("expected embedded migrations by default, got %q", cfg.MigrationsDir)
	}
	if cfg.AdminUsername != "admin" {
		t.Fatalf("expected default admin username, got %q", cfg.AdminUsername)
	}
	if !strings.Contains(cfg.DatabaseDSN, "dbname=minibanco_db") || !strings.Contains(cfg.DatabaseDSN, "sslmode=disable") {
		t.Fatalf("unexpected dsn %q", cfg.DatabaseDSN)
	}
}

func TestFromLookupRequiresSigningKey(t *testing.T) {
	_, err := FromLookup(lookupFrom(map[string]string{"ADMIN_PASSWORD": "admin123"}))
	if err == nil {
		t.Fatal("expected error when JWT_SECRET is missing")
	}
}

func TestFromLookupRejectsUnknownDriver(t *testing.T) {
	_, err := FromLookup(lookupFrom(map[string]string{
		"JWT_SECRET":     "s3cret",
		"ADMIN_PASSWORD": "admin123",
		"STORE_DRIVER":   "mysql",
	}))
	if err == nil {
		t.Fatal("expected error for unsupported store driver")
	}
}

func TestNormalizeConnectionStringKeepsExplicitSSLMode(t *testing.T) {
	dsn := normalizeConnectionString("Host=db;Port=5433;Database=bank;Username=u;Password=p;SslMode=require")
	want := "host=db port=5433 dbname=bank user=u password=p sslmode=require"
	if dsn != want {
		t.Fatalf("expected %q, got %q", want, dsn)
	}
}

func TestNormalizeConnectionStringPassesThroughURLs(t *testing.T) {
	raw := "postgres://u:p@localhost/bank?sslmode=disable"
	if got := normalizeConnectionString(raw); got != raw {
		t.Fatalf("expected %q unchanged, got %q", raw, got)
	}
}
