package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const defaultConnectionString = "Host=localhost;Port=5432;Database=minibanco_db;Username=postgres;Password=postgres;Timeout=30;CommandTimeout=30"
const defaultHTTPAddr = ":8001"
const defaultStoreDriver = StoreDriverPostgres
const defaultTokenTTL = 24 * time.Hour
const defaultAdminUsername = "admin"
const defaultAdminEmail = "admin@minibanco.com"

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

// Config is built once at startup and handed to the components that need it.
// An empty MigrationsDir selects the migrations embedded in the binary.
type Config struct {
	DatabaseDSN   string
	MigrationsDir string
	StoreDriver   string
	HTTPAddr      string
	JWTSecret     string
	TokenTTL      time.Duration
	AdminUsername string
	AdminPassword string
	AdminEmail    string
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env file: %w", err)
	}

	return FromLookup(os.LookupEnv)
}

// FromLookup builds a Config from an arbitrary key lookup.
func FromLookup(lookup func(string) (string, bool)) (Config, error) {
	get := func(key, fallback string) string {
		value, ok := lookup(key)
		value = strings.TrimSpace(value)
		if !ok || value == "" {
			return fallback
		}
		return value
	}

	driver := strings.ToLower(get("STORE_DRIVER", defaultStoreDriver))
	if driver != StoreDriverPostgres && driver != StoreDriverMemory {
		return Config{}, fmt.Errorf("STORE_DRIVER must be %q or %q", StoreDriverPostgres, StoreDriverMemory)
	}

	tokenTTL := defaultTokenTTL
	if raw := get("TOKEN_TTL", ""); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil || parsed <= 0 {
			return Config{}, fmt.Errorf("TOKEN_TTL must be a positive duration")
		}
		tokenTTL = parsed
	}

	secret := get("JWT_SECRET", "")
	if secret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}

	adminPassword := get("ADMIN_PASSWORD", "")
	if adminPassword == "" {
		return Config{}, fmt.Errorf("ADMIN_PASSWORD is required")
	}

	return Config{
		DatabaseDSN:   normalizeConnectionString(get("DATABASE_DSN", defaultConnectionString)),
		MigrationsDir: get("MIGRATIONS_DIR", ""),
		StoreDriver:   driver,
		HTTPAddr:      get("HTTP_ADDR", defaultHTTPAddr),
		JWTSecret:     secret,
		TokenTTL:      tokenTTL,
		AdminUsername: get("ADMIN_USERNAME", defaultAdminUsername),
		AdminPassword: adminPassword,
		AdminEmail:    get("ADMIN_EMAIL", defaultAdminEmail),
	}, nil
}

func normalizeConnectionString(raw string) string {
	if strings.Contains(raw, "://") {
		return raw
	}

	parts := strings.Split(raw, ";")
	out := make([]string, 0, len(parts))
	hasSSLMode := false

	for _, part := range parts {
		p := strings.TrimSpace(part)
		if p == "" {
			continue
		}

		kv := strings.SplitN(p, "=", 2)
		if len(kv) != 2 {
			continue
		}

		key := strings.ToLower(strings.TrimSpace(kv[0]))
		val := strings.TrimSpace(kv[1])

		switch key {
		case "host":
			out = append(out, "host="+val)
		case "port":
			out = append(out, "port="+val)
		case "database":
			out = append(out, "dbname="+val)
		case "username":
			out = append(out, "user="+val)
		case "password":
			out = append(out, "password="+val)
		case "timeout", "connect timeout":
			out = append(out, "connect_timeout="+val)
		case "commandtimeout", "command timeout":
			out = append(out, "statement_timeout="+val+"s")
		case "sslmode":
			hasSSLMode = true
			out = append(out, "sslmode="+val)
		default:
			out = append(out, key+"="+val)
		}
	}

	if len(out) == 0 {
		return raw
	}

	if !hasSSLMode {
		out = append(out, "sslmode=disable")
	}

	return strings.Join(out, " ")
}
