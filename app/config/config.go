package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage backends.
const (
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
	StorageBadger   = "badger"
)

// Environments. Only EnvDev falls back to a built-in token secret, so it
// must be chosen explicitly.
const (
	EnvDev        = "dev"
	EnvProduction = "production"
)

const devSecret = "dev-jwt-secret"

// Config holds all runtime settings of the blog service.
type Config struct {
	Env             string
	Addr            string
	Storage         string
	SQLitePath      string
	BadgerPath      string
	DatabaseURL     string
	JWTSecret       string
	TokenTTL        time.Duration
	CORSOrigins     []string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// LoadEnv loads a .env file into the process environment if one exists.
func LoadEnv() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Failed to load .env file: %v", err)
	}
}

// Load reads the configuration from the environment.
func Load() Config {
	LoadEnv()

	env := envString("BLOG_ENV", EnvProduction)
	secret := os.Getenv("JWT_SECRET")
	if secret == "" && env == EnvDev {
		secret = devSecret
	}

	return Config{
		Env:             env,
		Addr:            envString("BLOG_ADDR", ":8080"),
		Storage:         strings.ToLower(envString("BLOG_STORAGE", StorageSQLite)),
		SQLitePath:      envString("BLOG_SQLITE_PATH", "data/blog.db"),
		BadgerPath:      envString("BLOG_BADGER_PATH", "data/badger"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		JWTSecret:       secret,
		TokenTTL:        envDuration("BLOG_TOKEN_TTL", 24*time.Hour),
		CORSOrigins:     envList("BLOG_CORS_ORIGINS", []string{"*"}),
		ReadTimeout:     envDuration("BLOG_READ_TIMEOUT", 15*time.Second),
		WriteTimeout:    envDuration("BLOG_WRITE_TIMEOUT", 15*time.Second),
		ShutdownTimeout: envDuration("BLOG_SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}

// IsDev reports whether the service runs in the development environment.
func (c Config) IsDev() bool {
	return c.Env == EnvDev
}

// Validate reports settings the service cannot run with.
func (c Config) Validate() error {
	switch c.Storage {
	case StorageSQLite, StorageBadger:
	case StoragePostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required for postgres storage")
		}
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage)
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is not set")
	}
	if c.TokenTTL <= 0 {
		return errors.New("BLOG_TOKEN_TTL must be positive")
	}
	return nil
}

func envString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		log.Printf("Ignoring invalid %s=%q, using %s", key, v, def)
	}
	return def
}

func envList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
