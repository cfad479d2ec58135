// Package config loads application configuration from environment
// variables.
package config

import (
	"log"
	"os"
	"strconv"
)

// Config holds all runtime configuration. The JWT secret and signing
// algorithm are process-wide: loaded once at startup and never reloaded.
type Config struct {
	Env              string // application environment (dev/test/prod)
	Port             string // HTTP port to listen on
	DBUser           string // database username
	DBPass           string // database password (optional)
	DBHost           string // database host
	DBPort           string // database port
	DBName           string // database name
	JWTSecret        string // secret used to sign access tokens
	AccessTTLMin     int    // access token time-to-live in minutes
	BcryptCost       int    // bcrypt cost for password hashing
	DefaultPageLimit int    // default limit for paginated catalog reads
}

// Load reads configuration from the environment. Missing required
// variables abort startup with a fatal log message.
func Load() Config {
	return Config{
		Env:              must("APP_ENV"),
		Port:             must("APP_PORT"),
		DBUser:           must("DB_USER"),
		DBPass:           os.Getenv("DB_PASS"),
		DBHost:           must("DB_HOST"),
		DBPort:           must("DB_PORT"),
		DBName:           must("DB_NAME"),
		JWTSecret:        must("JWT_SECRET"),
		AccessTTLMin:     envInt("ACCESS_TOKEN_TTL_MIN", 30),
		BcryptCost:       envInt("BCRYPT_COST", 12),
		DefaultPageLimit: envInt("DEFAULT_PAGE_LIMIT", 20),
	}
}

// must retrieves a required environment variable or exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, v)
	}
	return n
}
