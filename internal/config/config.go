package config // package config loads application configuration from environment variables

import (
	"log"
	"os"
	"strconv"
	"time"
)

// Config holds all runtime configuration values. Each field corresponds to an
// environment variable. Required variables are enforced by must() and missing
// values cause the program to exit with a fatal log message.
type Config struct {
	Env                    string        // application environment (e.g. "dev", "prod")
	Port                   string        // HTTP port to listen on
	MongoURI               string        // MongoDB connection string
	MongoDB                string        // MongoDB database name
	JWTSecret              string        // secret used to sign access tokens
	TokenTTL               time.Duration // access token time-to-live
	BcryptCost             int           // bcrypt cost for password hashing
	AllowFutureReleaseDate bool          // accept movies dated after today (upcoming releases)
	Log                    LogConfig     // structured logging settings
}

// LogConfig controls the slog-based application logger.
type LogConfig struct {
	Level  string // debug | info | warn | error
	Format string // json | text
}

// Load reads configuration values from environment variables and returns a
// Config. MONGO_URI and JWT_SECRET have no sensible defaults and are required;
// everything else falls back to development defaults.
func Load() Config {
	return Config{
		Env:                    envStr("APP_ENV", "dev"),
		Port:                   envStr("APP_PORT", "5000"),
		MongoURI:               must("MONGO_URI"),
		MongoDB:                envStr("MONGO_DB", "movies"),
		JWTSecret:              must("JWT_SECRET"),
		TokenTTL:               time.Duration(envInt("TOKEN_TTL_HOURS", 24)) * time.Hour,
		BcryptCost:             envInt("BCRYPT_COST", 10),
		AllowFutureReleaseDate: envBool("ALLOW_FUTURE_RELEASE_DATE", false),
		Log: LogConfig{
			Level:  envStr("LOG_LEVEL", "info"),
			Format: envStr("LOG_FORMAT", "text"),
		},
	}
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

func envStr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func envInt(k string, d int) int {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	return d
}

func envBool(k string, d bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	switch v {
	case "1", "true", "TRUE", "True", "yes", "YES", "on", "ON":
		return true
	case "0", "false", "FALSE", "False", "no", "NO", "off", "OFF":
		return false
	}
	return d
}

func envDur(k string, d time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if dur, err := time.ParseDuration(v); err == nil {
		return dur
	}
	return d
}
