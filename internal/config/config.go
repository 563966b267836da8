package config // package config loads application configuration from environment variables

import (
    "log"     // log is used to report configuration errors and halt execution
    "os"      // os provides access to environment variables
    "strconv" // strconv converts strings to other types
    "strings" // strings splits comma-separated lists
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  DatabaseURL is the only persistence setting;
// everything the Postgres driver needs (host, credentials, database name,
// TLS mode) is carried inside the URL itself.
type Config struct {
    Env               string   // application environment (e.g. "dev", "prod")
    Port              string   // HTTP port to listen on
    DatabaseURL       string   // PostgreSQL connection string
    UnboundedHabitIDs []uint64 // legacy allow-list of habits exempt from the daily cap
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.
func Load() Config {
    return Config{
        Env:               must("APP_ENV"),      // environment (dev/test/prod)
        Port:              must("APP_PORT"),     // port to bind the HTTP server
        DatabaseURL:       must("DATABASE_URL"), // Postgres connection string
        UnboundedHabitIDs: ParseIDList(os.Getenv("UNBOUNDED_HABIT_IDS")),
    }
}

// ParseIDList parses a comma-separated list of habit identifiers, skipping
// blanks and anything that is not a positive integer.  An empty input
// yields an empty (non-nil) slice so callers can range over it safely.
func ParseIDList(s string) []uint64 {
    ids := make([]uint64, 0)
    for _, part := range strings.Split(s, ",") {
        part = strings.TrimSpace(part)
        if part == "" {
            continue
        }
        if n, err := strconv.ParseUint(part, 10, 64); err == nil && n > 0 {
            ids = append(ids, n)
        }
    }
    return ids
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
    v, ok := os.LookupEnv(key)
    if !ok || v == "" {
        log.Fatalf("missing required env var: %s", key)
    }
    return v
}
