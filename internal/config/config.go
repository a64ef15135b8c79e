package config // package config loads application configuration from environment variables

import (
    "errors"
    "log"
    "os"
    "strconv"
    "time"
)

// Fallback secrets used when the environment does not provide any. They keep
// local development working and are rejected by Validate in production.
const (
    DefaultJWTSecret        = "enlaceiba-dev-access-secret"
    DefaultJWTRefreshSecret = "enlaceiba-dev-refresh-secret"
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.
type Config struct {
    Env              string        // application environment (development, production, test)
    Port             string        // HTTP port to listen on
    DBUser           string        // database username
    DBPass           string        // database password (optional)
    DBHost           string        // database host address
    DBPort           string        // database port number
    DBName           string        // database name
    DBMaxOpenConns   int           // pool: max open connections
    DBMaxIdleConns   int           // pool: max idle connections
    DBConnMaxLife    time.Duration // pool: connection lifetime
    JWTSecret        string        // secret used to sign access tokens
    JWTRefreshSecret string        // secret used to sign refresh tokens
    AccessTTL        time.Duration // access token lifetime
    RefreshTTL       time.Duration // refresh token lifetime
    ResetTokenTTL    time.Duration // password reset token lifetime
    BcryptCost       int           // bcrypt cost for password hashing
    RequestTimeout   time.Duration // upper bound for a single request's DB work
    TrustProxy       bool          // take the client IP from X-Forwarded-For set by a private-range proxy
}

// Load reads configuration values from environment variables and returns a
// Config.  Database coordinates are required; token settings fall back to
// development defaults.
func Load() Config {
    return Config{
        Env:              envStr("APP_ENV", "development"),
        Port:             envStr("APP_PORT", "3000"),
        DBUser:           must("DB_USER"),
        DBPass:           os.Getenv("DB_PASS"),
        DBHost:           must("DB_HOST"),
        DBPort:           envStr("DB_PORT", "3306"),
        DBName:           must("DB_NAME"),
        DBMaxOpenConns:   envInt("DB_MAX_OPEN_CONNS", 10),
        DBMaxIdleConns:   envInt("DB_MAX_IDLE_CONNS", 10),
        DBConnMaxLife:    envDur("DB_CONN_MAX_LIFETIME", 30*time.Minute),
        JWTSecret:        envStr("JWT_SECRET", DefaultJWTSecret),
        JWTRefreshSecret: envStr("JWT_REFRESH_SECRET", DefaultJWTRefreshSecret),
        AccessTTL:        envDur("JWT_EXPIRES_IN", time.Hour),
        RefreshTTL:       envDur("JWT_REFRESH_EXPIRES_IN", 7*24*time.Hour),
        ResetTokenTTL:    envDur("RESET_TOKEN_TTL", time.Hour),
        BcryptCost:       envInt("BCRYPT_COST", 10),
        RequestTimeout:   envDur("REQUEST_TIMEOUT", 5*time.Second),
        TrustProxy:       envBool("TRUST_PROXY", false),
    }
}

// IsProduction reports whether the service runs with production settings.
func (c Config) IsProduction() bool {
    return c.Env == "production" || c.Env == "prod"
}

// Validate rejects configurations that must never reach production.
func (c Config) Validate() error {
    if c.JWTSecret == "" || c.JWTRefreshSecret == "" {
        return errors.New("JWT_SECRET and JWT_REFRESH_SECRET must not be empty")
    }
    if c.AccessTTL <= 0 || c.RefreshTTL <= 0 {
        return errors.New("token lifetimes must be positive")
    }
    if c.BcryptCost < 4 || c.BcryptCost > 31 {
        return errors.New("BCRYPT_COST must be between 4 and 31")
    }
    if c.IsProduction() {
        if c.JWTSecret == DefaultJWTSecret || c.JWTRefreshSecret == DefaultJWTRefreshSecret {
            return errors.New("default JWT secrets are not allowed in production")
        }
        if c.JWTSecret == c.JWTRefreshSecret {
            return errors.New("access and refresh tokens must use different secrets in production")
        }
    } else if c.JWTSecret == DefaultJWTSecret {
        log.Println("WARNING: using the default JWT_SECRET; set a real secret before deploying")
    }
    return nil
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

func envStr(k, d string) string {
    if v := os.Getenv(k); v != "" {
        return v
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

// envDur accepts Go durations ("15m") and the shorthand day suffix used by
// older deployments ("7d").
func envDur(k string, d time.Duration) time.Duration {
    v := os.Getenv(k)
    if v == "" {
        return d
    }
    if dur, err := time.ParseDuration(v); err == nil {
        return dur
    }
    if n := len(v); n > 1 && v[n-1] == 'd' {
        if days, err := strconv.Atoi(v[:n-1]); err == nil {
            return time.Duration(days) * 24 * time.Hour
        }
    }
    return d
}
