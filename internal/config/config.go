package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	ListenPort      string        // ex: ":8085"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	APIBaseURL      string        // remote bookmark service (ex: https://api.revisitly.app)
	APITimeout      time.Duration // per-request timeout for outgoing calls
	RefreshInterval time.Duration // dashboard list refresh interval (default: 5m)
	Timezone        string        // IANA zone for wall-clock conversion, "" = process local
	ImportFile      string        // path to a bookmarks import yaml (optional, empty = import disabled)

	// Identity provider (optional; empty client ID = no provider session)
	OAuthClientID     string
	OAuthClientSecret string
	OAuthTokenURL     string
	OAuthRevokeURL    string // optional, best-effort sign-out
	OAuthRefreshToken string
	OAuthScopes       []string

	// Redis (persisted session record + dashboard snapshot)
	RedisAddr           string        // ex: "localhost:6379"
	RedisUser           string        // optional
	RedisPassword       string        // optional
	RedisDB             int           // Redis DB number
	RedisDT             time.Duration // Redis dial timeout (ex: 5s)
	RedisRT             time.Duration // Redis read timeout (ex: 3s)
	RedisWT             time.Duration // Redis write timeout (ex: 3s)
	RedisMaxWait        time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout    time.Duration // timeout for each ping attempt (ex: 5s)
	RedisPoolSize       int           // Redis connection pool size
	RedisConnectTimeout time.Duration // Total time to retry connecting (ex: 30s)
	RedisRetryInterval  time.Duration // Initial wait between retries (ex: 2s, grows exponentially)
	RedisWarnThreshold  int           // warn after this many attempts
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("REVISITLY_LISTEN_PORT", ":8085"),
		ShutdownTimeout: mustDuration("REVISITLY_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("REVISITLY_LOG_LEVEL", "info"),
		PrettyLog: mustBool("REVISITLY_PRETTY_LOG", true),

		// Remote service
		APIBaseURL:      requireEnv("REVISITLY_API_BASE_URL"),
		APITimeout:      mustDuration("REVISITLY_API_TIMEOUT", 15*time.Second),
		RefreshInterval: mustDuration("REVISITLY_REFRESH_INTERVAL", 5*time.Minute),
		Timezone:        getenv("REVISITLY_TIMEZONE", ""),
		ImportFile:      getenv("REVISITLY_IMPORT_FILE", ""), // Optional, empty = import disabled

		// Identity provider
		OAuthClientID:     getenv("REVISITLY_OAUTH_CLIENT_ID", ""),
		OAuthClientSecret: getenv("REVISITLY_OAUTH_CLIENT_SECRET", ""),
		OAuthTokenURL:     getenv("REVISITLY_OAUTH_TOKEN_URL", ""),
		OAuthRevokeURL:    getenv("REVISITLY_OAUTH_REVOKE_URL", ""),
		OAuthRefreshToken: getenv("REVISITLY_OAUTH_REFRESH_TOKEN", ""),
		OAuthScopes:       splitAndTrim(getenv("REVISITLY_OAUTH_SCOPES", "openid,email,profile")),

		// Redis settings
		RedisAddr:           requireEnv("REVISITLY_REDIS_ADDR"),
		RedisUser:           getenv("REVISITLY_REDIS_USERNAME", "default"),
		RedisPassword:       getenv("REVISITLY_REDIS_PASSWORD", ""),
		RedisDB:             getenvInt("REVISITLY_REDIS_DB", 0),
		RedisDT:             mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:             mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:             mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:        mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:    mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:       getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout: mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:  mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:  getenvInt("REDIS_WARN_THRESHOLD", 3),
	}

	// A provider session needs the full token endpoint wiring
	if cfg.OAuthRefreshToken != "" && (cfg.OAuthClientID == "" || cfg.OAuthTokenURL == "") {
		panic("❌ FATAL: REVISITLY_OAUTH_REFRESH_TOKEN requires REVISITLY_OAUTH_CLIENT_ID and REVISITLY_OAUTH_TOKEN_URL")
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		cfgCopy.RedisPassword = "***REDACTED***"
		cfgCopy.OAuthClientSecret = "***REDACTED***"
		cfgCopy.OAuthRefreshToken = "***REDACTED***"
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	return v
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
