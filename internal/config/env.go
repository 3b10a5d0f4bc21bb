package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Env struct {
	AppAddr string
	GinMode string

	UpstreamBaseURL  string
	SearchTimeout    time.Duration
	DetailTimeout    time.Duration
	UpstreamFallback bool

	SessionTTL   time.Duration
	PaymentDelay time.Duration

	MySQLDSN string

	JWTSecret         string
	AdminEmail        string
	AdminPasswordHash string

	CORSOrigins []string
}

// LoadEnv reads configuration from the environment, with a best-effort .env
// file for local development.
func LoadEnv() Env {
	_ = godotenv.Load()

	return Env{
		AppAddr: getString("APP_ADDR", ":8080"),
		GinMode: getString("GIN_MODE", ""),

		UpstreamBaseURL:  getString("UPSTREAM_BASE_URL", "https://tkt-backup.onrender.com/"),
		SearchTimeout:    getDuration("UPSTREAM_SEARCH_TIMEOUT", 10*time.Second),
		DetailTimeout:    getDuration("UPSTREAM_DETAIL_TIMEOUT", 15*time.Second),
		UpstreamFallback: getBool("UPSTREAM_FALLBACK", true),

		SessionTTL:   getDuration("SESSION_TTL", 30*time.Minute),
		PaymentDelay: getDuration("PAYMENT_DELAY", 2*time.Second),

		MySQLDSN: getString("MYSQL_DSN", ""),

		JWTSecret:         getString("JWT_SECRET", "change-me-in-production"),
		AdminEmail:        getString("ADMIN_EMAIL", ""),
		AdminPasswordHash: getString("ADMIN_PASSWORD_HASH", ""),

		CORSOrigins: getList("CORS_ALLOWED_ORIGINS", DefaultCORSOrigins()),
	}
}

// DefaultCORSOrigins is the local front-end allow-list used when
// CORS_ALLOWED_ORIGINS is not set.
func DefaultCORSOrigins() []string {
	return []string{
		"http://localhost:3000",
		"http://127.0.0.1:3000",
		"http://localhost:5173",
		"http://127.0.0.1:5173",
	}
}

func getString(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func getDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func getBool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func getList(key string, def []string) []string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	out := []string{}
	for _, item := range strings.Split(v, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
