package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the settings shared by every service behind the auth layer.
type Config struct {
	ServiceName string

	ServerPort int

	DatabaseURL string
	LogLevel    string

	AuthHTTPURL  string
	AuthTimeout  time.Duration
	AuthRetries  int
	AuthCacheTTL time.Duration

	KafkaBrokers []string
}

func Load() Config {
	return Config{
		ServiceName: EnvDefault("SERVICE_NAME", ""),

		ServerPort: EnvIntDefault("SERVER_PORT", 8080),

		DatabaseURL: os.Getenv("DATABASE_URL"),
		LogLevel:    EnvDefault("LOG_LEVEL", "info"),

		AuthHTTPURL:  os.Getenv("AUTH_URL"),
		AuthTimeout:  EnvDurationDefault("AUTH_TIMEOUT", 3*time.Second),
		AuthRetries:  EnvIntDefault("AUTH_RETRIES", 1),
		AuthCacheTTL: EnvDurationDefault("AUTH_CACHE_TTL", 30*time.Second),

		KafkaBrokers: CSV(os.Getenv("KAFKA_BROKERS")),
	}
}

func (c Config) Addr() string {
	return ":" + strconv.Itoa(c.ServerPort)
}

func CSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func EnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func EnvIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// EnvDurationDefault accepts Go duration strings ("15m", "168h") or a bare
// number of seconds.
func EnvDurationDefault(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second
	}
	return def
}
