package config

import (
	"os"
	"time"

	pkgconfig "github.com/Skotchmaster/job_portal/pkg/config"
)

type Config struct {
	pkgconfig.Config

	JWTSecret  []byte
	AccessTTL  time.Duration
	RefreshTTL time.Duration

	AdminUsername string
	AdminPassword string
}

func Load() Config {
	return Config{
		Config: pkgconfig.Load(),

		JWTSecret:  []byte(os.Getenv("JWT_SECRET")),
		AccessTTL:  pkgconfig.EnvDurationDefault("JWT_ACCESS_TTL", 15*time.Minute),
		RefreshTTL: pkgconfig.EnvDurationDefault("JWT_REFRESH_TTL", 7*24*time.Hour),

		AdminUsername: os.Getenv("ADMIN_USERNAME"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
	}
}

func (c Config) MustValidate() {
	pkgconfig.MustNonEmpty(c.DatabaseURL, "DATABASE_URL")
	pkgconfig.MustNonEmptyBytes(c.JWTSecret, "JWT_SECRET")
}
