package config

import (
	"time"

	"github.com/Skotchmaster/job_portal/pkg/config"
)

type ServiceConfig struct {
	config.Config

	CompanyURL      string
	RatingURL       string
	UpstreamTimeout time.Duration

	ESURL      string
	ESUser     string
	ESPassword string
	ESIndex    string
}

func Load() ServiceConfig {
	cfg := ServiceConfig{
		Config:          config.Load(),
		CompanyURL:      config.EnvDefault("COMPANY_URL", ""),
		RatingURL:       config.EnvDefault("RATING_URL", ""),
		UpstreamTimeout: config.EnvDurationDefault("UPSTREAM_TIMEOUT", 5*time.Second),
		ESURL:           config.EnvDefault("ES_URL", ""),
		ESUser:          config.EnvDefault("ES_USER", ""),
		ESPassword:      config.EnvDefault("ES_PASSWORD", ""),
		ESIndex:         config.EnvDefault("ES_INDEX", "jobs"),
	}

	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")
	config.MustNonEmpty(cfg.AuthHTTPURL, "AUTH_URL")
	config.MustNonEmpty(cfg.CompanyURL, "COMPANY_URL")
	config.MustNonEmpty(cfg.RatingURL, "RATING_URL")

	return cfg
}
