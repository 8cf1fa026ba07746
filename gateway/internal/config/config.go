package config

import "github.com/Skotchmaster/job_portal/pkg/config"

type Config struct {
	ListenAddr string
	LogLevel   string

	AuthURL    string
	CompanyURL string
	JobURL     string
	RatingURL  string
}

func Load() *Config {
	cfg := &Config{
		ListenAddr: config.EnvDefault("GATEWAY_ADDR", ":8080"),
		LogLevel:   config.EnvDefault("LOG_LEVEL", "info"),
		AuthURL:    config.EnvDefault("AUTH_URL", ""),
		CompanyURL: config.EnvDefault("COMPANY_URL", ""),
		JobURL:     config.EnvDefault("JOB_URL", ""),
		RatingURL:  config.EnvDefault("RATING_URL", ""),
	}

	config.MustNonEmpty(cfg.AuthURL, "AUTH_URL")
	config.MustNonEmpty(cfg.CompanyURL, "COMPANY_URL")
	config.MustNonEmpty(cfg.JobURL, "JOB_URL")
	config.MustNonEmpty(cfg.RatingURL, "RATING_URL")

	return cfg
}
