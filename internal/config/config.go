package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultCatalogAPIURL = "https://fakestoreapi.com"
	defaultFetchTimeout  = 10 * time.Second
	defaultAppPort       = "8080"
)

type Config struct {
	AppPort       string
	AppEnv        string
	CatalogAPIURL string
	FetchTimeout  time.Duration
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		AppPort:       os.Getenv("APP_PORT"),
		AppEnv:        os.Getenv("APP_ENV"),
		CatalogAPIURL: os.Getenv("CATALOG_API_URL"),
		FetchTimeout:  defaultFetchTimeout,
	}

	if cfg.AppPort == "" {
		cfg.AppPort = defaultAppPort
	}
	if cfg.CatalogAPIURL == "" {
		cfg.CatalogAPIURL = defaultCatalogAPIURL
	}
	if v := os.Getenv("CATALOG_FETCH_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.FetchTimeout = d
		}
	}

	return cfg
}
