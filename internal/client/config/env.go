package config

import (
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// parseEnv overlays cfg with values from the process environment. A .env
// file in the working directory is loaded first when present; its absence
// is not an error. Variable names match the envconfig tags on Config
// (API_BASE_URL, STORAGE_ENDPOINT, ...).
func parseEnv(cfg *Config) error {
	_ = godotenv.Load()
	return envconfig.Process("", cfg)
}
