// Package config holds runtime settings for the chatfiles client.
//
// Configuration is built exactly once at process start and handed to each
// service by injection; no component reads ambient globals. Load order is
// defaults → .env/environment → JSON file → command-line flags, with later
// sources taking precedence.
package config

import (
	"time"

	"github.com/chatfiles/chatfiles/internal/common"
)

// Config holds the client's runtime settings.
//
// The Storage* fields describe the direct object-storage endpoint (an
// S3-compatible service). All five are required; a missing one fails
// configuration load with a ConfigurationError enumerating the absent keys.
type Config struct {
	APIBaseURL string `envconfig:"API_BASE_URL"`
	WSBaseURL  string `envconfig:"WS_BASE_URL"`

	StorageEndpoint  string `envconfig:"STORAGE_ENDPOINT"`
	StorageAccessKey string `envconfig:"STORAGE_ACCESS_KEY"`
	StorageSecretKey string `envconfig:"STORAGE_SECRET_KEY"`
	StorageBucket    string `envconfig:"STORAGE_BUCKET"`
	StorageRegion    string `envconfig:"STORAGE_REGION"`

	// UploadTimeout bounds each direct object-storage PUT attempt.
	UploadTimeout time.Duration `envconfig:"UPLOAD_TIMEOUT"`

	DatabasePath string `envconfig:"DATABASE_PATH"`
	DownloadDir  string `envconfig:"DOWNLOAD_DIR"`
	BlobCacheDir string `envconfig:"BLOB_CACHE_DIR"`

	UserID   string `envconfig:"USER_ID"`
	LogLevel string `envconfig:"LOG_LEVEL"`
}

// LoadDefaults populates c with sensible defaults. Storage credentials have
// no defaults on purpose: they must be supplied explicitly.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8080"
	c.WSBaseURL = "ws://localhost:8080"
	c.UploadTimeout = 60 * time.Second
	c.DatabasePath = "chatfiles.db"
	c.DownloadDir = "downloads"
	c.BlobCacheDir = "blobcache"
	c.UserID = "me"
	c.LogLevel = "info"
}

// Validate enumerates the required object-storage keys that are still empty.
// It returns a *common.ConfigurationError naming every missing key, so a
// misconfigured process fails fast with the complete list instead of one
// key at a time.
func (c *Config) Validate() error {
	checks := []struct {
		key   string
		value string
	}{
		{"STORAGE_ENDPOINT", c.StorageEndpoint},
		{"STORAGE_ACCESS_KEY", c.StorageAccessKey},
		{"STORAGE_SECRET_KEY", c.StorageSecretKey},
		{"STORAGE_BUCKET", c.StorageBucket},
		{"STORAGE_REGION", c.StorageRegion},
	}

	var missing []string
	for _, chk := range checks {
		if chk.value == "" {
			missing = append(missing, chk.key)
		}
	}

	if len(missing) > 0 {
		return &common.ConfigurationError{Missing: missing}
	}
	return nil
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from the environment (including an optional .env file), a JSON file (if
// -c/-config points at one) and command-line flags. Later sources take
// precedence over earlier ones. The result is validated before use.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseJson(cfg); err != nil {
		return nil, err
	}
	parseFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
