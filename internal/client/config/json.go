package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/chatfiles/chatfiles/internal/flagx"
	"github.com/chatfiles/chatfiles/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify the upload timeout either as a string
// like "60s" or as integer nanoseconds. After parsing, set values are copied
// into the runtime Config.
type JsonConfig struct {
	APIBaseURL string `json:"api_base_url"`
	WSBaseURL  string `json:"ws_base_url"`

	StorageEndpoint  string `json:"storage_endpoint"`
	StorageAccessKey string `json:"storage_access_key"`
	StorageSecretKey string `json:"storage_secret_key"`
	StorageBucket    string `json:"storage_bucket"`
	StorageRegion    string `json:"storage_region"`

	UploadTimeout timex.Duration `json:"upload_timeout"`

	DatabasePath string `json:"database_path"`
	DownloadDir  string `json:"download_dir"`
	BlobCacheDir string `json:"blob_cache_dir"`

	UserID   string `json:"user_id"`
	LogLevel string `json:"log_level"`
}

// parseJson overlays cfg with values loaded from the JSON file named by the
// -c/-config flag. No flag means no JSON layer. Only keys present with
// non-zero values override earlier layers, so a sparse file leaves the rest
// of the configuration intact.
func parseJson(cfg *Config) error {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return nil
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parsing config file %s: %w", jsonConfigFile, err)
	}

	overlay(&cfg.APIBaseURL, jc.APIBaseURL)
	overlay(&cfg.WSBaseURL, jc.WSBaseURL)
	overlay(&cfg.StorageEndpoint, jc.StorageEndpoint)
	overlay(&cfg.StorageAccessKey, jc.StorageAccessKey)
	overlay(&cfg.StorageSecretKey, jc.StorageSecretKey)
	overlay(&cfg.StorageBucket, jc.StorageBucket)
	overlay(&cfg.StorageRegion, jc.StorageRegion)
	overlay(&cfg.DatabasePath, jc.DatabasePath)
	overlay(&cfg.DownloadDir, jc.DownloadDir)
	overlay(&cfg.BlobCacheDir, jc.BlobCacheDir)
	overlay(&cfg.UserID, jc.UserID)
	overlay(&cfg.LogLevel, jc.LogLevel)

	if jc.UploadTimeout.Duration != 0 {
		cfg.UploadTimeout = time.Duration(jc.UploadTimeout.Duration)
	}

	return nil
}

func overlay(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
