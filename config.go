package sniffkit

import (
	"github.com/gobeaver/beaver-kit/config"
)

type Config struct {
	// Source driver to read files from (local, memory, s3)
	Driver string `env:"SNIFFKIT_DRIVER,default:local"`

	// Local driver configuration
	LocalBasePath string `env:"SNIFFKIT_LOCAL_BASE_PATH,default:."`

	// S3 driver configuration
	S3Region          string `env:"SNIFFKIT_S3_REGION,default:us-east-1"`
	S3Bucket          string `env:"SNIFFKIT_S3_BUCKET"`
	S3Prefix          string `env:"SNIFFKIT_S3_PREFIX"`
	S3Endpoint        string `env:"SNIFFKIT_S3_ENDPOINT"`
	S3AccessKeyID     string `env:"SNIFFKIT_S3_ACCESS_KEY_ID"`
	S3SecretAccessKey string `env:"SNIFFKIT_S3_SECRET_ACCESS_KEY"`
	S3ForcePathStyle  bool   `env:"SNIFFKIT_S3_FORCE_PATH_STYLE,default:false"`

	// Loader limits
	MaxFileSize int64 `env:"SNIFFKIT_MAX_FILE_SIZE,default:104857600"` // 100MB default, 0 = unlimited

	// Result cache
	CacheEnabled    bool `env:"SNIFFKIT_CACHE_ENABLED,default:true"`
	CacheTTLSeconds int  `env:"SNIFFKIT_CACHE_TTL_SECONDS,default:0"` // 0 = no expiry

	// Evaluation harness
	Workers      int    `env:"SNIFFKIT_WORKERS,default:4"`
	ReportFormat string `env:"SNIFFKIT_REPORT_FORMAT,default:text"` // text, json, yaml

	// Logging
	LogLevel string `env:"SNIFFKIT_LOG_LEVEL,default:info"`
}

// GetConfig returns config loaded from environment
func GetConfig() (*Config, error) {
	cfg := &Config{}
	if err := config.Load(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// GetConfigWithPrefix returns config loaded from environment using a custom
// variable prefix instead of the default BEAVER_.
func GetConfigWithPrefix(prefix string) (*Config, error) {
	cfg := &Config{}
	if err := config.Load(cfg, config.LoadOptions{Prefix: prefix}); err != nil {
		return nil, err
	}
	return cfg, nil
}
