package sniffkit

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// Global instance
var (
	defaultService *Service
	defaultOnce    sync.Once
	defaultErr     error
)

// Service ties a Source, the loader limits and a (possibly cached) Sniffer
// together.
type Service struct {
	cfg     *Config
	source  Source
	sniffer Sniffer
}

// Init initializes the global Service instance. Without an explicit config
// it is loaded from the environment.
func Init(configs ...*Config) error {
	defaultOnce.Do(func() {
		var cfg *Config
		if len(configs) > 0 {
			cfg = configs[0]
		} else {
			cfg, defaultErr = GetConfig()
			if defaultErr != nil {
				return
			}
		}

		defaultService, defaultErr = New(cfg)
	})

	return defaultErr
}

// Default returns the global Service, or nil if Init has not succeeded.
func Default() *Service {
	return defaultService
}

// New creates a Service with the given config
func New(cfg *Config) (*Service, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	src, err := CreateSource(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create driver: %w", err)
	}

	return NewWithSource(cfg, src), nil
}

// NewWithSource creates a Service around an existing Source. The config's
// Driver fields are ignored.
func NewWithSource(cfg *Config, src Source) *Service {
	return &Service{
		cfg:     cfg,
		source:  src,
		sniffer: NewSniffer(cfg),
	}
}

// NewSniffer builds the classifier described by cfg: a plain Classifier, or
// a CachingClassifier when CacheEnabled is set. With a cache TTL the cache
// runs a janitor at that interval.
func NewSniffer(cfg *Config) Sniffer {
	var sniffer Sniffer = NewClassifier()
	if !cfg.CacheEnabled {
		return sniffer
	}

	ttl := time.Duration(cfg.CacheTTLSeconds) * time.Second
	return NewCachingClassifier(sniffer, NewMemoryCacheWithJanitor(ttl), WithCacheTTL(ttl))
}

// validateConfig checks configuration validity
func validateConfig(cfg *Config) error {
	if cfg.Driver == "" {
		return errors.New("driver is required")
	}

	switch cfg.Driver {
	case "local":
		if cfg.LocalBasePath == "" {
			return errors.New("local base path is required for local driver")
		}
	case "s3":
		if cfg.S3Bucket == "" {
			return errors.New("S3 bucket is required for S3 driver")
		}
	case "memory":
	default:
		return fmt.Errorf("unknown driver: %s", cfg.Driver)
	}

	if cfg.MaxFileSize < 0 {
		return errors.New("max file size must not be negative")
	}
	if cfg.Workers < 0 {
		return errors.New("workers must not be negative")
	}
	if cfg.CacheTTLSeconds < 0 {
		return errors.New("cache TTL must not be negative")
	}

	switch cfg.ReportFormat {
	case "", "text", "json", "yaml":
	default:
		return fmt.Errorf("unknown report format: %s", cfg.ReportFormat)
	}

	return nil
}

// Config returns the service configuration.
func (s *Service) Config() *Config {
	return s.cfg
}

// Source returns the underlying Source.
func (s *Service) Source() Source {
	return s.source
}

// Sniffer returns the classifier used by the service.
func (s *Service) Sniffer() Sniffer {
	return s.sniffer
}

// Classify classifies an in-memory buffer.
func (s *Service) Classify(data []byte) Result {
	return s.sniffer.Classify(data)
}

// ClassifyFile loads path from the service's Source and classifies it.
func (s *Service) ClassifyFile(ctx context.Context, path string) (Result, error) {
	return ClassifyFile(ctx, s.sniffer, s.source, path, s.cfg.MaxFileSize)
}
