package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"styleguide/internal/enrichment"
	"styleguide/internal/logging"
	"styleguide/internal/scoring"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

const APP_NAME = "styleguide" // application name used for config directory

// Transports accepted by the tool server.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

const (
	DefaultServerName  = "microsoft-style-guide"
	DefaultHTTPAddr    = ":8080"
	DefaultMaxFileSize = 5 << 20 // 5MB
	DefaultMaxDepth    = 8
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds user configuration for the style guide server and CLI.
type Config struct {
	Version       string           `yaml:"version"`
	StyleGuideURL string           `yaml:"style_guide_url"`
	Enrichment    EnrichmentConfig `yaml:"enrichment"`
	Scoring       scoring.Weights  `yaml:"scoring"`
	Server        ServerConfig     `yaml:"server"`
	Documents     DocumentsConfig  `yaml:"documents"`
}

// EnrichmentConfig controls live lookups against the online style guide.
type EnrichmentConfig struct {
	Enabled           bool          `yaml:"enabled"`
	Timeout           time.Duration `yaml:"timeout"`
	CacheTTL          time.Duration `yaml:"cache_ttl"`
	MaxLookups        int           `yaml:"max_lookups"`
	UserAgent         string        `yaml:"user_agent"`
	RequestsPerSecond float64       `yaml:"requests_per_second"`
}

// ServerConfig configures the MCP tool server.
type ServerConfig struct {
	Name        string `yaml:"name"`
	Transport   string `yaml:"transport"`
	HTTPAddr    string `yaml:"http_addr"`
	MetricsAddr string `yaml:"metrics_addr"` // empty disables the metrics endpoint
}

// DocumentsConfig bounds document discovery on disk.
type DocumentsConfig struct {
	MaxFileSize int64 `yaml:"max_file_size"`
	MaxDepth    int   `yaml:"max_depth"`
}

// ConfigPath returns the standard config file path for the current platform
func ConfigPath() (string, error) {
	configDir := filepath.Join(xdg.ConfigHome, APP_NAME)
	configPath := filepath.Join(configDir, "config.yaml")

	logging.Debug("Determined config paths", "path", configPath)
	return configPath, nil
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Version:       "1.0",
		StyleGuideURL: enrichment.DefaultBaseURL,
		Enrichment: EnrichmentConfig{
			Enabled:    true,
			Timeout:    enrichment.DefaultTimeout,
			CacheTTL:   time.Hour,
			MaxLookups: enrichment.DefaultMaxLookups,
			UserAgent:  enrichment.DefaultUserAgent,
		},
		Scoring: scoring.DefaultWeights(),
		Server: ServerConfig{
			Name:      DefaultServerName,
			Transport: TransportStdio,
			HTTPAddr:  DefaultHTTPAddr,
		},
		Documents: DocumentsConfig{
			MaxFileSize: DefaultMaxFileSize,
			MaxDepth:    DefaultMaxDepth,
		},
	}
}

// Load reads the config from path, or from the standard location when path
// is empty. A missing file at the standard location yields the defaults; an
// explicit path must exist.
func Load(path string) (*Config, error) {
	if path != "" {
		return LoadFrom(path)
	}

	configPath, exists := FindConfigFile()
	if !exists {
		logging.Debug("No config file found, using defaults", "path", configPath)
		cfg := DefaultConfig()
		return &cfg, nil
	}
	return LoadFrom(configPath)
}

// LoadFrom loads config from a specific path. Fields absent from the file
// keep their default values.
func LoadFrom(path string) (*Config, error) {
	logging.Debug("Reading config file", "path", path)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	cfg := DefaultConfig()
	dec := yaml.NewDecoder(f)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// FindConfigFile returns the path to an existing config file, and whether it exists.
func FindConfigFile() (string, bool) {
	primary, err := ConfigPath()
	if err != nil {
		logging.Error("Failed to get config path", "error", err)
		return "", false
	}

	if _, err := os.Stat(primary); err == nil {
		logging.Debug("Config found at primary path", "path", primary)
		return primary, true
	}

	// Return primary path for new config
	return primary, false
}

// Validate reports the first invalid field.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.StyleGuideURL) == "":
		return fmt.Errorf("%w: style_guide_url is empty", ErrInvalidConfig)
	case c.Enrichment.Timeout < 0:
		return fmt.Errorf("%w: enrichment.timeout must not be negative", ErrInvalidConfig)
	case c.Enrichment.CacheTTL < 0:
		return fmt.Errorf("%w: enrichment.cache_ttl must not be negative", ErrInvalidConfig)
	case c.Enrichment.MaxLookups < 0:
		return fmt.Errorf("%w: enrichment.max_lookups must not be negative", ErrInvalidConfig)
	case c.Enrichment.RequestsPerSecond < 0:
		return fmt.Errorf("%w: enrichment.requests_per_second must not be negative", ErrInvalidConfig)
	case c.Server.Transport != TransportStdio && c.Server.Transport != TransportHTTP:
		return fmt.Errorf("%w: server.transport must be %q or %q, got %q", ErrInvalidConfig, TransportStdio, TransportHTTP, c.Server.Transport)
	case c.Documents.MaxFileSize <= 0:
		return fmt.Errorf("%w: documents.max_file_size must be positive", ErrInvalidConfig)
	case c.Documents.MaxDepth < 0:
		return fmt.Errorf("%w: documents.max_depth must not be negative", ErrInvalidConfig)
	}
	return nil
}

// ClientConfig converts the enrichment section into an HTTP client config.
func (c *Config) ClientConfig() enrichment.Config {
	return enrichment.Config{
		BaseURL:           c.StyleGuideURL,
		Timeout:           c.Enrichment.Timeout,
		CacheTTL:          c.Enrichment.CacheTTL,
		UserAgent:         c.Enrichment.UserAgent,
		RequestsPerSecond: c.Enrichment.RequestsPerSecond,
	}
}

// SaveTo writes the config to a specific path
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Create file with restrictive permissions (600) for security
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	enc := yaml.NewEncoder(f)
	defer enc.Close()

	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
