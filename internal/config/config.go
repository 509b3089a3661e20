package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the contentd API configuration.
type Config struct {
	HTTP       HTTPConfig       `yaml:"http"`
	CMS        CMSConfig        `yaml:"cms"`
	Cache      CacheConfig      `yaml:"cache"`
	Search     SearchConfig     `yaml:"search"`
	Feeds      FeedsConfig      `yaml:"feeds"`
	Newsletter NewsletterConfig `yaml:"newsletter"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// CMSConfig holds headless-CMS endpoint settings. All fields are optional:
// an empty GraphQLURL and RESTURL puts the service in degradation mode where
// every content call yields empty results.
type CMSConfig struct {
	GraphQLURL     string `yaml:"graphql_url"`
	RESTURL        string `yaml:"rest_url"`
	RequestTimeout int    `yaml:"request_timeout_sec"`
	// PDFHosts lists extra hosts the PDF download proxy may fetch from.
	// The CMS endpoint hosts are always allowed.
	PDFHosts []string `yaml:"pdf_hosts"`
}

// Endpoint resolves the effective GraphQL endpoint. When only the REST base
// is configured the CMS exposes GraphQL under {rest}/graphql.
func (c CMSConfig) Endpoint() string {
	if c.GraphQLURL != "" {
		return c.GraphQLURL
	}
	if c.RESTURL != "" {
		return strings.TrimRight(c.RESTURL, "/") + "/graphql"
	}
	return ""
}

// CacheConfig holds content cache settings.
type CacheConfig struct {
	Driver        string   `yaml:"driver"` // memory, redis, valkey (default: memory)
	Addrs         []string `yaml:"addrs"`
	Password      string   `yaml:"password"`
	DefaultTTLSec int      `yaml:"default_ttl_sec"`
	KeyPrefix     string   `yaml:"key_prefix"`
}

// SearchConfig holds search aggregator settings.
type SearchConfig struct {
	PageSize int `yaml:"page_size"` // items fetched per content kind
}

// FeedsConfig holds external RSS/Atom feed settings.
type FeedsConfig struct {
	YouTubeChannelID string `yaml:"youtube_channel_id"`
	FetchTimeoutSec  int    `yaml:"fetch_timeout_sec"`
	MaxVideos        int    `yaml:"max_videos"`
}

// NewsletterConfig holds Brevo newsletter settings.
type NewsletterConfig struct {
	BrevoAPIKey string `yaml:"brevo_api_key"`
	BrevoListID int    `yaml:"brevo_list_id"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 30
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.CMS.RequestTimeout <= 0 {
		c.CMS.RequestTimeout = 15
	}
	if c.Cache.Driver == "" {
		c.Cache.Driver = "memory"
	}
	if c.Cache.DefaultTTLSec <= 0 {
		c.Cache.DefaultTTLSec = 300
	}
	if c.Cache.KeyPrefix == "" {
		c.Cache.KeyPrefix = "contentd:"
	}
	if c.Search.PageSize <= 0 {
		c.Search.PageSize = 100
	}
	if c.Feeds.FetchTimeoutSec <= 0 {
		c.Feeds.FetchTimeoutSec = 10
	}
	if c.Feeds.MaxVideos <= 0 {
		c.Feeds.MaxVideos = 6
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	switch c.Cache.Driver {
	case "memory":
		// ok, no addresses needed
	case "redis", "valkey":
		if len(c.Cache.Addrs) == 0 {
			return fmt.Errorf("cache.addrs is required for driver %q", c.Cache.Driver)
		}
	default:
		return fmt.Errorf("cache.driver must be \"memory\", \"redis\" or \"valkey\", got %q", c.Cache.Driver)
	}
	if c.Newsletter.BrevoAPIKey != "" && c.Newsletter.BrevoListID <= 0 {
		return fmt.Errorf("newsletter.brevo_list_id is required when brevo_api_key is set")
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
