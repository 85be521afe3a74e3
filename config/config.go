package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/lemconn/bybitlink/bybit"
	"github.com/lemconn/bybitlink/common"
)

// Environment variables that override the YAML file.
const (
	EnvAPIKey     = "BYBIT_API_KEY"
	EnvSecretKey  = "BYBIT_SECRET_KEY"
	EnvRecvWindow = "BYBIT_RECV_WINDOW"
	EnvBaseURL    = "BYBIT_BASE_URL"
	EnvRegion     = "BYBIT_REGION"
	EnvProxy      = "PROXY_URL"
	EnvLogLevel   = "LOG_LEVEL"
)

type Config struct {
	Bybit   BybitConfig      `yaml:"bybit"`
	Logging common.LogConfig `yaml:"logging"`
}

type BybitConfig struct {
	APIKey     string        `yaml:"api_key"`
	APISecret  string        `yaml:"api_secret"`
	RecvWindow string        `yaml:"recv_window"`
	Region     string        `yaml:"region"`
	BaseURL    string        `yaml:"base_url"`
	Timeout    time.Duration `yaml:"timeout"`
	Proxy      string        `yaml:"proxy"`
	Debug      bool          `yaml:"debug"`
}

// LoadEnvFile loads .env style files into the process environment without
// overriding variables that are already set. Missing files are ignored.
func LoadEnvFile(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load env file %s: %w", f, err)
		}
	}
	return nil
}

// Load reads the YAML file at path (skipped when path is empty), then applies
// environment overrides and validates the result.
func Load(path string) (*Config, error) {
	config := Config{
		Bybit: BybitConfig{
			RecvWindow: bybit.DefaultRecvWindow,
		},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	applyEnv(&config)

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &config, nil
}

func applyEnv(config *Config) {
	override := func(dst *string, key string) {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			*dst = v
		}
	}
	override(&config.Bybit.APIKey, EnvAPIKey)
	override(&config.Bybit.APISecret, EnvSecretKey)
	override(&config.Bybit.RecvWindow, EnvRecvWindow)
	override(&config.Bybit.BaseURL, EnvBaseURL)
	override(&config.Bybit.Region, EnvRegion)
	override(&config.Bybit.Proxy, EnvProxy)
	override(&config.Logging.Level, EnvLogLevel)
}

func validateConfig(cfg *Config) error {
	if cfg.Bybit.RecvWindow == "" {
		cfg.Bybit.RecvWindow = bybit.DefaultRecvWindow
	}
	window, err := strconv.ParseInt(cfg.Bybit.RecvWindow, 10, 64)
	if err != nil || window <= 0 {
		return fmt.Errorf("bybit.recv_window must be a positive integer, got %q", cfg.Bybit.RecvWindow)
	}

	if cfg.Bybit.BaseURL == "" {
		if _, err := bybit.RegionURL(cfg.Bybit.Region); err != nil {
			return fmt.Errorf("bybit.region: %w", err)
		}
	}

	if (cfg.Bybit.APIKey == "") != (cfg.Bybit.APISecret == "") {
		return fmt.Errorf("bybit.api_key and bybit.api_secret must be set together")
	}

	if cfg.Bybit.Timeout < 0 {
		return fmt.Errorf("bybit.timeout must not be negative")
	}
	return nil
}

// ClientConfig converts the loaded settings into a bybit.Config. An explicit
// base URL wins over the region.
func (c *Config) ClientConfig() (bybit.Config, error) {
	baseURL := c.Bybit.BaseURL
	if baseURL == "" {
		u, err := bybit.RegionURL(c.Bybit.Region)
		if err != nil {
			return bybit.Config{}, err
		}
		baseURL = u
	}
	return bybit.Config{
		APIKey:     c.Bybit.APIKey,
		APISecret:  c.Bybit.APISecret,
		RecvWindow: c.Bybit.RecvWindow,
		BaseURL:    baseURL,
		Timeout:    c.Bybit.Timeout,
		Proxy:      c.Bybit.Proxy,
		Debug:      c.Bybit.Debug,
	}, nil
}
