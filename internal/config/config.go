package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"faraid-engine/internal/faraid"
	"faraid-engine/internal/logger"
)

// Config captures everything the service and the CLI need at startup.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Logging   LoggingConfig   `yaml:"logging"`
	Faraid    FaraidConfig    `yaml:"faraid"`
	PriceFeed PriceFeedConfig `yaml:"price_feed"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
	// MaxBodyBytes caps request bodies; heir lists are small.
	MaxBodyBytes int `yaml:"max_body_bytes"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

type FaraidConfig struct {
	RaddPolicy string `yaml:"radd_policy"`
}

type PriceFeedConfig struct {
	URL                string        `yaml:"url"`
	Timeout            time.Duration `yaml:"timeout"`
	CacheTTL           time.Duration `yaml:"cache_ttl"`
	DefaultCurrency    string        `yaml:"default_currency"`
	GoldPricePerGram   string        `yaml:"gold_price_per_gram"`
	SilverPricePerGram string        `yaml:"silver_price_per_gram"`
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         "8080",
			MaxBodyBytes: 64 << 10,
		},
		Logging: LoggingConfig{Level: "info"},
		Faraid:  FaraidConfig{RaddPolicy: string(faraid.RaddExcludeSpouse)},
		PriceFeed: PriceFeedConfig{
			Timeout:            2 * time.Second,
			CacheTTL:           15 * time.Minute,
			DefaultCurrency:    "USD",
			GoldPricePerGram:   "75.00",
			SilverPricePerGram: "0.90",
		},
	}
}

// Load reads defaults, then the YAML file at path if it exists, then
// environment overrides. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromEnv loads the file named by FARAID_CONFIG, if any, plus env overrides.
func FromEnv() (*Config, error) {
	return Load(os.Getenv("FARAID_CONFIG"))
}

func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("PORT"); v != "" {
		c.Server.Port = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("FARAID_RADD_POLICY"); v != "" {
		c.Faraid.RaddPolicy = v
	}
	if v := os.Getenv("PRICE_FEED_URL"); v != "" {
		c.PriceFeed.URL = v
	}
	if v := os.Getenv("DEFAULT_CURRENCY"); v != "" {
		c.PriceFeed.DefaultCurrency = v
	}
	if v := os.Getenv("GOLD_PRICE_PER_GRAM"); v != "" {
		c.PriceFeed.GoldPricePerGram = v
	}
	if v := os.Getenv("SILVER_PRICE_PER_GRAM"); v != "" {
		c.PriceFeed.SilverPricePerGram = v
	}

	durations := []struct {
		env string
		dst *time.Duration
	}{
		{"PRICE_FEED_TIMEOUT", &c.PriceFeed.Timeout},
		{"PRICE_CACHE_TTL", &c.PriceFeed.CacheTTL},
	}
	for _, d := range durations {
		v := os.Getenv(d.env)
		if v == "" {
			continue
		}
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", d.env, err)
		}
		*d.dst = parsed
	}
	return nil
}

// Validate rejects values the service cannot start with.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Server.Port) == "" {
		return fmt.Errorf("server port is empty")
	}
	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("server max_body_bytes must be positive")
	}
	if _, err := logger.ParseLevel(c.Logging.Level); err != nil {
		return err
	}
	if _, err := c.RaddPolicy(); err != nil {
		return err
	}
	if c.PriceFeed.Timeout <= 0 {
		return fmt.Errorf("price feed timeout must be positive")
	}
	if c.PriceFeed.CacheTTL < 0 {
		return fmt.Errorf("price feed cache ttl must not be negative")
	}
	if _, _, err := c.FallbackPrices(); err != nil {
		return err
	}
	return nil
}

func (c *Config) RaddPolicy() (faraid.RaddPolicy, error) {
	return faraid.ParseRaddPolicy(c.Faraid.RaddPolicy)
}

// FallbackPrices parses the configured gold and silver prices per gram.
func (c *Config) FallbackPrices() (gold, silver decimal.Decimal, err error) {
	gold, err = decimal.NewFromString(c.PriceFeed.GoldPricePerGram)
	if err != nil {
		return gold, silver, fmt.Errorf("invalid gold_price_per_gram: %w", err)
	}
	silver, err = decimal.NewFromString(c.PriceFeed.SilverPricePerGram)
	if err != nil {
		return gold, silver, fmt.Errorf("invalid silver_price_per_gram: %w", err)
	}
	return gold, silver, nil
}
