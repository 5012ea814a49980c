// Package config loads runtime configuration from the environment, with
// an optional YAML file for operator overrides of the credential table
// and exchange rates.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/talentops/attrition-insight/internal/auth"
	"github.com/talentops/attrition-insight/internal/finance"
)

// Config holds all runtime settings for the server.
type Config struct {
	Port         string
	ArtifactsDir string
	DataDir      string
	JWTSecret    string
	RedisAddr    string

	Accounts      map[string]auth.Account
	ExchangeRates finance.ExchangeRates
}

// fileOverrides is the shape of the optional YAML config file. Absent
// sections leave the built-in defaults untouched.
type fileOverrides struct {
	Accounts      map[string]auth.Account `yaml:"accounts"`
	ExchangeRates *struct {
		USDToIDR float64 `yaml:"usd_to_idr"`
		EURToIDR float64 `yaml:"eur_to_idr"`
		AsOf     string  `yaml:"as_of"`
	} `yaml:"exchange_rates"`
}

// Load reads configuration from the environment. A .env file in the
// working directory is applied first when present, then the optional
// CONFIG_FILE YAML overrides.
func Load() (*Config, error) {
	// Missing .env is fine, real env vars still apply.
	_ = godotenv.Load()

	cfg := &Config{
		Port:          getEnvOrDefault("PORT", "8080"),
		ArtifactsDir:  getEnvOrDefault("ARTIFACTS_DIR", "./artifacts"),
		DataDir:       getEnvOrDefault("DATA_DIR", "./data"),
		JWTSecret:     getEnvOrDefault("JWT_SECRET", "change-me-in-production"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		Accounts:      auth.DefaultAccounts(),
		ExchangeRates: finance.DefaultExchangeRates(),
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.applyFile(path); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var overrides fileOverrides
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	for username, account := range overrides.Accounts {
		c.Accounts[username] = account
	}

	if rates := overrides.ExchangeRates; rates != nil {
		if rates.USDToIDR > 0 {
			c.ExchangeRates.USDToIDR = rates.USDToIDR
		}
		if rates.EURToIDR > 0 {
			c.ExchangeRates.EURToIDR = rates.EURToIDR
		}
		if rates.AsOf != "" {
			c.ExchangeRates.AsOf = rates.AsOf
		}
	}

	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
