// Package config loads service settings from an optional YAML file and
// WGRADE_* environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/denisok6893-rgb/warehouse-grading/internal/logging"
)

const envPrefix = "WGRADE"

const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
)

type Config struct {
	HTTP    HTTPConfig        `mapstructure:"http"`
	Catalog CatalogConfig     `mapstructure:"catalog"`
	Store   StoreConfig       `mapstructure:"store"`
	Log     logging.LogConfig `mapstructure:"log"`
}

type HTTPConfig struct {
	Address string `mapstructure:"address"`
}

type CatalogConfig struct {
	// Path to a YAML/JSON template catalog. Empty means the built-in templates.
	Path string `mapstructure:"path"`
}

type StoreConfig struct {
	Driver string `mapstructure:"driver"`
	// Name of the shared-cache in-memory SQLite database.
	Name string `mapstructure:"name"`
}

// newViper maps nested keys to env vars: http.address -> WGRADE_HTTP_ADDRESS.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("http.address", ":8080")
	v.SetDefault("catalog.path", "")
	v.SetDefault("store.driver", StoreMemory)
	v.SetDefault("store.name", "warehouse-grading")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	return v
}

// Load reads configPath when it is non-empty, then applies env overrides and
// defaults, and validates the result.
func Load(configPath string) (*Config, error) {
	v := newViper()
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %q: %w", configPath, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.HTTP.Address) == "" {
		return fmt.Errorf("http.address is required")
	}
	switch c.Store.Driver {
	case StoreMemory:
	case StoreSQLite:
		if strings.TrimSpace(c.Store.Name) == "" {
			return fmt.Errorf("store.name is required for the sqlite driver")
		}
	default:
		return fmt.Errorf("store.driver %q is not one of %s, %s", c.Store.Driver, StoreMemory, StoreSQLite)
	}
	return nil
}
