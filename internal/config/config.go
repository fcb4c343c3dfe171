// Package config loads attlookup settings from a YAML file, then environment
// variables, then explicit overrides (usually command-line flags).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/aretw0/attlookup"
	"github.com/aretw0/attlookup/pkg/domain"
	"github.com/caarlos0/env/v11"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "ATTLOOKUP_"

// Config is the full runtime configuration.
type Config struct {
	Dir      string  `yaml:"dir" mapstructure:"dir" env:"DIR"`
	LogLevel string  `yaml:"log_level" mapstructure:"log_level" env:"LOG_LEVEL"`
	Strict   bool    `yaml:"strict" mapstructure:"strict" env:"STRICT"`
	Symbols  Symbols `yaml:"symbols" mapstructure:"symbols" envPrefix:"SYMBOL_"`
	Search   Search  `yaml:"search" mapstructure:"search" envPrefix:"SEARCH_"`
	Server   Server  `yaml:"server" mapstructure:"server" envPrefix:"SERVER_"`
	Redis    Redis   `yaml:"redis" mapstructure:"redis" envPrefix:"REDIS_"`
}

// Symbols overrides the reserved marker strings of loaded tables.
type Symbols struct {
	Epsilon     string `yaml:"epsilon" mapstructure:"epsilon" env:"EPSILON"`
	Identity    string `yaml:"identity" mapstructure:"identity" env:"IDENTITY"`
	Unknown     string `yaml:"unknown" mapstructure:"unknown" env:"UNKNOWN"`
	Placeholder string `yaml:"placeholder" mapstructure:"placeholder" env:"PLACEHOLDER"`
}

// Search is the termination policy applied to every lookup.
type Search struct {
	MaxExpansions int  `yaml:"max_expansions" mapstructure:"max_expansions" env:"MAX_EXPANSIONS"`
	Dedup         bool `yaml:"dedup" mapstructure:"dedup" env:"DEDUP"`
}

// Server configures the HTTP listener.
type Server struct {
	Port int `yaml:"port" mapstructure:"port" env:"PORT"`
}

// Redis configures the optional result cache. An empty Addr disables it.
type Redis struct {
	Addr     string        `yaml:"addr" mapstructure:"addr" env:"ADDR"`
	Password string        `yaml:"password" mapstructure:"password" env:"PASSWORD"`
	DB       int           `yaml:"db" mapstructure:"db" env:"DB"`
	TTL      time.Duration `yaml:"ttl" mapstructure:"ttl" env:"TTL"`
	Prefix   string        `yaml:"prefix" mapstructure:"prefix" env:"PREFIX"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	d := domain.DefaultSymbols()
	return Config{
		Dir:      ".",
		LogLevel: "warn",
		Symbols: Symbols{
			Epsilon:     d.Epsilon,
			Identity:    d.Identity,
			Unknown:     d.Unknown,
			Placeholder: d.Placeholder,
		},
		Search: Search{MaxExpansions: attlookup.DefaultMaxExpansions, Dedup: true},
		Server: Server{Port: 8080},
		Redis:  Redis{Prefix: "attlookup:lookup:"},
	}
}

// Load reads path (if it exists) over the defaults, then applies environment
// variables. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
			}
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Apply decodes overrides (keyed like the YAML file, nested maps for sections)
// onto cfg. Keys that are absent leave the current value untouched.
func (c *Config) Apply(overrides map[string]any) error {
	if len(overrides) == 0 {
		return nil
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           c,
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(overrides); err != nil {
		return fmt.Errorf("invalid override: %w", err)
	}
	return nil
}

// DomainSymbols converts the configured markers, filling blanks with defaults.
func (c Config) DomainSymbols() domain.Symbols {
	return domain.Symbols{
		Epsilon:     c.Symbols.Epsilon,
		Identity:    c.Symbols.Identity,
		Unknown:     c.Symbols.Unknown,
		Placeholder: c.Symbols.Placeholder,
	}.WithDefaults()
}

// SearchDefaults converts the configured termination policy.
func (c Config) SearchDefaults() attlookup.SearchDefaults {
	return attlookup.SearchDefaults{
		MaxExpansions: c.Search.MaxExpansions,
		Dedup:         c.Search.Dedup,
	}
}
