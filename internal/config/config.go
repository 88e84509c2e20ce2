// Package config loads the storefront's YAML configuration.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/storefront/internal/model"
	"github.com/roach88/storefront/internal/money"
)

// EnvPath names the environment variable consulted when no path is given.
const EnvPath = "STOREFRONT_CONFIG"

// Config holds every tunable of the storefront core.
type Config struct {
	// Database is the SQLite file path.
	Database string `yaml:"database"`

	Locale         string `yaml:"locale"`
	Currency       string `yaml:"currency"`
	CurrencySymbol string `yaml:"currency_symbol"`

	// MessagingBaseURL prefixes checkout deep links.
	MessagingBaseURL string `yaml:"messaging_base_url"`

	// MinContactLength is the shortest contact channel a cart can check out to.
	MinContactLength int `yaml:"min_contact_length"`

	// Placeholder holds the values the provisioning trigger writes.
	Placeholder Placeholder `yaml:"placeholder"`
}

// Placeholder mirrors the provisioning trigger's defaults.
type Placeholder struct {
	Name     string `yaml:"name"`
	WhatsApp string `yaml:"whatsapp"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Database:         "storefront.db",
		Locale:           money.DefaultLocale,
		Currency:         money.DefaultCurrency,
		CurrencySymbol:   money.DefaultSymbol,
		MessagingBaseURL: "https://wa.me",
		MinContactLength: 10,
		Placeholder: Placeholder{
			Name:     model.PlaceholderStoreName,
			WhatsApp: model.PlaceholderWhatsApp,
		},
	}
}

// Load reads the file at path, or the file named by STOREFRONT_CONFIG when
// path is empty. A missing file yields Default(). Fields absent from the
// file keep their defaults; unknown fields are rejected.
func Load(path string) (Config, error) {
	if path == "" {
		path = os.Getenv(EnvPath)
	}
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := Parse(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Parse decodes YAML over cfg and validates the result.
func Parse(data []byte, cfg *Config) error {
	if len(bytes.TrimSpace(data)) > 0 {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil {
			return fmt.Errorf("failed to parse YAML: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if c.Database == "" {
		return fmt.Errorf("database is required")
	}
	if _, err := money.NewFormatter(c.Locale, c.Currency, c.CurrencySymbol); err != nil {
		return err
	}
	u, err := url.Parse(c.MessagingBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("messaging_base_url %q must be an absolute URL", c.MessagingBaseURL)
	}
	if c.MinContactLength < 1 {
		return fmt.Errorf("min_contact_length must be positive, got %d", c.MinContactLength)
	}
	if c.Placeholder.Name == "" || c.Placeholder.WhatsApp == "" {
		return fmt.Errorf("placeholder name and whatsapp are required")
	}
	return nil
}

// Formatter builds the currency formatter for this configuration.
func (c Config) Formatter() (*money.Formatter, error) {
	return money.NewFormatter(c.Locale, c.Currency, c.CurrencySymbol)
}
