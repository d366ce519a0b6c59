package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/theoremus-urban-solutions/cta-train-tracker/utils"
)

const (
	DefaultStopsURL     = "https://data.cityofchicago.org/resource/8pix-ypme.json"
	DefaultArrivalsURL  = "https://lapi.transitchicago.com/api/1.0/ttarrivals.aspx"
	DefaultFollowURL    = "https://lapi.transitchicago.com/api/1.0/ttfollow.aspx"
	DefaultPositionsURL = "https://lapi.transitchicago.com/api/1.0/ttpositions.aspx"
	DefaultTimezone     = utils.DefaultTimezone
	DefaultTimeoutMS    = 60000
	DefaultTLSPolicy    = "legacy"
	DefaultUserAgent    = "cta-train-tracker"
	DefaultLogLevel     = "info"
)

// DefaultPaths are searched in order when LoadAppConfig is given no path
var DefaultPaths = []string{"config.yml", "./cta/config.yml"}

// Default returns a configuration with every default applied and no API key
func Default() AppConfig {
	var cfg AppConfig
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills zero values with the package defaults
func (c *AppConfig) ApplyDefaults() {
	if c.API.StopsURL == "" {
		c.API.StopsURL = DefaultStopsURL
	}
	if c.API.ArrivalsURL == "" {
		c.API.ArrivalsURL = DefaultArrivalsURL
	}
	if c.API.FollowURL == "" {
		c.API.FollowURL = DefaultFollowURL
	}
	if c.API.PositionsURL == "" {
		c.API.PositionsURL = DefaultPositionsURL
	}
	if c.API.Timezone == "" {
		c.API.Timezone = DefaultTimezone
	}
	if c.Transport.TimeoutMS == 0 {
		c.Transport.TimeoutMS = DefaultTimeoutMS
	}
	if c.Transport.TLSPolicy == "" {
		c.Transport.TLSPolicy = DefaultTLSPolicy
	}
	if c.Transport.UserAgent == "" {
		c.Transport.UserAgent = DefaultUserAgent
	}
	if c.Logging.Level == "" {
		c.Logging.Level = DefaultLogLevel
	}
}

// Validate checks the struct tags of the configuration
func (c AppConfig) Validate() error {
	return validator.New().Struct(c)
}

// LoadAppConfig loads, validates and defaults the configuration at path.
// An empty path searches DefaultPaths.
func LoadAppConfig(path string) (AppConfig, error) {
	paths := DefaultPaths
	if path != "" {
		paths = []string{path}
	}
	var data []byte
	var err error
	for _, p := range paths {
		data, err = os.ReadFile(p)
		if err == nil {
			break
		}
	}
	if err != nil {
		return AppConfig{}, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return AppConfig{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return AppConfig{}, fmt.Errorf("invalid config: %w", err)
	}
	cfg.ApplyDefaults()
	return cfg, nil
}
