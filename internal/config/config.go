// Package config loads the build settings of the schema generator.
package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/zongwei007/graphql-schema-builder-sub000/internal/resolve"
)

const (
	DefaultCacheSize = 256
	DefaultService   = "gqlschema"
)

type (
	// Config holds the schema build settings.
	Config struct {
		// Views selects view scoped ignore and nonnull attributes.
		Views []string `mapstructure:"views" validate:"dive,required"`
		// CacheSize bounds the setter cache of input conversion.
		CacheSize int `mapstructure:"cacheSize" validate:"gte=0"`
		// ValidateInput runs struct validation on converted input objects.
		ValidateInput bool `mapstructure:"validate"`
		// Output is the SDL file. Empty writes to stdout.
		Output    string    `mapstructure:"output"`
		Verbosity int       `mapstructure:"verbosity" validate:"gte=0,lte=4"`
		Telemetry Telemetry `mapstructure:"telemetry"`
	}

	// Telemetry configures span export. An empty Endpoint disables it.
	Telemetry struct {
		Endpoint string `mapstructure:"endpoint" validate:"omitempty,hostname_port"`
		Service  string `mapstructure:"service"`
	}
)

// Default returns a Config with every default applied.
func Default() *Config {
	c := &Config{}
	c.Init()
	return c
}

// Init fills unset settings with defaults.
func (c *Config) Init() {
	if c.CacheSize == 0 {
		c.CacheSize = DefaultCacheSize
	}
	if c.Telemetry.Service == "" {
		c.Telemetry.Service = DefaultService
	}
}

// Validate checks the settings.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(err, "invalid config")
	}
	return nil
}

// EngineOptions maps the settings onto engine options.
func (c *Config) EngineOptions() []resolve.Option {
	opts := []resolve.Option{resolve.WithCacheSize(c.CacheSize)}
	if len(c.Views) > 0 {
		opts = append(opts, resolve.WithViews(c.Views...))
	}
	if c.ValidateInput {
		opts = append(opts, resolve.WithValidator(validator.New()))
	}
	return opts
}

// Parse decodes YAML data into a Config.
func Parse(data []byte) (*Config, error) {
	raw := map[string]any{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, "failed to parse config")
	}
	c := &Config{}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           c,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, errors.Wrap(err, "failed to decode config")
	}
	c.Init()
	return c, c.Validate()
}

// Load reads and parses the YAML file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read config %s", path)
	}
	return Parse(data)
}
