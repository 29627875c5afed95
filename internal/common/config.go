package common

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
	"github.com/ternarybob/arbor"
	"gopkg.in/yaml.v3"

	"github.com/ternarybob/gplaces/pkg/places"
)

// Config represents the application configuration
type Config struct {
	Places  PlacesConfig  `toml:"places" yaml:"places"`
	Logging LoggingConfig `toml:"logging" yaml:"logging"`
}

// PlacesConfig holds the settings handed to places.NewClient.
type PlacesConfig struct {
	APIKey         string `toml:"api_key" yaml:"api_key" validate:"required"`
	Format         string `toml:"format" yaml:"format" validate:"required,oneof=json xml"`
	URLTemplate    string `toml:"url_template" yaml:"url_template" validate:"required,contains={cmd}"`
	RequestTimeout string `toml:"request_timeout" yaml:"request_timeout"` // e.g. "30s"
	ForceMap       bool   `toml:"force_map" yaml:"force_map"`             // decode JSON into map[string]any instead of typed records
}

type LoggingConfig struct {
	Level      string   `toml:"level" yaml:"level" validate:"omitempty,oneof=trace debug info warn error"`
	Output     []string `toml:"output" yaml:"output"`           // "stdout", "file"
	TimeFormat string   `toml:"time_format" yaml:"time_format"` // default: "15:04:05"
}

var configValidator = validator.New(validator.WithRequiredStructEnabled())

// NewDefaultConfig creates a configuration with default values.
// The API key has no default and must come from a file or GPLACES_API_KEY.
func NewDefaultConfig() *Config {
	return &Config{
		Places: PlacesConfig{
			Format:         string(places.FormatJSON),
			URLTemplate:    places.DefaultURLTemplate,
			RequestTimeout: places.DefaultTimeout.String(),
		},
		Logging: LoggingConfig{
			Level:      "info",
			Output:     []string{"stdout"},
			TimeFormat: "15:04:05",
		},
	}
}

// LoadFromFiles loads configuration with priority: default -> file1 -> file2 -> ... -> env.
// Files ending in .yaml or .yml are parsed as YAML, anything else as TOML.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		// Unmarshal merges into the existing values
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
			err = yaml.Unmarshal(data, config)
		default:
			err = toml.Unmarshal(data, config)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if apiKey := os.Getenv("GPLACES_API_KEY"); apiKey != "" {
		config.Places.APIKey = apiKey
	}
	if format := os.Getenv("GPLACES_FORMAT"); format != "" {
		config.Places.Format = strings.ToLower(strings.TrimSpace(format))
	}
	if timeout := os.Getenv("GPLACES_TIMEOUT"); timeout != "" {
		config.Places.RequestTimeout = timeout
	}
	if forceMap := os.Getenv("GPLACES_FORCE_MAP"); forceMap != "" {
		if fm, err := strconv.ParseBool(forceMap); err == nil {
			config.Places.ForceMap = fm
		}
	}

	if level := os.Getenv("GPLACES_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if output := os.Getenv("GPLACES_LOG_OUTPUT"); output != "" {
		outputs := []string{}
		for _, o := range strings.Split(output, ",") {
			if trimmed := strings.TrimSpace(o); trimmed != "" {
				outputs = append(outputs, trimmed)
			}
		}
		if len(outputs) > 0 {
			config.Logging.Output = outputs
		}
	}
}

// Validate checks the loaded configuration before a client is built from it.
func (c *Config) Validate() error {
	if err := configValidator.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if _, err := c.Places.Timeout(); err != nil {
		return fmt.Errorf("invalid configuration: places.request_timeout: %w", err)
	}
	return nil
}

// Timeout parses RequestTimeout. An empty value means places.DefaultTimeout.
func (p PlacesConfig) Timeout() (time.Duration, error) {
	if strings.TrimSpace(p.RequestTimeout) == "" {
		return places.DefaultTimeout, nil
	}
	d, err := time.ParseDuration(p.RequestTimeout)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("must be positive, got %s", p.RequestTimeout)
	}
	return d, nil
}

// NewPlacesClient builds a places.Client from the configuration.
func (c *Config) NewPlacesClient(logger arbor.ILogger) (*places.Client, error) {
	timeout, err := c.Places.Timeout()
	if err != nil {
		return nil, fmt.Errorf("invalid request timeout %q: %w", c.Places.RequestTimeout, err)
	}

	opts := []places.ClientOption{
		places.WithFormat(places.Format(c.Places.Format)),
		places.WithURLTemplate(c.Places.URLTemplate),
		places.WithHTTPTimeout(timeout),
		places.WithLogger(logger),
	}
	if c.Places.ForceMap {
		opts = append(opts, places.WithDecodeMode(places.DecodeMap))
	}

	return places.NewClient(c.Places.APIKey, opts...)
}
