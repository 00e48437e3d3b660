// Package config loads palcheck settings from defaults, an optional config
// file, PALCHECK_* environment variables and command-line flags.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/mrled/palcheck/internal/input"
	"github.com/mrled/palcheck/internal/palindrome"
	"github.com/mrled/palcheck/internal/repository"
)

// EnvPrefix is prepended to every environment variable name
const EnvPrefix = "PALCHECK"

// Config holds all palcheck settings
type Config struct {
	MaxLength        int    `mapstructure:"max_length"`
	Unit             string `mapstructure:"unit"`
	Overlong         string `mapstructure:"overlong"`
	Record           bool   `mapstructure:"record"`
	File             string `mapstructure:"file"`
	DynamoDBTable    string `mapstructure:"dynamodb_table"`
	DynamoDBEndpoint string `mapstructure:"dynamodb_endpoint"`
	S3Bucket         string `mapstructure:"s3_bucket"`
	S3Key            string `mapstructure:"s3_key"`
	S3Endpoint       string `mapstructure:"s3_endpoint"`
}

// Flag names mapped to their config keys
var flagKeys = map[string]string{
	"max-length":        "max_length",
	"unit":              "unit",
	"overlong":          "overlong",
	"record":            "record",
	"file":              "file",
	"dynamodb-table":    "dynamodb_table",
	"dynamodb-endpoint": "dynamodb_endpoint",
	"s3-bucket":         "s3_bucket",
	"s3-key":            "s3_key",
	"s3-endpoint":       "s3_endpoint",
}

// DefaultConfig returns the built-in settings
func DefaultConfig() *Config {
	return &Config{
		MaxLength: input.DefaultMaxLength,
		Unit:      string(palindrome.Rune),
		Overlong:  string(input.Reject),
		Record:    true,
		S3Key:     "checks.json",
	}
}

// LoadOptions controls where Load looks for settings
type LoadOptions struct {
	// ConfigFile is an explicit config file path; its extension selects the format
	ConfigFile string
	// Flags, when set, overrides other sources for every flag the user changed
	Flags *pflag.FlagSet
}

// Load resolves settings with precedence flag > environment > file > default
func Load(opts LoadOptions) (*Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("max_length", defaults.MaxLength)
	v.SetDefault("unit", defaults.Unit)
	v.SetDefault("overlong", defaults.Overlong)
	v.SetDefault("record", defaults.Record)
	v.SetDefault("file", defaults.File)
	v.SetDefault("dynamodb_table", defaults.DynamoDBTable)
	v.SetDefault("dynamodb_endpoint", defaults.DynamoDBEndpoint)
	v.SetDefault("s3_bucket", defaults.S3Bucket)
	v.SetDefault("s3_key", defaults.S3Key)
	v.SetDefault("s3_endpoint", defaults.S3Endpoint)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", opts.ConfigFile, err)
		}
	}

	if opts.Flags != nil {
		for name, key := range flagKeys {
			if f := opts.Flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag --%s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ConfigError reports an invalid setting
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}

// Validate checks that every setting is usable
func (c *Config) Validate() error {
	if c.MaxLength < 0 {
		return &ConfigError{Field: "max_length", Message: "must not be negative"}
	}
	if _, err := palindrome.ParseUnit(c.Unit); err != nil {
		return &ConfigError{Field: "unit", Message: err.Error()}
	}
	if _, err := input.ParseOverlong(c.Overlong); err != nil {
		return &ConfigError{Field: "overlong", Message: err.Error()}
	}
	return nil
}

// Limit returns the input limit described by the configuration
func (c *Config) Limit() (input.Limit, error) {
	unit, err := palindrome.ParseUnit(c.Unit)
	if err != nil {
		return input.Limit{}, err
	}
	policy, err := input.ParseOverlong(c.Overlong)
	if err != nil {
		return input.Limit{}, err
	}
	return input.Limit{Max: c.MaxLength, Unit: unit, Policy: policy}, nil
}

// Repository returns the repository settings
func (c *Config) Repository() repository.RepositoryConfig {
	return repository.RepositoryConfig{
		FilePath:       c.File,
		DynamoTable:    c.DynamoDBTable,
		DynamoEndpoint: c.DynamoDBEndpoint,
	}
}

// RecordingEnabled reports whether checks should be stored. Recording needs
// a persistent store; checks are never kept only in process memory.
func (c *Config) RecordingEnabled() bool {
	return c.Record && c.Repository().IsPersistent()
}
