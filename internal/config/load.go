package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix prefixes every environment variable, e.g. QUICKNOTES_STORE_ADAPTER.
	EnvPrefix = "QUICKNOTES"
	// FileName is the config file looked up in the search directories.
	FileName = ".quicknotes"
)

// LoadOptions controls where Load looks for a config file.
type LoadOptions struct {
	// File is an explicit config file. It must exist.
	File string
	// SearchDirs are scanned for FileName.yaml when File is empty.
	SearchDirs []string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("store.adapter", "fs")
	v.SetDefault("store.path", "")
	v.SetDefault("store.seed", true)
	v.SetDefault("list.sort", "date-desc")
	v.SetDefault("list.load_sort", "date-desc")
	v.SetDefault("list.show_archived", false)
	v.SetDefault("profile.display_name", "QuickNotes User")
	v.SetDefault("profile.email", "")
	v.SetDefault("profile.joined_at", "")
	v.SetDefault("log.level", "info")
}

// Load reads and validates the configuration.
func Load(opts LoadOptions) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("yaml")
	switch {
	case opts.File != "":
		v.SetConfigFile(opts.File)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", opts.File, err)
		}
	case len(opts.SearchDirs) > 0:
		v.SetConfigName(FileName)
		for _, dir := range opts.SearchDirs {
			v.AddConfigPath(dir)
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	_ = v.Unmarshal(&cfg)
	return &cfg
}

// Validate checks every field constraint.
func (c *Config) Validate() error {
	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(c); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return nil
}
