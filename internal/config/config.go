// Package config loads deckclone configuration: logging, analysis
// presentation, and the classifier's keyword rule table.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/viper"

	"github.com/avacx/deckclone/internal/classify"
)

// Config is the full tool configuration.
type Config struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`

	// PreviewLength is the rune budget for slide preview strings in
	// analysis output.
	PreviewLength int `mapstructure:"preview_length" yaml:"preview_length"`

	Classifier ClassifierConfig `mapstructure:"classifier" yaml:"classifier"`
}

// ClassifierConfig is the declarative slide classification table.
// Rules run in order; the first match wins. The structural rules
// (slide 0 is the cover, short numeric slides are dividers) are built
// in and not configurable.
type ClassifierConfig struct {
	MaxDividerElements int          `mapstructure:"max_divider_elements" yaml:"max_divider_elements"`
	Rules              []RuleConfig `mapstructure:"rules" yaml:"rules"`
}

// RuleConfig is one classification rule.
type RuleConfig struct {
	// Field is "layout" or "text".
	Field    string   `mapstructure:"field" yaml:"field"`
	Keywords []string `mapstructure:"keywords" yaml:"keywords"`
	// Type is the category assigned on match.
	Type string `mapstructure:"type" yaml:"type"`
}

// Manager handles loading configuration from file and environment.
type Manager struct {
	config *Config
}

// NewManager sets up viper and loads the initial config. cfgFile may be
// empty, in which case ./config.yaml and ~/.deckclone/config.yaml are
// tried; a missing config file is not an error.
func NewManager(cfgFile, homeDir string) (*Manager, error) {
	if err := initViper(cfgFile, homeDir); err != nil {
		return nil, err
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &Manager{config: &cfg}, nil
}

func initViper(cfgFile, homeDir string) error {
	defaults := DefaultConfig()
	viper.SetDefault("log_level", defaults.LogLevel)
	viper.SetDefault("preview_length", defaults.PreviewLength)
	viper.SetDefault("classifier", defaults.Classifier)

	viper.SetEnvPrefix("DECKCLONE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		if homeDir != "" {
			viper.AddConfigPath(homeDir)
		} else {
			viper.AddConfigPath("$HOME/.deckclone")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}
	return nil
}

// Get returns the loaded configuration.
func (m *Manager) Get() *Config {
	return m.config
}

// BuildClassifier converts the configured rule table into a classifier.
func (c *Config) BuildClassifier() (*classify.Classifier, error) {
	rules := make([]classify.Rule, 0, len(c.Classifier.Rules))
	for _, rc := range c.Classifier.Rules {
		rules = append(rules, classify.Rule{
			Field:    classify.Field(rc.Field),
			Keywords: rc.Keywords,
			Category: classify.Category(rc.Type),
		})
	}
	cls, err := classify.New(rules, c.Classifier.MaxDividerElements)
	if err != nil {
		return nil, fmt.Errorf("invalid classifier configuration: %w", err)
	}
	return cls, nil
}

// SlogLevel parses the configured log level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
