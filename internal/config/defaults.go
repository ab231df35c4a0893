package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/avacx/deckclone/internal/analyze"
	"github.com/avacx/deckclone/internal/classify"
)

// DefaultConfig returns the built-in configuration. The classifier
// rules mirror classify.DefaultRules so that a written-out config file
// starts from the shipped behavior.
func DefaultConfig() *Config {
	rules := classify.DefaultRules()
	ruleCfgs := make([]RuleConfig, 0, len(rules))
	for _, r := range rules {
		ruleCfgs = append(ruleCfgs, RuleConfig{
			Field:    string(r.Field),
			Keywords: r.Keywords,
			Type:     string(r.Category),
		})
	}

	return &Config{
		LogLevel:      "info",
		PreviewLength: analyze.DefaultPreviewLength,
		Classifier: ClassifierConfig{
			MaxDividerElements: classify.DefaultMaxDividerElements,
			Rules:              ruleCfgs,
		},
	}
}

// WriteDefault writes the default configuration to the specified path.
func WriteDefault(path string) error {
	cfg := DefaultConfig()
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte(`# deckclone configuration
# Classifier rules are evaluated in order; the first matching rule
# assigns the slide's category. field is "layout" (slide layout name)
# or "text" (aggregate slide text). Keyword matching is
# case-insensitive substring matching.

`)
	return os.WriteFile(path, append(header, data...), 0o644)
}
