package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v2"

	"github.com/avacx/deckclone/internal/classify"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.LogLevel != "info" {
		t.Errorf("unexpected default log level %q", cfg.LogLevel)
	}
	if cfg.PreviewLength <= 0 {
		t.Errorf("unexpected default preview length %d", cfg.PreviewLength)
	}
	if len(cfg.Classifier.Rules) == 0 {
		t.Fatal("default config carries no classifier rules")
	}

	cls, err := cfg.BuildClassifier()
	if err != nil {
		t.Fatalf("default config does not build a classifier: %v", err)
	}
	got := cls.Classify(classify.SlideFacts{
		Index: 3, Total: 5, LayoutName: "Blank", Texts: []string{"谢谢"},
	})
	if got != classify.CategoryEnding {
		t.Errorf("default rules classify 谢谢 as %q, want ending", got)
	}
}

func TestBuildClassifierRejectsBadRule(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Classifier.Rules = append(cfg.Classifier.Rules, RuleConfig{
		Field: "footer", Keywords: []string{"x"}, Type: "content",
	})
	if _, err := cfg.BuildClassifier(); err == nil {
		t.Error("expected error for unknown rule field")
	}

	cfg = DefaultConfig()
	cfg.Classifier.Rules = []RuleConfig{
		{Field: "text", Keywords: []string{"x"}, Type: "chapter"},
	}
	if _, err := cfg.BuildClassifier(); err == nil {
		t.Error("expected error for unknown category")
	}
}

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := WriteDefault(path); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read config: %v", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		t.Fatalf("written config is not valid YAML: %v", err)
	}
	defaults := DefaultConfig()
	if cfg.LogLevel != defaults.LogLevel || cfg.PreviewLength != defaults.PreviewLength {
		t.Errorf("round trip changed scalar settings: %+v", cfg)
	}
	if len(cfg.Classifier.Rules) != len(defaults.Classifier.Rules) {
		t.Errorf("round trip changed rule count: got %d, want %d",
			len(cfg.Classifier.Rules), len(defaults.Classifier.Rules))
	}
}

func TestSlogLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range cases {
		cfg := Config{LogLevel: in}
		if got := cfg.SlogLevel(); got != want {
			t.Errorf("SlogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
