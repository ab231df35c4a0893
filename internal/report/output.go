package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/avacx/deckclone/internal/analyze"
)

// Format selects a structured output encoding for stdout.
type Format string

const (
	// FormatText is the default human-readable report.
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a --output flag value.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatText, FormatJSON, FormatYAML:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unknown output format: %s", s)
	}
}

// Write renders the analysis to w in the given format.
func Write(w io.Writer, format Format, a *analyze.Analysis) error {
	switch format {
	case FormatText:
		return WriteText(w, a)
	case FormatJSON:
		return WriteJSON(w, a)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(a)
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}

// WriteJSON writes the analysis as UTF-8 JSON with 2-space indentation.
// HTML escaping is disabled so non-ASCII and markup characters appear
// literally.
func WriteJSON(w io.Writer, a *analyze.Analysis) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(a)
}

// Export writes the structured analysis JSON to a file.
func Export(path string, a *analyze.Analysis) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create analysis export: %w", err)
	}
	writeErr := WriteJSON(f, a)
	closeErr := f.Close()
	if writeErr != nil {
		return fmt.Errorf("failed to write analysis export: %w", writeErr)
	}
	return closeErr
}
