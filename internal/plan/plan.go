// Package plan loads and resolves content plans: ordered instructions
// selecting which template slides to keep and what text to substitute.
package plan

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/avacx/deckclone/internal/analyze"
	"github.com/avacx/deckclone/internal/classify"
)

// ShapeKeyPrefix marks a replacement key that targets a shape by name
// instead of by text content, e.g. "shape:Title".
const ShapeKeyPrefix = "shape:"

// IsShapeKey reports whether a replacement key is a named-shape key.
func IsShapeKey(key string) bool {
	return strings.HasPrefix(key, ShapeKeyPrefix)
}

// ShapeKeyFor builds the named-shape key for a shape name.
func ShapeKeyFor(name string) string {
	return ShapeKeyPrefix + name
}

// Entry is one content plan instruction. TemplateSlide takes precedence
// over Type when both are present.
type Entry struct {
	TemplateSlide *int         `json:"template_slide,omitempty"`
	Type          string       `json:"type,omitempty"`
	Replacements  Replacements `json:"replacements,omitempty"`
}

// Plan is an ordered list of instructions.
type Plan []Entry

// Load reads, validates and parses a content plan file.
func Load(path string) (Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read content plan: %w", err)
	}
	return Parse(data)
}

// Parse validates and parses content plan JSON.
func Parse(data []byte) (Plan, error) {
	if err := Validate(data); err != nil {
		return nil, err
	}
	var p Plan
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse content plan: %w", err)
	}
	return p, nil
}

// Resolved pairs a plan entry with the template slide position it
// selects.
type Resolved struct {
	Entry        int
	Source       int
	Replacements Replacements
}

// Resolve maps each plan entry to a source slide position. An explicit
// template_slide wins; otherwise the entry's category resolves to the
// first slide of that category. A category that matches nothing falls
// back to position 0 — a documented quirk kept for compatibility, not
// an error.
func (p Plan) Resolve(a *analyze.Analysis) []Resolved {
	resolved := make([]Resolved, 0, len(p))
	for i, e := range p {
		src := 0
		switch {
		case e.TemplateSlide != nil:
			src = *e.TemplateSlide
		default:
			t := e.Type
			if t == "" {
				t = string(classify.CategoryContent)
			}
			if idxs := a.SlidesByType(classify.Category(t)); len(idxs) > 0 {
				src = idxs[0]
			}
		}
		resolved = append(resolved, Resolved{
			Entry:        i,
			Source:       src,
			Replacements: e.Replacements,
		})
	}
	return resolved
}
