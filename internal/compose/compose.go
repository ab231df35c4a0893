// Package compose turns a template and a content plan into a new
// presentation: it prunes the slides the plan does not keep, remaps
// surviving positions, applies text replacements, and writes the
// result atomically.
package compose

import (
	"fmt"
	"log/slog"

	"github.com/avacx/deckclone/internal/analyze"
	"github.com/avacx/deckclone/internal/classify"
	"github.com/avacx/deckclone/internal/plan"
	"github.com/avacx/deckclone/internal/pptx"
)

// Composer runs the create pipeline.
type Composer struct {
	classifier *classify.Classifier
	logger     *slog.Logger
}

// New builds a Composer. A nil classifier uses the default rule table.
func New(cls *classify.Classifier, logger *slog.Logger) *Composer {
	if cls == nil {
		cls = classify.Default()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Composer{classifier: cls, logger: logger}
}

// Create builds outputPath from templatePath according to p.
//
// Out-of-range template_slide references abort before any mutation.
// Surviving slides keep their original relative order regardless of
// plan order; when several entries resolve to the same source slide,
// their replacements all land on the one surviving copy, later entries
// applied after earlier ones.
func (c *Composer) Create(templatePath string, p plan.Plan, outputPath string) error {
	pres, err := pptx.OpenPresentation(templatePath)
	if err != nil {
		return err
	}

	a := analyze.Template(pres, templatePath, c.classifier, analyze.Options{})
	resolved := p.Resolve(a)

	total := pres.SlideCount()
	for _, r := range resolved {
		if r.Source < 0 || r.Source >= total {
			return fmt.Errorf("plan entry %d references template_slide %d but the template has %d slides: %w",
				r.Entry, r.Source, total, pptx.ErrSlideOutOfRange)
		}
	}

	keep := make(map[int]bool, len(resolved))
	for _, r := range resolved {
		keep[r.Source] = true
	}

	mapping, err := pres.Prune(keep)
	if err != nil {
		return err
	}
	c.logger.Info("slides pruned",
		"template", templatePath,
		"total", total,
		"kept", len(mapping),
	)

	for _, r := range resolved {
		newIdx, ok := mapping[r.Source]
		if !ok {
			// Every kept source has a mapping; this would be a bug.
			return fmt.Errorf("kept slide %d has no surviving position", r.Source)
		}
		slide, err := pres.Slide(newIdx)
		if err != nil {
			return err
		}
		ApplyReplacements(slide, r.Replacements)
	}

	if err := pres.Save(outputPath); err != nil {
		return err
	}
	c.logger.Info("output written", "path", outputPath, "slides", len(mapping))
	return nil
}
