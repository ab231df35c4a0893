package compose

import (
	"strings"

	"github.com/avacx/deckclone/internal/plan"
	"github.com/avacx/deckclone/internal/pptx"
)

// ApplyReplacements applies a replacement dictionary to one slide.
//
// Per text-bearing shape, first match wins:
//  1. a "shape:<Name>" key matching the shape's name replaces the
//     shape's entire text;
//  2. a key equal to the shape's full trimmed text replaces the
//     shape's entire text;
//  3. otherwise every run is scanned against every plain key in
//     dictionary order; each hit replaces all occurrences in the run's
//     current text, so a later key sees (and may rewrite) text a
//     prior key introduced.
//
// Keys that match nothing are silently ignored. Applying the same
// dictionary twice is not idempotent when a replacement value contains
// another key; that is inherent to the cumulative contract.
func ApplyReplacements(slide *pptx.Slide, repl plan.Replacements) {
	if repl.Len() == 0 {
		return
	}

	for _, shape := range slide.Shapes() {
		if !shape.HasTextFrame() {
			continue
		}

		if v, ok := repl.Get(plan.ShapeKeyFor(shape.Name())); ok {
			shape.SetText(v)
			continue
		}

		if v, ok := repl.Get(strings.TrimSpace(shape.Text())); ok {
			shape.SetText(v)
			continue
		}

		for _, run := range shape.Runs() {
			if run.Text() == "" {
				continue
			}
			text := run.Text()
			for _, key := range repl.Keys() {
				if plan.IsShapeKey(key) {
					continue
				}
				if strings.Contains(text, key) {
					v, _ := repl.Get(key)
					text = strings.ReplaceAll(text, key, v)
				}
			}
			if text != run.Text() {
				run.SetText(text)
			}
		}
	}
}
