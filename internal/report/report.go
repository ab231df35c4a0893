// Package report renders template analyses for humans and machines.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/avacx/deckclone/internal/analyze"
	"github.com/avacx/deckclone/internal/classify"
)

const rule = "======================================================================"

// WriteText writes the human-readable analysis report.
func WriteText(w io.Writer, a *analyze.Analysis) error {
	var sb strings.Builder

	sb.WriteString("\n" + rule + "\n")
	sb.WriteString(fmt.Sprintf("Template analysis: %s\n", a.Source))
	sb.WriteString(rule + "\n\n")

	sb.WriteString(fmt.Sprintf("Size:   %.2fpt x %.2fpt\n", a.SlideWidthPt, a.SlideHeightPt))
	sb.WriteString(fmt.Sprintf("Slides: %d\n", a.SlideCount))

	sb.WriteString("\nSlide types:\n")
	for _, cat := range classify.Categories {
		indices := a.SlideTypes[cat]
		if len(indices) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("   %-8s slides %s\n", cat, oneBased(indices)))
	}

	sb.WriteString("\nSlide details:\n")
	for _, slide := range a.Slides {
		preview := slide.PreviewText
		if preview == "" {
			preview = "(no text)"
		}
		sb.WriteString(fmt.Sprintf("\n   [%d] type: %s  layout: %s\n", slide.Index+1, slide.Type, slide.LayoutName))
		sb.WriteString(fmt.Sprintf("       preview: %s\n", preview))

		if len(slide.TextElements) > 0 {
			sb.WriteString("       replaceable text:\n")
			shown := slide.TextElements
			more := 0
			if len(shown) > 5 {
				more = len(shown) - 5
				shown = shown[:5]
			}
			for _, te := range shown {
				sb.WriteString(fmt.Sprintf("         - %q\n", clip(te.Text, 50)))
			}
			if more > 0 {
				sb.WriteString(fmt.Sprintf("         ... %d more\n", more))
			}
		}
	}

	sb.WriteString("\n" + rule + "\n")
	_, err := io.WriteString(w, sb.String())
	return err
}

// oneBased formats 0-based slide indices as a 1-based list for display.
func oneBased(indices []int) string {
	parts := make([]string, len(indices))
	for i, idx := range indices {
		parts[i] = fmt.Sprintf("%d", idx+1)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func clip(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
