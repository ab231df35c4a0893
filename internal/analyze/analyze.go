// Package analyze builds a structural summary of a template: per-slide
// text inventory plus a category index used to resolve content plans.
package analyze

import (
	"math"
	"path/filepath"
	"strings"

	"github.com/avacx/deckclone/internal/classify"
	"github.com/avacx/deckclone/internal/pptx"
)

// DefaultPreviewLength is the rune budget for slide preview strings.
const DefaultPreviewLength = 50

// TextElement is one text-bearing shape's name and extracted text.
type TextElement struct {
	ShapeName string `json:"shape_name"`
	Text      string `json:"text"`
}

// SlideInfo summarizes one template slide.
type SlideInfo struct {
	Index        int               `json:"index"`
	Type         classify.Category `json:"type"`
	LayoutName   string            `json:"layout_name"`
	TextElements []TextElement     `json:"text_elements"`
	ShapeCount   int               `json:"shape_count"`
	PreviewText  string            `json:"preview_text"`
}

// Analysis is the full template analysis record.
type Analysis struct {
	Source        string                      `json:"source"`
	SlideCount    int                         `json:"slide_count"`
	SlideWidthPt  float64                     `json:"slide_width_pt"`
	SlideHeightPt float64                     `json:"slide_height_pt"`
	Slides        []SlideInfo                 `json:"slides"`
	SlideTypes    map[classify.Category][]int `json:"slide_types"`
}

// Options tunes analysis output.
type Options struct {
	// PreviewLength is the rune budget for preview strings.
	// Zero means DefaultPreviewLength.
	PreviewLength int
}

// Template analyzes an open presentation. source is the template's
// path; only its base name is recorded.
func Template(pres *pptx.Presentation, source string, cls *classify.Classifier, opts Options) *Analysis {
	previewLen := opts.PreviewLength
	if previewLen <= 0 {
		previewLen = DefaultPreviewLength
	}

	w, h := pres.SlideSize()
	a := &Analysis{
		Source:        filepath.Base(source),
		SlideCount:    pres.SlideCount(),
		SlideWidthPt:  roundPt(w),
		SlideHeightPt: roundPt(h),
		SlideTypes:    make(map[classify.Category][]int),
	}

	total := pres.SlideCount()
	for idx, slide := range pres.Slides() {
		info := analyzeSlide(slide, idx, total, cls, previewLen)
		a.Slides = append(a.Slides, info)
		a.SlideTypes[info.Type] = append(a.SlideTypes[info.Type], idx)
	}
	return a
}

func analyzeSlide(slide *pptx.Slide, idx, total int, cls *classify.Classifier, previewLen int) SlideInfo {
	info := SlideInfo{
		Index:        idx,
		LayoutName:   slide.LayoutName(),
		TextElements: []TextElement{},
		ShapeCount:   slide.ShapeCount(),
	}
	if info.LayoutName == "" {
		info.LayoutName = "Unknown"
	}

	var texts []string
	for _, shape := range slide.Shapes() {
		if !shape.HasTextFrame() {
			continue
		}
		text := strings.TrimSpace(shape.Text())
		if text == "" {
			continue
		}
		info.TextElements = append(info.TextElements, TextElement{
			ShapeName: shape.Name(),
			Text:      text,
		})
		texts = append(texts, text)
		if info.PreviewText == "" {
			info.PreviewText = truncate(text, previewLen)
		}
	}

	info.Type = cls.Classify(classify.SlideFacts{
		Index:      idx,
		Total:      total,
		LayoutName: info.LayoutName,
		Texts:      texts,
	})
	return info
}

// SlidesByType returns the indices of slides with the given category.
func (a *Analysis) SlidesByType(t classify.Category) []int {
	return a.SlideTypes[t]
}

// roundPt converts EMU to points rounded to two decimals.
func roundPt(emu int64) float64 {
	if emu == 0 {
		return 0
	}
	return math.Round(pptx.EMUToPoint(emu)*100) / 100
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
