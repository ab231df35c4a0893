package analyze

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/avacx/deckclone/internal/classify"
	"github.com/avacx/deckclone/internal/pptx"
	"github.com/avacx/deckclone/internal/testutil"
)

func analyzeFixture(t *testing.T, opts Options, slides ...testutil.Slide) *Analysis {
	t.Helper()
	path := testutil.WriteDeck(t, slides...)
	pres, err := pptx.OpenPresentation(path)
	if err != nil {
		t.Fatalf("failed to open fixture: %v", err)
	}
	return Template(pres, path, classify.Default(), opts)
}

func TestTemplate(t *testing.T) {
	a := analyzeFixture(t, Options{},
		testutil.Slide{Layout: "Title Slide", Shapes: []testutil.Shape{testutil.TextShape("Title", "Welcome")}},
		testutil.Slide{Layout: "Blank", Shapes: []testutil.Shape{
			testutil.TextShape("Heading", "Contents"),
			testutil.TextShape("Body", "1. Intro"),
		}},
		testutil.Slide{Layout: "Blank", Shapes: []testutil.Shape{testutil.TextShape("Closing", "Thank you")}},
	)

	if !strings.HasSuffix(a.Source, ".pptx") {
		t.Errorf("expected source to carry the template path, got %q", a.Source)
	}
	if a.SlideCount != 3 {
		t.Fatalf("expected slide_count 3, got %d", a.SlideCount)
	}
	if len(a.Slides) != a.SlideCount {
		t.Fatalf("slides list length %d does not match slide_count %d", len(a.Slides), a.SlideCount)
	}

	// 12192000 x 6858000 EMU is a 16:9 deck
	if a.SlideWidthPt != 960 || a.SlideHeightPt != 540 {
		t.Errorf("unexpected dimensions: %.2f x %.2f", a.SlideWidthPt, a.SlideHeightPt)
	}

	if a.Slides[0].Type != classify.CategoryCover {
		t.Errorf("expected slide 0 to be cover, got %q", a.Slides[0].Type)
	}
	if a.Slides[1].Type != classify.CategoryTOC {
		t.Errorf("expected slide 1 to be toc, got %q", a.Slides[1].Type)
	}
	if a.Slides[2].Type != classify.CategoryEnding {
		t.Errorf("expected slide 2 to be ending, got %q", a.Slides[2].Type)
	}

	if got := a.SlidesByType(classify.CategoryTOC); len(got) != 1 || got[0] != 1 {
		t.Errorf("unexpected toc index list: %v", got)
	}
	if got := a.SlidesByType(classify.CategoryDivider); len(got) != 0 {
		t.Errorf("expected no dividers, got %v", got)
	}

	second := a.Slides[1]
	if second.ShapeCount != 2 || len(second.TextElements) != 2 {
		t.Errorf("unexpected shape counts: %d shapes, %d text elements",
			second.ShapeCount, len(second.TextElements))
	}
	if second.TextElements[0].ShapeName != "Heading" || second.TextElements[0].Text != "Contents" {
		t.Errorf("unexpected first text element: %+v", second.TextElements[0])
	}
	if second.PreviewText != "Contents" {
		t.Errorf("expected preview from first text element, got %q", second.PreviewText)
	}
}

func TestPreviewTruncation(t *testing.T) {
	long := strings.Repeat("很长的标题", 20) // 100 runes
	a := analyzeFixture(t, Options{PreviewLength: 10},
		testutil.Slide{Layout: "Blank", Shapes: []testutil.Shape{testutil.TextShape("Title", long)}},
	)

	preview := a.Slides[0].PreviewText
	if got := len([]rune(preview)); got != 10 {
		t.Errorf("expected 10-rune preview, got %d runes (%q)", got, preview)
	}
	if !strings.HasPrefix(long, preview) {
		t.Errorf("preview %q is not a prefix of the source text", preview)
	}
}

func TestAnalysisJSONShape(t *testing.T) {
	a := analyzeFixture(t, Options{},
		testutil.Slide{Layout: "Blank", Shapes: []testutil.Shape{testutil.TextShape("Title", "Hi")}},
	)

	data, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	for _, key := range []string{"source", "slide_count", "slide_width_pt", "slide_height_pt", "slides", "slide_types"} {
		if _, ok := doc[key]; !ok {
			t.Errorf("missing top-level key %q", key)
		}
	}

	slides := doc["slides"].([]any)
	slide := slides[0].(map[string]any)
	for _, key := range []string{"index", "type", "layout_name", "text_elements", "shape_count", "preview_text"} {
		if _, ok := slide[key]; !ok {
			t.Errorf("missing slide key %q", key)
		}
	}
}
