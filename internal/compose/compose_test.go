package compose

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/avacx/deckclone/internal/plan"
	"github.com/avacx/deckclone/internal/pptx"
	"github.com/avacx/deckclone/internal/testutil"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func threeSlideTemplate(t *testing.T) string {
	t.Helper()
	return testutil.WriteDeck(t,
		testutil.Slide{Layout: "Title Slide", Shapes: []testutil.Shape{testutil.TextShape("Title", "Welcome")}},
		testutil.Slide{Layout: "Blank", Shapes: []testutil.Shape{testutil.TextShape("Body", "Hello")}},
		testutil.Slide{Layout: "Blank", Shapes: []testutil.Shape{testutil.TextShape("Closing", "Thank you")}},
	)
}

func create(t *testing.T, template, planJSON string) (*pptx.Presentation, error) {
	t.Helper()
	p, err := plan.Parse([]byte(planJSON))
	if err != nil {
		t.Fatalf("failed to parse plan: %v", err)
	}
	out := filepath.Join(t.TempDir(), "out.pptx")
	if err := New(nil, discard()).Create(template, p, out); err != nil {
		return nil, err
	}
	return pptx.OpenPresentation(out)
}

func slideText(t *testing.T, pres *pptx.Presentation, idx int) string {
	t.Helper()
	slide, err := pres.Slide(idx)
	if err != nil {
		t.Fatalf("failed to read slide %d: %v", idx, err)
	}
	var text string
	for _, sh := range slide.Shapes() {
		text += sh.Text()
	}
	return text
}

func TestCreate(t *testing.T) {
	t.Run("PruneAndReplace", func(t *testing.T) {
		pres, err := create(t, threeSlideTemplate(t), `[
			{"template_slide": 0},
			{"template_slide": 1, "replacements": {"Hello": "World"}}
		]`)
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}
		if pres.SlideCount() != 2 {
			t.Fatalf("expected 2 slides, got %d", pres.SlideCount())
		}
		if got := slideText(t, pres, 0); got != "Welcome" {
			t.Errorf("slide 0 reads %q, want Welcome", got)
		}
		if got := slideText(t, pres, 1); got != "World" {
			t.Errorf("slide 1 reads %q, want World", got)
		}
	})

	t.Run("CategoryResolution", func(t *testing.T) {
		pres, err := create(t, threeSlideTemplate(t), `[
			{"type": "cover"},
			{"type": "ending", "replacements": {"Thank you": "Goodbye"}}
		]`)
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}
		if pres.SlideCount() != 2 {
			t.Fatalf("expected 2 slides, got %d", pres.SlideCount())
		}
		if got := slideText(t, pres, 1); got != "Goodbye" {
			t.Errorf("ending slide reads %q, want Goodbye", got)
		}
	})

	t.Run("UnmatchedCategoryFallsBackToFirstSlide", func(t *testing.T) {
		pres, err := create(t, threeSlideTemplate(t), `[{"type": "toc"}]`)
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}
		if pres.SlideCount() != 1 {
			t.Fatalf("expected 1 slide, got %d", pres.SlideCount())
		}
		if got := slideText(t, pres, 0); got != "Welcome" {
			t.Errorf("fallback slide reads %q, want Welcome", got)
		}
	})

	t.Run("TemplateOrderBeatsPlanOrder", func(t *testing.T) {
		pres, err := create(t, threeSlideTemplate(t), `[
			{"template_slide": 2},
			{"template_slide": 0}
		]`)
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}
		if got := slideText(t, pres, 0); got != "Welcome" {
			t.Errorf("slide 0 reads %q, want Welcome", got)
		}
		if got := slideText(t, pres, 1); got != "Thank you" {
			t.Errorf("slide 1 reads %q, want Thank you", got)
		}
	})

	t.Run("OutOfRangeFailsBeforeWriting", func(t *testing.T) {
		template := threeSlideTemplate(t)
		p, err := plan.Parse([]byte(`[{"template_slide": 7}]`))
		if err != nil {
			t.Fatalf("failed to parse plan: %v", err)
		}
		out := filepath.Join(t.TempDir(), "out.pptx")
		err = New(nil, discard()).Create(template, p, out)
		if !errors.Is(err, pptx.ErrSlideOutOfRange) {
			t.Fatalf("expected ErrSlideOutOfRange, got %v", err)
		}
		if _, statErr := os.Stat(out); !os.IsNotExist(statErr) {
			t.Errorf("output file exists after failed create")
		}
	})
}

func TestApplyReplacements(t *testing.T) {
	open := func(t *testing.T, shapes ...testutil.Shape) *pptx.Slide {
		t.Helper()
		path := testutil.WriteDeck(t, testutil.Slide{Layout: "Blank", Shapes: shapes})
		pres, err := pptx.OpenPresentation(path)
		if err != nil {
			t.Fatalf("failed to open fixture: %v", err)
		}
		slide, err := pres.Slide(0)
		if err != nil {
			t.Fatalf("failed to read slide: %v", err)
		}
		return slide
	}

	repl := func(t *testing.T, pairs ...string) plan.Replacements {
		t.Helper()
		r, err := plan.NewReplacements(pairs...)
		if err != nil {
			t.Fatalf("bad replacement pairs: %v", err)
		}
		return r
	}

	t.Run("ShapeKeyTargetsOnlyNamedShape", func(t *testing.T) {
		slide := open(t,
			testutil.TextShape("Title", "Old Title"),
			testutil.TextShape("Subtitle", "Old Title"),
		)
		ApplyReplacements(slide, repl(t, "shape:Title", "New Title"))

		shapes := slide.Shapes()
		if got := shapes[0].Text(); got != "New Title" {
			t.Errorf("Title reads %q, want New Title", got)
		}
		if got := shapes[1].Text(); got != "Old Title" {
			t.Errorf("Subtitle reads %q, want Old Title (untouched)", got)
		}
	})

	t.Run("ShapeKeyBeatsFullTextMatch", func(t *testing.T) {
		slide := open(t, testutil.TextShape("Title", "Welcome"))
		ApplyReplacements(slide, repl(t,
			"shape:Title", "by name",
			"Welcome", "by text",
		))
		if got := slide.Shapes()[0].Text(); got != "by name" {
			t.Errorf("shape reads %q, want by name", got)
		}
	})

	t.Run("FullTextMatchBeatsPartial", func(t *testing.T) {
		slide := open(t, testutil.TextShape("Body", "Annual Report"))
		ApplyReplacements(slide, repl(t,
			"Report", "Review",
			"Annual Report", "Q3 Summary",
		))
		if got := slide.Shapes()[0].Text(); got != "Q3 Summary" {
			t.Errorf("shape reads %q, want Q3 Summary", got)
		}
	})

	t.Run("PartialReplacementsApplyInKeyOrder", func(t *testing.T) {
		// "A"->"B" runs first, so "B"->"C" also rewrites the text the
		// first key introduced.
		slide := open(t, testutil.TextShape("Body", "A and B"))
		ApplyReplacements(slide, repl(t, "A", "B", "B", "C"))
		if got := slide.Shapes()[0].Text(); got != "C and C" {
			t.Errorf("shape reads %q, want C and C", got)
		}
	})

	t.Run("PartialReplacementsPerRun", func(t *testing.T) {
		slide := open(t, testutil.Shape{
			Name:       "Body",
			Paragraphs: [][]string{{"Hello ", "world"}},
		})
		ApplyReplacements(slide, repl(t, "world", "there", "Hello", "Hi"))
		if got := slide.Shapes()[0].Text(); got != "Hi there" {
			t.Errorf("shape reads %q, want Hi there", got)
		}
	})

	t.Run("ShapeKeysSkippedInPartialPass", func(t *testing.T) {
		slide := open(t, testutil.TextShape("Body", "see shape:Title here"))
		ApplyReplacements(slide, repl(t, "shape:Title", "nope"))
		if got := slide.Shapes()[0].Text(); got != "see shape:Title here" {
			t.Errorf("shape reads %q, want unchanged text", got)
		}
	})

	t.Run("EmptyDictionaryLeavesSlideAlone", func(t *testing.T) {
		slide := open(t, testutil.TextShape("Body", "Hello"))
		ApplyReplacements(slide, plan.Replacements{})
		if got := slide.Shapes()[0].Text(); got != "Hello" {
			t.Errorf("shape reads %q, want Hello", got)
		}
	})
}
