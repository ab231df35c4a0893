package pptx

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Slide is one slide part. The XML is kept raw; parsing only builds an
// index of the text-bearing shapes (byte spans of their <a:t> runs) so
// that text edits can be spliced back without re-serializing the tree.
type Slide struct {
	partName   string
	raw        []byte
	layoutName string
	shapes     []*Shape
	shapeCount int
	edits      editList
}

// Shape is a top-level <p:sp> element in the slide's shape tree.
// Shapes nested inside groups are not indexed; replacement and
// analysis both walk the flat top-level list only.
type Shape struct {
	slide       *Slide
	name        string
	hasText     bool
	runs        []*Run
	paras       [][]*Run
	txBodyClose int64 // byte offset of </p:txBody>, -1 when absent
}

// Run is one independently formatted <a:t> text span inside a shape.
type Run struct {
	slide        *Slide
	text         string
	contentStart int64 // span of the element's character data
	contentEnd   int64
	selfClosing  bool
	elemStart    int64 // full element span, used when selfClosing
	elemEnd      int64
}

// PartName returns the slide's part path inside the package.
func (s *Slide) PartName() string { return s.partName }

// LayoutName returns the name of the slide layout this slide uses, or
// "" when the layout carries no name.
func (s *Slide) LayoutName() string { return s.layoutName }

// Shapes returns the slide's indexed shapes in document order.
func (s *Slide) Shapes() []*Shape { return s.shapes }

// ShapeCount returns the number of top-level shape tree children,
// including pictures, tables and groups that carry no text.
func (s *Slide) ShapeCount() int { return s.shapeCount }

func (s *Slide) modified() bool { return !s.edits.empty() }

// flush applies pending text edits to the raw XML and returns it.
func (s *Slide) flush() ([]byte, error) {
	raw, err := s.edits.apply(s.raw)
	if err != nil {
		return nil, fmt.Errorf("slide %s: %w", s.partName, err)
	}
	s.raw = raw
	return raw, nil
}

// Name returns the shape's name from its non-visual properties.
func (sh *Shape) Name() string { return sh.name }

// HasTextFrame reports whether the shape contains a text body.
func (sh *Shape) HasTextFrame() bool { return sh.hasText }

// Runs returns the shape's text runs in document order.
func (sh *Shape) Runs() []*Run { return sh.runs }

// Text returns the shape's full text: runs concatenated within each
// paragraph, paragraphs joined with newlines.
func (sh *Shape) Text() string {
	parts := make([]string, 0, len(sh.paras))
	for _, para := range sh.paras {
		var sb strings.Builder
		for _, r := range para {
			sb.WriteString(r.text)
		}
		parts = append(parts, sb.String())
	}
	return strings.Join(parts, "\n")
}

// SetText replaces the shape's entire text. The new text lands in the
// first run so its character formatting is kept; remaining runs are
// emptied. A shape with a text body but no runs gets a fresh paragraph.
func (sh *Shape) SetText(text string) {
	if len(sh.runs) > 0 {
		sh.runs[0].SetText(text)
		for _, r := range sh.runs[1:] {
			r.SetText("")
		}
		return
	}
	if sh.txBodyClose >= 0 {
		repl := []byte(`<a:p><a:r><a:t>` + xmlEscape(text) + `</a:t></a:r></a:p>`)
		sh.slide.edits.add(sh.txBodyClose, sh.txBodyClose, repl)
	}
}

// Text returns the run's current text, reflecting prior SetText calls.
func (r *Run) Text() string { return r.text }

// SetText replaces the run's text in place, preserving its formatting.
func (r *Run) SetText(text string) {
	if r.selfClosing {
		repl := []byte(`<a:t>` + xmlEscape(text) + `</a:t>`)
		r.slide.edits.add(r.elemStart, r.elemEnd, repl)
	} else {
		r.slide.edits.add(r.contentStart, r.contentEnd, []byte(xmlEscape(text)))
	}
	r.text = text
}

// shapeTreeChildren are the spTree child element names that count as
// shapes for reporting purposes.
var shapeTreeChildren = map[string]bool{
	"sp":           true,
	"pic":          true,
	"graphicFrame": true,
	"grpSp":        true,
	"cxnSp":        true,
}

// parseSlide indexes a slide part's shapes and run spans.
func parseSlide(partName string, raw []byte) (*Slide, error) {
	s := &Slide{partName: partName, raw: raw}
	dec := xml.NewDecoder(bytes.NewReader(raw))

	var stack []string
	parent := func() string {
		if len(stack) == 0 {
			return ""
		}
		return stack[len(stack)-1]
	}

	var cur *Shape
	var curDepth int
	var inTxBody bool
	var curRun *Run
	var runText strings.Builder

	for {
		tokStart := dec.InputOffset()
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse slide %s: %w", partName, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			local := t.Name.Local
			switch {
			case parent() == "spTree" && shapeTreeChildren[local]:
				s.shapeCount++
				if local == "sp" {
					cur = &Shape{slide: s, txBodyClose: -1}
					curDepth = len(stack)
				}
			case cur != nil && local == "cNvPr" && parent() == "nvSpPr" && cur.name == "":
				for _, attr := range t.Attr {
					if attr.Name.Local == "name" {
						cur.name = attr.Value
						break
					}
				}
			case cur != nil && local == "txBody" && parent() == "sp":
				cur.hasText = true
				inTxBody = true
			case cur != nil && inTxBody && local == "p" && parent() == "txBody":
				cur.paras = append(cur.paras, nil)
			case cur != nil && inTxBody && local == "t" && parent() == "r":
				curRun = &Run{
					slide:        s,
					elemStart:    tokStart,
					contentStart: dec.InputOffset(),
				}
				runText.Reset()
			}
			stack = append(stack, local)

		case xml.EndElement:
			stack = stack[:len(stack)-1]
			switch t.Name.Local {
			case "t":
				if curRun != nil {
					after := dec.InputOffset()
					if after == curRun.contentStart {
						// <a:t/> consumed nothing past the start tag
						curRun.selfClosing = true
						curRun.elemEnd = after
					} else {
						curRun.contentEnd = tokStart
					}
					curRun.text = runText.String()
					if cur != nil {
						cur.runs = append(cur.runs, curRun)
						if n := len(cur.paras); n > 0 {
							cur.paras[n-1] = append(cur.paras[n-1], curRun)
						}
					}
					curRun = nil
				}
			case "txBody":
				if cur != nil && inTxBody && len(stack) == curDepth+1 {
					cur.txBodyClose = tokStart
					inTxBody = false
				}
			case "sp":
				if cur != nil && len(stack) == curDepth {
					s.shapes = append(s.shapes, cur)
					cur = nil
					inTxBody = false
				}
			}

		case xml.CharData:
			if curRun != nil {
				runText.Write(t)
			}
		}
	}

	if cur != nil || curRun != nil {
		return nil, errors.New("failed to parse slide " + partName + ": unbalanced shape tree")
	}
	return s, nil
}

// parseLayoutName extracts the layout name from a slideLayout part's
// <p:cSld name="..."> attribute.
func parseLayoutName(raw []byte) string {
	dec := xml.NewDecoder(bytes.NewReader(raw))
	for {
		tok, err := dec.Token()
		if err != nil {
			return ""
		}
		if se, ok := tok.(xml.StartElement); ok && se.Name.Local == "cSld" {
			for _, attr := range se.Attr {
				if attr.Name.Local == "name" {
					return attr.Value
				}
			}
			return ""
		}
	}
}
