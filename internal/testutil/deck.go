// Package testutil builds minimal .pptx fixtures for tests.
package testutil

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Shape describes one text shape on a fixture slide.
type Shape struct {
	Name string
	// Paragraphs holds the shape's text, one inner slice of runs per
	// paragraph.
	Paragraphs [][]string
}

// Slide describes one fixture slide.
type Slide struct {
	// Layout is the slide layout's display name. Slides sharing a
	// layout name share a layout part.
	Layout string
	Shapes []Shape
	// Notes attaches a notes slide part.
	Notes string
}

// TextShape is a convenience constructor for a single-paragraph shape.
func TextShape(name string, runs ...string) Shape {
	return Shape{Name: name, Paragraphs: [][]string{runs}}
}

// WriteDeck writes a minimal but structurally consistent .pptx file to
// a temp directory and returns its path.
func WriteDeck(t *testing.T, slides ...Slide) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "deck.pptx")
	data, err := BuildDeck(slides...)
	if err != nil {
		t.Fatalf("failed to build deck fixture: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("failed to write deck fixture: %v", err)
	}
	return path
}

// BuildDeck assembles the fixture package in memory.
func BuildDeck(slides ...Slide) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	layoutIndex := make(map[string]int) // layout name -> part number
	var layoutNames []string
	for _, s := range slides {
		if _, ok := layoutIndex[s.Layout]; !ok {
			layoutIndex[s.Layout] = len(layoutNames) + 1
			layoutNames = append(layoutNames, s.Layout)
		}
	}

	var overrides strings.Builder
	overrides.WriteString(`<Override PartName="/ppt/presentation.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.presentation.main+xml"/>`)
	for i := range slides {
		fmt.Fprintf(&overrides, `<Override PartName="/ppt/slides/slide%d.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slide+xml"/>`, i+1)
		if slides[i].Notes != "" {
			fmt.Fprintf(&overrides, `<Override PartName="/ppt/notesSlides/notesSlide%d.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.notesSlide+xml"/>`, i+1)
		}
	}
	for i := range layoutNames {
		fmt.Fprintf(&overrides, `<Override PartName="/ppt/slideLayouts/slideLayout%d.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slideLayout+xml"/>`, i+1)
	}

	files := []struct {
		name string
		data string
	}{
		{
			"[Content_Types].xml",
			xml.Header + `<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
				`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
				`<Default Extension="xml" ContentType="application/xml"/>` +
				overrides.String() + `</Types>`,
		},
		{
			"_rels/.rels",
			xml.Header + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
				`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="ppt/presentation.xml"/>` +
				`</Relationships>`,
		},
		{"ppt/presentation.xml", presentationXML(len(slides))},
		{"ppt/_rels/presentation.xml.rels", presentationRels(len(slides))},
	}

	for i, s := range slides {
		n := i + 1
		files = append(files,
			struct{ name, data string }{fmt.Sprintf("ppt/slides/slide%d.xml", n), slideXML(s)},
			struct{ name, data string }{fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", n), slideRels(n, layoutIndex[s.Layout], s.Notes != "")},
		)
		if s.Notes != "" {
			files = append(files, struct{ name, data string }{
				fmt.Sprintf("ppt/notesSlides/notesSlide%d.xml", n), notesXML(s.Notes),
			})
		}
	}
	for i, name := range layoutNames {
		files = append(files, struct{ name, data string }{
			fmt.Sprintf("ppt/slideLayouts/slideLayout%d.xml", i+1), layoutXML(name),
		})
	}

	for _, f := range files {
		fw, err := zw.Create(f.name)
		if err != nil {
			return nil, err
		}
		if _, err := fw.Write([]byte(f.data)); err != nil {
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

const (
	nsA = "http://schemas.openxmlformats.org/drawingml/2006/main"
	nsR = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsP = "http://schemas.openxmlformats.org/presentationml/2006/main"
)

func presentationXML(slideCount int) string {
	var ids strings.Builder
	for i := 0; i < slideCount; i++ {
		fmt.Fprintf(&ids, `<p:sldId id="%d" r:id="rId%d"/>`, 256+i, i+1)
	}
	return xml.Header + fmt.Sprintf(
		`<p:presentation xmlns:a=%q xmlns:r=%q xmlns:p=%q><p:sldIdLst>%s</p:sldIdLst><p:sldSz cx="12192000" cy="6858000"/></p:presentation>`,
		nsA, nsR, nsP, ids.String(),
	)
}

func presentationRels(slideCount int) string {
	var rels strings.Builder
	for i := 0; i < slideCount; i++ {
		fmt.Fprintf(&rels,
			`<Relationship Id="rId%d" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide" Target="slides/slide%d.xml"/>`,
			i+1, i+1)
	}
	return xml.Header + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
		rels.String() + `</Relationships>`
}

func slideXML(s Slide) string {
	var shapes strings.Builder
	id := 2
	for _, sh := range s.Shapes {
		var paras strings.Builder
		for _, para := range sh.Paragraphs {
			paras.WriteString(`<a:p>`)
			for _, run := range para {
				paras.WriteString(`<a:r><a:rPr lang="en-US"/><a:t>` + escape(run) + `</a:t></a:r>`)
			}
			paras.WriteString(`</a:p>`)
		}
		fmt.Fprintf(&shapes,
			`<p:sp><p:nvSpPr><p:cNvPr id="%d" name=%q/><p:cNvSpPr/><p:nvPr/></p:nvSpPr><p:spPr/><p:txBody><a:bodyPr/>%s</p:txBody></p:sp>`,
			id, sh.Name, paras.String(),
		)
		id++
	}
	return xml.Header + fmt.Sprintf(
		`<p:sld xmlns:a=%q xmlns:r=%q xmlns:p=%q><p:cSld><p:spTree><p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr><p:grpSpPr/>%s</p:spTree></p:cSld></p:sld>`,
		nsA, nsR, nsP, shapes.String(),
	)
}

func slideRels(slideNum, layoutNum int, notes bool) string {
	var rels strings.Builder
	fmt.Fprintf(&rels,
		`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideLayout" Target="../slideLayouts/slideLayout%d.xml"/>`,
		layoutNum)
	if notes {
		fmt.Fprintf(&rels,
			`<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/notesSlide" Target="../notesSlides/notesSlide%d.xml"/>`,
			slideNum)
	}
	return xml.Header + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
		rels.String() + `</Relationships>`
}

func layoutXML(name string) string {
	return xml.Header + fmt.Sprintf(
		`<p:sldLayout xmlns:a=%q xmlns:r=%q xmlns:p=%q><p:cSld name=%q><p:spTree><p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr><p:grpSpPr/></p:spTree></p:cSld></p:sldLayout>`,
		nsA, nsR, nsP, name,
	)
}

func notesXML(text string) string {
	return xml.Header + fmt.Sprintf(
		`<p:notes xmlns:a=%q xmlns:r=%q xmlns:p=%q><p:cSld><p:spTree><p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr><p:grpSpPr/><p:sp><p:nvSpPr><p:cNvPr id="2" name="Notes"/><p:cNvSpPr/><p:nvPr/></p:nvSpPr><p:spPr/><p:txBody><a:bodyPr/><a:p><a:r><a:t>%s</a:t></a:r></a:p></p:txBody></p:sp></p:spTree></p:cSld></p:notes>`,
		nsA, nsR, nsP, escape(text),
	)
}

func escape(s string) string {
	var buf bytes.Buffer
	if err := xml.EscapeText(&buf, []byte(s)); err != nil {
		return s
	}
	return buf.String()
}
