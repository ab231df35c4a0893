package pptx

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// ErrPartNotFound indicates a package part referenced by a relationship
// or required by the OPC structure is missing.
var ErrPartNotFound = errors.New("part not found in package")

// ErrSlideOutOfRange indicates a slide index outside the presentation.
var ErrSlideOutOfRange = errors.New("slide index out of range")

// Presentation wraps a Package with a parsed view of the slide list.
// Structural edits (slide removal) and per-slide text edits are both
// deferred splices against the original bytes, applied on save.
type Presentation struct {
	pkg      *Package
	partName string
	raw      []byte
	rels     []Relationship
	sldIDs   []slideID
	slides   []*Slide
	edits    editList

	widthEMU  int64
	heightEMU int64
}

// slideID is one <p:sldId> entry: its relationship ID and the byte span
// of the whole element inside presentation.xml.
type slideID struct {
	relID string
	start int64
	end   int64
}

// OpenPresentation opens a .pptx file and parses its slide list.
func OpenPresentation(path string) (*Presentation, error) {
	pkg, err := OpenPackage(path)
	if err != nil {
		return nil, err
	}
	return NewPresentation(pkg)
}

// NewPresentation parses an already loaded package.
func NewPresentation(pkg *Package) (*Presentation, error) {
	partName := defaultPresentationPart
	if data, ok := pkg.Part("_rels/.rels"); ok {
		if rootRels, err := parseRelationships(data); err == nil {
			for _, rel := range rootRels {
				if rel.Type == relTypeOfficeDoc {
					partName = resolveTarget("", rel.Target)
					break
				}
			}
		}
	}

	raw, ok := pkg.Part(partName)
	if !ok {
		return nil, fmt.Errorf("%s: %w", partName, ErrPartNotFound)
	}

	p := &Presentation{pkg: pkg, partName: partName, raw: raw}
	if err := p.parseSlideList(); err != nil {
		return nil, err
	}

	relsData, ok := pkg.Part(relsPathFor(partName))
	if !ok {
		return nil, fmt.Errorf("%s: %w", relsPathFor(partName), ErrPartNotFound)
	}
	rels, err := parseRelationships(relsData)
	if err != nil {
		return nil, err
	}
	p.rels = rels

	layoutNames := make(map[string]string)
	for _, sid := range p.sldIDs {
		target := ""
		for _, rel := range p.rels {
			if rel.ID == sid.relID {
				target = rel.Target
				break
			}
		}
		if target == "" {
			return nil, fmt.Errorf("slide relationship %s not declared in %s", sid.relID, relsPathFor(partName))
		}
		slidePart := resolveTarget(partName, target)
		data, ok := pkg.Part(slidePart)
		if !ok {
			return nil, fmt.Errorf("%s: %w", slidePart, ErrPartNotFound)
		}
		slide, err := parseSlide(slidePart, data)
		if err != nil {
			return nil, err
		}
		slide.layoutName = p.layoutNameFor(slidePart, layoutNames)
		p.slides = append(p.slides, slide)
	}

	return p, nil
}

// parseSlideList extracts sldId spans and the slide size from the
// presentation part.
func (p *Presentation) parseSlideList() error {
	dec := xml.NewDecoder(bytes.NewReader(p.raw))
	for {
		tokStart := dec.InputOffset()
		tok, err := dec.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to parse %s: %w", p.partName, err)
		}

		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		switch se.Name.Local {
		case "sldId":
			sid := slideID{start: tokStart}
			for _, attr := range se.Attr {
				if attr.Name.Local == "id" && attr.Name.Space == nsOfficeDocRels {
					sid.relID = attr.Value
				}
			}
			if err := dec.Skip(); err != nil {
				return fmt.Errorf("failed to parse %s: %w", p.partName, err)
			}
			sid.end = dec.InputOffset()
			if sid.relID == "" {
				return fmt.Errorf("sldId entry %d in %s has no relationship id", len(p.sldIDs), p.partName)
			}
			p.sldIDs = append(p.sldIDs, sid)
		case "sldSz":
			for _, attr := range se.Attr {
				switch attr.Name.Local {
				case "cx":
					if v, err := strconv.ParseInt(attr.Value, 10, 64); err == nil {
						p.widthEMU = v
					}
				case "cy":
					if v, err := strconv.ParseInt(attr.Value, 10, 64); err == nil {
						p.heightEMU = v
					}
				}
			}
		}
	}
}

// layoutNameFor resolves a slide part's layout relationship and returns
// the layout's display name. Lookups are cached per layout part.
func (p *Presentation) layoutNameFor(slidePart string, cache map[string]string) string {
	relsData, ok := p.pkg.Part(relsPathFor(slidePart))
	if !ok {
		return ""
	}
	rels, err := parseRelationships(relsData)
	if err != nil {
		return ""
	}
	for _, rel := range rels {
		if rel.Type != relTypeSlideLayout {
			continue
		}
		layoutPart := resolveTarget(slidePart, rel.Target)
		if name, hit := cache[layoutPart]; hit {
			return name
		}
		data, ok := p.pkg.Part(layoutPart)
		if !ok {
			return ""
		}
		name := parseLayoutName(data)
		cache[layoutPart] = name
		return name
	}
	return ""
}

// SlideCount returns the number of slides.
func (p *Presentation) SlideCount() int { return len(p.slides) }

// Slides returns all slides in presentation order.
func (p *Presentation) Slides() []*Slide { return p.slides }

// Slide returns the slide at the given index.
func (p *Presentation) Slide(i int) (*Slide, error) {
	if i < 0 || i >= len(p.slides) {
		return nil, fmt.Errorf("slide %d of %d: %w", i, len(p.slides), ErrSlideOutOfRange)
	}
	return p.slides[i], nil
}

// SlideSize returns the slide dimensions in EMU.
func (p *Presentation) SlideSize() (width, height int64) {
	return p.widthEMU, p.heightEMU
}

// Prune deletes every slide whose index is not in keep, working in
// descending order so earlier byte spans stay valid, and returns the
// mapping from original slide index to post-deletion index.
func (p *Presentation) Prune(keep map[int]bool) (map[int]int, error) {
	mapping := make(map[int]int)
	next := 0
	for old := 0; old < len(p.slides); old++ {
		if keep[old] {
			mapping[old] = next
			next++
		}
	}

	removedParts := make(map[string]bool)
	for i := len(p.slides) - 1; i >= 0; i-- {
		if !keep[i] {
			p.removeSlideAt(i, removedParts)
		}
	}
	if len(removedParts) == 0 {
		return mapping, nil
	}

	raw, err := p.edits.apply(p.raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p.partName, err)
	}
	p.raw = raw
	p.pkg.SetPart(p.partName, raw)
	p.pkg.SetPart(relsPathFor(p.partName), marshalRelationships(p.rels))

	if data, ok := p.pkg.Part(contentTypesPart); ok {
		ct, err := parseContentTypes(data)
		if err != nil {
			return nil, err
		}
		ct.removeOverrides(removedParts)
		p.pkg.SetPart(contentTypesPart, marshalContentTypes(ct))
	}

	return mapping, nil
}

// removeSlideAt detaches slide i: its sldId entry, its relationship,
// its part, its relationship part, and any notes slide only it uses.
func (p *Presentation) removeSlideAt(i int, removed map[string]bool) {
	sid := p.sldIDs[i]
	slidePart := p.slides[i].partName

	p.edits.add(sid.start, sid.end, nil)

	kept := p.rels[:0]
	for _, rel := range p.rels {
		if rel.ID != sid.relID {
			kept = append(kept, rel)
		}
	}
	p.rels = kept

	slideRelsPath := relsPathFor(slidePart)
	if data, ok := p.pkg.Part(slideRelsPath); ok {
		if slideRels, err := parseRelationships(data); err == nil {
			for _, rel := range slideRels {
				if rel.Type != relTypeNotesSlide || rel.TargetMode == "External" {
					continue
				}
				notesPart := resolveTarget(slidePart, rel.Target)
				p.dropPart(notesPart, removed)
				p.dropPart(relsPathFor(notesPart), removed)
			}
		}
		p.dropPart(slideRelsPath, removed)
	}
	p.dropPart(slidePart, removed)

	p.sldIDs = append(p.sldIDs[:i], p.sldIDs[i+1:]...)
	p.slides = append(p.slides[:i], p.slides[i+1:]...)
}

func (p *Presentation) dropPart(name string, removed map[string]bool) {
	if !p.pkg.HasPart(name) {
		return
	}
	p.pkg.RemovePart(name)
	removed[name] = true
}

// flushSlides writes pending per-slide text edits into the package.
func (p *Presentation) flushSlides() error {
	for _, slide := range p.slides {
		if !slide.modified() {
			continue
		}
		raw, err := slide.flush()
		if err != nil {
			return err
		}
		p.pkg.SetPart(slide.partName, raw)
	}
	return nil
}

// Save applies all pending edits and writes the package to path.
// The write is atomic: the target file appears only on success.
func (p *Presentation) Save(path string) error {
	if err := p.flushSlides(); err != nil {
		return err
	}
	return p.pkg.Save(path)
}

// WriteTo applies all pending edits and writes the package to w.
func (p *Presentation) WriteTo(w io.Writer) error {
	if err := p.flushSlides(); err != nil {
		return err
	}
	return p.pkg.WriteTo(w)
}
