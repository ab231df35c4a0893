package pptx

import (
	"encoding/xml"
	"fmt"
	"path"
	"strings"
)

// Relationship is one entry in an OPC relationships part.
type Relationship struct {
	ID         string `xml:"Id,attr"`
	Type       string `xml:"Type,attr"`
	Target     string `xml:"Target,attr"`
	TargetMode string `xml:"TargetMode,attr"`
}

type xmlRelationships struct {
	XMLName       xml.Name       `xml:"Relationships"`
	Relationships []Relationship `xml:"Relationship"`
}

func parseRelationships(data []byte) ([]Relationship, error) {
	var rels xmlRelationships
	if err := xml.Unmarshal(data, &rels); err != nil {
		return nil, fmt.Errorf("failed to parse relationships: %w", err)
	}
	return rels.Relationships, nil
}

// marshalRelationships serializes a relationships part. The format is a
// flat single-namespace document, so it is regenerated wholesale rather
// than spliced.
func marshalRelationships(rels []Relationship) []byte {
	var sb strings.Builder
	sb.WriteString(xml.Header)
	sb.WriteString(`<Relationships xmlns="` + nsRelationships + `">`)
	for _, rel := range rels {
		sb.WriteString(`<Relationship Id="` + xmlEscape(rel.ID) +
			`" Type="` + xmlEscape(rel.Type) +
			`" Target="` + xmlEscape(rel.Target) + `"`)
		if rel.TargetMode != "" {
			sb.WriteString(` TargetMode="` + xmlEscape(rel.TargetMode) + `"`)
		}
		sb.WriteString(`/>`)
	}
	sb.WriteString(`</Relationships>`)
	return []byte(sb.String())
}

// relsPathFor returns the relationships part path of a given part,
// e.g. ppt/slides/slide1.xml -> ppt/slides/_rels/slide1.xml.rels.
func relsPathFor(partName string) string {
	dir, base := path.Split(partName)
	return dir + "_rels/" + base + ".rels"
}

// resolveTarget resolves a relationship target against the part that
// declares it. Internal targets are relative to the source part's
// directory unless they start with "/".
func resolveTarget(sourcePart, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	return path.Clean(path.Join(path.Dir(sourcePart), target))
}
