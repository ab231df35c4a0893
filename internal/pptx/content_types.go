package pptx

import (
	"encoding/xml"
	"fmt"
	"strings"
)

// contentTypes models [Content_Types].xml, which maps part names and
// extensions to MIME types. Overrides for deleted slide parts must be
// scrubbed or PowerPoint flags the package as corrupt.
type contentTypes struct {
	XMLName   xml.Name          `xml:"Types"`
	Defaults  []contentDefault  `xml:"Default"`
	Overrides []contentOverride `xml:"Override"`
}

type contentDefault struct {
	Extension   string `xml:"Extension,attr"`
	ContentType string `xml:"ContentType,attr"`
}

type contentOverride struct {
	PartName    string `xml:"PartName,attr"`
	ContentType string `xml:"ContentType,attr"`
}

const contentTypesPart = "[Content_Types].xml"

func parseContentTypes(data []byte) (*contentTypes, error) {
	var ct contentTypes
	if err := xml.Unmarshal(data, &ct); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", contentTypesPart, err)
	}
	return &ct, nil
}

func marshalContentTypes(ct *contentTypes) []byte {
	var sb strings.Builder
	sb.WriteString(xml.Header)
	sb.WriteString(`<Types xmlns="` + nsContentTypes + `">`)
	for _, d := range ct.Defaults {
		sb.WriteString(`<Default Extension="` + xmlEscape(d.Extension) +
			`" ContentType="` + xmlEscape(d.ContentType) + `"/>`)
	}
	for _, o := range ct.Overrides {
		sb.WriteString(`<Override PartName="` + xmlEscape(o.PartName) +
			`" ContentType="` + xmlEscape(o.ContentType) + `"/>`)
	}
	sb.WriteString(`</Types>`)
	return []byte(sb.String())
}

// removeOverrides drops overrides whose part name (without the leading
// slash OPC part names carry there) is in the removed set.
func (ct *contentTypes) removeOverrides(removed map[string]bool) {
	kept := ct.Overrides[:0]
	for _, o := range ct.Overrides {
		if removed[strings.TrimPrefix(o.PartName, "/")] {
			continue
		}
		kept = append(kept, o)
	}
	ct.Overrides = kept
}
