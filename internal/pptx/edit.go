package pptx

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"sort"
)

// edit is a pending byte-range replacement against a part's raw XML.
// Edits are collected while callers mutate the model and applied in a
// single splice pass, so byte offsets recorded at parse time stay valid.
type edit struct {
	start int64
	end   int64
	repl  []byte
}

type editList struct {
	edits []edit
}

// add records a replacement for [start, end). A second edit on the
// exact same span overwrites the first, matching last-write-wins
// semantics for repeated replacements against one run.
func (l *editList) add(start, end int64, repl []byte) {
	for i := range l.edits {
		if l.edits[i].start == start && l.edits[i].end == end {
			l.edits[i].repl = repl
			return
		}
	}
	l.edits = append(l.edits, edit{start: start, end: end, repl: repl})
}

func (l *editList) empty() bool {
	return len(l.edits) == 0
}

// apply splices all recorded edits into raw and clears the list.
func (l *editList) apply(raw []byte) ([]byte, error) {
	if len(l.edits) == 0 {
		return raw, nil
	}
	sorted := make([]edit, len(l.edits))
	copy(sorted, l.edits)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].start < sorted[j].start })

	var buf bytes.Buffer
	var pos int64
	for _, e := range sorted {
		if e.start < pos || e.end > int64(len(raw)) {
			return nil, fmt.Errorf("conflicting edit at byte range [%d,%d)", e.start, e.end)
		}
		buf.Write(raw[pos:e.start])
		buf.Write(e.repl)
		pos = e.end
	}
	buf.Write(raw[pos:])
	l.edits = nil
	return buf.Bytes(), nil
}

// xmlEscape escapes text for embedding in XML character data or
// attribute values, using the standard library's escaper.
func xmlEscape(s string) string {
	var buf bytes.Buffer
	if err := xml.EscapeText(&buf, []byte(s)); err != nil {
		return s
	}
	return buf.String()
}
