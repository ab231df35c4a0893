// Package pptx reads and edits PowerPoint (.pptx) packages in place.
//
// A .pptx file is an OPC container: a zip archive of XML parts tied
// together by relationship files. This package keeps every part as raw
// bytes and performs surgical edits only on the parts the caller
// touches (the presentation part's slide list, relationship files,
// content types, and text runs inside slide parts). Everything else is
// written back byte for byte, so the template's formatting, layouts,
// masters, themes and media survive untouched.
package pptx

// OOXML namespace, relationship type and content type identifiers.
const (
	nsRelationships  = "http://schemas.openxmlformats.org/package/2006/relationships"
	nsContentTypes   = "http://schemas.openxmlformats.org/package/2006/content-types"
	nsPresentationML = "http://schemas.openxmlformats.org/presentationml/2006/main"
	nsDrawingML      = "http://schemas.openxmlformats.org/drawingml/2006/main"
	nsOfficeDocRels  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"

	relTypeOfficeDoc   = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"
	relTypeSlide       = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide"
	relTypeSlideLayout = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideLayout"
	relTypeNotesSlide  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/notesSlide"
)

// defaultPresentationPart is the conventional location of the main
// presentation part, used when the root relationships are absent.
const defaultPresentationPart = "ppt/presentation.xml"
