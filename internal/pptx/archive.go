package pptx

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Zip extraction limits. A legitimate deck never approaches these; they
// guard against zip bombs in untrusted templates.
const (
	maxZipEntrySize = 50 << 20  // 50 MB per part
	maxZipTotalSize = 200 << 20 // 200 MB per package
	maxZipEntries   = 10000
)

// Part is a single file inside the OPC container.
type Part struct {
	Name string
	Data []byte
}

// Package is an OPC container held fully in memory. Part order from the
// source archive is preserved on write.
type Package struct {
	parts []*Part
	index map[string]*Part
}

// OpenPackage reads a .pptx package from disk into memory.
func OpenPackage(path string) (*Package, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open package: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat package: %w", err)
	}
	return ReadPackage(f, info.Size())
}

// ReadPackage reads a package from an io.ReaderAt with the given size.
func ReadPackage(r io.ReaderAt, size int64) (*Package, error) {
	if size <= 0 {
		return nil, fmt.Errorf("invalid package size: %d", size)
	}
	if size > int64(maxZipTotalSize) {
		return nil, fmt.Errorf("package size %d exceeds maximum allowed (%d bytes)", size, maxZipTotalSize)
	}

	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("failed to open zip: %w", err)
	}
	if len(zr.File) > maxZipEntries {
		return nil, fmt.Errorf("zip archive contains too many entries (%d > %d)", len(zr.File), maxZipEntries)
	}

	pkg := &Package{index: make(map[string]*Part, len(zr.File))}
	for _, zf := range zr.File {
		if zf.UncompressedSize64 > maxZipEntrySize {
			return nil, fmt.Errorf("part %s exceeds maximum allowed size (%d bytes)", zf.Name, maxZipEntrySize)
		}
		rc, err := zf.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open %s in zip: %w", zf.Name, err)
		}
		data, err := io.ReadAll(io.LimitReader(rc, int64(maxZipEntrySize)+1))
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read %s from zip: %w", zf.Name, err)
		}
		if int64(len(data)) > int64(maxZipEntrySize) {
			return nil, fmt.Errorf("part %s actual size exceeds maximum allowed size", zf.Name)
		}
		pkg.append(&Part{Name: zf.Name, Data: data})
	}
	return pkg, nil
}

func (p *Package) append(part *Part) {
	p.parts = append(p.parts, part)
	p.index[part.Name] = part
}

// Part returns the raw bytes of the named part.
func (p *Package) Part(name string) ([]byte, bool) {
	part, ok := p.index[name]
	if !ok {
		return nil, false
	}
	return part.Data, true
}

// HasPart reports whether the named part exists.
func (p *Package) HasPart(name string) bool {
	_, ok := p.index[name]
	return ok
}

// SetPart replaces the named part's contents, appending it if absent.
func (p *Package) SetPart(name string, data []byte) {
	if part, ok := p.index[name]; ok {
		part.Data = data
		return
	}
	p.append(&Part{Name: name, Data: data})
}

// RemovePart deletes the named part. Removing an absent part is a no-op.
func (p *Package) RemovePart(name string) {
	part, ok := p.index[name]
	if !ok {
		return
	}
	delete(p.index, name)
	for i, candidate := range p.parts {
		if candidate == part {
			p.parts = append(p.parts[:i], p.parts[i+1:]...)
			break
		}
	}
}

// PartNames returns all part names in archive order.
func (p *Package) PartNames() []string {
	names := make([]string, len(p.parts))
	for i, part := range p.parts {
		names[i] = part.Name
	}
	return names
}

// WriteTo writes the package as a zip archive.
func (p *Package) WriteTo(w io.Writer) error {
	zw := zip.NewWriter(w)
	for _, part := range p.parts {
		fw, err := zw.Create(part.Name)
		if err != nil {
			return fmt.Errorf("failed to create zip entry %s: %w", part.Name, err)
		}
		if _, err := fw.Write(part.Data); err != nil {
			return fmt.Errorf("failed to write zip entry %s: %w", part.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finalize zip: %w", err)
	}
	return nil
}

// Save writes the package to path. The archive is assembled in a
// temporary file next to the target and renamed into place only after
// a complete write, so a failure never leaves a truncated output file.
func (p *Package) Save(path string) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	tmp, err := os.CreateTemp(dir, ".deckclone-*.pptx")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	writeErr := p.WriteTo(tmp)
	closeErr := tmp.Close()
	if writeErr != nil || closeErr != nil {
		os.Remove(tmpName)
		if writeErr != nil {
			return writeErr
		}
		return closeErr
	}

	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to set output permissions: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to move output into place: %w", err)
	}
	return nil
}
