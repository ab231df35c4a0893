package pptx

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestPackage(t *testing.T) {
	t.Run("round-trips parts in order", func(t *testing.T) {
		pkg := &Package{index: make(map[string]*Part)}
		pkg.SetPart("a.xml", []byte("alpha"))
		pkg.SetPart("b/c.xml", []byte("beta"))
		pkg.SetPart("a.xml", []byte("alpha2")) // replace, not append

		var buf bytes.Buffer
		if err := pkg.WriteTo(&buf); err != nil {
			t.Fatalf("WriteTo failed: %v", err)
		}

		reread, err := ReadPackage(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
		if err != nil {
			t.Fatalf("ReadPackage failed: %v", err)
		}
		names := reread.PartNames()
		if len(names) != 2 || names[0] != "a.xml" || names[1] != "b/c.xml" {
			t.Errorf("unexpected part names: %v", names)
		}
		data, ok := reread.Part("a.xml")
		if !ok || string(data) != "alpha2" {
			t.Errorf("expected replaced contents, got %q", data)
		}
	})

	t.Run("remove part", func(t *testing.T) {
		pkg := &Package{index: make(map[string]*Part)}
		pkg.SetPart("a.xml", []byte("alpha"))
		pkg.SetPart("b.xml", []byte("beta"))

		pkg.RemovePart("a.xml")
		pkg.RemovePart("missing.xml") // no-op

		if pkg.HasPart("a.xml") {
			t.Error("expected a.xml to be removed")
		}
		if names := pkg.PartNames(); len(names) != 1 || names[0] != "b.xml" {
			t.Errorf("unexpected part names: %v", names)
		}
	})

	t.Run("rejects non-zip input", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "not-a-deck.pptx")
		if err := os.WriteFile(path, []byte("plain text"), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := OpenPackage(path); err == nil {
			t.Error("expected an error for non-zip input")
		}
	})
}

func TestPackageSave(t *testing.T) {
	newPkg := func() *Package {
		pkg := &Package{index: make(map[string]*Part)}
		pkg.SetPart("a.xml", []byte("alpha"))
		return pkg
	}

	t.Run("writes a readable archive", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "out.pptx")
		if err := newPkg().Save(path); err != nil {
			t.Fatalf("Save failed: %v", err)
		}

		reread, err := OpenPackage(path)
		if err != nil {
			t.Fatalf("failed to reopen saved package: %v", err)
		}
		if data, ok := reread.Part("a.xml"); !ok || string(data) != "alpha" {
			t.Errorf("unexpected contents: %q", data)
		}
	})

	t.Run("leaves no temp files behind", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "out.pptx")
		if err := newPkg().Save(path); err != nil {
			t.Fatalf("Save failed: %v", err)
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatal(err)
		}
		for _, e := range entries {
			if strings.HasPrefix(e.Name(), ".deckclone-") {
				t.Errorf("temp file left behind: %s", e.Name())
			}
		}
	})

	t.Run("overwrites an existing file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "out.pptx")
		if err := os.WriteFile(path, []byte("stale"), 0o644); err != nil {
			t.Fatal(err)
		}

		if err := newPkg().Save(path); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		if _, err := OpenPackage(path); err != nil {
			t.Errorf("expected saved package to replace stale file: %v", err)
		}
	})
}
