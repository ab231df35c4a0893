package home

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDir(t *testing.T) {
	root := filepath.Join(t.TempDir(), "deckclone-home")
	d, err := New(root)
	if err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}

	if d.Path() != root {
		t.Errorf("unexpected path %q", d.Path())
	}
	if d.ConfigPath() != filepath.Join(root, ConfigFileName) {
		t.Errorf("unexpected config path %q", d.ConfigPath())
	}
	if d.Exists() {
		t.Error("directory should not exist before EnsureExists")
	}

	if err := d.EnsureExists(); err != nil {
		t.Fatalf("failed to create home directory: %v", err)
	}
	if !d.Exists() {
		t.Error("directory should exist after EnsureExists")
	}
	if d.ConfigExists() {
		t.Error("config should not exist yet")
	}

	if err := os.WriteFile(d.ConfigPath(), []byte("log_level: debug\n"), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	if !d.ConfigExists() {
		t.Error("config should exist after write")
	}
}

func TestNewDefaultsToUserHome(t *testing.T) {
	d, err := New("")
	if err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	if filepath.Base(d.Path()) != DefaultDirName {
		t.Errorf("default home should end in %s, got %q", DefaultDirName, d.Path())
	}
}
