// Copyright Immersive Collective, 2026. All rights reserved.

package scan

import (
	"os"
	"path/filepath"
	"testing"
)

// writeFiles creates empty files with the given names in a temp dir.
func writeFiles(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestListImages_FiltersAndSorts(t *testing.T) {
	dir := writeFiles(t,
		"b.png", "a.PNG", "c.jpeg", "notes.txt", "clip.mov",
		".hidden.png", "d.HEIC", "e.tif",
	)
	if err := os.Mkdir(filepath.Join(dir, "sub.png"), 0o755); err != nil {
		t.Fatal(err)
	}

	paths, err := ListImages(dir)
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"a.PNG", "b.png", "c.jpeg", "d.HEIC", "e.tif"}
	if len(paths) != len(want) {
		t.Fatalf("got %d paths, want %d: %v", len(paths), len(want), paths)
	}
	for i, w := range want {
		if filepath.Base(paths[i]) != w {
			t.Errorf("paths[%d] = %s, want %s", i, filepath.Base(paths[i]), w)
		}
	}
}

func TestListImages_ByteWiseOrder(t *testing.T) {
	// Uppercase sorts before lowercase byte-wise; the order must not be
	// case-folded.
	dir := writeFiles(t, "b.png", "A.png", "a.png", "B.png")

	paths, err := ListImages(dir)
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"A.png", "B.png", "a.png", "b.png"}
	for i, w := range want {
		if filepath.Base(paths[i]) != w {
			t.Errorf("paths[%d] = %s, want %s", i, filepath.Base(paths[i]), w)
		}
	}
}

func TestListImages_MissingDir(t *testing.T) {
	_, err := ListImages(filepath.Join(t.TempDir(), "nope"))
	if err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestListImages_EmptyDir(t *testing.T) {
	paths, err := ListImages(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) != 0 {
		t.Errorf("expected no paths, got %v", paths)
	}
}

func TestSupported(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"shot.png", true},
		{"shot.JPG", true},
		{"shot.jpeg", true},
		{"shot.tiff", true},
		{"shot.heic", true},
		{"shot.gif", true},
		{"shot.bmp", true},
		{"shot.mov", false},
		{"shot.pdf", false},
		{"shot", false},
	}
	for _, tt := range tests {
		if got := Supported(tt.name); got != tt.want {
			t.Errorf("Supported(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
