package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"dofscope/internal/overlay"
)

// TestLoadedSceneMarkedInExplorer checks the explorer flags the scene
// file that is currently loaded.
func TestLoadedSceneMarkedInExplorer(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "studio.json")
	doc := []byte(`{"cameras": [{"name": "main", "position": [0, 1, 6], "focus_distance": 3}]}`)
	if err := os.WriteFile(path, doc, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	m := New(Options{Style: overlay.DefaultStyle()})
	m.cwd = dir
	m.loadPath(path)
	if m.selPath != path {
		t.Fatalf("selPath = %q, want %q", m.selPath, path)
	}
	if len(m.sc.Cameras) != 1 {
		t.Fatalf("scene cameras = %d, want 1", len(m.sc.Cameras))
	}

	m.refreshDir()
	marked := false
	for _, it := range m.l.Items() {
		if fi, ok := it.(fileItem); ok && fi.path == path {
			marked = strings.HasSuffix(fi.title, "•")
		}
	}
	if !marked {
		t.Error("loaded scene not marked in explorer list")
	}
}
