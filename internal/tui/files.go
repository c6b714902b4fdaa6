package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	list "github.com/charmbracelet/bubbles/list"

	"dofscope/internal/overlay"
	"dofscope/internal/scene"
)

type fileItem struct {
	title, desc string
	path        string
}

func (f fileItem) Title() string       { return f.title }
func (f fileItem) Description() string { return f.desc }
func (f fileItem) FilterValue() string { return f.title }

func (m *Model) refreshDir() {
	entries, err := os.ReadDir(m.cwd)
	if err != nil {
		m.status = "read dir error: " + err.Error()
		return
	}
	var items []list.Item
	for _, e := range entries {
		name := e.Name()
		p := filepath.Join(m.cwd, name)
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(name))
		if ext == ".json" || ext == ".dofscene" {
			title := name
			if p == m.selPath {
				title = name + " •"
			}
			items = append(items, fileItem{title: title, desc: ext, path: p})
		}
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].(fileItem).Title() < items[j].(fileItem).Title() })
	m.l.SetItems(items)
	if len(items) == 0 {
		m.status = "no scene files in current directory"
	}
}

// loadPath loads a scene document, replacing the current scene and
// dropping any overlay sessions bound to the old cameras.
func (m *Model) loadPath(p string) {
	sc, err := scene.Load(p)
	if err != nil {
		m.status = "load error: " + err.Error()
		return
	}
	m.selPath = p
	m.sc = sc
	m.reg = overlay.NewRegistry()
	if m.showSidebar {
		m.refreshDir()
	}
	m.status = "loaded: " + filepath.Base(p) +
		fmt.Sprintf("  cameras=%d objects=%d", len(sc.Cameras), len(sc.Objects))
	if m.showCams {
		m.refreshCameraTable()
	}
}
