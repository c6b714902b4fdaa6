// Package tui is the interactive host around the DoF core: a bubbletea
// event loop driving an orbiting braille viewport, focus picking, a
// scene file explorer, and a camera property table.
package tui

import (
	"os"

	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-gl/mathgl/mgl64"

	"dofscope/internal/overlay"
	"dofscope/internal/scene"
)

// Options are the host-level knobs passed down from the command line
// and environment.
type Options struct {
	Style       overlay.Style
	SnapshotDir string
}

type Model struct {
	width  int
	height int

	showSidebar bool
	helpVisible bool

	// Orbit viewpoint around the scene.
	yaw   float64 // radians
	pitch float64
	dist  float64

	status string

	// File explorer
	cwd     string
	l       list.Model
	selPath string // loaded scene, marked in the explorer

	// Scene and overlay state
	sc       *scene.Scene
	reg      *overlay.Registry
	style    overlay.Style
	cursor   mgl64.Vec3 // 3D cursor while picking
	snapshot string     // snapshot output directory

	// last rendered viewport size
	mapW int
	mapH int

	// camera property table
	showCams bool
	tbl      table.Model
}

func New(opts Options) Model {
	m := Model{
		helpVisible: true,
		yaw:         0.6,
		pitch:       0.35,
		dist:        14,
		status:      "dofscope ready",
		sc:          scene.Default(),
		reg:         overlay.NewRegistry(),
		style:       opts.Style,
		snapshot:    opts.SnapshotDir,
	}
	m.cwd, _ = os.Getwd()
	// list setup
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Scenes"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)
	// camera table setup (columns fixed, rows per scene)
	m.tbl = table.New(table.WithFocused(true))
	m.tbl.SetHeight(12)
	m.refreshDir()
	return m
}

// NewWithPath preloads a scene file at launch.
func NewWithPath(path string, opts Options) Model {
	m := New(opts)
	m.loadPath(path)
	return m
}

// activeSession returns the overlay session of the scene's active
// camera, or nil when no camera qualifies.
func (m *Model) activeSession() *overlay.Session {
	cam, ok := m.sc.ActiveCamera()
	if !ok {
		return nil
	}
	return m.reg.Session(cam.Name)
}

func (m Model) Init() tea.Cmd { return nil }
