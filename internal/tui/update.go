package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-gl/mathgl/mgl64"

	"dofscope/internal/overlay"
	"dofscope/internal/snapshot"
)

// cursorStep is the 3D cursor increment per keypress while picking.
const cursorStep = 0.1

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.showSidebar {
			m.l.SetSize(28-2, m.height-1-2) // provisional; refined in View
		}
	case tea.KeyMsg:
		// If list is visible and filtering, send keys to list and ignore global commands
		if m.showSidebar && m.l.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
		if sess := m.activeSession(); sess != nil && sess.Mode() == overlay.Picking {
			if handled, mm := m.updatePicking(msg, sess); handled {
				return mm, nil
			}
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "v":
			m.toggleVisualize()
		case "f":
			m.startPicking()
		case "esc":
			if m.showCams {
				m.showCams = false
				break
			}
			if m.reg.Active() {
				m.reg.CancelAll()
				m.status = "overlay cancelled"
			}
		case "o":
			m.style.Overlay = !m.style.Overlay
			m.status = fmt.Sprintf("overlay on top: %v", m.style.Overlay)
		case "m":
			m.style.FillMarkers = !m.style.FillMarkers
			m.status = fmt.Sprintf("filled markers: %v", m.style.FillMarkers)
		case "x":
			m.style.DrawFocusMarker = !m.style.DrawFocusMarker
			m.status = fmt.Sprintf("focus marker: %v", m.style.DrawFocusMarker)
		case "+", "=":
			if m.dist > 1 {
				m.dist /= 1.2
				m.status = fmt.Sprintf("distance: %.1f", m.dist)
			}
		case "-", "_":
			if m.dist < 200 {
				m.dist *= 1.2
				m.status = fmt.Sprintf("distance: %.1f", m.dist)
			}
		case "tab":
			m.showSidebar = !m.showSidebar
			if m.showSidebar {
				m.refreshDir()
				m.l.SetSize(28-2, m.height-1-2)
			}
		case "a":
			m.showCams = !m.showCams
			if m.showCams {
				m.refreshCameraTable()
			}
		case "s":
			m.writeSnapshot()
		case "h":
			m.helpVisible = !m.helpVisible
		case "enter":
			if m.showSidebar {
				if it, ok := m.l.SelectedItem().(fileItem); ok {
					m.loadPath(it.path)
				}
			}
		case "up":
			if m.pitch < 1.45 {
				m.pitch += 0.08
			}
		case "down":
			if m.pitch > -1.45 {
				m.pitch -= 0.08
			}
		case "left":
			m.yaw -= 0.1
		case "right":
			m.yaw += 0.1
		}
	case tea.MouseMsg:
		// Right mouse cancels any running overlay session, like the
		// original modal operators.
		if msg.Button == tea.MouseButtonRight && msg.Action == tea.MouseActionPress {
			if m.reg.Active() {
				m.reg.CancelAll()
				m.status = "overlay cancelled"
			}
		}
	}
	// Pass messages to list when visible
	if m.showSidebar {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	if m.showCams {
		var cmd tea.Cmd
		m.tbl, cmd = m.tbl.Update(msg)
		return m, cmd
	}
	return m, nil
}

// updatePicking consumes keys while a focus pick is running. Returns
// handled=false for keys that should fall through to global handling.
func (m Model) updatePicking(msg tea.KeyMsg, sess *overlay.Session) (bool, Model) {
	switch msg.String() {
	case "esc":
		sess.Cancel()
		m.status = "focus picking cancelled"
		return true, m
	case "enter":
		// Pointer release: commit the pick as a scalar focus distance.
		sess.PointerRelease()
		m.commitPick()
		return true, m
	case "left":
		m.cursor[0] -= cursorStep
	case "right":
		m.cursor[0] += cursorStep
	case "up":
		m.cursor[2] -= cursorStep
	case "down":
		m.cursor[2] += cursorStep
	case "pgup", "u":
		m.cursor[1] += cursorStep
	case "pgdown", "d":
		m.cursor[1] -= cursorStep
	default:
		return false, m
	}
	m.status = fmt.Sprintf("cursor: (%.2f, %.2f, %.2f)  enter to set focus, esc to cancel",
		m.cursor.X(), m.cursor.Y(), m.cursor.Z())
	return true, m
}

func (m *Model) toggleVisualize() {
	sess := m.activeSession()
	if sess == nil {
		m.status = "no active camera"
		return
	}
	switch sess.Mode() {
	case overlay.Visualizing:
		sess.Cancel()
		m.status = "visualization stopped"
	default:
		if err := sess.Start(overlay.Visualizing); err != nil {
			m.status = "cannot visualize: " + err.Error()
			return
		}
		m.status = "visualizing depth of field"
	}
}

func (m *Model) startPicking() {
	cam, ok := m.sc.ActiveCamera()
	if !ok {
		m.status = "no active camera"
		return
	}
	if cam.FocusTarget != "" {
		m.status = fmt.Sprintf("focus driven by %q; clear the target to pick", cam.FocusTarget)
		return
	}
	sess := m.reg.Session(cam.Name)
	if err := sess.Start(overlay.Picking); err != nil {
		m.status = "cannot pick: " + err.Error()
		return
	}
	m.cursor = mgl64.Vec3{m.sc.Cursor[0], m.sc.Cursor[1], m.sc.Cursor[2]}
	m.status = "picking: arrows move cursor, u/d height, enter to set focus"
}

// commitPick resolves the 3D cursor onto the camera's view axis and
// stores the result as the camera's focus distance.
func (m *Model) commitPick() {
	cam, ok := m.sc.ActiveCamera()
	if !ok {
		m.status = "no active camera"
		return
	}
	d, err := overlay.ResolveFocusDistance(cam.Pose(), cam.Clip[0], overlay.TargetFocus(m.cursor))
	if err != nil {
		m.status = "focus pick failed: " + err.Error()
		return
	}
	cam.FocusDistance = d
	m.sc.Cursor = [3]float64{m.cursor.X(), m.cursor.Y(), m.cursor.Z()}
	m.status = fmt.Sprintf("focus distance set to %.3f", d)
}

func (m *Model) writeSnapshot() {
	res, err := m.sc.BuildOverlay(m.style)
	if err != nil {
		m.status = "snapshot failed: " + err.Error()
		return
	}
	if len(res.Primitives) == 0 {
		m.status = "nothing to snapshot: no active camera"
		return
	}
	dir := m.snapshot
	if dir == "" {
		dir = m.cwd
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.status = "snapshot failed: " + err.Error()
		return
	}
	opts := snapshot.DefaultOptions()
	opts.Eye = m.orbitEye()
	opts.Center = m.orbitCenter()

	path := filepath.Join(dir, time.Now().Format("dof-20060102-150405.png"))
	if err := snapshot.WritePNG(path, res.Primitives, opts); err != nil {
		m.status = "snapshot failed: " + err.Error()
		return
	}
	m.status = "snapshot written: " + path
}
