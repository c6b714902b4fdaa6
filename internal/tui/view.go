package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	// Layout sizes
	sidebarWidth := 0
	if m.showSidebar {
		sidebarWidth = 28
	}
	headerHeight := 1
	footerHeight := 2
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 4 {
		contentHeight = 4
	}
	contentWidth := max(10, m.width)

	// Update list size with accurate content height when sidebar visible
	if m.showSidebar {
		m.l.SetSize(28-2, contentHeight-2)
	}

	// Header
	header := titleStyle.Render(" dofscope ─ depth of field visualizer ")
	header = lipgloss.NewStyle().Width(contentWidth).Padding(0).Render(header)

	// Sidebar
	var sidebar string
	if m.showSidebar {
		sidebar = lipgloss.NewStyle().Width(sidebarWidth).Render(m.l.View())
	}

	// Viewport
	vpWidth := contentWidth - sidebarWidth - 1
	if vpWidth < 10 {
		vpWidth = 10
	}
	vpHeight := contentHeight
	m.mapW = max(8, vpWidth)
	m.mapH = max(4, vpHeight)

	var vpView string
	if m.showCams {
		// Render the camera property table centered in the viewport area
		colW := 0
		for _, c := range m.tbl.Columns() {
			colW += c.Width + 3
		}
		if colW == 0 {
			colW = min(60, contentWidth-6)
		}
		maxW := min(vpWidth, max(32, colW))
		m.tbl.SetWidth(maxW - 4)
		m.tbl.SetHeight(min(vpHeight-2, 20))
		camsBox := boxStyle.Width(maxW).Render(m.tbl.View())
		vpView = lipgloss.Place(vpWidth, vpHeight, lipgloss.Center, lipgloss.Center, camsBox)
	} else {
		canvas := m.renderViewport(m.mapW, m.mapH)
		vpView = lipgloss.NewStyle().Width(vpWidth).Height(vpHeight).Render(canvas)
	}

	// Body row
	var body string
	if m.showSidebar {
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", vpView)
	} else {
		body = vpView
	}

	// Footer / help
	help := m.renderHelp()
	status := dimStyle.Render(" " + m.status + " ")
	limits := ""
	if m.sc.LimitsValid {
		limits = dimStyle.Render(fmt.Sprintf("  Focus Distance: %.3f  Near Limit: %.3f  Far Limit: %.3f  ",
			m.sc.Limits[0], m.sc.Limits[1], m.sc.Limits[2]))
	}
	left := lipgloss.JoinHorizontal(lipgloss.Bottom, status, help)
	spacerW := max(0, contentWidth-lipgloss.Width(left)-lipgloss.Width(limits))
	right := lipgloss.Place(spacerW+lipgloss.Width(limits), 1, lipgloss.Right, lipgloss.Center, limits)
	footer := lipgloss.NewStyle().Width(contentWidth).Render(lipgloss.JoinHorizontal(lipgloss.Bottom, left, right))

	ui := lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
	return appStyle.Width(contentWidth).Height(m.height).Render(ui)
}

func (m Model) renderHelp() string {
	if !m.helpVisible {
		return ""
	}
	keys := []string{
		"↑↓←→ orbit",
		"+/- dolly",
		"v visualize",
		"f pick focus",
		"m fill",
		"x marker",
		"o overlay",
		"a cameras",
		"s snapshot",
		"Tab scenes",
		"h help",
		"q quit",
	}
	return dimStyle.Render("  " + strings.Join(keys, "  "))
}
