package tui

import "github.com/charmbracelet/lipgloss"

// Styles
var (
	baseFg    = lipgloss.Color("#E6E6E6")
	baseDimFg = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#6B7280"}
	accentFg  = lipgloss.Color("#7C3AED")
	borderCol = lipgloss.Color("#243141")

	appStyle   = lipgloss.NewStyle().Foreground(baseFg)
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(borderCol).Padding(0, 1)
	titleStyle = lipgloss.NewStyle().Foreground(accentFg).Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(baseDimFg)

	// Viewport layer palette: grey scene dressing, faint out-of-focus
	// rays, green focus band, amber 3D cursor.
	layerStyles = map[uint8]lipgloss.Style{
		layerScene:  lipgloss.NewStyle().Foreground(lipgloss.Color("#5B6573")),
		layerDim:    lipgloss.NewStyle().Foreground(lipgloss.Color("#8A8F98")),
		layerMarker: lipgloss.NewStyle().Foreground(lipgloss.Color("#34D399")),
		layerFocus:  lipgloss.NewStyle().Foreground(lipgloss.Color("#22C55E")).Bold(true),
		layerCursor: lipgloss.NewStyle().Foreground(lipgloss.Color("#FFA500")),
	}
)
