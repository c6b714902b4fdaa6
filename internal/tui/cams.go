package tui

import (
	"fmt"

	table "github.com/charmbracelet/bubbles/table"
)

// refreshCameraTable rebuilds the property table from the scene's
// cameras.
func (m *Model) refreshCameraTable() {
	cols := []table.Column{
		{Title: "camera", Width: 14},
		{Title: "lens", Width: 8},
		{Title: "aperture", Width: 10},
		{Title: "sensor", Width: 12},
		{Title: "clip", Width: 12},
		{Title: "focus", Width: 16},
	}
	rows := make([]table.Row, 0, len(m.sc.Cameras))
	for i := range m.sc.Cameras {
		c := &m.sc.Cameras[i]
		ap := fmt.Sprintf("f/%.1f", c.Aperture.FStop)
		if c.Aperture.Type == "RADIUS" {
			ap = fmt.Sprintf("r=%.4f", c.Aperture.Radius)
		}
		focus := fmt.Sprintf("%.3f", c.FocusDistance)
		if c.FocusTarget != "" {
			focus = "→ " + c.FocusTarget
		}
		rows = append(rows, table.Row{
			c.Name,
			fmt.Sprintf("%.0fmm", c.LensMm),
			ap,
			fmt.Sprintf("%.0fx%.0fmm", c.SensorMm[0], c.SensorMm[1]),
			fmt.Sprintf("%.1f-%.0f", c.Clip[0], c.Clip[1]),
			focus,
		})
	}
	m.tbl.SetRows(nil)
	m.tbl.SetColumns(cols)
	m.tbl.SetRows(rows)
}
