package main

import (
	"log"
	"os"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fogleman/fauxgl"
	"github.com/joho/godotenv"

	"dofscope/internal/overlay"
	"dofscope/internal/tui"
)

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func main() {
	_ = godotenv.Load()

	style := overlay.DefaultStyle()
	if v := os.Getenv("DOFSCOPE_FOCUS_COLOR"); v != "" {
		style.FocusColor = fauxgl.HexColor(v)
	}
	if v := os.Getenv("DOFSCOPE_DIM_COLOR"); v != "" {
		style.DimColor = fauxgl.HexColor(v)
	}
	if v := os.Getenv("DOFSCOPE_MARKER_RADIUS"); v != "" {
		if r, err := strconv.ParseFloat(v, 64); err == nil && r > 0 {
			style.MarkerRadius = r
		}
	}
	if v := os.Getenv("DOFSCOPE_SEGMENTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 3 {
			style.Segments = n
		}
	}
	opts := tui.Options{
		Style:       style,
		SnapshotDir: getEnv("DOFSCOPE_SNAPSHOT_DIR", ""),
	}

	var m tea.Model
	if len(os.Args) > 1 {
		m = tui.NewWithPath(os.Args[1], opts)
	} else {
		m = tui.New(opts)
	}
	if err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Start(); err != nil {
		log.Fatal(err)
	}
}
