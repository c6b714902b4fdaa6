package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// brailleBuf is a 2x4-per-cell micro-pixel buffer. Each cell carries a
// layer id so composited layers can be styled independently; the
// highest layer drawn into a cell wins its color.
type brailleBuf struct {
	w, h  int       // in cells
	m     [][]uint8 // per-cell 8-bit dot mask
	layer [][]uint8 // per-cell style layer
}

func newBrailleBuf(w, h int) *brailleBuf {
	m := make([][]uint8, h)
	l := make([][]uint8, h)
	for i := range m {
		m[i] = make([]uint8, w)
		l[i] = make([]uint8, w)
	}
	return &brailleBuf{w: w, h: h, m: m, layer: l}
}

// setPixel sets a micro-pixel at micro coords (2x4 per cell).
func (b *brailleBuf) setPixel(mx, my int, layer uint8) {
	if mx < 0 || my < 0 {
		return
	}
	cx, rx := mx/2, mx%2
	cy, ry := my/4, my%4
	if cy < 0 || cy >= b.h || cx < 0 || cx >= b.w {
		return
	}
	var bit uint8
	if rx == 0 {
		switch ry {
		case 0:
			bit = 0x01
		case 1:
			bit = 0x02
		case 2:
			bit = 0x04
		case 3:
			bit = 0x40
		}
	} else {
		switch ry {
		case 0:
			bit = 0x08
		case 1:
			bit = 0x10
		case 2:
			bit = 0x20
		case 3:
			bit = 0x80
		}
	}
	b.m[cy][cx] |= bit
	if layer > b.layer[cy][cx] {
		b.layer[cy][cx] = layer
	}
}

// drawLineMicro draws a line on the microgrid using Bresenham.
func (b *brailleBuf) drawLineMicro(x0, y0, x1, y1 int, layer uint8) {
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		b.setPixel(x0, y0, layer)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// toLines renders the buffer to one string per row, styling each cell
// by its layer.
func (b *brailleBuf) toLines(styles map[uint8]lipgloss.Style) []string {
	out := make([]string, b.h)
	var row strings.Builder
	for y := 0; y < b.h; y++ {
		row.Reset()
		for x := 0; x < b.w; x++ {
			mask := b.m[y][x]
			if mask == 0 {
				row.WriteByte(' ')
				continue
			}
			glyph := string(rune(0x2800 + int(mask)))
			if st, ok := styles[b.layer[y][x]]; ok {
				glyph = st.Render(glyph)
			}
			row.WriteString(glyph)
		}
		out[y] = row.String()
	}
	return out
}
