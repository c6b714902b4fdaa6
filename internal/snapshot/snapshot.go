// Package snapshot rasterizes overlay primitives into a PNG using an
// offscreen fauxgl context, so a DoF setup can be shared outside the
// terminal session.
package snapshot

import (
	"fmt"
	"image"

	"github.com/fogleman/fauxgl"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/nfnt/resize"

	"dofscope/internal/overlay"
)

// Options configure the snapshot view and output size.
type Options struct {
	Width      int
	Height     int
	Scale      int // supersampling factor
	Eye        mgl64.Vec3
	Center     mgl64.Vec3
	Up         mgl64.Vec3
	FovY       float64 // degrees
	Near, Far  float64
	LineWidth  float64
	Background fauxgl.Color
}

// DefaultOptions frame the scene origin from an elevated three-quarter
// view.
func DefaultOptions() Options {
	return Options{
		Width:      512,
		Height:     512,
		Scale:      2,
		Eye:        mgl64.Vec3{4, 7, 13},
		Center:     mgl64.Vec3{0, 1, 0},
		Up:         mgl64.Vec3{0, 1, 0},
		FovY:       50,
		Near:       0.1,
		Far:        1000,
		LineWidth:  2,
		Background: fauxgl.HexColor("#0F141A"),
	}
}

func vec(p mgl64.Vec3) fauxgl.Vector {
	return fauxgl.Vector{X: p.X(), Y: p.Y(), Z: p.Z()}
}

// Render draws the primitives and returns the finished image,
// downsampled back to the requested output size.
func Render(prims []overlay.Primitive, opts Options) image.Image {
	scale := opts.Scale
	if scale < 1 {
		scale = 1
	}
	ctx := fauxgl.NewContext(opts.Width*scale, opts.Height*scale)
	ctx.ClearColorBufferWith(opts.Background)
	ctx.LineWidth = opts.LineWidth * float64(scale)

	aspect := float64(opts.Width) / float64(opts.Height)
	matrix := fauxgl.LookAt(vec(opts.Eye), vec(opts.Center), vec(opts.Up)).
		Perspective(opts.FovY, aspect, opts.Near, opts.Far)

	for _, prim := range prims {
		switch p := prim.(type) {
		case overlay.Segment:
			ctx.Shader = fauxgl.NewSolidColorShader(matrix, p.Color)
			ctx.DrawLines([]*fauxgl.Line{fauxgl.NewLineForPoints(vec(p.A), vec(p.B))})
		case overlay.Polygon:
			ctx.Shader = fauxgl.NewSolidColorShader(matrix, p.Color)
			pts := p.Points
			if len(pts) < 2 {
				continue
			}
			if p.Filled && len(pts) >= 4 {
				// Fan triangulation over the closed ring.
				var tris []*fauxgl.Triangle
				for i := 1; i+1 < len(pts)-1; i++ {
					tris = append(tris, fauxgl.NewTriangleForPoints(vec(pts[0]), vec(pts[i]), vec(pts[i+1])))
				}
				ctx.DrawTriangles(tris)
			}
			lines := make([]*fauxgl.Line, 0, len(pts)-1)
			for i := 0; i+1 < len(pts); i++ {
				lines = append(lines, fauxgl.NewLineForPoints(vec(pts[i]), vec(pts[i+1])))
			}
			ctx.DrawLines(lines)
		}
	}

	im := ctx.Image()
	if scale > 1 {
		im = resize.Resize(uint(opts.Width), uint(opts.Height), im, resize.Bilinear)
	}
	return im
}

// WritePNG renders the primitives and saves them to path.
func WritePNG(path string, prims []overlay.Primitive, opts Options) error {
	if err := fauxgl.SavePNG(path, Render(prims, opts)); err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	return nil
}
