package tui

import (
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	"dofscope/internal/overlay"
)

// Style layers for the braille buffer, back to front.
const (
	layerScene uint8 = iota + 1
	layerDim
	layerMarker
	layerFocus
	layerCursor
)

const (
	viewFovY = 50.0 // degrees
	viewNear = 0.1
	viewFar  = 1000.0
)

// orbitCenter is the point the viewport orbits: the active camera's
// focus band midpoint when known, else the scene origin.
func (m Model) orbitCenter() mgl64.Vec3 {
	if cam, ok := m.sc.ActiveCamera(); ok {
		pose := cam.Pose()
		if m.sc.LimitsValid {
			return pose.At(m.sc.Limits[0])
		}
		return pose.At(cam.FocusDistance)
	}
	return mgl64.Vec3{}
}

// orbitEye places the viewpoint on a sphere around the orbit center.
func (m Model) orbitEye() mgl64.Vec3 {
	c := m.orbitCenter()
	cp := math.Cos(m.pitch)
	return c.Add(mgl64.Vec3{
		m.dist * cp * math.Sin(m.yaw),
		m.dist * math.Sin(m.pitch),
		m.dist * cp * math.Cos(m.yaw),
	})
}

// viewProjection builds the combined matrix for the current viewport.
// Braille micro-pixels are close to square (cell/2 wide, cell/4 high),
// so the aspect is just the microgrid ratio.
func (m Model) viewProjection(w, h int) mgl64.Mat4 {
	aspect := float64(w*2) / float64(h*4)
	proj := mgl64.Perspective(mgl64.DegToRad(viewFovY), aspect, viewNear, viewFar)
	view := mgl64.LookAtV(m.orbitEye(), m.orbitCenter(), mgl64.Vec3{0, 1, 0})
	return proj.Mul4(view)
}

// projectMicro maps a world point onto the braille microgrid. Points
// behind the viewpoint report ok=false.
func projectMicro(vp mgl64.Mat4, p mgl64.Vec3, w, h int) (int, int, bool) {
	clip := vp.Mul4x1(p.Vec4(1))
	if clip.W() <= 0 {
		return 0, 0, false
	}
	nx := clip.X() / clip.W()
	ny := clip.Y() / clip.W()
	wMic := w * 2
	hMic := h * 4
	sx := int((nx + 1) / 2 * float64(wMic-1))
	sy := int((1 - (ny+1)/2) * float64(hMic-1))
	return sx, sy, true
}

// renderViewport draws the scene and any active overlay into a braille
// canvas of w x h cells.
func (m Model) renderViewport(w, h int) string {
	br := newBrailleBuf(w, h)
	vp := m.viewProjection(w, h)

	drawSeg := func(a, b mgl64.Vec3, layer uint8) {
		ax, ay, aok := projectMicro(vp, a, w, h)
		bx, by, bok := projectMicro(vp, b, w, h)
		if !aok || !bok {
			return
		}
		br.drawLineMicro(ax, ay, bx, by, layer)
	}
	drawCross := func(p mgl64.Vec3, layer uint8) {
		x, y, ok := projectMicro(vp, p, w, h)
		if !ok {
			return
		}
		br.drawLineMicro(x-2, y, x+2, y, layer)
		br.drawLineMicro(x, y-2, x, y+2, layer)
	}

	// Scene dressing: objects as crosses, cameras as a point with a
	// short view-axis stub.
	for _, o := range m.sc.Objects {
		drawCross(mgl64.Vec3{o.Position[0], o.Position[1], o.Position[2]}, layerScene)
	}
	for i := range m.sc.Cameras {
		pose := m.sc.Cameras[i].Pose()
		drawCross(pose.Position, layerScene)
		drawSeg(pose.Position, pose.At(0.8), layerScene)
	}

	// Overlay geometry while visualizing or previewing a pick.
	sess := m.activeSession()
	if sess != nil && sess.Mode() != overlay.Idle {
		prims, ok := m.overlayPrimitives(sess.Mode())
		if ok {
			for _, prim := range prims {
				switch p := prim.(type) {
				case overlay.Segment:
					layer := layerDim
					if p.Color == m.style.FocusColor {
						layer = layerFocus
					}
					drawSeg(p.A, p.B, layer)
				case overlay.Polygon:
					for i := 0; i+1 < len(p.Points); i++ {
						drawSeg(p.Points[i], p.Points[i+1], layerMarker)
					}
				}
			}
		}
	}

	if sess != nil && sess.Mode() == overlay.Picking {
		drawCross(m.cursor, layerCursor)
	}

	lines := br.toLines(layerStyles)
	return strings.Join(lines, "\n")
}

// overlayPrimitives evaluates the pipeline for the current frame. While
// picking, the 3D cursor overrides the camera's stored focus so the
// band tracks the pick live.
func (m Model) overlayPrimitives(mode overlay.Mode) ([]overlay.Primitive, bool) {
	if mode == overlay.Picking {
		cam, ok := m.sc.ActiveCamera()
		if !ok {
			return nil, false
		}
		lim, d, prims, err := overlay.BuildLimitGeometry(cam.Pose(), cam.Intrinsics(), overlay.TargetFocus(m.cursor), m.style)
		if err != nil {
			return nil, false
		}
		m.sc.Limits = [3]float64{d, lim.Near, lim.Far}
		m.sc.LimitsValid = true
		return prims, true
	}
	res, err := m.sc.BuildOverlay(m.style)
	if err != nil || len(res.Primitives) == 0 {
		return nil, false
	}
	return res.Primitives, true
}
